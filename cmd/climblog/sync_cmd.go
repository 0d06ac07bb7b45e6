package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/climblog/climblog/internal/reconcile"
	"github.com/climblog/climblog/internal/watch"
)

func init() {
	rootCmd.AddCommand(newSyncCmd(), newPullCmd(), newStatusCmd())
}

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload local logs that are missing from the bucket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, (*reconcile.Reconciler).Sync)
		},
	}
	addPassFlags(cmd)
	cmd.Flags().Bool("watch", false, "keep running and sync again whenever a log is written")
	return cmd
}

func newPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download bucket logs that are missing locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, (*reconcile.Reconciler).Pull)
		},
	}
	addPassFlags(cmd)
	return cmd
}

func addPassFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("dry-run", "n", false, "report what would be transferred without transferring")
	cmd.Flags().IntP("workers", "w", reconcile.DefaultWorkers, "concurrent transfers")
}

type passFunc func(r *reconcile.Reconciler, ctx context.Context, bucket string, dryRun bool) (*reconcile.Report, error)

func runPass(cmd *cobra.Command, run passFunc) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	// pull has no --watch flag, GetBool reports false for it
	watching, _ := cmd.Flags().GetBool("watch")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	r, err := a.reconciler(cmd.Context())
	if err != nil {
		return err
	}

	pass := func() error {
		var report *reconcile.Report
		err := a.ws.WithLock(func() error {
			var err error
			report, err = run(r, cmd.Context(), a.cfg.Bucket, dryRun)
			return err
		})
		if err != nil {
			return err
		}

		printReport(cmd.OutOrStdout(), report)
		if failed := len(report.Failed()); failed > 0 {
			return fmt.Errorf("%d of %d transfers failed", failed, len(report.Results))
		}
		return nil
	}

	err = pass()
	if !watching {
		return err
	}
	if err != nil {
		slog.Error("sync", "error", err)
	}

	w := watch.NewLogWatcher(a.ws.LogsDir)
	if err := w.Start(cmd.Context()); err != nil {
		return fmt.Errorf("watch %s: %w", a.ws.LogsDir, err)
	}
	defer w.Stop()

	for files := range w.Batches() {
		slog.Info("watch", "changed", files)
		// a failed pass is retried on the next change
		if err := pass(); err != nil {
			slog.Error("sync", "error", err)
		}
	}
	return nil
}

func printReport(out io.Writer, report *reconcile.Report) {
	for _, res := range report.Results {
		switch {
		case res.DryRun:
			fmt.Fprintln(out, yellow.Render(res.String()))
		case res.Err != nil:
			fmt.Fprintln(out, red.Render(res.String()))
		default:
			fmt.Fprintln(out, green.Render(res.String()))
		}
	}

	verb := report.Action.String()
	if len(report.Results) == 0 {
		fmt.Fprintln(out, gray.Render(fmt.Sprintf("nothing to %s, %d logs in sync with %s", verb, report.InSync, report.Bucket)))
		return
	}
	fmt.Fprintln(out, gray.Render(fmt.Sprintf("%s: %d planned, %d done, %d failed, %d in sync (%s)",
		report.Bucket,
		len(report.Results),
		report.Succeeded(),
		len(report.Failed()),
		report.InSync,
		report.Took.Round(time.Millisecond),
	)))
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which logs a sync or pull would transfer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			r, err := a.reconciler(cmd.Context())
			if err != nil {
				return err
			}

			plan, err := r.Plan(cmd.Context(), a.cfg.Bucket)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", bold.Render("bucket:"), a.cfg.Bucket)
			fmt.Fprintf(out, "%s %s\n", bold.Render("logs:"), a.ws.LogsDir)
			printTargets(out, "to upload", plan.Uploads, plan.InSync(reconcile.ActionUpload))
			printTargets(out, "to download", plan.Downloads, plan.InSync(reconcile.ActionDownload))
			return nil
		},
	}
}

func printTargets(out io.Writer, title string, targets []reconcile.Transfer, inSync int) {
	fmt.Fprintf(out, "%s %d %s\n", bold.Render(title+":"), len(targets), gray.Render(fmt.Sprintf("(%d in sync)", inSync)))
	for _, t := range targets {
		fmt.Fprintf(out, "  %s\n", cyan.Render(t.Key))
	}
}
