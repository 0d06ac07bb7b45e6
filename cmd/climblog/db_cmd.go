package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDBCmd())
}

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Mirror activity logs into the SQL database",
	}
	cmd.AddCommand(newDBImportCmd(), newDBCountsCmd())
	return cmd
}

func newDBImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Insert every log not yet in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := st.ImportLogs(cmd.Context(), a.logs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d %s\n", green.Render("imported"), res.Imported, gray.Render(fmt.Sprintf("(%d already present)", res.Skipped)))
			for _, f := range res.Failed {
				fmt.Fprintln(out, red.Render("failed"), f)
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d logs failed to import", len(res.Failed))
			}
			return nil
		},
	}
}

func newDBCountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "counts",
		Short: "Print row counts per table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			c, err := st.Counts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", bold.Render("climbing_sessions:"), c.ClimbingSessions)
			fmt.Fprintf(out, "%s %d\n", bold.Render("climb_entries:"), c.Climbs)
			fmt.Fprintf(out, "%s %d\n", bold.Render("workout_sessions:"), c.WorkoutSessions)
			fmt.Fprintf(out, "%s %d\n", bold.Render("exercise_entries:"), c.Exercises)
			fmt.Fprintf(out, "%s %d\n", bold.Render("climbing_metrics:"), c.Metrics)
			return nil
		},
	}
}
