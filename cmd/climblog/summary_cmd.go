package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSummaryCmd())
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize climbs, workouts and metrics across all logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			sum, err := a.logs.Summarize()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d\n", bold.Render("climbing sessions:"), sum.ClimbSessions)
			fmt.Fprintf(out, "%s %d\n", bold.Render("climbs:"), sum.Climbs)
			fmt.Fprintf(out, "%s %d\n", bold.Render("sent climbs:"), len(sum.Sent))
			fmt.Fprintf(out, "%s %d\n", bold.Render("workouts:"), sum.Workouts)
			fmt.Fprintf(out, "%s %d\n", bold.Render("metrics:"), sum.Metrics)
			if n := len(sum.Unreadable); n > 0 {
				fmt.Fprintf(out, "%s %d\n", red.Render("errors:"), n)
			}

			for _, s := range sum.Sent {
				fmt.Fprintf(out, "  %s %s %s\n",
					gray.Render(s.Date),
					cyan.Render(string(s.Grade)),
					fmt.Sprintf("attempts=%d rests=%d", s.Attempts, s.Rests),
				)
			}
			return nil
		},
	}
}
