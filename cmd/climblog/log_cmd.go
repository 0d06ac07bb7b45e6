package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/climblog/climblog/internal/logfile"
	"github.com/climblog/climblog/internal/logstore"
)

func init() {
	rootCmd.AddCommand(newLogCmd())
}

func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Validate a JSON document and save it to the log directory",
	}
	for _, c := range []logfile.Category{logfile.Climb, logfile.Workout, logfile.Metrics} {
		cmd.AddCommand(newLogKindCmd(c))
	}
	return cmd
}

func newLogKindCmd(c logfile.Category) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <file.json>", c),
		Short: fmt.Sprintf("Save a %s log", c),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, err := logstore.Decode(c, data)
			if err != nil {
				return err
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			filename, err := a.logs.Save(doc)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), green.Render("saved"), filename)
			return nil
		},
	}
}
