package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newIndexCmd())
}

func newIndexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "List the activity logs in the log directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			names, err := a.logs.Index()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range names {
				size := "?"
				if info, err := os.Stat(a.logs.Path(name)); err == nil {
					size = humanize.Bytes(uint64(info.Size()))
				}
				fmt.Fprintf(out, "%s %s\n", name, gray.Render(size))
			}
			fmt.Fprintln(out, gray.Render(fmt.Sprintf("%d logs in %s", len(names), a.ws.LogsDir)))
			return nil
		},
	}
}
