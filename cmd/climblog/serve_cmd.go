package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/climblog/climblog/internal/reconcile"
	"github.com/climblog/climblog/internal/server"
	"github.com/climblog/climblog/internal/store"
)

func init() {
	rootCmd.AddCommand(newServeCmd())
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the log, database and sync HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noDB, _ := cmd.Flags().GetBool("no-db")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			r, err := a.reconciler(cmd.Context())
			if err != nil {
				return err
			}

			var st *store.Store
			if !noDB {
				st, err = a.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer st.Close()
			}

			srv, err := server.New(&server.Config{HTTP: a.cfg.HTTP, Bucket: a.cfg.Bucket}, &server.Services{
				Logs:      a.logs,
				DB:        st,
				Sync:      r,
				Workspace: a.ws,
			})
			if err != nil {
				return err
			}

			defer slog.Info("Bye!")
			return srv.Start(cmd.Context())
		},
	}
	cmd.Flags().StringP("addr", "a", server.DefaultAddr, "address to bind the server")
	cmd.Flags().IntP("workers", "w", reconcile.DefaultWorkers, "concurrent transfers per pass")
	cmd.Flags().Bool("no-db", false, "serve without the database endpoints")
	return cmd
}
