package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/climblog/climblog/internal/blob"
	"github.com/climblog/climblog/internal/config"
	"github.com/climblog/climblog/internal/db"
	"github.com/climblog/climblog/internal/logfile"
	"github.com/climblog/climblog/internal/logstore"
	"github.com/climblog/climblog/internal/reconcile"
	"github.com/climblog/climblog/internal/store"
	"github.com/climblog/climblog/internal/workspace"
)

// app wires the config into the domain objects a command needs. The S3
// client and the database are only built on demand.
type app struct {
	cfg  *config.Config
	ws   *workspace.Workspace
	logs *logstore.Store
	fs   logfile.OSFilesystem
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	ws, err := cfg.Workspace()
	if err != nil {
		return nil, err
	}
	if err := ws.Setup(); err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, ws: ws}
	a.logs = logstore.New(ws.LogsDir, a.fs)
	return a, nil
}

func (a *app) reconciler(ctx context.Context) (*reconcile.Reconciler, error) {
	client, err := blob.NewBlobClientWithS3Config(ctx, &a.cfg.S3)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	return reconcile.New(a.ws.LogsDir, a.fs, reconcile.NewBlobStore(client),
		reconcile.WithWorkers(a.cfg.Workers),
		reconcile.WithTransferTimeout(a.cfg.TransferTimeout),
	), nil
}

func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	driver, dsn := a.cfg.DBSource(a.ws)
	database, err := db.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	st := store.New(database)
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}
