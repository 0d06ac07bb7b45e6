package server

import (
	"github.com/climblog/climblog/internal/logstore"
	"github.com/climblog/climblog/internal/reconcile"
	"github.com/climblog/climblog/internal/store"
	"github.com/climblog/climblog/internal/workspace"
)

// Services are the domain objects the routes dispatch to. DB may be nil when
// no database is configured.
type Services struct {
	Logs      *logstore.Store
	DB        *store.Store
	Sync      *reconcile.Reconciler
	Workspace *workspace.Workspace
}
