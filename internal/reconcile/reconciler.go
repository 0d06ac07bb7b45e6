// Package reconcile decides which activity logs have to move between the
// local log directory and a bucket, and moves them.
//
// A pass lists both sides, diffs the two sets and then transfers only what is
// missing on the destination side. Listing never overlaps with transfers, and
// a pass holds no state once it returns, so repeating a pass with nothing
// changed transfers nothing.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/climblog/climblog/internal/logfile"
)

const (
	DefaultWorkers         = 4
	DefaultTransferTimeout = 30 * time.Second
)

type Reconciler struct {
	logsDir         string
	fs              Filesystem
	store           ObjectStore
	exec            *Executor
	workers         int
	transferTimeout time.Duration
}

type Option func(*Reconciler)

// WithWorkers bounds the number of concurrent transfers.
func WithWorkers(n int) Option {
	return func(r *Reconciler) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithTransferTimeout bounds each single transfer. Zero disables the bound.
func WithTransferTimeout(d time.Duration) Option {
	return func(r *Reconciler) {
		if d >= 0 {
			r.transferTimeout = d
		}
	}
}

func New(logsDir string, fs Filesystem, store ObjectStore, opts ...Option) *Reconciler {
	r := &Reconciler{
		logsDir:         logsDir,
		fs:              fs,
		store:           store,
		exec:            NewExecutor(fs, store),
		workers:         DefaultWorkers,
		transferTimeout: DefaultTransferTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Sync uploads every local log whose key is missing from bucket.
func (r *Reconciler) Sync(ctx context.Context, bucket string, dryRun bool) (*Report, error) {
	return r.run(ctx, ActionUpload, bucket, dryRun)
}

// Pull downloads every remote log whose filename is missing locally.
func (r *Reconciler) Pull(ctx context.Context, bucket string, dryRun bool) (*Report, error) {
	return r.run(ctx, ActionDownload, bucket, dryRun)
}

// Plan lists the log directory and the bucket concurrently and diffs them.
func (r *Reconciler) Plan(ctx context.Context, bucket string) (*Plan, error) {
	var local, remote mapset.Set[string]

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		set, err := logfile.ListLocal(r.fs, r.logsDir)
		if err != nil {
			return &ListingError{Side: SideLocal, Err: err}
		}
		local = set
		return nil
	})
	eg.Go(func() error {
		keys, err := r.store.ListObjects(egCtx, bucket)
		if err != nil {
			return &ListingError{Side: SideRemote, Err: fmt.Errorf("bucket %s: %w", bucket, err)}
		}
		remote = mapset.NewSet(keys...)
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return NewPlan(local, remote), nil
}

func (r *Reconciler) run(ctx context.Context, action Action, bucket string, dryRun bool) (*Report, error) {
	tstart := time.Now()

	plan, err := r.Plan(ctx, bucket)
	if err != nil {
		slog.Error("sync", "op", action, "bucket", bucket, "error", err)
		return nil, err
	}

	targets := plan.Targets(action)
	report := &Report{
		Action: action,
		Bucket: bucket,
		DryRun: dryRun,
		InSync: plan.InSync(action),
	}

	if dryRun {
		report.Results = make([]*Result, 0, len(targets))
		for _, t := range targets {
			slog.Info("sync", "op", action, "key", t.Key, "dryRun", true)
			report.Results = append(report.Results, &Result{Transfer: t, DryRun: true})
		}
	} else {
		report.Results = r.execute(ctx, bucket, targets)
	}

	report.Took = time.Since(tstart)
	slog.Info("sync done", "op", action, "bucket", bucket, "dryRun", dryRun,
		"targets", len(targets),
		"transferred", report.Succeeded(),
		"failed", len(report.Failed()),
		"inSync", report.InSync,
		"took", report.Took,
	)
	return report, nil
}

// execute runs targets on at most r.workers goroutines. A failed transfer
// only marks its own result; siblings keep going. Once ctx is done, targets
// not yet started are marked failed with the context error.
func (r *Reconciler) execute(ctx context.Context, bucket string, targets []Transfer) []*Result {
	results := make([]*Result, len(targets))

	var eg errgroup.Group
	eg.SetLimit(r.workers)

	for i, t := range targets {
		if err := ctx.Err(); err != nil {
			results[i] = &Result{Transfer: t, Err: &TransferError{Action: t.Action, Key: t.Key, Path: r.localPath(t.Filename), Err: err}}
			continue
		}
		eg.Go(func() error {
			results[i] = r.transfer(ctx, bucket, t)
			return nil
		})
	}
	eg.Wait()

	return results
}

func (r *Reconciler) transfer(ctx context.Context, bucket string, t Transfer) *Result {
	if r.transferTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.transferTimeout)
		defer cancel()
	}

	path := r.localPath(t.Filename)

	var err error
	switch t.Action {
	case ActionUpload:
		err = r.exec.Upload(ctx, bucket, t.Key, path)
	case ActionDownload:
		err = r.exec.Download(ctx, bucket, t.Key, path)
	}

	if err != nil {
		slog.Error("sync", "op", t.Action, "key", t.Key, "error", err)
	} else {
		slog.Info("sync", "op", t.Action, "key", t.Key)
	}
	return &Result{Transfer: t, Err: err}
}

func (r *Reconciler) localPath(filename string) string {
	return filepath.Join(r.logsDir, filename)
}
