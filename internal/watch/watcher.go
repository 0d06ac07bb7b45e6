// Package watch reports new or rewritten activity logs in the log directory.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rjeczalik/notify"

	"github.com/climblog/climblog/internal/logfile"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	eventBufferSize = 64
	batchBufferSize = 16
)

// LogWatcher watches a single directory, non-recursively. Events for the
// same burst of writes are coalesced into one batch of filenames, delivered
// once no event has arrived for the debounce period.
type LogWatcher struct {
	dir       string
	rawEvents chan notify.EventInfo
	batches   chan []string
	done      chan struct{}
	wg        sync.WaitGroup

	pending  mapset.Set[string]
	timer    *time.Timer
	debounce time.Duration
	closed   bool
	mu       sync.Mutex
}

func NewLogWatcher(dir string) *LogWatcher {
	return &LogWatcher{
		dir:      dir,
		done:     make(chan struct{}),
		pending:  mapset.NewThreadUnsafeSet[string](),
		debounce: DefaultDebounce,
	}
}

func (w *LogWatcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

func (w *LogWatcher) Start(ctx context.Context) error {
	slog.Info("log watcher start", "dir", w.dir)

	w.rawEvents = make(chan notify.EventInfo, eventBufferSize)
	w.batches = make(chan []string, batchBufferSize)

	// saves land through a rename, in-place edits as writes
	if err := notify.Watch(w.dir, w.rawEvents, notify.Create, notify.Write, notify.Rename); err != nil {
		return err
	}

	w.wg.Add(1)
	go w.filterEvents(ctx)
	return nil
}

func (w *LogWatcher) Stop() {
	close(w.done)
	if w.rawEvents != nil {
		notify.Stop(w.rawEvents)
	}
	w.wg.Wait()
	slog.Info("log watcher stopped")
}

// Batches yields sorted filenames of changed logs. It is closed on Stop or
// when the start context is done.
func (w *LogWatcher) Batches() <-chan []string {
	return w.batches
}

func (w *LogWatcher) filterEvents(ctx context.Context) {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.batches)
		w.mu.Unlock()

		w.wg.Done()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.rawEvents:
			if !ok {
				return
			}
			name := filepath.Base(event.Path())
			if !logfile.Classify(name).Known() {
				continue
			}
			w.add(name)
		}
	}
}

func (w *LogWatcher) add(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending.Add(name)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

func (w *LogWatcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.pending.Cardinality() == 0 {
		return
	}
	names := w.pending.ToSlice()
	w.pending.Clear()
	w.timer = nil
	slices.Sort(names)

	select {
	case w.batches <- names:
		slog.Debug("log watcher", "files", names)
	default:
		slog.Warn("log watcher dropped", "reason", "channel full", "files", names)
	}
}
