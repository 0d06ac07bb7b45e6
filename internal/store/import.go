package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/climblog/climblog/internal/logstore"
)

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Failed   []string `json:"failed,omitempty"`
}

// ImportLogs mirrors every log file not yet recorded as a source file. A file
// that fails to load or insert is reported and the rest continue.
func (s *Store) ImportLogs(ctx context.Context, logs *logstore.Store) (*ImportResult, error) {
	names, err := logs.Index()
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}
	imported, err := s.ImportedFiles(ctx)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, ok := imported[name]; ok {
			res.Skipped++
			continue
		}

		doc, err := logs.LoadDocument(name)
		if err == nil {
			_, err = s.Insert(ctx, doc, name)
		}
		if err != nil {
			slog.Error("db import", "file", name, "error", err)
			res.Failed = append(res.Failed, name)
			continue
		}
		res.Imported++
	}

	slog.Info("db import", "imported", res.Imported, "skipped", res.Skipped, "failed", len(res.Failed))
	return res, nil
}
