// Package store mirrors validated activity logs into SQL tables.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/climblog/climblog/internal/models"
)

type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Migrate creates any missing tables and indexes.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

type climbSessionRow struct {
	ID         string  `db:"id"`
	Date       string  `db:"date"`
	Location   string  `db:"location"`
	Style      string  `db:"style"`
	Notes      *string `db:"notes"`
	SourceFile *string `db:"source_file"`
}

type climbEntryRow struct {
	ID         string  `db:"id"`
	SessionID  string  `db:"session_id"`
	Position   int     `db:"position"`
	Name       *string `db:"name"`
	Grade      string  `db:"grade"`
	Attempts   int     `db:"attempts"`
	Sent       bool    `db:"sent"`
	ReachedTop bool    `db:"reached_top"`
	Lead       bool    `db:"lead"`
	Rests      *int    `db:"rests"`
}

type workoutSessionRow struct {
	ID         string  `db:"id"`
	Date       string  `db:"date"`
	Notes      *string `db:"notes"`
	SourceFile *string `db:"source_file"`
}

type exerciseEntryRow struct {
	ID         string `db:"id"`
	SessionID  string `db:"session_id"`
	Position   int    `db:"position"`
	Name       string `db:"name"`
	Sets       int    `db:"sets"`
	Reps       int    `db:"reps"`
	WeightLb   int32  `db:"weight_lb"`
	RPE        *int   `db:"rpe"`
	IsMainLift *bool  `db:"is_main_lift"`
}

type metricsRow struct {
	ID                      string   `db:"id"`
	Date                    string   `db:"date"`
	FingerStrengthPercentBW *float64 `db:"finger_strength_percent_bw"`
	MaxPullupPercentBW      *float64 `db:"max_pullup_percent_bw"`
	Notes                   *string  `db:"notes"`
	SourceFile              *string  `db:"source_file"`
}

// InsertClimb stores a session and its climbs in one transaction and
// returns the session id. sourceFile may be empty.
func (s *Store) InsertClimb(ctx context.Context, session *models.ClimbingSession, sourceFile string) (string, error) {
	if err := models.Validate(session); err != nil {
		return "", err
	}

	id := uuid.NewString()
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO climbing_sessions (id, date, location, style, notes, source_file)
			VALUES (:id, :date, :location, :style, :notes, :source_file)`, climbSessionRow{
			ID:         id,
			Date:       session.Date,
			Location:   session.Location,
			Style:      string(session.Style),
			Notes:      session.Notes,
			SourceFile: nullable(sourceFile),
		})
		if err != nil {
			return fmt.Errorf("insert climbing session: %w", err)
		}

		for i, c := range session.Climbs {
			_, err := tx.NamedExecContext(ctx, `INSERT INTO climb_entries
				(id, session_id, position, name, grade, attempts, sent, reached_top, lead, rests)
				VALUES (:id, :session_id, :position, :name, :grade, :attempts, :sent, :reached_top, :lead, :rests)`, climbEntryRow{
				ID:         uuid.NewString(),
				SessionID:  id,
				Position:   i,
				Name:       c.Name,
				Grade:      string(c.Grade),
				Attempts:   int(c.Attempts),
				Sent:       c.Sent,
				ReachedTop: c.ReachedTop,
				Lead:       c.Lead,
				Rests:      widen(c.Rests),
			})
			if err != nil {
				return fmt.Errorf("insert climb %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Debug("db insert", "kind", session.Kind(), "id", id, "climbs", len(session.Climbs))
	return id, nil
}

func (s *Store) InsertWorkout(ctx context.Context, session *models.WorkoutSession, sourceFile string) (string, error) {
	if err := models.Validate(session); err != nil {
		return "", err
	}

	id := uuid.NewString()
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.NamedExecContext(ctx, `INSERT INTO workout_sessions (id, date, notes, source_file)
			VALUES (:id, :date, :notes, :source_file)`, workoutSessionRow{
			ID:         id,
			Date:       session.Date,
			Notes:      session.Notes,
			SourceFile: nullable(sourceFile),
		})
		if err != nil {
			return fmt.Errorf("insert workout session: %w", err)
		}

		for i, e := range session.Exercises {
			_, err := tx.NamedExecContext(ctx, `INSERT INTO exercise_entries
				(id, session_id, position, name, sets, reps, weight_lb, rpe, is_main_lift)
				VALUES (:id, :session_id, :position, :name, :sets, :reps, :weight_lb, :rpe, :is_main_lift)`, exerciseEntryRow{
				ID:         uuid.NewString(),
				SessionID:  id,
				Position:   i,
				Name:       e.Name,
				Sets:       int(e.Sets),
				Reps:       int(e.Reps),
				WeightLb:   e.WeightLb,
				RPE:        widen(e.RPE),
				IsMainLift: e.IsMainLift,
			})
			if err != nil {
				return fmt.Errorf("insert exercise %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Debug("db insert", "kind", session.Kind(), "id", id, "exercises", len(session.Exercises))
	return id, nil
}

func (s *Store) InsertMetrics(ctx context.Context, entry *models.ClimbMetricsEntry, sourceFile string) (string, error) {
	if err := models.Validate(entry); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err := s.db.NamedExecContext(ctx, `INSERT INTO climbing_metrics
		(id, date, finger_strength_percent_bw, max_pullup_percent_bw, notes, source_file)
		VALUES (:id, :date, :finger_strength_percent_bw, :max_pullup_percent_bw, :notes, :source_file)`, metricsRow{
		ID:                      id,
		Date:                    entry.Date,
		FingerStrengthPercentBW: widenFloat(entry.FingerStrengthPercentBW),
		MaxPullupPercentBW:      widenFloat(entry.MaxPullupPercentBW),
		Notes:                   entry.Notes,
		SourceFile:              nullable(sourceFile),
	})
	if err != nil {
		return "", fmt.Errorf("insert climbing metrics: %w", err)
	}

	slog.Debug("db insert", "kind", entry.Kind(), "id", id)
	return id, nil
}

// Insert dispatches on the document's concrete type.
func (s *Store) Insert(ctx context.Context, doc models.Document, sourceFile string) (string, error) {
	switch d := doc.(type) {
	case *models.ClimbingSession:
		return s.InsertClimb(ctx, d, sourceFile)
	case *models.WorkoutSession:
		return s.InsertWorkout(ctx, d, sourceFile)
	case *models.ClimbMetricsEntry:
		return s.InsertMetrics(ctx, d, sourceFile)
	default:
		return "", fmt.Errorf("insert: unsupported document %T", doc)
	}
}

type Counts struct {
	ClimbingSessions int `db:"climbing_sessions" json:"climbingSessions"`
	Climbs           int `db:"climbs" json:"climbs"`
	WorkoutSessions  int `db:"workout_sessions" json:"workoutSessions"`
	Exercises        int `db:"exercises" json:"exercises"`
	Metrics          int `db:"metrics" json:"metrics"`
}

func (s *Store) Counts(ctx context.Context) (*Counts, error) {
	var c Counts
	err := s.db.GetContext(ctx, &c, `SELECT
		(SELECT COUNT(*) FROM climbing_sessions) AS climbing_sessions,
		(SELECT COUNT(*) FROM climb_entries) AS climbs,
		(SELECT COUNT(*) FROM workout_sessions) AS workout_sessions,
		(SELECT COUNT(*) FROM exercise_entries) AS exercises,
		(SELECT COUNT(*) FROM climbing_metrics) AS metrics`)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}
	return &c, nil
}

// ImportedFiles returns the source files already mirrored into the database.
func (s *Store) ImportedFiles(ctx context.Context) (map[string]struct{}, error) {
	var files []string
	err := s.db.SelectContext(ctx, &files, `
		SELECT source_file FROM climbing_sessions WHERE source_file IS NOT NULL
		UNION SELECT source_file FROM workout_sessions WHERE source_file IS NOT NULL
		UNION SELECT source_file FROM climbing_metrics WHERE source_file IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("query imported files: %w", err)
	}

	imported := make(map[string]struct{}, len(files))
	for _, f := range files {
		imported[f] = struct{}{}
	}
	return imported, nil
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Error("db rollback", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func widen(v *uint8) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func widenFloat(v *float32) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
