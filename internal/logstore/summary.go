package logstore

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/climblog/climblog/internal/models"
)

type SentClimb struct {
	Date     string       `json:"date"`
	Grade    models.Grade `json:"grade"`
	Attempts uint8        `json:"attempts"`
	Rests    uint8        `json:"rests"`
}

type Summary struct {
	ClimbSessions int         `json:"climbSessions"`
	Climbs        int         `json:"climbs"`
	Workouts      int         `json:"workouts"`
	Metrics       int         `json:"metrics"`
	Unreadable    []string    `json:"unreadable,omitempty"`
	Sent          []SentClimb `json:"sent"`
}

// Summarize loads every log in the index. Logs that fail to load are
// recorded as unreadable rather than failing the whole summary.
func (s *Store) Summarize() (*Summary, error) {
	names, err := s.Index()
	if err != nil {
		return nil, err
	}

	sum := &Summary{Sent: []SentClimb{}}
	for _, name := range names {
		doc, err := s.LoadDocument(name)
		if err != nil {
			slog.Error("summary", "file", name, "error", err)
			sum.Unreadable = append(sum.Unreadable, name)
			continue
		}

		switch d := doc.(type) {
		case *models.ClimbingSession:
			sum.ClimbSessions++
			sum.Climbs += len(d.Climbs)
			for _, c := range d.SentClimbs() {
				sent := SentClimb{Date: d.Date, Grade: c.Grade, Attempts: c.Attempts}
				if c.Rests != nil {
					sent.Rests = *c.Rests
				}
				sum.Sent = append(sum.Sent, sent)
			}
		case *models.WorkoutSession:
			sum.Workouts++
		case *models.ClimbMetricsEntry:
			sum.Metrics++
		}
	}

	slices.SortStableFunc(sum.Sent, func(a, b SentClimb) int {
		return strings.Compare(a.Date, b.Date)
	})

	return sum, nil
}
