// Package models defines the JSON log documents and their validation rules.
package models

type ClimbEntry struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Grade      Grade   `json:"grade" validate:"grade"`
	Attempts   uint8   `json:"attempts" validate:"max=100"`
	Sent       bool    `json:"sent"`
	ReachedTop bool    `json:"reachedTop"`
	Lead       bool    `json:"lead"`
	Rests      *uint8  `json:"rests,omitempty" validate:"omitempty,max=100"`
}

type ClimbingSession struct {
	Date     string       `json:"date" validate:"required,logdate"`
	Location string       `json:"location" validate:"max=100"`
	Style    ClimbStyle   `json:"style" validate:"oneof=boulder rope"`
	Notes    *string      `json:"notes,omitempty" validate:"omitempty,max=300"`
	Climbs   []ClimbEntry `json:"climbs" validate:"dive"`
}

type ExerciseEntry struct {
	Name       string `json:"name" validate:"max=100"`
	Sets       uint8  `json:"sets" validate:"max=100"`
	Reps       uint8  `json:"reps" validate:"max=100"`
	WeightLb   int32  `json:"weightLb" validate:"min=-100,max=1000"`
	RPE        *uint8 `json:"rpe,omitempty" validate:"omitempty,max=12"`
	IsMainLift *bool  `json:"isMainLift,omitempty"`
}

type WorkoutSession struct {
	Date      string          `json:"date" validate:"required,logdate"`
	Notes     *string         `json:"notes,omitempty" validate:"omitempty,max=300"`
	Exercises []ExerciseEntry `json:"exercises" validate:"dive"`
}

type ClimbMetricsEntry struct {
	Date                    string   `json:"date" validate:"required,logdate"`
	FingerStrengthPercentBW *float32 `json:"fingerStrengthPercentBw,omitempty" validate:"omitempty,min=100,max=300"`
	MaxPullupPercentBW      *float32 `json:"maxPullupPercentBw,omitempty" validate:"omitempty,min=100,max=300"`
	Notes                   *string  `json:"notes,omitempty" validate:"omitempty,max=300"`
}

// Document is implemented by the three log kinds.
type Document interface {
	LogDate() string
	Kind() string
}

func (s *ClimbingSession) LogDate() string   { return s.Date }
func (s *WorkoutSession) LogDate() string    { return s.Date }
func (m *ClimbMetricsEntry) LogDate() string { return m.Date }

func (s *ClimbingSession) Kind() string   { return "climb" }
func (s *WorkoutSession) Kind() string    { return "workout" }
func (m *ClimbMetricsEntry) Kind() string { return "metrics" }

// SentClimbs returns the entries marked as sent, in log order.
func (s *ClimbingSession) SentClimbs() []ClimbEntry {
	var sent []ClimbEntry
	for _, c := range s.Climbs {
		if c.Sent {
			sent = append(sent, c)
		}
	}
	return sent
}
