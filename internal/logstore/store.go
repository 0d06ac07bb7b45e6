// Package logstore reads and writes the JSON activity logs kept in the local
// log directory.
package logstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/climblog/climblog/internal/logfile"
	"github.com/climblog/climblog/internal/models"
)

const maxSameDayLogs = 100

var (
	ErrInvalidLog = models.ErrInvalid
	ErrTooMany    = errors.New("too many logs for the same date")
)

// FS is the filesystem the store works against. WriteFile must not replace
// an existing file; it reports fs.ErrExist instead.
type FS interface {
	ListDirectory(path string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
}

type Store struct {
	dir string
	fs  FS
}

func New(dir string, fs FS) *Store {
	return &Store{dir: dir, fs: fs}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Save validates doc and writes it as "<kind>-<date>.json". Logs are never
// overwritten: later documents for the same date get a "_2", "_3" suffix.
func (s *Store) Save(doc models.Document) (string, error) {
	if err := models.Validate(doc); err != nil {
		return "", err
	}

	data, err := jsonMarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s log: %w", doc.Kind(), err)
	}

	existing, err := s.fs.ListDirectory(s.dir)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", s.dir, err)
	}

	// a concurrent save may take the picked name first; WriteFile refuses
	// to replace it, so move on to the next suffix
	var filename string
	for {
		filename, err = nextFilename(doc, existing)
		if err != nil {
			return "", err
		}

		err = s.fs.WriteFile(s.Path(filename), data)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("write %s: %w", filename, err)
		}
		existing = append(existing, filename)
	}

	slog.Info("log saved", "file", filename, "kind", doc.Kind())
	return filename, nil
}

func nextFilename(doc models.Document, existing []string) (string, error) {
	base := doc.Kind() + "-" + doc.LogDate()
	name := base + ".json"
	for n := 2; slices.Contains(existing, name); n++ {
		if n > maxSameDayLogs {
			return "", fmt.Errorf("%w: %s", ErrTooMany, base)
		}
		name = fmt.Sprintf("%s_%d.json", base, n)
	}
	return name, nil
}

// Load decodes the log at filename into v.
func (s *Store) Load(filename string, v any) error {
	data, err := s.fs.ReadFile(s.Path(filename))
	if err != nil {
		return err
	}
	if err := jsonUnmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidLog, filename, err)
	}
	return nil
}

// LoadDocument decodes filename into the model matching its category.
func (s *Store) LoadDocument(filename string) (models.Document, error) {
	doc, err := NewDocument(logfile.Classify(filename))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, filename)
	}

	if err := s.Load(filename, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// NewDocument returns an empty model for category c.
func NewDocument(c logfile.Category) (models.Document, error) {
	switch c {
	case logfile.Climb:
		return &models.ClimbingSession{}, nil
	case logfile.Workout:
		return &models.WorkoutSession{}, nil
	case logfile.Metrics:
		return &models.ClimbMetricsEntry{}, nil
	default:
		return nil, logfile.ErrUnknownCategory
	}
}

// Decode parses data as a category c document and validates it.
func Decode(c logfile.Category, data []byte) (models.Document, error) {
	doc, err := NewDocument(c)
	if err != nil {
		return nil, err
	}
	if err := jsonUnmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidLog, c, err)
	}
	if err := models.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Index lists the classified log filenames in sorted order.
func (s *Store) Index() ([]string, error) {
	set, err := logfile.ListLocal(s.fs, s.dir)
	if err != nil {
		return nil, err
	}
	names := set.ToSlice()
	slices.SortFunc(names, strings.Compare)
	return names, nil
}
