// Package logfile classifies activity log files by name and maps them to and
// from their namespaced remote keys.
package logfile

import (
	"errors"
	"fmt"
	"strings"
)

type Category uint8

const (
	Unknown Category = iota
	Climb
	Workout
	Metrics
)

var (
	ErrAmbiguousCategory = errors.New("filename matches more than one log category")
	ErrUnknownCategory   = errors.New("filename matches no log category")
)

// markers are checked in this order. The order only matters for the error
// message of an ambiguous name; classification itself requires exactly one hit.
var markers = []struct {
	category  Category
	substr    string
	namespace string
}{
	{Climb, "climb", "climbs"},
	{Workout, "workout", "workouts"},
	{Metrics, "metrics", "metrics"},
}

var categoryNames = []string{"unknown", "climb", "workout", "metrics"}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

// Namespace returns the remote key prefix for c, without the trailing slash.
// Unknown has no namespace.
func (c Category) Namespace() string {
	for _, m := range markers {
		if m.category == c {
			return m.namespace
		}
	}
	return ""
}

func (c Category) Known() bool {
	return c != Unknown && c.Namespace() != ""
}

// ClassifyStrict returns the category whose marker appears in filename.
// A filename must contain exactly one marker.
func ClassifyStrict(filename string) (Category, error) {
	found := Unknown
	var hits []string
	for _, m := range markers {
		if strings.Contains(filename, m.substr) {
			found = m.category
			hits = append(hits, m.substr)
		}
	}

	switch len(hits) {
	case 0:
		return Unknown, ErrUnknownCategory
	case 1:
		return found, nil
	default:
		return Unknown, fmt.Errorf("%w: %q contains %s", ErrAmbiguousCategory, filename, strings.Join(hits, ", "))
	}
}

// Classify is ClassifyStrict with every failure folded into Unknown.
func Classify(filename string) Category {
	c, _ := ClassifyStrict(filename)
	return c
}
