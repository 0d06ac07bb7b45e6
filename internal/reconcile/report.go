package reconcile

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Action uint8

const (
	ActionUpload Action = iota
	ActionDownload
)

var actionNames = []string{"upload", "download"}

func (a Action) String() string {
	return actionNames[a]
}

func (a Action) pastTense() string {
	if a == ActionUpload {
		return "uploaded"
	}
	return "downloaded"
}

// Transfer is one planned file movement between the log dir and the bucket.
type Transfer struct {
	Action   Action
	Key      string
	Filename string
}

// Result is the outcome of one Transfer.
type Result struct {
	Transfer
	DryRun bool
	Err    error
}

func (r *Result) OK() bool {
	return r.Err == nil
}

func (r *Result) String() string {
	switch {
	case r.DryRun:
		return fmt.Sprintf("would %s %s", r.Action, r.Key)
	case r.Err != nil:
		return fmt.Sprintf("failed to %s %s: %v", r.Action, r.Key, r.Err)
	default:
		return fmt.Sprintf("%s %s", r.Action.pastTense(), r.Key)
	}
}

// Report is the per-file account of one Sync or Pull pass.
type Report struct {
	Action  Action
	Bucket  string
	DryRun  bool
	InSync  int
	Results []*Result
	Took    time.Duration
}

func (r *Report) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.OK() && !res.DryRun {
			n++
		}
	}
	return n
}

func (r *Report) Failed() []*Result {
	var failed []*Result
	for _, res := range r.Results {
		if !res.OK() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Lines renders every result, one per line, in Results order. Results
// follow the planned targets, which the planner sorts by key.
func (r *Report) Lines() []string {
	lines := make([]string, 0, len(r.Results))
	for _, res := range r.Results {
		lines = append(lines, res.String())
	}
	return lines
}

func (r *Report) String() string {
	return strings.Join(r.Lines(), "\n")
}

func sortTransfers(ts []Transfer) {
	slices.SortFunc(ts, func(a, b Transfer) int {
		return strings.Compare(a.Key, b.Key)
	})
}
