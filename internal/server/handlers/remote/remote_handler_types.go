package remote

import (
	"context"

	"github.com/climblog/climblog/internal/reconcile"
)

type Syncer interface {
	Sync(ctx context.Context, bucket string, dryRun bool) (*reconcile.Report, error)
	Pull(ctx context.Context, bucket string, dryRun bool) (*reconcile.Report, error)
}

// Locker serializes passes. workspace.Workspace implements it.
type Locker interface {
	Lock() error
	Unlock() error
}

type PassRequest struct {
	DryRun bool `form:"dry_run"`
}

type ResultResponse struct {
	Action   string `json:"action"`
	Key      string `json:"key"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}

type ReportResponse struct {
	Action      string            `json:"action"`
	Bucket      string            `json:"bucket"`
	DryRun      bool              `json:"dryRun"`
	InSync      int               `json:"inSync"`
	Transferred int               `json:"transferred"`
	Failed      int               `json:"failed"`
	Took        string            `json:"took"`
	Results     []*ResultResponse `json:"results"`
}

const (
	statusPlanned = "planned"
	statusOK      = "ok"
	statusFailed  = "failed"
)

func newReportResponse(r *reconcile.Report) *ReportResponse {
	resp := &ReportResponse{
		Action:      r.Action.String(),
		Bucket:      r.Bucket,
		DryRun:      r.DryRun,
		InSync:      r.InSync,
		Transferred: r.Succeeded(),
		Failed:      len(r.Failed()),
		Took:        r.Took.String(),
		Results:     make([]*ResultResponse, 0, len(r.Results)),
	}

	for _, res := range r.Results {
		item := &ResultResponse{
			Action:   res.Action.String(),
			Key:      res.Key,
			Filename: res.Filename,
			Message:  res.String(),
		}
		switch {
		case res.DryRun:
			item.Status = statusPlanned
		case res.Err != nil:
			item.Status = statusFailed
			item.Error = res.Err.Error()
		default:
			item.Status = statusOK
		}
		resp.Results = append(resp.Results, item)
	}
	return resp
}
