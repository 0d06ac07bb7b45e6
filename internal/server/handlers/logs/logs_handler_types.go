package logs

import (
	"github.com/climblog/climblog/internal/logstore"
	"github.com/climblog/climblog/internal/models"
)

// LogService is the part of logstore.Store the handler needs.
type LogService interface {
	Save(doc models.Document) (string, error)
	Index() ([]string, error)
	Summarize() (*logstore.Summary, error)
}

type SaveResponse struct {
	Status string `json:"status"`
	File   string `json:"file"`
}

type ListResponse struct {
	Logs []string `json:"logs"`
}
