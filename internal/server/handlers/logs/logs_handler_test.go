package logs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/climblog/climblog/internal/logstore"
	"github.com/climblog/climblog/internal/models"
	"github.com/climblog/climblog/internal/server/handlers/api"
)

type MockLogService struct {
	mock.Mock
}

func (m *MockLogService) Save(doc models.Document) (string, error) {
	args := m.Called(doc)
	return args.String(0), args.Error(1)
}

func (m *MockLogService) Index() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLogService) Summarize() (*logstore.Summary, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*logstore.Summary), args.Error(1)
}

func newRouter(svc LogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(svc)
	r := gin.New()
	r.GET("/api/logs", h.List)
	r.GET("/api/logs/summary", h.Summary)
	r.POST("/api/logs/climb", h.SaveClimb)
	r.POST("/api/logs/workout", h.SaveWorkout)
	r.POST("/api/logs/metrics", h.SaveMetrics)
	return r
}

func do(r http.Handler, method, url, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSaveClimb(t *testing.T) {
	svc := new(MockLogService)
	svc.On("Save", mock.MatchedBy(func(doc models.Document) bool {
		s, ok := doc.(*models.ClimbingSession)
		return ok && s.Date == "2024-04-01" && len(s.Climbs) == 1 && s.Climbs[0].Grade == "v3"
	})).Return("climb-2024-04-01.json", nil)

	w := do(newRouter(svc), http.MethodPost, "/api/logs/climb",
		`{"date":"2024-04-01","location":"gym","style":"boulder","climbs":[{"grade":"v3","attempts":2,"sent":true}]}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp SaveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, SaveResponse{Status: "ok", File: "climb-2024-04-01.json"}, resp)
	svc.AssertExpectations(t)
}

func TestSave_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		saveErr    error
		wantStatus int
		wantCode   string
	}{
		{"malformed json", "/api/logs/workout", `{"date":`, nil, http.StatusBadRequest, api.CodeInvalidRequest},
		{"invalid document", "/api/logs/metrics", `{"date":"2024-13-01"}`, fmt.Errorf("%w: Date", models.ErrInvalid), http.StatusBadRequest, api.CodeInvalidRequest},
		{"write failure", "/api/logs/workout", `{"date":"2024-04-02","exercises":[]}`, errors.New("disk full"), http.StatusInternalServerError, api.CodeLogSaveFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockLogService)
			svc.On("Save", mock.Anything).Return("", tt.saveErr).Maybe()

			w := do(newRouter(svc), http.MethodPost, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)

			var apiErr api.APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.NotEmpty(t, apiErr.Message)
		})
	}
}

func TestList(t *testing.T) {
	svc := new(MockLogService)
	svc.On("Index").Return(nil, nil).Once()
	svc.On("Index").Return([]string{"climb-2024-04-01.json"}, nil).Once()
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/api/logs", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"logs":[]}`, w.Body.String())

	w = do(r, http.MethodGet, "/api/logs", "")
	assert.JSONEq(t, `{"logs":["climb-2024-04-01.json"]}`, w.Body.String())
}

func TestSummary(t *testing.T) {
	svc := new(MockLogService)
	svc.On("Summarize").Return(&logstore.Summary{ClimbSessions: 1, Climbs: 3, Sent: []logstore.SentClimb{}}, nil)

	w := do(newRouter(svc), http.MethodGet, "/api/logs/summary", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var sum logstore.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, 3, sum.Climbs)
}
