package echoapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/aliakseitokarev/rsschool-app/core"
	"github.com/aliakseitokarev/rsschool-app/core/schedule"
)

// recordingLogger keeps the level of every entry.
type recordingLogger struct {
	mu     sync.Mutex
	levels []string
}

func (l *recordingLogger) record(level string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.levels = append(l.levels, level)
}

func (l *recordingLogger) Debug(string, ...interface{}) { l.record("debug") }
func (l *recordingLogger) Info(string, ...interface{})  { l.record("info") }
func (l *recordingLogger) Warn(string, ...interface{})  { l.record("warn") }
func (l *recordingLogger) Error(string, ...interface{}) { l.record("error") }
func (l *recordingLogger) Fatal(string, ...interface{}) { l.record("fatal") }

func Test_appHTTPErrorHandler(t *testing.T) {
	upstream := &schedule.UpstreamError{Source: "course tasks", Err: errors.New("connection refused")}

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantBody   string
		wantLevels []string
	}{
		{
			name:     "upstream failure is not reported again",
			err:      errors.Wrap(upstream, "computing schedule"),
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"error":"schedule data is temporarily unavailable"}`,
		},
		{
			name:     "unknown course",
			err:      errors.Wrap(schedule.ErrCourseNotFound, "getting course 9"),
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"not found"}`,
		},
		{
			name:     "validation error",
			err:      core.NewValidationError(schedule.ErrSameCourse, core.FieldError{Field: "fromCourseId", Error: "same course"}),
			wantCode: http.StatusBadRequest,
			wantBody: `{"fromCourseId":"same course"}`,
		},
		{
			name:       "unexpected error",
			err:        errors.New("boom"),
			wantCode:   http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
			wantLevels: []string{"error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordingLogger{}
			e := echo.New()
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/courses/1/schedule", nil), rec)

			newAppHTTPErrorHandler(logger, core.NewTranslator())(tt.err, ctx)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantLevels, logger.levels)
		})
	}
}
