package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/verte-zerg/stenodrill/internal/evaluate"
	"github.com/verte-zerg/stenodrill/internal/model"
	"github.com/verte-zerg/stenodrill/internal/stats"
	"github.com/verte-zerg/stenodrill/internal/store"
)

type APISuite struct {
	suite.Suite
	st      *store.Store
	handler http.Handler
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	st, err := store.Open(filepath.Join(s.T().TempDir(), "api.db"))
	s.Require().NoError(err)
	s.st = st
	srv := NewServer(st, evaluate.Default, nil)
	srv.now = func() time.Time { return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC) }
	s.handler = srv.Routes()
}

func (s *APISuite) TearDownTest() {
	s.Require().NoError(s.st.Close())
}

func (s *APISuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *APISuite) errorCode(rec *httptest.ResponseRecorder) string {
	var body errorResponse
	s.decode(rec, &body)
	return body.Error.Code
}

func (s *APISuite) createAssignment(title, text string) model.Assignment {
	rec := s.do(http.MethodPost, "/api/assignments", assignmentRequest{Title: title, Text: text})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var a model.Assignment
	s.decode(rec, &a)
	return a
}

func (s *APISuite) TestHealthAndReady() {
	rec := s.do(http.MethodGet, "/healthz", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(rec.Header().Get("X-Request-ID"))

	rec = s.do(http.MethodGet, "/readyz", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"status":"ready"}`, rec.Body.String())
}

func (s *APISuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc123")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	s.Equal("abc123", rec.Header().Get("X-Request-ID"))
}

func (s *APISuite) TestEvaluate() {
	rec := s.do(http.MethodPost, "/api/evaluate", evaluateRequest{
		Reference: "the quick brown fox",
		Input:     "the quick fox",
		Elapsed:   6,
	})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var res evaluate.Result
	s.decode(rec, &res)
	s.Equal(26, res.WPM)
	s.InDelta(13.0/19.0*100, res.Accuracy, 1e-9)
	s.Equal([]evaluate.Mistake{{Expected: "brown", Position: 2}}, res.Mistakes)
}

func (s *APISuite) TestEvaluateRejectsBadInput() {
	rec := s.do(http.MethodPost, "/api/evaluate", evaluateRequest{Reference: "a", Input: "a", Elapsed: -1})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(ErrCodeValidation, s.errorCode(rec))

	req := httptest.NewRequest(http.MethodPost, "/api/evaluate", bytes.NewBufferString(`{"reference":`))
	out := httptest.NewRecorder()
	s.handler.ServeHTTP(out, req)
	s.Equal(http.StatusBadRequest, out.Code)
	s.Equal(ErrCodeBadRequest, s.errorCode(out))

	rec = s.do(http.MethodPost, "/api/evaluate", map[string]any{"reference": "a", "typed": "a"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestDiff() {
	rec := s.do(http.MethodPost, "/api/diff", diffRequest{Reference: "a b c", Input: "a c"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var body diffResponse
	s.decode(rec, &body)
	s.Equal("a [-b-] c", body.Plain)
	s.Require().Len(body.Diff, 5)
	s.Equal(evaluate.StatusSkipped, body.Diff[2].Status)
}

func (s *APISuite) TestAssignmentLifecycle() {
	a := s.createAssignment("Lesson", "one two three")

	rec := s.do(http.MethodGet, "/api/assignments/"+a.ID, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/assignments", nil)
	var list []model.Assignment
	s.decode(rec, &list)
	s.Len(list, 1)

	rec = s.do(http.MethodDelete, "/api/assignments/"+a.ID, nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodGet, "/api/assignments/"+a.ID, nil)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(ErrCodeNotFound, s.errorCode(rec))

	rec = s.do(http.MethodDelete, "/api/assignments/"+a.ID, nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestEmptyAssignmentListIsArray() {
	rec := s.do(http.MethodGet, "/api/assignments", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *APISuite) TestCreateAssignmentValidation() {
	rec := s.do(http.MethodPost, "/api/assignments", assignmentRequest{Title: "", Text: "x"})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(ErrCodeValidation, s.errorCode(rec))
}

func (s *APISuite) TestSubmitOverwritesPreviousScore() {
	a := s.createAssignment("Lesson", "the quick brown fox")
	path := "/api/assignments/" + a.ID + "/submissions/ada"

	rec := s.do(http.MethodPut, path, submissionRequest{Input: "the quick fox", Elapsed: 6})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var first submissionResponse
	s.decode(rec, &first)
	s.Equal(26, first.Score.WPM)
	s.Equal(evaluate.MistakeCounts{Skipped: 1}, first.Score.Counts)
	s.NotEmpty(first.Diff)

	rec = s.do(http.MethodPut, path, submissionRequest{Input: "the quick brown fox", Elapsed: 6})
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/assignments/"+a.ID+"/scores", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var report stats.Report
	s.decode(rec, &report)
	s.Require().Len(report.Scores, 1)
	s.Equal(100.0, report.Scores[0].Accuracy)
	s.Equal(1, report.Summary.Count)
	s.Empty(report.Missed)
}

func (s *APISuite) TestSubmitUnknownAssignment() {
	rec := s.do(http.MethodPut, "/api/assignments/missing/submissions/ada", submissionRequest{Input: "x", Elapsed: 1})
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(ErrCodeNotFound, s.errorCode(rec))

	rec = s.do(http.MethodGet, "/api/assignments/missing/scores", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestScoresFilterByStudent() {
	a := s.createAssignment("Lesson", "alpha beta")
	for _, student := range []string{"ada", "bob"} {
		rec := s.do(http.MethodPut, "/api/assignments/"+a.ID+"/submissions/"+student, submissionRequest{Input: "alpha", Elapsed: 2})
		s.Require().Equal(http.StatusOK, rec.Code)
	}
	rec := s.do(http.MethodGet, "/api/assignments/"+a.ID+"/scores?student=bob", nil)
	var report stats.Report
	s.decode(rec, &report)
	s.Require().Len(report.Scores, 1)
	s.Equal("bob", report.Scores[0].StudentID)
	s.Equal([]string{"beta"}, report.Missed)
}

type downBackend struct {
	*store.Store
}

func (downBackend) Ping(context.Context) error { return errors.New("db down") }

func TestReadyReportsUnavailable(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "down.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	handler := NewServer(downBackend{st}, evaluate.Default, nil).Routes()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := recoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
