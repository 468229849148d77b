package api

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/verte-zerg/stenodrill/internal/diffview"
	"github.com/verte-zerg/stenodrill/internal/evaluate"
	"github.com/verte-zerg/stenodrill/internal/logging"
	"github.com/verte-zerg/stenodrill/internal/model"
	"github.com/verte-zerg/stenodrill/internal/stats"
)

// missedWordsLimit bounds the missed-word list in score reports.
const missedWordsLimit = 10

type evaluateRequest struct {
	Reference string  `json:"reference"`
	Input     string  `json:"input"`
	Elapsed   float64 `json:"elapsed"`
}

type diffRequest struct {
	Reference string `json:"reference"`
	Input     string `json:"input"`
}

type diffResponse struct {
	Diff  []evaluate.WordDiff `json:"diff"`
	Plain string              `json:"plain"`
}

type assignmentRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type submissionRequest struct {
	Input   string  `json:"input"`
	Elapsed float64 `json:"elapsed"`
}

type submissionResponse struct {
	Score model.Score         `json:"score"`
	Diff  []evaluate.WordDiff `json:"diff"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Ping(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn("readiness check failed", zap.Error(err))
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	elapsed, err := elapsedDuration(req.Elapsed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, s.Evaluator.Evaluate(req.Reference, req.Input, elapsed))
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	diffs := s.Evaluator.Diff(req.Reference, req.Input)
	writeJSON(w, r, http.StatusOK, diffResponse{Diff: diffs, Plain: diffview.RenderPlain(diffs)})
}

func (s *Server) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := s.Store.ListAssignments(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if assignments == nil {
		assignments = []model.Assignment{}
	}
	writeJSON(w, r, http.StatusOK, assignments)
}

func (s *Server) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req assignmentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	a, err := s.Store.CreateAssignment(r.Context(), req.Title, req.Text)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("assignment created", zap.String("assignment", a.ID))
	writeJSON(w, r, http.StatusCreated, a)
}

func (s *Server) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := s.Store.GetAssignment(r.Context(), id)
	if err != nil {
		handleError(w, r, notFoundAs(err, "assignment", id))
		return
	}
	writeJSON(w, r, http.StatusOK, a)
}

func (s *Server) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.DeleteAssignment(r.Context(), id); err != nil {
		handleError(w, r, notFoundAs(err, "assignment", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	student := strings.TrimSpace(chi.URLParam(r, "student"))
	if student == "" {
		handleError(w, r, validationError("student", "must not be empty"))
		return
	}
	var req submissionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	elapsed, err := elapsedDuration(req.Elapsed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	a, err := s.Store.GetAssignment(r.Context(), id)
	if err != nil {
		handleError(w, r, notFoundAs(err, "assignment", id))
		return
	}

	res := s.Evaluator.Evaluate(a.Text, req.Input, elapsed)
	score, err := s.Store.SaveScore(r.Context(), model.NewScore(a.ID, student, res, s.now()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("score saved",
		zap.String("assignment", a.ID),
		zap.String("student", student),
		zap.Int("wpm", score.WPM),
		zap.Float64("accuracy", score.Accuracy))
	writeJSON(w, r, http.StatusOK, submissionResponse{
		Score: score,
		Diff:  s.Evaluator.Diff(a.Text, req.Input),
	})
}

func (s *Server) handleAssignmentScores(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.Store.GetAssignment(r.Context(), id); err != nil {
		handleError(w, r, notFoundAs(err, "assignment", id))
		return
	}
	filter := model.ScoreFilter{
		AssignmentID: id,
		StudentID:    strings.TrimSpace(r.URL.Query().Get("student")),
	}
	report, err := stats.BuildReport(r.Context(), s.Store, filter, missedWordsLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

// notFoundAs names the missing resource in store not-found errors.
func notFoundAs(err error, resource, id string) error {
	if toAppError(err).Status == http.StatusNotFound {
		return notFoundError(resource, id)
	}
	return err
}

func elapsedDuration(seconds float64) (time.Duration, error) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, validationError("elapsed", "must be a non-negative number of seconds")
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
