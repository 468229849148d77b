// Package api exposes evaluation and score storage over JSON HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/verte-zerg/stenodrill/internal/evaluate"
	"github.com/verte-zerg/stenodrill/internal/logging"
	"github.com/verte-zerg/stenodrill/internal/model"
)

// Backend is the storage the API serves.
type Backend interface {
	CreateAssignment(ctx context.Context, title, text string) (model.Assignment, error)
	GetAssignment(ctx context.Context, id string) (model.Assignment, error)
	ListAssignments(ctx context.Context) ([]model.Assignment, error)
	DeleteAssignment(ctx context.Context, id string) error
	SaveScore(ctx context.Context, score model.Score) (model.Score, error)
	ListScores(ctx context.Context, filter model.ScoreFilter) ([]model.Score, error)
	Ping(ctx context.Context) error
}

// Server holds the HTTP handlers' dependencies.
type Server struct {
	Store     Backend
	Evaluator evaluate.Evaluator
	log       *zap.Logger
	now       func() time.Time
}

// NewServer returns a Server. A nil logger disables logging.
func NewServer(st Backend, ev evaluate.Evaluator, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Store: st, Evaluator: ev, log: log, now: time.Now}
}

// Routes builds the HTTP router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(recoveryMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Post("/evaluate", s.handleEvaluate)
		r.Post("/diff", s.handleDiff)
		r.Get("/assignments", s.handleListAssignments)
		r.Post("/assignments", s.handleCreateAssignment)
		r.Get("/assignments/{id}", s.handleGetAssignment)
		r.Delete("/assignments/{id}", s.handleDeleteAssignment)
		r.Put("/assignments/{id}/submissions/{student}", s.handleSubmit)
		r.Get("/assignments/{id}/scores", s.handleAssignmentScores)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleError writes err as a JSON error body and logs it by severity.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logging.FromContext(r.Context())
	appErr := toAppError(err)
	switch {
	case appErr.Status >= 500:
		log.Error("server error", zap.Error(appErr))
	case appErr.Status >= 400:
		log.Warn("client error", zap.Error(appErr))
	}
	writeJSON(w, r, appErr.Status, errorBody(appErr))
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(appErr *AppError) errorResponse {
	return errorResponse{Error: errorDetail{Code: appErr.Code, Message: appErr.Message}}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Warn("failed to write response", zap.Error(err))
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequestError("invalid JSON body: "+err.Error(), err)
	}
	return nil
}
