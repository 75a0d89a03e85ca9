package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/repbase/workout-tracker/internal/telemetry/metrics"
	"github.com/repbase/workout-tracker/internal/telemetry/tracing"
	"github.com/repbase/workout-tracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type sessionsRepo interface {
	Add(ctx context.Context, session Session) (*Session, error)
	Get(ctx context.Context, id int) (*Session, error)
	List(ctx context.Context) ([]Session, error)
	Update(ctx context.Context, params UpdateSessionParams) (*Session, error)
	Delete(ctx context.Context, id int) error
}

type templatesChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type AddSessionRequest struct {
	Name       string `json:"name"`
	TemplateID *int   `json:"template_id"`
}

type UpdateSessionRequest struct {
	Name    *string    `json:"name"`
	EndTime *time.Time `json:"end_time"`
}

type DeleteSessionResponse struct {
	Success bool `json:"success"`
}

type Handler struct {
	repo      sessionsRepo
	templates templatesChecker
	metrics   *metrics.Manager
}

func NewHandler(repo sessionsRepo, templates templatesChecker, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:      repo,
		templates: templates,
		metrics:   metrics,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/sessions", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-session")
	r.HandleFunc("/sessions", handler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	r.HandleFunc("/sessions/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/sessions/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-session")
	r.HandleFunc("/sessions/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, session name empty", http.StatusBadRequest)
		return
	}

	if req.TemplateID != nil {
		exists, err := handler.templates.Exists(ctx, *req.TemplateID)
		if err != nil {
			log.Errorf("failed to check template %d: %s", *req.TemplateID, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !exists {
			http.Error(w, fmt.Sprintf("template %d not found", *req.TemplateID), http.StatusNotFound)
			return
		}
	}

	addedSession, err := handler.repo.Add(ctx, Session{
		Name:       req.Name,
		TemplateID: req.TemplateID,
	})
	if errors.Is(err, ErrTemplateMissing) {
		http.Error(w, fmt.Sprintf("template %d not found", *req.TemplateID), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to add new session [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsStarted.Inc()

	sessionJson, err := json.Marshal(addedSession)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	log.Debugf("new session started: %d [%s]", addedSession.ID, addedSession.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, fmt.Sprintf("session %d not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get session %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		http.Error(w, "failed to marshal session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	sessions, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	sessionsJson, err := json.Marshal(sessions)
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionsJson, http.StatusOK)
}

// HandleUpdate patches name and/or end_time. Setting end_time is how
// a session gets finished.
func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.update")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req UpdateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update session, unmarshal json params: %s", err)
		http.Error(w, "update session failed", http.StatusBadRequest)
		return
	}

	if req.Name != nil && *req.Name == "" {
		http.Error(w, "error, session name empty", http.StatusBadRequest)
		return
	}

	updatedSession, err := handler.repo.Update(ctx, UpdateSessionParams{
		ID:      id,
		Name:    req.Name,
		EndTime: req.EndTime,
	})
	if errors.Is(err, ErrSessionNotFound) {
		http.Error(w, fmt.Sprintf("session %d not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to update session %d: %s", id, err)
		http.Error(w, "error, failed to update session", http.StatusInternalServerError)
		return
	}

	if req.EndTime != nil {
		handler.metrics.CounterSessionsEnded.Inc()
		log.Debugf("session ended: %d [%s]", updatedSession.ID, updatedSession.Name)
	}

	sessionJson, err := json.Marshal(updatedSession)
	if err != nil {
		log.Errorf("failed to marshal updated session: %s", err)
		http.Error(w, "error, failed to update session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

// HandleDelete reports success only when the session row actually
// existed, in contrast to template and exercise delete.
func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted := true
	if err := handler.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			log.Errorf("failed to delete session %d: %s", id, err)
			http.Error(w, "session not deleted", http.StatusInternalServerError)
			return
		}
		deleted = false
	}

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{Success: deleted})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func idFromVars(r *http.Request) (int, error) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		return 0, errors.New("error, id empty")
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return 0, errors.New("error, id NaN")
	}
	return id, nil
}
