package exercises

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/repbase/workout-tracker/internal/telemetry/metrics"
	"github.com/repbase/workout-tracker/internal/telemetry/tracing"
	"github.com/repbase/workout-tracker/internal/workout"
	"github.com/repbase/workout-tracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type exercisesRepo interface {
	Add(ctx context.Context, exercise Exercise) (*Exercise, error)
	Get(ctx context.Context, id int) (*Exercise, error)
	ListForSession(ctx context.Context, sessionID int) ([]Exercise, error)
	Update(ctx context.Context, params UpdateExerciseParams) (*Exercise, error)
	Delete(ctx context.Context, id int) error
}

type sessionsChecker interface {
	Exists(ctx context.Context, id int) (bool, error)
}

type AddExerciseRequest struct {
	Name             string           `json:"name"`
	Category         workout.Category `json:"category"`
	Sets             int              `json:"sets"`
	Reps             int              `json:"reps"`
	Weight           float64          `json:"weight"`
	WorkoutSessionID int              `json:"workout_session_id"`
	TemplateID       *int             `json:"template_id"`
}

type UpdateExerciseRequest struct {
	Name     *string           `json:"name"`
	Category *workout.Category `json:"category"`
	Sets     *int              `json:"sets"`
	Reps     *int              `json:"reps"`
	Weight   *float64          `json:"weight"`
}

type DeleteExerciseResponse struct {
	Success bool `json:"success"`
}

type Handler struct {
	repo     exercisesRepo
	sessions sessionsChecker
	metrics  *metrics.Manager
}

func NewHandler(repo exercisesRepo, sessions sessionsChecker, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:     repo,
		sessions: sessions,
		metrics:  metrics,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/exercises", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	r.HandleFunc("/exercises/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-exercise")
	r.HandleFunc("/exercises/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	r.HandleFunc("/sessions/{id}/exercises", handler.HandleListForSession).Methods("GET", "OPTIONS").Name("list-session-exercises")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new exercise, unmarshal json params: %s", err)
		http.Error(w, "add exercise failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}
	if !req.Category.Valid() {
		http.Error(w, fmt.Sprintf("error, unknown category %q", req.Category), http.StatusBadRequest)
		return
	}
	if req.Sets < 0 || req.Reps < 0 {
		http.Error(w, "error, sets and reps must be non-negative", http.StatusBadRequest)
		return
	}
	if req.Weight < 0 {
		http.Error(w, "error, weight must be non-negative", http.StatusBadRequest)
		return
	}

	// the session being logged against must exist
	exists, err := handler.sessions.Exists(ctx, req.WorkoutSessionID)
	if err != nil {
		log.Errorf("failed to check session %d: %s", req.WorkoutSessionID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !exists {
		http.Error(w, fmt.Sprintf("session %d not found", req.WorkoutSessionID), http.StatusNotFound)
		return
	}

	addedExercise, err := handler.repo.Add(ctx, Exercise{
		Name:             req.Name,
		Category:         req.Category,
		Sets:             req.Sets,
		Reps:             req.Reps,
		Weight:           req.Weight,
		WorkoutSessionID: req.WorkoutSessionID,
		TemplateID:       req.TemplateID,
	})
	if errors.Is(err, ErrSessionMissing) {
		http.Error(w, fmt.Sprintf("session %d not found", req.WorkoutSessionID), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to add exercise [%s] to session %d: %s", req.Name, req.WorkoutSessionID, err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterExercisesAdded.Inc()

	exerciseJson, err := json.Marshal(addedExercise)
	if err != nil {
		log.Errorf("failed to marshal new exercise: %s", err)
		http.Error(w, "error, failed to add exercise", http.StatusInternalServerError)
		return
	}

	log.Debugf("new exercise added: %d [%s], session %d", addedExercise.ID, addedExercise.Name, addedExercise.WorkoutSessionID)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusCreated)
}

func (handler *Handler) HandleListForSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.listforsession")
	defer span.End()

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exercises, err := handler.repo.ListForSession(ctx, id)
	if err != nil {
		log.Errorf("list exercises for session %d: %s", id, err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.update")
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

	var req UpdateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update exercise, unmarshal json params: %s", err)
		http.Error(w, "update exercise failed", http.StatusBadRequest)
		return
	}

	if req.Name != nil && *req.Name == "" {
		http.Error(w, "error, exercise name empty", http.StatusBadRequest)
		return
	}
	if req.Category != nil && !req.Category.Valid() {
		http.Error(w, fmt.Sprintf("error, unknown category %q", *req.Category), http.StatusBadRequest)
		return
	}
	if (req.Sets != nil && *req.Sets < 0) || (req.Reps != nil && *req.Reps < 0) {
		http.Error(w, "error, sets and reps must be non-negative", http.StatusBadRequest)
		return
	}
	if req.Weight != nil && *req.Weight < 0 {
		http.Error(w, "error, weight must be non-negative", http.StatusBadRequest)
		return
	}

	updatedExercise, err := handler.repo.Update(ctx, UpdateExerciseParams{
		ID:       id,
		Name:     req.Name,
		Category: req.Category,
		Sets:     req.Sets,
		Reps:     req.Reps,
		Weight:   req.Weight,
	})
	if errors.Is(err, ErrExerciseNotFound) {
		http.Error(w, fmt.Sprintf("exercise %d not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to update exercise %d: %s", id, err)
		http.Error(w, "error, failed to update exercise", http.StatusInternalServerError)
		return
	}

	exerciseJson, err := json.Marshal(updatedExercise)
	if err != nil {
		log.Errorf("failed to marshal updated exercise: %s", err)
		http.Error(w, "error, failed to update exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusOK)
}

// HandleDelete reports success regardless of whether the exercise
// existed, in contrast to session delete.
func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.exercises.delete")
	defer span.End()

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrExerciseNotFound) {
		log.Errorf("failed to delete exercise %d: %s", id, err)
		http.Error(w, "exercise not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteExerciseResponse{Success: true})
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
