package templates

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

type templatesRepo interface {
	Add(ctx context.Context, template Template) (*Template, error)
	Get(ctx context.Context, id int) (*Template, error)
	List(ctx context.Context) ([]Template, error)
	Delete(ctx context.Context, id int) error
	AddExercise(ctx context.Context, exercise TemplateExercise) (*TemplateExercise, error)
	ListExercises(ctx context.Context, templateID int) ([]TemplateExercise, error)
}

type AddTemplateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type AddTemplateExerciseRequest struct {
	TemplateID int              `json:"template_id"`
	Name       string           `json:"name"`
	Category   workout.Category `json:"category"`
	Sets       int              `json:"sets"`
	Reps       int              `json:"reps"`
	Weight     float64          `json:"weight"`
	OrderIndex int              `json:"order_index"`
}

type DeleteTemplateResponse struct {
	Success bool `json:"success"`
}

type Handler struct {
	repo    templatesRepo
	metrics *metrics.Manager
}

func NewHandler(repo templatesRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/templates", handler.HandleAdd).Methods("POST", "OPTIONS").Name("new-template")
	r.HandleFunc("/templates", handler.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	r.HandleFunc("/templates/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-template")
	r.HandleFunc("/templates/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-template")
	r.HandleFunc("/templates/exercises", handler.HandleAddExercise).Methods("POST", "OPTIONS").Name("new-template-exercise")
	r.HandleFunc("/templates/{id}/exercises", handler.HandleListExercises).Methods("GET", "OPTIONS").Name("list-template-exercises")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.add")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new template, unmarshal json params: %s", err)
		http.Error(w, "add template failed", http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "error, template name empty", http.StatusBadRequest)
		return
	}

	addedTemplate, err := handler.repo.Add(ctx, Template{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		log.Errorf("failed to add new template [%s]: %s", req.Name, err)
		http.Error(w, "error, failed to add new template", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterTemplatesCreated.Inc()

	templateJson, err := json.Marshal(addedTemplate)
	if err != nil {
		log.Errorf("failed to marshal new template: %s", err)
		http.Error(w, "error, failed to add new template", http.StatusInternalServerError)
		return
	}

	log.Debugf("new template added: %d [%s]", addedTemplate.ID, addedTemplate.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, templateJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.get")
	defer span.End()

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := handler.repo.Get(ctx, id)
	if errors.Is(err, ErrTemplateNotFound) {
		http.Error(w, fmt.Sprintf("template %d not found", id), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Errorf("failed to get template %d: %s", id, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	templateJson, err := json.Marshal(template)
	if err != nil {
		log.Errorf("failed to marshal template: %s", err)
		http.Error(w, "failed to marshal template", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, templateJson, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.list")
	defer span.End()

	templates, err := handler.repo.List(ctx)
	if err != nil {
		log.Errorf("list templates error: %s", err)
		http.Error(w, "failed to get templates", http.StatusInternalServerError)
		return
	}

	templatesJson, err := json.Marshal(templates)
	if err != nil {
		log.Errorf("marshal templates error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, templatesJson, http.StatusOK)
}

// HandleDelete reports success regardless of whether the template
// existed, in contrast to session delete.
func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.delete")
	defer span.End()

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.repo.Delete(ctx, id); err != nil && !errors.Is(err, ErrTemplateNotFound) {
		log.Errorf("failed to delete template %d: %s", id, err)
		http.Error(w, "template not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteTemplateResponse{Success: true})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleAddExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.addexercise")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req AddTemplateExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("new template exercise, unmarshal json params: %s", err)
		http.Error(w, "add template exercise failed", http.StatusBadRequest)
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
	if req.Sets < 0 || req.Reps < 0 || req.OrderIndex < 0 {
		http.Error(w, "error, sets, reps and order index must be non-negative", http.StatusBadRequest)
		return
	}
	if req.Weight < 0 {
		http.Error(w, "error, weight must be non-negative", http.StatusBadRequest)
		return
	}

	// the referenced template must exist before inserting
	if _, err := handler.repo.Get(ctx, req.TemplateID); err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, fmt.Sprintf("template %d not found", req.TemplateID), http.StatusNotFound)
			return
		}
		log.Errorf("failed to get template %d: %s", req.TemplateID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	addedExercise, err := handler.repo.AddExercise(ctx, TemplateExercise{
		TemplateID: req.TemplateID,
		Name:       req.Name,
		Category:   req.Category,
		Sets:       req.Sets,
		Reps:       req.Reps,
		Weight:     req.Weight,
		OrderIndex: req.OrderIndex,
	})
	if err != nil {
		// template can vanish between the check above and the insert
		if errors.Is(err, ErrTemplateNotFound) {
			http.Error(w, fmt.Sprintf("template %d not found", req.TemplateID), http.StatusNotFound)
			return
		}
		log.Errorf("failed to add template exercise [%s] to template %d: %s", req.Name, req.TemplateID, err)
		http.Error(w, "error, failed to add template exercise", http.StatusInternalServerError)
		return
	}

	exerciseJson, err := json.Marshal(addedExercise)
	if err != nil {
		log.Errorf("failed to marshal new template exercise: %s", err)
		http.Error(w, "error, failed to add template exercise", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusCreated)
}

func (handler *Handler) HandleListExercises(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.templates.listexercises")
	defer span.End()

	id, err := idFromVars(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exercises, err := handler.repo.ListExercises(ctx, id)
	if err != nil {
		log.Errorf("list template exercises for template %d: %s", id, err)
		http.Error(w, "failed to get template exercises", http.StatusInternalServerError)
		return
	}

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("marshal template exercises error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
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
