package practice

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/practice"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/handlers"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

// GenerateRequest asks for one fresh practice problem
type GenerateRequest struct {
	Category string `json:"data_type"`
}

// SubmitRequest grades a practice attempt. The answer query travels
// with the request because practice problems are never stored.
type SubmitRequest struct {
	SQL        string `json:"sql"`
	AnswerSQL  string `json:"answer_sql"`
	Difficulty string `json:"difficulty"`
}

// Handler handles the on-demand practice API
type Handler struct {
	practiceService practice.IPracticeService
	logger          primary.Logger
}

// NewHandler creates a new practice handler
func NewHandler(practiceService practice.IPracticeService, logger primary.Logger) *Handler {
	return &Handler{
		practiceService: practiceService,
		logger:          logger,
	}
}

// RegisterRoutes registers the API routes for practice mode
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/practice/generate", h.Generate).Methods("POST")
	router.HandleFunc("/api/practice/submit", h.Submit).Methods("POST")
}

// Generate produces a single problem outside the daily rotation.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	category := domain.Category(req.Category)
	if category == "" {
		category = domain.CategoryPA
	}

	problem, err := h.practiceService.GeneratePractice(r.Context(), category)
	switch {
	case errors.Is(err, errs.InvalidCategory):
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		h.logger.Error("Failed to generate practice problem", "category", category, "error", err)
		handlers.ResponseError(w, "Failed to generate practice problem", http.StatusBadGateway)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, problem)
}

// Submit grades a practice attempt without persisting anything.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	result, err := h.practiceService.SubmitPractice(r.Context(), req.SQL, req.AnswerSQL, domain.Difficulty(req.Difficulty))
	if err != nil {
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}
