package sqlapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/grading"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/problemset"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/handlers"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

// Handler handles the SQL editor API: free execution, graded
// submissions, hints and the daily problem listing.
type Handler struct {
	gradingService grading.IGradingService
	problemService problemset.IProblemSetService
	runner         secondary.QueryRunner
	logger         primary.Logger
}

// NewHandler creates a new SQL API handler
func NewHandler(
	gradingService grading.IGradingService,
	problemService problemset.IProblemSetService,
	runner secondary.QueryRunner,
	logger primary.Logger,
) *Handler {
	return &Handler{
		gradingService: gradingService,
		problemService: problemService,
		runner:         runner,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for the SQL editor
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Handle("/api/sql/execute", mw.OptionalJWT(http.HandlerFunc(h.Execute))).Methods("POST")
	router.Handle("/api/sql/submit", mw.OptionalJWT(http.HandlerFunc(h.Submit))).Methods("POST")
	router.HandleFunc("/api/sql/hint", h.Hint).Methods("POST")
	router.HandleFunc("/api/problems/today", h.Today).Methods("GET")
}

// Execute runs a query and returns the raw result set without grading.
func (h *Handler) Execute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.SQL == "" {
		handlers.ResponseError(w, errs.SubmittedSQLNeeded.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.runner.RunQuery(r.Context(), req.SQL)
	if err != nil {
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, ExecuteResponse{
		Columns:  result.Columns,
		Rows:     result.Rows,
		RowCount: result.RowCount(),
	})
}

// Submit grades a submission. Anonymous submissions are allowed; a
// verdict always comes back with status 200, right or wrong.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.SQL == "" {
		handlers.ResponseError(w, errs.SubmittedSQLNeeded.Error(), http.StatusBadRequest)
		return
	}
	category := domain.Category(req.Category)
	if !category.Valid() {
		handlers.ResponseError(w, errs.InvalidCategory.Error(), http.StatusBadRequest)
		return
	}

	var userName *string
	if payload, ok := handlers.AuthPayloadFrom(r.Context()); ok {
		userName = &payload.Username
	}

	verdict := h.gradingService.Grade(r.Context(), req.ProblemID, req.SQL, category, userName)
	handlers.ResponseWithJson(w, http.StatusOK, verdict)
}

// Hint asks the generator to explain what is wrong with a submission.
func (h *Handler) Hint(w http.ResponseWriter, r *http.Request) {
	var req HintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.SQL == "" {
		handlers.ResponseError(w, errs.SubmittedSQLNeeded.Error(), http.StatusBadRequest)
		return
	}

	hint, err := h.gradingService.Hint(r.Context(), req.ProblemID, req.SQL, domain.Category(req.Category))
	if err != nil {
		h.logger.Error("Failed to produce hint", "problemId", req.ProblemID, "error", err)
		handlers.ResponseError(w, "Failed to produce hint", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]string{"hint": hint})
}

// Today lists the day's problems for a category, defaulting to "pa".
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	category := domain.Category(r.URL.Query().Get("data_type"))
	if category == "" {
		category = domain.CategoryPA
	}

	set, err := h.problemService.GetToday(r.Context(), category)
	switch {
	case errors.Is(err, errs.InvalidCategory):
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, errs.ProblemSetMissing):
		handlers.ResponseError(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("Failed to load daily problems", "category", category, "error", err)
		handlers.ResponseError(w, "Failed to load problems", http.StatusInternalServerError)
		return
	}

	views := make([]ProblemView, 0, len(set.Problems))
	for _, p := range set.Problems {
		views = append(views, ProblemView{
			ProblemID:  p.ProblemID,
			Title:      p.Title,
			Difficulty: string(p.Difficulty),
			Topic:      p.Topic,
			Question:   p.Question,
		})
	}

	handlers.ResponseWithJson(w, http.StatusOK, TodayResponse{
		Date:     set.Date.Format("2006-01-02"),
		Category: string(set.Category),
		Problems: views,
	})
}
