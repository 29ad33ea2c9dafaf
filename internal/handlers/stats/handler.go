package stats

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/stats"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/handlers"
)

// Handler handles the stats and leaderboard API
type Handler struct {
	statsService stats.IStatsService
	logger       primary.Logger
}

// NewHandler creates a new stats handler
func NewHandler(statsService stats.IStatsService, logger primary.Logger) *Handler {
	return &Handler{
		statsService: statsService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for stats. Personal routes
// require a token; the leaderboard is public.
func (h *Handler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.Handle("/api/stats/me", mw.JWTMiddleware(http.HandlerFunc(h.Me))).Methods("GET")
	router.Handle("/api/stats/history", mw.JWTMiddleware(http.HandlerFunc(h.History))).Methods("GET")
	router.HandleFunc("/api/stats/leaderboard", h.Leaderboard).Methods("GET")
}

// Me returns the caller's aggregate stats.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	payload, ok := handlers.AuthPayloadFrom(r.Context())
	if !ok {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userStats, err := h.statsService.GetUserStats(r.Context(), payload.Username)
	if err != nil {
		h.logger.Error("Failed to load stats", "userName", payload.Username, "error", err)
		handlers.ResponseError(w, "Failed to load stats", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, userStats)
}

// History lists the caller's recent attempts, newest first.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	payload, ok := handlers.AuthPayloadFrom(r.Context())
	if !ok {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	var category *domain.Category
	if raw := r.URL.Query().Get("data_type"); raw != "" {
		c := domain.Category(raw)
		category = &c
	}

	history, err := h.statsService.GetHistory(r.Context(), payload.Username, limit, category)
	if err != nil {
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"history": history})
}

// Leaderboard returns the public ranked board.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	board, err := h.statsService.GetLeaderboard(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to load leaderboard", "error", err)
		handlers.ResponseError(w, "Failed to load leaderboard", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"leaderboard": board})
}
