package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/core/services/auth"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/handlers"
	"github.com/KnellBalm/Offline-Lab/internal/handlers/response"
)

type ServiceDependencies struct {
	GGAuthService    auth.IAuthService
	LocalAuthService auth.IAuthService
	UserPort         secondary.UserPort
}

var googleOAuthConfig = &oauth2.Config{
	ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
	ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	Scopes:       []string{"profile", "email"},
	Endpoint:     google.Endpoint,
}

// GoogleUser struct to decode Google API response
type GoogleUser struct {
	ID    string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest represents a local credentials login
type LoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest represents a local sign-up
type RegisterRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// NicknameRequest updates the name shown on the leaderboard
type NicknameRequest struct {
	Nickname string `json:"nickname"`
}

type Handler struct {
	providerHandler map[domain.Provider]auth.IAuthService
	userPort        secondary.UserPort
	logger          primary.Logger
}

func NewHandler(logger primary.Logger) *Handler {
	return &Handler{
		providerHandler: make(map[domain.Provider]auth.IAuthService),
		logger:          logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, svcDep *ServiceDependencies, mw *handlers.MiddlewareProvider) {
	h.providerHandler[domain.ProviderGoogle] = svcDep.GGAuthService
	h.providerHandler[domain.ProviderLocal] = svcDep.LocalAuthService
	h.userPort = svcDep.UserPort
	router.HandleFunc("/auth/google", GoogleLoginHandler)
	router.HandleFunc("/auth/callback", h.GoogleCallbackHandler).Methods("GET")
	router.HandleFunc("/auth/login", h.LocalLoginHandler).Methods("POST")
	router.HandleFunc("/auth/register", h.RegisterHandler).Methods("POST")
	router.Handle("/auth/nickname", mw.JWTMiddleware(http.HandlerFunc(h.UpdateNicknameHandler))).Methods("PUT")
}

// GoogleLoginHandler redirects user to Google OAuth2 login
func GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	url := googleOAuthConfig.AuthCodeURL("randomstate")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles Google OAuth2 callback
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := context.Background()
	// Get authorization code from URL
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No code in URL", http.StatusBadRequest)
		return
	}
	// Exchange code for access token
	token, err := googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusInternalServerError)
		return
	}
	// Fetch user info from Google API
	client := googleOAuthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()
	// Decode Google user info
	var googleUser GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}
	// Return JWT to client
	w.Header().Set("Content-Type", "application/json")
	tokenStr, err := h.providerHandler[domain.ProviderGoogle].Login(ctx, &domain.Users{
		GoogleID:     &googleUser.ID,
		Email:        &googleUser.Email,
		Nickname:     &googleUser.Name,
		AuthProvider: string(domain.ProviderGoogle),
	})
	if err != nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusUnauthorized,
		})
		return
	}

	loginResponse := domain.LoginResponse{
		Token: tokenStr,
	}
	response.WriteSuccess(w, loginResponse)
}

// LocalLoginHandler signs a local account in with username/password
func (h *Handler) LocalLoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	tokenStr, err := h.providerHandler[domain.ProviderLocal].Login(r.Context(), &domain.Users{
		UserName:     req.UserName,
		PasswordHash: &req.Password,
		AuthProvider: string(domain.ProviderLocal),
	})
	if err != nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusUnauthorized,
		})
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: tokenStr})
}

// RegisterHandler creates a local account
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	registrar, ok := h.providerHandler[domain.ProviderLocal].(auth.IRegistrar)
	if !ok {
		handlers.ResponseError(w, "Registration not supported", http.StatusNotImplemented)
		return
	}

	user := &domain.Users{
		UserName:     req.UserName,
		PasswordHash: &req.Password,
	}
	if req.Nickname != "" {
		user.Nickname = &req.Nickname
	}
	if err := registrar.Register(r.Context(), user); err != nil {
		handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// UpdateNicknameHandler changes the leaderboard display name
func (h *Handler) UpdateNicknameHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := handlers.AuthPayloadFrom(r.Context())
	if !ok {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req NicknameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nickname == "" {
		handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := h.userPort.UpdateNickname(r.Context(), payload.Username, req.Nickname); err != nil {
		h.logger.Error("Failed to update nickname", "userName", payload.Username, "error", err)
		handlers.ResponseError(w, "Failed to update nickname", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
