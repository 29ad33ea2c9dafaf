package auth

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/golang-jwt/jwt/v5"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/global/logger"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

// submitPermission is the single permission every authenticated learner
// receives; the middleware checks for it on grading routes.
const submitPermission = "sql_practice.submit"

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, users *domain.Users) (string, error)
}

// IRegistrar is implemented by providers that support self-service
// sign-up. Google accounts are created implicitly on first login.
type IRegistrar interface {
	Register(ctx context.Context, users *domain.Users) error
}

func generateToken(ctx context.Context, jwtProvider primary.JWTService, user *domain.Users) (string, error) {
	authPayload := domain.AuthPayload{
		Username:   user.UserName,
		Permission: []string{submitPermission},
	}
	if user.Nickname != nil {
		authPayload.Nickname = *user.Nickname
	}
	var buf bytes.Buffer

	err := json.NewEncoder(&buf).Encode(authPayload)
	if err != nil {
		return "", errs.InternalError
	}
	var payload map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &payload)
	if err != nil {
		logger.Error("Failed to unmarshal auth payload", "error", err)
		return "", errs.InternalError
	}
	token, err := jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, payload)
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}
