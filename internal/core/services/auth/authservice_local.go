package auth

import (
	"context"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	"github.com/KnellBalm/Offline-Lab/internal/static/errs"
)

var (
	_ IAuthService = &localAuthService{}
	_ IRegistrar   = &localAuthService{}
)

type localAuthService struct {
	userPort    secondary.UserPort
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	userPort secondary.UserPort,
	jwtProvider primary.JWTService,
) IAuthService {
	return &localAuthService{
		userPort:    userPort,
		jwtProvider: jwtProvider,
	}
}

func (g localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

// Login checks the password against the stored bcrypt hash. The
// incoming PasswordHash field carries the plaintext attempt.
func (g localAuthService) Login(ctx context.Context, users *domain.Users) (string, error) {
	if users.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}
	usr, err := g.userPort.GetByUserName(ctx, users.UserName)
	if err != nil {
		return "", err
	}
	if usr == nil || usr.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}
	valid, err := g.jwtProvider.VerifyPassword(ctx, *usr.PasswordHash, *users.PasswordHash)
	if err != nil {
		return "", errs.InvalidCredentials
	}
	if !valid {
		return "", errs.InvalidCredentials
	}

	return generateToken(ctx, g.jwtProvider, usr)
}

// Register creates a local account, hashing the plaintext carried in
// PasswordHash before it touches storage.
func (g localAuthService) Register(ctx context.Context, users *domain.Users) error {
	if users.UserName == "" || users.PasswordHash == nil || *users.PasswordHash == "" {
		return errs.InvalidCredentials
	}
	existing, err := g.userPort.GetByUserName(ctx, users.UserName)
	if err != nil {
		return err
	}
	if existing != nil {
		return errs.UserAlreadyExists
	}

	hash, err := g.jwtProvider.EncryptPassword(ctx, *users.PasswordHash)
	if err != nil {
		return errs.InternalError
	}
	users.PasswordHash = &hash
	users.AuthProvider = string(domain.ProviderLocal)
	if users.Nickname == nil {
		users.Nickname = &users.UserName
	}
	if err := g.userPort.Create(ctx, users); err != nil {
		return errs.FailedToCreateUser
	}
	return nil
}
