package secondary

import (
	"context"

	"github.com/KnellBalm/Offline-Lab/internal/domain"
)

type UserPort interface {
	Create(ctx context.Context, user *domain.Users) error
	GetByUserName(ctx context.Context, userName string) (*domain.Users, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error)
	UpdateNickname(ctx context.Context, userName string, nickname string) error
}
