package userrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/KnellBalm/Offline-Lab/internal/core/ports/primary"
	"github.com/KnellBalm/Offline-Lab/internal/core/ports/secondary"
	"github.com/KnellBalm/Offline-Lab/internal/domain"
	querybuilder "github.com/KnellBalm/Offline-Lab/internal/utils"
)

var _ secondary.UserPort = (*userRepo)(nil)

type userRepo struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// New creates a new PostgreSQL user repository
func New(db *sqlx.DB, logger primary.Logger) secondary.UserPort {
	return &userRepo{
		db:     db,
		logger: logger,
		schema: os.Getenv("DB_SCHEMA"),
	}
}

func (u *userRepo) Create(ctx context.Context, user *domain.Users) error {
	tbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Insert(
			tbl.UserName, tbl.Nickname, tbl.PasswordHash,
			tbl.Email, tbl.AuthProvider, tbl.GoogleID,
		).
		Into(tbl.GetTableName()).
		Values(
			user.UserName, user.Nickname, user.PasswordHash,
			user.Email, user.AuthProvider, user.GoogleID,
		).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	if _, err := u.db.ExecContext(ctx, query, args...); err != nil {
		u.logger.Error("Failed to create user", "userName", user.UserName, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *userRepo) GetByUserName(ctx context.Context, userName string) (*domain.Users, error) {
	return u.getByColumn(ctx, domain.GetUserTable().UserName, userName)
}

func (u *userRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error) {
	return u.getByColumn(ctx, domain.GetUserTable().GoogleID, googleID)
}

func (u *userRepo) getByColumn(ctx context.Context, column, value string) (*domain.Users, error) {
	tbl := domain.GetUserTable()
	query, args := querybuilder.NewQueryBuilder(u.schema).
		Select(
			tbl.ID, tbl.UserName, tbl.Nickname, tbl.PasswordHash,
			tbl.Email, tbl.AuthProvider, tbl.GoogleID,
		).
		From(tbl.GetTableName()).
		Where(fmt.Sprintf("%s = ?", column), value).
		Build()

	query = sqlx.Rebind(sqlx.DOLLAR, query)
	var user domain.Users
	if err := u.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return &user, nil
}

func (u *userRepo) UpdateNickname(ctx context.Context, userName string, nickname string) error {
	tbl := domain.GetUserTable()
	query := fmt.Sprintf(
		"UPDATE %s SET %s = $1 WHERE %s = $2",
		tbl.GetTableName(), tbl.Nickname, tbl.UserName,
	)
	if _, err := u.db.ExecContext(ctx, query, nickname, userName); err != nil {
		return fmt.Errorf("failed to update nickname: %w", err)
	}
	return nil
}
