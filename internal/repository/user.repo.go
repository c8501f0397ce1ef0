package repository

import (
	"context"
	"errors"
	"fmt"

	"company-service/internal/domain"
	xerrors "company-service/pkg/xerrors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// Create inserts a new user and returns the persisted row. A duplicate
// email surfaces as ErrEmailAlreadyInUse via the unique constraint.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password, full_name, gender, mobile_no, signup_type)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, is_email_verified, is_mobile_verified, created_at, updated_at
	`, u.Email, u.PasswordHash, u.FullName, u.Gender, u.MobileNo, u.SignupType,
	).Scan(&u.ID, &u.IsEmailVerified, &u.IsMobileVerified, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if xerrors.IsUniqueViolation(err) {
			return nil, xerrors.ErrEmailAlreadyInUse
		}
		r.logger.Error("failed to insert user", zap.String("email", u.Email), zap.Error(err))
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRow(ctx, `
		SELECT id, email, password, full_name, gender, mobile_no, signup_type,
		       is_email_verified, is_mobile_verified, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Gender, &u.MobileNo,
		&u.SignupType, &u.IsEmailVerified, &u.IsMobileVerified, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, xerrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, userID int64, value bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_email_verified = $1, updated_at = NOW() WHERE id = $2
	`, value, userID)
	if err != nil {
		return fmt.Errorf("set email verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetMobileVerified(ctx context.Context, userID int64, value bool) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET is_mobile_verified = $1, updated_at = NOW() WHERE id = $2
	`, value, userID)
	if err != nil {
		return fmt.Errorf("set mobile verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
