package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/answerai/answerai/internal/database"
	"github.com/answerai/answerai/internal/model"
)

// UserRepository handles user data persistence
type UserRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *database.Postgres) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `
		SELECT id, email, email_verified, email_verification_token, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// SetVerificationToken stores the hash of a freshly issued verification token,
// replacing any previous one.
func (r *UserRepository) SetVerificationToken(ctx context.Context, id, tokenHash string) error {
	query := `UPDATE users SET email_verification_token = $1, updated_at = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, tokenHash, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ClearVerificationToken drops an outstanding verification token.
func (r *UserRepository) ClearVerificationToken(ctx context.Context, id string) error {
	query := `UPDATE users SET email_verification_token = NULL, updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to clear verification token: %w", err)
	}
	return nil
}

// VerifyByToken marks the user holding tokenHash as verified and consumes the
// token. It returns the user ID, or ErrNotFound if no user holds the token.
func (r *UserRepository) VerifyByToken(ctx context.Context, tokenHash string) (string, error) {
	query := `
		UPDATE users
		SET email_verified = TRUE, email_verification_token = NULL, updated_at = $1
		WHERE email_verification_token = $2
		RETURNING id
	`
	var id string
	err := r.db.QueryRowContext(ctx, query, time.Now(), tokenHash).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to verify email: %w", err)
	}
	return id, nil
}

// scanUser scans a single user row
func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	var tokenHash sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.EmailVerified,
		&tokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	if tokenHash.Valid {
		user.VerificationTokenHash = &tokenHash.String
	}
	return &user, nil
}
