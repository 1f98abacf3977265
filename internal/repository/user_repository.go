package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reyan-luxe/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

const userColumns = `u.id, u.username, u.email, u.phone_number, u.address, u.created_at`

// scanUser scans one user row.
func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.Address, &u.CreatedAt)
}

// GetByID retrieves a user by id.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`

	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.email = $1`

	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, email), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetByToken resolves an opaque auth token to a user. Tokens are issued by
// the auth service; this backend only reads them.
func (r *userRepository) GetByToken(ctx context.Context, token string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		JOIN auth_tokens t ON t.user_id = u.id
		WHERE t.token = $1
	`

	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, token), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to resolve auth token")
		return nil, fmt.Errorf("failed to resolve auth token: %w", err)
	}

	return &u, nil
}

// UpsertOTP replaces the user's active OTP with a fresh unverified one.
func (r *userRepository) UpsertOTP(ctx context.Context, userID int64, code string) error {
	query := `
		INSERT INTO otps (id, user_id, code, verified, created_at)
		VALUES ($1, $2, $3, false, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET code = EXCLUDED.code, verified = false, created_at = EXCLUDED.created_at
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), userID, code, time.Now())
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to upsert OTP")
		return fmt.Errorf("failed to upsert OTP: %w", err)
	}

	return nil
}

// GetOTP retrieves the user's OTP matching code, or nil when none matches.
func (r *userRepository) GetOTP(ctx context.Context, userID int64, code string) (*model.OTP, error) {
	query := `
		SELECT id, user_id, code, verified, created_at
		FROM otps
		WHERE user_id = $1 AND code = $2
	`

	var otp model.OTP
	err := r.pool.QueryRow(ctx, query, userID, code).Scan(
		&otp.ID, &otp.UserID, &otp.Code, &otp.Verified, &otp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query OTP")
		return nil, fmt.Errorf("failed to query OTP: %w", err)
	}

	return &otp, nil
}

// MarkOTPVerified flags the OTP as verified.
func (r *userRepository) MarkOTPVerified(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `UPDATE otps SET verified = true WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("otp_id", id.String()).Msg("failed to mark OTP verified")
		return fmt.Errorf("failed to mark OTP verified: %w", err)
	}
	return nil
}
