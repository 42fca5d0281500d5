package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"applytrack/api/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, first_name, last_name, password_hash, is_verified,
	verification_token, verification_token_expires, profile_id, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (id, email, first_name, last_name, password_hash, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), user.Email, user.FirstName, user.LastName, user.PasswordHash, user.IsVerified)

	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE verification_token = $1`
	return scanUser(r.pool.QueryRow(ctx, query, token))
}

func (r *UserRepository) SetVerificationToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET verification_token = $2, verification_token_expires = $3, updated_at = now()
		 WHERE id = $1`,
		userID, token, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("set verification token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ClaimVerification is a single conditional UPDATE so that two racing
// verify calls for the same token cannot both win: the loser matches zero
// rows and gets domain.ErrTokenInvalid.
func (r *UserRepository) ClaimVerification(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	query := `UPDATE users
		SET is_verified = TRUE, verification_token = NULL,
		    verification_token_expires = NULL, updated_at = now()
		WHERE verification_token = $1
		  AND NOT is_verified
		  AND verification_token_expires > $2
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, token, now))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("claim verification: %w", err)
	}
	return user, nil
}

func (r *UserRepository) LinkProfile(ctx context.Context, userID, profileID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET profile_id = $2, updated_at = now() WHERE id = $1`,
		userID, profileID,
	)
	if err != nil {
		return fmt.Errorf("link profile: %w", err)
	}
	return nil
}

func (r *UserRepository) ClearExpiredVerificationTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		 SET verification_token = NULL, verification_token_expires = NULL, updated_at = now()
		 WHERE NOT is_verified
		   AND verification_token IS NOT NULL
		   AND verification_token_expires <= $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("clear expired verification tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsVerified,
		&u.VerificationToken, &u.VerificationTokenExpires, &u.ProfileID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
