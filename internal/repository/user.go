package repository

import (
	"context"
	"time"

	"applytrack/api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByVerificationToken(ctx context.Context, token string) (*domain.User, error)

	// SetVerificationToken overwrites the pending verification secret and
	// its expiry. Called on signup and on every resend.
	SetVerificationToken(ctx context.Context, userID, token string, expiresAt time.Time) error

	// ClaimVerification atomically marks the matching user verified and
	// clears both verification fields in the same write. It returns
	// domain.ErrTokenInvalid when the token is absent, expired relative to
	// now, or already claimed, so concurrent claims cannot both succeed.
	ClaimVerification(ctx context.Context, token string, now time.Time) (*domain.User, error)

	LinkProfile(ctx context.Context, userID, profileID string) error

	// ClearExpiredVerificationTokens nulls out verification fields whose
	// expiry is at or before now. Returns the number of rows touched.
	ClearExpiredVerificationTokens(ctx context.Context, now time.Time) (int64, error)
}
