package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"applytrack/api/internal/domain"
	"applytrack/api/internal/email"
	"applytrack/api/internal/metrics"
	"applytrack/api/internal/repository"
	"applytrack/api/internal/security"
)

const minPasswordLength = 8

// passwordHasher is the subset of the security hasher the usecase needs.
type passwordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// sessionIssuer is the subset of the token codec the usecase needs.
type sessionIssuer interface {
	Issue(subjectID, email string) (string, error)
}

type AuthUsecase struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	hasher     passwordHasher
	tokens     sessionIssuer
	email      email.Sender
	logger     *slog.Logger
	backendURL string
	now        func() time.Time
}

func NewAuthUsecase(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	hasher passwordHasher,
	tokens sessionIssuer,
	sender email.Sender,
	logger *slog.Logger,
	backendURL string,
) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		profiles:   profiles,
		hasher:     hasher,
		tokens:     tokens,
		email:      sender,
		logger:     logger.With("component", "auth_usecase"),
		backendURL: strings.TrimRight(backendURL, "/"),
		now:        time.Now,
	}
}

type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Signup creates an unverified user, a blank linked profile, and a pending
// verification token, then dispatches the verification email. The email
// send happens after the user row is committed; a failed send leaves the
// user pending with no delivered mail, which resend recovers from.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	emailAddr := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := u.users.FindByEmail(ctx, emailAddr); err == nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := u.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, &domain.User{
		Email:        emailAddr,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		PasswordHash: hash,
		IsVerified:   false,
	})
	if err != nil {
		return nil, err
	}

	// A blank profile is created eagerly so the dashboard has something to
	// render. Failure here must not block signup; Me falls back to a
	// user_id lookup and Get recreates the profile on demand.
	if profile, perr := u.profiles.Create(ctx, &domain.Profile{UserID: user.ID}); perr != nil {
		u.logger.Warn("create profile on signup", "user_id", user.ID, "error", perr)
	} else if lerr := u.users.LinkProfile(ctx, user.ID, profile.ID); lerr != nil {
		u.logger.Warn("link profile on signup", "user_id", user.ID, "error", lerr)
	}

	if err := u.issueAndSendVerification(ctx, user); err != nil {
		return nil, err
	}

	metrics.SignupsTotal.Inc()
	return user, nil
}

// Login exchanges valid credentials for a session token. Unknown email and
// wrong password produce the same error so callers cannot tell which check
// failed; an unverified user is rejected distinctly.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (*domain.User, string, error) {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrNotVerified
	}

	if !u.hasher.Compare(user.PasswordHash, password) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, signed, nil
}

// Verify claims a pending verification token. The precondition reads give
// the caller a specific failure reason; the claim itself is one atomic
// conditional update, so a racing duplicate loses and reports an invalid
// token.
func (u *AuthUsecase) Verify(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrTokenInvalid
	}

	user, err := u.users.FindByVerificationToken(ctx, rawToken)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	if user.IsVerified {
		return nil, domain.ErrAlreadyVerified
	}

	// Expiry is exclusive: a token whose expiry equals the current instant
	// is already dead.
	now := u.now()
	if user.VerificationTokenExpires == nil || !user.VerificationTokenExpires.After(now) {
		return nil, domain.ErrTokenExpired
	}

	claimed, err := u.users.ClaimVerification(ctx, rawToken, now)
	if err != nil {
		return nil, err
	}

	metrics.VerificationsCompletedTotal.Inc()
	return claimed, nil
}

// ResendVerification regenerates the pending token, invalidating the
// previous one, and sends a fresh email.
func (u *AuthUsecase) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := u.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		return err
	}

	if user.IsVerified {
		return domain.ErrAlreadyVerified
	}

	return u.issueAndSendVerification(ctx, user)
}

// Me returns the user plus their profile extension. The profile is read by
// the stored reference first, then by owner lookup when the reference is
// stale or absent. A missing profile is not an error.
func (u *AuthUsecase) Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var profile *domain.Profile
	if user.ProfileID != nil {
		if p, perr := u.profiles.FindByID(ctx, *user.ProfileID); perr == nil {
			profile = p
		}
	}
	if profile == nil {
		if p, perr := u.profiles.FindByUserID(ctx, userID); perr == nil {
			profile = p
		}
	}

	if profile != nil {
		if docs, derr := u.profiles.ListDocuments(ctx, profile.ID); derr == nil {
			profile.Documents = docs
		}
	}

	return user, profile, nil
}

func (u *AuthUsecase) issueAndSendVerification(ctx context.Context, user *domain.User) error {
	rawToken, expiresAt, err := security.NewVerificationToken()
	if err != nil {
		return err
	}

	if err := u.users.SetVerificationToken(ctx, user.ID, rawToken, expiresAt); err != nil {
		return fmt.Errorf("store verification token: %w", err)
	}

	verifyURL := u.backendURL + "/api/auth/verify?token=" + url.QueryEscape(rawToken)
	body := email.VerificationBody(user.FirstName, verifyURL)
	if err := u.email.Send(ctx, user.Email, email.VerificationSubject(), body); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	metrics.VerificationEmailsSentTotal.Inc()
	return nil
}
