package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"applytrack/api/internal/domain"
	"applytrack/api/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, input usecase.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Verify(ctx context.Context, rawToken string) (*domain.User, error)
	ResendVerification(ctx context.Context, email string) error
	Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
	frontendURL string
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

type signupRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
	First    string `json:"first"`
	Last     string `json:"last"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authUsecase.Signup(c.Request.Context(), usecase.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.First,
		LastName:  req.Last,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": errWeakPassword})
		case errors.Is(err, domain.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": errEmailTaken})
		default:
			h.logger.Error("signup", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful — check your email to verify your account",
		"user":    gin.H{"id": user.ID, "email": user.Email},
	})
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errEmailPasswordRequired})
		return
	}

	user, signed, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
		case errors.Is(err, domain.ErrNotVerified):
			c.JSON(http.StatusForbidden, gin.H{"error": errNotVerified})
		default:
			h.logger.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  newUserResponse(user),
		"token": signed,
	})
}

// GET /api/auth/verify?token=<raw>
// Programmatic clients (Accept: application/json) get a JSON ack; browser
// navigations get redirected to the login page. The format is resolved
// here once; the usecase knows nothing about content negotiation.
func (h *AuthHandler) Verify(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		// Mail-client link rewriters sometimes strip the query string, so
		// clients may retry with the token in a JSON body instead.
		var req struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			rawToken = req.Token
		}
	}
	if rawToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errMissingToken})
		return
	}

	_, err := h.authUsecase.Verify(c.Request.Context(), rawToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"error": errAlreadyVerified})
		case errors.Is(err, domain.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": errTokenExpired})
		case errors.Is(err, domain.ErrTokenInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": errTokenInvalid})
		default:
			h.logger.Error("verify", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
		return
	}
	c.Redirect(http.StatusFound, h.frontendURL+"/login?verified=1")
}

type resendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// POST /api/auth/resend-verification
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.ResendVerification(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		case errors.Is(err, domain.ErrAlreadyVerified):
			c.JSON(http.StatusBadRequest, gin.H{"error": errAlreadyVerified})
		default:
			h.logger.Error("resend verification", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email sent"})
}

// GET /api/auth/me (protected)
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errNotAuthenticated})
		return
	}

	user, profile, err := h.authUsecase.Me(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.Error("me", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := newUserResponse(user)
	resp.Profile = newProfileResponse(profile)
	c.JSON(http.StatusOK, gin.H{"user": resp})
}

// POST /api/auth/logout
// Tokens are stateless, so there is nothing to invalidate server-side;
// this exists so clients have a logout URL that does not 404.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Logged out"})
}
