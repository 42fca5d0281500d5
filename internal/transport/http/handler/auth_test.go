package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"applytrack/api/internal/domain"
	"applytrack/api/internal/transport/http/handler"
	"applytrack/api/internal/usecase"
	"github.com/gin-gonic/gin"
)

const testFrontendURL = "http://localhost:5174"

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via
// method matching.
type fakeAuthUsecase struct {
	signup             func(ctx context.Context, input usecase.SignupInput) (*domain.User, error)
	login              func(ctx context.Context, email, password string) (*domain.User, string, error)
	verify             func(ctx context.Context, rawToken string) (*domain.User, error)
	resendVerification func(ctx context.Context, email string) error
	me                 func(ctx context.Context, userID string) (*domain.User, *domain.Profile, error)
}

func (f *fakeAuthUsecase) Signup(ctx context.Context, input usecase.SignupInput) (*domain.User, error) {
	return f.signup(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) Verify(ctx context.Context, rawToken string) (*domain.User, error) {
	return f.verify(ctx, rawToken)
}

func (f *fakeAuthUsecase) ResendVerification(ctx context.Context, email string) error {
	return f.resendVerification(ctx, email)
}

func (f *fakeAuthUsecase) Me(ctx context.Context, userID string) (*domain.User, *domain.Profile, error) {
	return f.me(ctx, userID)
}

func newTestEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := handler.NewAuthHandler(uc, logger, testFrontendURL)

	r := gin.New()
	r.POST("/api/auth/signup", h.Signup)
	r.POST("/api/auth/login", h.Login)
	r.GET("/api/auth/verify", h.Verify)
	r.POST("/api/auth/resend-verification", h.ResendVerification)
	r.GET("/api/auth/me", func(c *gin.Context) {
		// Stand-in for the auth middleware.
		c.Set("userID", "user-1")
	}, h.Me)
	r.POST("/api/auth/logout", h.Logout)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

// ---- Signup ----

func TestSignup_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(t, newTestEngine(&fakeAuthUsecase{}), "/api/auth/signup", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSignup_MissingEmail_Returns400(t *testing.T) {
	w := postJSON(t, newTestEngine(&fakeAuthUsecase{}), "/api/auth/signup", `{"password":"s3cret-pass"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSignup_WeakPassword_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		signup: func(_ context.Context, _ usecase.SignupInput) (*domain.User, error) {
			return nil, domain.ErrWeakPassword
		},
	}
	w := postJSON(t, newTestEngine(uc), "/api/auth/signup",
		`{"email":"test@example.com","password":"short"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSignup_EmailTaken_Returns409(t *testing.T) {
	uc := &fakeAuthUsecase{
		signup: func(_ context.Context, _ usecase.SignupInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	w := postJSON(t, newTestEngine(uc), "/api/auth/signup",
		`{"email":"test@example.com","password":"s3cret-pass"}`)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestSignup_Success_Returns201(t *testing.T) {
	uc := &fakeAuthUsecase{
		signup: func(_ context.Context, input usecase.SignupInput) (*domain.User, error) {
			if input.FirstName != "Ada" || input.LastName != "Lovelace" {
				t.Errorf("name = %q %q", input.FirstName, input.LastName)
			}
			return &domain.User{ID: "user-1", Email: input.Email}, nil
		},
	}
	w := postJSON(t, newTestEngine(uc), "/api/auth/signup",
		`{"email":"test@example.com","password":"s3cret-pass","first":"Ada","last":"Lovelace"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	var body struct {
		User struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User.ID != "user-1" || body.User.Email != "test@example.com" {
		t.Errorf("user = %+v", body.User)
	}
}

// ---- Login ----

func TestLogin_MissingFields_Returns400(t *testing.T) {
	w := postJSON(t, newTestEngine(&fakeAuthUsecase{}), "/api/auth/login", `{"email":"test@example.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email and password are required") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestLogin_BadCredentials_IdenticalBodies(t *testing.T) {
	// Unknown email and wrong password must be indistinguishable.
	unknownEmail := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}
	wrongPassword := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrInvalidCredentials
		},
	}

	w1 := postJSON(t, newTestEngine(unknownEmail), "/api/auth/login",
		`{"email":"nobody@example.com","password":"s3cret-pass"}`)
	w2 := postJSON(t, newTestEngine(wrongPassword), "/api/auth/login",
		`{"email":"test@example.com","password":"wrong-pass"}`)

	if w1.Code != http.StatusUnauthorized || w2.Code != http.StatusUnauthorized {
		t.Errorf("statuses = %d, %d, want 401, 401", w1.Code, w2.Code)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Errorf("bodies differ: %q vs %q", w1.Body.String(), w2.Body.String())
	}
}

func TestLogin_Unverified_Returns403(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (*domain.User, string, error) {
			return nil, "", domain.ErrNotVerified
		},
	}
	w := postJSON(t, newTestEngine(uc), "/api/auth/login",
		`{"email":"test@example.com","password":"s3cret-pass"}`)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestLogin_Success_ReturnsTokenAndRedactedUser(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, email, _ string) (*domain.User, string, error) {
			return &domain.User{ID: "user-1", Email: email, PasswordHash: "bcrypt-hash", IsVerified: true}, "session-abc", nil
		},
	}
	w := postJSON(t, newTestEngine(uc), "/api/auth/login",
		`{"email":"test@example.com","password":"s3cret-pass"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "session-abc") {
		t.Error("response missing session token")
	}
	if strings.Contains(w.Body.String(), "bcrypt-hash") {
		t.Error("response leaks the password hash")
	}
}

// ---- Verify ----

func getVerify(t *testing.T, r *gin.Engine, query, accept string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify"+query, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestVerify_MissingToken_Returns400(t *testing.T) {
	w := getVerify(t, newTestEngine(&fakeAuthUsecase{}), "", "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestVerify_TokenInBody_Accepted(t *testing.T) {
	// Some mail clients strip the query string from the link; the token is
	// then retried in a JSON body.
	var got string
	uc := &fakeAuthUsecase{
		verify: func(_ context.Context, rawToken string) (*domain.User, error) {
			got = rawToken
			return &domain.User{ID: "user-1", IsVerified: true}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", strings.NewReader(`{"token":"body-token"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if got != "body-token" {
		t.Errorf("verified token = %q, want %q", got, "body-token")
	}
}

func TestVerify_QueryTokenWinsOverBody(t *testing.T) {
	var got string
	uc := &fakeAuthUsecase{
		verify: func(_ context.Context, rawToken string) (*domain.User, error) {
			got = rawToken
			return &domain.User{ID: "user-1", IsVerified: true}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify?token=query-token", strings.NewReader(`{"token":"body-token"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got != "query-token" {
		t.Errorf("verified token = %q, want %q", got, "query-token")
	}
}

func TestVerify_ExpiredToken_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		verify: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrTokenExpired
		},
	}
	w := getVerify(t, newTestEngine(uc), "?token=old", "")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "expired") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestVerify_JSONClient_Returns200JSON(t *testing.T) {
	uc := &fakeAuthUsecase{
		verify: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: "user-1", IsVerified: true}, nil
		},
	}
	w := getVerify(t, newTestEngine(uc), "?token=good", "application/json")

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email verified") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestVerify_Browser_RedirectsToLogin(t *testing.T) {
	uc := &fakeAuthUsecase{
		verify: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: "user-1", IsVerified: true}, nil
		},
	}
	w := getVerify(t, newTestEngine(uc), "?token=good", "text/html")

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != testFrontendURL+"/login?verified=1" {
		t.Errorf("location = %q", loc)
	}
}

// ---- ResendVerification ----

func TestResendVerification_UnknownUser_Returns404(t *testing.T) {
	uc := &fakeAuthUsecase{
		resendVerification: func(_ context.Context, _ string) error {
			return domain.ErrUserNotFound
		},
	}
	w := postJSON(t, newTestEngine(uc), "/api/auth/resend-verification",
		`{"email":"nobody@example.com"}`)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestResendVerification_Success_Returns200(t *testing.T) {
	uc := &fakeAuthUsecase{
		resendVerification: func(_ context.Context, _ string) error { return nil },
	}
	w := postJSON(t, newTestEngine(uc), "/api/auth/resend-verification",
		`{"email":"test@example.com"}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// ---- Me ----

func TestMe_ReturnsUserWithProfile(t *testing.T) {
	uc := &fakeAuthUsecase{
		me: func(_ context.Context, userID string) (*domain.User, *domain.Profile, error) {
			return &domain.User{ID: userID, Email: "test@example.com", PasswordHash: "bcrypt-hash"},
				&domain.Profile{ID: "profile-1", UserID: userID}, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "profile-1") {
		t.Error("response missing profile")
	}
	if strings.Contains(w.Body.String(), "bcrypt-hash") {
		t.Error("response leaks the password hash")
	}
}

// ---- Logout ----

func TestLogout_Returns200(t *testing.T) {
	w := postJSON(t, newTestEngine(&fakeAuthUsecase{}), "/api/auth/logout", `{}`)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
