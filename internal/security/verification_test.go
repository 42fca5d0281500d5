package security_test

import (
	"encoding/hex"
	"testing"
	"time"

	"applytrack/api/internal/security"
)

func TestNewVerificationToken_Is256BitHex(t *testing.T) {
	tok, _, err := security.NewVerificationToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	raw, err := hex.DecodeString(tok)
	if err != nil {
		t.Fatalf("token %q is not hex: %v", tok, err)
	}
	if len(raw) != 32 {
		t.Errorf("token is %d bytes, want 32", len(raw))
	}
}

func TestNewVerificationToken_ExpiresIn24Hours(t *testing.T) {
	before := time.Now()
	_, expiresAt, err := security.NewVerificationToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := before.Add(24 * time.Hour)
	if expiresAt.Before(want.Add(-time.Minute)) || expiresAt.After(want.Add(time.Minute)) {
		t.Errorf("expiry %v not ~24h from now", expiresAt)
	}
}

func TestNewVerificationToken_Unique(t *testing.T) {
	a, _, err := security.NewVerificationToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, _, err := security.NewVerificationToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if a == b {
		t.Error("two generated tokens are identical")
	}
}
