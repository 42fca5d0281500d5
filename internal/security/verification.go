package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"
)

const (
	verificationTokenBytes = 32
	verificationTokenTTL   = 24 * time.Hour
)

// NewVerificationToken returns a 256-bit random opaque token and its
// absolute expiry (now + 24h). Tokens are single-use: the auth flow clears
// the stored value the moment a verification succeeds.
func NewVerificationToken() (string, time.Time, error) {
	raw := make([]byte, verificationTokenBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", time.Time{}, fmt.Errorf("generate verification token: %w", err)
	}
	return hex.EncodeToString(raw), time.Now().Add(verificationTokenTTL), nil
}
