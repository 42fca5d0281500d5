// Package token signs and verifies the stateless session tokens used for
// bearer auth. Validity is purely a function of the signature and the
// embedded expiry; there is no server-side registry and no revocation.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

type Codec struct {
	key []byte
	ttl time.Duration
}

func NewCodec(key []byte, ttl time.Duration) *Codec {
	return &Codec{key: key, ttl: ttl}
}

// Issue signs an HS256 token asserting subject = user ID.
func (c *Codec) Issue(subjectID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subjectID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(c.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and returns the subject ID. An expired token yields
// ErrExpired; anything else that fails validation yields ErrInvalid, so
// callers can report the two distinctly.
func (c *Codec) Verify(raw string) (string, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", ErrInvalid
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalid
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalid
	}
	return sub, nil
}
