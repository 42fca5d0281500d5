package token_test

import (
	"errors"
	"testing"
	"time"

	"applytrack/api/internal/token"
	"github.com/golang-jwt/jwt/v5"
)

const testKey = "token-test-secret-at-least-32ch!!"

func TestIssueVerify_Roundtrip(t *testing.T) {
	codec := token.NewCodec([]byte(testKey), time.Hour)

	signed, err := codec.Issue("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sub, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "user-1" {
		t.Errorf("subject = %q, want %q", sub, "user-1")
	}
}

func TestIssue_EmbedsEmailClaim(t *testing.T) {
	codec := token.NewCodec([]byte(testKey), time.Hour)

	signed, err := codec.Issue("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (any, error) {
		return []byte(testKey), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["email"] != "test@example.com" {
		t.Errorf("email claim = %v, want test@example.com", claims["email"])
	}
}

func TestVerify_Expired_ReturnsErrExpired(t *testing.T) {
	codec := token.NewCodec([]byte(testKey), -time.Hour)

	signed, err := codec.Issue("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = codec.Verify(signed)
	if !errors.Is(err, token.ErrExpired) {
		t.Errorf("want ErrExpired, got %v", err)
	}
}

func TestVerify_WrongKey_ReturnsErrInvalid(t *testing.T) {
	codec := token.NewCodec([]byte(testKey), time.Hour)
	other := token.NewCodec([]byte("a-different-secret-32-characters!"), time.Hour)

	signed, err := other.Issue("user-1", "test@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = codec.Verify(signed)
	if !errors.Is(err, token.ErrInvalid) {
		t.Errorf("want ErrInvalid, got %v", err)
	}
}

func TestVerify_Garbage_ReturnsErrInvalid(t *testing.T) {
	codec := token.NewCodec([]byte(testKey), time.Hour)

	if _, err := codec.Verify("not.a.jwt"); !errors.Is(err, token.ErrInvalid) {
		t.Errorf("want ErrInvalid, got %v", err)
	}
}

func TestVerify_MissingSubject_ReturnsErrInvalid(t *testing.T) {
	codec := token.NewCodec([]byte(testKey), time.Hour)

	claims := jwt.MapClaims{
		"email": "test@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testKey))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := codec.Verify(signed); !errors.Is(err, token.ErrInvalid) {
		t.Errorf("want ErrInvalid, got %v", err)
	}
}
