package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "unit-test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "examdesk-test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService(time.Hour)

	token, expiresIn, err := svc.GenerateToken(42, 4)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a non-empty token")
	}
	if expiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.RoleID != 4 {
		t.Fatalf("expected role_id 4, got %d", claims.RoleID)
	}
	if claims.Issuer != "examdesk-test" {
		t.Fatalf("expected issuer examdesk-test, got %s", claims.Issuer)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, err := testJWTService(time.Hour).GenerateToken(1, 5)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	other := NewJWTService(JWTConfig{
		SecretKey:      "a-different-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "examdesk-test",
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatalf("expected validation to fail with a different secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testJWTService(-time.Minute)

	token, _, err := svc.GenerateToken(7, 5)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := testJWTService(time.Hour).ValidateToken("not.a.token"); err == nil {
		t.Fatalf("expected garbage token to fail validation")
	}
}

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def.ghi": "abc.def.ghi",
		"abc.def.ghi":        "abc.def.ghi",
	}
	for header, expect := range cases {
		token, err := ExtractBearerToken(header)
		if err != nil {
			t.Fatalf("expected header %q to parse: %v", header, err)
		}
		if token != expect {
			t.Fatalf("expected %q, got %q", expect, token)
		}
	}

	if _, err := ExtractBearerToken(""); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat for empty header, got %v", err)
	}
}
