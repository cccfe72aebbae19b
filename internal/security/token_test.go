package security

import (
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("secret", "u1", "pat@example.com", "PATIENT", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseAccessToken(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "pat@example.com" || claims.Role != "PATIENT" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken("secret", "u1", "pat@example.com", "PATIENT", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseAccessToken(token, "other-secret"); err == nil {
		t.Fatalf("expected rejection for wrong secret")
	}
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken("secret", "u1", "pat@example.com", "PATIENT", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseAccessToken(token, "secret"); err == nil {
		t.Fatalf("expected rejection for expired token")
	}
}
