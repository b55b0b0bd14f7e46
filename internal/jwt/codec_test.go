package jwt

import (
	"errors"
	"testing"
	"time"
)

var testSecret = []byte("unit-test-secret-0123456789abcdef")

func TestSignVerifyRoundtrip(t *testing.T) {
	tok, err := Sign("user-1", "a@b.com", "jti-1", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	claims, err := Verify(tok, testSecret)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("sub = %q, esperaba user-1", claims.Subject)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if claims.JTI() != "jti-1" {
		t.Errorf("jti = %q", claims.JTI())
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	tok, _ := Sign("user-1", "a@b.com", "jti-1", testSecret, time.Minute)
	if _, err := Verify(tok, []byte("otro-secret")); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("esperaba ErrTokenInvalid, obtuve %v", err)
	}
}

func TestVerifyExpired(t *testing.T) {
	tok, _ := Sign("user-1", "a@b.com", "jti-1", testSecret, -time.Minute)
	if _, err := Verify(tok, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("esperaba ErrTokenExpired, obtuve %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	for _, tok := range []string{"", "abc", "a.b.c", "eyJhbGciOiJIUzI1NiJ9..x"} {
		if _, err := Verify(tok, testSecret); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("token %q: esperaba ErrTokenInvalid, obtuve %v", tok, err)
		}
	}
}

func TestDecodeUnverifiedExpiredToken(t *testing.T) {
	// Un token vencido se decodifica igual: logout necesita el jti.
	tok, _ := Sign("user-1", "a@b.com", "jti-exp", testSecret, -time.Hour)

	claims, err := DecodeUnverified(tok)
	if err != nil {
		t.Fatalf("DecodeUnverified: %v", err)
	}
	if claims.JTI() != "jti-exp" {
		t.Errorf("jti = %q", claims.JTI())
	}
	if got := claims.RemainingTTL(time.Now()); got > 0 {
		t.Errorf("RemainingTTL de un token vencido debería ser <= 0, fue %v", got)
	}
}

func TestDecodeUnverifiedForeignSecret(t *testing.T) {
	// Firmado con otro secret: decodifica igual, nunca autentica.
	tok, _ := Sign("user-9", "x@y.com", "jti-x", []byte("secret-ajeno"), time.Hour)
	claims, err := DecodeUnverified(tok)
	if err != nil {
		t.Fatalf("DecodeUnverified: %v", err)
	}
	if claims.JTI() != "jti-x" {
		t.Errorf("jti = %q", claims.JTI())
	}
}

func TestRemainingTTLWithoutExp(t *testing.T) {
	c := &Claims{}
	if got := c.RemainingTTL(time.Now()); got != 0 {
		t.Errorf("sin exp, RemainingTTL = %v, esperaba 0", got)
	}
}
