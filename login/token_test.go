package login

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	iss, err := NewIssuer("secret", "HS256", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	tok, err := iss.Issue(User{ID: "u-1", Email: "a@b.c"})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := iss.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Email != "a@b.c" {
		t.Fatalf("claims=%+v", claims)
	}
}

func TestParseExpired(t *testing.T) {
	iss, _ := NewIssuer("secret", "HS256", time.Hour)
	issuedAt := time.Now().Add(-2 * time.Hour)
	iss.now = func() time.Time { return issuedAt }
	tok, err := iss.Issue(User{ID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	iss.now = time.Now
	if _, err := iss.Parse(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err=%v want ErrTokenExpired", err)
	}
}

func TestParseRejectsForeignSignature(t *testing.T) {
	a, _ := NewIssuer("secret-a", "HS256", time.Hour)
	b, _ := NewIssuer("secret-b", "HS256", time.Hour)
	tok, _ := a.Issue(User{ID: "u-1"})
	if _, err := b.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v want ErrInvalidToken", err)
	}
	if _, err := a.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v want ErrInvalidToken", err)
	}
}

func TestParseRejectsOtherAlgorithm(t *testing.T) {
	hs512, _ := NewIssuer("secret", "HS512", time.Hour)
	hs256, _ := NewIssuer("secret", "HS256", time.Hour)
	tok, _ := hs512.Issue(User{ID: "u-1"})
	if _, err := hs256.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err=%v want ErrInvalidToken", err)
	}
}

func TestNewIssuerValidation(t *testing.T) {
	if _, err := NewIssuer("", "HS256", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewIssuer("s", "RS256", time.Hour); err == nil {
		t.Error("expected error for non-HMAC algorithm")
	}
}
