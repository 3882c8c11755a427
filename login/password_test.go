package login

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hashed, err := hashPassword("pw123")
	if err != nil {
		t.Fatal(err)
	}
	if !verifyPassword("pw123", hashed) || verifyPassword("pw124", hashed) {
		t.Fatal("verifyPassword mismatch")
	}
	if _, err := hashPassword(strings.Repeat("x", maxPasswordBytes)); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
	if _, err := hashPassword(strings.Repeat("é", 40)); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("80-byte password err=%v", err)
	}
}
