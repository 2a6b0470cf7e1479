package auth_test

import (
	"strings"
	"testing"

	"github.com/crackit360/crackit360-api/internal/auth"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pw")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pw" {
		t.Fatalf("hash must not equal the plain password")
	}

	t.Run("Matches", func(t *testing.T) {
		if !auth.CheckPassword(hash, "s3cret-pw") {
			t.Errorf("expected password to match")
		}
	})

	t.Run("SurroundingWhitespaceIgnored", func(t *testing.T) {
		if !auth.CheckPassword(hash, "  s3cret-pw\n") {
			t.Errorf("expected trimmed password to match")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		if auth.CheckPassword(hash, "other") {
			t.Errorf("expected mismatch")
		}
	})

	t.Run("EmptyHash", func(t *testing.T) {
		if auth.CheckPassword("", "s3cret-pw") {
			t.Errorf("federated accounts have no hash and must never match")
		}
	})

	t.Run("LongPasswordTruncated", func(t *testing.T) {
		long := strings.Repeat("x", 100)
		h, err := auth.HashPassword(long)
		if err != nil {
			t.Fatalf("HashPassword(long): %v", err)
		}
		if !auth.CheckPassword(h, strings.Repeat("x", 72)+"different-tail") {
			t.Errorf("expected only the first 72 bytes to count")
		}
	})
}
