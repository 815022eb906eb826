package auth

import (
	"strings"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in the clear")
	}
	if !CheckPassword("s3cret-pass", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestLongPasswordsTruncatedConsistently(t *testing.T) {
	base := strings.Repeat("a", maxPasswordBytes)
	long := base + "tail-that-gets-cut"

	hash, err := HashPassword(long)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	// Only the first 72 bytes participate, so the prefix alone verifies.
	if !CheckPassword(base, hash) {
		t.Fatal("72-byte prefix should verify")
	}
	if !CheckPassword(base+"different-tail", hash) {
		t.Fatal("bytes beyond the limit should be ignored")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h2, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if h1 == h2 {
		t.Fatal("expected distinct salted hashes")
	}
}
