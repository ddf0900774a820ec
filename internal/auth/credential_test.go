package auth

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/recetario/recetario/internal/model"
)

func TestIssueCredential_Format(t *testing.T) {
	t.Parallel()

	cred, err := IssueCredential("correct horse battery")
	if err != nil {
		t.Fatalf("IssueCredential failed: %v", err)
	}

	salt, err := hex.DecodeString(cred.Salt)
	if err != nil {
		t.Fatalf("salt is not hex: %v", err)
	}
	if len(salt) != saltLen {
		t.Errorf("salt length = %d bytes, want %d", len(salt), saltLen)
	}

	hash, err := hex.DecodeString(cred.Hash)
	if err != nil {
		t.Fatalf("hash is not hex: %v", err)
	}
	if len(hash) != kdfKeyLen {
		t.Errorf("hash length = %d bytes, want %d", len(hash), kdfKeyLen)
	}

	if cred.Hash == "correct horse battery" {
		t.Error("hash must not be the plaintext secret")
	}
}

func TestIssueCredential_FreshSaltPerCall(t *testing.T) {
	t.Parallel()

	secret := "the_same_password_12345"

	a, err := IssueCredential(secret)
	if err != nil {
		t.Fatalf("IssueCredential failed: %v", err)
	}
	b, err := IssueCredential(secret)
	if err != nil {
		t.Fatalf("IssueCredential failed: %v", err)
	}

	if a.Salt == b.Salt {
		t.Error("same secret should get a different salt on every call")
	}
	if a.Hash == b.Hash {
		t.Error("different salts should produce different hashes")
	}

	if !VerifyCredential(secret, a) || !VerifyCredential(secret, b) {
		t.Error("both credentials should verify")
	}
}

func TestIssueCredential_EmptySecret(t *testing.T) {
	t.Parallel()

	cred, err := IssueCredential("")
	if !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("err = %v, want ErrEmptySecret", err)
	}
	if !cred.IsZero() {
		t.Errorf("expected zero credential, got %+v", cred)
	}
}

func TestDeriveHash_EmptySecretIsEmpty(t *testing.T) {
	t.Parallel()

	for _, salt := range []string{"", "00ff", "abcdef0123456789"} {
		if got := DeriveHash("", salt); got != "" {
			t.Errorf("DeriveHash(\"\", %q) = %q, want empty", salt, got)
		}
	}
}

func TestDeriveHash_Deterministic(t *testing.T) {
	t.Parallel()

	h1 := DeriveHash("secret", "salt")
	h2 := DeriveHash("secret", "salt")
	if h1 != h2 {
		t.Error("same secret and salt should derive the same hash")
	}
	if DeriveHash("secret", "other") == h1 {
		t.Error("different salt should derive a different hash")
	}
}

func TestVerifyCredential_Match(t *testing.T) {
	t.Parallel()

	cred, err := IssueCredential("hunter2hunter2")
	if err != nil {
		t.Fatalf("IssueCredential failed: %v", err)
	}

	// A matching secret is a success, not a failure.
	for i := 0; i < 3; i++ {
		if !VerifyCredential("hunter2hunter2", cred) {
			t.Fatalf("attempt %d: correct secret should verify", i)
		}
	}
}

func TestVerifyCredential_Mismatch(t *testing.T) {
	t.Parallel()

	cred, err := IssueCredential("hunter2hunter2")
	if err != nil {
		t.Fatalf("IssueCredential failed: %v", err)
	}

	tests := []struct {
		name   string
		secret string
		cred   model.Credential
	}{
		{"wrong secret", "hunter3hunter3", cred},
		{"case differs", "HUNTER2HUNTER2", cred},
		{"empty secret", "", cred},
		{"empty stored hash", "hunter2hunter2", model.Credential{Salt: cred.Salt}},
		{"empty secret and hash", "", model.Credential{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if VerifyCredential(tt.secret, tt.cred) {
				t.Errorf("VerifyCredential(%q) = true, want false", tt.secret)
			}
		})
	}
}
