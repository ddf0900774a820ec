// Package auth provides credential derivation, access tokens and request identity.
package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/recetario/recetario/internal/model"
)

// PBKDF2 parameters. Salts are hex-encoded random bytes and are fed to the
// KDF in their encoded form, so stored credentials stay portable.
const (
	kdfIterations = 1000
	kdfKeyLen     = 64
	saltLen       = 16
)

// ErrEmptySecret is returned when a credential is requested for an empty password.
var ErrEmptySecret = errors.New("secret must not be empty")

// IssueCredential derives a new credential for secret with a fresh random salt.
func IssueCredential(secret string) (model.Credential, error) {
	if secret == "" {
		return model.Credential{}, ErrEmptySecret
	}

	salt, err := newSalt()
	if err != nil {
		return model.Credential{}, err
	}

	return model.Credential{
		Salt: salt,
		Hash: DeriveHash(secret, salt),
	}, nil
}

// DeriveHash runs PBKDF2-HMAC-SHA512 over secret and salt and returns the
// hex-encoded key. An empty secret always derives the empty string.
func DeriveHash(secret, salt string) string {
	if secret == "" {
		return ""
	}
	key := pbkdf2.Key([]byte(secret), []byte(salt), kdfIterations, kdfKeyLen, sha512.New)
	return hex.EncodeToString(key)
}

// VerifyCredential recomputes the hash of secret with the stored salt and
// reports whether it matches. Empty secrets and empty stored hashes never match.
func VerifyCredential(secret string, cred model.Credential) bool {
	if secret == "" || cred.Hash == "" {
		return false
	}
	computed := DeriveHash(secret, cred.Salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(cred.Hash)) == 1
}

func newSalt() (string, error) {
	b := make([]byte, saltLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	return hex.EncodeToString(b), nil
}
