package service

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
)

// Field limits.
const (
	minUserNameLength = 4
	minPasswordLength = 8
	maxTextLength     = 2000
)

var validate = validator.New()

// validateID checks that id is a well-formed ULID.
func validateID(field, id string) error {
	if id == "" {
		return invalid(field, "is required")
	}
	if _, err := ulid.ParseStrict(id); err != nil {
		return invalid(field, "must be a valid id")
	}
	return nil
}

// requireText trims s and checks it is present and of reasonable length.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", invalid(field, "is required")
	}
	if utf8.RuneCountInString(s) > maxTextLength {
		return "", invalid(field, "must be at most %d characters", maxTextLength)
	}
	return s, nil
}

func normalizeEmail(field, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalid(field, "is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return "", invalid(field, "must be a valid email")
	}
	return email, nil
}

// validateImageURL accepts an empty value when optional.
func validateImageURL(field, raw string, optional bool) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if optional {
			return "", nil
		}
		return "", invalid(field, "is required")
	}
	if err := validate.Var(raw, "http_url"); err != nil {
		return "", invalid(field, "must be a valid URL")
	}
	return raw, nil
}

func validateUserName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minUserNameLength {
		return "", invalid(field, "must have at least %d characters", minUserNameLength)
	}
	return name, nil
}

func validatePassword(field, password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalid(field, "must have at least %d characters", minPasswordLength)
	}
	return nil
}

// validateQuantity rejects non-finite and non-positive amounts.
func validateQuantity(field string, q float64) error {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return invalid(field, "must be a finite number")
	}
	if q <= 0 {
		return invalid(field, "must be greater than zero")
	}
	return nil
}
