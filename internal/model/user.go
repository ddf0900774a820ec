// Package model defines domain entities for the application.
package model

import "time"

// Credential is the salted, derived form of a user's password.
// The plaintext secret is never stored.
type Credential struct {
	Salt string `json:"-"`
	Hash string `json:"-"`
}

// IsZero reports whether no credential has been issued.
func (c Credential) IsZero() bool {
	return c.Salt == "" && c.Hash == ""
}

// User represents a registered account.
type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Credential Credential `json:"-"`
	Image      string     `json:"image,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Profile returns the public view of the user.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Image: u.Image,
	}
}

// UserProfile is the subset of a user that is safe to return to clients.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// UserSummary is the author information attached to comments and ratings.
type UserSummary struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
