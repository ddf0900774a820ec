package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recetario/recetario/internal/auth"
	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/repository"
)

// UserService handles registration, login and profile edits.
type UserService struct {
	users   UserStore
	tokens  TokenIssuer
	metrics metrics.Recorder
	now     func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, tokens TokenIssuer, recorder metrics.Recorder) *UserService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &UserService{
		users:   users,
		tokens:  tokens,
		metrics: recorder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Image    string
}

// Register creates a new account. The email is normalized to lower case and
// must not belong to another user.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	name, err := validateUserName("name", input.Name)
	if err != nil {
		return nil, err
	}
	email, err := normalizeEmail("email", input.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword("password", input.Password); err != nil {
		return nil, err
	}
	image, err := validateImageURL("image", input.Image, true)
	if err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	cred, err := auth.IssueCredential(input.Password)
	if err != nil {
		return nil, invalid("password", "%v", err)
	}

	now := s.now()
	user := &model.User{
		ID:         ulid.Make().String(),
		Name:       name,
		Email:      email,
		Credential: cred,
		Image:      image,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// The pre-check above is only a fast path; the unique index decides races.
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, storageErr("create user", err)
	}

	s.metrics.IncUserRegistered()

	return user, nil
}

// LoginResult is a verified user plus a signed access token.
type LoginResult struct {
	User      model.UserProfile
	Token     string
	ExpiresAt time.Time
}

// Login verifies an email and password. Unknown emails and wrong passwords
// produce the same ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email, err := normalizeEmail("email", email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, invalid("password", "is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.metrics.IncLoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, storageErr("find user", err)
	}

	// A match is a successful login.
	if !auth.VerifyCredential(password, user.Credential) {
		s.metrics.IncLoginFailed()
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	s.metrics.IncLoginSucceeded()

	return &LoginResult{
		User:      user.Profile(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	if err := validateID("user_id", id); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr("get user", err)
	}
	return user, nil
}

// UpdateProfileInput defines a partial profile update. Nil fields are left unchanged.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
	Image    *string
}

// UpdateProfile applies a partial update. A new password gets a freshly
// salted credential.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if user.Name, err = validateUserName("name", *input.Name); err != nil {
			return nil, err
		}
	}

	if input.Email != nil {
		email, err := normalizeEmail("email", *input.Email)
		if err != nil {
			return nil, err
		}
		if email != user.Email {
			if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
				return nil, err
			}
			user.Email = email
		}
	}

	if input.Password != nil {
		if err := validatePassword("password", *input.Password); err != nil {
			return nil, err
		}
		cred, err := auth.IssueCredential(*input.Password)
		if err != nil {
			return nil, invalid("password", "%v", err)
		}
		user.Credential = cred
	}

	if input.Image != nil {
		if user.Image, err = validateImageURL("image", *input.Image, true); err != nil {
			return nil, err
		}
	}

	user.UpdatedAt = s.now()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, ErrUserNotFound
		default:
			return nil, storageErr("update user", err)
		}
	}

	return user, nil
}

// ensureEmailFree fails with ErrEmailTaken when email belongs to a user other than selfID.
func (s *UserService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	case err != nil:
		return storageErr("find user", err)
	case existing.ID != selfID:
		return ErrEmailTaken
	default:
		return nil
	}
}
