package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/madetect-tw/madetect-engine/pkg/apperrors"
	"github.com/madetect-tw/madetect-engine/pkg/models"
	"github.com/madetect-tw/madetect-engine/pkg/repositories"
)

// UserService manages account registration and credential checks.
// Passwords are stored as bcrypt hashes only.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// VerifyIdentity checks the name/email pair used by the password-reset
	// flow.
	VerifyIdentity(ctx context.Context, name, email string) (bool, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
}

type userService struct {
	users repositories.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		// Not-found collapses into invalid credentials so login does not
		// leak which emails are registered.
		return nil, apperrors.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *userService) VerifyIdentity(ctx context.Context, name, email string) (bool, error) {
	_, err := s.users.GetByNameAndEmail(ctx, name, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	return false, err
}

func (s *userService) ResetPassword(ctx context.Context, email, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, email, string(hash))
}
