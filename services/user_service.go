package services

import (
	"context"
	"errors"

	"gather.link/configs/configslog"
	"gather.link/models"
	"gather.link/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserServiceError is a typed service-level error.
type UserServiceError string

func (e UserServiceError) Error() string { return string(e) }

const (
	ErrUserNotFound       UserServiceError = "user not found"
	ErrInvalidCredentials UserServiceError = "invalid email or password"
	ErrUserInactive       UserServiceError = "account is disabled"
)

// IUserService handles accounts and credential checks.
type IUserService interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

type UserService struct {
	repo repositories.IUserRepository
}

func NewUserService(db *gorm.DB) IUserService {
	return &UserService{repo: repositories.NewUserRepository(db)}
}

// NewUserServiceWith wires explicit dependencies.
func NewUserServiceWith(repo repositories.IUserRepository) IUserService {
	return &UserService{repo: repo}
}

// Authenticate verifies credentials and returns the account. Lookup
// misses and bad passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	configslog.SLog.Infof("User authenticated: %s (ID %d)", user.Email, user.ID)
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		configslog.Log.Error("UserService.GetUserByID failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

var _ IUserService = (*UserService)(nil)
