package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskmaster/focusboard/internal/domain/entities"
	"github.com/taskmaster/focusboard/internal/infrastructure/logger"
	"github.com/taskmaster/focusboard/internal/ports"
)

// passwordCost is the bcrypt work factor for new password hashes
var passwordCost = bcrypt.DefaultCost

// UserService handles user-related operations
type UserService struct {
	userRepo  ports.UserRepository
	validator *Validator
	logger    *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, validator *Validator, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		validator: validator,
		logger:    logger.WithComponent("users"),
	}
}

// CreateUser creates a credentials account outside the HTTP flow
func (s *UserService) CreateUser(ctx context.Context, req ports.RegisterRequest) (*entities.User, error) {
	user, err := createPasswordUser(ctx, s.userRepo, s.validator, req)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User created", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// GetProfile retrieves the caller's account
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// UpdateProfile changes the caller's display name
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req ports.UpdateProfileRequest) (*entities.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateName(ctx, userID, req.Name)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.LogUserAction(userID.String(), "profile_updated", nil)
	return user, nil
}

// createPasswordUser validates req, hashes the password and stores the user.
func createPasswordUser(ctx context.Context, repo ports.UserRepository, validator *Validator, req ports.RegisterRequest) (*entities.User, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	_, err := repo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, entities.ErrEmailAlreadyExists
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hash := string(hashedPassword)

	user := &entities.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: &hash,
	}
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, entities.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
