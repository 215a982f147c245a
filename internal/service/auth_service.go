package service

import (
	"context"
	"errors"
	"strings"

	"tasklist-be/internal/apperrors"
	"tasklist-be/internal/jwt"
	"tasklist-be/internal/models"
	"tasklist-be/internal/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     PasswordHasher
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher PasswordHasher, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
	}
}

// errInvalidCredentials is the only error login returns for a bad email or
// password, whichever was wrong.
func errInvalidCredentials() error {
	return apperrors.New(apperrors.CodeInvalidCredentials, "invalid email or password")
}

func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return apperrors.Validation("email and password are required")
	}
	return nil
}

// Register creates a new user account and returns a token for it
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, apperrors.Validation("password must be at most 72 bytes")
		}
		return nil, apperrors.Internal(err)
	}

	// The insert itself detects duplicates; there is no separate lookup.
	user, err := s.userRepo.Create(ctx, req.Email, hashedPassword)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.Wrap(apperrors.CodeDuplicateEmail, "email already exists", err)
		}
		return nil, apperrors.Internal(err)
	}

	return s.issue(user.ID, user.Email)
}

// Login authenticates a user and returns a JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Internal(err)
		}
		s.hasher.Verify(req.Password, "")
		return nil, errInvalidCredentials()
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, errInvalidCredentials()
	}

	return s.issue(user.ID, user.Email)
}

func (s *authService) issue(userID int64, email string) (*models.AuthResponse, error) {
	token, err := s.jwtService.GenerateToken(userID, email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &models.AuthResponse{Token: token}, nil
}
