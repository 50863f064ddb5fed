// Package service holds the business rules between the HTTP layer and the stores.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskmaster/internal/apperror"
	"taskmaster/internal/models"
	"taskmaster/internal/repository"
	"taskmaster/pkg/crypto"
	"taskmaster/pkg/logger"
	"taskmaster/pkg/token"
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgTokenExpired       = "Token expired. Please login again."
	msgTokenInvalid       = "Invalid token. Access denied."
	msgAuthFailed         = "Authentication failed."
	msgUserNotFound       = "User not found"
)

// Identity is what a verified token says about the caller.
type Identity struct {
	UserID string
	Email  string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  models.UserSummary `json:"user"`
	Token string             `json:"token"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users    repository.UserRepository
	hasher   *crypto.PasswordHasher
	tokens   *token.Manager
	validate *validator.Validate
}

func NewAuthService(users repository.UserRepository, hasher *crypto.PasswordHasher, tokens *token.Manager, validate *validator.Validate) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens, validate: validate}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if err := s.validate.Struct(in); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return nil, apperror.Validation(validationMessage(err, map[string]string{
			"required": "Please provide email, password, and name",
			"email":    "Please provide a valid email address",
			"min":      "Password must be at least 8 characters long",
		}))
	}

	// cek duplikat dulu, unique constraint tetap jadi penjaga terakhir
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		logger.SecurityLogger.Warn("Duplicate email on register", zap.String("email", in.Email))
		return nil, apperror.Conflict("User with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperror.Internal("Registration failed", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return nil, apperror.Internal("Registration failed", err)
	}

	user := &models.User{Email: in.Email, Name: in.Name, Password: hashed}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			logger.SecurityLogger.Warn("Duplicate email on register", zap.String("email", in.Email))
			return nil, apperror.Conflict("User with this email already exists")
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return nil, apperror.Internal("Registration failed", err)
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return nil, apperror.Internal("Registration failed", err)
	}

	logger.AuditLogger.Info("User registered successfully", zap.String("user_id", user.ID))
	return &AuthResult{User: user.Summary(), Token: tok}, nil
}

// Login returns the same AuthError for an unknown email and a wrong password.
// bcrypt only runs when the email exists, so response time still differs.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validate.Struct(in); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return nil, apperror.Validation("Please provide email and password")
	}

	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", in.Email))
			return nil, apperror.Auth(msgInvalidCredentials)
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return nil, apperror.Internal("Login failed", err)
	}

	if err := s.hasher.Compare(user.Password, in.Password); err != nil {
		if errors.Is(err, crypto.ErrMismatch) {
			logger.SecurityLogger.Warn("Invalid password", zap.String("user_id", user.ID))
			return nil, apperror.Auth(msgInvalidCredentials)
		}
		logger.ErrorLogger.Error("Error comparing password", zap.Error(err))
		return nil, apperror.Internal("Login failed", err)
	}

	tok, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return nil, apperror.Internal("Login failed", err)
	}

	logger.AuditLogger.Info("Login success", zap.String("user_id", user.ID))
	return &AuthResult{User: user.Summary(), Token: tok}, nil
}

// VerifyToken always fails with an AuthError; the message tells expired,
// invalid and other failures apart.
func (s *AuthService) VerifyToken(tokenString string) (Identity, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		logger.SecurityLogger.Warn("Token rejected", zap.Error(err))
		switch {
		case errors.Is(err, token.ErrExpired):
			return Identity{}, apperror.Auth(msgTokenExpired).WithCause(err)
		case errors.Is(err, token.ErrInvalid):
			return Identity{}, apperror.Auth(msgTokenInvalid).WithCause(err)
		default:
			return Identity{}, apperror.Auth(msgAuthFailed).WithCause(err)
		}
	}
	return Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(msgUserNotFound)
		}
		logger.ErrorLogger.Error("Error fetching profile", zap.Error(err))
		return nil, apperror.Internal("Failed to fetch profile", err)
	}

	profile := user.Profile()
	return &profile, nil
}

// ChangePassword re-hashes the password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len([]rune(next)) < 8 {
		return apperror.Validation("Password must be at least 8 characters long")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return apperror.NotFound(msgUserNotFound)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(msgUserNotFound)
		}
		return apperror.Internal("Failed to change password", err)
	}

	if err := s.hasher.Compare(user.Password, current); err != nil {
		if errors.Is(err, crypto.ErrMismatch) {
			logger.SecurityLogger.Warn("Wrong current password", zap.String("user_id", userID))
			return apperror.Auth("Current password is incorrect")
		}
		return apperror.Internal("Failed to change password", err)
	}

	hashed, err := s.hasher.Hash(next)
	if err != nil {
		return apperror.Internal("Failed to change password", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hashed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(msgUserNotFound)
		}
		return apperror.Internal("Failed to change password", err)
	}

	logger.AuditLogger.Info("Password changed", zap.String("user_id", userID))
	return nil
}
