package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"health-chatbot-backend/config"
	"health-chatbot-backend/database"
	"health-chatbot-backend/models"
)

var (
	// ErrUserStoreUnavailable means the database is not configured, so
	// accounts cannot be created or authenticated.
	ErrUserStoreUnavailable = errors.New("user store not available")

	// ErrEmailTaken means an account already exists for the email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService handles account registration and JWT-based login.
type UserService struct {
	users      *database.UserRepository
	jwtSecret  []byte
	expiration time.Duration
	bcryptCost int
	logger     zerolog.Logger
}

func NewUserService(users *database.UserRepository, jwtCfg config.JWTConfig, securityCfg config.SecurityConfig, logger zerolog.Logger) *UserService {
	return &UserService{
		users:      users,
		jwtSecret:  []byte(jwtCfg.Secret),
		expiration: time.Duration(jwtCfg.ExpirationHours) * time.Hour,
		bcryptCost: securityCfg.BcryptCost,
		logger:     logger,
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if s.users == nil {
		return nil, ErrUserStoreUnavailable
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, database.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	language := req.PreferredLanguage
	if language == "" {
		language = "en"
	}

	user := &models.User{
		Username:          req.Username,
		Email:             req.Email,
		Phone:             req.Phone,
		PasswordHash:      string(hash),
		PreferredLanguage: language,
		CreatedAt:         time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", user.Email).Msg("user registered")
	return user, nil
}

// Login verifies credentials and returns a signed JWT with the user.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if s.users == nil {
		return nil, ErrUserStoreUnavailable
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, database.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      user.ID.Hex(),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.expiration).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Msg("failed to update last login")
	}
	user.LastLogin = &now

	return &models.AuthResponse{Token: signed, User: *user}, nil
}
