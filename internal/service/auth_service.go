package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduresult/eduresult-go-api/internal/dto"
	"github.com/eduresult/eduresult-go-api/internal/models"
	"github.com/eduresult/eduresult-go-api/internal/repository"
)

var (
	// ErrUsernameTaken indicates the username already exists in the list.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService manages the flat administrator credential list and issues
// session tokens. Sessions are stateless JWTs; nothing is stored per login.
type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error)
}

type authService struct {
	users    repository.UserStore
	validate *validator.Validate
	secret   []byte
	tokenTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuthService constructs the auth service.
func NewAuthService(users repository.UserStore, validate *validator.Validate, secret string, tokenTTL time.Duration, logger zerolog.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &authService{
		users:    users,
		validate: validate,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   logger.With().Str("component", "auth_service").Logger(),
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	username := strings.TrimSpace(req.Username)
	users := s.users.Load(ctx)
	for _, user := range users {
		if user.Username == username {
			return ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users = append(users, models.User{Username: username, PasswordHash: string(hash)})
	if err := s.users.Save(ctx, users); err != nil {
		return err
	}

	s.logger.Info().Str("username", username).Msg("administrator registered")
	return nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.AuthResponse{}, err
	}

	username := strings.TrimSpace(req.Username)
	for _, user := range s.users.Load(ctx) {
		if user.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}

		token, err := s.signToken(username)
		if err != nil {
			return dto.AuthResponse{}, err
		}

		return dto.AuthResponse{Username: username, Token: token}, nil
	}

	return dto.AuthResponse{}, ErrInvalidCredentials
}

func (s *authService) signToken(username string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
