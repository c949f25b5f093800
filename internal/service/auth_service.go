package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrAuthDisabled is returned when no admin credentials are configured
	ErrAuthDisabled = errors.New("admin auth is not configured")

	// ErrInvalidCredentials is returned for a wrong password or bad token
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService issues and validates admin bearer tokens. There are no
// user accounts; a single bcrypt-hashed admin password gates the
// dashboard and export endpoints.
type AuthService struct {
	passwordHash  string
	secret        []byte
	tokenDuration time.Duration
}

// NewAuthService creates an auth service from the configured hash and secret
func NewAuthService(passwordHash, jwtSecret string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		passwordHash:  passwordHash,
		secret:        []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// Enabled reports whether admin auth is configured
func (s *AuthService) Enabled() bool {
	return s.passwordHash != "" && len(s.secret) > 0
}

// Login checks the password and returns a signed bearer token
func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a bearer token issued by Login
func (s *AuthService) ValidateToken(tokenString string) error {
	if !s.Enabled() {
		return ErrAuthDisabled
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	token, err := parser.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidCredentials
	}
	return nil
}
