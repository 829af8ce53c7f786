package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"multibank/internal/config"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrExpiredToken    = errors.New("token is expired")
	ErrEmptyToken      = errors.New("empty token")
)

// sessionService implements the Mini-App's password gate: one shared
// password checked against a bcrypt hash, exchanged for a short-lived HS256
// session token.
type sessionService struct {
	passwordHash    []byte
	secret          []byte
	sessionDuration time.Duration
	issuer          string
}

// NewSessionService creates a session service from auth configuration
func NewSessionService(cfg *config.AuthConfig) SessionServiceInterface {
	return &sessionService{
		passwordHash:    []byte(cfg.PasswordHash),
		secret:          []byte(cfg.JWTSecret),
		sessionDuration: cfg.SessionDuration,
		issuer:          cfg.Issuer,
	}
}

// Authenticate checks the password and issues a session token
func (s *sessionService) Authenticate(password string) (string, time.Time, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidPassword
	}

	now := time.Now()
	expiresAt := now.Add(s.sessionDuration)

	claims := jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   "session",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken verifies a session token's signature, issuer and expiry
func (s *sessionService) ValidateToken(tokenString string) error {
	if tokenString == "" {
		return ErrEmptyToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrExpiredToken
		}
		return ErrInvalidToken
	}

	if !token.Valid {
		return ErrInvalidToken
	}

	return nil
}
