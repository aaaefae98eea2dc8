package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"student-records-api/logger"
	"student-records-api/model"
	"student-records-api/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the absolute token lifetime. There is no refresh or sliding
// window; expiry forces a re-login.
const TokenTTL = 24 * time.Hour

var (
	ErrMissingFields      = errors.New("username and password are required")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenMissing = errors.New("token is missing")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Compared against when the username is unknown, so that path costs the
// same as a wrong-password check.
const unknownUserHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService verifies credentials against the user store and converts an
// authenticated identity into a signed bearer token. The signing key and
// clock are fixed at construction; nothing reads global state per request.
type AuthService struct {
	users    repository.IUserRepository
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(users repository.IUserRepository, secret string) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: TokenTTL,
		now:      time.Now,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to hash password")
		return "", err
	}
	return string(bytes), nil
}

func (s *AuthService) CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register creates a credential row for a new username. The password is
// stored only as a bcrypt hash. A taken username yields
// ErrDuplicateUsername and leaves the existing row intact.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingFields
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, Password: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	logger.Log.WithField("username", username).Info("User registered")
	return user, nil
}

// Authenticate checks a username/password pair. An unknown username and a
// wrong password both return ErrInvalidCredentials so callers cannot
// enumerate usernames.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrMissingFields
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.CheckPasswordHash(password, unknownUserHash)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !s.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return user.Username, nil
}

// IssueToken mints an HS256 token for the subject, expiring exactly
// TokenTTL after issuance.
func (s *AuthService) IssueToken(subject string) (string, error) {
	now := s.now()
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		logger.Log.WithError(err).WithField("subject", subject).Error("Failed to sign token")
		return "", fmt.Errorf("failed to sign token string: %w", err)
	}

	return tokenString, nil
}

// ValidateToken reasserts the subject from a raw token string. Failures
// stay distinguishable (missing, expired, invalid) even though every
// caller treats them all as unauthenticated.
func (s *AuthService) ValidateToken(raw string) (string, error) {
	if raw == "" {
		return "", ErrTokenMissing
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return "", ErrTokenInvalid
	}

	return claims.Subject, nil
}
