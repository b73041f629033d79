// Package identity wraps credential verification and account creation over
// the user store, and issues the short-lived signed tokens the frontend
// verifies on every proxied request.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/h108777/ThreatMap/database"
	"github.com/h108777/ThreatMap/model"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
// Callers map it to a generic response without leaking which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserExists is returned when the email is already registered.
var ErrUserExists = errors.New("user already exists")

// Claims is the token payload carried by the session cookie.
type Claims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Service is the identity gateway: account creation, credential verification
// and token issuance over the users collection.
type Service struct {
	users userRepo
	cfg   Config
}

// NewService builds the identity gateway over the given database connection.
func NewService(db database.DBConnection, cfg Config) *Service {
	return &Service{users: &arangoUserRepo{db: db}, cfg: cfg}
}

// CreateUser registers a new account with a bcrypt password hash.
func (s *Service) CreateUser(ctx context.Context, email, password, name string) (*model.User, error) {
	if _, err := s.users.getByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.NewUser(uuid.NewString(), email, name)
	user.PasswordHash = string(hash)

	if err := s.users.insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyUser checks the credentials against the stored hash. The password is
// always verified; there is no lookup-only trust path.
func (s *Service) VerifyUser(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.getByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken mints a short-lived HS256 session token for the user.
func (s *Service) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UID:   user.UID,
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL())),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "threatmap",
			Subject:   user.UID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken validates the token signature and expiry and returns the claims.
func ParseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
