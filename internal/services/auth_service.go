package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"beerservice/internal/domain"
	"beerservice/internal/repos"
)

var ErrBadCredentials = errors.New("invalid username or password")

type AuthService struct {
	Users  *repos.UserRepo
	Secret []byte
	TTL    time.Duration
}

func NewAuthService(users *repos.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{Users: users, Secret: []byte(secret), TTL: ttl}
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	u, err := s.Users.ByUsername(ctx, username)
	if err != nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return u, nil
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token carrying the username and role.
func (s *AuthService) IssueToken(u *domain.User) (string, time.Time, error) {
	exp := time.Now().Add(s.TTL)
	claims := tokenClaims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.Username,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tok, exp, nil
}

// ParseToken returns the principal named by a valid, unexpired token.
func (s *AuthService) ParseToken(raw string) (*domain.User, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredentials, err)
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrBadCredentials
	}
	return &domain.User{Username: claims.Subject, Role: claims.Role}, nil
}
