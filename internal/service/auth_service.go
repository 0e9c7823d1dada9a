package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"reeltrivia/internal/config"
	"reeltrivia/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService guards the data-entry surface with a single host account.
type AuthService struct {
	hostUsername string
	hostPassword string
	jwtSecret    []byte
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		hostUsername: cfg.HostUsername,
		hostPassword: cfg.HostPassword,
		jwtSecret:    []byte(cfg.JWTSecret),
	}
}

// Login validates credentials and returns a long-lived token.
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.hostUsername || password != s.hostPassword {
		return nil, ErrInvalidCredentials
	}

	hostID := "host_" + uuid.New().String()[:8]
	claims := &model.HostClaims{
		HostID: hostID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &model.LoginResponse{Token: tokenString, HostID: hostID}, nil
}

// ValidateHostToken parses a host JWT and returns its claims.
func (s *AuthService) ValidateHostToken(tokenString string) (*model.HostClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.HostClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*model.HostClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
