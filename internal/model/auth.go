package model

import "github.com/golang-jwt/jwt/v5"

// LoginRequest carries the back-office credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued host token.
type LoginResponse struct {
	Token  string `json:"token"`
	HostID string `json:"hostId"`
}

// HostClaims are the JWT claims for the data-entry/back-office surface.
type HostClaims struct {
	HostID string `json:"hostId"`
	jwt.RegisteredClaims
}
