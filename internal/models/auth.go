package models

import "github.com/golang-jwt/jwt/v5"

// Identity is the caller identity carried inside a session token.
type Identity struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// JWTClaims represents the JWT payload for session tokens.
type JWTClaims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenResponse is returned by the token endpoint.
type TokenResponse struct {
	Token string `json:"token"`
}
