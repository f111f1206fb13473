package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Access tokens are valid for 7 days.
const tokenLifetime = 7 * 24 * time.Hour

// Claims carried by access tokens. Registered users have ID and Email set;
// visitor tokens issued at attendee signup carry only AttendeeID.
type Claims struct {
	ID         string `json:"id,omitempty"`
	Email      string `json:"email,omitempty"`
	AttendeeID string `json:"attendeeId,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access tokens with HMAC-SHA256.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a manager around the configured JWT secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Generate signs a token for the given identity claims.
func (tm *TokenManager) Generate(id, email, attendeeID string) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:         id,
		Email:      email,
		AttendeeID: attendeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify parses and validates a token, returning its claims.
func (tm *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// ExtractBearerToken pulls the token out of an Authorization header.
// Returns "" when the header is missing or not a Bearer credential.
func ExtractBearerToken(authHeader string) string {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}
