package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AdminClaims identifies one admin session.
type AdminClaims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

var errUnexpectedSigning = errors.New("unexpected signing method")

// GenerateToken creates a signed JWT for the given session id.
// The token expires after the specified duration.
func GenerateToken(secret []byte, sessionID, subject string, duration time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(duration)
	claims := AdminClaims{
		StandardClaims: jwt.StandardClaims{
			Id:        sessionID,
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: exp.Unix(),
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	return signed, exp, err
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(secret []byte, tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigning
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
