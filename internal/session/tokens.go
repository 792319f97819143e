package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const staffSubject = "staff"

// ErrInvalidToken is returned for tokens that fail signature, expiry or
// subject checks.
var ErrInvalidToken = errors.New("invalid staff token")

// StaffTokens issues and verifies HS256 tokens for the kitchen board.
type StaffTokens struct {
	secret []byte
	ttl    time.Duration
}

// NewStaffTokens creates a token service. ttl must be positive.
func NewStaffTokens(secret string, ttl time.Duration) *StaffTokens {
	return &StaffTokens{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new staff token valid from now for the configured ttl.
func (s *StaffTokens) Issue(now time.Time) (string, time.Time, error) {
	exp := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   staffSubject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign staff token: %w", err)
	}
	return signed, exp, nil
}

// Verify checks the token at now and returns its id.
func (s *StaffTokens) Verify(raw string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signature method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject != staffSubject {
		return "", fmt.Errorf("%w: unexpected subject %q", ErrInvalidToken, claims.Subject)
	}
	return claims.ID, nil
}
