package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffTokens_IssueVerify(t *testing.T) {
	tokens := NewStaffTokens("test-secret", time.Hour)
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	raw, exp, err := tokens.Issue(now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	id, err := tokens.Verify(raw, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.NotEmpty(t, id)
}

func TestStaffTokens_Rejects(t *testing.T) {
	tokens := NewStaffTokens("test-secret", time.Hour)
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	raw, _, err := tokens.Issue(now)
	require.NoError(t, err)

	otherSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "customer",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: staffSubject,
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		tokens *StaffTokens
		raw    string
		at     time.Time
	}{
		{"expired", tokens, raw, now.Add(2 * time.Hour)},
		{"wrong secret", NewStaffTokens("other", time.Hour), raw, now},
		{"garbage", tokens, "not-a-token", now},
		{"empty", tokens, "", now},
		{"other subject", tokens, otherSubject, now},
		{"missing expiry", tokens, noExpiry, now},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tokens.Verify(tt.raw, tt.at)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
