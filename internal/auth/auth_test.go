package auth

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/career-assessment-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndParse(t *testing.T) {
	svc := NewTokenService("secret", 0)
	respondent := &models.Respondent{ID: "r-1", RollNumber: "MB001", Role: models.RoleStudent}

	token, err := svc.Issue(respondent)
	require.NoError(t, err)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "r-1", claims.ID)
	assert.Equal(t, "MB001", claims.RollNumber)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.False(t, claims.IsAdmin())
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenService_Rejects(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	respondent := &models.Respondent{ID: "r-1", RollNumber: "ADMIN001", Role: models.RoleAdmin}

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenService("other", time.Hour).Issue(respondent)
		require.NoError(t, err)
		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewTokenService("secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := expired.Issue(respondent)
		require.NoError(t, err)
		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other algorithm", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{ID: "r-1"}).SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("student")
	require.NoError(t, err)
	assert.NotEqual(t, "student", hash)

	assert.NoError(t, CheckPassword(hash, "student"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrPasswordMismatch)
}
