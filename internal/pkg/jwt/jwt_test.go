//go:build unit

package jwt

import (
	"testing"
	"time"

	"course-enrollment/internal/domain/user"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService("secret", time.Hour)
	caller := user.Caller{UserID: uuid.New(), Email: "s@example.com", Role: user.RoleStudent}

	token, err := svc.GenerateToken(caller)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, caller.UserID, claims.UserID)
	assert.Equal(t, "s@example.com", claims.Email)
	assert.Equal(t, "student", claims.Role)
}

func TestValidateToken_Errors(t *testing.T) {
	caller := user.Caller{UserID: uuid.New(), Email: "s@example.com", Role: user.RoleStudent}

	t.Run("expired", func(t *testing.T) {
		token, err := NewService("secret", -time.Minute).GenerateToken(caller)
		require.NoError(t, err)
		_, err = NewService("secret", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewService("other", time.Hour).GenerateToken(caller)
		require.NoError(t, err)
		_, err = NewService("secret", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"role": "admin"}).
			SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = NewService("secret", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := NewService("secret", time.Hour).ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
