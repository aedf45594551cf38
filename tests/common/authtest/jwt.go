//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func Caller(email string, role user.Role) user.Caller {
	return user.Caller{UserID: uuid.New(), Email: email, Role: role}
}

func (h *JWTHelper) GenerateToken(t *testing.T, caller user.Caller) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(caller)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, caller user.Caller) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(caller)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
