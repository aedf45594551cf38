//go:build unit

package user_test

import (
	"testing"

	"course-enrollment/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCaller(t *testing.T) {
	tests := []struct {
		name  string
		email string
		role  string
		errIs error
	}{
		{name: "student OK", email: "Student@Example.com", role: "student"},
		{name: "instructor OK", email: "dana@example.com", role: "instructor"},
		{name: "admin OK", email: "root@example.com", role: "admin"},
		{name: "unknown role NG", email: "x@example.com", role: "operator", errIs: user.ErrInvalidRole},
		{name: "empty role NG", email: "x@example.com", role: "", errIs: user.ErrInvalidRole},
		{name: "bad email NG", email: "not-an-email", role: "student", errIs: user.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := user.NewCaller(uuid.New(), tt.email, tt.role)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.Role(tt.role), c.Role)
		})
	}

	c, err := user.NewCaller(uuid.New(), "  Student@Example.com ", "student")
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", c.Email)
}

func TestRequireRole(t *testing.T) {
	student := user.Caller{UserID: uuid.New(), Email: "s@example.com", Role: user.RoleStudent}
	admin := user.Caller{UserID: uuid.New(), Email: "a@example.com", Role: user.RoleAdmin}

	assert.NoError(t, user.RequireRole(student, user.RoleStudent, user.RoleAdmin))
	assert.NoError(t, user.RequireRole(admin, user.RoleAdmin))
	assert.ErrorIs(t, user.RequireRole(student, user.RoleAdmin), user.ErrForbidden)
	assert.ErrorIs(t, user.RequireRole(student), user.ErrForbidden)
	assert.ErrorIs(t, user.RequireRole(user.Caller{}, user.RoleStudent), user.ErrForbidden)
}

func TestRequireOwnerOrAdmin(t *testing.T) {
	owner := user.Caller{UserID: uuid.New(), Email: "owner@example.com", Role: user.RoleStudent}
	other := user.Caller{UserID: uuid.New(), Email: "other@example.com", Role: user.RoleStudent}
	admin := user.Caller{UserID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}
	anonymous := user.Caller{Role: user.RoleStudent}

	assert.NoError(t, user.RequireOwnerOrAdmin(owner, "OWNER@example.com"))
	assert.NoError(t, user.RequireOwnerOrAdmin(admin, "owner@example.com"))
	assert.ErrorIs(t, user.RequireOwnerOrAdmin(other, "owner@example.com"), user.ErrForbidden)
	assert.ErrorIs(t, user.RequireOwnerOrAdmin(anonymous, ""), user.ErrForbidden)
}
