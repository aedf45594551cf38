package user

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrForbidden = errors.New("caller is not allowed to perform this action")

// Caller is the identity the authorization gate hands to use cases.
type Caller struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

func NewCaller(userID uuid.UUID, email string, role string) (Caller, error) {
	r, err := NewRole(role)
	if err != nil {
		return Caller{}, err
	}
	e, err := NewEmail(email)
	if err != nil {
		return Caller{}, err
	}
	return Caller{UserID: userID, Email: e.Value(), Role: r}, nil
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

func (c Caller) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

func (c Caller) Owns(email string) bool {
	return c.Email != "" && strings.EqualFold(c.Email, strings.TrimSpace(email))
}

// RequireRole is the single capability check shared by the HTTP layer and
// the use cases.
func RequireRole(c Caller, roles ...Role) error {
	if !c.HasRole(roles...) {
		return ErrForbidden
	}
	return nil
}

func RequireOwnerOrAdmin(c Caller, ownerEmail string) error {
	if c.IsAdmin() || c.Owns(ownerEmail) {
		return nil
	}
	return ErrForbidden
}
