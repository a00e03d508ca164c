// Package authz holds the capability checks every operation runs before its body.
//
// A Caller is built once from verified token claims; services call Require and
// RequireOwner instead of comparing role strings inline.
package authz

import (
	"strings"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"
)

type Caller struct {
	UserID uint
	Email  string
	Name   string
	Role   models.UserRole
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// Require passes when the caller holds one of roles.
func (c Caller) Require(roles ...models.UserRole) error {
	if c.UserID == 0 {
		return apperr.Unauthorized("authentication required")
	}
	for _, r := range roles {
		if c.Role == r {
			return nil
		}
	}
	return apperr.Forbidden("access denied, required role(s): %s", rolesString(roles))
}

// RequireOwner passes when the caller is ownerID.
func (c Caller) RequireOwner(ownerID uint, resource string) error {
	if c.UserID == 0 {
		return apperr.Unauthorized("authentication required")
	}
	if c.UserID != ownerID {
		return apperr.Forbidden("this %s does not belong to you", resource)
	}
	return nil
}

// RequireOwnerOrAdmin is RequireOwner with an admin override.
func (c Caller) RequireOwnerOrAdmin(ownerID uint, resource string) error {
	if c.IsAdmin() {
		return nil
	}
	return c.RequireOwner(ownerID, resource)
}

func rolesString(roles []models.UserRole) string {
	s := make([]string, len(roles))
	for i, r := range roles {
		s[i] = string(r)
	}
	return strings.Join(s, ", ")
}
