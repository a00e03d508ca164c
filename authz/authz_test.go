package authz

import (
	"testing"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"

	"github.com/stretchr/testify/assert"
)

func TestRequire(t *testing.T) {
	owner := Caller{UserID: 42, Role: models.RoleRestaurantOwner}

	assert.NoError(t, owner.Require(models.RoleRestaurantOwner))
	assert.NoError(t, owner.Require(models.RoleCustomer, models.RoleRestaurantOwner))

	err := owner.Require(models.RoleCustomer)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.Contains(t, err.Error(), "Customer")

	assert.ErrorIs(t, Caller{}.Require(models.RoleCustomer), apperr.ErrUnauthorized)
}

func TestRequireOwner(t *testing.T) {
	c := Caller{UserID: 7, Role: models.RoleCustomer}
	admin := Caller{UserID: 1, Role: models.RoleAdmin}

	assert.NoError(t, c.RequireOwner(7, "order"))
	assert.ErrorIs(t, c.RequireOwner(8, "order"), apperr.ErrForbidden)

	assert.ErrorIs(t, admin.RequireOwner(7, "order"), apperr.ErrForbidden)
	assert.NoError(t, admin.RequireOwnerOrAdmin(7, "order"))
	assert.ErrorIs(t, c.RequireOwnerOrAdmin(8, "order"), apperr.ErrForbidden)
}

func TestRoleLiteralsAreCaseSensitive(t *testing.T) {
	c := Caller{UserID: 3, Role: models.UserRole("customer")}

	assert.ErrorIs(t, c.Require(models.RoleCustomer), apperr.ErrForbidden)
}
