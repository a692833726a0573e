package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "resortbook/errors"
	"resortbook/models"
	"resortbook/types"
)

var (
	admin    = types.Principal{UserID: 1, Role: models.RoleAdmin}
	owner    = types.Principal{UserID: 2, Role: models.RoleCustomer}
	stranger = types.Principal{UserID: 3, Role: models.RoleCustomer}
	unknown  = types.Principal{UserID: 4, Role: models.Role("superuser")}
)

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(owner))
	assert.False(t, IsAdmin(unknown))
}

func TestCanAccessBooking(t *testing.T) {
	booking := &models.Booking{ID: 10, UserID: owner.UserID}

	assert.NoError(t, CanAccessBooking(admin, booking, "view"))
	assert.NoError(t, CanAccessBooking(owner, booking, "view"))

	err := CanAccessBooking(stranger, booking, "delete")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
	assert.Equal(t, "You are not authorized to delete this booking", apperrors.GetAppError(err).Message)
}

func TestAdminOnlyGuards(t *testing.T) {
	for _, guard := range []func(types.Principal) error{CanManageAccommodations, CanTransitionBooking, CanListUsers} {
		assert.NoError(t, guard(admin))
		assert.True(t, apperrors.HasCode(guard(owner), apperrors.ErrCodeForbidden))
		assert.True(t, apperrors.HasCode(guard(unknown), apperrors.ErrCodeForbidden))
	}
}

func TestCanManageUser(t *testing.T) {
	assert.NoError(t, CanManageUser(owner, owner.UserID))
	assert.NoError(t, CanManageUser(admin, owner.UserID))
	assert.Error(t, CanManageUser(stranger, owner.UserID))
}
