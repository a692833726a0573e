package services

import (
	"context"
	"testing"

	"resortbook/dto"
	apperrors "resortbook/errors"
	"resortbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(UserServiceOptions{DB: db, Retries: 3, HashCost: testHashCost})
}

func strPtr(s string) *string { return &s }

func TestUserDirectoryAccess(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@resort.test", models.RoleAdmin)
	alice := seedUser(t, db, "alice@resort.test", models.RoleCustomer)
	bob := seedUser(t, db, "bob@resort.test", models.RoleCustomer)
	svc := newUserService(db)
	ctx := context.Background()

	users, err := svc.List(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, err = svc.List(ctx, alice)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	_, err = svc.Get(ctx, alice, bob.UserID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))

	me, err := svc.Get(ctx, alice, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice@resort.test", me.Email)

	_, err = svc.Get(ctx, admin, 999)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	err = svc.Delete(ctx, alice, bob.UserID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeForbidden))
}

func TestUpdateUserProfile(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice@resort.test", models.RoleCustomer)
	seedUser(t, db, "bob@resort.test", models.RoleCustomer)
	svc := newUserService(db)
	ctx := context.Background()

	updated, err := svc.Update(ctx, alice, alice.UserID, dto.UpdateUserRequest{
		FirstName: strPtr("Alicia"),
		Address:   strPtr("Boracay"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.FirstName)
	assert.Equal(t, "Boracay", updated.Address)
	assert.Equal(t, models.RoleCustomer, updated.Role)

	_, err = svc.Update(ctx, alice, alice.UserID, dto.UpdateUserRequest{Email: strPtr("BOB@resort.test")})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))

	_, err = svc.Update(ctx, alice, alice.UserID, dto.UpdateUserRequest{Password: strPtr("new-password")})
	require.NoError(t, err)

	auth := newAuthService(db, nil)
	_, _, err = auth.Login(ctx, dto.LoginRequest{Email: "alice@resort.test", Password: "new-password"})
	assert.NoError(t, err)
}

func TestDeleteUserReleasesHeldUnits(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@resort.test", models.RoleAdmin)
	alice := seedUser(t, db, "alice@resort.test", models.RoleCustomer)
	bob := seedUser(t, db, "bob@resort.test", models.RoleCustomer)
	room := seedAccommodation(t, db, "Room", withUnits(5))
	tent := seedAccommodation(t, db, "Tent", withUnits(5))
	bookings := newBookingService(db, nil)
	svc := newUserService(db)
	ctx := context.Background()

	_, err := bookings.Create(ctx, alice, book(2, room.ID))
	require.NoError(t, err)
	confirmed, err := bookings.Create(ctx, alice, book(1, tent.ID))
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(ctx, admin, confirmed.ID, models.BookingConfirmed)
	require.NoError(t, err)
	cancelled, err := bookings.Create(ctx, alice, book(3, room.ID))
	require.NoError(t, err)
	_, err = bookings.UpdateStatus(ctx, admin, cancelled.ID, models.BookingCancelled)
	require.NoError(t, err)
	_, err = bookings.Create(ctx, bob, book(1, room.ID))
	require.NoError(t, err)

	require.Equal(t, 2, unitsOf(t, db, room.ID))
	require.Equal(t, 4, unitsOf(t, db, tent.ID))

	require.NoError(t, svc.Delete(ctx, admin, alice.UserID))

	assert.Equal(t, 4, unitsOf(t, db, room.ID))
	assert.Equal(t, 5, unitsOf(t, db, tent.ID))
	assert.Equal(t, int64(1), countBookings(t, db))

	_, err = svc.Get(ctx, admin, alice.UserID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))

	err = svc.Delete(ctx, admin, alice.UserID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}
