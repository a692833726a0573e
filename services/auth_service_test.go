package services

import (
	"context"
	"testing"
	"time"

	"resortbook/dto"
	apperrors "resortbook/errors"
	"resortbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB, revocations RevocationStore) *AuthService {
	return NewAuthService(AuthServiceOptions{
		DB:       db,
		Tokens:   NewTokenService("test-secret", time.Hour, revocations),
		HashCost: testHashCost,
	})
}

func registration(email string) dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName:     "Juan",
		LastName:      "Dela Cruz",
		Email:         email,
		Password:      "s3cure-pass",
		ContactNumber: "09171234567",
	}
}

func TestRegisterCreatesCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, registration("  Juan@Resort.TEST "))
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.Equal(t, "juan@resort.test", user.Email)
	assert.NotEqual(t, "s3cure-pass", user.Password)
	assert.NotEmpty(t, token)

	principal, claims, err := svc.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.UserID)
	assert.Equal(t, models.RoleCustomer, principal.Role)
	assert.NotEmpty(t, claims.Id)

	_, _, err = svc.Register(ctx, registration("juan@resort.test"))
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.Contains(t, err.Error(), "The email has already been taken.")
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registration("juan@resort.test"))
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, dto.LoginRequest{Email: "JUAN@resort.test", Password: "s3cure-pass"})
	require.NoError(t, err)
	assert.Equal(t, "juan@resort.test", user.Email)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "juan@resort.test", Password: "wrong-pass"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	assert.Contains(t, err.Error(), "The provided credentials are incorrect.")

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@resort.test", Password: "s3cure-pass"})
	assert.Contains(t, err.Error(), "The provided credentials are incorrect.")
}

func TestLogoutRevokesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &memoryRevocations{})
	ctx := context.Background()

	_, token, err := svc.Register(ctx, registration("juan@resort.test"))
	require.NoError(t, err)

	_, claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, claims))

	_, _, err = svc.Authenticate(ctx, token)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthenticated))
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)
	ctx := context.Background()

	for _, token := range []string{"", "Bearer ", "not-a-jwt", "a.b.c"} {
		_, _, err := svc.Authenticate(ctx, token)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthenticated), token)
	}

	other := NewTokenService("another-secret", time.Hour, nil)
	forged, err := other.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	_, _, err = svc.Authenticate(ctx, forged)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthenticated))

	expired := NewTokenService("test-secret", -time.Minute, nil)
	old, err := expired.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	_, _, err = svc.Authenticate(ctx, old)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthenticated))
}

func TestAuthenticateUsesCurrentRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, registration("juan@resort.test"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("role", models.RoleAdmin).Error)

	principal, _, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, principal.Role)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)
	_, _, err = svc.Authenticate(ctx, token)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeUnauthenticated))
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, nil)
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "", ""))
	require.NoError(t, svc.SeedAdmin(ctx, "Admin@Resort.test", "admin-pass"))
	require.NoError(t, svc.SeedAdmin(ctx, "admin@resort.test", "other-pass"))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)

	user, _, err := svc.Login(ctx, dto.LoginRequest{Email: "admin@resort.test", Password: "admin-pass"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}
