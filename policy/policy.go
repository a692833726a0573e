// Package policy holds the authorization predicates consulted by the
// booking and accommodation services.
package policy

import (
	apperrors "resortbook/errors"
	"resortbook/models"
	"resortbook/types"
)

func IsAdmin(p types.Principal) bool {
	switch p.Role {
	case models.RoleAdmin:
		return true
	case models.RoleCustomer:
		return false
	default:
		return false
	}
}

func IsOwner(p types.Principal, booking *models.Booking) bool {
	return booking != nil && booking.BelongsTo(p.UserID)
}

// CanManageAccommodations guards create, update, delete and toggle on accommodations.
func CanManageAccommodations(p types.Principal) error {
	if !IsAdmin(p) {
		return apperrors.Forbidden("Only administrators can manage accommodations")
	}
	return nil
}

// CanAccessBooking guards read, update and delete of a single booking.
func CanAccessBooking(p types.Principal, booking *models.Booking, action string) error {
	if IsAdmin(p) || IsOwner(p, booking) {
		return nil
	}
	return apperrors.Forbidden("You are not authorized to " + action + " this booking")
}

// CanTransitionBooking guards status transitions.
func CanTransitionBooking(p types.Principal) error {
	if !IsAdmin(p) {
		return apperrors.Forbidden("Only administrators can approve or reject bookings")
	}
	return nil
}

// CanManageUser lets a user manage their own account and admins manage any.
func CanManageUser(p types.Principal, userID uint) error {
	if IsAdmin(p) || p.UserID == userID {
		return nil
	}
	return apperrors.Forbidden("You are not authorized to manage this user")
}

// CanListUsers guards the user directory listing.
func CanListUsers(p types.Principal) error {
	if !IsAdmin(p) {
		return apperrors.Forbidden("Only administrators can list users")
	}
	return nil
}
