package types

import "resortbook/models"

// Principal is the authenticated caller. It is resolved once per request by
// the auth middleware and passed explicitly into every service call.
type Principal struct {
	UserID uint
	Role   models.Role
}

func NewPrincipal(user *models.User) Principal {
	return Principal{UserID: user.ID, Role: user.Role}
}
