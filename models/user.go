package models

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	FirstName     string    `gorm:"not null" json:"firstname"`
	LastName      string    `gorm:"not null" json:"lastname"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	Role          Role      `gorm:"type:varchar(20);not null" json:"role"`
	Password      string    `gorm:"not null" json:"-"`
}

