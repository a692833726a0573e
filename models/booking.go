package models

import (
	"time"
)

// PaymentMethod is how the customer intends to settle the booking.
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentCash         PaymentMethod = "cash"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentGCash        PaymentMethod = "gcash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentCash, PaymentBankTransfer, PaymentGCash:
		return true
	}
	return false
}

type Booking struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"not null;index"`
	User            *User          `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	AccommodationID uint           `json:"accommodation_id" gorm:"not null;index"`
	Accommodation   *Accommodation `json:"accommodation,omitempty" gorm:"foreignKey:AccommodationID;constraint:OnDelete:RESTRICT"`

	// Snapshot of the accommodation at creation time. Never recomputed.
	CottageType       string            `json:"cottage_type" gorm:"not null"`
	AccommodationType AccommodationType `json:"accommodation_type" gorm:"type:varchar(20);not null"`
	Duration          int               `json:"duration" gorm:"not null"`
	TotalPrice        float64           `json:"total_price" gorm:"type:decimal(10,2);not null"`

	Quantity      int           `json:"quantity" gorm:"not null"`
	PaymentMethod PaymentMethod `json:"payment_method" gorm:"type:varchar(20);not null"`
	Status        BookingStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt     time.Time     `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// BelongsTo reports whether the booking is owned by the given user.
func (b *Booking) BelongsTo(userID uint) bool {
	return b.UserID == userID
}
