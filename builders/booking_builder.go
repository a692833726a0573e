package builders

import (
	"fmt"
	"math"

	"resortbook/models"
)

// BookingBuilder assembles a new booking and its price snapshot step by step.
type BookingBuilder struct {
	booking   *models.Booking
	unitPrice float64
	hasAcc    bool
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: models.BookingPending},
	}
}

func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// ForAccommodation copies the name, type, duration and price that the
// booking keeps for its whole life.
func (b *BookingBuilder) ForAccommodation(acc *models.Accommodation) *BookingBuilder {
	b.booking.AccommodationID = acc.ID
	b.booking.CottageType = acc.Name
	b.booking.AccommodationType = acc.Type
	b.booking.Duration = acc.DurationHours
	b.unitPrice = acc.Price
	b.hasAcc = true
	return b
}

func (b *BookingBuilder) WithQuantity(quantity int) *BookingBuilder {
	b.booking.Quantity = quantity
	return b
}

func (b *BookingBuilder) WithPaymentMethod(method models.PaymentMethod) *BookingBuilder {
	b.booking.PaymentMethod = method
	return b
}

// Build validates the collected fields and computes total_price.
func (b *BookingBuilder) Build() (*models.Booking, error) {
	if !b.hasAcc {
		return nil, fmt.Errorf("booking has no accommodation")
	}
	if b.booking.UserID == 0 {
		return nil, fmt.Errorf("booking has no user")
	}
	if b.booking.Quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1")
	}
	if !b.booking.PaymentMethod.Valid() {
		return nil, fmt.Errorf("invalid payment method: %q", b.booking.PaymentMethod)
	}
	if !b.booking.Status.Valid() {
		return nil, fmt.Errorf("invalid status: %q", b.booking.Status)
	}
	b.booking.TotalPrice = math.Round(b.unitPrice*float64(b.booking.Quantity)*100) / 100
	return b.booking, nil
}
