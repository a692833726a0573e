package dto

import "resortbook/models"

type CreateBookingRequest struct {
	AccommodationID uint                 `json:"accommodation_id" binding:"required"`
	Quantity        int                  `json:"quantity" binding:"required,min=1"`
	PaymentMethod   models.PaymentMethod `json:"payment_method" binding:"required,payment_method"`
}

// UpdateBookingRequest carries the fields a booking owner may change.
// Status is accepted only so it can be refused with a pointer to the
// status endpoint.
type UpdateBookingRequest struct {
	Quantity      *int                  `json:"quantity" binding:"omitempty,min=1"`
	PaymentMethod *models.PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
	Status        *string               `json:"status"`
}

type UpdateBookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required,booking_status"`
}

// BookingFilter narrows a listing. The zero value lists everything visible.
type BookingFilter struct {
	Status models.BookingStatus `form:"status" binding:"omitempty,booking_status"`
}
