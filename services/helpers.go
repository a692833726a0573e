package services

import (
	"errors"

	apperrors "resortbook/errors"
	"resortbook/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// dbError passes AppErrors through, turns a missing row into NotFound and
// everything else into Internal.
func dbError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	return apperrors.Internal("Something went wrong, please try again later", err)
}

func lockAccommodation(tx *gorm.DB, id uint) (*models.Accommodation, error) {
	var acc models.Accommodation
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&acc, id).Error; err != nil {
		return nil, dbError(err, "Accommodation not found")
	}
	return &acc, nil
}

func lockBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
		return nil, dbError(err, "Booking not found")
	}
	return &booking, nil
}
