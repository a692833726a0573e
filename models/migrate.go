package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table of the booking domain.
// Users and accommodations go first so the booking foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Accommodation{},
		&Booking{},
	)
}
