package models

import (
	"fmt"
	"time"
)

// AccommodationType is the closed set of bookable unit kinds.
type AccommodationType string

const (
	AccommodationCottage AccommodationType = "cottage"
	AccommodationRoom    AccommodationType = "room"
	AccommodationTent    AccommodationType = "tent"
)

func (t AccommodationType) Valid() bool {
	switch t {
	case AccommodationCottage, AccommodationRoom, AccommodationTent:
		return true
	}
	return false
}

// Allowed rental durations, in hours.
const (
	DurationDayUse    = 3
	DurationOvernight = 22
)

func ValidDuration(hours int) bool {
	return hours == DurationDayUse || hours == DurationOvernight
}

type Accommodation struct {
	ID             uint              `json:"id" gorm:"primaryKey"`
	Name           string            `json:"name" gorm:"not null"`
	Type           AccommodationType `json:"type" gorm:"type:varchar(20);not null;index"`
	Description    string            `json:"description" gorm:"type:text"`
	CapacityMin    int               `json:"capacity_min" gorm:"not null"`
	CapacityMax    int               `json:"capacity_max" gorm:"not null"`
	DurationHours  int               `json:"duration_hours" gorm:"not null"`
	Price          float64           `json:"price" gorm:"type:decimal(10,2);not null"`
	AvailableUnits int               `json:"available_units" gorm:"not null"`
	ImagePath      *string           `json:"image_path"` // blob reference in the image store
	ImageURL       *string           `json:"image_url"`
	IsActive       bool              `json:"is_active" gorm:"not null;index"`
	CreatedAt      time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

// IsAvailable reports whether the accommodation passes the booking gate.
// The gate only checks that at least one unit is left, not that the
// requested quantity fits.
func (a *Accommodation) IsAvailable() bool {
	return a.IsActive && a.AvailableUnits > 0
}

func (a *Accommodation) ValidateType() error {
	if !a.Type.Valid() {
		return fmt.Errorf("invalid type: %q, must be one of cottage, room, tent", a.Type)
	}
	return nil
}

func (a *Accommodation) ValidateCapacity() error {
	if a.CapacityMin < 1 {
		return fmt.Errorf("capacity_min must be at least 1")
	}
	if a.CapacityMax < a.CapacityMin {
		return fmt.Errorf("capacity_max must be greater than or equal to capacity_min")
	}
	return nil
}

func (a *Accommodation) ValidateDuration() error {
	if !ValidDuration(a.DurationHours) {
		return fmt.Errorf("invalid duration_hours: %d, must be 3 or 22", a.DurationHours)
	}
	return nil
}

// Validate runs every field check that does not need the database.
func (a *Accommodation) Validate() error {
	if err := a.ValidateType(); err != nil {
		return err
	}
	if err := a.ValidateCapacity(); err != nil {
		return err
	}
	if err := a.ValidateDuration(); err != nil {
		return err
	}
	if a.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if a.AvailableUnits < 0 {
		return fmt.Errorf("available_units must not be negative")
	}
	return nil
}
