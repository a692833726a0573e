package dto

import "resortbook/models"

// AccommodationRequest is the create/update payload, bound from JSON or a
// multipart form. The optional image travels separately as the "image" file.
type AccommodationRequest struct {
	Name           string                   `json:"name" form:"name" binding:"required,max=255"`
	Type           models.AccommodationType `json:"type" form:"type" binding:"required,accommodation_type"`
	Description    string                   `json:"description" form:"description" binding:"required"`
	CapacityMin    int                      `json:"capacity_min" form:"capacity_min" binding:"required,min=1"`
	CapacityMax    int                      `json:"capacity_max" form:"capacity_max" binding:"required,gtefield=CapacityMin"`
	DurationHours  int                      `json:"duration_hours" form:"duration_hours" binding:"required,duration_hours"`
	Price          *float64                 `json:"price" form:"price" binding:"required,min=0"`
	AvailableUnits *int                     `json:"available_units" form:"available_units" binding:"required,min=0"`
	IsActive       *bool                    `json:"is_active" form:"is_active"`
}

// Apply copies the request onto acc. is_active is left alone when omitted.
func (r *AccommodationRequest) Apply(acc *models.Accommodation) {
	acc.Name = r.Name
	acc.Type = r.Type
	acc.Description = r.Description
	acc.CapacityMin = r.CapacityMin
	acc.CapacityMax = r.CapacityMax
	acc.DurationHours = r.DurationHours
	if r.Price != nil {
		acc.Price = *r.Price
	}
	if r.AvailableUnits != nil {
		acc.AvailableUnits = *r.AvailableUnits
	}
	if r.IsActive != nil {
		acc.IsActive = *r.IsActive
	}
}

// ToModel builds a new accommodation, active unless the request says otherwise.
func (r *AccommodationRequest) ToModel() *models.Accommodation {
	acc := &models.Accommodation{IsActive: true}
	r.Apply(acc)
	return acc
}

type AccommodationFilter struct {
	Q string `form:"q" binding:"omitempty,max=100"`
}

type AvailableFilter struct {
	Type     models.AccommodationType `form:"type" json:"type,omitempty"`
	Duration int                      `form:"duration" json:"duration,omitempty"`
	Persons  int                      `form:"persons" json:"persons,omitempty" binding:"omitempty,min=1"`
}

// AccommodationList is the admin listing. Suggestion is set only when a
// search matched nothing and a close name exists.
type AccommodationList struct {
	Items      []models.Accommodation `json:"items"`
	Suggestion *models.Accommodation  `json:"suggestion,omitempty"`
}
