package dto

type UpdateUserRequest struct {
	FirstName     *string `json:"firstname" binding:"omitempty,min=1,max=255"`
	LastName      *string `json:"lastname" binding:"omitempty,min=1,max=255"`
	Email         *string `json:"email" binding:"omitempty,email,max=255"`
	ContactNumber *string `json:"contact_number" binding:"omitempty,max=20"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
	Password      *string `json:"password" binding:"omitempty,min=8,max=72"`
}
