package dto

type IDParam struct {
	ID uint `uri:"id" binding:"required,min=1"`
}
