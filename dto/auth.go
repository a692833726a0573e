package dto

import "resortbook/models"

type RegisterRequest struct {
	FirstName     string `json:"firstname" binding:"required,max=255"`
	LastName      string `json:"lastname" binding:"required,max=255"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Password      string `json:"password" binding:"required,min=8,max=72"`
	ContactNumber string `json:"contact_number" binding:"omitempty,max=20"`
	Address       string `json:"address" binding:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message     string       `json:"message"`
	Data        *models.User `json:"data"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
}

func NewAuthResponse(message string, user *models.User, token string) AuthResponse {
	return AuthResponse{Message: message, Data: user, AccessToken: token, TokenType: "Bearer"}
}
