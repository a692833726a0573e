package controllers

import (
	"net/http"

	"resortbook/dto"
	"resortbook/middleware"
	"resortbook/response"
	"resortbook/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register godoc
// @Summary Register a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account"
// @Success 201 {object} dto.AuthResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	user, token, err := ctl.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewAuthResponse("User registered successfully", user, token))
}

// Login godoc
// @Summary Log in and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.AuthResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	user, token, err := ctl.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAuthResponse("User logged in successfully", user, token))
}

// Logout godoc
// @Summary Revoke the current token
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /logout [post]
func (ctl *AuthController) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		response.Unauthorized(c)
		return
	}
	if err := ctl.auth.Logout(c.Request.Context(), claims); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Successfully logged out", nil)
}
