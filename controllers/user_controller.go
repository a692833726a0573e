package controllers

import (
	"resortbook/dto"
	"resortbook/response"
	"resortbook/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Index godoc
// @Summary List users
// @Tags users
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.User}
// @Router /users [get]
func (ctl *UserController) Index(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	users, err := ctl.users.List(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// Show godoc
// @Summary Get a user
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} response.Response{data=models.User}
// @Router /users/{id} [get]
func (ctl *UserController) Show(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := ctl.users.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Update godoc
// @Summary Update a user profile
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param body body dto.UpdateUserRequest true "Changes"
// @Success 200 {object} response.Response{data=models.User}
// @Router /users/{id} [put]
func (ctl *UserController) Update(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}
	user, err := ctl.users.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// Destroy godoc
// @Summary Delete a user and their bookings
// @Tags users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Router /users/{id} [delete]
func (ctl *UserController) Destroy(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.users.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
