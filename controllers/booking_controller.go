package controllers

import (
	"resortbook/dto"
	apperrors "resortbook/errors"
	"resortbook/models"
	"resortbook/response"
	"resortbook/services"
	"resortbook/types"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// Index godoc
// @Summary List bookings. Admins see all, customers their own
// @Tags bookings
// @Security BearerAuth
// @Param status query string false "pending, confirmed, completed or cancelled"
// @Success 200 {object} response.Response{data=[]models.Booking}
// @Router /bookings [get]
func (ctl *BookingController) Index(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var filter dto.BookingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingFailed(c, err)
		return
	}
	ctl.list(c, actor, filter)
}

// Dashboard godoc
// @Summary Admin booking dashboard filtered by status
// @Tags admin
// @Security BearerAuth
// @Param status path string false "pending, confirmed, completed, cancelled or all"
// @Success 200 {object} response.Response{data=[]models.Booking}
// @Router /admin/dashboard/bookings/{status} [get]
func (ctl *BookingController) Dashboard(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	filter, err := dashboardFilter(c.Param("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	ctl.list(c, actor, filter)
}

func dashboardFilter(segment string) (dto.BookingFilter, error) {
	if segment == "" || segment == "all" {
		return dto.BookingFilter{}, nil
	}
	status := models.BookingStatus(segment)
	if !status.Valid() {
		return dto.BookingFilter{}, apperrors.Validation("The selected status is invalid, must be one of pending, confirmed, completed, cancelled.", nil)
	}
	return dto.BookingFilter{Status: status}, nil
}

func (ctl *BookingController) list(c *gin.Context, actor types.Principal, filter dto.BookingFilter) {
	bookings, err := ctl.bookings.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, bookings)
}

// Store godoc
// @Summary Book units of an accommodation
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Param body body dto.CreateBookingRequest true "Booking"
// @Success 201 {object} response.Response{data=models.Booking}
// @Failure 422 {object} response.ErrorResponse
// @Router /bookings [post]
func (ctl *BookingController) Store(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	booking, err := ctl.bookings.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Booking submitted successfully. Waiting for admin approval.", booking)
}

// Show godoc
// @Summary Get one booking
// @Tags bookings
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response{data=models.Booking}
// @Failure 403 {object} response.ErrorResponse
// @Router /bookings/{id} [get]
func (ctl *BookingController) Show(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	booking, err := ctl.bookings.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, booking)
}

// Update godoc
// @Summary Change quantity or payment method of a booking
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Param id path int true "Booking ID"
// @Param body body dto.UpdateBookingRequest true "Changes"
// @Success 200 {object} response.Response{data=models.Booking}
// @Failure 422 {object} response.ErrorResponse
// @Router /bookings/{id} [put]
func (ctl *BookingController) Update(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	booking, err := ctl.bookings.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Booking updated successfully", booking)
}

// UpdateStatus godoc
// @Summary Move a booking to another status
// @Tags bookings
// @Security BearerAuth
// @Accept json
// @Param id path int true "Booking ID"
// @Param body body dto.UpdateBookingStatusRequest true "Status"
// @Success 200 {object} response.Response{data=models.Booking}
// @Router /bookings/{id}/status [patch]
func (ctl *BookingController) UpdateStatus(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingFailed(c, err)
		return
	}

	booking, err := ctl.bookings.UpdateStatus(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Booking status updated successfully", booking)
}

// Destroy godoc
// @Summary Delete a booking and release its units
// @Tags bookings
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Response
// @Router /bookings/{id} [delete]
func (ctl *BookingController) Destroy(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := ctl.bookings.Delete(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Booking deleted successfully", nil)
}
