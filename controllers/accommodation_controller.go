package controllers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"resortbook/dto"
	"resortbook/response"
	"resortbook/services"

	"github.com/gin-gonic/gin"
)

const imageField = "image"

type AccommodationController struct {
	accommodations *services.AccommodationService
}

func NewAccommodationController(accommodations *services.AccommodationService) *AccommodationController {
	return &AccommodationController{accommodations: accommodations}
}

// Index godoc
// @Summary List accommodations, optionally searching by name
// @Tags accommodations
// @Security BearerAuth
// @Param q query string false "Name search"
// @Success 200 {object} response.Response{data=dto.AccommodationList}
// @Router /accommodations [get]
func (ctl *AccommodationController) Index(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var filter dto.AccommodationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingFailed(c, err)
		return
	}

	list, err := ctl.accommodations.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// Store godoc
// @Summary Create an accommodation
// @Tags accommodations
// @Security BearerAuth
// @Accept json,mpfd
// @Param body body dto.AccommodationRequest true "Accommodation"
// @Success 201 {object} response.Response{data=models.Accommodation}
// @Failure 422 {object} response.ErrorResponse
// @Router /accommodations [post]
func (ctl *AccommodationController) Store(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	var req dto.AccommodationRequest
	if err := c.ShouldBind(&req); err != nil {
		bindingFailed(c, err)
		return
	}
	image, closeImage, err := formImage(c)
	if err != nil {
		response.ValidationError(c, "The image failed to upload.")
		return
	}
	defer closeImage()

	acc, err := ctl.accommodations.Create(c.Request.Context(), actor, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Accommodation created successfully", acc)
}

// Show godoc
// @Summary Get one accommodation
// @Tags accommodations
// @Security BearerAuth
// @Param id path int true "Accommodation ID"
// @Success 200 {object} response.Response{data=models.Accommodation}
// @Failure 404 {object} response.ErrorResponse
// @Router /accommodations/{id} [get]
func (ctl *AccommodationController) Show(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	acc, err := ctl.accommodations.Get(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, acc)
}

// Update godoc
// @Summary Update an accommodation, optionally replacing its image
// @Tags accommodations
// @Security BearerAuth
// @Accept json,mpfd
// @Param id path int true "Accommodation ID"
// @Param body body dto.AccommodationRequest true "Accommodation"
// @Success 200 {object} response.Response{data=models.Accommodation}
// @Router /accommodations/{id} [put]
func (ctl *AccommodationController) Update(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.AccommodationRequest
	if err := c.ShouldBind(&req); err != nil {
		bindingFailed(c, err)
		return
	}
	image, closeImage, err := formImage(c)
	if err != nil {
		response.ValidationError(c, "The image failed to upload.")
		return
	}
	defer closeImage()

	acc, err := ctl.accommodations.Update(c.Request.Context(), actor, id, req, image)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Accommodation updated successfully", acc)
}

// Destroy godoc
// @Summary Delete an accommodation without bookings
// @Tags accommodations
// @Security BearerAuth
// @Param id path int true "Accommodation ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.ErrorResponse
// @Router /accommodations/{id} [delete]
func (ctl *AccommodationController) Destroy(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := ctl.accommodations.Destroy(c.Request.Context(), actor, id); err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Accommodation deleted successfully", nil)
}

// ToggleActive godoc
// @Summary Flip is_active
// @Tags accommodations
// @Security BearerAuth
// @Param id path int true "Accommodation ID"
// @Success 200 {object} response.Response{data=models.Accommodation}
// @Router /accommodations/{id}/toggle-active [patch]
func (ctl *AccommodationController) ToggleActive(c *gin.Context) {
	actor, ok := principal(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	acc, err := ctl.accommodations.ToggleActive(c.Request.Context(), actor, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, "Accommodation status updated successfully", acc)
}

// Available godoc
// @Summary List bookable accommodations
// @Tags accommodations
// @Security BearerAuth
// @Param type query string false "cottage, room or tent"
// @Param duration query int false "3 or 22"
// @Param persons query int false "Party size"
// @Success 200 {object} response.Response{data=[]models.Accommodation}
// @Router /accommodations/available [get]
func (ctl *AccommodationController) Available(c *gin.Context) {
	var filter dto.AvailableFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindingFailed(c, err)
		return
	}

	accs, err := ctl.accommodations.Available(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, accs)
}

// formImage opens the optional multipart image. The returned reader is nil
// when the request carries no image.
func formImage(c *gin.Context) (io.Reader, func(), error) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, noop, nil
	}
	header, err := c.FormFile(imageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, noop, err
	}
	return file, func() { file.Close() }, nil
}
