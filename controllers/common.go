package controllers

import (
	"resortbook/dto"
	"resortbook/middleware"
	"resortbook/response"
	"resortbook/types"
	"resortbook/validator"

	"github.com/gin-gonic/gin"
)

// principal returns the authenticated caller or writes 401.
func principal(c *gin.Context) (types.Principal, bool) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		response.Unauthorized(c)
	}
	return p, ok
}

// pathID parses :id. Anything that is not a positive integer is a 404.
func pathID(c *gin.Context) (uint, bool) {
	var param dto.IDParam
	if err := c.ShouldBindUri(&param); err != nil {
		response.NotFound(c)
		return 0, false
	}
	return param.ID, true
}

func bindingFailed(c *gin.Context, err error) {
	response.ValidationError(c, validator.Message(err))
}
