package response

import (
	"net/http"

	apperrors "resortbook/errors"

	"github.com/gin-gonic/gin"
)

// Response is the success envelope.
type Response struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the failure envelope. Error carries the underlying cause
// only when gin runs in debug mode.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Data: data})
}

func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Message: message, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error renders err with the status of its AppError code. Anything that is
// not an AppError is treated as internal. The cause is attached to c.Errors
// for the request logger.
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		appErr = apperrors.Internal("Server Error", err)
	}
	if appErr.Err != nil {
		_ = c.Error(appErr)
	}

	body := ErrorResponse{Message: appErr.Message}
	if gin.IsDebugging() && appErr.Err != nil {
		body.Error = appErr.Err.Error()
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), body)
}

func ValidationError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ErrorResponse{Message: message})
}

func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "Unauthenticated."})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Message: message})
}

func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Message: "Not Found"})
}
