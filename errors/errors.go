package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUnprocessable   ErrorCode = "UNPROCESSABLE"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL"
)

// AppError is the error every service returns for an expected failure.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to its response status.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeUnauthenticated:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnprocessable, ErrCodeValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Unauthenticated(message string) *AppError {
	return NewAppError(ErrCodeUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, nil)
}

// Unprocessable marks a business-rule violation. These are terminal for the
// request and never retried.
func Unprocessable(message string) *AppError {
	return NewAppError(ErrCodeUnprocessable, message, nil)
}

func Validation(message string, err error) *AppError {
	return NewAppError(ErrCodeValidation, message, err)
}

func Internal(message string, err error) *AppError {
	return NewAppError(ErrCodeInternal, message, err)
}

// IsAppError reports whether err is, or wraps, an AppError.
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError returns the AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// ErrTokenRevoked is the cause attached when a logged-out token is presented.
var ErrTokenRevoked = errors.New("token revoked")
