// Package validator registers the request validation tags and turns
// validation failures into readable messages.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"resortbook/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// Register installs the custom tags on gin's validator engine. It is safe to
// call more than once.
func Register() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		err = RegisterOn(v)
	})
	return err
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	tags := map[string]validator.Func{
		"accommodation_type": func(fl validator.FieldLevel) bool {
			return models.AccommodationType(fl.Field().String()).Valid()
		},
		"payment_method": func(fl validator.FieldLevel) bool {
			return models.PaymentMethod(fl.Field().String()).Valid()
		},
		"booking_status": func(fl validator.FieldLevel) bool {
			return models.BookingStatus(fl.Field().String()).Valid()
		},
		"duration_hours": func(fl validator.FieldLevel) bool {
			return models.ValidDuration(int(fl.Field().Int()))
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Message flattens a binding error into one sentence per invalid field.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "The request body is invalid."
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, " ")
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", field, toSnake(fe.Param()))
	case "accommodation_type":
		return fmt.Sprintf("The selected %s is invalid, must be one of cottage, room, tent.", field)
	case "payment_method":
		return fmt.Sprintf("The selected %s is invalid, must be one of credit_card, cash, bank_transfer, gcash.", field)
	case "booking_status":
		return fmt.Sprintf("The selected %s is invalid, must be one of pending, confirmed, completed, cancelled.", field)
	case "duration_hours":
		return fmt.Sprintf("The %s field must be 3 or 22.", field)
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}

// toSnake turns a Go field name such as CapacityMin into capacity_min.
func toSnake(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
