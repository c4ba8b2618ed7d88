package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidStatus = errors.New("invalid status transition")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs struct tag validation and folds field errors into ErrValidation.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", ErrValidation, strings.Join(parts, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte", "gt":
		return fmt.Sprintf("%s must be %s %s", field, comparator(fe.Tag()), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "datetime":
		return field + " must be a YYYY-MM-DD date"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func comparator(tag string) string {
	if tag == "gt" {
		return "greater than"
	}
	return "at least"
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
