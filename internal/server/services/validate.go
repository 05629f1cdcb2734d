package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the validator instance shared by all services.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError turns validator output into sentinel-wrapped errors with a
// short, client-safe description of each failing field.
func validationError(sentinel error, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeField(fe))
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(msgs, "; "))
}

func describeField(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}
