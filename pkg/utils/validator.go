package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the struct tag validations on a request DTO.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors flattens validator errors into field → message pairs
// for the 400 response envelope.
func GetValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["_"] = err.Error()
		return errors
	}

	for _, fieldErr := range validationErrors {
		field := strings.ToLower(fieldErr.Field()[:1]) + fieldErr.Field()[1:]
		switch fieldErr.Tag() {
		case "required":
			errors[field] = "is required"
		case "email":
			errors[field] = "must be a valid email address"
		case "min":
			errors[field] = fmt.Sprintf("must be at least %s characters", fieldErr.Param())
		case "max":
			errors[field] = fmt.Sprintf("must be at most %s characters", fieldErr.Param())
		case "oneof":
			errors[field] = fmt.Sprintf("must be one of: %s", fieldErr.Param())
		default:
			errors[field] = fmt.Sprintf("failed on %s validation", fieldErr.Tag())
		}
	}

	return errors
}
