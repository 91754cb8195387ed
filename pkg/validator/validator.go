package validator

import (
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{
		validator: validator.New(),
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// FormatValidationErrors flattens validator errors into one readable string
// for the error envelope.
func (cv *CustomValidator) FormatValidationErrors(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "validation failed"
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email address")
		case "min":
			messages = append(messages, field+" must be at least "+e.Param()+" characters")
		case "max":
			messages = append(messages, field+" must be at most "+e.Param()+" characters")
		case "gte":
			messages = append(messages, field+" must be greater than or equal to "+e.Param())
		case "lte":
			messages = append(messages, field+" must be less than or equal to "+e.Param())
		case "oneof":
			messages = append(messages, field+" must be one of: "+e.Param())
		default:
			messages = append(messages, field+" is invalid")
		}
	}

	sort.Strings(messages)
	return strings.Join(messages, "; ")
}
