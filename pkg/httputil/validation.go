package httputil

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/aljoud/shifts-backend/pkg/errors"
)

var validate = validator.New()

// German national number in E.164 digits without the leading '+'.
var dePhoneRe = regexp.MustCompile(`^49\d{7,13}$`)

func init() {
	_ = validate.RegisterValidation("de_phone", func(fl validator.FieldLevel) bool {
		return dePhoneRe.MatchString(fl.Field().String())
	})
}

// Validate validates a struct using go-playground/validator
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		details := make(map[string]string)

		for _, e := range validationErrors {
			details[e.Field()] = formatValidationError(e)
		}

		return errors.Validation(details)
	}
	return nil
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return "must be at least " + e.Param() + " characters"
	case "max":
		return "must be at most " + e.Param() + " characters"
	case "datetime":
		return "must match the time format " + e.Param()
	case "de_phone":
		return "must be a German number: digits only, starting with 49"
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "invalid value"
	}
}

// RegisterCustomValidation registers a custom validation function
func RegisterCustomValidation(tag string, fn validator.Func) error {
	return validate.RegisterValidation(tag, fn)
}
