package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aljoud/shifts-backend/pkg/errors"
)

type phoneInput struct {
	Phone string `validate:"required,de_phone"`
}

func TestDePhoneValidation(t *testing.T) {
	valid := []string{
		"491701234567",
		"4915112345678",
		"491234567", // minimum length national part
	}
	for _, phone := range valid {
		assert.NoError(t, Validate(phoneInput{Phone: phone}), "phone %q", phone)
	}

	invalid := []string{
		"+491701234567",      // plus sign not stored
		"01701234567",        // national format
		"331701234567",       // wrong country code
		"49123456",           // too short
		"491234567890123456", // too long
		"49170123456a",       // non-digit
		"",
	}
	for _, phone := range invalid {
		err := Validate(phoneInput{Phone: phone})
		require.Error(t, err, "phone %q", phone)
		assert.True(t, errors.Is(err, errors.ErrValidation))
	}
}

func TestValidateReportsFieldDetails(t *testing.T) {
	type input struct {
		Name  string `validate:"required"`
		Phone string `validate:"required,de_phone"`
	}

	err := Validate(input{})
	require.Error(t, err)

	var appErr *errors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Contains(t, appErr.Details, "Name")
	assert.Contains(t, appErr.Details, "Phone")
}
