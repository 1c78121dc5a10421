// Package validator adapts go-playground/validator to echo's Validator hook.
package validator

import (
	domainerrors "gachigage/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *playground.Validate
}

// New builds the request validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{validate: playground.New(playground.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Struct tag violations surface as a
// validation error with the offending field in the details.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return domainerrors.ErrValidationFailed.WithDetails(fieldErrs[0].Field() + " failed on " + fieldErrs[0].Tag())
		}

		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
