// Package validator wires go-playground/validator as echo's request validator.
package validator

import (
	domainerrors "estate/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the validator echo consults for every c.Validate call.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks struct tags and maps failures to the 400 taxonomy.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.
			WithMessage("Please provide all required fields").
			WrapMessage(err.Error())
	}

	return nil
}
