// Package validation adapts go-playground/validator to echo's
// Validator interface. One instance is shared between echo and the
// controllers so every request DTO runs through the same rule set.
package validation

import "github.com/go-playground/validator/v10"

type Validator struct {
	rules *validator.Validate
}

func New() *Validator {
	return &Validator{rules: validator.New()}
}

// Validate satisfies echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	return v.rules.Struct(i)
}

// Rules exposes the underlying validator for controllers that report
// field errors themselves.
func (v *Validator) Rules() *validator.Validate {
	return v.rules
}
