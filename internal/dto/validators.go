package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators installs decimal-aware binding validations that the
// built-in numeric tags cannot express on decimal.Decimal fields.
//
//	dgte0   value must be >= 0
//	dlte100 value must be <= 100
func RegisterCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("dgte0", decimalGTEZero); err != nil {
		return err
	}
	return v.RegisterValidation("dlte100", decimalLTEHundred)
}

func decimalGTEZero(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return !d.IsNegative()
}

func decimalLTEHundred(fl validator.FieldLevel) bool {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return d.LessThanOrEqual(decimal.NewFromInt(100))
}
