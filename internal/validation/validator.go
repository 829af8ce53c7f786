package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("provider_id", validateProviderID)
	_ = v.RegisterValidation("transfer_amount", validateTransferAmount)
	_ = v.RegisterValidation("autopay_period", validateAutopayPeriod)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Custom validation functions

// providerIDRegex matches opaque provider identifiers: lowercase
// alphanumerics, 2-64 characters. Provider IDs are not an enum so new
// partner banks need no code change.
var providerIDRegex = regexp.MustCompile(`^[a-z0-9_-]{2,64}$`)

// validateProviderID validates the provider identifier format
func validateProviderID(fl validator.FieldLevel) bool {
	return providerIDRegex.MatchString(fl.Field().String())
}

// validateTransferAmount validates that a string amount parses to a positive
// decimal with at most 2 fraction digits
func validateTransferAmount(fl validator.FieldLevel) bool {
	amount, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return false
	}

	return amount.Exponent() >= -2
}

// validateAutopayPeriod validates the auto-transfer period value
func validateAutopayPeriod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "daily", "weekly", "monthly":
		return true
	default:
		return false
	}
}
