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

	// Decimal fields validate on their numeric value, not the struct
	v.RegisterCustomTypeFunc(decimalToFloat, decimal.Decimal{})

	_ = v.RegisterValidation("account_number", validateAccountNumber)
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)
	_ = v.RegisterValidation("account_type", validateAccountType)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

func decimalToFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		value, _ := d.Float64()
		return value
	}
	return nil
}

var accountNumberPattern = regexp.MustCompile(`^ACC\d{9}$`)

// validateAccountNumber validates that an account number follows the expected format
// Format: ACC followed by 9 digits
func validateAccountNumber(fl validator.FieldLevel) bool {
	return accountNumberPattern.MatchString(fl.Field().String())
}

// validatePositiveAmount validates that an amount is greater than 0
func validatePositiveAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > 0
	default:
		return false
	}
}

// validateAccountType validates that account type is one of the allowed
// types. Matching is exact so the stored value always passes the model
// checks.
func validateAccountType(fl validator.FieldLevel) bool {
	validTypes := map[string]bool{
		"savings":  true,
		"checking": true,
		"business": true,
	}
	return validTypes[fl.Field().String()]
}

// validateTransactionType validates that transaction type is one of the
// allowed types
func validateTransactionType(fl validator.FieldLevel) bool {
	validTypes := map[string]bool{
		"deposit":    true,
		"withdrawal": true,
		"transfer":   true,
	}
	return validTypes[fl.Field().String()]
}
