// Package validation checks request payloads against the rules declared in
// their `validate` struct tags and turns failures into field-level errors
// the client can act on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError represents a validation issue for a single field.
//
//	{ "field": "name", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Errors is the error returned when a payload fails validation.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewError builds an Errors value holding a single field error.
func NewError(field, message string) Errors {
	return Errors{{Field: field, Error: message}}
}

// Validator validates payload structs. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports fields by their JSON names and
// understands decimal.Decimal values in numeric rules such as gte.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("decimals", maxDecimalPlaces); err != nil {
		panic(fmt.Sprintf("register decimals rule: %v", err))
	}

	return &Validator{validate: v}
}

// maxDecimalPlaces implements `decimals=N`: the value has at most N digits
// after the decimal point. Decimal fields reach rules as float64, so the
// original value is read back from the parent struct.
func maxDecimalPlaces(fl validator.FieldLevel) bool {
	places, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		panic(fmt.Sprintf("bad decimals param %q: %v", fl.Param(), err))
	}

	var d decimal.Decimal
	parent := reflect.Indirect(fl.Parent())
	var field reflect.Value
	if parent.Kind() == reflect.Struct {
		field = reflect.Indirect(parent.FieldByName(fl.StructFieldName()))
	}

	switch {
	case field.IsValid() && field.Type() == reflect.TypeOf(decimal.Decimal{}):
		d = field.Interface().(decimal.Decimal)
	case fl.Field().CanFloat():
		d = decimal.NewFromFloat(fl.Field().Float())
	default:
		return false
	}

	return d.Equal(d.Truncate(int32(places)))
}

// Struct validates payload and returns Errors when any rule fails.
// Errors other than rule failures (e.g. a non-struct payload) are returned as-is.
func (v *Validator) Struct(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate payload: %w", err)
	}

	fieldErrors := make(Errors, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{
			Field: fe.Field(),
			Error: message(fe),
		})
	}
	return fieldErrors
}

// message converts a validator tag failure into a human-readable message.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// min means length for strings, value for numbers
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())

	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())

	case "decimals":
		return fmt.Sprintf("must have at most %s decimal places", fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
