package engine

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// InvalidInputError reports one structurally invalid EstimateInput field
type InvalidInputError struct {
	Field  string `json:"field"`
	Value  any    `json:"-"`
	Reason string `json:"reason"`
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so callers can map errors back onto form fields
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", finiteValidator)
	return v
}

func finiteValidator(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// Validate checks an input at the boundary. Unknown regions are accepted because
// Estimate falls back to default rates for them.
func Validate(in EstimateInput) error {
	return structError(validate.Struct(in))
}

// ValidateRates checks a rate row before it is stored
func ValidateRates(r RegionRates) error {
	return structError(validate.Struct(r))
}

func structError(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	fe := verrs[0]
	return &InvalidInputError{
		Field:  fe.Field(),
		Value:  fe.Value(),
		Reason: reasonFor(fe),
	}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must not be less than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "finite":
		return "must be a finite number"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// UI grid for the system size slider
const (
	MinSystemSizeKw  = 3.0
	MaxSystemSizeKw  = 20.0
	SystemSizeStepKw = 0.5
)

// InSizeRange reports whether kw is a value the calculator slider can produce
func InSizeRange(kw float64) bool {
	if kw < MinSystemSizeKw || kw > MaxSystemSizeKw {
		return false
	}
	steps := (kw - MinSystemSizeKw) / SystemSizeStepKw
	return steps == math.Trunc(steps)
}
