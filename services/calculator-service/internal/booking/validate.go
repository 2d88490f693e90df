package booking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/md-rashed-zaman/costcalc/services/calculator-service/internal/model"
)

// ValidationError reports a request that failed field validation.
type ValidationError struct {
	Fields []string
	msg    string
}

func (e *ValidationError) Error() string { return e.msg }

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: []string{field}, msg: field + ": " + reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		_, err := parseClock(fl.Field().String())
		return err == nil
	})
	return v
}

// parseClock accepts "15:04" and "15:04:05".
func parseClock(raw string) (time.Time, error) {
	if t, err := time.Parse(model.TimeLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", raw)
}

func normalizeClock(raw string) string {
	t, err := parseClock(raw)
	if err != nil {
		return raw
	}
	return t.Format(model.TimeLayout)
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	fields := make([]string, 0, len(fieldErrs))
	reasons := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), strings.SplitN(fe.Namespace(), ".", 2)[0]+".")
		fields = append(fields, field)
		reasons = append(reasons, fmt.Sprintf("%s: %s", field, describe(fe)))
	}
	return &ValidationError{Fields: fields, msg: strings.Join(reasons, "; ")}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "clock":
		return "must be a time in HH:MM format"
	case "min":
		return "must not be empty"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "is invalid"
	}
}
