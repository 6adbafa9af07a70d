// Package validation provides record field validation using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/listenupapp/bookwarm/internal/errors"
)

// Custom tags registered on every Validator.
const (
	// TagISBN accepts integers with exactly 10 or 13 decimal digits.
	TagISBN = "isbn"
	// TagNotFuture accepts years no later than the current year.
	TagNotFuture = "notfuture"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v   *validator.Validate
	now func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the clock used by the notfuture rule.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a validator configured for our domain.
func New(opts ...Option) *Validator {
	val := &Validator{
		v:   validator.New(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(val)
	}

	// Use attribute tag names in error messages
	val.v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("attr"); name != "" {
			return name
		}
		return fld.Name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = val.v.RegisterValidation(TagISBN, validISBN)
	_ = val.v.RegisterValidation(TagNotFuture, func(fl validator.FieldLevel) bool {
		return intField(fl) <= int64(val.now().Year())
	})

	return val
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// Var validates a single value against tag, naming it field in the error.
func (v *Validator) Var(field string, value any, tag string) error {
	err := v.v.Var(value, tag)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	msg := v.friendlyMessage(validationErrs[0])
	return domainerrors.ValidationWithDetails(
		fmt.Sprintf("%s %s, got %v", field, msg, value),
		map[string]string{field: msg},
	)
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Collect all field errors
	fieldErrors := make(map[string]string)
	first := ""
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = v.friendlyMessage(e)
		if first == "" {
			first = fmt.Sprintf("%s %s, got %v", e.Field(), fieldErrors[e.Field()], e.Value())
		}
	}

	return domainerrors.ValidationWithDetails(first, fieldErrors)
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", e.Param())
		}
		return "must be at least " + e.Param()
	case "max":
		return "must not exceed " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "lt":
		return "must be less than " + e.Param()
	case TagISBN:
		return "must have exactly 10 or 13 digits"
	case TagNotFuture:
		return fmt.Sprintf("must not be later than %d", v.now().Year())
	default:
		return "is invalid"
	}
}

func validISBN(fl validator.FieldLevel) bool {
	n := intField(fl)
	if n <= 0 {
		return false
	}
	digits := len(strconv.FormatInt(n, 10))
	return digits == 10 || digits == 13
}

// intField reads fl as a signed integer; other kinds never validate.
func intField(fl validator.FieldLevel) int64 {
	f := fl.Field()
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return f.Int()
	default:
		return 0
	}
}
