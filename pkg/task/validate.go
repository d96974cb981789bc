package task

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator with the planner's custom rules
// registered: "quadrant" and "halfhours".
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("quadrant", func(fl validator.FieldLevel) bool {
			return Quadrant(fl.Field().String()).Valid()
		})
		_ = validate.RegisterValidation("halfhours", func(fl validator.FieldLevel) bool {
			return IsHalfHour(fl.Field().Float())
		})
	})
	return validate
}

// IsHalfHour reports whether h is a whole multiple of 0.5.
func IsHalfHour(h float64) bool {
	return math.Abs(h*2-math.Round(h*2)) < 1e-9
}

// ValidateStruct checks s against its validate tags and flattens the failures
// into one error.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, describe(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "quadrant":
		return fmt.Sprintf("%s %q is not one of %v", e.Field(), e.Value(), Quadrants())
	case "halfhours":
		return fmt.Sprintf("%s must be in steps of 0.5", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s %q must be one of %s", e.Field(), e.Value(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "datetime":
		return fmt.Sprintf("%s %q is not a YYYY-MM-DD date", e.Field(), e.Value())
	default:
		return fmt.Sprintf("%s failed rule %q", e.Field(), e.Tag())
	}
}

// Validate checks the task fields and that the due date is not before the
// start date.
func (t Task) Validate() error {
	if err := ValidateStruct(t); err != nil {
		return fmt.Errorf("task: %w", err)
	}
	if t.DueDate < t.StartDate {
		return errors.New("task: due date must be on or after the start date")
	}
	return nil
}
