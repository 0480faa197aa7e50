package observation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError is a single rejected input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every field that failed range checks.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := lo.Map(e.Fields, func(f FieldError, _ int) string { return f.Message })
	return "invalid observation: " + strings.Join(msgs, "; ")
}

// Validate checks every field against its inclusive range.
func (o Observation) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate observation: %w", err)
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		f, ok := fieldByName(fe.StructField())
		if !ok {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: fe.Error()})
			continue
		}
		out.Fields = append(out.Fields, FieldError{
			Field:   f.Key,
			Message: fmt.Sprintf("%s must be between %s and %s %s", f.Label, formatBound(f, f.Min), formatBound(f, f.Max), f.Unit),
		})
	}
	return out
}

func formatBound(f Field, v float64) string {
	if f.Integer {
		return fmt.Sprintf("%d", int(v))
	}
	return fmt.Sprintf("%.1f", v)
}
