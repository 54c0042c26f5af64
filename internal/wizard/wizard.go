// Package wizard validates multi-step forms. One form struct carries every
// field; each step validates only its own subset and the final submit
// validates the whole struct.
package wizard

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

var ErrInvalidStep = errors.New("invalid wizard step")

// FieldErrors maps a form field (json name) to a readable message.
type FieldErrors map[string]string

type ValidationError struct {
	Step   int
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	if e.Step > 0 {
		return fmt.Sprintf("step %d: invalid fields: %s", e.Step, strings.Join(keys, ", "))
	}
	return "invalid fields: " + strings.Join(keys, ", ")
}

// Schema names the Go struct fields validated at each step.
type Schema struct {
	Name  string
	Steps [][]string
}

func (s *Schema) TotalSteps() int {
	return len(s.Steps)
}

// ValidateStep validates only the fields of step (1-based).
func (s *Schema) ValidateStep(step int, form any) error {
	if step < 1 || step > len(s.Steps) {
		return ErrInvalidStep
	}
	return toValidationError(step, validate.StructPartial(form, s.Steps[step-1]...))
}

// ValidateAll validates the complete form.
func (s *Schema) ValidateAll(form any) error {
	return toValidationError(0, validate.Struct(form))
}

// Validate checks a single-page form with the same rules and messages as
// the wizards.
func Validate(form any) error {
	return toValidationError(0, validate.Struct(form))
}

// Wizard tracks the current step of one form fill.
type Wizard struct {
	schema      *Schema
	CurrentStep int
}

func New(schema *Schema) *Wizard {
	return &Wizard{schema: schema, CurrentStep: 1}
}

// At resumes a wizard at the given step.
func At(schema *Schema, step int) (*Wizard, error) {
	if step < 1 || step > schema.TotalSteps() {
		return nil, ErrInvalidStep
	}
	return &Wizard{schema: schema, CurrentStep: step}, nil
}

// Next validates the current step and advances when it passes. The last
// step does not advance; use Submit there.
func (w *Wizard) Next(form any) error {
	if err := w.schema.ValidateStep(w.CurrentStep, form); err != nil {
		return err
	}
	if w.CurrentStep < w.schema.TotalSteps() {
		w.CurrentStep++
	}
	return nil
}

func (w *Wizard) Back() {
	if w.CurrentStep > 1 {
		w.CurrentStep--
	}
}

func (w *Wizard) IsLast() bool {
	return w.CurrentStep == w.schema.TotalSteps()
}

// Submit runs the full validation.
func (w *Wizard) Submit(form any) error {
	return w.schema.ValidateAll(form)
}

func toValidationError(step int, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := FieldErrors{}
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &ValidationError{Step: step, Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "eqfield":
		return "must match " + fe.Param()
	}
	return "is invalid"
}
