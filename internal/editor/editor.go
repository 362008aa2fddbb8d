// Package editor is the event-editor collaborator: given a seed from a
// view slot click it validates the user-supplied form and completes it
// into a full event. Field validation lives here on purpose; the
// scheduler core accepts whatever the editor produces.
package editor

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/agis/scal/internal/schedule"
)

// Variants are the accepted display variants of an event.
var Variants = []string{"primary", "danger", "success", "warning", "default"}

// Form carries the editor's user-facing fields. Start and End default
// to the seed values when zero.
type Form struct {
	Title       string    `validate:"required"`
	Description string    `validate:"omitempty"`
	Start       time.Time `validate:"-"`
	End         time.Time `validate:"-"`
	Variant     string    `validate:"required,oneof=primary danger success warning default"`
	Color       string    `validate:"required"`
}

// ValidationError wraps the individual field failures of a rejected
// form.
type ValidationError struct {
	Fields []string
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid event form: %v", e.Fields)
}

func (e *ValidationError) Unwrap() error { return e.err }

// Editor validates forms and completes seeds into events.
type Editor struct {
	validate *validator.Validate
}

// New creates an editor with the default field rules.
func New() *Editor {
	return &Editor{validate: validator.New()}
}

// Complete merges a slot-click seed with a form into a finished event,
// assigning a fresh id. The form's own times win over the seed when
// set; the resulting interval must not be inverted.
func (ed *Editor) Complete(seed schedule.EventSeed, form Form) (schedule.Event, error) {
	if form.Start.IsZero() {
		form.Start = seed.Start
	}
	if form.End.IsZero() {
		form.End = seed.End
	}
	if err := ed.check(form); err != nil {
		return schedule.Event{}, err
	}
	return schedule.Event{
		ID:          uuid.NewString(),
		Title:       form.Title,
		Description: form.Description,
		Variant:     form.Variant,
		Color:       form.Color,
		Start:       form.Start,
		End:         form.End,
	}, nil
}

func (ed *Editor) check(form Form) error {
	verr := ed.validate.Struct(form)
	var fields []string
	if verr != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(verr, &fieldErrs) {
			return verr
		}
		for _, fe := range fieldErrs {
			fields = append(fields, fe.Field())
		}
	}
	if form.Start.IsZero() || form.End.IsZero() {
		fields = append(fields, "Start")
	} else if form.End.Before(form.Start) {
		fields = append(fields, "End")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields, err: verr}
	}
	return nil
}
