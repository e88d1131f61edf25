package binding

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formbind/pkg/model"
)

var (
	// ErrDuplicateField matches registrations that reuse a field name.
	ErrDuplicateField = errors.New("binding: duplicate field")
	// ErrUnknownField matches operations addressed to a name never registered.
	ErrUnknownField = errors.New("binding: unknown field")
	// ErrKindMismatch matches edits delivered through the wrong entry point.
	ErrKindMismatch = errors.New("binding: field kind mismatch")
	// ErrLockedField matches numeric changes to a field held by an active
	// default group.
	ErrLockedField = errors.New("binding: field locked by default group")
	// ErrInvalidOption matches selections outside a choice field's options.
	ErrInvalidOption = errors.New("binding: invalid option")
)

// DuplicateFieldError is returned by Register when name is already bound.
type DuplicateFieldError struct {
	Name string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("binding: field %q already registered", e.Name)
}

func (e *DuplicateFieldError) Is(target error) bool {
	return target == ErrDuplicateField
}

// UnknownFieldError reports an edit or query for an unregistered name. It
// signals a wiring bug between the presentation layer and the registry.
type UnknownFieldError struct {
	Op   string
	Name string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("binding: %s: unknown field %q", e.Op, e.Name)
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// KindMismatchError reports an edit whose entry point does not match the
// field's kind (for example OnEdit on a numeric field).
type KindMismatchError struct {
	Op   string
	Name string
	Want model.FieldKind
	Got  model.FieldKind
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("binding: %s: field %q is %s, want %s", e.Op, e.Name, e.Got, e.Want)
}

func (e *KindMismatchError) Is(target error) bool {
	return target == ErrKindMismatch
}

// LockedFieldError reports a numeric change while the field's default group
// toggle is active.
type LockedFieldError struct {
	Name   string
	Toggle string
}

func (e *LockedFieldError) Error() string {
	return fmt.Sprintf("binding: field %q is locked while %q is active", e.Name, e.Toggle)
}

func (e *LockedFieldError) Is(target error) bool {
	return target == ErrLockedField
}

// InvalidOptionError reports a selection that is not one of the choices.
type InvalidOptionError struct {
	Name   string
	Option string
}

func (e *InvalidOptionError) Error() string {
	return fmt.Sprintf("binding: field %q has no option %q", e.Name, e.Option)
}

func (e *InvalidOptionError) Is(target error) bool {
	return target == ErrInvalidOption
}
