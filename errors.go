package implant

import (
	"fmt"
	"reflect"
	"strings"
)

// ConfigurationError reports a malformed declaration, or an engine misuse,
// detected before any target field is touched.
type ConfigurationError struct {
	Reason string
}

func (e ConfigurationError) Error() string {
	return "implant: configuration: " + e.Reason
}

// TargetNotFoundError reports that no live instance in the container matches
// a declared target type and optional name.
type TargetNotFoundError struct {
	Type reflect.Type
	Name string
}

func (e TargetNotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf(
			"implant: no instance of %s named %q in the container",
			printType(e.Type), e.Name,
		)
	}
	return fmt.Sprintf("implant: no instance of %s in the container", printType(e.Type))
}

// FieldNotFoundError reports that a resolved target has no field the
// declared double type is assignable to, that a disambiguating name
// matched none of the candidate fields, or that the matched field is
// unreachable because it is promoted through a nil embedded pointer.
type FieldNotFoundError struct {
	Target   reflect.Type
	Declared reflect.Type
	Name     string
	Cause    error
}

func (e FieldNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf(
			"implant: field %s of %s is unreachable: %v",
			e.Name, printType(e.Target), e.Cause,
		)
	}
	if e.Name != "" {
		return fmt.Sprintf(
			"implant: %s has no field named %q accepting %s",
			printType(e.Target), e.Name, printType(e.Declared),
		)
	}
	return fmt.Sprintf(
		"implant: %s has no field accepting %s",
		printType(e.Target), printType(e.Declared),
	)
}

func (e FieldNotFoundError) Unwrap() error { return e.Cause }

// AmbiguousFieldError reports that more than one field of a target could
// hold the double. Candidates lists every matching field, so the test
// author can pick one by name. Guessing is never an option here; a silent
// first-match would substitute a different field than the author intended.
type AmbiguousFieldError struct {
	Target     reflect.Type
	Declared   reflect.Type
	Candidates []string
}

func (e AmbiguousFieldError) Error() string {
	return fmt.Sprintf(
		"implant: %d fields of %s accept %s (%s); disambiguate with a name",
		len(e.Candidates), printType(e.Target), printType(e.Declared),
		strings.Join(e.Candidates, ", "),
	)
}

// RestorationError reports a single undo record that could not be written
// back during restore. Restoration keeps going after one of these; the
// remaining records are still attempted.
type RestorationError struct {
	Target reflect.Type
	Field  string
	Cause  error
}

func (e RestorationError) Error() string {
	return fmt.Sprintf(
		"implant: restoring %s.%s: %v",
		printType(e.Target), e.Field, e.Cause,
	)
}

func (e RestorationError) Unwrap() error { return e.Cause }

func printType(t reflect.Type) string {
	switch {
	case t == nil:
		return "<nil>"
	case t.Kind() == reflect.Pointer:
		return "*" + printType(t.Elem())
	case t.Name() == "":
		return t.String()
	default:
		return t.Name()
	}
}
