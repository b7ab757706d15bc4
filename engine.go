package implant

import (
	"errors"
	"fmt"
	"reflect"
)

// engineState tracks where the engine is in its lifecycle. The terminal
// state equals the initial state; nothing persists across runs.
type engineState int

const (
	idle engineState = iota
	activating
	active
	restoring
)

func (s engineState) String() string {
	switch s {
	case idle:
		return "idle"
	case activating:
		return "activating"
	case active:
		return "active"
	case restoring:
		return "restoring"
	}
	return fmt.Sprintf("engineState(%d)", int(s))
}

// undoRecord captures a field's value immediately before a double is
// written over it. Records are appended during activation and replayed in
// reverse during restore, so when the same field was substituted more than
// once, the very first pre-test value is what remains after full teardown.
type undoRecord struct {
	target   reflect.Value
	field    matchedField
	original any
}

// Engine installs test doubles into the fields of live container instances
// and guarantees their restoration. The engine owns the undo list
// exclusively; no other component writes target fields. A fresh engine, or
// one that has restored, is reusable for the next test class.
type Engine struct {
	container Container
	factory   Factory
	state     engineState
	undo      []undoRecord
}

// New returns an engine working against the given container and double
// factory.
func New(container Container, factory Factory) *Engine {
	return &Engine{container: container, factory: factory}
}

// Activate resolves every declaration, in declaration order, captures the
// original field values and installs the doubles. The first double produced
// for each declared test field is also assigned to that field on the test
// object, so the test holds the same instance its targets see.
//
// On any failure the already installed doubles are rolled back before the
// error returns; a failing activation never leaves the container in a
// half-mutated state.
func (e *Engine) Activate(testObject any, decls ...Declaration) error {
	if e.state != idle {
		return ConfigurationError{
			Reason: fmt.Sprintf("Activate on a %s engine; restore it first", e.state),
		}
	}
	scanned, err := scan(reflect.ValueOf(testObject), decls)
	if err != nil {
		return err
	}

	e.state = activating
	if err := e.apply(reflect.ValueOf(testObject).Elem(), scanned); err != nil {
		rollbackErr := e.unwind()
		e.state = idle
		if rollbackErr != nil {
			return errors.Join(
				err,
				fmt.Errorf("implant: rolling back the failed activation: %w", rollbackErr),
			)
		}
		return err
	}
	e.state = active
	return nil
}

func (e *Engine) apply(testObject reflect.Value, decls []scannedDeclaration) error {
	populated := make(map[string]bool)
	for _, d := range decls {
		for _, targetType := range d.Targets {
			targets, nameConsumed, err := resolve(e.container, targetType, d.Name)
			if err != nil {
				return err
			}
			// A name the container consumed is spent; only an unconsumed
			// name goes on to disambiguate the field.
			fieldName := d.Name
			if nameConsumed {
				fieldName = ""
			}
			for _, target := range targets {
				m, err := match(target, d.field.Type, fieldName)
				if err != nil {
					return err
				}
				original, err := m.get()
				if err != nil {
					return err
				}
				double, err := e.newDouble(d.Kind, d.field.Type, original)
				if err != nil {
					return err
				}
				e.undo = append(e.undo, undoRecord{target: target, field: m, original: original})
				if err := m.set(double); err != nil {
					return err
				}
				if !populated[d.Field] {
					populated[d.Field] = true
					testField := matchedField{owner: testObject, field: d.field}
					if err := testField.set(double); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (e *Engine) newDouble(kind DoubleKind, declared reflect.Type, original any) (any, error) {
	switch kind {
	case Stub:
		return e.factory.NewStub(declared)
	case Wrap:
		return e.factory.NewWrap(original)
	}
	return nil, ConfigurationError{Reason: fmt.Sprintf("unknown double kind %d", int(kind))}
}

// Restore writes every recorded original value back, strictly last-in
// first-out. It is best-effort complete: a record that fails to restore is
// collected, the remaining records are still attempted, and the failures
// come back joined, each as a [RestorationError]. Restoring an engine with
// nothing to undo is a no-op, so calling Restore twice is safe.
func (e *Engine) Restore() error {
	e.state = restoring
	err := e.unwind()
	e.state = idle
	return err
}

func (e *Engine) unwind() error {
	var errs []error
	for i := len(e.undo) - 1; i >= 0; i-- {
		rec := e.undo[i]
		if err := rec.field.set(rec.original); err != nil {
			errs = append(errs, RestorationError{
				Target: rec.target.Type(),
				Field:  rec.field.field.Name,
				Cause:  err,
			})
		}
	}
	e.undo = nil
	return errors.Join(errs...)
}
