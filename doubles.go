package implant

import (
	"fmt"
	"reflect"
)

// Factory manufactures the doubles the engine installs. NewStub builds a
// fresh, behaviour-less double assignable to the declared field type.
// NewWrap builds a double that delegates to the original value while making
// its calls observable.
type Factory interface {
	NewStub(t reflect.Type) (any, error)
	NewWrap(original any) (any, error)
}

// Doubles is the in-memory Factory: a registry of per-type constructors,
// with a reflective fallback for stubs of concrete types. Interface stubs
// and all wrappers need registered constructors; Go cannot synthesize an
// interface implementation at runtime.
type Doubles struct {
	stubs map[reflect.Type]func() any
	wraps []wrapEntry
}

type wrapEntry struct {
	t         reflect.Type
	construct func(any) any
}

// NewDoubles returns an empty factory.
func NewDoubles() *Doubles {
	return &Doubles{stubs: make(map[reflect.Type]func() any)}
}

// RegisterStub teaches the factory how to build a stub for T.
func RegisterStub[T any](d *Doubles, construct func() T) {
	d.stubs[reflect.TypeOf((*T)(nil)).Elem()] = func() any { return construct() }
}

// RegisterWrap teaches the factory how to wrap an original T in a
// call-recording double. When an original is assignable to more than one
// registered type, the earliest registration wins.
func RegisterWrap[T any](d *Doubles, construct func(T) T) {
	d.wraps = append(d.wraps, wrapEntry{
		t:         reflect.TypeOf((*T)(nil)).Elem(),
		construct: func(original any) any { return construct(original.(T)) },
	})
}

func (d *Doubles) NewStub(t reflect.Type) (any, error) {
	if construct, ok := d.stubs[t]; ok {
		return construct(), nil
	}
	switch {
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()).Interface(), nil
	case t.Kind() == reflect.Struct:
		return reflect.Zero(t).Interface(), nil
	}
	return nil, fmt.Errorf("implant: no stub constructor registered for %s", printType(t))
}

func (d *Doubles) NewWrap(original any) (any, error) {
	t := reflect.TypeOf(original)
	if t != nil {
		for _, w := range d.wraps {
			if t.AssignableTo(w.t) {
				return w.construct(original), nil
			}
		}
	}
	return nil, fmt.Errorf("implant: no wrap constructor registered for %T", original)
}
