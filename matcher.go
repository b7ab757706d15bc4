package implant

import (
	"fmt"
	"reflect"
	"unsafe"
)

// matchedField is one writable field located inside a resolved target. The
// owner is the addressable struct value holding the field, which may sit on
// an embedded ancestor of the target's own type.
type matchedField struct {
	owner reflect.Value
	field reflect.StructField
}

// match locates the unique field of the target, or of an embedded ancestor,
// whose type the declared double type is assignable to. A name reaching the
// matcher was not consumed by the container lookup, so it must bind to a
// candidate field here; a name matching no candidate is an error the test
// author must fix, never silently ignored, even with a single candidate.
// Unexported fields are candidates like any other; the accessor below takes
// care of them.
func match(target reflect.Value, declared reflect.Type, name string) (matchedField, error) {
	strct := target.Elem()
	t := strct.Type()

	var candidates []matchedField
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous {
			// Embedded ancestors contribute their promoted fields, not
			// themselves.
			continue
		}
		if !declared.AssignableTo(f.Type) {
			continue
		}
		candidates = append(candidates, matchedField{owner: strct, field: f})
	}

	if len(candidates) == 0 {
		return matchedField{}, FieldNotFoundError{Target: t, Declared: declared}
	}

	if name != "" {
		var named []matchedField
		for _, c := range candidates {
			if c.field.Name == name {
				named = append(named, c)
			}
		}
		if len(named) == 1 {
			return named[0], nil
		}
		if len(named) == 0 {
			return matchedField{}, FieldNotFoundError{Target: t, Declared: declared, Name: name}
		}
	}

	if len(candidates) == 1 {
		return candidates[0], nil
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.field.Name
	}
	return matchedField{}, AmbiguousFieldError{Target: t, Declared: declared, Candidates: names}
}

// value reaches the field, which fails when it is promoted through a nil
// embedded pointer; a live container can legitimately hold such a target,
// so this must surface as an error, not a panic.
func (m matchedField) value() (reflect.Value, error) {
	v, err := m.owner.FieldByIndexErr(m.field.Index)
	if err != nil {
		return reflect.Value{}, FieldNotFoundError{
			Target: m.owner.Type(),
			Name:   m.field.Name,
			Cause:  err,
		}
	}
	return v, nil
}

// get reads the field's current value, bypassing the export check where
// needed.
func (m matchedField) get() (any, error) {
	v, err := m.value()
	if err != nil {
		return nil, err
	}
	if !v.CanInterface() {
		v = unlock(v)
	}
	return v.Interface(), nil
}

// set writes x into the field, bypassing the export check where needed.
func (m matchedField) set(x any) error {
	nv := reflect.ValueOf(x)
	if x == nil {
		nv = reflect.Zero(m.field.Type)
	}
	if !nv.Type().AssignableTo(m.field.Type) {
		return fmt.Errorf(
			"implant: %s is not assignable to field %s %s",
			printType(nv.Type()), m.field.Name, printType(m.field.Type),
		)
	}
	v, err := m.value()
	if err != nil {
		return err
	}
	if !v.CanSet() {
		v = unlock(v)
	}
	v.Set(nv)
	return nil
}

// unlock rebuilds v as a settable value at the same address. This is the
// reflective escape hatch for unexported fields; v must be addressable,
// which holds for any field reached through a struct pointer.
func unlock(v reflect.Value) reflect.Value {
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}
