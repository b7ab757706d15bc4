package implant

import (
	"fmt"
	"reflect"
)

// Container supplies the live singletons whose fields get substituted. The
// engine mutates the instances it returns in place, so lookups must return
// the same instances the application itself uses, never copies. The engine
// only ever looks instances up and writes individual fields; it never
// replaces or re-wires objects in the container.
type Container interface {
	// FindByType returns every live instance assignable to t.
	FindByType(t reflect.Type) []any
	// FindByTypeAndName returns the instance registered under name, if one
	// exists and is assignable to t.
	FindByTypeAndName(t reflect.Type, name string) (any, bool)
}

// resolve asks the container for the live instances of a declared target
// type. A name narrows the lookup to a single registration when the
// container knows it, in which case nameConsumed reports true. An unknown
// name falls through to the plain type query only provisionally: the same
// name may instead pick a field inside the target, and the caller must pass
// it on to the field matcher, where it either binds or fails. A name
// matching neither a registration nor a field never activates silently.
//
// Several matches without a name are not an error here. A test may
// legitimately want the substitution applied to every matching target, so
// ambiguity is resolved (or rejected) per target by the field matcher.
func resolve(c Container, target reflect.Type, name string) (_ []reflect.Value, nameConsumed bool, _ error) {
	var instances []any
	if name != "" {
		if inst, ok := c.FindByTypeAndName(target, name); ok {
			instances = []any{inst}
			nameConsumed = true
		}
	}
	if instances == nil {
		instances = c.FindByType(target)
	}
	if len(instances) == 0 {
		return nil, false, TargetNotFoundError{Type: target, Name: name}
	}

	resolved := make([]reflect.Value, len(instances))
	for i, inst := range instances {
		v := reflect.ValueOf(inst)
		if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
			return nil, false, ConfigurationError{Reason: fmt.Sprintf(
				"target %s resolved to a non-addressable %s; register targets as struct pointers",
				printType(target), printType(reflect.TypeOf(inst)),
			)}
		}
		resolved[i] = v
	}
	return resolved, nameConsumed, nil
}
