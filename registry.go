package implant

import (
	"fmt"
	"reflect"
)

// Registry is an in-memory Container holding live singletons in
// registration order. It is meant to be populated once, at application or
// test fixture startup, and only read afterwards; the engine mutates the
// registered instances' fields, never the registry itself.
type Registry struct {
	entries []registryEntry
}

type registryEntry struct {
	name  string
	value any
}

// NewRegistry returns a registry holding the given unnamed instances.
func NewRegistry(values ...any) *Registry {
	r := &Registry{}
	r.Register(values...)
	return r
}

// Register adds unnamed instances, preserving order. Order matters: it is
// the resolution order the engine applies substitutions in.
func (r *Registry) Register(values ...any) {
	for _, v := range values {
		if v == nil {
			panic("implant: Register with a nil instance")
		}
		r.entries = append(r.entries, registryEntry{value: v})
	}
}

// RegisterNamed adds an instance under a name. A duplicate name panics; a
// registry with two entries under one name cannot disambiguate anything.
func (r *Registry) RegisterNamed(name string, value any) {
	if name == "" {
		panic("implant: RegisterNamed with an empty name")
	}
	if value == nil {
		panic("implant: RegisterNamed with a nil instance")
	}
	for _, e := range r.entries {
		if e.name == name {
			panic(fmt.Sprintf("implant: name %q registered twice", name))
		}
	}
	r.entries = append(r.entries, registryEntry{name: name, value: value})
}

func (r *Registry) FindByType(t reflect.Type) []any {
	var res []any
	for _, e := range r.entries {
		if reflect.TypeOf(e.value).AssignableTo(t) {
			res = append(res, e.value)
		}
	}
	return res
}

func (r *Registry) FindByTypeAndName(t reflect.Type, name string) (any, bool) {
	for _, e := range r.entries {
		if e.name == name && reflect.TypeOf(e.value).AssignableTo(t) {
			return e.value, true
		}
	}
	return nil, false
}
