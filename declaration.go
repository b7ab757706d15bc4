package implant

import (
	"fmt"
	"reflect"
)

// DoubleKind selects what gets installed in place of the original value.
type DoubleKind int

const (
	// Stub installs a fresh double with no behaviour of its own.
	Stub DoubleKind = iota
	// Wrap installs a double that delegates to the original value while
	// recording the calls it receives.
	Wrap
)

func (k DoubleKind) String() string {
	switch k {
	case Stub:
		return "stub"
	case Wrap:
		return "wrap"
	}
	return fmt.Sprintf("DoubleKind(%d)", int(k))
}

// Declaration states that the test object's field Field should hold a
// double of kind Kind, installed into every target type in Targets. The
// kind is fixed for the life of the declaration.
//
// Name disambiguates in two places: it narrows the container lookup to a
// named registration, and it picks one field inside the target when more
// than one accepts the double.
type Declaration struct {
	Field   string
	Kind    DoubleKind
	Targets []reflect.Type
	Name    string
}

// StubIn declares a stub for the named test field, installed into every
// listed target type.
func StubIn(field string, targets ...reflect.Type) Declaration {
	return Declaration{Field: field, Kind: Stub, Targets: targets}
}

// WrapIn declares a recording wrapper for the named test field, installed
// into every listed target type.
func WrapIn(field string, targets ...reflect.Type) Declaration {
	return Declaration{Field: field, Kind: Wrap, Targets: targets}
}

// Named returns a copy of the declaration carrying a disambiguating name.
func (d Declaration) Named(name string) Declaration {
	d.Name = name
	return d
}

// Type names a target type in a declaration.
func Type[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// scannedDeclaration pairs a declaration with the test object field that
// will receive the double.
type scannedDeclaration struct {
	Declaration
	field reflect.StructField
}

// scan validates declarations against the test object's shape and returns
// them in declaration order, so activation is deterministic across runs.
// It reads the test object's static shape only; nothing is mutated.
func scan(testObject reflect.Value, decls []Declaration) ([]scannedDeclaration, error) {
	if testObject.Kind() != reflect.Pointer || testObject.IsNil() ||
		testObject.Elem().Kind() != reflect.Struct {
		return nil, ConfigurationError{Reason: "test object must be a non-nil pointer to a struct"}
	}
	t := testObject.Elem().Type()

	type pair struct {
		field  string
		target reflect.Type
	}
	seen := make(map[pair]bool)

	result := make([]scannedDeclaration, 0, len(decls))
	for _, d := range decls {
		if d.Field == "" {
			return nil, ConfigurationError{Reason: "declaration without a test field"}
		}
		if len(d.Targets) == 0 {
			return nil, ConfigurationError{
				Reason: fmt.Sprintf("declaration for field %q names no target types", d.Field),
			}
		}
		f, ok := t.FieldByName(d.Field)
		if !ok {
			return nil, ConfigurationError{
				Reason: fmt.Sprintf("test object %s has no field %q", printType(t), d.Field),
			}
		}
		for _, target := range d.Targets {
			if target == nil {
				return nil, ConfigurationError{
					Reason: fmt.Sprintf("declaration for field %q contains a nil target type", d.Field),
				}
			}
			p := pair{d.Field, target}
			if seen[p] {
				return nil, ConfigurationError{
					Reason: fmt.Sprintf(
						"field %q declared twice for target %s", d.Field, printType(target),
					),
				}
			}
			seen[p] = true
		}
		result = append(result, scannedDeclaration{Declaration: d, field: f})
	}
	return result, nil
}
