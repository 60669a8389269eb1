// Package naming defines how the elements of a fabric are named.
//
// Names are hierarchical, dot separated, and use square brackets for the
// elements of a series, for example "Octopi.CoreComplex[1].L3Cache".
package naming

// Named describes an object that has a name.
type Named interface {
	Name() string
}

// NamedBase can be embedded to implement Named.
type NamedBase struct {
	name string
}

// Name returns the name of the object.
func (b NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a NamedBase. It panics if the name does not follow
// the naming convention.
func MakeNamedBase(name string) NamedBase {
	NameMustBeValid(name)

	return NamedBase{name: name}
}
