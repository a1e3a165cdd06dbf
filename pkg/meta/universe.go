package meta

import (
	"slices"

	"github.com/matzehuels/classdiagram/pkg/errors"
)

// DefaultVersion is reported for assemblies that carry no version.
const DefaultVersion = "1.0.0.0"

// Universe is the set of type definitions of one assembly plus a side table
// of documentation comments. It is built once and then only read.
type Universe struct {
	name    string
	version string

	types    []*TypeDef
	index    map[string]*TypeDef
	comments map[string]string
}

// New creates an empty universe for the named assembly. An empty version
// is kept empty; consumers decide on the fallback.
func New(name, version string) *Universe {
	return &Universe{
		name:     name,
		version:  version,
		index:    make(map[string]*TypeDef),
		comments: make(map[string]string),
	}
}

// Name returns the assembly name.
func (u *Universe) Name() string { return u.name }

// Version returns the assembly version, possibly empty.
func (u *Universe) Version() string { return u.version }

// Add registers type definitions in order. It fails on the first definition
// whose full name is already registered or that is malformed, leaving the
// definitions before it registered.
func (u *Universe) Add(defs ...*TypeDef) error {
	for _, d := range defs {
		if d == nil {
			return errors.New(errors.ErrCodeInvalidUniverse, "nil type definition")
		}
		if err := errors.ValidateIdentifier(d.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidUniverse, err, "type %q", d.FullName())
		}
		if err := errors.ValidateNamespace(d.Namespace); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidUniverse, err, "type %q", d.FullName())
		}
		if !d.Category.Valid() {
			return errors.New(errors.ErrCodeInvalidUniverse, "type %q has unknown kind %q", d.FullName(), d.Category)
		}
		full := d.FullName()
		if _, dup := u.index[full]; dup {
			return errors.New(errors.ErrCodeDuplicateType, "type %q is already registered", full)
		}
		u.index[full] = d
		u.types = append(u.types, d)
	}
	return nil
}

// MustAdd is like Add but panics on error. It is meant for statically
// built registries whose contents are known to be valid.
func (u *Universe) MustAdd(defs ...*TypeDef) *Universe {
	if err := u.Add(defs...); err != nil {
		panic(err)
	}
	return u
}

// Types returns the registered definitions in registration order. The slice
// is a copy; the definitions are shared and must not be modified.
func (u *Universe) Types() []*TypeDef {
	return slices.Clone(u.types)
}

// Len returns the number of registered definitions.
func (u *Universe) Len() int { return len(u.types) }

// Lookup returns the definition with the given full name.
func (u *Universe) Lookup(fullName string) (*TypeDef, bool) {
	d, ok := u.index[fullName]
	return d, ok
}

// Namespaces returns the distinct namespaces in ascending order.
func (u *Universe) Namespaces() []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range u.types {
		if !seen[d.Namespace] {
			seen[d.Namespace] = true
			out = append(out, d.Namespace)
		}
	}
	slices.Sort(out)
	return out
}

// SetComment attaches documentation text to the type with the given full
// name. The type does not have to be registered yet. An empty text removes
// the comment.
func (u *Universe) SetComment(fullName, text string) {
	if text == "" {
		delete(u.comments, fullName)
		return
	}
	u.comments[fullName] = text
}

// Comment returns the documentation text declared directly on the type.
// Comments are never inherited from base types.
func (u *Universe) Comment(fullName string) (string, bool) {
	c, ok := u.comments[fullName]
	return c, ok
}

// Merge adds all definitions and comments of other to u. The assembly name
// and version of u win; they are taken from other only when unset.
func (u *Universe) Merge(other *Universe) error {
	if other == nil {
		return nil
	}
	if u.name == "" {
		u.name = other.name
	}
	if u.version == "" {
		u.version = other.version
	}
	if err := u.Add(other.types...); err != nil {
		return err
	}
	for k, v := range other.comments {
		u.comments[k] = v
	}
	return nil
}
