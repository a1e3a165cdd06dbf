package meta

import (
	"fmt"
	"strings"
)

// RootTypeName is the full name of the universal base class. A base
// reference to it carries no information and is never reported.
const RootTypeName = "System.Object"

// Category is the runtime classification of a type definition.
type Category string

// Type categories.
const (
	CategoryClass     Category = "class"
	CategoryInterface Category = "interface"
	CategoryStruct    Category = "struct"
	CategoryEnum      Category = "enum"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryClass, CategoryInterface, CategoryStruct, CategoryEnum:
		return true
	}
	return false
}

// Visibility is the access level of a member or accessor.
type Visibility string

// Visibility levels. Family is spelled "protected", assembly is "internal".
const (
	Public            Visibility = "public"
	Private           Visibility = "private"
	Protected         Visibility = "protected"
	Internal          Visibility = "internal"
	ProtectedInternal Visibility = "protected internal"
	PrivateProtected  Visibility = "private protected"
)

// ParseVisibility converts s into a Visibility. Matching is case-insensitive
// and tolerates repeated whitespace.
func ParseVisibility(s string) (Visibility, error) {
	v := Visibility(strings.Join(strings.Fields(strings.ToLower(s)), " "))
	switch v {
	case Public, Private, Protected, Internal, ProtectedInternal, PrivateProtected:
		return v, nil
	}
	return "", fmt.Errorf("unknown visibility %q", s)
}

// TypeRef is a shallow reference to a type, possibly parameterized.
type TypeRef struct {
	// Name is the simple runtime name. Generic types keep their arity
	// marker ("List`1"); arrays keep their brackets ("Int32[]").
	Name string

	// Namespace is empty for types outside any namespace and for generic
	// parameters such as T.
	Namespace string

	// Args are the generic arguments in declaration order.
	Args []TypeRef
}

// FullName returns the namespace-qualified name without generic arguments.
func (r TypeRef) FullName() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "." + r.Name
}

// IsGeneric reports whether the reference carries generic arguments.
func (r TypeRef) IsGeneric() bool {
	return len(r.Args) > 0
}

// String renders the reference in the source syntax accepted by ParseTypeRef.
func (r TypeRef) String() string {
	if !r.IsGeneric() {
		return r.FullName()
	}
	name := r.FullName()
	if i := strings.IndexByte(name, '`'); i >= 0 {
		name = name[:i]
	}
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = a.String()
	}
	return name + "<" + strings.Join(args, ",") + ">"
}

// Ref builds a reference from a full name and optional generic arguments,
// adding the arity marker when args are given.
//
//	meta.Ref("System.String")
//	meta.Ref("System.Collections.Generic.List", meta.Ref("System.Int32"))
func Ref(fullName string, args ...TypeRef) TypeRef {
	ns, name := splitFullName(fullName)
	if len(args) > 0 && !strings.ContainsRune(name, '`') {
		name = fmt.Sprintf("%s`%d", name, len(args))
	}
	return TypeRef{Name: name, Namespace: ns, Args: args}
}

// RefPtr is Ref returning a pointer, for optional fields.
func RefPtr(fullName string, args ...TypeRef) *TypeRef {
	r := Ref(fullName, args...)
	return &r
}

func splitFullName(fullName string) (ns, name string) {
	if i := strings.LastIndexByte(fullName, '.'); i >= 0 {
		return fullName[:i], fullName[i+1:]
	}
	return "", fullName
}

// Accessor is the read or write half of a property.
type Accessor struct {
	Visibility Visibility
}

// Get returns an accessor with the given visibility.
func Get(v Visibility) *Accessor { return &Accessor{Visibility: v} }

// Set returns an accessor with the given visibility.
func Set(v Visibility) *Accessor { return &Accessor{Visibility: v} }

// Property is a property member. A nil Getter or Setter means the accessor
// does not exist.
type Property struct {
	Name   string
	Type   *TypeRef
	Getter *Accessor
	Setter *Accessor
	Static bool

	// DeclaredBy is the full name of the declaring type for inherited
	// members. Empty means the member is declared on the owning type.
	DeclaredBy string
}

// IsPublic reports whether at least one accessor is public, which is how a
// runtime decides a property belongs to the public surface.
func (p Property) IsPublic() bool {
	return (p.Getter != nil && p.Getter.Visibility == Public) ||
		(p.Setter != nil && p.Setter.Visibility == Public)
}

// Parameter is one method parameter.
type Parameter struct {
	Name string
	Type *TypeRef
}

// Method is a method member. Returns is nil for methods without a result.
type Method struct {
	Name       string
	Returns    *TypeRef
	Params     []Parameter
	Visibility Visibility
	Static     bool
	Abstract   bool
	Virtual    bool

	// Special marks compiler-synthesized members: property accessors,
	// constructors, operators and event accessors.
	Special bool

	// DeclaredBy is the full name of the declaring type for inherited
	// members. Empty means the member is declared on the owning type.
	DeclaredBy string
}

// EnumMember is one named value of an enumeration.
type EnumMember struct {
	Name  string
	Value int
}

// TypeDef is a registered type definition.
type TypeDef struct {
	Name      string
	Namespace string
	Category  Category
	Abstract  bool

	// Base is the direct base type, nil when the type has none.
	Base *TypeRef

	Properties []Property
	Methods    []Method

	// Values lists enum members in declaration order.
	Values []EnumMember
}

// FullName returns the namespace-qualified type name.
func (d *TypeDef) FullName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// IsEnum reports whether the definition is an enumeration.
func (d *TypeDef) IsEnum() bool { return d.Category == CategoryEnum }

// IsClass reports whether the definition is a class, abstract or not.
func (d *TypeDef) IsClass() bool { return d.Category == CategoryClass }

// Declares reports whether a member with the given DeclaredBy value is
// declared directly on d.
func (d *TypeDef) Declares(declaredBy string) bool {
	return declaredBy == "" || declaredBy == d.FullName()
}
