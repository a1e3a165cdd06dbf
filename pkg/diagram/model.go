package diagram

import (
	"time"

	"github.com/matzehuels/classdiagram/pkg/meta"
)

// Kind classifies a described type. Its value doubles as the element name in
// the XML rendering.
type Kind string

// Type kinds.
const (
	KindEnum          Kind = "Enum"
	KindAbstractClass Kind = "AbstractClass"
	KindClass         Kind = "Class"
	KindType          Kind = "Type" // fallback for interfaces, structs and anything else
)

// IsClass reports whether k is one of the class kinds.
func (k Kind) IsClass() bool {
	return k == KindClass || k == KindAbstractClass
}

// TypeRef is a shallow reference to another type.
type TypeRef struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// EnumValue is one entry of an enum value table.
type EnumValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// PropertyDescriptor describes a declared property.
type PropertyDescriptor struct {
	Name     string `json:"name"`
	TypeName string `json:"type"`
	Access   string `json:"access"`
}

// ParameterDescriptor describes one method parameter.
type ParameterDescriptor struct {
	Name     string `json:"name"`
	TypeName string `json:"type"`
}

// MethodDescriptor describes a declared method. ReturnTypeName is "void" for
// methods without a result.
type MethodDescriptor struct {
	Name           string                `json:"name"`
	ReturnTypeName string                `json:"return_type"`
	IsAbstract     bool                  `json:"is_abstract"`
	IsVirtual      bool                  `json:"is_virtual"`
	Parameters     []ParameterDescriptor `json:"parameters,omitempty"`
}

// TypeDescriptor is the structured description of one type.
type TypeDescriptor struct {
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	FullName string `json:"full_name"`

	// Comment is the documentation text declared on the type, nil if none.
	Comment *string `json:"comment,omitempty"`

	// BaseType is set only for class kinds whose base is not the root type.
	BaseType *TypeRef `json:"base_type,omitempty"`

	// EnumValues is set only for KindEnum.
	EnumValues []EnumValue `json:"values,omitempty"`

	Properties []PropertyDescriptor `json:"properties,omitempty"`
	Methods    []MethodDescriptor   `json:"methods,omitempty"`
}

// Document is a complete class diagram.
type Document struct {
	AssemblyName    string           `json:"assembly_name"`
	AssemblyVersion string           `json:"assembly_version"`
	GeneratedAt     time.Time        `json:"generated_at"`
	Types           []TypeDescriptor `json:"types"`
}

// Lookup returns the descriptor with the given full name.
func (d *Document) Lookup(fullName string) (TypeDescriptor, bool) {
	for _, t := range d.Types {
		if t.FullName == fullName {
			return t, true
		}
	}
	return TypeDescriptor{}, false
}

// Source provides the type definitions a diagram is built from.
// *meta.Universe satisfies it.
type Source interface {
	Types() []*meta.TypeDef
}

// CommentSource looks up documentation text declared directly on a type.
// *meta.Universe satisfies it.
type CommentSource interface {
	Comment(fullName string) (string, bool)
}

// noComments is the CommentSource used when none is available.
type noComments struct{}

func (noComments) Comment(string) (string, bool) { return "", false }
