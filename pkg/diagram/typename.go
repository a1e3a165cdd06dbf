package diagram

import (
	"strings"

	"github.com/matzehuels/classdiagram/pkg/meta"
)

// voidTypeName is reported for methods without a return type.
const voidTypeName = "void"

// FormatTypeName renders a type reference for display. Generic references
// lose their arity marker and list their arguments, formatted recursively:
//
//	List`1[List`1[Int32]]  ->  List<List<Int32>>
//
// Non-generic references render as their simple name.
func FormatTypeName(ref meta.TypeRef) string {
	if !ref.IsGeneric() {
		return ref.Name
	}
	name := ref.Name
	if i := strings.IndexByte(name, '`'); i >= 0 {
		name = name[:i]
	}
	args := make([]string, len(ref.Args))
	for i, a := range ref.Args {
		args[i] = FormatTypeName(a)
	}
	return name + "<" + strings.Join(args, ", ") + ">"
}

// formatOptional is FormatTypeName with "void" for a nil reference.
func formatOptional(ref *meta.TypeRef) string {
	if ref == nil {
		return voidTypeName
	}
	return FormatTypeName(*ref)
}
