// Package diagram turns type metadata into a class diagram document.
//
// # Overview
//
// The package is the core of classdiagram. It reads type definitions from a
// [Source] (usually a [meta.Universe]), selects the ones living in one
// namespace, and describes each of them as a [TypeDescriptor]: its kind,
// shallow base reference, declared public properties and methods, enum value
// table and optional documentation comment. [Build] wraps the descriptors in
// a [Document] together with assembly metadata and a generation timestamp.
//
// Rendering the document is left to the sink package.
//
// # Pipeline
//
//	meta.Universe
//	     ↓
//	[Catalog]   filter by namespace, sort by name
//	     ↓
//	[Describe]  one TypeDescriptor per definition
//	     ↓
//	[Build]     Document{AssemblyName, AssemblyVersion, GeneratedAt, Types}
//
// Every step is synchronous and works on read-only input. The resulting
// document is never modified after Build returns.
//
// # Classification
//
// Enumerations become [KindEnum], abstract classes [KindAbstractClass] and
// concrete classes [KindClass]. Interfaces and structs fall back to
// [KindType], which carries the name, full name and comment but no
// structural detail.
//
// # Member Selection
//
// Only members declared directly on the type are reported. A property is
// included when it is an instance property with at least one public
// accessor. A method is included when it is a public instance method that
// is not compiler-synthesized (property accessors, constructors, operators).
// Enum values keep the order in which the registry declares them, which is
// not necessarily ascending by value.
//
// # Type Names
//
// [FormatTypeName] renders generic references recursively with the arity
// marker removed, so a list of lists of integers reads List<List<Int32>>.
// [ResolveAccess] renders a property's accessor pair as "read-only",
// "write-only" or "<get> get; <set> set;".
//
// # Errors
//
// A member that lacks the metadata needed to describe it (no property type,
// no parameter type, an unnamed method) aborts the build with an error
// carrying the MISSING_METADATA error code. Missing comments, base types or
// members are not errors; the corresponding parts of the descriptor are
// simply left empty.
package diagram
