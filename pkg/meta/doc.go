// Package meta holds the type universe that class diagrams are generated from.
//
// # Overview
//
// Go has no runtime reflection over foreign class hierarchies, so every
// describable type is registered explicitly as a [TypeDef]: its category
// (class, interface, struct, enum), abstractness, shallow base reference,
// and the properties, methods and enum members it carries. A [Universe]
// collects the definitions of one assembly together with a side table of
// documentation comments keyed by full type name.
//
// The registry records what a runtime would report, not only what ends up in
// a diagram: static members, non-public members, inherited members (marked
// with DeclaredBy) and compiler-synthesized methods (marked Special) are all
// representable, and the diagram package filters them.
//
// # Type References
//
// [TypeRef] names another type shallowly. Generic references carry their
// arguments and a runtime-style arity marker on the name:
//
//	ref, _ := meta.ParseTypeRef("System.Collections.Generic.List<System.Int32>")
//	ref.Name        // "List`1"
//	ref.FullName()  // "System.Collections.Generic.List`1"
//	ref.Args[0].Name // "Int32"
//
// # Universe Files
//
// Universes can be loaded from TOML, YAML or JSON(C) files with [Load] and
// [LoadGlob]. Every file is validated against an embedded JSON schema before
// decoding:
//
//	assembly = "Shapes"
//	version  = "2.1.0.0"
//
//	[[types]]
//	name      = "Shape"
//	namespace = "Geometry"
//	kind      = "class"
//	abstract  = true
//	comment   = "Base type for all shapes"
//
//	  [[types.properties]]
//	  name = "Area"
//	  type = "System.Double"
//	  get  = "public"
package meta
