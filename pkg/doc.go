// Package pkg provides the libraries behind the classdiagram tool.
//
// # Overview
//
// classdiagram describes the types of one namespace of a library as a class
// diagram document and serializes it as XML. The pkg directory is organized
// into these areas:
//
//  1. [meta] - Type metadata registry and universe file loading
//  2. [diagram] - Catalog, classification and description of types
//  3. [sink] - XML, JSON, DOT and SVG serialization of documents
//  4. [pipeline] - Orchestration (load → build → render)
//  5. [cache] - Storage of rendered artifacts
//  6. [animals] - The animal library the tool describes by default
//
// # Architecture
//
// The typical data flow:
//
//	Universe files / animals registry
//	         ↓
//	    [meta] package (Universe of TypeDefs)
//	         ↓
//	    [diagram] package (Catalog → Describe → Build)
//	         ↓
//	    [sink] package (XML/JSON/DOT/SVG)
//
// # Quick Start
//
// Describe the built-in animal library and print the XML document:
//
//	import (
//	    "os"
//	    "github.com/matzehuels/classdiagram/pkg/animals"
//	    "github.com/matzehuels/classdiagram/pkg/diagram"
//	    "github.com/matzehuels/classdiagram/pkg/sink"
//	)
//
//	doc, err := diagram.Build(animals.Universe(), diagram.BuildOptions{
//	    Namespace: animals.Namespace,
//	})
//	if err != nil {
//	    return err
//	}
//	return sink.WriteXML(os.Stdout, doc)
//
// # Error Handling
//
// Errors carry codes from the [errors] package. Use errors.Is with a code to
// tell invalid input apart from broken metadata:
//
//	if errors.Is(err, errors.ErrCodeMissingMetadata) {
//	    // a member could not be described
//	}
package pkg
