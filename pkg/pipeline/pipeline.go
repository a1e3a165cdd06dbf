// Package pipeline runs the class diagram pipeline shared by all commands.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the type universe from the built-in animal library or from
//     universe files matched by glob patterns
//  2. Build: Select one namespace and describe it as a diagram.Document
//  3. Render: Serialize the document in each requested format (XML, JSON,
//     DOT, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Universe: []string{"metadata/**/*.toml"},
//	    Formats:  []string{"xml", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	xml := result.Artifacts["xml"]
//
// Run individual stages:
//
//	u, err := runner.Load(ctx, opts)
//	doc, err := runner.Build(ctx, u, opts)
//	artifacts, err := runner.Render(ctx, doc, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classdiagram/pkg/animals"
	"github.com/matzehuels/classdiagram/pkg/cache"
	"github.com/matzehuels/classdiagram/pkg/diagram"
	"github.com/matzehuels/classdiagram/pkg/errors"
	"github.com/matzehuels/classdiagram/pkg/meta"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultNamespace is the namespace diagrammed when none is given.
	DefaultNamespace = animals.Namespace

	// DefaultOutput is the base name of written artifacts.
	DefaultOutput = "AnimalClassDiagram"
)

// Format constants for output formats.
const (
	FormatXML  = "xml"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatXML:  true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the diagram pipeline.
type Options struct {
	// Load options. An empty Universe selects the built-in animal library.
	Universe []string `json:"universe,omitempty" toml:"universe"`

	// Build options. Empty assembly fields are taken from the universe.
	Namespace       string `json:"namespace,omitempty" toml:"namespace"`
	AssemblyName    string `json:"assembly,omitempty" toml:"assembly"`
	AssemblyVersion string `json:"version,omitempty" toml:"version"`

	// Render options
	Formats  []string `json:"formats,omitempty" toml:"formats"`
	Detailed bool     `json:"detailed,omitempty" toml:"detailed"`
	Refresh  bool     `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Now    func() time.Time `json:"-" toml:"-"`
	Logger *log.Logger      `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Universe is the loaded type universe.
	Universe *meta.Universe

	// Document is the built class diagram.
	Document *diagram.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	UniverseTypes int
	TypeCount     int
	LoadTime      time.Duration
	BuildTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RenderHit bool // Whether all cacheable artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(formatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func formatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the namespace and assembly version and applies
// build defaults.
func (o *Options) ValidateForBuild() error {
	if o.Namespace == "" {
		o.Namespace = DefaultNamespace
	}
	if err := errors.ValidateNamespace(o.Namespace); err != nil {
		return err
	}
	if o.AssemblyName != "" {
		if err := errors.ValidateNamespace(o.AssemblyName); err != nil {
			return fmt.Errorf("assembly: %w", err)
		}
	}
	if o.AssemblyVersion != "" {
		if err := errors.ValidateVersion(o.AssemblyVersion); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatXML}
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// UsesBuiltin reports whether the built-in animal library is loaded.
func (o *Options) UsesBuiltin() bool {
	return len(o.Universe) == 0
}

// BuildOptions returns the document builder options.
func (o *Options) BuildOptions() diagram.BuildOptions {
	return diagram.BuildOptions{
		Namespace:       o.Namespace,
		AssemblyName:    o.AssemblyName,
		AssemblyVersion: o.AssemblyVersion,
		Now:             o.Now,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
