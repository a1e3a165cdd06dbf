package diagram

import (
	"fmt"
	"time"

	"github.com/matzehuels/classdiagram/pkg/meta"
)

// BuildOptions configures Build.
type BuildOptions struct {
	// Namespace selects the types to describe.
	Namespace string

	// AssemblyName and AssemblyVersion are reported in the document header.
	// When empty they are taken from the source if it provides them
	// (*meta.Universe does). A version that is still empty becomes
	// meta.DefaultVersion.
	AssemblyName    string
	AssemblyVersion string

	// Comments overrides the comment lookup. By default the source is used
	// when it implements CommentSource.
	Comments CommentSource

	// Now returns the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

type assemblyInfo interface {
	Name() string
	Version() string
}

// Build selects the types of opts.Namespace from src, describes each of
// them and wraps the result in a Document. The generation timestamp is
// taken once, before any type is described. If any type cannot be
// described the build fails and no document is returned.
func Build(src Source, opts BuildOptions) (*Document, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	generated := now()

	name, version := opts.AssemblyName, opts.AssemblyVersion
	if info, ok := src.(assemblyInfo); ok {
		if name == "" {
			name = info.Name()
		}
		if version == "" {
			version = info.Version()
		}
	}
	if version == "" {
		version = meta.DefaultVersion
	}

	comments := opts.Comments
	if comments == nil {
		if cs, ok := src.(CommentSource); ok {
			comments = cs
		}
	}

	defs := Catalog(src, opts.Namespace)
	types := make([]TypeDescriptor, 0, len(defs))
	for _, def := range defs {
		td, err := Describe(def, comments)
		if err != nil {
			return nil, fmt.Errorf("describe %s: %w", def.FullName(), err)
		}
		types = append(types, td)
	}

	return &Document{
		AssemblyName:    name,
		AssemblyVersion: version,
		GeneratedAt:     generated,
		Types:           types,
	}, nil
}
