package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/classdiagram/pkg/diagram"
	"github.com/matzehuels/classdiagram/pkg/sink"
)

// RenderFormat serializes the document in one format without caching.
func RenderFormat(ctx context.Context, doc *diagram.Document, format string, opts Options) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil document")
	}
	switch format {
	case FormatXML:
		return sink.RenderXML(doc)
	case FormatJSON:
		return sink.RenderJSON(doc)
	case FormatDOT:
		return []byte(sink.ToDOT(doc, sink.DOTOptions{Detailed: opts.Detailed})), nil
	case FormatSVG:
		return sink.RenderSVG(ctx, sink.ToDOT(doc, sink.DOTOptions{Detailed: opts.Detailed}))
	default:
		return nil, ValidateFormat(format)
	}
}

// Extension returns the file extension written for a format.
func Extension(format string) string {
	return "." + format
}
