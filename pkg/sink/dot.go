package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/classdiagram/pkg/diagram"
)

// DOTOptions configures class diagram rendering.
type DOTOptions struct {
	// Detailed adds property, method and enum value compartments to each
	// node. When false, only the type name is shown.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT format. Every type becomes a
// record node; a type whose base type is also part of the document gets an
// inheritance edge to it. The result can be rendered with [RenderSVG].
//
// Abstract classes are drawn dashed, enums and fallback types get a
// stereotype line above their name.
func ToDOT(doc *diagram.Document, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=filled, fillcolor=white, fontname=\"Helvetica\", fontsize=12];\n")
	buf.WriteString("  edge [arrowhead=empty];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	present := make(map[string]bool, len(doc.Types))
	for _, t := range doc.Types {
		present[t.FullName] = true
	}

	for _, t := range doc.Types {
		attrs := []string{"label=\"" + fmtLabel(t, opts.Detailed) + "\""}
		if t.Kind == diagram.KindAbstractClass {
			attrs = append(attrs, "style=\"filled,dashed\"")
		}
		if t.Comment != nil {
			attrs = append(attrs, "tooltip="+strconv.Quote(*t.Comment))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", t.FullName, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, t := range doc.Types {
		if t.BaseType != nil && present[t.BaseType.FullName] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", t.FullName, t.BaseType.FullName)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

var stereotypes = map[diagram.Kind]string{
	diagram.KindEnum:          "«enumeration»",
	diagram.KindAbstractClass: "«abstract»",
	diagram.KindType:          "«type»",
}

func fmtLabel(t diagram.TypeDescriptor, detailed bool) string {
	header := escapeRecord(t.Name)
	if s, ok := stereotypes[t.Kind]; ok {
		header = s + "\\n" + header
	}
	if !detailed {
		return "{" + header + "}"
	}

	sections := []string{header}
	if t.Kind == diagram.KindEnum {
		var lines []string
		for _, v := range t.EnumValues {
			lines = append(lines, fmt.Sprintf("%s = %d", v.Name, v.Value))
		}
		sections = append(sections, leftLines(lines))
	}
	if t.Kind.IsClass() {
		var props, methods []string
		for _, p := range t.Properties {
			props = append(props, fmt.Sprintf("+ %s : %s \\{%s\\}", escapeRecord(p.Name), escapeRecord(p.TypeName), escapeRecord(p.Access)))
		}
		for _, m := range t.Methods {
			params := make([]string, len(m.Parameters))
			for i, p := range m.Parameters {
				params[i] = p.Name + " : " + p.TypeName
			}
			line := fmt.Sprintf("+ %s(%s) : %s", m.Name, strings.Join(params, ", "), m.ReturnTypeName)
			switch {
			case m.IsAbstract:
				line += " «abstract»"
			case m.IsVirtual:
				line += " «virtual»"
			}
			methods = append(methods, escapeRecord(line))
		}
		sections = append(sections, leftLines(props), leftLines(methods))
	}
	return "{" + strings.Join(sections, "|") + "}"
}

// leftLines joins lines as left-justified record text.
func leftLines(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteString("\\l")
	}
	return sb.String()
}

// escapeRecord escapes characters with a meaning in record labels and in
// quoted DOT strings. Text already escaped by the caller must not be passed
// again.
func escapeRecord(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '{', '}', '|', '<', '>', '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag so the drawing scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
