package sink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/classdiagram/pkg/diagram"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(testDocument(), DOTOptions{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Error("ToDOT() should start with 'digraph G {'")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("ToDOT() should end with '}'")
	}

	expected := []string{
		"shape=record",
		"arrowhead=empty",
		`"Shop.Entity" [label="{«abstract»\nEntity}", style="filled,dashed"];`,
		`"Shop.Order" [label="{Order}", tooltip="Places goods & pays."];`,
		`"Shop.Priority" [label="{«enumeration»\nPriority}"];`,
		`"Shop.Order" -> "Shop.Entity";`,
	}
	for _, exp := range expected {
		if !strings.Contains(dot, exp) {
			t.Errorf("ToDOT() missing %q\n%s", exp, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testDocument(), DOTOptions{Detailed: true})

	expected := []string{
		`+ Lines : List\<Dictionary\<String, Int32\>\> \{read-only\}\l`,
		`+ Total : Decimal \{public get; protected set;\}\l`,
		`+ Add(sku : String, qty : Int32) : void\l`,
		`+ Close() : Boolean «virtual»\l`,
		`Low = 5\lMedium = 1\lHigh = 10\l`,
	}
	for _, exp := range expected {
		if !strings.Contains(dot, exp) {
			t.Errorf("ToDOT() missing %q\n%s", exp, dot)
		}
	}
}

func TestToDOTSkipsForeignBases(t *testing.T) {
	doc := &diagram.Document{Types: []diagram.TypeDescriptor{
		{Kind: diagram.KindClass, Name: "Cow", FullName: "Farm.Cow", BaseType: &diagram.TypeRef{Name: "Animal", FullName: "Zoo.Animal"}},
	}}
	if dot := ToDOT(doc, DOTOptions{}); strings.Contains(dot, "->") {
		t.Errorf("edge to a type outside the document:\n%s", dot)
	}
}

func TestEscapeRecord(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"List<T>", `List\<T\>`},
		{`a|b{c}"d\`, `a\|b\{c\}\"d\\`},
	}
	for _, tt := range tests {
		if got := escapeRecord(tt.in); got != tt.want {
			t.Errorf("escapeRecord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering is slow")
	}
	dot := ToDOT(testDocument(), DOTOptions{Detailed: true})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() should return SVG markup")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10.00 20.00" width="10" height="20"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("no viewBox should be left untouched, got %s", got)
	}
}
