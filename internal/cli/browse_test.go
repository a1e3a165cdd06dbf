package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/classdiagram/pkg/animals"
	"github.com/matzehuels/classdiagram/pkg/diagram"
)

func browserDocument(t *testing.T) *diagram.Document {
	t.Helper()
	doc, err := diagram.Build(animals.Universe(), diagram.BuildOptions{Namespace: animals.Namespace})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func TestTypeBrowserNavigation(t *testing.T) {
	doc := browserDocument(t)
	var m tea.Model = NewTypeBrowserModel(doc)

	m = press(m, "up")
	if got := m.(TypeBrowserModel).Cursor; got != 0 {
		t.Errorf("cursor after up at top = %d, want 0", got)
	}

	m = press(m, "down", "j")
	if got := m.(TypeBrowserModel).Cursor; got != 2 {
		t.Errorf("cursor = %d, want 2", got)
	}

	m = press(m, "G")
	if got := m.(TypeBrowserModel).Cursor; got != len(doc.Types)-1 {
		t.Errorf("cursor after G = %d, want %d", got, len(doc.Types)-1)
	}
	m = press(m, "down")
	if got := m.(TypeBrowserModel).Cursor; got != len(doc.Types)-1 {
		t.Errorf("cursor moved past the end: %d", got)
	}

	m = press(m, "g")
	if got := m.(TypeBrowserModel).Cursor; got != 0 {
		t.Errorf("cursor after g = %d, want 0", got)
	}
}

func TestTypeBrowserScrolls(t *testing.T) {
	doc := browserDocument(t)
	var m tea.Model = NewTypeBrowserModel(doc)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})

	model := m.(TypeBrowserModel)
	if model.Height != 5 {
		t.Fatalf("Height = %d, want 5", model.Height)
	}

	m = press(m, "G")
	model = m.(TypeBrowserModel)
	if model.Offset != len(doc.Types)-model.Height {
		t.Errorf("Offset = %d, want %d", model.Offset, len(doc.Types)-model.Height)
	}
}

func TestTypeBrowserQuit(t *testing.T) {
	m := NewTypeBrowserModel(browserDocument(t))
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should return a quit command")
	}
}

func TestTypeBrowserView(t *testing.T) {
	doc := browserDocument(t)
	m := NewTypeBrowserModel(doc)

	view := m.View()
	for _, want := range []string{"AnimalLibrary", "▸ Animal", "[1/7]", "Properties", "SayHello() : void abstract"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestTypeDetailEnum(t *testing.T) {
	detail := typeDetail(diagram.TypeDescriptor{
		Kind:       diagram.KindEnum,
		Name:       "FavoriteFood",
		FullName:   "AnimalLibrary.FavoriteFood",
		EnumValues: []diagram.EnumValue{{Name: "Meat", Value: 0}, {Name: "Plants", Value: 1}},
	})
	if !strings.Contains(detail, "Meat = 0") || !strings.Contains(detail, "Plants = 1") {
		t.Errorf("detail = %q", detail)
	}
	if strings.Contains(detail, "extends") {
		t.Error("enum detail should not show a base type")
	}
}
