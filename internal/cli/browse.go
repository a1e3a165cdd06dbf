package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/classdiagram/pkg/diagram"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	detailBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags diagramFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the types of a namespace interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig(cmd)
			if err != nil {
				return err
			}
			flags.merge(cmd, cfg)

			doc, err := c.buildDocument(cmd.Context(), flags)
			if err != nil {
				return err
			}
			if len(doc.Types) == 0 {
				printWarning("No types in namespace %q", flags.namespace)
				return nil
			}

			p := tea.NewProgram(NewTypeBrowserModel(doc), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// TypeBrowserModel - Interactive type browser
// =============================================================================

// TypeBrowserModel is the bubbletea model of the browse command: a
// scrollable list of types next to the details of the selected one.
type TypeBrowserModel struct {
	Doc    *diagram.Document
	Cursor int
	Height int
	Offset int
}

// NewTypeBrowserModel creates a browser over the types of doc.
func NewTypeBrowserModel(doc *diagram.Document) TypeBrowserModel {
	return TypeBrowserModel{Doc: doc, Height: 15}
}

func (m TypeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m TypeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Doc.Types)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < n-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = max(n-1, 0)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}

	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m, nil
}

func (m TypeBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Doc.AssemblyName) + " " + listDimStyle.Render(m.Doc.AssemblyVersion))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  g/G first/last  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Doc.Types))
	var list strings.Builder
	for i := m.Offset; i < end; i++ {
		t := m.Doc.Types[i]
		line := fmt.Sprintf("  %-20s", t.Name)
		if i == m.Cursor {
			line = listSelectedStyle.Render(fmt.Sprintf("▸ %-20s", t.Name))
		} else if t.Kind == diagram.KindType {
			line = listDimStyle.Render(line)
		} else {
			line = listNormalStyle.Render(line)
		}
		list.WriteString(line + "\n")
	}
	list.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Doc.Types))))

	var detail string
	if m.Cursor < len(m.Doc.Types) {
		detail = detailBoxStyle.Render(typeDetail(m.Doc.Types[m.Cursor]))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", detail))
	return b.String()
}

// typeDetail renders the descriptor of one type as plain lines.
func typeDetail(t diagram.TypeDescriptor) string {
	var b strings.Builder

	b.WriteString(kindStyles[t.Kind].Bold(true).Render(t.Name))
	b.WriteString(" " + listDimStyle.Render(string(t.Kind)) + "\n")
	b.WriteString(listDimStyle.Render(t.FullName) + "\n")
	if t.BaseType != nil {
		b.WriteString("extends " + StyleHighlight.Render(t.BaseType.FullName) + "\n")
	}
	if t.Comment != nil {
		b.WriteString("\n" + StyleValue.Italic(true).Render(*t.Comment) + "\n")
	}

	if len(t.EnumValues) > 0 {
		b.WriteString("\n" + listDimStyle.Render("Values") + "\n")
		for _, v := range t.EnumValues {
			fmt.Fprintf(&b, "  %s = %d\n", v.Name, v.Value)
		}
	}
	if len(t.Properties) > 0 {
		b.WriteString("\n" + listDimStyle.Render("Properties") + "\n")
		for _, p := range t.Properties {
			fmt.Fprintf(&b, "  %s : %s %s\n", p.Name, p.TypeName, listDimStyle.Render("{"+p.Access+"}"))
		}
	}
	if len(t.Methods) > 0 {
		b.WriteString("\n" + listDimStyle.Render("Methods") + "\n")
		for _, m := range t.Methods {
			params := make([]string, len(m.Parameters))
			for i, p := range m.Parameters {
				params[i] = p.Name + " : " + p.TypeName
			}
			line := fmt.Sprintf("  %s(%s) : %s", m.Name, strings.Join(params, ", "), m.ReturnTypeName)
			switch {
			case m.IsAbstract:
				line += listDimStyle.Render(" abstract")
			case m.IsVirtual:
				line += listDimStyle.Render(" virtual")
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
