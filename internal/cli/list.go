package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/classdiagram/pkg/diagram"
	"github.com/matzehuels/classdiagram/pkg/pipeline"
)

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var flags diagramFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the types of a namespace",
		Long: `List the types of a namespace in the order they appear in the class
diagram, with their kind, base type and member counts.`,
		Args: cobra.NoArgs,
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
			return printTypeTable(cmd.OutOrStdout(), doc)
		},
	}

	flags.register(cmd)
	return cmd
}

// buildDocument loads the universe selected by flags and builds its
// document without rendering it.
func (c *CLI) buildDocument(ctx context.Context, flags diagramFlags) (*diagram.Document, error) {
	opts := pipeline.Options{
		Universe:        flags.universe,
		Namespace:       flags.namespace,
		AssemblyName:    flags.assembly,
		AssemblyVersion: flags.version,
		Logger:          c.Logger,
	}
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	defer runner.Close()

	u, err := runner.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	doc, err := runner.Build(ctx, u, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return doc, nil
}

// typeRows returns one table row per described type.
func typeRows(doc *diagram.Document) [][]string {
	rows := make([][]string, 0, len(doc.Types))
	for _, t := range doc.Types {
		base := "—"
		if t.BaseType != nil {
			base = t.BaseType.Name
		}
		rows = append(rows, []string{
			t.Name,
			string(t.Kind),
			base,
			countCell(len(t.Properties)),
			countCell(len(t.Methods)),
			countCell(len(t.EnumValues)),
		})
	}
	return rows
}

func countCell(n int) string {
	if n == 0 {
		return "—"
	}
	return strconv.Itoa(n)
}

// printTypeTable writes the type table of doc to w.
func printTypeTable(w io.Writer, doc *diagram.Document) error {
	header := fmt.Sprintf("%s %s", StyleTitle.Render(doc.AssemblyName), StyleDim.Render(doc.AssemblyVersion))
	if len(doc.Types) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", header, StyleDim.Render("no types in this namespace"))
		return err
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	numberStyle := lipgloss.NewStyle().Foreground(colorWhite).Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Type", "Kind", "Base", "Props", "Methods", "Values").
		Rows(typeRows(doc)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 0, 1:
				return kindStyles[doc.Types[row].Kind].Padding(0, 1)
			case 2:
				return StyleDim.Padding(0, 1)
			default:
				return numberStyle.Padding(0, 1)
			}
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", header, t.Render())
	return err
}
