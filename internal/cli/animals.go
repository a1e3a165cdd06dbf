package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/classdiagram/pkg/animals"
)

// animalsCommand creates the command that demonstrates the animal library.
func (c *CLI) animalsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "animals",
		Short: "Introduce the animals of the built-in library",
		Long: `Introduce the animals of the built-in library.

Each animal of the demonstration herd reports its country, whether it hides
from other animals, its classification, its favorite food and its greeting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo("Animal library demonstration")
			if err := animals.Greet(cmd.OutOrStdout(), animals.Herd()...); err != nil {
				return err
			}
			printNewline()
			printNextStep("Diagram these types", "classdiagram generate")
			return nil
		},
	}
}
