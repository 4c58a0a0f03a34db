package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SebassNoob/next-codemod/internal/registry"
)

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all available transforms",
		Long: `List every registered transform with its version and description,
newest first. The same catalog backs the interactive selection prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Load()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "TRANSFORM\tVERSION\tDESCRIPTION")
			for _, d := range reg.Choices() {
				fmt.Fprintf(w, "%s\tv%s\t%s\n", d.Name, d.Version, d.Title)
			}
			return w.Flush()
		},
	}
}
