package cli

import (
	"fmt"

	"github.com/AntonioJCosta/sacr/internal/adapters/aliasrender"
	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/handlers/ui"
	"github.com/spf13/cobra"
)

// NewListCommand creates the 'list' subcommand.
func NewListCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the aliases of the selected backend.",
		Long:  `Displays every alias and its commands, in alias name order.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListCmd(cmd, args, s)
		},
	}
	cmd.Flags().StringP("output", "o", string(aliasrender.FormatTable), "Output format: table, yaml or json.")
	return cmd
}

// runListCmd contains the core logic for the 'list' command.
func runListCmd(cmd *cobra.Command, _ []string, s *session) error {
	output, _ := cmd.Flags().GetString("output")
	format, err := aliasrender.ParseFormat(output)
	if err != nil {
		return &apperrors.UnknownArgumentError{Command: "list", Message: err.Error()}
	}

	b, err := s.selectBackend()
	if err != nil {
		return err
	}
	model, err := b.Load(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if model.Len() == 0 && format == aliasrender.FormatTable {
		fmt.Fprintln(out, ui.InfoColor(fmt.Sprintf("No aliases found in %s.", b.Path())))
		return nil
	}
	if format == aliasrender.FormatTable {
		fmt.Fprintln(out, ui.HeaderColor(fmt.Sprintf("Aliases in %s:", b.Path())))
	}

	if err := aliasrender.Render(out, format, model.Aliases()); err != nil {
		return apperrors.Infrastructure("list", err)
	}
	return nil
}
