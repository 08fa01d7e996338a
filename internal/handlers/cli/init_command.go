package cli

import (
	"fmt"

	"github.com/AntonioJCosta/sacr/internal/handlers/ui"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the 'init' subcommand.
func NewInitCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample config for the selected backend.",
		Long: `Writes a sample sacr.config with a single 'hello' alias. An existing file is
kept unless --force is given. The package backend only prints how to create a package.json.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitCmd(cmd, args, s)
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing config file.")
	return cmd
}

func runInitCmd(cmd *cobra.Command, args []string, s *session) error {
	force, _ := cmd.Flags().GetBool("force")

	b, err := s.selectBackend()
	if err != nil {
		return err
	}

	result, err := b.Scaffold(cmd.Context(), args, force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Created {
		fmt.Fprintln(out, ui.SuccessColor(result.Message))
	} else {
		fmt.Fprintln(out, ui.WarningColor(result.Message))
	}
	return nil
}
