package cli

import (
	"fmt"

	"github.com/AntonioJCosta/sacr/internal/handlers/ui"
	"github.com/spf13/cobra"
)

// NewCleanCommand creates the 'clean' subcommand.
func NewCleanCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <path>...",
		Short: "Remove files and directories.",
		Long:  `Removes each given file or directory tree. Paths that do not exist are ignored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCleanCmd(cmd, args, s)
		},
	}
	return cmd
}

func runCleanCmd(cmd *cobra.Command, args []string, s *session) error {
	removed, err := s.opts.Cleaner.Clean(cmd.Context(), args)
	out := cmd.OutOrStdout()
	for _, p := range removed {
		fmt.Fprintln(out, ui.InfoColor("removed"), ui.DetailColor(p))
	}
	return err
}
