package cli

import (
	"fmt"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the 'run' subcommand.
func NewRunCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <alias>",
		Short: "Run the commands of an alias in order.",
		Long: `Runs every command of the alias one after another and stops at the first one
that fails or exceeds the timeout. The exit code of a failing command is passed through.`,
		Args: exactlyOneArg("run"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunCmd(cmd, args, s)
		},
	}
	return cmd
}

func runRunCmd(cmd *cobra.Command, args []string, s *session) error {
	ctx := cmd.Context()

	b, err := s.selectBackend()
	if err != nil {
		return err
	}

	ctx = ctxlog.With(ctx, logrus.Fields{"backend": b.Kind().String(), "source": b.Path()})
	model, err := b.Load(ctx)
	if err != nil {
		return err
	}

	return s.opts.Executor.Run(ctx, model, alias.Request{Alias: args[0], Timeout: s.settings.Timeout})
}

func exactlyOneArg(command string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != 1 {
			return &apperrors.UnknownArgumentError{
				Command: command,
				Message: fmt.Sprintf("expected exactly 1 argument to %s, got %d", command, len(args)),
			}
		}
		return nil
	}
}
