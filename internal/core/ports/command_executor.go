package ports

import (
	"context"
	"io"

	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/command"
)

// CommandExecutor runs the commands of one alias in order, stopping at the first failure.
type CommandExecutor interface {
	Run(ctx context.Context, model alias.Model, req alias.Request) error
}

// ProcessRunner starts a single planned command and waits for it.
type ProcessRunner interface {
	// Run returns the exit code of the process. It returns an error only when the
	// process could not be started, was killed on ctx expiry, or could not be waited on.
	Run(ctx context.Context, plan command.Plan, stdout, stderr io.Writer) (exitCode int, err error)
}

/*
CommandAnalyzer defines the contract for deciding how a command string is executed.
This is a driven port, representing a domain capability.
*/
type CommandAnalyzer interface {
	Analyze(commandStr string) (command.Plan, error)
}
