package commandanalysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AntonioJCosta/sacr/internal/core/domain/command"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/mattn/go-shellwords"
)

// ErrEmptyCommand is returned when a command string holds nothing to run.
var ErrEmptyCommand = errors.New("command is empty")

// ShellAnalyzer decides whether a command runs as a plain argv or through the shell.
type ShellAnalyzer struct {
	// ShellPath returns the interpreter used for commands that need one.
	ShellPath func() string
}

// NewShellAnalyzer creates a new ShellAnalyzer using the user's shell.
func NewShellAnalyzer() ports.CommandAnalyzer {
	return &ShellAnalyzer{ShellPath: DefaultShell}
}

/*
Analyze turns commandStr into a command.Plan.

Commands that use shell syntax (pipes, redirection, expansion, globbing, lists,
comments, negation), a leading NAME=value assignment or a shell builtin are
handed to the shell verbatim. Everything else is split into words with
shell quoting rules and started directly, without a shell.
*/
func (a *ShellAnalyzer) Analyze(commandStr string) (command.Plan, error) {
	trimmed := strings.TrimSpace(commandStr)
	if trimmed == "" {
		return command.Plan{}, ErrEmptyCommand
	}

	if needsShell(trimmed) {
		return a.shellPlan(commandStr), nil
	}

	args, err := shellwords.Parse(trimmed)
	if err != nil {
		return command.Plan{}, fmt.Errorf("splitting command %q: %w", commandStr, err)
	}
	if len(args) == 0 {
		return command.Plan{}, ErrEmptyCommand
	}
	if wordsNeedShell(args) {
		return a.shellPlan(commandStr), nil
	}

	return command.Plan{
		Original: commandStr,
		Argv:     args,
	}, nil
}

// shellPlan hands commandStr to the shell unchanged.
func (a *ShellAnalyzer) shellPlan(commandStr string) command.Plan {
	shell := binSh
	if a.ShellPath != nil {
		shell = a.ShellPath()
	}
	return command.Plan{
		Original:  commandStr,
		Argv:      []string{shell, shellSwitch(), commandStr},
		UsesShell: true,
	}
}
