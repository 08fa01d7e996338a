/*
Package aliasrun resolves an alias and runs its commands one after another.

The first command that fails, times out or cannot be started ends the run;
the remaining commands are never started.
*/
package aliasrun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/command"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/sirupsen/logrus"
)

// Step describes one command of an alias about to start.
type Step struct {
	Alias   string
	Index   int // 1-based
	Total   int
	Command string
	Plan    command.Plan
}

// Option configures a Service.
type Option func(*Service)

// WithOutput sets where child output is streamed. Defaults to os.Stdout and os.Stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(s *Service) {
		s.stdout = stdout
		s.stderr = stderr
	}
}

// WithStartHook registers fn to be called right before each command starts.
func WithStartHook(fn func(Step)) Option {
	return func(s *Service) { s.onStart = fn }
}

// Service implements ports.CommandExecutor.
type Service struct {
	analyzer ports.CommandAnalyzer
	runner   ports.ProcessRunner
	stdout   io.Writer
	stderr   io.Writer
	onStart  func(Step)
}

// NewService creates a new alias run service.
// It panics if the analyzer or runner is nil.
func NewService(analyzer ports.CommandAnalyzer, runner ports.ProcessRunner, opts ...Option) *Service {
	if analyzer == nil {
		panic("analyzer cannot be nil")
	}
	if runner == nil {
		panic("runner cannot be nil")
	}
	s := &Service{
		analyzer: analyzer,
		runner:   runner,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.CommandExecutor = (*Service)(nil)

// Run implements the ports.CommandExecutor interface.
func (s *Service) Run(ctx context.Context, model alias.Model, req alias.Request) error {
	commands, ok := model.Commands(req.Alias)
	if !ok {
		return &apperrors.UnknownCommandError{Name: req.Alias, Section: alias.ScriptsSection}
	}

	ctx = ctxlog.With(ctx, logrus.Fields{"alias": req.Alias})
	ctxlog.Debug(ctx, "running alias", logrus.Fields{"commands": len(commands), "timeout": req.Timeout.String()})

	for i, cmdStr := range commands {
		step := Step{Alias: req.Alias, Index: i + 1, Total: len(commands), Command: cmdStr}
		if err := s.runStep(ctx, step, req.Timeout); err != nil {
			ctxlog.Info(ctx, "alias stopped", apperrors.Fields(err), logrus.Fields{"step": step.Index, "error": err.Error()})
			return err
		}
	}

	ctxlog.Debug(ctx, "alias finished")
	return nil
}

func (s *Service) runStep(ctx context.Context, step Step, timeout time.Duration) error {
	plan, err := s.analyzer.Analyze(step.Command)
	if err != nil {
		return &apperrors.ParseError{Key: step.Alias, Raw: step.Command, Err: err}
	}
	step.Plan = plan

	if s.onStart != nil {
		s.onStart(step)
	}

	runCtx, cancel := withOptionalTimeout(ctx, timeout)
	defer cancel()

	exitCode, err := s.runner.Run(runCtx, plan, s.stdout, s.stderr)
	if err != nil {
		return classifyRunError(ctx, runCtx, step.Command, timeout, err)
	}
	if exitCode != 0 {
		return &apperrors.SubprocessFailureError{Command: step.Command, ExitCode: exitCode}
	}
	return nil
}

// withOptionalTimeout leaves ctx unbounded when timeout is zero.
func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// classifyRunError tells an interrupt of the whole run apart from this command's own deadline.
func classifyRunError(parent, runCtx context.Context, cmdStr string, timeout time.Duration, err error) error {
	switch {
	case parent.Err() != nil:
		return &apperrors.InfrastructureError{
			Op:  "run",
			Err: fmt.Errorf("command %q interrupted: %w", cmdStr, context.Cause(parent)),
		}
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return &apperrors.SubprocessTimeoutError{Command: cmdStr, Timeout: timeout}
	default:
		return apperrors.Infrastructure("start command", fmt.Errorf("command %q: %w", cmdStr, err))
	}
}
