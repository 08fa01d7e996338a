package oscommand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/AntonioJCosta/sacr/internal/core/domain/command"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/sirupsen/logrus"
)

// waitDelay bounds how long Wait keeps draining output after the process was killed.
const waitDelay = 2 * time.Second

var (
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrProcessKilled is returned when the process was killed because its context ended.
	ErrProcessKilled = errors.New("process killed")
)

// OSProcessRunner implements the ProcessRunner interface using the operating system.
type OSProcessRunner struct {
	// Dir is the working directory of started processes; empty means the current one.
	Dir string
}

// NewOSProcessRunner creates a new OSProcessRunner.
func NewOSProcessRunner() ports.ProcessRunner {
	return &OSProcessRunner{}
}

/*
Run starts plan.Argv and waits for it to exit.

Output goes straight to stdout and stderr while the process runs. When the
writers are files the child inherits them; otherwise it is copied in bounded
chunks as it arrives.

When ctx ends first the whole process group is killed and the returned error
wraps both ErrProcessKilled and ctx.Err().
*/
func (r *OSProcessRunner) Run(ctx context.Context, plan command.Plan, stdout, stderr io.Writer) (int, error) {
	logger := ctxlog.Logger(ctx).WithField("command", plan.Original)

	if len(plan.Argv) == 0 {
		return -1, fmt.Errorf("%w: empty argv", ErrCouldNotStartProcess)
	}

	cmd := exec.CommandContext(ctx, plan.Argv[0], plan.Argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}

	logger.WithFields(logrus.Fields{"program": plan.Program(), "argv": plan.Argv, "shell": plan.UsesShell}).Debug("starting process")

	if err := cmd.Start(); err != nil {
		return -1, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.WithField("pid", cmd.Process.Pid).Debug("process started")

	err := cmd.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.WithField("reason", ctxErr).Info("process killed")
		return -1, errors.Join(ErrProcessKilled, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.WithField("exitCode", exitErr.ExitCode()).Debug("process finished")
		return exitErr.ExitCode(), nil
	}
	if err != nil {
		// Output copy failures and ErrWaitDelay land here.
		return -1, fmt.Errorf("waiting for process: %w", err)
	}

	logger.WithField("exitCode", 0).Debug("process finished")
	return 0, nil
}
