package testutil

import (
	"context"
	"errors"
	"io"

	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/command"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
)

// MockCommandExecutor is a mock implementation of ports.CommandExecutor.
type MockCommandExecutor struct {
	RunFunc  func(ctx context.Context, model alias.Model, req alias.Request) error
	RunCalls []alias.Request
}

// Run calls the mock RunFunc.
func (m *MockCommandExecutor) Run(ctx context.Context, model alias.Model, req alias.Request) error {
	m.RunCalls = append(m.RunCalls, req)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, model, req)
	}
	return errors.New("MockCommandExecutor.RunFunc not implemented")
}

var _ ports.CommandExecutor = (*MockCommandExecutor)(nil)

// MockProcessRunner is a mock implementation of ports.ProcessRunner.
type MockProcessRunner struct {
	RunFunc  func(ctx context.Context, plan command.Plan, stdout, stderr io.Writer) (int, error)
	// RunCalls records the plans in the order they were started.
	RunCalls []command.Plan
}

// Run calls the mock RunFunc. Without it every process exits 0.
func (m *MockProcessRunner) Run(ctx context.Context, plan command.Plan, stdout, stderr io.Writer) (int, error) {
	m.RunCalls = append(m.RunCalls, plan)
	if m.RunFunc != nil {
		return m.RunFunc(ctx, plan, stdout, stderr)
	}
	return 0, nil
}

// Originals returns the original command string of every recorded call.
func (m *MockProcessRunner) Originals() []string {
	out := make([]string, 0, len(m.RunCalls))
	for _, p := range m.RunCalls {
		out = append(out, p.Original)
	}
	return out
}

var _ ports.ProcessRunner = (*MockProcessRunner)(nil)
