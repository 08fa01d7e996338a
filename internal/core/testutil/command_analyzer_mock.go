package testutil

import (
	"strings"

	"github.com/AntonioJCosta/sacr/internal/core/domain/command"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
)

// MockCommandAnalyzer is a mock implementation of ports.CommandAnalyzer.
type MockCommandAnalyzer struct {
	// AnalyzeFunc allows you to set a custom function for the Analyze method.
	AnalyzeFunc func(commandStr string) (command.Plan, error)
	// AnalyzeCalls keeps track of the arguments passed to Analyze.
	AnalyzeCalls []string
}

// NewMockCommandAnalyzer creates a new MockCommandAnalyzer.
func NewMockCommandAnalyzer() *MockCommandAnalyzer {
	return &MockCommandAnalyzer{
		AnalyzeCalls: make([]string, 0),
	}
}

// Analyze implements the ports.CommandAnalyzer interface.
// Without AnalyzeFunc it splits commandStr on whitespace.
func (m *MockCommandAnalyzer) Analyze(commandStr string) (command.Plan, error) {
	m.AnalyzeCalls = append(m.AnalyzeCalls, commandStr)
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(commandStr)
	}
	return command.Plan{Original: commandStr, Argv: strings.Fields(commandStr)}, nil
}

// Ensure MockCommandAnalyzer satisfies the CommandAnalyzer interface.
var _ ports.CommandAnalyzer = (*MockCommandAnalyzer)(nil)
