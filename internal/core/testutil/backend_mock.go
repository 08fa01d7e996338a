package testutil

import (
	"context"

	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
)

// MockBackend is a mock implementation of ports.Backend.
type MockBackend struct {
	LoadFunc     func(ctx context.Context) (alias.Model, error)
	ScaffoldFunc func(ctx context.Context, args []string, force bool) (ports.ScaffoldResult, error)
	PathValue    string
	KindValue    backend.Kind
}

// NewMockBackend returns a MockBackend whose Load yields scripts.
func NewMockBackend(scripts map[string][]string) *MockBackend {
	return &MockBackend{
		LoadFunc: func(context.Context) (alias.Model, error) {
			return alias.NewModel(scripts)
		},
		PathValue: "/work/sacr.config",
		KindValue: backend.KindConfig,
	}
}

// Load calls the mock LoadFunc, or returns an empty model.
func (m *MockBackend) Load(ctx context.Context) (alias.Model, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	return alias.Empty(), nil
}

// Scaffold calls the mock ScaffoldFunc.
func (m *MockBackend) Scaffold(ctx context.Context, args []string, force bool) (ports.ScaffoldResult, error) {
	if m.ScaffoldFunc != nil {
		return m.ScaffoldFunc(ctx, args, force)
	}
	return ports.ScaffoldResult{Path: m.PathValue}, nil
}

func (m *MockBackend) Path() string { return m.PathValue }
func (m *MockBackend) Kind() backend.Kind { return m.KindValue }

var _ ports.Backend = (*MockBackend)(nil)

// MockBackendSelector is a mock implementation of ports.BackendSelector.
type MockBackendSelector struct {
	SelectFunc func(kind, file, path string) (ports.Backend, error)
	// Calls records the arguments of every Select call as [kind, file, path].
	Calls      [][3]string
}

// Select calls the mock SelectFunc.
func (m *MockBackendSelector) Select(kind, file, path string) (ports.Backend, error) {
	m.Calls = append(m.Calls, [3]string{kind, file, path})
	if m.SelectFunc != nil {
		return m.SelectFunc(kind, file, path)
	}
	return NewMockBackend(nil), nil
}

var _ ports.BackendSelector = (*MockBackendSelector)(nil)
