package backendselect

import (
	"fmt"
	"os"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/AntonioJCosta/sacr/internal/repositories/configfile"
	"github.com/AntonioJCosta/sacr/internal/repositories/manifest"
)

// Selector implements the BackendSelector interface over the built-in backends.
type Selector struct {
	defaults backend.Defaults
	// Getwd supplies the base directory when no path is given.
	Getwd func() (string, error)
}

// NewSelector creates a new Selector using defaults for file names.
func NewSelector(defaults backend.Defaults) *Selector {
	return &Selector{defaults: defaults, Getwd: os.Getwd}
}

var _ ports.BackendSelector = (*Selector)(nil)

// Select implements the ports.BackendSelector interface.
func (s *Selector) Select(kind, file, path string) (ports.Backend, error) {
	k, ok := backend.ParseKind(kind)
	if kind == "" {
		k, ok = s.defaults.Kind, true
	}
	if !ok {
		return nil, &apperrors.UnknownBackendError{Requested: kind, Supported: supported()}
	}

	desc, err := s.Describe(k, file, path)
	if err != nil {
		return nil, err
	}

	switch desc.Kind {
	case backend.KindPackage:
		return manifest.NewSource(desc.Resolve()), nil
	default:
		return configfile.NewConfigSource(desc.Resolve()), nil
	}
}

// Describe fills in the default file name and base directory for kind.
func (s *Selector) Describe(kind backend.Kind, file, path string) (backend.Descriptor, error) {
	if file == "" {
		file = s.defaults.FileFor(kind)
	}
	if path == "" {
		wd, err := s.Getwd()
		if err != nil {
			return backend.Descriptor{}, apperrors.Infrastructure("resolve working directory", fmt.Errorf("getting working directory: %w", err))
		}
		path = wd
	}
	return backend.Descriptor{Kind: kind, File: file, Path: path}, nil
}

func supported() []string {
	kinds := backend.SupportedKinds()
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}
