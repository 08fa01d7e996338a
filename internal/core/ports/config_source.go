package ports

import (
	"context"

	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
)

/*
ConfigSource defines the contract for loading aliases from one backend file.
This is a driven port, implemented by a repository that understands one file format.
Load never writes to the file.
*/
type ConfigSource interface {
	Load(ctx context.Context) (alias.Model, error)
	// Path returns the resolved file the source reads.
	Path() string
	Kind() backend.Kind
}

// ScaffoldResult reports what Scaffold did.
type ScaffoldResult struct {
	Created bool
	Path    string
	Message string
}

// Scaffolder creates a starter configuration file for a backend.
type Scaffolder interface {
	// Scaffold writes a sample configuration. An existing file is only replaced when force is set.
	Scaffold(ctx context.Context, args []string, force bool) (ScaffoldResult, error)
}

// Backend is a ConfigSource that can also bootstrap its own file.
type Backend interface {
	ConfigSource
	Scaffolder
}
