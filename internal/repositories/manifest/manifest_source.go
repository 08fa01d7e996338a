/*
Package manifest reads aliases from the scripts object of an npm-style package.json.

Every script is a single command string. Fields other than scripts are ignored.
*/
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ScriptsField is the manifest field that holds aliases.
const ScriptsField = "scripts"

// Guidance is printed by Scaffold; package.json files are created by npm itself.
const Guidance = "Use: npm init\nFor additional details see: https://docs.npmjs.com/cli/v8/using-npm/scripts"

var errNotString = errors.New("script value must be a string")

type document struct {
	Scripts map[string]json.RawMessage `json:"scripts"`
}

// Source provides access to a package.json manifest.
type Source struct {
	path string
}

// NewSource creates a Source bound to path.
func NewSource(path string) ports.Backend {
	return &Source{path: path}
}

// Path implements the ports.ConfigSource interface.
func (s *Source) Path() string { return s.path }

// Kind implements the ports.ConfigSource interface.
func (s *Source) Kind() backend.Kind { return backend.KindPackage }

// Load implements the ports.ConfigSource interface.
// Unlike the generic config, a missing manifest is an error.
func (s *Source) Load(ctx context.Context) (alias.Model, error) {
	data, err := afero.ReadFile(FsFactory(), s.path)
	if err != nil {
		return alias.Model{}, apperrors.Infrastructure("load manifest", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return alias.Model{}, &apperrors.ParseError{Source: s.path, Err: err}
	}

	scripts := make(map[string][]string, len(doc.Scripts))
	for name, raw := range doc.Scripts {
		var cmd string
		if err := json.Unmarshal(raw, &cmd); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return alias.Model{}, &apperrors.ParseError{
				Source: s.path,
				Key:    name,
				Raw:    string(raw),
				Err:    errNotString,
			}
		}
		scripts[name] = []string{cmd}
	}

	model, err := alias.NewModel(scripts)
	if err != nil {
		return alias.Model{}, &apperrors.ParseError{Source: s.path, Err: fmt.Errorf("invalid %s: %w", ScriptsField, err)}
	}

	ctxlog.Debug(ctx, "manifest loaded", logrus.Fields{"path": s.path, "aliases": model.Len()})
	return model, nil
}

// Scaffold implements the ports.Scaffolder interface. It never writes a file.
func (s *Source) Scaffold(_ context.Context, args []string, _ bool) (ports.ScaffoldResult, error) {
	if len(args) > 0 {
		return ports.ScaffoldResult{}, &apperrors.UnknownArgumentError{
			Command: "init",
			Message: "no arguments to init are supported",
		}
	}
	return ports.ScaffoldResult{Path: s.path, Message: Guidance}, nil
}
