package configfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// SampleScripts is written by Scaffold.
var SampleScripts = map[string][]string{
	"hello": {"echo hello"},
}

// Scaffold implements the ports.Scaffolder interface.
// An existing file is left untouched unless force is set.
func (s *ConfigSource) Scaffold(ctx context.Context, args []string, force bool) (ports.ScaffoldResult, error) {
	if len(args) > 0 {
		return ports.ScaffoldResult{}, &apperrors.UnknownArgumentError{
			Command: "init",
			Message: "no positional arguments to init are supported, use --force to overwrite",
		}
	}

	fs := FsFactory()
	_, err := fs.Stat(s.path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return ports.ScaffoldResult{}, apperrors.Infrastructure("init config", err)
	}

	if exists && !force {
		return ports.ScaffoldResult{
			Path:    s.path,
			Message: fmt.Sprintf("A configuration file already exists at %s. To over-ride use `--force` flag.", s.path),
		}, nil
	}

	model, err := alias.NewModel(SampleScripts)
	if err != nil {
		return ports.ScaffoldResult{}, err
	}
	content, err := Encode(model)
	if err != nil {
		return ports.ScaffoldResult{}, apperrors.Infrastructure("init config", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return ports.ScaffoldResult{}, apperrors.Infrastructure("init config", err)
		}
	}
	if err := afero.WriteFile(fs, s.path, content, 0o644); err != nil {
		return ports.ScaffoldResult{}, apperrors.Infrastructure("init config", err)
	}

	ctxlog.Info(ctx, "sample config written", logrus.Fields{"path": s.path, "overwritten": exists})

	return ports.ScaffoldResult{
		Created: true,
		Path:    s.path,
		Message: fmt.Sprintf("Sample config created at: %s", s.path),
	}, nil
}

/*
Encode renders model as a sacr.config document. Aliases with one command
are written as a JSON string, the rest as a JSON array. Names that would
not read back as the same key are rejected.
*/
func Encode(model alias.Model) ([]byte, error) {
	cfg := ini.Empty(loadOptions())
	section, err := cfg.NewSection(alias.ScriptsSection)
	if err != nil {
		return nil, err
	}

	for _, name := range model.Names() {
		if err := checkKeyName(name); err != nil {
			return nil, err
		}
		commands, _ := model.Commands(name)
		var value any = commands
		if len(commands) == 1 {
			value = commands[0]
		}
		encoded, err := encodeJSON(value)
		if err != nil {
			return nil, fmt.Errorf("encoding alias %q: %w", name, err)
		}
		if _, err := section.NewKey(name, encoded); err != nil {
			return nil, fmt.Errorf("adding alias %q: %w", name, err)
		}
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// checkKeyName rejects names the INI reader would treat as a comment or a
// section header, or would trim.
func checkKeyName(name string) error {
	switch {
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("alias %q has surrounding whitespace", name)
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("alias %q contains a line break", name)
	case strings.ContainsAny(name[:1], "#;["):
		return fmt.Errorf("alias %q starts with %q", name, name[:1])
	}
	return nil
}

func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
