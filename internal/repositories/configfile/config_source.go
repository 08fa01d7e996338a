/*
Package configfile reads aliases from the INI-style sacr.config file.

The [scripts] section maps alias names to JSON values: a single string for
one command or an array of strings for several.

	[scripts]
	hello = "echo hello"
	ci    = ["go vet ./...", "go test ./..."]
*/
package configfile

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

// ConfigSource provides access to a sacr.config file.
type ConfigSource struct {
	path string
}

// NewConfigSource creates a ConfigSource bound to path.
func NewConfigSource(path string) ports.Backend {
	return &ConfigSource{path: path}
}

// Path implements the ports.ConfigSource interface.
func (s *ConfigSource) Path() string { return s.path }

// Kind implements the ports.ConfigSource interface.
func (s *ConfigSource) Kind() backend.Kind { return backend.KindConfig }

// loadOptions keeps values byte-for-byte so they can be decoded as JSON.
// Repeated keys are kept as shadows so duplicates can be reported.
func loadOptions() ini.LoadOptions {
	return ini.LoadOptions{
		KeyValueDelimiters:         "=",
		IgnoreInlineComment:        true,
		IgnoreContinuation:         true,
		PreserveSurroundedQuote:    true,
		AllowPythonMultilineValues: true,
		AllowShadows:               true,
		AllowDuplicateShadowValues: true,
	}
}

/*
Load implements the ports.ConfigSource interface.

A file that does not exist yields an empty model. A file that exists but
cannot be parsed, or whose [scripts] values are not valid JSON command
values, yields a ParseError.
*/
func (s *ConfigSource) Load(ctx context.Context) (alias.Model, error) {
	logger := ctxlog.Logger(ctx).WithField("path", s.path)
	fs := FsFactory()

	info, err := fs.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("config file does not exist, no aliases loaded")
		return alias.Empty(), nil
	}
	if err != nil {
		return alias.Model{}, apperrors.Infrastructure("read config", err)
	}
	if info.IsDir() {
		logger.Warn("config path is a directory, no aliases loaded")
		return alias.Empty(), nil
	}

	data, err := afero.ReadFile(fs, s.path)
	if err != nil {
		return alias.Model{}, apperrors.Infrastructure("read config", err)
	}

	cfg, err := ini.LoadSources(loadOptions(), data)
	if err != nil {
		return alias.Model{}, &apperrors.ParseError{Source: s.path, Err: err}
	}

	scripts, err := s.decodeScripts(cfg, logger)
	if err != nil {
		return alias.Model{}, err
	}

	model, err := alias.NewModel(scripts)
	if err != nil {
		return alias.Model{}, &apperrors.ParseError{Source: s.path, Err: err}
	}

	logger.WithField("aliases", model.Len()).Debug("config loaded")
	return model, nil
}

func (s *ConfigSource) decodeScripts(cfg *ini.File, logger *logrus.Entry) (map[string][]string, error) {
	scripts := make(map[string][]string)

	for _, section := range cfg.Sections() {
		name := section.Name()
		if name == alias.ScriptsSection {
			continue
		}
		if name == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		logger.WithField("section", name).Debug("ignoring section")
	}

	section, err := cfg.GetSection(alias.ScriptsSection)
	if err != nil {
		return scripts, nil
	}

	for _, key := range section.Keys() {
		raw := key.Value()
		if n := len(key.ValueWithShadows()); n > 1 {
			return nil, &apperrors.ParseError{
				Source: s.path,
				Key:    key.Name(),
				Raw:    raw,
				Err:    fmt.Errorf("alias is defined %d times", n),
			}
		}
		value, err := alias.Decode(raw)
		if err != nil {
			return nil, &apperrors.ParseError{
				Source: s.path,
				Key:    key.Name(),
				Raw:    raw,
				Err:    fmt.Errorf("value is not JSON parsable as a command or command list: %w", err),
			}
		}
		scripts[key.Name()] = value.Commands()
	}

	return scripts, nil
}
