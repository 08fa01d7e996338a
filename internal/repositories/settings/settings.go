/*
Package settings loads sacr's own settings from the .sacrrc file, SACR_*
environment variables and command line flags.

Precedence, highest first: flag, environment, .sacrrc, defaults.

	[command]
	timeout = 30

	[config]
	type = config
	file = sacr.config
	path = .

	[log]
	level = info
	file  = /tmp/sacr.log
*/
package settings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// EnvPrefix is prepended to every environment variable, e.g. SACR_COMMAND_TIMEOUT.
const EnvPrefix = "SACR"

// Setting keys, as "section.key" in .sacrrc.
const (
	KeyTimeout       = "command.timeout"
	KeyBackend       = "config.type"
	KeyFile          = "config.file"
	KeyPath          = "config.path"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyLogMaxSize    = "log.max_size_mb"
	KeyLogMaxBackups = "log.max_backups"
	KeyLogMaxAge     = "log.max_age_days"
	KeyLogCompress   = "log.compress"
)

// Settings is the merged view of all setting sources.
type Settings struct {
	Backend string
	File    string
	Path    string
	Timeout time.Duration
	Log     ctxlog.Options
	// Source is the settings file that was read, empty when none was found.
	Source  string
}

// Loader merges setting sources with viper.
type Loader struct {
	v        *viper.Viper
	defaults backend.Defaults
}

// NewLoader creates a Loader whose lowest layer is defaults.
func NewLoader(defaults backend.Defaults) *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyBackend, defaults.Kind.String())
	v.SetDefault(KeyFile, "")
	v.SetDefault(KeyPath, "")
	v.SetDefault(KeyTimeout, formatSeconds(defaults.CommandTimeout))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, 10)
	v.SetDefault(KeyLogMaxBackups, 3)
	v.SetDefault(KeyLogMaxAge, 28)
	v.SetDefault(KeyLogCompress, false)

	return &Loader{v: v, defaults: defaults}
}

// BindFlag makes flag override key whenever it is set on the command line.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("binding %s: flag not defined", key)
	}
	return l.v.BindPFlag(key, flag)
}

/*
Load reads the settings file at path and returns the merged settings.

A missing file is not an error; a directory is skipped with a warning. An
empty path means the default settings file in the working directory.
*/
func (l *Loader) Load(ctx context.Context, path string) (Settings, error) {
	if path == "" {
		path = l.defaults.SettingsFile
	}

	source, err := l.mergeFile(ctx, path)
	if err != nil {
		return Settings{}, err
	}

	timeout, err := parseTimeout(l.v.GetString(KeyTimeout))
	if err != nil {
		return Settings{}, &apperrors.ParseError{
			Source:  source,
			Section: "command",
			Key:     "timeout",
			Raw:     l.v.GetString(KeyTimeout),
			Err:     err,
		}
	}

	return Settings{
		Backend: strings.TrimSpace(l.v.GetString(KeyBackend)),
		File:    l.v.GetString(KeyFile),
		Path:    l.v.GetString(KeyPath),
		Timeout: timeout,
		Log: ctxlog.Options{
			Level:      l.v.GetString(KeyLogLevel),
			File:       l.v.GetString(KeyLogFile),
			MaxSizeMB:  l.v.GetInt(KeyLogMaxSize),
			MaxBackups: l.v.GetInt(KeyLogMaxBackups),
			MaxAgeDays: l.v.GetInt(KeyLogMaxAge),
			Compress:   l.v.GetBool(KeyLogCompress),
		},
		Source: source,
	}, nil
}

// mergeFile adds the sections of the INI file at path as viper's config layer.
func (l *Loader) mergeFile(ctx context.Context, path string) (string, error) {
	logger := ctxlog.Logger(ctx).WithField("settings", path)
	fs := FsFactory()

	info, err := fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Debug("no settings file, using defaults")
		return "", nil
	}
	if err != nil {
		return "", apperrors.Infrastructure("read settings", err)
	}
	if info.IsDir() {
		logger.Warn("settings path is a directory, using defaults")
		return "", nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", apperrors.Infrastructure("read settings", err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return "", &apperrors.ParseError{Source: path, Err: err}
	}

	layer := make(map[string]any)
	for _, section := range cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		values := make(map[string]any, len(section.Keys()))
		for _, key := range section.Keys() {
			values[strings.ToLower(key.Name())] = key.Value()
		}
		layer[strings.ToLower(section.Name())] = values
	}

	if err := l.v.MergeConfigMap(layer); err != nil {
		return "", &apperrors.ParseError{Source: path, Err: err}
	}

	logger.Debug("settings file loaded")
	return path, nil
}

/*
parseTimeout accepts whole or fractional seconds ("30", "1.5") or a Go
duration ("90s", "2m"). Empty and zero mean no timeout.
*/
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	var d time.Duration
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, fmt.Errorf("timeout %q is not a number of seconds", raw)
		}
		d = time.Duration(secs * float64(time.Second))
	} else {
		parsed, durErr := time.ParseDuration(raw)
		if durErr != nil {
			return 0, fmt.Errorf("timeout must be seconds or a duration like 90s: %w", durErr)
		}
		d = parsed
	}

	if d < 0 {
		return 0, errors.New("timeout cannot be negative")
	}
	return d, nil
}

func formatSeconds(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
