package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/ports"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/AntonioJCosta/sacr/internal/repositories/settings"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Cleaner removes paths from the workspace.
type Cleaner interface {
	Clean(ctx context.Context, paths []string) ([]string, error)
}

// Options holds everything the commands need.
type Options struct {
	Version  string
	Selector ports.BackendSelector
	Executor ports.CommandExecutor
	Cleaner  Cleaner
	Settings *settings.Loader
	Stdout   io.Writer
	Stderr   io.Writer
}

// session is the per-invocation state filled in before any subcommand runs.
type session struct {
	opts     Options
	settings settings.Settings
	closer   io.Closer
}

// flagKeys maps persistent flags to the setting they override.
var flagKeys = map[string]string{
	"backend":   settings.KeyBackend,
	"file":      settings.KeyFile,
	"path":      settings.KeyPath,
	"timeout":   settings.KeyTimeout,
	"log-level": settings.KeyLogLevel,
	"log-file":  settings.KeyLogFile,
}

// NewRootCommand creates the sacr command tree.
// It panics if a required dependency is missing.
func NewRootCommand(opts Options) *cobra.Command {
	cmd, _ := newRootCommand(opts)
	return cmd
}

func newRootCommand(opts Options) (*cobra.Command, *session) {
	if opts.Selector == nil || opts.Executor == nil || opts.Cleaner == nil || opts.Settings == nil {
		panic("cli options are incomplete")
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	s := &session{opts: opts}

	rootCmd := &cobra.Command{
		Use:   "sacr <command>",
		Short: "sacr runs named command aliases from a project config.",
		Long: `sacr reads aliases from a sacr.config file (or the scripts of a package.json)
and runs the commands behind an alias one after another, stopping at the first failure.`,
		Version:       opts.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &apperrors.UnknownArgumentError{Command: "sacr", Message: fmt.Sprintf("unknown command %q", args[0])}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.prepare(cmd)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(opts.Stdout)
	rootCmd.SetErr(opts.Stderr)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &apperrors.UnknownArgumentError{Command: cmd.Name(), Message: err.Error()}
	})

	flags := rootCmd.PersistentFlags()
	flags.String("settings", "", "Path to the settings file (default .sacrrc in the working directory)")
	flags.StringP("backend", "b", "", "Alias source: config or package")
	flags.StringP("file", "f", "", "Config file name (default sacr.config, or package.json for the package backend)")
	flags.StringP("path", "p", "", "Directory holding the config file (default the working directory)")
	flags.StringP("timeout", "t", "", "Per-command timeout in seconds or as a duration like 90s (default none)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Also write logs to this rotated file")

	for name, key := range flagKeys {
		if err := opts.Settings.BindFlag(key, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(NewRunCommand(s))
	rootCmd.AddCommand(NewInitCommand(s))
	rootCmd.AddCommand(NewCleanCommand(s))
	rootCmd.AddCommand(NewListCommand(s))

	return rootCmd, s
}

// prepare loads settings and installs the logger in the command's context.
func (s *session) prepare(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settingsPath, _ := cmd.Flags().GetString("settings")
	loaded, err := s.opts.Settings.Load(ctx, settingsPath)
	if err != nil {
		return err
	}
	s.settings = loaded

	logger, closer, err := ctxlog.Setup(loaded.Log, s.opts.Stderr)
	if err != nil {
		return apperrors.Infrastructure("set up logging", err)
	}
	s.closer = closer

	entry := logger.WithFields(logrus.Fields{"cmd": cmd.Name()})
	cmd.SetContext(ctxlog.New(ctx, entry))

	entry.WithFields(logrus.Fields{
		"backend":  loaded.Backend,
		"timeout":  loaded.Timeout.String(),
		"settings": loaded.Source,
	}).Debug("settings loaded")
	return nil
}

// selectBackend resolves the backend named by the loaded settings.
func (s *session) selectBackend() (ports.Backend, error) {
	return s.opts.Selector.Select(s.settings.Backend, s.settings.File, s.settings.Path)
}

func (s *session) close() {
	if s.closer != nil {
		_ = s.closer.Close()
		s.closer = nil
	}
}

/*
Execute runs the command tree with args and returns the process exit code.
Errors are printed to opts.Stderr.
*/
func Execute(ctx context.Context, opts Options, args []string) int {
	rootCmd, s := newRootCommand(opts)
	defer s.close()

	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(s.opts.Stderr, rootCmd, err)
		ctxlog.Debug(ctx, "command failed", apperrors.Fields(err))
	}
	return apperrors.ExitCode(err)
}
