package ctxlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	Level      string
	File       string // Optional log file, rotated by lumberjack
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

/*
Setup builds the logger described by opts. Messages always go to stderr
and, when opts.File is set, also to a rotating file.

The returned closer releases the log file and must be called before exit.
*/
func Setup(opts Options, stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetLevel(ParseLevel(opts.Level))
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: opts.File == "",
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05.000",
	})

	if stderr == nil {
		stderr = os.Stderr
	}

	if opts.File == "" {
		logger.SetOutput(stderr)
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotating := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	logger.SetOutput(io.MultiWriter(stderr, rotating))

	return logger, rotating, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
