// Package workspace implements housekeeping on the files around a project.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/ctxlog"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Service removes build artifacts and other paths on request.
type Service struct {
	fs afero.Fs
}

// NewService creates a new workspace service on fs.
// It panics if fs is nil.
func NewService(fs afero.Fs) *Service {
	if fs == nil {
		panic("fs cannot be nil")
	}
	return &Service{fs: fs}
}

/*
Clean removes every path in paths, directories recursively.

Paths that do not exist are skipped. A failure on one path does not stop
the others; all failures are returned together as one InfrastructureError.
The returned slice lists the paths that were actually removed.
*/
func (s *Service) Clean(ctx context.Context, paths []string) ([]string, error) {
	var (
		removed []string
		result  error
	)

	for _, p := range paths {
		if p == "" {
			continue
		}
		logger := ctxlog.Logger(ctx).WithField("path", p)

		info, err := s.fs.Stat(p)
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("nothing to clean")
			continue
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("inspecting %s: %w", p, err))
			continue
		}

		if info.IsDir() {
			err = s.fs.RemoveAll(p)
		} else {
			err = s.fs.Remove(p)
		}
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("removing %s: %w", p, err))
			continue
		}

		logger.WithFields(logrus.Fields{"dir": info.IsDir()}).Debug("removed")
		removed = append(removed, p)
	}

	if result != nil {
		return removed, &apperrors.InfrastructureError{Op: "clean", Err: result}
	}
	return removed, nil
}
