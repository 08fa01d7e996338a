package workspace

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingFs refuses to remove anything under a given name.
type failingFs struct {
	afero.Fs
	deny string
}

func (f failingFs) Remove(name string) error {
	if name == f.deny {
		return &os.PathError{Op: "remove", Path: name, Err: errors.New("permission denied")}
	}
	return f.Fs.Remove(name)
}

func (f failingFs) RemoveAll(name string) error {
	if name == f.deny {
		return &os.PathError{Op: "removeall", Path: name, Err: errors.New("permission denied")}
	}
	return f.Fs.RemoveAll(name)
}

func seed(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/out.log", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/dist/app", []byte("bin"), 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/dist/sub/lib.so", []byte("so"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/keep.txt", []byte("k"), 0o644))
	return fs
}

func TestNewService(t *testing.T) {
	assert.Panics(t, func() { NewService(nil) })
	assert.NotNil(t, NewService(afero.NewMemMapFs()))
}

func TestService_Clean(t *testing.T) {
	fs := seed(t)
	svc := NewService(fs)

	removed, err := svc.Clean(context.Background(), []string{"/work/out.log", "/work/dist", "/work/missing", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"/work/out.log", "/work/dist"}, removed)

	for _, p := range []string{"/work/out.log", "/work/dist", "/work/dist/sub/lib.so"} {
		exists, err := afero.Exists(fs, p)
		require.NoError(t, err)
		assert.False(t, exists, p)
	}
	exists, err := afero.Exists(fs, "/work/keep.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestService_Clean_NoPaths(t *testing.T) {
	removed, err := NewService(seed(t)).Clean(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, removed)
}

func TestService_Clean_AggregatesFailures(t *testing.T) {
	fs := failingFs{Fs: seed(t), deny: "/work/dist"}
	svc := NewService(fs)

	removed, err := svc.Clean(context.Background(), []string{"/work/dist", "/work/out.log"})
	require.Error(t, err)
	assert.Equal(t, []string{"/work/out.log"}, removed)

	var infraErr *apperrors.InfrastructureError
	require.ErrorAs(t, err, &infraErr)
	assert.Equal(t, "clean", infraErr.Op)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 1)
	assert.Contains(t, err.Error(), "/work/dist")
}
