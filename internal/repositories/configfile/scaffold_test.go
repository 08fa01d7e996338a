package configfile

import (
	"context"
	"testing"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigSource_Scaffold(t *testing.T) {
	t.Run("writes sample when missing", func(t *testing.T) {
		fs := memFs(t, nil)
		src := NewConfigSource(testPath)

		res, err := src.Scaffold(context.Background(), nil, false)
		require.NoError(t, err)
		assert.True(t, res.Created)
		assert.Equal(t, testPath, res.Path)
		assert.Contains(t, res.Message, "Sample config created at")

		exists, err := afero.Exists(fs, testPath)
		require.NoError(t, err)
		assert.True(t, exists)

		model, err := src.Load(context.Background())
		require.NoError(t, err)
		commands, ok := model.Commands("hello")
		require.True(t, ok)
		assert.Equal(t, []string{"echo hello"}, commands)
	})

	t.Run("keeps existing file without force", func(t *testing.T) {
		fs := memFs(t, map[string]string{testPath: "[scripts]\nmine = \"echo mine\"\n"})

		res, err := NewConfigSource(testPath).Scaffold(context.Background(), nil, false)
		require.NoError(t, err)
		assert.False(t, res.Created)
		assert.Contains(t, res.Message, "--force")

		content, err := afero.ReadFile(fs, testPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "mine")
	})

	t.Run("overwrites existing file with force", func(t *testing.T) {
		fs := memFs(t, map[string]string{testPath: "[scripts]\nmine = \"echo mine\"\n"})

		res, err := NewConfigSource(testPath).Scaffold(context.Background(), nil, true)
		require.NoError(t, err)
		assert.True(t, res.Created)

		content, err := afero.ReadFile(fs, testPath)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "mine")
		assert.Contains(t, string(content), "hello")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		memFs(t, nil)

		_, err := NewConfigSource(testPath).Scaffold(context.Background(), []string{"extra"}, false)
		var argErr *apperrors.UnknownArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Equal(t, "init", argErr.Command)
	})
}
