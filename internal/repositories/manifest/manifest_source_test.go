package manifest

import (
	"context"
	"os"
	"testing"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/work/package.json"

func withFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)
	return fs
}

func TestSource_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string][]string
	}{
		{
			name:    "scripts object",
			content: `{"scripts": {"build": "make all"}}`,
			want:    map[string][]string{"build": {"make all"}},
		},
		{
			name:    "other fields ignored",
			content: `{"name": "demo", "version": "1.0.0", "scripts": {"test": "go test ./...", "lint": "golangci-lint run"}, "dependencies": {"x": "^1"}}`,
			want:    map[string][]string{"test": {"go test ./..."}, "lint": {"golangci-lint run"}},
		},
		{
			name:    "no scripts field",
			content: `{"name": "demo"}`,
			want:    map[string][]string{},
		},
		{
			name:    "null scripts field",
			content: `{"scripts": null}`,
			want:    map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFiles(t, map[string]string{testPath: tt.content})

			model, err := NewSource(testPath).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, model.Scripts())
		})
	}
}

func TestSource_Load_MissingFile(t *testing.T) {
	withFiles(t, nil)

	_, err := NewSource(testPath).Load(context.Background())
	require.Error(t, err)

	var infraErr *apperrors.InfrastructureError
	require.ErrorAs(t, err, &infraErr)
	assert.Equal(t, "load manifest", infraErr.Op)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, apperrors.ClassInfrastructure, apperrors.ClassOf(err))
}

func TestSource_Load_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
	}{
		{name: "malformed JSON", content: `{"scripts": {`, wantKey: ""},
		{name: "scripts is not an object", content: `{"scripts": ["make"]}`, wantKey: ""},
		{name: "array script", content: `{"scripts": {"build": ["make", "make install"]}}`, wantKey: "build"},
		{name: "number script", content: `{"scripts": {"n": 1}}`, wantKey: "n"},
		{name: "null script", content: `{"scripts": {"nothing": null}}`, wantKey: "nothing"},
		{name: "empty script", content: `{"scripts": {"blank": ""}}`, wantKey: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFiles(t, map[string]string{testPath: tt.content})

			_, err := NewSource(testPath).Load(context.Background())
			var parseErr *apperrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantKey, parseErr.Key)
			assert.Equal(t, testPath, parseErr.Source)
		})
	}
}

func TestSource_Scaffold(t *testing.T) {
	fs := withFiles(t, nil)
	src := NewSource(testPath)
	assert.Equal(t, backend.KindPackage, src.Kind())

	res, err := src.Scaffold(context.Background(), nil, true)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Contains(t, res.Message, "npm init")

	exists, err := afero.Exists(fs, testPath)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = src.Scaffold(context.Background(), []string{"x"}, false)
	var argErr *apperrors.UnknownArgumentError
	require.ErrorAs(t, err, &argErr)
}
