package configfile

import (
	"context"
	"fmt"
	"testing"

	"github.com/AntonioJCosta/sacr/internal/core/apperrors"
	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/AntonioJCosta/sacr/internal/core/domain/backend"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPath = "/work/sacr.config"

// memFs swaps FsFactory for an in-memory filesystem holding files.
func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	t.Cleanup(stubs.Reset)
	return fs
}

func TestNewConfigSource(t *testing.T) {
	src := NewConfigSource(testPath)
	require.NotNil(t, src)
	assert.Equal(t, testPath, src.Path())
	assert.Equal(t, backend.KindConfig, src.Kind())
}

func TestConfigSource_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    map[string][]string
	}{
		{
			name:    "single string value",
			content: "[scripts]\nhello = \"echo hi\"\n",
			want:    map[string][]string{"hello": {"echo hi"}},
		},
		{
			name:    "array value keeps order",
			content: "[scripts]\nseq = [\"echo a\", \"false\", \"echo b\"]\n",
			want:    map[string][]string{"seq": {"echo a", "false", "echo b"}},
		},
		{
			name:    "commands may contain comment characters",
			content: "[scripts]\nnote = \"echo a # b; c\"\n",
			want:    map[string][]string{"note": {"echo a # b; c"}},
		},
		{
			name:    "keys are case sensitive and may contain colons",
			content: "[scripts]\nBuild = \"make\"\nbuild:prod = \"make prod\"\n",
			want:    map[string][]string{"Build": {"make"}, "build:prod": {"make prod"}},
		},
		{
			name:    "other sections are ignored",
			content: "[meta]\nowner = nobody\n\n[scripts]\nhello = \"echo hi\"\n",
			want:    map[string][]string{"hello": {"echo hi"}},
		},
		{
			name:    "no scripts section",
			content: "[meta]\nowner = nobody\n",
			want:    map[string][]string{},
		},
		{
			name:    "empty file",
			content: "",
			want:    map[string][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memFs(t, map[string]string{testPath: tt.content})

			model, err := NewConfigSource(testPath).Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, model.Scripts())
		})
	}
}

func TestConfigSource_Load_MissingFile(t *testing.T) {
	memFs(t, nil)

	model, err := NewConfigSource(testPath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, model.Len())
}

func TestConfigSource_Load_Directory(t *testing.T) {
	fs := memFs(t, nil)
	require.NoError(t, fs.MkdirAll(testPath, 0o755))

	model, err := NewConfigSource(testPath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, model.Len())
}

func TestConfigSource_Load_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantKey string
		wantRaw string
	}{
		{
			name:    "bare word is not coerced to a command",
			content: "[scripts]\nhello = echo hi\n",
			wantKey: "hello",
			wantRaw: "echo hi",
		},
		{
			name:    "number is not a command",
			content: "[scripts]\nn = 42\n",
			wantKey: "n",
			wantRaw: "42",
		},
		{
			name:    "array of non-strings",
			content: "[scripts]\nbad = [1, 2]\n",
			wantKey: "bad",
			wantRaw: "[1, 2]",
		},
		{
			name:    "empty array",
			content: "[scripts]\nnone = []\n",
			wantKey: "none",
			wantRaw: "[]",
		},
		{
			name:    "unterminated JSON string",
			content: "[scripts]\nhalf = \"echo\n",
			wantKey: "half",
			wantRaw: "\"echo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memFs(t, map[string]string{testPath: tt.content})

			_, err := NewConfigSource(testPath).Load(context.Background())
			require.Error(t, err)

			var parseErr *apperrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tt.wantKey, parseErr.Key)
			assert.Equal(t, tt.wantRaw, parseErr.Raw)
			assert.Equal(t, testPath, parseErr.Source)
			assert.ErrorIs(t, err, alias.ErrInvalidValue)
			assert.Equal(t, apperrors.ClassInput, apperrors.ClassOf(err))
		})
	}
}

func TestConfigSource_Load_MalformedFile(t *testing.T) {
	memFs(t, map[string]string{testPath: "[scripts]\nthis line has no delimiter\n"})

	_, err := NewConfigSource(testPath).Load(context.Background())
	var parseErr *apperrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Empty(t, parseErr.Key)
}

func TestConfigSource_Load_DuplicateAlias(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "different values",
			content: "[scripts]\na = \"echo 1\"\nb = \"echo b\"\na = \"echo 2\"\n",
		},
		{
			name:    "identical values",
			content: "[scripts]\na = \"echo 1\"\na = \"echo 1\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			memFs(t, map[string]string{testPath: tt.content})

			_, err := NewConfigSource(testPath).Load(context.Background())

			var parseErr *apperrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, "a", parseErr.Key)
			assert.Equal(t, `"echo 1"`, parseErr.Raw)
			assert.Contains(t, err.Error(), "defined 2 times")
			assert.Equal(t, apperrors.ClassInput, apperrors.ClassOf(err))
		})
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	original := map[string][]string{
		"hello":      {"echo hi"},
		"seq":        {"echo a", "false", "echo b"},
		"quoted":     {`git commit -m "wip"`},
		"symbols":    {"cat a.txt | grep x > out.txt && echo done; echo '#1'"},
		"unicode":    {"echo héllo"},
		"build:prod": {"npm run build -- --prod"},
		"a=b":        {"echo eq"},
		"mid#hash":   {"echo mid"},
	}
	model, err := alias.NewModel(original)
	require.NoError(t, err)

	content, err := Encode(model)
	require.NoError(t, err)

	memFs(t, map[string]string{testPath: string(content)})

	loaded, err := NewConfigSource(testPath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, original, loaded.Scripts())
}

func TestEncode_RejectsUnreadableNames(t *testing.T) {
	for _, name := range []string{"#hash", ";semi", "[x", " padded", "padded ", "two\nlines"} {
		t.Run(name, func(t *testing.T) {
			model, err := alias.NewModel(map[string][]string{name: {"echo hi"}})
			require.NoError(t, err)

			content, err := Encode(model)
			require.Error(t, err)
			assert.Nil(t, content)
			assert.Contains(t, err.Error(), fmt.Sprintf("%q", name))
		})
	}
}
