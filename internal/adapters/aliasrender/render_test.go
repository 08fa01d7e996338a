package aliasrender

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var sample = []alias.Alias{
	{Name: "build", Commands: []string{"go build ./..."}},
	{Name: "ci", Commands: []string{"go vet ./...", "go test ./..."}},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "table", want: FormatTable},
		{in: "YAML", want: FormatYAML},
		{in: " json ", want: FormatJSON},
		{in: "xml", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatYAML, sample))

	var decoded []alias.Alias
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sample, decoded)
	assert.Contains(t, buf.String(), "alias: ci")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, sample))

	var decoded []alias.Alias
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sample, decoded)
}

func TestRender_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatTable, sample))

	out := buf.String()
	assert.Contains(t, out, "ALIAS")
	assert.Contains(t, out, "build")
	assert.Contains(t, out, "go test ./...")
}

func TestRender_Unknown(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, Format("xml"), sample))
}
