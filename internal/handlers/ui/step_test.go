package ui

import (
	"bytes"
	"testing"

	"github.com/AntonioJCosta/sacr/internal/core/services/aliasrun"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestStepAnnouncer(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	var buf bytes.Buffer
	announce := StepAnnouncer(&buf)
	announce(aliasrun.Step{Alias: "seq", Index: 2, Total: 3, Command: "echo b"})

	assert.Equal(t, "[2/3] echo b\n", buf.String())
}
