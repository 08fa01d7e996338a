// Package aliasrender writes alias listings as a table, YAML or JSON.
package aliasrender

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/AntonioJCosta/sacr/internal/core/domain/alias"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format is an output format for Render.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatTable, FormatYAML, FormatJSON}
}

// ParseFormat matches s against the supported formats, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format %q, use table, yaml or json", s)
}

// Render writes aliases to w in format.
func Render(w io.Writer, format Format, aliases []alias.Alias) error {
	switch format {
	case FormatYAML:
		return renderYAML(w, aliases)
	case FormatJSON:
		return renderJSON(w, aliases)
	case FormatTable, "":
		renderTable(w, aliases)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

func renderTable(w io.Writer, aliases []alias.Alias) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Alias", "#", "Command"})
	table.SetBorder(true)
	table.SetAutoWrapText(false)
	table.SetAutoMergeCells(false)
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, a := range aliases {
		for i, c := range a.Commands {
			name := a.Name
			if i > 0 {
				name = ""
			}
			table.Append([]string{name, fmt.Sprintf("%d", i+1), c})
		}
	}
	table.Render()
}

func renderYAML(w io.Writer, aliases []alias.Alias) error {
	if aliases == nil {
		aliases = []alias.Alias{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(aliases); err != nil {
		return fmt.Errorf("failed to encode aliases as YAML: %w", err)
	}
	return enc.Close()
}

func renderJSON(w io.Writer, aliases []alias.Alias) error {
	if aliases == nil {
		aliases = []alias.Alias{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(aliases); err != nil {
		return fmt.Errorf("failed to encode aliases as JSON: %w", err)
	}
	return nil
}
