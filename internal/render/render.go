// Package render turns engine results into text, JSON or YAML output.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case Text, JSON, YAML:
		return Format(s), nil
	case "":
		return Text, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, json or yaml)", s)
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	onStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	offStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6D7383"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("format %q cannot encode structured data", format)
}

func roundPercent(p float64) int {
	return int(math.Round(p))
}
