package report

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// Format selects how a Result is rendered.
type Format string

const (
	// FormatPlain prints the average seconds per pass and nothing else.
	FormatPlain Format = "plain"
	// FormatTable prints a two-column table of every result field.
	FormatTable Format = "table"
	// FormatYAML prints the full result as a YAML document.
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat reports an unrecognized format name.
var ErrUnknownFormat = errors.New("report: unknown format")

// Formats lists the accepted format names.
func Formats() []Format { return []Format{FormatPlain, FormatTable, FormatYAML} }

// ParseFormat maps a flag or config value to a Format. Empty means plain.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPlain, nil
	case FormatPlain, FormatTable, FormatYAML:
		return f, nil
	}

	return "", errors.Wrapf(ErrUnknownFormat, "%q (want one of %v)", s, Formats())
}

// String implements fmt.Stringer and pflag.Value.
func (f Format) String() string { return string(f) }
