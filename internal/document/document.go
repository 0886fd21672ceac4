// Package document loads JSON and YAML documents as generic Go values.
//
// Objects become map[string]any, arrays []any, JSON numbers float64 and
// YAML integers int. The values are ready to be handed to reflectdiff.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/itchyny/timefmt-go"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ErrUnsupportedFormat is returned for files whose extension names no known
// encoding.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// FormatOf infers the encoding of path from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s (expected .json, .yaml or .yml)", ErrUnsupportedFormat, path)
	}
}

// Load reads and parses the document at path.
func Load(path string) (any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	v, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes a single document. An empty input is the nil document.
func Parse(data []byte, format Format) (any, error) {
	switch format {
	case FormatJSON:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil, nil
		}
		var v any
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected data after the top-level value")
		}
		return v, nil
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return Normalize(v), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// Normalize converts YAML mappings with non-string keys into
// map[string]any, recursively, so JSON and YAML documents share one shape.
func Normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = Normalize(e)
		}
		return x
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(k)] = Normalize(e)
		}
		return out
	case []any:
		for i, e := range x {
			x[i] = Normalize(e)
		}
		return x
	default:
		return v
	}
}

// ConvertDates replaces, in place, every string of v that parses as an
// RFC 3339 timestamp or matches one of the strftime-style formats (such as
// "%Y-%m-%d") with the corresponding time.Time. It returns the converted
// value.
func ConvertDates(v any, formats []string) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = ConvertDates(e, formats)
		}
		return x
	case []any:
		for i, e := range x {
			x[i] = ConvertDates(e, formats)
		}
		return x
	case string:
		if t, ok := parseDate(x, formats); ok {
			return t
		}
		return x
	default:
		return v
	}
}

func parseDate(s string, formats []string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, f := range formats {
		if t, err := timefmt.Parse(s, f); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateDateFormat reports whether format is a usable strftime-style
// layout: it must contain a directive and parse its own rendering of a
// reference time.
func ValidateDateFormat(format string) error {
	if !strings.Contains(format, "%") {
		return fmt.Errorf("date format %q has no %% directive", format)
	}
	ref := time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)
	if _, err := timefmt.Parse(timefmt.Format(ref, format), format); err != nil {
		return fmt.Errorf("date format %q cannot be parsed back: %w", format, err)
	}
	return nil
}
