// Package dataset loads grid rows from YAML or JSON files. JSON files may
// carry comments and trailing commas.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/jsonc"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"gopkg.in/yaml.v3"

	gterrors "github.com/alexisbeaulieu97/gridtheme/pkg/errors"
)

// Format identifies the encoding of a dataset.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// FormatOf returns the format matching the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported dataset extension %q (expected .yaml, .yml, .json or .jsonc)", filepath.Ext(path))
	}
}

// Load reads the rows stored in path.
func Load(path string) ([]map[string]any, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, gterrors.NewParseError(path, 0, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, gterrors.NewParseError(path, 0, err)
	}
	return Parse(path, data, format)
}

// Parse decodes rows from data. The document is either a list of rows or a
// mapping with a "rows" list. name is used in error messages. Data starting
// with a UTF-8 or UTF-16 byte order mark is decoded accordingly, anything
// else is read as UTF-8.
func Parse(name string, data []byte, format Format) ([]map[string]any, error) {
	data, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, gterrors.NewParseError(name, 0, fmt.Errorf("decode text: %w", err))
	}

	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, gterrors.NewParseError(name, extractLine(err), err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.UseNumber()
		if err := decoder.Decode(&doc); err != nil {
			return nil, gterrors.NewParseError(name, 0, err)
		}
	default:
		return nil, gterrors.NewParseError(name, 0, fmt.Errorf("unknown format %q", format))
	}

	if wrapper, ok := doc.(map[string]any); ok {
		rows, found := wrapper["rows"]
		if !found {
			return nil, gterrors.NewParseError(name, 0, fmt.Errorf(`mapping without a "rows" list`))
		}
		doc = rows
	}

	if doc == nil {
		return []map[string]any{}, nil
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, gterrors.NewParseError(name, 0, fmt.Errorf("expected a list of rows, got %T", doc))
	}

	rows := make([]map[string]any, 0, len(list))
	for i, item := range list {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, gterrors.NewParseError(name, 0, fmt.Errorf("row %d: expected a mapping, got %T", i, item))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}
	return line
}
