package config

import (
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

// Config represents the gridtheme project document.
type Config struct {
	Version       string       `yaml:"version" validate:"required,semver"`
	ThemeDir      string       `yaml:"theme_dir,omitempty"`
	Git           *GitSource   `yaml:"git,omitempty"`
	DefaultThemes []string     `yaml:"default_themes,omitempty" validate:"omitempty,dive,theme_name"`
	Types         []TypeConfig `yaml:"types,omitempty" validate:"omitempty,dive"`
	Grids         []GridConfig `yaml:"grids" validate:"required,min=1,dive"`

	// BaseDir is the directory of the configuration file. Relative paths
	// are resolved against it.
	BaseDir string `yaml:"-"`
}

// GitSource reads theme files from a committed revision.
type GitSource struct {
	Repository string `yaml:"repository" validate:"required"`
	Revision   string `yaml:"revision,omitempty"`
	Dir        string `yaml:"dir,omitempty"`
}

// TypeConfig registers a custom column type.
type TypeConfig struct {
	Name   string `yaml:"name" validate:"required,block_name"`
	Parent string `yaml:"parent" validate:"required,block_name"`
}

// GridConfig describes one datagrid.
type GridConfig struct {
	Name    string         `yaml:"name" validate:"required,block_name"`
	Themes  []string       `yaml:"themes,omitempty" validate:"omitempty,dive,theme_name"`
	Attr    Attributes     `yaml:"attr,omitempty"`
	Vars    map[string]any `yaml:"vars,omitempty"`
	Columns []ColumnConfig `yaml:"columns" validate:"required,min=1,dive"`
}

// ColumnConfig describes a grid column. Compound columns hold sub-columns.
type ColumnConfig struct {
	Name              string         `yaml:"name" validate:"required,block_name"`
	Type              string         `yaml:"type,omitempty" validate:"omitempty,block_name"`
	Label             string         `yaml:"label,omitempty"`
	Field             string         `yaml:"field,omitempty"`
	UseRaw            bool           `yaml:"use_raw,omitempty"`
	TranslationDomain string         `yaml:"translation_domain,omitempty"`
	Attr              Attributes     `yaml:"attr,omitempty"`
	LabelAttr         Attributes     `yaml:"label_attr,omitempty"`
	HeaderAttr        Attributes     `yaml:"header_attr,omitempty"`
	CellAttr          Attributes     `yaml:"cell_attr,omitempty"`
	Options           map[string]any `yaml:"options,omitempty"`
	Columns           []ColumnConfig `yaml:"columns,omitempty" validate:"omitempty,dive"`
}

// Attributes is an attribute mapping that keeps the order of the document.
type Attributes struct {
	view.Attributes
}

// UnmarshalYAML decodes a mapping in document order.
func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: attributes must be a mapping", node.Line)
	}

	var attrs view.Attributes
	for i := 0; i+1 < len(node.Content); i += 2 {
		var value any
		if err := node.Content[i+1].Decode(&value); err != nil {
			return err
		}
		attrs = attrs.With(node.Content[i].Value, value)
	}
	a.Attributes = attrs
	return nil
}

// Grid returns the grid named name.
func (c *Config) Grid(name string) (*GridConfig, bool) {
	for i := range c.Grids {
		if c.Grids[i].Name == name {
			return &c.Grids[i], true
		}
	}
	return nil, false
}

// GridNames returns the grid names in document order.
func (c *Config) GridNames() []string {
	names := make([]string, len(c.Grids))
	for i, grid := range c.Grids {
		names[i] = grid.Name
	}
	return names
}

// Resolve returns path relative to the configuration directory.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.BaseDir == "" {
		return path
	}
	return filepath.Join(c.BaseDir, path)
}

// Column returns the column at the dotted path, for example "actions.edit".
func (g *GridConfig) Column(path []string) (*ColumnConfig, bool) {
	columns := g.Columns
	var found *ColumnConfig
	for _, name := range path {
		found = nil
		for i := range columns {
			if columns[i].Name == name {
				found = &columns[i]
				break
			}
		}
		if found == nil {
			return nil, false
		}
		columns = found.Columns
	}
	return found, found != nil
}
