package tmplhost

import (
	"bytes"
	"fmt"
	"maps"
	"strings"
	"sync"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/alexisbeaulieu97/gridtheme/internal/render"
	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdownEngine() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(goldmark.WithExtensions(extension.GFM))
	})
	return markdownInstance
}

func (e *Environment) builtinFuncs() template.FuncMap {
	return template.FuncMap{
		"datagrid_widget":               e.gridFunc("datagrid_widget", "widget"),
		"datagrid_header_widget":        e.gridFunc("datagrid_header_widget", "header"),
		"datagrid_rowset_widget":        e.gridFunc("datagrid_rowset_widget", "rowset"),
		"datagrid_column_header_widget": e.headerFunc("datagrid_column_header_widget"),
		"datagrid_column_cell_widget":   e.cellFunc("datagrid_column_cell_widget"),
		"datagrid_attributes_widget":    render.RenderAttributes,
		"datagrid_theme":                e.themeDirective(nil),
		"humanize":                      view.Humanize,
		"markdown":                      markdown,
		"dict":                          dict,
		"attrs":                         view.Attrs,
	}
}

func (e *Environment) gridFunc(name, suffix string) func(*view.GridView, ...map[string]any) (string, error) {
	return func(grid *view.GridView, vars ...map[string]any) (string, error) {
		if grid == nil {
			return "", fmt.Errorf("%s: grid is nil", name)
		}
		return e.render(name, grid, suffix, vars)
	}
}

func (e *Environment) headerFunc(name string) func(*view.HeaderView, ...map[string]any) (string, error) {
	return func(header *view.HeaderView, vars ...map[string]any) (string, error) {
		if header == nil {
			return "", fmt.Errorf("%s: header is nil", name)
		}
		return e.render(name, header, "header", vars)
	}
}

func (e *Environment) cellFunc(name string) func(*view.CellView, ...map[string]any) (string, error) {
	return func(cell *view.CellView, vars ...map[string]any) (string, error) {
		if cell == nil {
			return "", fmt.Errorf("%s: cell is nil", name)
		}
		return e.render(name, cell, "cell", vars)
	}
}

func (e *Environment) render(name string, node view.Node, suffix string, vars []map[string]any) (string, error) {
	if e.renderer == nil {
		return "", fmt.Errorf("%s: no renderer bound to the environment", name)
	}

	var merged map[string]any
	switch len(vars) {
	case 0:
	case 1:
		merged = vars[0]
	default:
		merged = make(map[string]any)
		for _, layer := range vars {
			maps.Copy(merged, layer)
		}
	}

	return e.renderer.Render(node, suffix, merged)
}

// dict builds a map from alternating key/value arguments.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

// markdown converts markdown text to HTML.
func markdown(source any) (string, error) {
	var text string
	switch v := source.(type) {
	case nil:
		return "", nil
	case string:
		text = v
	default:
		text = fmt.Sprint(v)
	}

	var out bytes.Buffer
	if err := markdownEngine().Convert([]byte(text), &out); err != nil {
		return "", err
	}
	return strings.TrimSuffix(out.String(), "\n"), nil
}
