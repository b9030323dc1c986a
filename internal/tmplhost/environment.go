// Package tmplhost hosts datagrid themes on text/template. A theme is a
// template file whose {{define}} blocks are looked up by the renderer, and
// which may extend another theme with an extends comment on its first line.
package tmplhost

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/alexisbeaulieu97/gridtheme/internal/logger"
	"github.com/alexisbeaulieu97/gridtheme/internal/render"
	"github.com/alexisbeaulieu97/gridtheme/internal/theme"
	gterrors "github.com/alexisbeaulieu97/gridtheme/pkg/errors"
)

// BaseTheme is the name of the built-in theme loaded by every Environment.
const BaseTheme = "base.tmpl"

// ThemeExt is the file extension of theme files.
const ThemeExt = ".tmpl"

//go:embed themes/*.tmpl
var builtinThemes embed.FS

// Option configures an Environment.
type Option func(*Environment)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(e *Environment) {
		e.log = log.Component("tmplhost")
	}
}

// WithFuncs adds template functions available to every theme. They are
// applied before the built-in functions, which cannot be replaced.
func WithFuncs(funcs template.FuncMap) Option {
	return func(e *Environment) {
		for name, fn := range funcs {
			e.funcs[name] = fn
		}
	}
}

// Environment holds the loaded themes and executes their blocks. It
// implements render.Engine. Loading is not safe for concurrent use, and an
// Environment is bound to one Renderer at a time.
type Environment struct {
	themes   map[string]*Theme
	funcs    template.FuncMap
	renderer *render.Renderer
	log      *logger.Logger
}

var _ render.Engine = (*Environment)(nil)

// NewEnvironment creates an Environment holding the built-in base theme.
func NewEnvironment(opts ...Option) (*Environment, error) {
	e := &Environment{
		themes: make(map[string]*Theme),
		funcs:  template.FuncMap{},
	}
	for _, opt := range opts {
		opt(e)
	}
	for name, fn := range e.builtinFuncs() {
		e.funcs[name] = fn
	}

	builtin, err := fs.Sub(builtinThemes, "themes")
	if err != nil {
		return nil, err
	}
	if err := e.LoadFS(builtin); err != nil {
		return nil, err
	}
	return e, nil
}

// Bind sets the renderer used by the datagrid template functions.
func (e *Environment) Bind(r *render.Renderer) {
	e.renderer = r
}

// LoadDir loads every theme file below dir. Theme names are paths relative
// to dir.
func (e *Environment) LoadDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return gterrors.NewThemeError(dir, err)
	}
	if !info.IsDir() {
		return gterrors.NewThemeError(dir, fmt.Errorf("not a directory"))
	}
	return e.LoadFS(os.DirFS(dir))
}

// LoadFS loads every theme file of fsys.
func (e *Environment) LoadFS(fsys fs.FS) error {
	sources := make(map[string]string)
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != ThemeExt {
			return nil
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return gterrors.NewThemeError(name, err)
		}
		sources[name] = string(content)
		return nil
	})
	if err != nil {
		return err
	}
	return e.LoadSources(sources)
}

// LoadSources loads themes from name to source pairs. A theme may extend a
// theme of the same batch or one loaded earlier.
func (e *Environment) LoadSources(sources map[string]string) error {
	names := make([]string, 0, len(sources))
	for name := range sources {
		if _, exists := e.themes[name]; exists {
			return gterrors.NewThemeError(name, fmt.Errorf("theme already loaded"))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	loading := make(map[string]bool)
	for _, name := range names {
		if _, err := e.load(name, sources, loading); err != nil {
			return err
		}
	}
	return nil
}

func (e *Environment) load(name string, sources map[string]string, loading map[string]bool) (*Theme, error) {
	if loaded, ok := e.themes[name]; ok {
		return loaded, nil
	}
	source, ok := sources[name]
	if !ok {
		return nil, gterrors.NewThemeError(name, fmt.Errorf("theme not found"))
	}
	if loading[name] {
		return nil, gterrors.NewThemeError(name, fmt.Errorf("extends cycle detected"))
	}
	loading[name] = true
	defer delete(loading, name)

	var parent *Theme
	if parentRef := parentName(source); parentRef != "" {
		var err error
		parent, err = e.load(parentRef, sources, loading)
		if err != nil {
			return nil, gterrors.NewThemeError(name, fmt.Errorf("extends %q: %w", parentRef, err))
		}
	}

	loaded, err := buildTheme(name, source, parent, e.funcs)
	if err != nil {
		return nil, gterrors.NewThemeError(name, err)
	}
	loaded.tmpl.Funcs(template.FuncMap{"datagrid_theme": e.themeDirective(loaded)})
	e.themes[name] = loaded

	e.log.Debug("theme loaded", "theme", name, "parent", parentRefName(parent), "blocks", len(loaded.own))
	return loaded, nil
}

func parentRefName(parent *Theme) string {
	if parent == nil {
		return ""
	}
	return parent.name
}

// Theme returns the loaded theme named name.
func (e *Environment) Theme(name string) (*Theme, error) {
	loaded, ok := e.themes[name]
	if !ok {
		return nil, gterrors.NewThemeError(name, fmt.Errorf("theme not loaded (available: %s)", strings.Join(e.Names(), ", ")))
	}
	return loaded, nil
}

// Themes returns the named themes as registry resources, in order.
func (e *Environment) Themes(names ...string) ([]theme.Resource, error) {
	resources := make([]theme.Resource, 0, len(names))
	for _, name := range names {
		loaded, err := e.Theme(name)
		if err != nil {
			return nil, err
		}
		resources = append(resources, loaded)
	}
	return resources, nil
}

// Names returns the names of the loaded themes, sorted.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.themes))
	for name := range e.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderBlock executes block from the template set of resource.
func (e *Environment) RenderBlock(resource theme.Resource, block string, data map[string]any) (string, error) {
	loaded, ok := resource.(*Theme)
	if !ok {
		return "", fmt.Errorf("resource %q is not a template theme", resource.Name())
	}
	tmpl := loaded.tmpl.Lookup(block)
	if tmpl == nil {
		return "", fmt.Errorf("theme %q has no block %q", loaded.name, block)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}

// RenderTemplate executes the body of the theme named name with data. Pages
// use it to lay out one or more grids.
func (e *Environment) RenderTemplate(name string, data any) (string, error) {
	loaded, err := e.Theme(name)
	if err != nil {
		return "", err
	}

	var out bytes.Buffer
	if err := loaded.tmpl.Execute(&out, data); err != nil {
		return "", err
	}
	return out.String(), nil
}
