package main

import (
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/gridtheme/internal/config"
	"github.com/alexisbeaulieu97/gridtheme/internal/dataset"
	"github.com/alexisbeaulieu97/gridtheme/internal/logger"
	"github.com/alexisbeaulieu97/gridtheme/internal/render"
	"github.com/alexisbeaulieu97/gridtheme/internal/theme"
	"github.com/alexisbeaulieu97/gridtheme/internal/tmplhost"
	"github.com/alexisbeaulieu97/gridtheme/internal/view"
	gterrors "github.com/alexisbeaulieu97/gridtheme/pkg/errors"
)

// session is one render session: a parsed configuration, its loaded themes
// and a renderer bound to them.
type session struct {
	operation string
	cfg       *config.Config
	env       *tmplhost.Environment
	renderer  *render.Renderer
	types     *view.TypeRegistry
	log       *logger.Logger
}

func openSession(operation, configPath string, log *logger.Logger) (*session, error) {
	cfg, err := config.Parse(configPath)
	if err != nil {
		return nil, newCommandError(operation, fmt.Sprintf("loading config %q", configPath), err, "Fix the reported field and run the command again.")
	}

	env, err := tmplhost.NewEnvironment(tmplhost.WithLogger(log))
	if err != nil {
		return nil, newCommandError(operation, "loading the built-in theme", err, "This is a bug; please report it.")
	}

	switch {
	case cfg.Git != nil:
		repo := cfg.Resolve(cfg.Git.Repository)
		if err := env.LoadGit(repo, cfg.Git.Revision, cfg.Git.Dir); err != nil {
			return nil, newCommandError(operation, fmt.Sprintf("loading themes from git repository %q", repo), err, "Check git.repository, git.revision and git.dir in the config.")
		}
	case cfg.ThemeDir != "":
		dir := cfg.Resolve(cfg.ThemeDir)
		if err := env.LoadDir(dir); err != nil {
			return nil, newCommandError(operation, fmt.Sprintf("loading themes from %q", dir), err, "Check theme_dir in the config and the extends comments of your themes.")
		}
	}

	defaults, err := env.Themes(cfg.DefaultThemes...)
	if err != nil {
		return nil, newCommandError(operation, "resolving default themes", err, "List only loaded themes under default_themes.")
	}
	if len(defaults) == 0 {
		defaults, _ = env.Themes(tmplhost.BaseTheme)
	}

	types, err := cfg.TypeRegistry()
	if err != nil {
		return nil, newCommandError(operation, "registering column types", err, "Check the types section of the config.")
	}

	registry := theme.NewRegistry(theme.WithDefaultThemes(defaults...), theme.WithLogger(log))
	renderer := render.New(registry, env, render.WithLogger(log))
	env.Bind(renderer)

	log.Debug("session opened", "config", configPath, "themes", strings.Join(env.Names(), ","))

	return &session{
		operation: operation,
		cfg:       cfg,
		env:       env,
		renderer:  renderer,
		types:     types,
		log:       log,
	}, nil
}

// grid builds the named grid over the rows in dataPath and declares its
// themes. An empty dataPath builds a grid without rows.
func (s *session) grid(name, dataPath string) (*view.GridView, error) {
	gridCfg, ok := s.cfg.Grid(name)
	if !ok {
		return nil, newCommandError(s.operation, fmt.Sprintf("looking up grid %q", name), fmt.Errorf("grid not found"), fmt.Sprintf("Available grids: %s", strings.Join(s.cfg.GridNames(), ", ")))
	}

	var rows []map[string]any
	if dataPath != "" {
		loaded, err := dataset.Load(dataPath)
		if err != nil {
			return nil, newCommandError(s.operation, fmt.Sprintf("loading rows from %q", dataPath), err, "Provide a YAML or JSON file holding a list of rows.")
		}
		rows = loaded
	}

	grid, err := gridCfg.Build(s.types, rows)
	if err != nil {
		return nil, newCommandError(s.operation, fmt.Sprintf("building grid %q", name), err, "Check the columns of the grid in the config.")
	}

	if len(gridCfg.Themes) > 0 {
		resources, err := s.env.Themes(gridCfg.Themes...)
		if err != nil {
			return nil, newCommandError(s.operation, fmt.Sprintf("resolving themes of grid %q", name), err, "List only loaded themes under the grid's themes.")
		}
		s.renderer.SetTheme(grid, resources...)
	}

	return grid, nil
}

// renderGrid renders the grid widget, or the page template when one is given.
func (s *session) renderGrid(grid *view.GridView, page string) (string, error) {
	var (
		out string
		err error
	)
	if page != "" {
		out, err = s.env.RenderTemplate(page, map[string]any{"grid": grid})
	} else {
		out, err = s.renderer.Render(grid, "widget", nil)
	}
	if err != nil {
		return "", newCommandError(s.operation, fmt.Sprintf("rendering grid %q", grid.Name()), gterrors.NewRenderError(grid.Name(), err), "Run 'gridtheme resolve' to see which block each node selects.")
	}
	s.log.Info("grid rendered", "grid", grid.Name(), "rows", grid.Len())
	return out, nil
}
