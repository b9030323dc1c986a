// Package render resolves the block that renders a view node across the theme
// and type hierarchies and executes it with a scoped variable context.
package render

import (
	"github.com/alexisbeaulieu97/gridtheme/internal/logger"
	"github.com/alexisbeaulieu97/gridtheme/internal/theme"
	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

// Engine is the host template capability that executes a block.
type Engine interface {
	RenderBlock(resource theme.Resource, block string, data map[string]any) (string, error)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger attaches a logger.
func WithLogger(log *logger.Logger) Option {
	return func(r *Renderer) {
		r.log = log.Component("render")
	}
}

// Resolution is the block selected for a node and suffix.
type Resolution struct {
	Resource  theme.Resource
	Block     string
	Level     int
	Hierarchy []string
}

type query struct {
	hierarchy []string
	level     int
}

// Renderer renders view nodes through themed blocks.
//
// Nested Render calls, for the same node or others, are supported through
// per-session stacks. A Renderer must not be used from several goroutines;
// independent render sessions need independent Renderers and Registries.
type Renderer struct {
	registry  *theme.Registry
	engine    Engine
	queries   map[string]*query
	scopes    map[string][]map[string]any
	themeVars map[string]map[string]any
	log       *logger.Logger
}

// New creates a Renderer resolving blocks in registry and executing them
// with engine.
func New(registry *theme.Registry, engine Engine, opts ...Option) *Renderer {
	r := &Renderer{
		registry:  registry,
		engine:    engine,
		queries:   make(map[string]*query),
		scopes:    make(map[string][]map[string]any),
		themeVars: make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Registry returns the theme registry used for resolution.
func (r *Renderer) Registry() *theme.Registry {
	return r.registry
}

// SetTheme declares the themes of node, highest priority first.
func (r *Renderer) SetTheme(node view.Node, resources ...theme.Resource) {
	r.registry.SetThemes(node, resources...)
}

// SetThemeVars sets variables layered under the node's own variables when a
// render of the node opens a new scope. Theme variables of owners apply too.
func (r *Renderer) SetThemeVars(node view.Node, vars map[string]any) {
	if len(vars) == 0 {
		delete(r.themeVars, node.CacheKey())
		return
	}
	r.themeVars[node.CacheKey()] = vars
}

// Resolve finds the block that an initial Render of node and suffix would
// execute, without rendering it.
func (r *Renderer) Resolve(node view.Node, suffix string) (Resolution, error) {
	hierarchy, err := BlockHierarchy(node.BlockPrefixes(), suffix)
	if err != nil {
		return Resolution{}, err
	}
	return r.resolve(node, suffix, hierarchy, len(hierarchy)-1)
}

func (r *Renderer) resolve(node view.Node, suffix string, hierarchy []string, level int) (Resolution, error) {
	if level < 0 {
		return Resolution{}, &BlockNotFoundError{Suffix: suffix, Hierarchy: hierarchy}
	}

	res, ok := r.registry.ResolveBlockByHierarchy(node, hierarchy, level)
	if !ok {
		return Resolution{}, &BlockNotFoundError{Suffix: suffix, Hierarchy: hierarchy}
	}

	// The block may have been found on a more generic level.
	level = r.registry.HierarchyLevel(node, hierarchy, level)

	return Resolution{
		Resource:  res,
		Block:     hierarchy[level],
		Level:     level,
		Hierarchy: hierarchy,
	}, nil
}

// Render executes the most specific block for node and suffix.
//
// When a block renders the same node and suffix again, the nested call
// resumes one type level above the level that satisfied the previous call,
// which lets a "text_cell" block wrap the "column_cell" block. Each further
// nested call recedes one more level. Variables passed in
// vars are merged over the current scope of the node.
func (r *Renderer) Render(node view.Node, suffix string, vars map[string]any) (string, error) {
	key := node.CacheKey()
	queryKey := key + suffix

	var (
		hierarchy []string
		level     int
	)
	outer, recursive := r.queries[queryKey]
	if recursive {
		hierarchy = outer.hierarchy
		level = outer.level - 1
	} else {
		var err error
		hierarchy, err = BlockHierarchy(node.BlockPrefixes(), suffix)
		if err != nil {
			return "", err
		}
		level = len(hierarchy) - 1
	}

	stack, scoped := r.scopes[key]
	var scope map[string]any
	if scoped {
		scope = stack[len(stack)-1]
	} else {
		scope = r.initialScope(node)
	}

	resolution, err := r.resolve(node, suffix, hierarchy, level)
	if err != nil {
		return "", err
	}

	merged := MergeVariables(scope, vars)

	if recursive {
		// The level stays receded, so a later parent call from the same
		// block resumes above this one.
		outer.level = resolution.Level
	} else {
		r.queries[queryKey] = &query{hierarchy: hierarchy, level: resolution.Level}
		defer delete(r.queries, queryKey)
	}

	r.scopes[key] = append(stack, merged)
	defer func() {
		if !scoped {
			delete(r.scopes, key)
			return
		}
		current := r.scopes[key]
		r.scopes[key] = current[:len(current)-1]
	}()

	if r.log.DebugEnabled() {
		r.log.Debug("rendering block",
			"node", node.Name(),
			"suffix", suffix,
			"block", resolution.Block,
			"theme", resolution.Resource.Name(),
			"level", resolution.Level,
			"nested", recursive || scoped,
		)
	}

	return r.engine.RenderBlock(resolution.Resource, resolution.Block, buildContext(node, merged))
}

// initialScope layers theme variables of the owners, then of the node, under
// the node's own variables.
func (r *Renderer) initialScope(node view.Node) map[string]any {
	var layers []map[string]any
	for current := node; current != nil; current = current.Owner() {
		if vars, ok := r.themeVars[current.CacheKey()]; ok {
			layers = append(layers, vars)
		}
	}
	if len(layers) == 0 {
		return node.Vars()
	}

	scope := map[string]any{}
	for i := len(layers) - 1; i >= 0; i-- {
		scope = MergeVariables(scope, layers[i])
	}
	return MergeVariables(scope, node.Vars())
}

// BlockHierarchy returns "<prefix>_<suffix>" for each prefix, most generic
// first. Duplicate names are rejected here, before any resolution, so a
// malformed prefix list fails even when a block would have been found.
func BlockHierarchy(prefixes []string, suffix string) ([]string, error) {
	if len(prefixes) == 0 {
		return nil, &BlockNotFoundError{Suffix: suffix}
	}

	hierarchy := make([]string, len(prefixes))
	seen := make(map[string]struct{}, len(prefixes))
	for i, prefix := range prefixes {
		name := prefix + "_" + suffix
		if _, dup := seen[name]; dup {
			for j := i; j < len(prefixes); j++ {
				hierarchy[j] = prefixes[j] + "_" + suffix
			}
			return nil, &DuplicateBlockNameError{Suffix: suffix, Hierarchy: hierarchy, Duplicate: name}
		}
		seen[name] = struct{}{}
		hierarchy[i] = name
	}
	return hierarchy, nil
}

// buildContext assembles the data handed to the block.
func buildContext(node view.Node, vars map[string]any) map[string]any {
	data := map[string]any{
		"vars": vars,
		"name": node.Name(),
		"view": node,
	}

	switch n := node.(type) {
	case *view.GridView:
		data["columns"] = n.Columns()
		data["rows"] = n.Rows()
	case *view.HeaderView:
		label, ok := vars["label"]
		if !ok || label == nil {
			label = n.Label
		}
		data["label"] = label
		data["datagrid"] = n.Grid
	case *view.CellView:
		data["datagrid"] = n.Grid
		data["column"] = n.Column
		data["use_raw"] = n.UseRaw
		data["value"] = n.Value
		data["source"] = n.Source
	}

	return data
}
