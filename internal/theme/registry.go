// Package theme tracks which theme resources apply to a view node and caches
// which resource declares a given block.
package theme

import (
	"github.com/alexisbeaulieu97/gridtheme/internal/logger"
	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

// Resource is a theme template unit provided by the host template engine.
type Resource interface {
	// Name identifies the resource in diagnostics.
	Name() string
	// HasBlock reports whether the resource itself declares the block.
	HasBlock(block string) bool
	// Parent returns the resource this one extends, or nil.
	Parent() Resource
}

// NotFound is the hierarchy level reported for blocks that no theme declares.
const NotFound = -1

// Option configures a Registry.
type Option func(*Registry)

// WithDefaultThemes sets the lowest priority themes, searched for every node
// after its own and its owners' themes.
func WithDefaultThemes(resources ...Resource) Option {
	return func(r *Registry) {
		r.defaults = append([]Resource(nil), resources...)
	}
}

// WithLogger attaches a logger for cache-miss diagnostics.
func WithLogger(log *logger.Logger) Option {
	return func(r *Registry) {
		r.log = log.Component("theme")
	}
}

// Registry maps view cache keys to their themes and memoizes block lookups.
//
// A cached nil resource means the block was searched and not found. Entries
// are removed, not reset, when themes change so "never queried" stays
// distinguishable from "not found".
//
// Registry is not safe for concurrent use; each render session owns one.
type Registry struct {
	defaults   []Resource
	themes     map[string][]Resource
	resources  map[string]map[string]Resource
	levels     map[string]map[string]int
	dependents map[string]map[string]struct{}
	log        *logger.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		themes:     make(map[string][]Resource),
		resources:  make(map[string]map[string]Resource),
		levels:     make(map[string]map[string]int),
		dependents: make(map[string]map[string]struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetThemes replaces the themes of node, most specific first, and drops every
// cached resolution that depended on them.
func (r *Registry) SetThemes(node view.Node, resources ...Resource) {
	key := node.CacheKey()
	r.themes[key] = append([]Resource(nil), resources...)
	r.invalidate(key)

	if r.log.DebugEnabled() {
		names := make([]string, 0, len(resources))
		for _, res := range resources {
			names = append(names, res.Name())
		}
		r.log.Debug("themes declared", "node", node.Name(), "cache_key", key, "themes", names)
	}
}

// Themes returns the themes declared for node.
func (r *Registry) Themes(node view.Node) []Resource {
	return r.themes[node.CacheKey()]
}

func (r *Registry) invalidate(key string) {
	delete(r.resources, key)
	delete(r.levels, key)

	dependents := r.dependents[key]
	delete(r.dependents, key)
	for dependent := range dependents {
		r.invalidate(dependent)
	}
}

// ResolveBlockByName returns the resource declaring block for node, searching
// only the theme hierarchy.
func (r *Registry) ResolveBlockByName(node view.Node, block string) (Resource, bool) {
	key := node.CacheKey()
	if res, ok := r.resources[key][block]; ok {
		return res, res != nil
	}

	r.loadBlock(key, node, block)
	res := r.resources[key][block]
	return res, res != nil
}

// ResolveBlockByHierarchy resolves hierarchy[level], falling back to more
// generic block names when no theme declares it.
func (r *Registry) ResolveBlockByHierarchy(node view.Node, hierarchy []string, level int) (Resource, bool) {
	key := node.CacheKey()
	block := hierarchy[level]

	if !r.hierarchyResolved(key, block) {
		r.loadHierarchy(key, node, hierarchy, level)
	}

	res := r.resources[key][block]
	return res, res != nil
}

// HierarchyLevel returns the level at which hierarchy[level] was actually
// found, or NotFound.
//
// A block resolved through ResolveBlockByName has no recorded level; it is
// assumed to live at the requested level. This matches the historical
// behavior but is not verified against the hierarchy.
func (r *Registry) HierarchyLevel(node view.Node, hierarchy []string, level int) int {
	key := node.CacheKey()
	block := hierarchy[level]

	if !r.hierarchyResolved(key, block) {
		r.loadHierarchy(key, node, hierarchy, level)
	}

	if found, ok := r.levels[key][block]; ok {
		return found
	}
	r.setLevel(key, block, level)
	return level
}

// hierarchyResolved reports whether a cached entry can answer a hierarchy
// query. A negative answer from a flat lookup did not consider the more
// generic levels, so it does not count.
func (r *Registry) hierarchyResolved(key, block string) bool {
	res, ok := r.resources[key][block]
	if !ok {
		return false
	}
	if res != nil {
		return true
	}
	_, leveled := r.levels[key][block]
	return leveled
}

func (r *Registry) loadHierarchy(key string, node view.Node, hierarchy []string, level int) bool {
	block := hierarchy[level]

	if r.loadBlock(key, node, block) {
		r.setLevel(key, block, level)
		return true
	}

	if level > 0 {
		parentLevel := level - 1
		parentBlock := hierarchy[parentLevel]

		if parent, ok := r.resources[key][parentBlock]; ok && parent != nil {
			// Found by a flat lookup, so it lives exactly at the parent level.
			if _, leveled := r.levels[key][parentBlock]; !leveled {
				r.setLevel(key, parentBlock, parentLevel)
			}
			r.shortcut(key, block, parentBlock)
			return true
		}

		if !r.hierarchyResolved(key, parentBlock) && r.loadHierarchy(key, node, hierarchy, parentLevel) {
			r.shortcut(key, block, parentBlock)
			return true
		}
	}

	r.setResource(key, block, nil)
	r.setLevel(key, block, NotFound)
	return false
}

func (r *Registry) shortcut(key, block, parentBlock string) {
	r.setResource(key, block, r.resources[key][parentBlock])
	r.setLevel(key, block, r.levels[key][parentBlock])

	if r.log.DebugEnabled() {
		r.log.Debug("block shortcut recorded", "cache_key", key, "block", block, "resolved", parentBlock)
	}
}

// loadBlock searches the node's themes, then its owners' themes, then the
// default themes. The first theme whose inheritance chain declares block
// wins; the declared theme, not the ancestor, is cached.
func (r *Registry) loadBlock(key string, node view.Node, block string) bool {
	if res := r.search(r.themes[key], block); res != nil {
		r.setResource(key, block, res)
		return true
	}

	for owner := node.Owner(); owner != nil; owner = owner.Owner() {
		ownerKey := owner.CacheKey()
		r.addDependent(ownerKey, key)
		if res := r.search(r.themes[ownerKey], block); res != nil {
			r.setResource(key, block, res)
			return true
		}
	}

	if res := r.search(r.defaults, block); res != nil {
		r.setResource(key, block, res)
		return true
	}

	if r.log.DebugEnabled() {
		r.log.Debug("block not declared by any theme", "node", node.Name(), "cache_key", key, "block", block)
	}
	r.setResource(key, block, nil)
	return false
}

func (r *Registry) search(resources []Resource, block string) Resource {
	for _, res := range resources {
		for current := res; current != nil; current = current.Parent() {
			if current.HasBlock(block) {
				return res
			}
		}
	}
	return nil
}

func (r *Registry) addDependent(owner, key string) {
	set, ok := r.dependents[owner]
	if !ok {
		set = make(map[string]struct{})
		r.dependents[owner] = set
	}
	set[key] = struct{}{}
}

func (r *Registry) setResource(key, block string, res Resource) {
	blocks, ok := r.resources[key]
	if !ok {
		blocks = make(map[string]Resource)
		r.resources[key] = blocks
	}
	blocks[block] = res
}

func (r *Registry) setLevel(key, block string, level int) {
	levels, ok := r.levels[key]
	if !ok {
		levels = make(map[string]int)
		r.levels[key] = levels
	}
	levels[block] = level
}
