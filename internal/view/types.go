package view

import (
	"fmt"
	"sort"
)

// Built-in column types.
const (
	TypeColumn   = "column"
	TypeText     = "text"
	TypeNumber   = "number"
	TypeDateTime = "datetime"
	TypeBoolean  = "boolean"
	TypeAction   = "action"
	TypeCompound = "compound"
)

// BlockPrefix is prepended to every type name to form a block prefix.
const BlockPrefix = "datagrid"

// TypeRegistry records the parent of each column type. The root type
// "column" has no parent.
type TypeRegistry struct {
	parents map[string]string
}

// NewTypeRegistry returns a registry holding the built-in column types.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{parents: map[string]string{TypeColumn: ""}}
	for _, name := range []string{TypeText, TypeNumber, TypeDateTime, TypeBoolean, TypeAction, TypeCompound} {
		r.parents[name] = TypeColumn
	}
	return r
}

// Register adds a column type extending parent.
func (r *TypeRegistry) Register(name, parent string) error {
	if name == "" {
		return fmt.Errorf("column type name is empty")
	}
	if _, exists := r.parents[name]; exists {
		return fmt.Errorf("column type %q already registered", name)
	}
	if _, exists := r.parents[parent]; !exists {
		return fmt.Errorf("column type %q extends unknown type %q", name, parent)
	}
	r.parents[name] = parent
	return nil
}

// Has reports whether the type is registered.
func (r *TypeRegistry) Has(name string) bool {
	_, ok := r.parents[name]
	return ok
}

// Names returns the registered type names sorted.
func (r *TypeRegistry) Names() []string {
	names := make([]string, 0, len(r.parents))
	for name := range r.parents {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Chain returns the type and its ancestors, most generic first.
func (r *TypeRegistry) Chain(name string) ([]string, error) {
	var chain []string
	seen := make(map[string]struct{})
	for current := name; current != ""; {
		parent, ok := r.parents[current]
		if !ok {
			return nil, fmt.Errorf("unknown column type %q", current)
		}
		if _, dup := seen[current]; dup {
			return nil, fmt.Errorf("column type %q has a cyclic parent chain", name)
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
		current = parent
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

// Prefixes returns the block prefixes for a column of the given type:
// "datagrid_<type>" for each type in the chain followed by unique.
func (r *TypeRegistry) Prefixes(name, unique string) ([]string, error) {
	chain, err := r.Chain(name)
	if err != nil {
		return nil, err
	}
	prefixes := make([]string, 0, len(chain)+1)
	for _, typ := range chain {
		prefixes = append(prefixes, BlockPrefix+"_"+typ)
	}
	if unique != "" {
		prefixes = append(prefixes, unique)
	}
	return prefixes, nil
}
