package tmplhost

import (
	"fmt"
	"regexp"
	"sort"
	"text/template"
	"text/template/parse"

	"github.com/alexisbeaulieu97/gridtheme/internal/theme"
)

// extendsPattern matches the extends comment on the first line of a theme:
//
//	{{/* extends "base.tmpl" */}}
var extendsPattern = regexp.MustCompile(`^\s*\{\{-?\s*/\*\s*extends\s+"([^"]+)"\s*\*/\s*-?\}\}`)

// Theme is a loaded theme file. Its template set holds the blocks of the
// whole extends chain, the blocks defined by the file itself override the
// inherited ones.
type Theme struct {
	name   string
	parent *Theme
	tmpl   *template.Template
	own    map[string]struct{}
}

var _ theme.Resource = (*Theme)(nil)

// Name returns the theme name, the slash separated path of the file.
func (t *Theme) Name() string {
	return t.name
}

// HasBlock reports whether the file itself defines block. Inherited blocks
// are found by walking Parent.
func (t *Theme) HasBlock(block string) bool {
	_, ok := t.own[block]
	return ok
}

// Parent returns the extended theme, or nil.
func (t *Theme) Parent() theme.Resource {
	if t.parent == nil {
		return nil
	}
	return t.parent
}

// Blocks returns the names of the blocks the file defines, sorted.
func (t *Theme) Blocks() []string {
	blocks := make([]string, 0, len(t.own))
	for name := range t.own {
		blocks = append(blocks, name)
	}
	sort.Strings(blocks)
	return blocks
}

// parentName returns the theme named by the extends comment, or "".
func parentName(source string) string {
	match := extendsPattern.FindStringSubmatch(source)
	if match == nil {
		return ""
	}
	return match[1]
}

// ownBlocks parses source on its own and returns the non-empty templates it
// defines. Empty definitions do not replace inherited ones and are skipped.
func ownBlocks(name, source string, funcs template.FuncMap) (map[string]struct{}, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(source)
	if err != nil {
		return nil, err
	}

	own := make(map[string]struct{})
	for _, defined := range tmpl.Templates() {
		if defined.Name() == name {
			continue
		}
		if defined.Tree == nil || parse.IsEmptyTree(defined.Tree.Root) {
			continue
		}
		own[defined.Name()] = struct{}{}
	}
	return own, nil
}

// buildTheme parses source on top of the template set of parent.
func buildTheme(name, source string, parent *Theme, funcs template.FuncMap) (*Theme, error) {
	own, err := ownBlocks(name, source, funcs)
	if err != nil {
		return nil, err
	}

	var root *template.Template
	if parent != nil {
		cloned, err := parent.tmpl.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone parent %q: %w", parent.name, err)
		}
		root = cloned.New(name)
	} else {
		root = template.New(name).Funcs(funcs)
	}

	if _, err := root.Parse(source); err != nil {
		return nil, err
	}

	return &Theme{name: name, parent: parent, tmpl: root, own: own}, nil
}
