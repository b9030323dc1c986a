package tmplhost

import (
	"fmt"

	"github.com/alexisbeaulieu97/gridtheme/internal/theme"
	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

// SelfTheme names the theme executing the directive. Each theme binds the
// directive on its own template set, which holds the blocks inherited from
// its parents too, so "_self" in an inherited block names the executing
// child theme rather than the file that defines the block.
const SelfTheme = "_self"

// themeDirective returns the datagrid_theme template function bound to self:
//
//	{{datagrid_theme .grid "bootstrap.tmpl"}}
//	{{datagrid_theme .grid "_self" "base.tmpl" (dict "striped" true)}}
//
// Arguments after the node are theme names, lists of names or *Theme values,
// highest priority first. A trailing map sets the theme variables of the
// node. The directive renders nothing.
func (e *Environment) themeDirective(self *Theme) func(view.Node, ...any) (string, error) {
	return func(node view.Node, args ...any) (string, error) {
		if node == nil {
			return "", fmt.Errorf("datagrid_theme: node is nil")
		}
		if e.renderer == nil {
			return "", fmt.Errorf("datagrid_theme: no renderer bound to the environment")
		}

		resources, vars, err := e.themeArgs(self, args)
		if err != nil {
			return "", fmt.Errorf("datagrid_theme: %w", err)
		}

		e.renderer.SetTheme(node, resources...)
		e.renderer.SetThemeVars(node, vars)

		e.log.Debug("theme declared", "node", node.Name(), "themes", resourceNames(resources))
		return "", nil
	}
}

func (e *Environment) themeArgs(self *Theme, args []any) ([]theme.Resource, map[string]any, error) {
	var (
		resources []theme.Resource
		vars      map[string]any
	)

	add := func(value any) error {
		switch v := value.(type) {
		case *Theme:
			if v == nil {
				return fmt.Errorf("theme is nil")
			}
			resources = append(resources, v)
		case string:
			resolved, err := e.lookup(self, v)
			if err != nil {
				return err
			}
			resources = append(resources, resolved)
		default:
			return fmt.Errorf("unsupported theme reference %T", value)
		}
		return nil
	}

	for i, arg := range args {
		switch v := arg.(type) {
		case map[string]any:
			if i != len(args)-1 {
				return nil, nil, fmt.Errorf("variables must be the last argument")
			}
			vars = v
		case []string:
			for _, name := range v {
				if err := add(name); err != nil {
					return nil, nil, err
				}
			}
		case []any:
			for _, item := range v {
				if err := add(item); err != nil {
					return nil, nil, err
				}
			}
		default:
			if err := add(arg); err != nil {
				return nil, nil, err
			}
		}
	}

	if len(resources) == 0 {
		return nil, nil, fmt.Errorf("no theme given")
	}
	return resources, vars, nil
}

func (e *Environment) lookup(self *Theme, name string) (*Theme, error) {
	if name == SelfTheme {
		if self == nil {
			return nil, fmt.Errorf("%s used outside of a theme", SelfTheme)
		}
		return self, nil
	}
	return e.Theme(name)
}

func resourceNames(resources []theme.Resource) []string {
	names := make([]string, len(resources))
	for i, res := range resources {
		names[i] = res.Name()
	}
	return names
}
