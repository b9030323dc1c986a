package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/gridtheme/internal/view"
	gterrors "github.com/alexisbeaulieu97/gridtheme/pkg/errors"
)

// Validate performs structural and cross-field validation on an entire configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return gterrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	if cfg.ThemeDir != "" && cfg.Git != nil {
		return gterrors.NewValidationError("theme_dir", "theme_dir and git are mutually exclusive (use git.dir)", nil)
	}

	types, err := cfg.TypeRegistry()
	if err != nil {
		return err
	}

	grids := make(map[string]int, len(cfg.Grids))
	for i, grid := range cfg.Grids {
		if first, exists := grids[grid.Name]; exists {
			return gterrors.NewValidationError(fieldForGrid(i, "name"), fmt.Sprintf("duplicate grid name %q (first declared at grids[%d])", grid.Name, first), nil)
		}
		grids[grid.Name] = i

		if err := validateColumns(types, grid.Columns, fieldForGrid(i, "columns")); err != nil {
			return err
		}
	}

	return nil
}

// TypeRegistry returns the built-in column types extended with the custom
// types of the configuration, registered in document order.
func (c *Config) TypeRegistry() (*view.TypeRegistry, error) {
	types := view.NewTypeRegistry()
	for i, typ := range c.Types {
		if err := types.Register(typ.Name, typ.Parent); err != nil {
			return nil, gterrors.NewValidationError(fmt.Sprintf("types[%d]", i), err.Error(), err)
		}
	}
	return types, nil
}

func validateColumns(types *view.TypeRegistry, columns []ColumnConfig, field string) error {
	seen := make(map[string]struct{}, len(columns))
	for i, column := range columns {
		path := fmt.Sprintf("%s[%d]", field, i)

		if _, exists := seen[column.Name]; exists {
			return gterrors.NewValidationError(path+".name", fmt.Sprintf("duplicate column name %q", column.Name), nil)
		}
		seen[column.Name] = struct{}{}

		typ := column.Type
		if typ == "" {
			typ = view.TypeText
		}
		if !types.Has(typ) {
			return gterrors.NewValidationError(path+".type", fmt.Sprintf("unknown column type %q (known: %s)", typ, strings.Join(types.Names(), ", ")), nil)
		}

		chain, _ := types.Chain(typ)
		compound := slices.Contains(chain, view.TypeCompound)
		switch {
		case compound && len(column.Columns) == 0:
			return gterrors.NewValidationError(path+".columns", "compound columns require sub-columns", nil)
		case !compound && len(column.Columns) > 0:
			return gterrors.NewValidationError(path+".columns", fmt.Sprintf("only compound columns may declare sub-columns (type is %q)", typ), nil)
		}

		if err := validateColumns(types, column.Columns, path+".columns"); err != nil {
			return err
		}
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return gterrors.NewValidationError(field, msg, err)
	}

	return gterrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForGrid(index int, field string) string {
	return fmt.Sprintf("grids[%d].%s", index, field)
}
