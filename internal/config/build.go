package config

import (
	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

// Build creates the view of the grid for rows.
func (g *GridConfig) Build(types *view.TypeRegistry, rows []map[string]any) (*view.GridView, error) {
	opts := []view.Option{view.WithTypes(types), view.WithAttr(g.Attr.Attributes)}
	if len(g.Vars) > 0 {
		opts = append(opts, view.WithVars(g.Vars))
	}

	builder := view.NewBuilder(g.Name, opts...)
	for _, column := range g.Columns {
		builder.Add(column.viewColumn())
	}
	return builder.View(rows)
}

func (c ColumnConfig) viewColumn() view.Column {
	column := view.Column{
		Name:              c.Name,
		Type:              c.Type,
		Label:             c.Label,
		Field:             c.Field,
		TranslationDomain: c.TranslationDomain,
		UseRaw:            c.UseRaw,
		Attr:              c.Attr.Attributes,
		LabelAttr:         c.LabelAttr.Attributes,
		HeaderAttr:        c.HeaderAttr.Attributes,
		CellAttr:          c.CellAttr.Attributes,
		Options:           c.Options,
	}
	for _, child := range c.Columns {
		column.Columns = append(column.Columns, child.viewColumn())
	}
	return column
}
