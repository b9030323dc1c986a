package view

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"
)

var sessionCounter atomic.Uint64

// Column describes one datagrid column.
type Column struct {
	Name              string
	Type              string
	Label             string
	Field             string
	TranslationDomain string
	UseRaw            bool
	Attr              Attributes
	LabelAttr         Attributes
	HeaderAttr        Attributes
	CellAttr          Attributes
	Options           map[string]any
	Columns           []Column
}

func (c Column) field() string {
	if c.Field != "" {
		return c.Field
	}
	return c.Name
}

// Option configures a Builder.
type Option func(*Builder)

// WithTypes replaces the built-in column type registry.
func WithTypes(types *TypeRegistry) Option {
	return func(b *Builder) {
		if types != nil {
			b.types = types
		}
	}
}

// WithAttr sets the grid "attr" variable.
func WithAttr(attr Attributes) Option {
	return func(b *Builder) {
		b.attr = attr
	}
}

// WithVars adds default variables to the grid node.
func WithVars(vars map[string]any) Option {
	return func(b *Builder) {
		for key, value := range vars {
			b.vars[key] = value
		}
	}
}

// Builder assembles a GridView from column definitions and row data. Every
// builder owns a distinct cache key namespace, so two grids with the same
// name never share render-time caches.
type Builder struct {
	name    string
	types   *TypeRegistry
	attr    Attributes
	vars    map[string]any
	columns []Column
	keyBase string
}

// NewBuilder starts a grid named name.
func NewBuilder(name string, opts ...Option) *Builder {
	b := &Builder{
		name:  name,
		types: NewTypeRegistry(),
		vars:  map[string]any{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.keyBase = fmt.Sprintf("_%s_%d", name, sessionCounter.Add(1))
	return b
}

// Add appends a column.
func (b *Builder) Add(column Column) *Builder {
	b.columns = append(b.columns, column)
	return b
}

// View builds the grid for rows. Rows are kept by reference and cells are
// created on demand while iterating.
func (b *Builder) View(rows []map[string]any) (*GridView, error) {
	if strings.TrimSpace(b.name) == "" {
		return nil, fmt.Errorf("grid name is empty")
	}

	vars := map[string]any{"attr": b.attr}
	for key, value := range b.vars {
		vars[key] = value
	}
	grid := NewGridView(b.name, b.keyBase, []string{BlockPrefix, BlockPrefix + "_" + b.name}, vars)

	plans := make([]columnPlan, 0, len(b.columns))
	seen := make(map[string]struct{}, len(b.columns))
	claimed := make(map[string]string)
	for _, column := range b.columns {
		if _, dup := seen[column.Name]; dup {
			return nil, fmt.Errorf("grid %q: duplicate column %q", b.name, column.Name)
		}
		seen[column.Name] = struct{}{}

		plan, err := b.plan(grid, column, "", "")
		if err != nil {
			return nil, err
		}
		if err := b.claim(plan, claimed); err != nil {
			return nil, err
		}
		grid.AddColumn(plan.header)
		plans = append(plans, plan)
	}

	grid.SetRowSource(len(rows), func(index int) *RowView {
		row := &RowView{Index: index, Cells: make([]*CellView, 0, len(plans))}
		for _, plan := range plans {
			row.Cells = append(row.Cells, plan.cell(index, rows[index]))
		}
		return row
	})

	return grid, nil
}

type columnPlan struct {
	column   Column
	path     string
	dotted   string
	header   *HeaderView
	cellKey  string
	prefixes []string
	children []columnPlan
}

// claim records the flattened paths of plan and its children. Two columns
// with the same flattened path, such as "actions_edit" and the "edit" child
// of "actions", would share cache keys and block prefixes.
func (b *Builder) claim(plan columnPlan, claimed map[string]string) error {
	if other, taken := claimed[plan.path]; taken {
		return fmt.Errorf("grid %q: column %q collides with column %q (both map to %q)", b.name, plan.dotted, other, plan.path)
	}
	claimed[plan.path] = plan.dotted
	for _, child := range plan.children {
		if err := b.claim(child, claimed); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) plan(grid *GridView, column Column, parent, parentDotted string) (columnPlan, error) {
	if strings.TrimSpace(column.Name) == "" {
		return columnPlan{}, fmt.Errorf("grid %q: column name is empty", b.name)
	}
	typ := column.Type
	if typ == "" {
		typ = TypeText
	}

	path, dotted := column.Name, column.Name
	if parent != "" {
		path = parent + "_" + column.Name
		dotted = parentDotted + "." + column.Name
	}

	prefixes, err := b.types.Prefixes(typ, BlockPrefix+"_"+b.name+"_"+path)
	if err != nil {
		return columnPlan{}, fmt.Errorf("grid %q column %q: %w", b.name, column.Name, err)
	}

	label := column.Label
	if label == "" {
		label = Humanize(column.Name)
	}

	header := NewHeaderView(column.Name, b.keyBase+"_"+path+"_header", prefixes, label, map[string]any{
		"attr":               column.Attr,
		"label_attr":         column.LabelAttr,
		"header_attr":        column.HeaderAttr,
		"translation_domain": column.TranslationDomain,
	})
	header.Type = typ
	header.Grid = grid

	plan := columnPlan{
		column:   column,
		path:     path,
		dotted:   dotted,
		header:   header,
		cellKey:  b.keyBase + "_" + path + "_cell",
		prefixes: prefixes,
	}

	for _, child := range column.Columns {
		childPlan, err := b.plan(grid, child, path, dotted)
		if err != nil {
			return columnPlan{}, err
		}
		plan.children = append(plan.children, childPlan)
	}

	return plan, nil
}

func (p columnPlan) cell(index int, source map[string]any) *CellView {
	vars := map[string]any{
		"attr":               p.column.Attr,
		"cell_attr":          p.column.CellAttr,
		"row_index":          index,
		"translation_domain": p.column.TranslationDomain,
	}

	cell := NewCellView(p.header, p.cellKey, p.prefixes, vars)
	cell.Row = index
	cell.Source = source
	cell.UseRaw = p.column.UseRaw

	switch p.header.Type {
	case TypeAction:
		scheme, _ := p.column.Options["uri_scheme"].(string)
		vars["url"] = expandURI(scheme, source)
		if content, ok := p.column.Options["content"]; ok {
			cell.Value = fmt.Sprint(content)
		} else {
			cell.Value = p.header.Label
		}
	default:
		cell.Value = formatValue(source[p.column.field()])
	}

	for _, child := range p.children {
		cell.Children = append(cell.Children, child.cell(index, source))
	}

	return cell
}

func formatValue(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

// expandURI replaces "{field}" placeholders with values from the row.
func expandURI(scheme string, source map[string]any) string {
	keys := make([]string, 0, len(source))
	for key := range source {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{"+key+"}", formatValue(source[key]))
	}
	return strings.NewReplacer(pairs...).Replace(scheme)
}

var (
	humanizeUpper      = regexp.MustCompile(`([A-Z])`)
	humanizeSeparators = regexp.MustCompile(`[_\s]+`)
)

// Humanize turns a technical name such as "createdAt" or "user_name" into a
// label ("Created at", "User name").
func Humanize(text string) string {
	text = humanizeUpper.ReplaceAllString(text, "_$1")
	text = humanizeSeparators.ReplaceAllString(text, " ")
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(text)
	return string(unicode.ToUpper(first)) + text[size:]
}
