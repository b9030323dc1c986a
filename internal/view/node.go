// Package view holds the datagrid view-node tree consumed by the theme
// renderer: grids, column headers, rows and cells.
package view

import (
	"iter"
)

// Node is a renderable view node. It is implemented by *GridView,
// *HeaderView and *CellView only.
type Node interface {
	// Name identifies the grid or column the node represents.
	Name() string
	// CacheKey is the render-session identity used for theme and scope lookups.
	CacheKey() string
	// BlockPrefixes lists the type hierarchy, most generic first.
	BlockPrefixes() []string
	// Vars is the default variable scope of the node.
	Vars() map[string]any
	// Owner is the node whose themes apply when the node's own themes do not
	// declare a block. Grids have no owner.
	Owner() Node

	isNode()
}

type base struct {
	name     string
	cacheKey string
	prefixes []string
	vars     map[string]any
}

func newBase(name, cacheKey string, prefixes []string, vars map[string]any) base {
	if vars == nil {
		vars = map[string]any{}
	}
	return base{
		name:     name,
		cacheKey: cacheKey,
		prefixes: append([]string(nil), prefixes...),
		vars:     vars,
	}
}

func (b *base) Name() string            { return b.name }
func (b *base) CacheKey() string        { return b.cacheKey }
func (b *base) BlockPrefixes() []string { return b.prefixes }
func (b *base) Vars() map[string]any    { return b.vars }
func (b *base) isNode()                 {}

// GridView is the root of a rendered datagrid.
type GridView struct {
	base

	columns  []*HeaderView
	rowCount int
	rowAt    func(index int) *RowView
}

// NewGridView creates a grid node without columns or rows.
func NewGridView(name, cacheKey string, prefixes []string, vars map[string]any) *GridView {
	return &GridView{base: newBase(name, cacheKey, prefixes, vars)}
}

// Owner always returns nil for grids.
func (g *GridView) Owner() Node { return nil }

// AddColumn appends a column header and binds it to the grid.
func (g *GridView) AddColumn(header *HeaderView) {
	header.Grid = g
	g.columns = append(g.columns, header)
}

// Columns returns the column headers in display order.
func (g *GridView) Columns() []*HeaderView {
	return g.columns
}

// Column returns the header with the given column name.
func (g *GridView) Column(name string) (*HeaderView, bool) {
	for _, header := range g.columns {
		if header.name == name {
			return header, true
		}
	}
	return nil, false
}

// SetRowSource installs the producer used to build rows lazily. Rows are
// built again on every iteration.
func (g *GridView) SetRowSource(count int, at func(index int) *RowView) {
	g.rowCount = count
	g.rowAt = at
}

// Len reports the number of rows.
func (g *GridView) Len() int {
	return g.rowCount
}

// Row builds the row at index.
func (g *GridView) Row(index int) (*RowView, bool) {
	if g.rowAt == nil || index < 0 || index >= g.rowCount {
		return nil, false
	}
	return g.rowAt(index), true
}

// Rows returns a restartable sequence over the grid rows.
func (g *GridView) Rows() iter.Seq[*RowView] {
	return func(yield func(*RowView) bool) {
		for i := 0; i < g.rowCount; i++ {
			if g.rowAt == nil {
				return
			}
			if !yield(g.rowAt(i)) {
				return
			}
		}
	}
}

// HeaderView is the header of a single column.
type HeaderView struct {
	base

	Grid  *GridView
	Label string
	Type  string
}

// NewHeaderView creates a column header node. The grid back-reference is set
// by GridView.AddColumn.
func NewHeaderView(name, cacheKey string, prefixes []string, label string, vars map[string]any) *HeaderView {
	return &HeaderView{base: newBase(name, cacheKey, prefixes, vars), Label: label}
}

// Owner returns the grid of the header.
func (h *HeaderView) Owner() Node {
	if h.Grid == nil {
		return nil
	}
	return h.Grid
}

// RowView groups the cells of one data row. It is a container and is not
// rendered through block resolution itself.
type RowView struct {
	Index int
	Cells []*CellView
}

// Cell returns the cell for the named column.
func (r *RowView) Cell(name string) (*CellView, bool) {
	for _, cell := range r.Cells {
		if cell.name == name {
			return cell, true
		}
	}
	return nil, false
}

// CellView is a single data cell.
type CellView struct {
	base

	Grid     *GridView
	Column   *HeaderView
	Row      int
	Value    any
	Source   any
	UseRaw   bool
	Children []*CellView
}

// NewCellView creates a cell for column. Cells of the same column share the
// column's cell cache key, so theme resolution is cached across rows.
func NewCellView(column *HeaderView, cacheKey string, prefixes []string, vars map[string]any) *CellView {
	cell := &CellView{base: newBase(column.name, cacheKey, prefixes, vars), Column: column}
	cell.Grid = column.Grid
	return cell
}

// Owner returns the grid of the cell.
func (c *CellView) Owner() Node {
	if c.Grid == nil {
		return nil
	}
	return c.Grid
}

var (
	_ Node = (*GridView)(nil)
	_ Node = (*HeaderView)(nil)
	_ Node = (*CellView)(nil)
)
