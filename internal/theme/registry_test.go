package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

type fakeResource struct {
	name    string
	blocks  map[string]bool
	parent  *fakeResource
	lookups int
}

func newResource(name string, parent *fakeResource, blocks ...string) *fakeResource {
	res := &fakeResource{name: name, blocks: make(map[string]bool), parent: parent}
	for _, block := range blocks {
		res.blocks[block] = true
	}
	return res
}

func (f *fakeResource) Name() string { return f.name }

func (f *fakeResource) HasBlock(block string) bool {
	f.lookups++
	return f.blocks[block]
}

func (f *fakeResource) Parent() Resource {
	if f.parent == nil {
		return nil
	}
	return f.parent
}

var cellHierarchy = []string{"datagrid_column_cell", "datagrid_text_cell", "datagrid_grid_title_cell"}

func newNodes() (*view.GridView, *view.CellView) {
	grid := view.NewGridView("grid", "_grid", []string{"datagrid", "datagrid_grid"}, nil)
	prefixes := []string{"datagrid_column", "datagrid_text", "datagrid_grid_title"}
	header := view.NewHeaderView("title", "_grid_title_header", prefixes, "Title", nil)
	grid.AddColumn(header)
	cell := view.NewCellView(header, "_grid_title_cell", prefixes, nil)
	return grid, cell
}

func TestResolveBlockByName_MostRecentThemeWins(t *testing.T) {
	grid, _ := newNodes()
	first := newResource("first", nil, "datagrid_widget")
	second := newResource("second", nil, "datagrid_widget")

	reg := NewRegistry()
	reg.SetThemes(grid, first, second)

	res, ok := reg.ResolveBlockByName(grid, "datagrid_widget")
	require.True(t, ok)
	assert.Same(t, first, res)
}

func TestResolveBlockByName_ParentChainExhaustedBeforeNextTheme(t *testing.T) {
	grid, _ := newNodes()
	parent := newResource("parent", nil, "datagrid_widget")
	child := newResource("child", parent)
	other := newResource("other", nil, "datagrid_widget")

	reg := NewRegistry()
	reg.SetThemes(grid, child, other)

	res, ok := reg.ResolveBlockByName(grid, "datagrid_widget")
	require.True(t, ok)
	assert.Same(t, child, res, "the declared theme is cached, not the ancestor declaring the block")
	assert.Zero(t, other.lookups)
}

func TestResolveBlockByName_CachesNegativeResult(t *testing.T) {
	grid, _ := newNodes()
	res := newResource("base", nil, "datagrid_widget")

	reg := NewRegistry()
	reg.SetThemes(grid, res)

	_, ok := reg.ResolveBlockByName(grid, "datagrid_missing")
	require.False(t, ok)
	lookups := res.lookups

	_, ok = reg.ResolveBlockByName(grid, "datagrid_missing")
	require.False(t, ok)
	assert.Equal(t, lookups, res.lookups, "cached negative must not search again")
}

func TestSetThemes_InvalidatesCachedResolutions(t *testing.T) {
	grid, _ := newNodes()
	reg := NewRegistry()

	_, ok := reg.ResolveBlockByName(grid, "datagrid_widget")
	require.False(t, ok)

	res := newResource("base", nil, "datagrid_widget")
	reg.SetThemes(grid, res)

	found, ok := reg.ResolveBlockByName(grid, "datagrid_widget")
	require.True(t, ok)
	assert.Same(t, res, found)
	assert.Equal(t, []Resource{res}, reg.Themes(grid))
}

func TestResolveBlockByHierarchy_FallsBackToGenericType(t *testing.T) {
	_, cell := newNodes()
	res := newResource("base", nil, "datagrid_column_cell")

	reg := NewRegistry()
	reg.SetThemes(cell, res)

	found, ok := reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	require.True(t, ok)
	assert.Same(t, res, found)
	assert.Equal(t, 0, reg.HierarchyLevel(cell, cellHierarchy, 2))
	assert.Equal(t, 0, reg.HierarchyLevel(cell, cellHierarchy, 1))
}

func TestResolveBlockByHierarchy_RecordsShortcut(t *testing.T) {
	_, cell := newNodes()
	res := newResource("base", nil, "datagrid_column_cell")

	reg := NewRegistry()
	reg.SetThemes(cell, res)

	_, ok := reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	require.True(t, ok)
	lookups := res.lookups

	found, ok := reg.ResolveBlockByName(cell, "datagrid_grid_title_cell")
	require.True(t, ok)
	assert.Same(t, res, found)
	found, ok = reg.ResolveBlockByName(cell, "datagrid_text_cell")
	require.True(t, ok)
	assert.Same(t, res, found)
	assert.Equal(t, lookups, res.lookups)
}

func TestResolveBlockByHierarchy_PrefersMostSpecificType(t *testing.T) {
	_, cell := newNodes()
	res := newResource("base", nil, "datagrid_column_cell", "datagrid_text_cell")

	reg := NewRegistry()
	reg.SetThemes(cell, res)

	_, ok := reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	require.True(t, ok)
	assert.Equal(t, 1, reg.HierarchyLevel(cell, cellHierarchy, 2))
}

func TestResolveBlockByHierarchy_NotFound(t *testing.T) {
	_, cell := newNodes()
	reg := NewRegistry()
	reg.SetThemes(cell, newResource("empty", nil))

	_, ok := reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	assert.False(t, ok)
	assert.Equal(t, NotFound, reg.HierarchyLevel(cell, cellHierarchy, 2))
	assert.Equal(t, NotFound, reg.HierarchyLevel(cell, cellHierarchy, 0))
}

func TestHierarchyLevel_BackfillsFlatLookupWithRequestedLevel(t *testing.T) {
	_, cell := newNodes()
	res := newResource("base", nil, "datagrid_text_cell")

	reg := NewRegistry()
	reg.SetThemes(cell, res)

	_, ok := reg.ResolveBlockByName(cell, "datagrid_text_cell")
	require.True(t, ok)

	assert.Equal(t, 1, reg.HierarchyLevel(cell, cellHierarchy, 1))
}

func TestResolveBlockByHierarchy_FlatNegativeDoesNotHideFallback(t *testing.T) {
	_, cell := newNodes()
	res := newResource("base", nil, "datagrid_column_cell")

	reg := NewRegistry()
	reg.SetThemes(cell, res)

	_, ok := reg.ResolveBlockByName(cell, "datagrid_text_cell")
	require.False(t, ok)

	found, ok := reg.ResolveBlockByHierarchy(cell, cellHierarchy, 1)
	require.True(t, ok)
	assert.Same(t, res, found)
	assert.Equal(t, 0, reg.HierarchyLevel(cell, cellHierarchy, 1))
}

func TestResolveBlockByHierarchy_UsesParentFoundByFlatLookup(t *testing.T) {
	_, cell := newNodes()
	res := newResource("base", nil, "datagrid_text_cell")

	reg := NewRegistry()
	reg.SetThemes(cell, res)

	_, ok := reg.ResolveBlockByName(cell, "datagrid_text_cell")
	require.True(t, ok)

	found, ok := reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	require.True(t, ok)
	assert.Same(t, res, found)
	assert.Equal(t, 1, reg.HierarchyLevel(cell, cellHierarchy, 2))
}

func TestDefaultThemes_HaveLowestPriority(t *testing.T) {
	grid, cell := newNodes()
	base := newResource("base", nil, "datagrid_widget", "datagrid_column_cell")
	custom := newResource("custom", nil, "datagrid_column_cell")

	reg := NewRegistry(WithDefaultThemes(base))

	found, ok := reg.ResolveBlockByName(grid, "datagrid_widget")
	require.True(t, ok)
	assert.Same(t, base, found)

	reg.SetThemes(cell, custom)
	found, ok = reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	require.True(t, ok)
	assert.Same(t, custom, found)
}

func TestOwnerThemes_ApplyToCellsAndInvalidate(t *testing.T) {
	grid, cell := newNodes()
	base := newResource("base", nil, "datagrid_column_cell")
	gridTheme := newResource("grid", nil, "datagrid_column_cell")
	replacement := newResource("replacement", nil, "datagrid_text_cell")

	reg := NewRegistry(WithDefaultThemes(base))
	reg.SetThemes(grid, gridTheme)

	found, ok := reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	require.True(t, ok)
	assert.Same(t, gridTheme, found)

	reg.SetThemes(grid, replacement)

	found, ok = reg.ResolveBlockByHierarchy(cell, cellHierarchy, 2)
	require.True(t, ok)
	assert.Same(t, replacement, found)
	assert.Equal(t, 1, reg.HierarchyLevel(cell, cellHierarchy, 2))
}

func TestRegistriesAreIsolated(t *testing.T) {
	grid, _ := newNodes()
	first := NewRegistry()
	second := NewRegistry()

	first.SetThemes(grid, newResource("base", nil, "datagrid_widget"))

	_, ok := second.ResolveBlockByName(grid, "datagrid_widget")
	assert.False(t, ok)
}
