package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

func TestRenderAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attrs any
		want  string
	}{
		{name: "empty map", attrs: map[string]any{}, want: ""},
		{name: "single", attrs: map[string]any{"id": 1}, want: ` id="1"`},
		{name: "ordered", attrs: view.Attrs("id", 1, "foo", "bar"), want: ` id="1" foo="bar"`},
		{name: "sorted map", attrs: map[string]string{"foo": "bar", "id": "1"}, want: ` foo="bar" id="1"`},
		{name: "zero attributes", attrs: view.Attributes{}, want: ""},
		{name: "not attributes", attrs: "id", want: ""},
		{name: "nil", attrs: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderAttributes(tt.attrs))
		})
	}
}

func TestMergeVariables(t *testing.T) {
	scope := map[string]any{
		"attr":       view.Attrs("class", "y"),
		"label_attr": map[string]any{"for": "a"},
		"cell_attr":  view.Attrs("class", "cell"),
		"items":      []string{"a"},
		"keep":       1,
	}

	merged := MergeVariables(scope, map[string]any{
		"attr":       map[string]any{"id": "x"},
		"label_attr": view.Attrs("for", "b"),
		"cell_attr":  nil,
		"items":      []string{},
	})

	attr, ok := merged["attr"].(view.Attributes)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"class": "y", "id": "x"}, attr.Map())

	labelAttr, ok := merged["label_attr"].(view.Attributes)
	require.True(t, ok)
	assert.Equal(t, "b", labelAttr.Value("for"))

	assert.Nil(t, merged["cell_attr"], "nil replaces the scope value")
	assert.Equal(t, []string{}, merged["items"])
	assert.Equal(t, 1, merged["keep"])

	assert.Equal(t, view.Attrs("class", "y"), scope["attr"], "scope must not be modified")
}

func TestMergeVariables_NonAttributeValueReplaces(t *testing.T) {
	merged := MergeVariables(
		map[string]any{"attr": view.Attrs("class", "y")},
		map[string]any{"attr": "raw"},
	)
	assert.Equal(t, "raw", merged["attr"])
}

func TestBlockHierarchy(t *testing.T) {
	hierarchy, err := BlockHierarchy([]string{"datagrid_column", "datagrid_text"}, "cell")
	require.NoError(t, err)
	assert.Equal(t, []string{"datagrid_column_cell", "datagrid_text_cell"}, hierarchy)

	_, err = BlockHierarchy(nil, "cell")
	var notFound *BlockNotFoundError
	assert.ErrorAs(t, err, &notFound)

	_, err = BlockHierarchy([]string{"a", "b", "a"}, "cell")
	var duplicate *DuplicateBlockNameError
	require.ErrorAs(t, err, &duplicate)
	assert.Equal(t, "a_cell", duplicate.Duplicate)
	assert.Equal(t, []string{"a_cell", "b_cell", "a_cell"}, duplicate.Hierarchy)
}

func TestBlockNotFoundError_Message(t *testing.T) {
	err := &BlockNotFoundError{Suffix: "cell", Hierarchy: []string{"datagrid_column_cell", "datagrid_text_cell"}}
	assert.Equal(t,
		`unable to render the cell as none of the following blocks exist: "datagrid_text_cell", "datagrid_column_cell"`,
		err.Error())
}
