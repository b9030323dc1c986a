package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gterrors "github.com/alexisbeaulieu97/gridtheme/pkg/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing version",
			doc:       "grids: [{name: users, columns: [{name: id}]}]",
			wantField: "config.version",
			wantMsg:   "'required'",
		},
		{
			name:      "bad semver",
			doc:       "version: \"1.0\"\ngrids: [{name: users, columns: [{name: id}]}]",
			wantField: "config.version",
			wantMsg:   "'semver'",
		},
		{
			name:      "no grids",
			doc:       "version: \"1.0.0\"",
			wantField: "config.grids",
		},
		{
			name:      "grid name with dash",
			doc:       "version: \"1.0.0\"\ngrids: [{name: my-grid, columns: [{name: id}]}]",
			wantField: "config.grids[0].name",
			wantMsg:   "'block_name'",
		},
		{
			name:      "theme name without extension",
			doc:       "version: \"1.0.0\"\ndefault_themes: [base]\ngrids: [{name: users, columns: [{name: id}]}]",
			wantField: "config.defaultthemes[0]",
			wantMsg:   "'theme_name'",
		},
		{
			name:      "duplicate grid",
			doc:       "version: \"1.0.0\"\ngrids: [{name: users, columns: [{name: id}]}, {name: users, columns: [{name: id}]}]",
			wantField: "grids[1].name",
			wantMsg:   "duplicate grid name",
		},
		{
			name:      "duplicate column",
			doc:       "version: \"1.0.0\"\ngrids: [{name: users, columns: [{name: id}, {name: id}]}]",
			wantField: "grids[0].columns[1].name",
			wantMsg:   "duplicate column name",
		},
		{
			name:      "unknown column type",
			doc:       "version: \"1.0.0\"\ngrids: [{name: users, columns: [{name: id, type: money}]}]",
			wantField: "grids[0].columns[0].type",
			wantMsg:   `unknown column type "money"`,
		},
		{
			name:      "custom type with unknown parent",
			doc:       "version: \"1.0.0\"\ntypes: [{name: money, parent: currency}]\ngrids: [{name: users, columns: [{name: id}]}]",
			wantField: "types[0]",
			wantMsg:   "unknown type",
		},
		{
			name:      "compound without sub-columns",
			doc:       "version: \"1.0.0\"\ngrids: [{name: users, columns: [{name: actions, type: compound}]}]",
			wantField: "grids[0].columns[0].columns",
			wantMsg:   "require sub-columns",
		},
		{
			name:      "sub-columns on text column",
			doc:       "version: \"1.0.0\"\ngrids: [{name: users, columns: [{name: title, columns: [{name: x}]}]}]",
			wantField: "grids[0].columns[0].columns",
			wantMsg:   "only compound columns",
		},
		{
			name:      "nested duplicate",
			doc:       "version: \"1.0.0\"\ngrids: [{name: users, columns: [{name: a, type: compound, columns: [{name: x}, {name: x}]}]}]",
			wantField: "grids[0].columns[0].columns[1].name",
		},
		{
			name:      "theme dir and git",
			doc:       "version: \"1.0.0\"\ntheme_dir: themes\ngit: {repository: .}\ngrids: [{name: users, columns: [{name: id}]}]",
			wantField: "theme_dir",
			wantMsg:   "mutually exclusive",
		},
		{
			name:      "git without repository",
			doc:       "version: \"1.0.0\"\ngit: {revision: main}\ngrids: [{name: users, columns: [{name: id}]}]",
			wantField: "config.git.repository",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes("gridtheme.yaml", []byte(tt.doc))
			require.Error(t, err)

			var validationErr *gterrors.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
			if tt.wantMsg != "" {
				assert.Contains(t, validationErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidate_CustomCompoundType(t *testing.T) {
	doc := "version: \"1.0.0\"\ntypes: [{name: toolbar, parent: compound}]\ngrids: [{name: users, columns: [{name: tools, type: toolbar, columns: [{name: edit, type: action}]}]}]"

	cfg, err := ParseBytes("gridtheme.yaml", []byte(doc))
	require.NoError(t, err)
	assert.Len(t, cfg.Grids[0].Columns[0].Columns, 1)
}

func TestValidate_Nil(t *testing.T) {
	err := Validate(nil)

	var validationErr *gterrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "config", validationErr.Field)
}

func TestGetValidator(t *testing.T) {
	assert.Same(t, GetValidator(), GetValidator())
}
