package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

func TestGridConfig_Build(t *testing.T) {
	doc := `version: "1.0.0"
types:
  - {name: email, parent: text}
grids:
  - name: users
    attr: {class: table}
    vars: {striped: true}
    columns:
      - {name: login, field: user_login, header_attr: {scope: col}}
      - {name: email, type: email, use_raw: true}
      - name: actions
        type: compound
        columns:
          - {name: edit, type: action, label: Modify, options: {uri_scheme: "/users/{user_login}"}}
`
	cfg, err := ParseBytes("gridtheme.yaml", []byte(doc))
	require.NoError(t, err)
	types, err := cfg.TypeRegistry()
	require.NoError(t, err)

	grid, err := cfg.Grids[0].Build(types, []map[string]any{{"user_login": "ada", "email": "ada@example.com"}})
	require.NoError(t, err)

	assert.Equal(t, "users", grid.Name())
	assert.Equal(t, map[string]any{"class": "table"}, grid.Vars()["attr"].(view.Attributes).Map())
	assert.Equal(t, true, grid.Vars()["striped"])

	email, ok := grid.Column("email")
	require.True(t, ok)
	assert.Equal(t, []string{"datagrid_column", "datagrid_text", "datagrid_email", "datagrid_users_email"}, email.BlockPrefixes())

	row, ok := grid.Row(0)
	require.True(t, ok)
	login, _ := row.Cell("login")
	assert.Equal(t, "ada", login.Value)
	mail, _ := row.Cell("email")
	assert.True(t, mail.UseRaw)

	actions, _ := row.Cell("actions")
	require.Len(t, actions.Children, 1)
	assert.Equal(t, "Modify", actions.Children[0].Value)
	assert.Equal(t, "/users/ada", actions.Children[0].Vars()["url"])

	header, _ := grid.Column("login")
	assert.Equal(t, "col", header.Vars()["header_attr"].(view.Attributes).Value("scope"))
}
