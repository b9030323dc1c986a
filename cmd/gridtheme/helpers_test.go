package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const projectConfig = `version: "1.0.0"
theme_dir: themes
default_themes: [base.tmpl]
types:
  - {name: email, parent: text}
grids:
  - name: users
    themes: [custom.tmpl]
    attr: {class: users}
    columns:
      - {name: login, label: Login}
      - {name: email, type: email}
      - name: actions
        type: compound
        columns:
          - {name: edit, type: action, label: Edit, options: {uri_scheme: "/users/{login}"}}
  - name: plain
    columns:
      - {name: login}
`

const customTheme = `{{/* extends "base.tmpl" */}}
{{define "datagrid_users_email_cell"}}<td class="mail">{{.value}}</td>{{end}}
`

const pageTheme = `<html><body>{{datagrid_widget .grid}}</body></html>`

const usersData = `// users
[
  {"login": "ada", "email": "ada@example.com"},
  {"login": "bob", "email": "bob@example.com"},
]
`

// writeProject lays out a configuration with themes and data and returns
// the config path and the data path.
func writeProject(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"gridtheme.yaml":     projectConfig,
		"themes/custom.tmpl": customTheme,
		"themes/page.tmpl":   pageTheme,
		"data/users.jsonc":   usersData,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return filepath.Join(dir, "gridtheme.yaml"), filepath.Join(dir, "data", "users.jsonc")
}

func executeCommand(args ...string) (string, string, error) {
	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}
