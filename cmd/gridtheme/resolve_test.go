package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/gridtheme/internal/render"
)

func TestResolveCommand(t *testing.T) {
	configPath, dataPath := writeProject(t)

	tests := []struct {
		name      string
		args      []string
		wantBlock string
		wantTheme string
	}{
		{
			name:      "grid widget",
			args:      []string{"--grid", "users"},
			wantBlock: "datagrid_widget",
			wantTheme: "custom.tmpl (block from base.tmpl)",
		},
		{
			name:      "grid without themes uses defaults",
			args:      []string{"--grid", "plain"},
			wantBlock: "datagrid_widget",
			wantTheme: "base.tmpl\n",
		},
		{
			name:      "overridden cell",
			args:      []string{"--grid", "users", "--column", "email", "--data", dataPath},
			wantBlock: "datagrid_users_email_cell",
			wantTheme: "custom.tmpl\n",
		},
		{
			name:      "text cell falls back to column cell",
			args:      []string{"--grid", "users", "--column", "login", "--data", dataPath},
			wantBlock: "datagrid_column_cell",
			wantTheme: "custom.tmpl (block from base.tmpl)",
		},
		{
			name:      "nested action cell",
			args:      []string{"--grid", "users", "--column", "actions.edit", "--data", dataPath},
			wantBlock: "datagrid_action_cell",
			wantTheme: "custom.tmpl (block from base.tmpl)",
		},
		{
			name:      "header",
			args:      []string{"--grid", "users", "--column", "login", "--suffix", "header"},
			wantBlock: "datagrid_column_header",
			wantTheme: "custom.tmpl (block from base.tmpl)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"resolve", "--config", configPath}, tt.args...)
			stdout, _, err := executeCommand(args...)
			require.NoError(t, err)

			assert.Contains(t, stdout, tt.wantBlock)
			assert.Contains(t, stdout, tt.wantTheme)
		})
	}
}

func TestResolveCommand_Errors(t *testing.T) {
	configPath, dataPath := writeProject(t)

	_, _, err := executeCommand("resolve", "--config", configPath, "--grid", "users", "--column", "email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grid has no rows")

	_, _, err = executeCommand("resolve", "--config", configPath, "--grid", "users", "--column", "actions.delete", "--data", dataPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "actions.delete" not found`)

	_, _, err = executeCommand("resolve", "--config", configPath, "--grid", "users", "--suffix", "footer")
	var notFound *render.BlockNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "footer", notFound.Suffix)
}
