package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gridtheme/internal/render"
	"github.com/alexisbeaulieu97/gridtheme/internal/view"
)

var (
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(11)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	skippedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type resolveOptions struct {
	configPath string
	grid       string
	column     string
	suffix     string
	dataPath   string
}

func newResolveCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which block renders a grid node",
		Long: `Resolve the block and theme that would render a node without rendering it.

Without --column the grid itself is resolved. Columns of compound columns are
addressed with dots, for example --column actions.edit. Cells are resolved on
the first row of --data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runResolve(cmd, rootFlags, opts)
			if err != nil {
				rootFlags.log.Error(err, "resolve command failed", "grid", opts.grid)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "gridtheme.yaml", "Path to the configuration file")
	cmd.Flags().StringVarP(&opts.grid, "grid", "g", "", "Grid to inspect")
	cmd.Flags().StringVar(&opts.column, "column", "", "Dotted column path")
	cmd.Flags().StringVarP(&opts.suffix, "suffix", "s", "", "Block suffix (defaults to widget, header or cell)")
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "YAML or JSON file holding the rows")
	_ = cmd.MarkFlagRequired("grid")

	return cmd
}

func runResolve(cmd *cobra.Command, rootFlags *rootFlags, opts *resolveOptions) error {
	s, err := openSession("resolve", opts.configPath, rootFlags.log)
	if err != nil {
		return err
	}

	grid, err := s.grid(opts.grid, opts.dataPath)
	if err != nil {
		return err
	}

	node, suffix, err := selectNode(grid, opts.column, opts.suffix)
	if err != nil {
		return newCommandError("resolve", fmt.Sprintf("selecting node %q of grid %q", opts.column, opts.grid), err, "Pass --data with at least one row to resolve cells.")
	}

	resolution, err := s.renderer.Resolve(node, suffix)
	if err != nil {
		var notFound *render.BlockNotFoundError
		if errors.As(err, &notFound) {
			return newCommandError("resolve", fmt.Sprintf("resolving %q", suffix), err, "Declare one of the listed blocks in a theme of the grid.")
		}
		return newCommandError("resolve", fmt.Sprintf("resolving %q", suffix), err, "Check the column types and the suffix.")
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), formatResolution(node, suffix, resolution))
	return err
}

// selectNode finds the node addressed by a dotted column path. The suffix
// decides between the header and the cell of a column.
func selectNode(grid *view.GridView, column, suffix string) (view.Node, string, error) {
	if column == "" {
		if suffix == "" {
			suffix = "widget"
		}
		return grid, suffix, nil
	}
	if suffix == "" {
		suffix = "cell"
	}

	path := strings.Split(column, ".")
	if suffix == "header" && len(path) == 1 {
		header, ok := grid.Column(path[0])
		if !ok {
			return nil, "", fmt.Errorf("column %q not found", column)
		}
		return header, suffix, nil
	}

	row, ok := grid.Row(0)
	if !ok {
		return nil, "", errors.New("grid has no rows")
	}
	cell, ok := row.Cell(path[0])
	for _, name := range path[1:] {
		if !ok {
			break
		}
		ok = false
		for _, child := range cell.Children {
			if child.Name() == name {
				cell, ok = child, true
				break
			}
		}
	}
	if !ok {
		return nil, "", fmt.Errorf("column %q not found", column)
	}
	if suffix == "header" {
		return cell.Column, suffix, nil
	}
	return cell, suffix, nil
}

func formatResolution(node view.Node, suffix string, resolution render.Resolution) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Node:"), node.Name())
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Suffix:"), suffix)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Block:"), selectedStyle.Render(resolution.Block))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Theme:"), themeLabel(resolution))
	fmt.Fprintf(&b, "%s\n", labelStyle.Render("Hierarchy:"))

	for i := len(resolution.Hierarchy) - 1; i >= 0; i-- {
		block := resolution.Hierarchy[i]
		switch {
		case i == resolution.Level:
			fmt.Fprintf(&b, "  → %s\n", selectedStyle.Render(block))
		case i > resolution.Level:
			fmt.Fprintf(&b, "    %s\n", skippedStyle.Render(block+" (not declared)"))
		default:
			fmt.Fprintf(&b, "    %s\n", block)
		}
	}

	return b.String()
}

// themeLabel names the selected theme and, when the block is inherited, the
// ancestor declaring it.
func themeLabel(resolution render.Resolution) string {
	name := resolution.Resource.Name()
	for current := resolution.Resource; current != nil; current = current.Parent() {
		if current.HasBlock(resolution.Block) {
			if current.Name() != name {
				return fmt.Sprintf("%s (block from %s)", name, current.Name())
			}
			break
		}
	}
	return name
}
