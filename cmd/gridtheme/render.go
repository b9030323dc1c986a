package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/gridtheme/internal/tui/preview"
	"github.com/alexisbeaulieu97/gridtheme/pkg/diff"
)

type renderOptions struct {
	configPath string
	grids      []string
	dataPath   string
	page       string
	output     string
	check      bool
}

func newRenderCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render datagrids to HTML",
		Long: `Render one or more datagrids of a configuration through their themes.

Without --page the grid widget block is written. With --page the named theme
template is executed with the grid available as .grid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRender(cmd, rootFlags, opts)
			if err != nil {
				rootFlags.log.Error(err, "render command failed", "config", opts.configPath)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "gridtheme.yaml", "Path to the configuration file")
	cmd.Flags().StringSliceVarP(&opts.grids, "grid", "g", nil, "Grid to render (repeatable, defaults to all grids)")
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "YAML or JSON file holding the rows")
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "Theme template rendering the whole page")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the output to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Compare with --output instead of writing it and print a diff")

	return cmd
}

func runRender(cmd *cobra.Command, rootFlags *rootFlags, opts *renderOptions) error {
	s, err := openSession("render", opts.configPath, rootFlags.log)
	if err != nil {
		return err
	}

	pages, err := renderPages(s, opts.grids, opts.dataPath, opts.page)
	if err != nil {
		return err
	}

	bodies := make([]string, 0, len(pages))
	for _, page := range pages {
		bodies = append(bodies, page.Body)
	}
	out := strings.Join(bodies, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	if opts.check {
		return checkOutput(cmd, opts.output, out)
	}
	if opts.output == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(out), 0o644); err != nil {
		return newCommandError("render", fmt.Sprintf("writing %q", opts.output), err, "Check that the output directory exists and is writable.")
	}
	if rootFlags.verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "→ Wrote %d grid(s) to %s\n", len(pages), opts.output)
	}
	return nil
}

// checkOutput fails when the file at path differs from out.
func checkOutput(cmd *cobra.Command, path, out string) error {
	if path == "" {
		return newCommandError("render", "checking output", errors.New("--check requires --output"), "Pass the file holding the previously rendered output with --output.")
	}

	previous, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return newCommandError("render", fmt.Sprintf("reading %q", path), err, "Check that the output file is readable.")
	}

	changes := diff.Lines(previous, []byte(out), path, "rendered")
	if changes == "" {
		return nil
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), changes)
	return newCommandError("render", fmt.Sprintf("checking %q", path), errors.New("rendered output differs"), "Run the command without --check to update the file.")
}

// renderPages renders the named grids, or every grid of the configuration
// when names is empty.
func renderPages(s *session, names []string, dataPath, page string) ([]preview.Page, error) {
	if len(names) == 0 {
		names = s.cfg.GridNames()
	}
	if len(names) == 0 {
		return nil, newCommandError(s.operation, "selecting grids", errors.New("no grids configured"), "Declare at least one grid in the config.")
	}

	pages := make([]preview.Page, 0, len(names))
	for _, name := range names {
		grid, err := s.grid(name, dataPath)
		if err != nil {
			return nil, err
		}
		body, err := s.renderGrid(grid, page)
		if err != nil {
			return nil, err
		}
		pages = append(pages, preview.Page{Title: name, Body: body})
	}
	return pages, nil
}
