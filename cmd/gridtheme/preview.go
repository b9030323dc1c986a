package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/gridtheme/internal/tui/preview"
)

func newPreviewCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Browse rendered grids in the terminal",
		Long: `Render grids and browse their output in an interactive terminal view.

Press r to reload the configuration, themes and data without leaving the view.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPreview(rootFlags, opts)
			if err != nil {
				rootFlags.log.Error(err, "preview command failed", "config", opts.configPath)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "gridtheme.yaml", "Path to the configuration file")
	cmd.Flags().StringSliceVarP(&opts.grids, "grid", "g", nil, "Grid to preview (repeatable, defaults to all grids)")
	cmd.Flags().StringVarP(&opts.dataPath, "data", "d", "", "YAML or JSON file holding the rows")
	cmd.Flags().StringVarP(&opts.page, "page", "p", "", "Theme template rendering the whole page")

	return cmd
}

func runPreview(rootFlags *rootFlags, opts *renderOptions) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return newCommandError("preview", "starting the terminal view", errors.New("stdout is not a terminal"), "Use 'gridtheme render' when piping output.")
	}

	// Every load opens a fresh session so edited themes and data are picked up.
	loader := func() ([]preview.Page, error) {
		s, err := openSession("preview", opts.configPath, rootFlags.log)
		if err != nil {
			return nil, err
		}
		return renderPages(s, opts.grids, opts.dataPath, opts.page)
	}

	pages, err := loader()
	if err != nil {
		return err
	}

	if err := preview.Run(pages, loader); err != nil {
		return newCommandError("preview", "running the terminal view", err, "Try a different terminal or use 'gridtheme render'.")
	}
	return nil
}
