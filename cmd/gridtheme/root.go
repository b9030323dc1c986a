package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/gridtheme/internal/logger"
)

type rootFlags struct {
	verbose bool
	log     *logger.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "gridtheme",
		Short:         "gridtheme renders datagrids through layered template themes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := newCommandLogger(cmd, flags.verbose)
			if err != nil {
				return newCommandError("start", "creating logger", err, "Check the --verbose flag and try again.")
			}
			flags.log = log
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(newRenderCmd(flags))
	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newPreviewCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newCommandLogger writes console output to terminals and JSON lines
// everywhere else.
func newCommandLogger(cmd *cobra.Command, verbose bool) (*logger.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}

	out := cmd.ErrOrStderr()
	human := false
	if f, ok := out.(*os.File); ok {
		human = term.IsTerminal(int(f.Fd()))
	}

	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: human,
		Writer:        out,
		Component:     "cli",
	})
}
