// Package cli implements the gapcheck command line tool.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Options configure the root command.
type Options struct {
	Output io.Writer
}

// NewRootCmd builds the gapcheck command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cmd := &cobra.Command{
		Use:           "gapcheck",
		Short:         "Find gaps in a trip itinerary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(opts.Output)

	cmd.AddCommand(newCheckCmd())
	return cmd
}
