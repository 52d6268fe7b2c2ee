package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkordes/itinerary-analyzer/internal/domain"
	"github.com/pkordes/itinerary-analyzer/internal/gaps"
)

// ErrSevereGaps is returned by check when --fail-on-error is set and at least
// one error-severity gap was found. The report has already been printed.
var ErrSevereGaps = errors.New("itinerary has error-severity gaps")

type checkCmd struct {
	output      string
	minSeverity string
	failOnError bool
}

func newCheckCmd() *cobra.Command {
	cc := &checkCmd{}
	cmd := &cobra.Command{
		Use:   "check <file.json>",
		Short: "Analyze an itinerary file and print its gaps",
		Args:  cobra.ExactArgs(1),
		RunE:  cc.run,
	}

	cmd.Flags().StringVarP(&cc.output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().StringVar(&cc.minSeverity, "min-severity", "info", "Hide gaps below this severity (info, warning, error)")
	cmd.Flags().BoolVar(&cc.failOnError, "fail-on-error", false, "Exit non-zero when an error-severity gap is found")

	return cmd
}

func (cc *checkCmd) run(cmd *cobra.Command, args []string) error {
	minSev, err := domain.ParseSeverity(cc.minSeverity)
	if err != nil {
		return fmt.Errorf("--min-severity: %w", err)
	}
	rep, err := newReporter(cc.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open itinerary: %w", err)
	}
	defer f.Close()

	items, err := readItinerary(f)
	if err != nil {
		return err
	}

	found := gaps.Detect(items)
	shown := make([]domain.Gap, 0, len(found))
	severe := false
	for _, g := range found {
		if g.Severity == domain.SeverityError {
			severe = true
		}
		if g.Severity >= minSev {
			shown = append(shown, g)
		}
	}

	if err := rep.report(len(items), shown); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if severe && cc.failOnError {
		return ErrSevereGaps
	}
	return nil
}
