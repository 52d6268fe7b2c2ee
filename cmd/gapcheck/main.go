// Command gapcheck runs the gap analyzer against an itinerary stored in a
// JSON file, without a database or server.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pkordes/itinerary-analyzer/internal/cli"
)

func main() {
	root := cli.NewRootCmd(cli.Options{Output: os.Stdout})
	if err := root.Execute(); err != nil {
		if !errors.Is(err, cli.ErrSevereGaps) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
