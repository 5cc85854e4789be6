// Command doorplan drives one or more door-placement optimization cases
// from a TOML config (component C9): it loads a floor plan, activates
// its configured doors, runs the Metropolis-Hastings search to
// completion, and writes the optimized floor plan back out.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "doorplan",
		Short:         "Optimize interior door placement on a triangulated floor plan",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd())
	return root
}
