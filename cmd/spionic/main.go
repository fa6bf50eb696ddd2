package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

// newRootCmd builds the command tree. Each call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "spionic",
		Short: "Convert SPIonic ASCII transliteration to polytonic Greek",
		Long: `spionic converts SPIonic, an ASCII transliteration of polytonic Greek,
into precomposed Unicode Greek.

It can convert text from the command line or stdin, serve the converter and
a set of SPIonic lexicons over HTTP and MCP, and import new lexicons from CSV.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(
		newConvertCmd(),
		newNormalizeCmd(),
		newServeCmd(),
		newMCPCmd(),
		newImportCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
