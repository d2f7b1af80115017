package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dux [path...]",
	Short: "An interactive disk-usage analyzer",
	Long: `dux walks one or more directory trees with a parallel traversal
engine and either prints an aggregate report or opens an interactive
browser over the result.`,
	Args: cobra.ArbitraryArgs,
	RunE: runDefault,
}

// runDefault picks between the interactive browser and the aggregate
// report when no subcommand was named: interactive wins only when
// stdout is a terminal and tree mode was not requested.
func runDefault(cmd *cobra.Command, args []string) error {
	if isTerminal(os.Stdout) && !flagTree {
		return runInteractive(cmd, args)
	}
	return runAggregate(cmd, args)
}

func init() {
	rootCmd.Version = version
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(aggregateCmd)
	addScanFlags(rootCmd)
	addAggregateFlags(rootCmd)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
