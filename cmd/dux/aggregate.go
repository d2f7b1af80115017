package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dux-cli/dux/internal/format"
	"github.com/dux-cli/dux/internal/printer"
	"github.com/dux-cli/dux/internal/scan"
)

var (
	flagDepth  int
	flagTop    int
	flagTree   bool
	flagFormat string
)

var aggregateCmd = &cobra.Command{
	Use:     "aggregate [path...]",
	Aliases: []string{"a"},
	Short:   "Print a non-interactive disk-usage report",
	Args:    cobra.ArbitraryArgs,
	RunE:    runAggregate,
}

func addAggregateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&flagDepth, "depth", "d", 0, "Limit tree output to this many levels (0 = unlimited)")
	cmd.Flags().IntVarP(&flagTop, "top", "t", 0, "Show only the N largest entries per directory (0 = unlimited)")
	cmd.Flags().BoolVarP(&flagTree, "tree", "T", false, "Print a glyph tree instead of a flat listing")
	cmd.Flags().StringVarP(&flagFormat, "format", "f", "metric", "Unit system: metric|binary|bytes|gb|gib|mb|mib")
}

func init() {
	addScanFlags(aggregateCmd)
	addAggregateFlags(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	switch format.System(flagFormat) {
	case format.Metric, format.Binary, format.Bytes, format.GB, format.GiB, format.MB, format.MiB:
	default:
		return fmt.Errorf("unknown format %q", flagFormat)
	}

	paths := resolvePaths(args)
	for _, p := range paths {
		if _, err := os.Lstat(p); err != nil {
			return fmt.Errorf("path does not exist: %s", p)
		}
	}

	var progress *scan.ProgressThrottle
	if !flagNoProgress && isTerminal(os.Stderr) {
		progress = scan.NewProgressThrottle(os.Stderr, true)
	}

	scanner := scan.New(buildScanOptions(), progress)
	defer scanner.Close()

	roots, err := scanner.Scan(paths)
	if err != nil {
		return err
	}

	colors := !flagNoColors && isTerminal(os.Stdout)
	p := &printer.Printer{
		Format:       format.System(flagFormat),
		Colors:       colors,
		ApparentSize: flagApparentSize,
		MaxDepth:     flagDepth,
		Top:          flagTop,
	}

	if flagTree {
		p.PrintTree(os.Stdout, roots)
	} else {
		p.PrintFlat(os.Stdout, roots)
	}

	fmt.Fprintln(os.Stderr, statsLine(scanner.Stats()))
	return nil
}
