package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dux-cli/dux/internal/format"
	"github.com/dux-cli/dux/internal/pathutil"
	"github.com/dux-cli/dux/internal/scan"
)

// Flags shared by both the aggregate and interactive subcommands (and
// mirrored onto the root command so a bare "dux path" works without
// naming a subcommand).
var (
	flagApparentSize     bool
	flagCountHardLinks   bool
	flagStayOnFilesystem bool
	flagThreads          int
	flagIgnoreDirs       []string
	flagNoEntryCheck     bool
	flagNoColors         bool
	flagNoProgress       bool
)

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&flagApparentSize, "apparent-size", "A", false, "Use apparent size instead of disk usage")
	cmd.Flags().BoolVarP(&flagCountHardLinks, "count-hard-links", "l", false, "Count every hard link's full size instead of deduplicating")
	cmd.Flags().BoolVarP(&flagStayOnFilesystem, "stay-on-filesystem", "x", false, "Don't cross filesystem boundaries")
	cmd.Flags().IntVarP(&flagThreads, "threads", "j", 0, "Worker count (0 = number of CPUs)")
	cmd.Flags().StringArrayVarP(&flagIgnoreDirs, "ignore-dirs", "i", nil, "Directory to skip entirely (repeatable)")
	cmd.Flags().BoolVar(&flagNoEntryCheck, "no-entry-check", false, "Kept for CLI compatibility; no effect on traversal")
	cmd.Flags().BoolVar(&flagNoColors, "no-colors", false, "Disable ANSI color output")
	cmd.Flags().BoolVar(&flagNoProgress, "no-progress", false, "Suppress the stderr progress line")
}

// buildScanOptions translates the shared scan flags into scan.Options.
// flagThreads <= 0 is passed through as 0 so scan.New performs its own
// worker-count probe (and darwin cap) instead of this layer pre-empting it.
func buildScanOptions() *scan.Options {
	opts := scan.DefaultOptions().
		WithApparentSize(flagApparentSize).
		WithCountHardLinks(flagCountHardLinks).
		WithStayOnFilesystem(flagStayOnFilesystem).
		WithWorkers(flagThreads)

	for _, d := range flagIgnoreDirs {
		opts.AddIgnoreDir(d)
	}
	return opts
}

// resolvePaths defaults to the working directory when no path argument
// was given, and canonicalizes every path the same way --ignore-dirs
// entries are canonicalized so both compare equal.
func resolvePaths(args []string) []string {
	if len(args) == 0 {
		args = []string{"."}
	}
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = pathutil.Normalize(a)
	}
	return out
}

// statsLine renders scan stats as several lines, the error and skipped
// lines only appearing when their counts are nonzero.
func statsLine(s scan.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Scanned %d files, %d directories, and %d symlinks in %s",
		s.Files, s.Dirs, s.Symlinks, s.Elapsed.Round(1e6))
	if s.IOErrors > 0 {
		fmt.Fprintf(&b, "\nEncountered %d I/O errors", s.IOErrors)
	}
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "\nSkipped %d unresponsive directories", s.Skipped)
	}
	fmt.Fprintf(&b, "\nTotal size: %s", format.Size(s.TotalSize, format.Binary))
	return b.String()
}
