package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dux-cli/dux/internal/scan"
	"github.com/dux-cli/dux/internal/ui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive [path...]",
	Aliases: []string{"i"},
	Short:   "Browse disk usage interactively",
	Args:    cobra.ArbitraryArgs,
	RunE:    runInteractive,
}

func init() {
	addScanFlags(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
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

	opts := buildScanOptions()
	scanner := scan.New(opts, progress)
	roots, err := scanner.Scan(paths)
	stats := scanner.Stats()
	scanner.Close()
	if err != nil {
		return err
	}

	colors := !flagNoColors && isTerminal(os.Stdout)
	m := ui.New(roots, opts, flagApparentSize, colors)
	m.SetStats(stats)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive browser error: %w", err)
	}
	return nil
}
