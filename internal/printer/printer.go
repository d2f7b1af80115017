// Package printer implements the non-interactive "aggregate" output:
// a flat sorted listing or a glyph tree, in either case honoring the
// configured unit format, colorization, depth, and per-node child cap.
package printer

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/format"
)

// Printer renders a scanned tree as flat or tree-shaped text.
type Printer struct {
	Format       format.System
	Colors       bool
	ApparentSize bool
	MaxDepth     int // 0 = unlimited
	Top          int // 0 = unlimited
}

var (
	dirStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	symlinkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func (p *Printer) size(e *entry.Entry) int64 {
	if p.ApparentSize {
		return e.ApparentSize()
	}
	return e.SizeOnDisk()
}

func (p *Printer) renderName(e *entry.Entry) string {
	name := e.Path
	switch e.Kind {
	case entry.KindDir:
		if p.Colors {
			return dirStyle.Render(name)
		}
	case entry.KindSymlink:
		target := e.SymlinkTarget
		line := fmt.Sprintf("%s -> %s", name, target)
		if p.Colors {
			return symlinkStyle.Render(line)
		}
		return line
	}
	return name
}

// PrintFlat prints each root sorted ascending by size, one line each,
// with a trailing total line when there is more than one root.
func (p *Printer) PrintFlat(w io.Writer, roots []*entry.Entry) {
	sorted := append([]*entry.Entry(nil), roots...)
	sort.SliceStable(sorted, func(i, j int) bool { return p.size(sorted[i]) < p.size(sorted[j]) })

	var total int64
	for _, r := range sorted {
		total += p.size(r)
		fmt.Fprintf(w, "%10s %s\n", format.Size(p.size(r), p.Format), p.renderName(r))
	}
	if len(roots) > 1 {
		fmt.Fprintf(w, "%10s total\n", format.Size(total, p.Format))
	}
}

// PrintTree prints each root as a glyph tree.
func (p *Printer) PrintTree(w io.Writer, roots []*entry.Entry) {
	for _, r := range roots {
		fmt.Fprintf(w, "└── %s [%s]\n", p.renderName(r), format.Size(p.size(r), p.Format))
		p.printChildren(w, r, "    ", 1)
	}
}

func (p *Printer) printChildren(w io.Writer, node *entry.Entry, prefix string, depth int) {
	if p.MaxDepth > 0 && depth > p.MaxDepth {
		return
	}
	children := node.Children() // already sorted descending by size

	shown := children
	var more int
	if p.Top > 0 && len(children) > p.Top {
		shown = children[:p.Top]
		more = len(children) - p.Top
	}

	for i, c := range shown {
		last := i == len(shown)-1 && more == 0
		connector := "├── "
		childPrefix := prefix + "│   "
		if last {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		fmt.Fprintf(w, "%s%s%s [%s]\n", prefix, connector, p.renderName(c), format.Size(p.size(c), p.Format))
		if c.Kind == entry.KindDir {
			p.printChildren(w, c, childPrefix, depth+1)
		}
	}

	if more > 0 {
		tail := fmt.Sprintf("└── ... %d more entries", more)
		if p.Colors {
			tail = dimStyle.Render(tail)
		}
		fmt.Fprintf(w, "%s%s\n", prefix, tail)
	}
}
