package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/format"
)

// View implements tea.Model. bubbletea's renderer diffs the returned
// string against the previous frame line-by-line, so the "differential
// drawing" the browser asks for comes from the framework itself; the
// full-redraw flag here only decides whether the per-entry format
// cache is rebuilt before paint.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.fullRedraw {
		m.formatCache = make(map[*entry.Entry]string)
		m.fullRedraw = false
	}

	switch m.state {
	case StateHelpOverlay:
		return m.renderHelpOverlay()
	case StateDeleteConfirm:
		return m.renderDeleteConfirmOverlay()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("dux"))
	b.WriteByte('\n')

	path := m.currentDir().Path
	if path == "" {
		path = "/"
	}
	b.WriteString(pathStyle.Render(fmt.Sprintf("Path: %s", path)))
	b.WriteByte('\n')

	mainWidth := m.width
	if m.markPane.Visible() {
		mainWidth = m.width * 2 / 3
	}
	if mainWidth < 10 {
		mainWidth = 10
	}

	main := m.renderMain(mainWidth)
	if m.markPane.Visible() {
		side := m.markPane.Render(m.width-mainWidth, m.height-3)
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, main, side))
	} else {
		b.WriteString(main)
	}
	b.WriteByte('\n')

	if m.state == StateGlobSearch {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Search: %s_", m.globInput)))
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
	} else {
		b.WriteString(helpStyle.Render(m.helpLine()))
	}
	return b.String()
}

func (m *Model) helpLine() string {
	sel := m.selectedEntry()
	sort := fmt.Sprintf("sort:%s", sortFieldName(m.sortMode.Field))
	if m.sortMode.Desc {
		sort += "↓"
	} else {
		sort += "↑"
	}
	line := fmt.Sprintf("↑/↓ move | ←/→ nav | space mark | d delete | i preview | / search | ? help | %s", sort)
	if sel != nil {
		line += fmt.Sprintf(" | %s", sel.Name())
	}
	return line
}

func sortFieldName(f SortField) string {
	switch f {
	case SortName:
		return "name"
	case SortMtime:
		return "mtime"
	case SortCount:
		return "count"
	default:
		return "size"
	}
}

func (m *Model) renderMain(width int) string {
	var b strings.Builder

	header := fmt.Sprintf("%10s  %s", "SIZE", "NAME")
	if m.showCount {
		header = fmt.Sprintf("%10s  %8s  %s", "SIZE", "COUNT", "NAME")
	}
	if m.showMtime {
		header += "  MTIME"
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteByte('\n')

	rows := m.visibleRows()
	end := m.viewOffset + rows
	if end > len(m.currentView) {
		end = len(m.currentView)
	}

	for i := m.viewOffset; i < end; i++ {
		e := m.currentView[i]
		b.WriteString(m.renderRow(e, i == m.selectedIndex, width))
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *Model) renderRow(e *entry.Entry, selected bool, width int) string {
	sizeStr, ok := m.formatCache[e]
	if !ok {
		sizeStr = format.Size(m.entrySize(e), format.Binary)
		m.formatCache[e] = sizeStr
	}

	name := e.Name()
	switch e.Kind {
	case entry.KindDir:
		name += "/"
	case entry.KindSymlink:
		name += " -> " + e.SymlinkTarget
	}
	if e.Marked() {
		name = "* " + name
	} else {
		name = "  " + name
	}

	prefix := fmt.Sprintf("%10s  ", sizeStr)
	if m.showCount {
		prefix = fmt.Sprintf("%10s  %8s  ", sizeStr, formatCount(e.EntryCount()))
	}
	suffix := ""
	if m.showMtime {
		suffix = "  " + e.ModTime.Format("2006-01-02 15:04")
	}

	// Wide runes (CJK, emoji) occupy two terminal cells; truncate and
	// pad by cell width rather than rune count so SIZE/COUNT/MTIME stay
	// aligned across rows.
	nameWidth := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(suffix)
	if nameWidth < 1 {
		nameWidth = 1
	}
	name = runewidth.Truncate(name, nameWidth, "…")
	if pad := nameWidth - runewidth.StringWidth(name); pad > 0 {
		name += strings.Repeat(" ", pad)
	}

	line := prefix + name + suffix
	if selected {
		return selectedStyle.Render(line)
	}
	switch e.Kind {
	case entry.KindDir:
		return dirStyle.Render(prefix) + dirStyle.Render(name) + suffix
	case entry.KindSymlink:
		return prefix + symlinkStyle.Render(name) + suffix
	default:
		if e.Marked() {
			return prefix + markedStyle.Render(name) + suffix
		}
		return line
	}
}

func (m *Model) renderHelpOverlay() string {
	help := strings.Join([]string{
		"dux — interactive browser",
		"",
		"↑/↓ k/j       move selection",
		"←/→ h/l       exit / enter directory",
		"space         toggle mark",
		"d             mark+advance, or delete marked (with confirmation)",
		"a             toggle mark on all visible rows",
		"i / I         quick-view selected / clear quick-view",
		"/             glob search current subtree",
		"r / R         refresh selected / refresh all",
		"O             open externally",
		"s/n/m/c       sort by size/name/mtime/count (press again to flip)",
		"tab           focus the right pane",
		"q             quit",
		"",
		"press any key to close",
	}, "\n")
	return modalBorderStyle.Render(help)
}

func (m *Model) renderDeleteConfirmOverlay() string {
	marked := m.markPane.MarkedEntries()
	var total int64
	for _, e := range marked {
		total += e.SizeOnDisk()
	}
	msg := fmt.Sprintf(
		"Delete %d marked item(s), %s?\nType YES and press Enter to confirm, Esc to cancel.\n\n> %s_",
		len(marked), format.Size(total, format.Binary), m.deleteInput,
	)
	return dangerStyle.Render(modalBorderStyle.Render(msg))
}
