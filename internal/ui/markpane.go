package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/format"
	"github.com/dux-cli/dux/internal/quickview"
	"github.com/dux-cli/dux/internal/scrollview"
)

// Tab selects which content the right pane shows.
type Tab int

const (
	TabQuickView Tab = iota
	TabMarkedFiles
)

type markedRow struct {
	entry *entry.Entry
}

// MarkPane is the tabbed right-hand panel: a quick-view preview of the
// selected path, or the list of every currently marked entry.
type MarkPane struct {
	tab    Tab
	rows   []markedRow
	cursor int
	offset int

	preview     quickview.Preview
	quickActive bool
	scroll      *scrollview.View

	colors bool
}

// NewMarkPane creates an empty pane with QuickView as the default tab.
func NewMarkPane(colors bool) *MarkPane {
	return &MarkPane{tab: TabQuickView, scroll: scrollview.New(nil, 0, 0), colors: colors}
}

// Visible reports whether the pane has anything to show: the mark set
// is non-empty, or a quick-view preview is active.
func (m *MarkPane) Visible() bool {
	return len(m.rows) > 0 || m.quickActive
}

// ActiveTab returns the currently selected tab.
func (m *MarkPane) ActiveTab() Tab { return m.tab }

// SwitchTab toggles between QuickView and Marked Files.
func (m *MarkPane) SwitchTab() {
	if m.tab == TabQuickView {
		m.tab = TabMarkedFiles
	} else {
		m.tab = TabQuickView
	}
}

// Update walks every root's subtree and rebuilds the marked-files list
// sorted by path, preserving the cursor position as best it can.
func (m *MarkPane) Update(roots []*entry.Entry) {
	var rows []markedRow
	for _, r := range roots {
		collectMarked(r, &rows)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].entry.Path < rows[j].entry.Path })
	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func collectMarked(e *entry.Entry, out *[]markedRow) {
	if e.Marked() {
		*out = append(*out, markedRow{entry: e})
	}
	for _, c := range e.Children() {
		collectMarked(c, out)
	}
}

// Up moves the marked-list cursor up one row.
func (m *MarkPane) Up() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// Down moves the marked-list cursor down one row.
func (m *MarkPane) Down() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
	}
}

// PageUp moves the cursor up by n rows.
func (m *MarkPane) PageUp(n int) {
	m.cursor -= n
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// PageDown moves the cursor down by n rows.
func (m *MarkPane) PageDown(n int) {
	m.cursor += n
	if m.cursor > len(m.rows)-1 {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Home moves the cursor to the first row.
func (m *MarkPane) Home() { m.cursor = 0 }

// End moves the cursor to the last row.
func (m *MarkPane) End() {
	if len(m.rows) > 0 {
		m.cursor = len(m.rows) - 1
	}
}

// RemoveSelected clears the mark on the selected entry and drops it
// from the list.
func (m *MarkPane) RemoveSelected() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	m.rows[m.cursor].entry.SetMarked(false)
	m.rows = append(m.rows[:m.cursor], m.rows[m.cursor+1:]...)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// RemoveAll clears every mark and empties the list.
func (m *MarkPane) RemoveAll() {
	for _, r := range m.rows {
		r.entry.SetMarked(false)
	}
	m.rows = nil
	m.cursor = 0
}

// MarkedEntries returns the current marked entries, in list order.
func (m *MarkPane) MarkedEntries() []*entry.Entry {
	out := make([]*entry.Entry, len(m.rows))
	for i, r := range m.rows {
		out[i] = r.entry
	}
	return out
}

// SetQuickView installs a new preview and (re)builds the scrollable
// view over its textual content.
func (m *MarkPane) SetQuickView(p quickview.Preview, width, height int) {
	m.preview = p
	m.quickActive = true
	m.scroll = scrollview.New(previewLines(p), width, height)
}

// ClearQuickView deactivates the preview (the "I" key).
func (m *MarkPane) ClearQuickView() {
	m.quickActive = false
	m.preview = quickview.Preview{}
	m.scroll = scrollview.New(nil, 0, 0)
}

// Scroll exposes the quick-view's scroll state for key routing.
func (m *MarkPane) Scroll() *scrollview.View { return m.scroll }

func previewLines(p quickview.Preview) []string {
	switch p.Kind {
	case quickview.KindText:
		lines := make([]string, len(p.Lines))
		for i, l := range p.Lines {
			lines[i] = l.Plain
		}
		return lines
	case quickview.KindDirectory:
		return p.Dir
	case quickview.KindBinary:
		out := []string{p.Message, ""}
		return append(out, p.Hex...)
	default:
		if p.Message == "" {
			return nil
		}
		return []string{p.Message}
	}
}

// Render draws the pane content for the given viewport.
func (m *MarkPane) Render(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	var b strings.Builder

	qvTab, mfTab := "QuickView", "Marked Files"
	if m.tab == TabQuickView {
		qvTab = tabActiveStyle.Render(qvTab)
		mfTab = tabInactiveStyle.Render(mfTab)
	} else {
		qvTab = tabInactiveStyle.Render(qvTab)
		mfTab = tabActiveStyle.Render(mfTab)
	}
	fmt.Fprintf(&b, "%s | %s\n", qvTab, mfTab)

	switch m.tab {
	case TabQuickView:
		b.WriteString(m.renderQuickView(width, height-2))
	case TabMarkedFiles:
		b.WriteString(m.renderMarkedFiles(width, height-2))
	}
	return b.String()
}

func (m *MarkPane) renderQuickView(width, height int) string {
	if m.scroll == nil || len(m.scroll.Lines()) == 0 {
		return "(no preview)"
	}
	lines := m.scroll.Lines()
	ox, oy := m.scroll.Viewport()
	cx, cy := m.scroll.Cursor()

	var b strings.Builder
	for i := 0; i < height && oy+i < len(lines); i++ {
		line := lines[oy+i]
		runes := []rune(line)
		if ox < len(runes) {
			end := ox + width
			if end > len(runes) {
				end = len(runes)
			}
			b.WriteString(string(runes[ox:end]))
		}
		b.WriteByte('\n')
	}
	matches, idx := m.scroll.Matches()
	status := fmt.Sprintf("Line %d/%d Col %d", cy+1, len(lines), cx+1)
	if len(matches) > 0 {
		status += fmt.Sprintf("  match %d/%d", idx+1, len(matches))
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

func (m *MarkPane) renderMarkedFiles(width, height int) string {
	if len(m.rows) == 0 {
		return "(no marked files)"
	}

	var total int64
	for _, r := range m.rows {
		total += r.entry.SizeOnDisk()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d marked, %s total\n", len(m.rows), format.Size(total, format.Binary))

	visible := height - 1
	if visible < 1 {
		visible = 1
	}
	start := m.offset
	if m.cursor < start {
		start = m.cursor
	}
	if m.cursor >= start+visible {
		start = m.cursor - visible + 1
	}
	m.offset = start

	end := start + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		r := m.rows[i]
		sizeStr := format.Size(r.entry.SizeOnDisk(), format.Binary)
		nameWidth := width - runewidth.StringWidth(sizeStr) - 2
		if nameWidth < 1 {
			nameWidth = 1
		}
		name := runewidth.Truncate(r.entry.Path, nameWidth, "…")
		var styledName string
		switch r.entry.Kind {
		case entry.KindDir:
			styledName = dirStyle.Render(name)
		case entry.KindSymlink:
			styledName = symlinkStyle.Render(name)
		default:
			styledName = fileStyle.Render(name)
		}
		line := fmt.Sprintf("%10s  %s", sizeStr, styledName)
		if i == m.cursor {
			line = selectedStyle.Render(fmt.Sprintf("%10s  %s", sizeStr, name))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
