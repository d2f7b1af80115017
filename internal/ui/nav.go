package ui

import "github.com/dux-cli/dux/internal/entry"

// refreshCurrentView re-sorts current_dir's children into current_view,
// clamping the cursor and offset into range.
func (m *Model) refreshCurrentView() {
	m.currentView = m.applySort(m.currentDir().Children())
	if m.selectedIndex >= len(m.currentView) {
		m.selectedIndex = len(m.currentView) - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
	m.clampViewOffset()
	m.markPane.Update(m.roots)
}

func (m *Model) clampViewOffset() {
	rows := m.visibleRows()
	if rows <= 0 {
		return
	}
	if m.selectedIndex < m.viewOffset {
		m.viewOffset = m.selectedIndex
	}
	if m.selectedIndex >= m.viewOffset+rows {
		m.viewOffset = m.selectedIndex - rows + 1
	}
	if m.viewOffset < 0 {
		m.viewOffset = 0
	}
}

func (m *Model) visibleRows() int {
	rows := m.height - 4 // header + path line + column header + status/help
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) moveCursor(delta int) {
	m.selectedIndex += delta
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
	if m.selectedIndex >= len(m.currentView) {
		m.selectedIndex = len(m.currentView) - 1
	}
	if m.selectedIndex < 0 {
		m.selectedIndex = 0
	}
	m.clampViewOffset()
	if m.markPane.quickActive {
		m.activateQuickView()
	}
}

func (m *Model) moveHome() {
	m.selectedIndex = 0
	m.clampViewOffset()
}

func (m *Model) moveEnd() {
	if len(m.currentView) > 0 {
		m.selectedIndex = len(m.currentView) - 1
	}
	m.clampViewOffset()
}

// enterDirectory descends into the selected entry if it is a
// non-empty directory (symlinks are never entered).
func (m *Model) enterDirectory() {
	target := m.selectedEntry()
	if target == nil || target.Kind != entry.KindDir {
		return
	}
	if len(target.Children()) == 0 {
		return
	}
	m.navStack = append(m.navStack, target)
	m.selectedIndex = 0
	m.viewOffset = 0
	m.fullRedraw = true
	m.refreshCurrentView()
}

// exitDirectory pops one level off the navigation stack, if there is
// a parent to return to.
func (m *Model) exitDirectory() {
	if len(m.navStack) <= 1 {
		return
	}
	leaving := m.currentDir()
	m.navStack = m.navStack[:len(m.navStack)-1]
	m.fullRedraw = true
	m.refreshCurrentView()

	for i, c := range m.currentView {
		if c == leaving {
			m.selectedIndex = i
			break
		}
	}
	m.clampViewOffset()
}
