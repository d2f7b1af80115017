package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const moveBatchWindow = 5 * time.Millisecond

type moveFlushMsg struct{ seq int }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.fullRedraw = true
		return m, nil

	case moveFlushMsg:
		if msg.seq != m.moveSeq || m.pendingDelta == 0 {
			return m, nil
		}
		delta := m.pendingDelta
		m.pendingDelta = 0
		m.moveCursor(delta)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateHelpOverlay:
		m.state = StateBrowsing
		return m, nil
	case StateDeleteConfirm:
		return m.handleDeleteConfirmKey(msg)
	case StateGlobSearch:
		return m.handleGlobSearchKey(msg)
	case StateMarkPaneFocused:
		return m.handleMarkPaneKey(msg)
	default:
		return m.handleBrowsingKey(msg)
	}
}

func (m *Model) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		return m.scheduleMove(-1)
	case "down", "j":
		return m.scheduleMove(1)
	case "left", "h", "backspace":
		m.exitDirectory()
		return m, nil
	case "right", "l", "enter":
		m.enterDirectory()
		return m, nil
	case "home", "g":
		m.moveHome()
		return m, nil
	case "end", "G":
		m.moveEnd()
		return m, nil
	case "pgup":
		m.moveCursor(-m.visibleRows())
		return m, nil
	case "pgdown":
		m.moveCursor(m.visibleRows())
		return m, nil

	case "s":
		m.toggleSort(SortSize)
		return m, nil
	case "n":
		m.toggleSort(SortName)
		return m, nil
	case "m":
		m.toggleSort(SortMtime)
		return m, nil
	case "c":
		m.toggleSort(SortCount)
		return m, nil
	case "M":
		m.showMtime = !m.showMtime
		return m, nil
	case "C":
		m.showCount = !m.showCount
		return m, nil

	case " ":
		m.toggleMark()
		return m, nil
	case "d":
		if m.hasMarks() {
			m.state = StateDeleteConfirm
			m.deleteInput = ""
		} else {
			m.markAndAdvance()
		}
		return m, nil
	case "a":
		m.toggleAllVisible()
		return m, nil

	case "i":
		m.activateQuickView()
		return m, nil
	case "I":
		m.clearQuickView()
		return m, nil

	case "/":
		m.state = StateGlobSearch
		m.globInput = ""
		return m, nil

	case "r":
		m.refreshSelected()
		return m, nil
	case "R":
		m.refreshAll()
		return m, nil

	case "O":
		m.openExternally()
		return m, nil

	case "tab":
		if m.markPane.Visible() {
			m.state = StateMarkPaneFocused
		}
		return m, nil

	case "?":
		m.state = StateHelpOverlay
		return m, nil
	}
	return m, nil
}

func (m *Model) scheduleMove(delta int) (tea.Model, tea.Cmd) {
	now := time.Now()
	if !m.lastMoveTime.IsZero() && now.Sub(m.lastMoveTime) < moveBatchWindow {
		m.pendingDelta += delta
		m.lastMoveTime = now
		return m, nil
	}
	m.pendingDelta = delta
	m.lastMoveTime = now
	m.moveSeq++
	seq := m.moveSeq
	return m, tea.Tick(moveBatchWindow, func(time.Time) tea.Msg { return moveFlushMsg{seq: seq} })
}

func (m *Model) handleMarkPaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "esc":
		m.state = StateBrowsing
		return m, nil
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "left", "right":
		m.markPane.SwitchTab()
		return m, nil
	}

	if m.markPane.ActiveTab() == TabQuickView {
		return m.handleQuickViewKey(msg)
	}

	switch msg.String() {
	case "up", "k":
		m.markPane.Up()
	case "down", "j":
		m.markPane.Down()
	case "pgup":
		m.markPane.PageUp(m.visibleRows())
	case "pgdown":
		m.markPane.PageDown(m.visibleRows())
	case "home", "g":
		m.markPane.Home()
	case "end", "G":
		m.markPane.End()
	case "x", "backspace":
		m.markPane.RemoveSelected()
	case "X":
		m.markPane.RemoveAll()
	}
	return m, nil
}

func (m *Model) handleQuickViewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sv := m.markPane.Scroll()
	if sv == nil {
		return m, nil
	}
	if sv.CommandActive() {
		switch msg.Type {
		case tea.KeyEnter:
			sv.ExecuteCommand()
		case tea.KeyEsc:
			sv.CancelCommand()
		case tea.KeyBackspace:
			sv.BackspaceCommand()
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				sv.AppendCommandChar(r)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		sv.Up()
	case "down", "j":
		sv.Down()
	case "left", "h":
		sv.Left()
	case "right", "l":
		sv.Right()
	case "pgup":
		sv.PageUp()
	case "pgdown":
		sv.PageDown()
	case "home", "g":
		sv.Home()
	case "end", "G":
		sv.End()
	case "0":
		sv.LineStart()
	case "$":
		sv.LineEnd()
	case "n":
		sv.NextMatch()
	case "N":
		sv.PrevMatch()
	case "*":
		sv.SearchWordUnderCursor()
	case ":":
		sv.EnterCommandMode()
	}
	return m, nil
}

func (m *Model) handleGlobSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		pattern := m.globInput
		m.state = StateBrowsing
		if pattern != "" {
			m.runGlobSearch(pattern)
		}
		return m, nil
	case tea.KeyEsc:
		m.state = StateBrowsing
		m.globInput = ""
		return m, nil
	case tea.KeyBackspace:
		if len(m.globInput) > 0 {
			runes := []rune(m.globInput)
			m.globInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyRunes:
		m.globInput += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDeleteConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if m.deleteInput == "YES" {
			m.performDelete()
		}
		m.state = StateBrowsing
		m.deleteInput = ""
		return m, nil
	case tea.KeyEsc:
		m.state = StateBrowsing
		m.deleteInput = ""
		return m, nil
	case tea.KeyBackspace:
		if len(m.deleteInput) > 0 {
			runes := []rune(m.deleteInput)
			m.deleteInput = string(runes[:len(runes)-1])
		}
		return m, nil
	case tea.KeyRunes:
		m.deleteInput += string(msg.Runes)
		return m, nil
	}
	return m, nil
}
