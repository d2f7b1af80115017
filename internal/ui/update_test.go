package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestWindowSizeMsgSetsDimensionsAndForcesRedraw(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.fullRedraw = false

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	mm := updated.(*Model)
	if mm.width != 100 || mm.height != 40 {
		t.Fatalf("expected dimensions updated, got %dx%d", mm.width, mm.height)
	}
	if !mm.fullRedraw {
		t.Fatal("expected window resize to force a full redraw")
	}
}

func TestQuitKeySetsQuitting(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	updated, cmd := m.Update(keyMsg("q"))
	mm := updated.(*Model)
	if !mm.quitting {
		t.Fatal("expected 'q' to set quitting")
	}
	if cmd == nil {
		t.Fatal("expected a tea.Quit command")
	}
}

func TestToggleSortKeysChangeSortMode(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.Update(keyMsg("n"))
	if m.sortMode.Field != SortName {
		t.Fatalf("expected 'n' to select name sort, got %v", m.sortMode.Field)
	}
}

func TestDisplayToggleKeysFlipFlags(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.Update(keyMsg("M"))
	if !m.showMtime {
		t.Fatal("expected 'M' to enable the mtime column")
	}
	m.Update(keyMsg("C"))
	if !m.showCount {
		t.Fatal("expected 'C' to enable the entry-count column")
	}
}

func TestDKeyEntersDeleteConfirmOnlyWhenMarked(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.Update(keyMsg("d"))
	if m.state == StateDeleteConfirm {
		t.Fatal("expected 'd' with no marks to mark-and-advance, not confirm delete")
	}
	if !m.currentView[0].Marked() {
		t.Fatal("expected first entry marked by mark-and-advance")
	}

	m.Update(keyMsg("d"))
	if m.state != StateDeleteConfirm {
		t.Fatal("expected 'd' with an existing mark to enter delete confirmation")
	}
}

func TestDeleteConfirmRequiresExactYes(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24
	m.state = StateDeleteConfirm
	m.deleteInput = "NO"

	m.Update(keyMsg("enter"))
	if m.state != StateBrowsing {
		t.Fatal("expected Enter to always return to browsing")
	}
	// A confirmed delete rescans and replaces m.roots; "NO" must not.
	if len(m.roots) != 1 || m.roots[0] != root {
		t.Fatal("expected a non-YES confirmation to skip the delete")
	}
}

func TestGlobSearchStateCapturesInputAndEscCancels(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.Update(keyMsg("/"))
	if m.state != StateGlobSearch {
		t.Fatal("expected '/' to enter glob search state")
	}
	m.Update(keyMsg("c"))
	if m.globInput != "c" {
		t.Fatalf("expected typed rune appended to glob input, got %q", m.globInput)
	}
	m.Update(keyMsg("esc"))
	if m.state != StateBrowsing || m.globInput != "" {
		t.Fatal("expected Esc to cancel glob search and clear input")
	}
}

func TestHelpOverlayDismissesOnAnyKey(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.Update(keyMsg("?"))
	if m.state != StateHelpOverlay {
		t.Fatal("expected '?' to open the help overlay")
	}
	m.Update(keyMsg("x"))
	if m.state != StateBrowsing {
		t.Fatal("expected any key to dismiss the help overlay")
	}
}

func TestScheduleMoveBatchesWithinWindow(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	_, cmd1 := m.scheduleMove(1)
	if cmd1 == nil {
		t.Fatal("expected first move to schedule a flush tick")
	}
	seq := m.moveSeq
	_, cmd2 := m.scheduleMove(1)
	if cmd2 != nil {
		t.Fatal("expected a second move within the batch window to not reschedule")
	}
	if m.pendingDelta != 2 {
		t.Fatalf("expected accumulated delta of 2, got %d", m.pendingDelta)
	}
	if m.moveSeq != seq {
		t.Fatal("expected moveSeq unchanged while batching")
	}
}

func TestMoveFlushMsgIgnoresStaleSeq(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.pendingDelta = 1
	m.moveSeq = 5
	m.Update(moveFlushMsg{seq: 4})
	if m.pendingDelta != 1 {
		t.Fatal("expected a stale sequence number to be ignored")
	}
}
