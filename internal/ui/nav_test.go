package ui

import "testing"

func TestEnterAndExitDirectory(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.width, m.height = 80, 24

	// currentView sorted by size desc: a (100), b (50). Select b and enter.
	m.selectedIndex = 1
	if m.currentView[1].Name() != "b" {
		t.Fatalf("expected 'b' at index 1, got %q", m.currentView[1].Name())
	}
	m.enterDirectory()
	if len(m.navStack) != 2 {
		t.Fatalf("expected nav stack depth 2 after entering, got %d", len(m.navStack))
	}
	if m.currentDir().Name() != "b" {
		t.Fatalf("expected current dir 'b', got %q", m.currentDir().Name())
	}
	if len(m.currentView) != 1 || m.currentView[0].Name() != "c" {
		t.Fatalf("expected single child 'c', got %v", m.currentView)
	}

	m.exitDirectory()
	if len(m.navStack) != 1 {
		t.Fatalf("expected nav stack depth 1 after exit, got %d", len(m.navStack))
	}
	if m.currentView[m.selectedIndex].Name() != "b" {
		t.Fatalf("expected cursor restored to 'b', got %q", m.currentView[m.selectedIndex].Name())
	}
}

func TestEnterDirectoryIgnoresFilesAndEmptyDirs(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.width, m.height = 80, 24

	m.selectedIndex = 0 // 'a', a file
	m.enterDirectory()
	if len(m.navStack) != 1 {
		t.Fatal("expected enterDirectory to no-op on a file")
	}
}

func TestExitDirectoryNoopAtRoot(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.exitDirectory()
	if len(m.navStack) != 1 {
		t.Fatal("expected exitDirectory to no-op at root")
	}
}

func TestMoveCursorClamps(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.moveCursor(-5)
	if m.selectedIndex != 0 {
		t.Fatalf("expected clamp to 0, got %d", m.selectedIndex)
	}
	m.moveCursor(100)
	if m.selectedIndex != len(m.currentView)-1 {
		t.Fatalf("expected clamp to last index, got %d", m.selectedIndex)
	}
}

func TestMoveHomeEnd(t *testing.T) {
	root := buildTree("/root")
	m := testModel(root)
	m.height = 24

	m.moveEnd()
	if m.selectedIndex != len(m.currentView)-1 {
		t.Fatalf("expected end to select last row, got %d", m.selectedIndex)
	}
	m.moveHome()
	if m.selectedIndex != 0 {
		t.Fatalf("expected home to select first row, got %d", m.selectedIndex)
	}
}
