package ui

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/quickview"
	"github.com/dux-cli/dux/internal/scan"
)

// activateQuickView generates a preview of the selected entry and
// installs it in the mark pane.
func (m *Model) activateQuickView() {
	target := m.selectedEntry()
	if target == nil {
		return
	}
	preview := quickview.Generate(target.Path)
	m.markPane.SetQuickView(preview, m.width/2, m.visibleRows())
}

func (m *Model) clearQuickView() { m.markPane.ClearQuickView() }

// toggleMark flips the mark flag on the selected entry.
func (m *Model) toggleMark() {
	target := m.selectedEntry()
	if target == nil {
		return
	}
	target.SetMarked(!target.Marked())
	m.markPane.Update(m.roots)
}

// markAndAdvance marks the selected entry (only called when nothing is
// marked yet) and moves the cursor down one row.
func (m *Model) markAndAdvance() {
	target := m.selectedEntry()
	if target == nil {
		return
	}
	target.SetMarked(true)
	m.markPane.Update(m.roots)
	m.moveCursor(1)
}

// toggleAllVisible marks every row in the current view, or clears all
// of their marks if every row is already marked.
func (m *Model) toggleAllVisible() {
	allMarked := len(m.currentView) > 0
	for _, e := range m.currentView {
		if !e.Marked() {
			allMarked = false
			break
		}
	}
	for _, e := range m.currentView {
		e.SetMarked(!allMarked)
	}
	m.markPane.Update(m.roots)
}

func (m *Model) hasMarks() bool { return len(m.markPane.MarkedEntries()) > 0 }

// openExternally best-effort spawns the platform opener on the
// selected path.
func (m *Model) openExternally() {
	target := m.selectedEntry()
	if target == nil {
		return
	}
	quickview.OpenExternally(target.Path)
}

// --- Glob search ---

func globToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// runGlobSearch scans the current subtree for filename matches and
// installs the result list as a synthetic "[Search Results]" directory
// pushed onto the navigation stack.
func (m *Model) runGlobSearch(pattern string) {
	re := globToRegexp(pattern)
	var matches []*entry.Entry
	var walk func(e *entry.Entry)
	walk = func(e *entry.Entry) {
		for _, c := range e.Children() {
			if re.MatchString(c.Name()) {
				matches = append(matches, c)
			}
			if c.Kind == entry.KindDir {
				walk(c)
			}
		}
	}
	walk(m.currentDir())

	result := entry.New(synthSearchName(), entry.KindDir)
	for _, c := range matches {
		result.AddChild(c)
	}
	result.Finalize()

	m.navStack = append(m.navStack, result)
	m.selectedIndex = 0
	m.viewOffset = 0
	m.fullRedraw = true
	m.refreshCurrentView()
}

// --- Refresh ---

// refreshNode rescans node's own path in isolation and republishes its
// children.
func (m *Model) refreshNode(node *entry.Entry) {
	scanner := scan.New(m.scanOpts, nil)
	defer scanner.Close()
	roots, err := scanner.Scan([]string{node.Path})
	if err != nil {
		m.status = fmt.Sprintf("refresh failed: %v", err)
		return
	}
	node.ReplaceChildren(roots[0].Children())
	node.Finalize()
}

// propagateUpFrom re-finalizes every ancestor above node in the
// navigation stack so their aggregate sizes reconcile.
func (m *Model) propagateUpFrom(node *entry.Entry) {
	for i := len(m.navStack) - 1; i >= 0; i-- {
		if m.navStack[i] == node {
			for j := i - 1; j >= 0; j-- {
				m.navStack[j].Finalize()
			}
			return
		}
	}
}

// refreshSelected re-runs the scanner on the selected directory.
func (m *Model) refreshSelected() {
	target := m.selectedEntry()
	if target == nil || target.Kind != entry.KindDir {
		return
	}
	m.refreshNode(target)
	dir := m.currentDir()
	dir.Finalize()
	m.propagateUpFrom(dir)
	m.fullRedraw = true
	m.refreshCurrentView()
}

// refreshAll re-runs the scanner on every directory child of the
// current directory concurrently, joining with an errgroup.
func (m *Model) refreshAll() {
	dir := m.currentDir()
	children := dir.Children()

	var g errgroup.Group
	for _, c := range children {
		c := c
		if c.Kind != entry.KindDir {
			continue
		}
		g.Go(func() error {
			m.refreshNode(c)
			return nil
		})
	}
	_ = g.Wait()

	dir.Finalize()
	m.propagateUpFrom(dir)
	m.fullRedraw = true
	m.refreshCurrentView()
}

// --- Deletion ---

// performDelete removes every marked entry (best-effort, continuing
// past individual failures), then re-scans every top-level root so
// sizes reconcile and re-applies marks to any survivors.
func (m *Model) performDelete() {
	marked := m.markPane.MarkedEntries()
	survivingMarks := make(map[string]bool, len(marked))

	for _, e := range marked {
		var err error
		if e.Kind == entry.KindDir {
			err = os.RemoveAll(e.Path)
		} else {
			err = os.Remove(e.Path)
		}
		if err != nil {
			m.status = fmt.Sprintf("delete failed: %s: %v", e.Path, err)
			survivingMarks[e.Path] = true
		}
	}

	oldNavPaths := make([]string, len(m.navStack))
	for i, n := range m.navStack {
		oldNavPaths[i] = n.Path
	}

	rootPaths := make([]string, len(m.roots))
	for i, r := range m.roots {
		rootPaths[i] = r.Path
	}
	scanner := scan.New(m.scanOpts, nil)
	newRoots, err := scanner.Scan(rootPaths)
	scanner.Close()
	if err != nil {
		m.err = err
		return
	}
	m.roots = newRoots
	reapplyMarks(m.roots, survivingMarks)
	m.rebuildRootGroup()
	m.reconcileNavStack(oldNavPaths)
	m.fullRedraw = true
	m.refreshCurrentView()
}

func reapplyMarks(roots []*entry.Entry, marked map[string]bool) {
	if len(marked) == 0 {
		return
	}
	var walk func(e *entry.Entry)
	walk = func(e *entry.Entry) {
		if marked[e.Path] {
			e.SetMarked(true)
		}
		for _, c := range e.Children() {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
}

// reconcileNavStack rebuilds the navigation stack after a full rescan,
// descending from the new root and matching each old stack entry by
// full path for as long as a match exists, then stopping short if the
// deleted directory itself no longer resolves.
func (m *Model) reconcileNavStack(oldPaths []string) {
	stack := []*entry.Entry{m.root}
	cur := m.root
outer:
	for _, want := range oldPaths[1:] {
		for _, c := range cur.Children() {
			if c.Path == want {
				stack = append(stack, c)
				cur = c
				continue outer
			}
		}
		break
	}
	m.navStack = stack
	m.selectedIndex = 0
	m.viewOffset = 0
}
