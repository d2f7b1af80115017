// Package ui implements the interactive browser: the MarkPane side
// panel and the InteractiveUI state machine that drives navigation,
// sorting, marking, glob search, refresh, and deletion over a scanned
// entry.Entry tree.
package ui

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/scan"
)

// State is a principal mode of the InteractiveUI state machine.
type State int

const (
	StateBrowsing State = iota
	StateMarkPaneFocused
	StateGlobSearch
	StateHelpOverlay
	StateDeleteConfirm
)

// SortField selects which entry attribute orders the current view.
type SortField int

const (
	SortSize SortField = iota
	SortName
	SortMtime
	SortCount
)

// SortMode is a field plus direction; pressing the same sort key again
// flips Desc.
type SortMode struct {
	Field SortField
	Desc  bool
}

// Model is the bubbletea model for the interactive browser.
type Model struct {
	state State

	roots []*entry.Entry // one per scanned path, in CLI order
	root  *entry.Entry   // roots[0], or a synthetic group when len(roots) > 1

	navStack      []*entry.Entry // root .. current_dir
	currentView   []*entry.Entry // current_dir's children, sorted
	selectedIndex int
	viewOffset    int

	sortMode  SortMode
	showMtime bool
	showCount bool

	formatCache map[*entry.Entry]string

	markPane *MarkPane

	globInput   string
	deleteInput string

	width, height int

	lastMoveTime time.Time
	pendingDelta int
	moveSeq      int

	scanOpts     *scan.Options
	apparentSize bool
	colors       bool

	fullRedraw bool
	status     string
	err        error
	quitting   bool

	stats scan.Stats
}

// New builds the interactive model over an already-scanned set of
// roots.
func New(roots []*entry.Entry, opts *scan.Options, apparentSize, colors bool) *Model {
	m := &Model{
		roots:        roots,
		scanOpts:     opts,
		apparentSize: apparentSize,
		colors:       colors,
		sortMode:     SortMode{Field: SortSize, Desc: true},
		formatCache:  make(map[*entry.Entry]string),
		markPane:     NewMarkPane(colors),
		fullRedraw:   true,
	}
	m.rebuildRootGroup()
	m.refreshCurrentView()
	return m
}

func (m *Model) rebuildRootGroup() {
	if len(m.roots) == 1 {
		m.root = m.roots[0]
	} else {
		m.root = entry.NewRootGroup(m.roots)
	}
	m.navStack = []*entry.Entry{m.root}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// SetStats records the scan statistics shown until the first user
// action produces its own status line.
func (m *Model) SetStats(s scan.Stats) {
	m.stats = s
	m.status = fmt.Sprintf("scanned %d files, %d dirs, %d symlinks in %s",
		s.Files, s.Dirs, s.Symlinks, s.Elapsed.Round(time.Millisecond))
}

func (m *Model) currentDir() *entry.Entry {
	return m.navStack[len(m.navStack)-1]
}

func (m *Model) selectedEntry() *entry.Entry {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.currentView) {
		return nil
	}
	return m.currentView[m.selectedIndex]
}

// entrySize returns the size used for sorting/display per the
// apparent-vs-on-disk display option.
func (m *Model) entrySize(e *entry.Entry) int64 {
	if m.apparentSize {
		return e.ApparentSize()
	}
	return e.SizeOnDisk()
}

func synthSearchName() string {
	return "[Search Results] " + uuid.New().String()
}
