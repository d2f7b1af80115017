// Package entry implements the concurrency-safe tree node that the
// scanner builds during traversal and the UI browses afterward.
//
// A node's children are protected by a per-node mutex so that a worker
// appending a grandchild never contends with a sibling appending to a
// different parent (see internal/scan). Size and count fields are
// atomics so workers can add to a directory's totals while other
// workers are still discovering its other children.
package entry

import (
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Kind classifies a filesystem entry. Symlinks are never followed.
type Kind uint8

const (
	KindFile Kind = iota
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// Entry is one node of the scanned tree.
type Entry struct {
	Path          string
	Kind          Kind
	DeviceID      uint64
	Inode         uint64
	HardLinkCount uint64
	SymlinkTarget string
	ModTime       time.Time

	apparentSize atomic.Int64
	sizeOnDisk   atomic.Int64
	entryCount   atomic.Int64
	marked       atomic.Bool

	mu       sync.Mutex
	children []*Entry
}

// New creates a detached Entry. Callers append it to a parent with
// AddChild before publishing it to other goroutines.
func New(path string, kind Kind) *Entry {
	return &Entry{Path: path, Kind: kind}
}

// Name returns the final path component.
func (e *Entry) Name() string {
	return filepath.Base(e.Path)
}

// ApparentSize returns the entry's current apparent-size total.
func (e *Entry) ApparentSize() int64 { return e.apparentSize.Load() }

// SizeOnDisk returns the entry's current on-disk size total.
func (e *Entry) SizeOnDisk() int64 { return e.sizeOnDisk.Load() }

// EntryCount returns the entry's current reachable-file count.
func (e *Entry) EntryCount() int64 { return e.entryCount.Load() }

// Marked reports whether the user has marked this entry.
func (e *Entry) Marked() bool { return e.marked.Load() }

// SetMarked sets or clears the mark flag.
func (e *Entry) SetMarked(v bool) { e.marked.Store(v) }

// AddSize atomically adds to both size totals. Used by workers while
// traversal is in flight, and by leaves setting their own size before
// any post-pass runs.
func (e *Entry) AddSize(apparent, onDisk int64) {
	e.apparentSize.Add(apparent)
	e.sizeOnDisk.Add(onDisk)
}

// AddEntryCount atomically adds to the reachable-file count.
func (e *Entry) AddEntryCount(n int64) {
	e.entryCount.Add(n)
}

// AddChild appends child under this node's child-lock. Append-only
// during traversal; reordered only by Finalize.
func (e *Entry) AddChild(child *Entry) {
	e.mu.Lock()
	e.children = append(e.children, child)
	e.mu.Unlock()
}

// Children returns a snapshot of the child slice. Safe to call during
// traversal; safe to call after Finalize for the definitive sorted order.
func (e *Entry) Children() []*Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*Entry, len(e.children))
	copy(out, e.children)
	return out
}

// RemoveChildByPath removes the named child (by full path) from this
// node's child list and reports the removed subtree's final sizes, for
// the caller to propagate up the navigation stack.
func (e *Entry) RemoveChildByPath(path string) (apparent, onDisk, files int64, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.children {
		if c.Path == path {
			e.children = append(e.children[:i:i], e.children[i+1:]...)
			return c.ApparentSize(), c.SizeOnDisk(), c.EntryCount(), true
		}
	}
	return 0, 0, 0, false
}

// ReplaceChildren atomically swaps this node's child list. Used by a
// subtree refresh, which rescans in isolation and then publishes the
// new children as a single update rather than mutating the live list
// incrementally.
func (e *Entry) ReplaceChildren(children []*Entry) {
	e.mu.Lock()
	e.children = children
	e.mu.Unlock()
}

// NewRootGroup wraps multiple already-finalized root entries under one
// synthetic container so a multi-path scan can be browsed as a single
// tree. The container itself is never a real filesystem path.
func NewRootGroup(roots []*Entry) *Entry {
	g := New("", KindDir)
	for _, r := range roots {
		g.AddChild(r)
	}
	g.Finalize()
	return g
}

// Finalize recomputes size/count bottom-up and sorts each directory's
// children descending by on-disk size (ties broken by name ascending).
// Must run single-threaded, after pool drain.
func (e *Entry) Finalize() {
	if e.Kind != KindDir {
		// entry_count is 1 iff the leaf has nonzero apparent size.
		if e.Kind == KindFile && e.ApparentSize() > 0 {
			e.entryCount.Store(1)
		} else {
			e.entryCount.Store(0)
		}
		return
	}

	e.mu.Lock()
	children := e.children
	e.mu.Unlock()

	var apparent, onDisk, count int64
	for _, c := range children {
		c.Finalize()
		apparent += c.ApparentSize()
		onDisk += c.SizeOnDisk()
		count += c.EntryCount()
	}
	e.apparentSize.Store(apparent)
	e.sizeOnDisk.Store(onDisk)
	e.entryCount.Store(count)

	e.mu.Lock()
	sort.SliceStable(e.children, func(i, j int) bool {
		si, sj := e.children[i].SizeOnDisk(), e.children[j].SizeOnDisk()
		if si != sj {
			return si > sj
		}
		return e.children[i].Name() < e.children[j].Name()
	})
	e.mu.Unlock()
}
