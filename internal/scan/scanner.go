// Package scan implements the parallel traversal engine: it walks one
// or more filesystem roots through a work-stealing pool,
// builds the entry.Entry tree, honors hard-link dedup, filesystem
// scoping, ignore-dirs and symlink-loop protection, and finalizes
// aggregates once the pool drains.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/pool"
)

// Stats summarizes one Scan call.
type Stats struct {
	Files     int64
	Dirs      int64
	Symlinks  int64
	IOErrors  int64
	Skipped   int64
	TotalSize int64
	Elapsed   time.Duration
}

// Scanner builds the Entry tree for one or more roots.
type Scanner struct {
	opts     *Options
	pool     *pool.Pool
	progress *ProgressThrottle
	dedup    *identitySet
	visited  *identitySet

	files     atomic.Int64
	dirs      atomic.Int64
	symlinks  atomic.Int64
	ioErrors  atomic.Int64
	skipped   atomic.Int64
	elapsedNs atomic.Int64
	totalSize atomic.Int64
}

// New creates a Scanner. progress may be nil to disable progress lines.
func New(opts *Options, progress *ProgressThrottle) *Scanner {
	if opts == nil {
		opts = DefaultOptions()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if runtime.GOOS == "darwin" && workers > 3 {
			// macOS kqueue-backed directory reads scale poorly past a
			// handful of concurrent walkers; cap worker count there.
			workers = 3
		}
		if workers < 1 {
			workers = 1
		}
	}
	if progress == nil {
		progress = NewProgressThrottle(os.Stderr, false)
	}
	return &Scanner{
		opts:     opts,
		pool:     pool.New(workers),
		progress: progress,
		dedup:    newIdentitySet(),
		visited:  newIdentitySet(),
	}
}

// Close releases the underlying worker pool.
func (s *Scanner) Close() { s.pool.Close() }

// Scan walks each path and returns one root Entry per input, in the
// same order. It blocks until traversal and aggregation complete.
func (s *Scanner) Scan(paths []string) ([]*entry.Entry, error) {
	start := time.Now()
	roots := make([]*entry.Entry, len(paths))

	for i, p := range paths {
		root, rootDev, err := s.makeRootEntry(p)
		if err != nil {
			return nil, err
		}
		roots[i] = root
		if root.Kind == entry.KindDir {
			s.dirs.Add(1)
			s.visited.insert(root.DeviceID, root.Inode)
			s.pool.Submit(func() { s.walk(root, rootDev) })
		}
	}

	s.pool.WaitAll()
	s.progress.Clear()

	var total int64
	for _, root := range roots {
		root.Finalize()
		total += root.SizeOnDisk()
	}

	s.elapsedNs.Store(int64(time.Since(start)))
	s.totalSize.Store(total)
	return roots, nil
}

// Stats returns scan counters. Safe to call after Scan returns (or,
// for best-effort progress, while it is still running).
func (s *Scanner) Stats() Stats {
	return Stats{
		Files:     s.files.Load(),
		Dirs:      s.dirs.Load(),
		Symlinks:  s.symlinks.Load(),
		IOErrors:  s.ioErrors.Load(),
		Skipped:   s.skipped.Load(),
		Elapsed:   time.Duration(s.elapsedNs.Load()),
		TotalSize: s.totalSize.Load(),
	}
}

func (s *Scanner) makeRootEntry(path string) (*entry.Entry, uint64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("path does not exist: %w", err)
	}

	kind := classify(info)
	dev, inode, hardLinks, onDisk := statInfo(info)

	e := entry.New(path, kind)
	e.DeviceID = dev
	e.Inode = inode
	e.HardLinkCount = hardLinks
	e.ModTime = info.ModTime()

	switch kind {
	case entry.KindSymlink:
		e.SymlinkTarget = readSymlink(path)
		s.symlinks.Add(1)
	case entry.KindFile:
		s.files.Add(1)
		s.addFileSize(e, info.Size(), onDisk, dev, inode, hardLinks)
	}

	return e, dev, nil
}

// walk processes one directory: it enumerates children under a
// bounded budget, classifies each, appends to the tree, and fans
// subdirectories back into the pool.
func (s *Scanner) walk(dir *entry.Entry, rootDev uint64) {
	s.progress.IncItems()
	s.progress.Tick(dir.Path)

	budget := time.Duration(s.opts.DirTimeoutMillis) * time.Millisecond
	children, timedOut, err := readDirTimeout(dir.Path, budget)
	if timedOut {
		s.skipped.Add(1)
		s.progress.IncSkipped()
		return
	}
	if err != nil {
		s.ioErrors.Add(1)
		return
	}

	for i, de := range children {
		if i%256 == 0 {
			s.progress.Tick(dir.Path)
		}

		childPath := filepath.Join(dir.Path, de.Name())
		info, err := os.Lstat(childPath)
		if err != nil {
			s.ioErrors.Add(1)
			continue
		}

		kind := classify(info)
		dev, inode, hardLinks, onDisk := statInfo(info)

		if s.opts.StayOnFilesystem && kind != entry.KindSymlink && dev != rootDev {
			continue
		}
		if s.opts.shouldIgnore(childPath) {
			continue
		}

		child := entry.New(childPath, kind)
		child.DeviceID = dev
		child.Inode = inode
		child.HardLinkCount = hardLinks
		child.ModTime = info.ModTime()

		switch kind {
		case entry.KindSymlink:
			child.SymlinkTarget = readSymlink(childPath)
			s.symlinks.Add(1)
			dir.AddChild(child)

		case entry.KindDir:
			if !s.visited.insert(dev, inode) {
				// Already entered this directory by another path
				// (e.g. a bind mount); skip to avoid an infinite
				// descent.
				dir.AddChild(child)
				continue
			}
			s.dirs.Add(1)
			dir.AddChild(child)
			s.pool.Submit(func() { s.walk(child, rootDev) })

		case entry.KindFile:
			s.files.Add(1)
			s.addFileSize(child, info.Size(), onDisk, dev, inode, hardLinks)
			dir.AddChild(child)
		}
	}
}

// addFileSize sets e's own size fields, honoring hard-link dedup:
// the first encounter of a multiply-linked inode keeps its full
// size; later encounters stay visible in the tree (with their
// HardLinkCount) but contribute zero size, and so also zero to
// entry_count under Finalize's leaf rule. The sum over all descendants
// therefore already equals the dedup'd total with no special case in
// entry.Entry.Finalize.
func (s *Scanner) addFileSize(e *entry.Entry, apparent, onDisk int64, dev, inode uint64, hardLinks uint64) {
	if s.opts.dedupEnabled() && hardLinks > 1 {
		if !s.dedup.insert(dev, inode) {
			return // not first writer: zero contribution
		}
	}
	e.AddSize(apparent, onDisk)
}

func classify(info os.FileInfo) entry.Kind {
	mode := info.Mode()
	switch {
	case mode&os.ModeSymlink != 0:
		return entry.KindSymlink
	case mode.IsDir():
		return entry.KindDir
	default:
		return entry.KindFile
	}
}

func readSymlink(path string) string {
	target, err := os.Readlink(path)
	if err != nil {
		return "[unreadable]"
	}
	return target
}

const diskBlockSize = 4096

// statInfo extracts device/inode/nlink/on-disk-bytes from platform stat
// data when available, falling back to a 4 KiB block-rounded estimate
// otherwise.
func statInfo(info os.FileInfo) (dev, inode, hardLinks uint64, onDisk int64) {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(stat.Dev), stat.Ino, uint64(stat.Nlink), stat.Blocks * 512
	}
	size := info.Size()
	onDisk = ((size + diskBlockSize - 1) / diskBlockSize) * diskBlockSize
	return 0, 0, 1, onDisk
}

type readDirResult struct {
	entries []os.DirEntry
	err     error
}

// readDirTimeout lists dir's entries under a wall-clock budget. On
// timeout, the helper goroutine's eventual result is discarded (one-
// shot buffered channel, first reader wins) rather than killed
// outright.
func readDirTimeout(dir string, budget time.Duration) (entries []os.DirEntry, timedOut bool, err error) {
	ch := make(chan readDirResult, 1)
	go func() {
		e, err := os.ReadDir(dir)
		ch <- readDirResult{e, err}
	}()

	select {
	case r := <-ch:
		return r.entries, false, r.err
	case <-time.After(budget):
		return nil, true, nil
	}
}
