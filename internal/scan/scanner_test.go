package scan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dux-cli/dux/internal/entry"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	s := New(DefaultOptions(), nil)
	defer s.Close()

	roots, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	root := roots[0]
	if root.SizeOnDisk() != 0 || root.EntryCount() != 0 {
		t.Fatalf("empty dir: size=%d count=%d, want 0,0", root.SizeOnDisk(), root.EntryCount())
	}
	if len(root.Children()) != 0 {
		t.Fatalf("empty dir has children")
	}
}

func TestScanSingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "f.txt")
	writeFile(t, f, 42)

	s := New(DefaultOptions(), nil)
	defer s.Close()

	roots, err := s.Scan([]string{f})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	root := roots[0]
	if root.Kind != entry.KindFile {
		t.Fatalf("kind = %v, want file", root.Kind)
	}
	if root.ApparentSize() != 42 {
		t.Fatalf("apparent size = %d, want 42", root.ApparentSize())
	}
	if root.EntryCount() != 1 {
		t.Fatalf("entry count = %d, want 1", root.EntryCount())
	}
}

func TestScanAggregatesNestedTree(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "a.txt"), 100)
	writeFile(t, filepath.Join(sub, "b.txt"), 200)

	s := New(DefaultOptions(), nil)
	defer s.Close()

	roots, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	root := roots[0]
	if root.ApparentSize() != 300 {
		t.Fatalf("root apparent size = %d, want 300", root.ApparentSize())
	}
	if root.EntryCount() != 2 {
		t.Fatalf("root entry count = %d, want 2", root.EntryCount())
	}

	stats := s.Stats()
	if stats.Files != 2 || stats.Dirs != 2 {
		t.Fatalf("stats = %+v, want files=2 dirs=2", stats)
	}
}

func TestScanSkipsIgnoredDirs(t *testing.T) {
	dir := t.TempDir()
	skip := filepath.Join(dir, "skip")
	if err := os.Mkdir(skip, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(skip, "big.bin"), 9999)
	writeFile(t, filepath.Join(dir, "keep.bin"), 10)

	opts := DefaultOptions().AddIgnoreDir(skip)
	s := New(opts, nil)
	defer s.Close()

	roots, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	root := roots[0]
	if root.ApparentSize() != 10 {
		t.Fatalf("root apparent size = %d, want 10 (ignored dir excluded)", root.ApparentSize())
	}
}

func TestScanSymlinkContributesNothingAndHasNoChildren(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(target, "f.txt"), 500)

	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	s := New(DefaultOptions(), nil)
	defer s.Close()

	roots, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	root := roots[0]

	var linkEntry *entry.Entry
	for _, c := range root.Children() {
		if c.Name() == "link" {
			linkEntry = c
		}
	}
	if linkEntry == nil {
		t.Fatalf("link entry not found")
	}
	if linkEntry.Kind != entry.KindSymlink {
		t.Fatalf("kind = %v, want symlink", linkEntry.Kind)
	}
	if linkEntry.ApparentSize() != 0 || len(linkEntry.Children()) != 0 {
		t.Fatalf("symlink contributed size or has children")
	}
}

func TestScanSelfReferentialSymlinkTerminates(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "loop")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	s := New(DefaultOptions(), nil)
	defer s.Close()

	done := make(chan struct{})
	go func() {
		s.Scan([]string{dir})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scan of self-referential symlink did not terminate")
	}
}

func TestHardLinkDedup(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	writeFile(t, a, 100)
	b := filepath.Join(dir, "b")
	if err := os.Link(a, b); err != nil {
		t.Skipf("hard links unsupported: %v", err)
	}

	s := New(DefaultOptions(), nil)
	defer s.Close()
	roots, err := s.Scan([]string{dir})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := roots[0].ApparentSize(); got != 100 {
		t.Fatalf("dedup on: apparent size = %d, want 100", got)
	}
	if got := roots[0].EntryCount(); got != 1 {
		t.Fatalf("dedup on: entry count = %d, want 1", got)
	}

	s2 := New(DefaultOptions().WithCountHardLinks(true), nil)
	defer s2.Close()
	roots2, err := s2.Scan([]string{dir})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := roots2[0].ApparentSize(); got != 200 {
		t.Fatalf("count-hard-links: apparent size = %d, want 200", got)
	}
	if got := roots2[0].EntryCount(); got != 2 {
		t.Fatalf("count-hard-links: entry count = %d, want 2", got)
	}
}

