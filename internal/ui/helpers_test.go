package ui

import (
	"time"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/scan"
)

// buildTree constructs a small finalized tree for UI tests without
// touching the filesystem: root/a (100 bytes), root/b/ (dir) with
// root/b/c (50 bytes).
func buildTree(rootPath string) *entry.Entry {
	root := entry.New(rootPath, entry.KindDir)

	a := entry.New(rootPath+"/a", entry.KindFile)
	a.ModTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a.AddSize(100, 100)

	b := entry.New(rootPath+"/b", entry.KindDir)
	b.ModTime = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	c := entry.New(rootPath+"/b/c", entry.KindFile)
	c.ModTime = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	c.AddSize(50, 50)
	b.AddChild(c)

	root.AddChild(a)
	root.AddChild(b)
	root.Finalize()
	return root
}

func testModel(root *entry.Entry) *Model {
	return New([]*entry.Entry{root}, scan.DefaultOptions(), false, false)
}
