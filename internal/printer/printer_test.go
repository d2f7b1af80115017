package printer

import (
	"bytes"
	"testing"

	"github.com/dux-cli/dux/internal/entry"
	"github.com/dux-cli/dux/internal/format"
)

func buildExampleTree() *entry.Entry {
	d := entry.New("D", entry.KindDir)
	names := []struct {
		name string
		size int64
	}{{"a", 30}, {"b", 20}, {"c", 10}, {"d", 5}}
	for _, n := range names {
		c := entry.New(n.name, entry.KindFile)
		c.AddSize(n.size, n.size)
		d.AddChild(c)
	}
	d.Finalize()
	return d
}

func TestPrintTreeTopTruncation(t *testing.T) {
	d := buildExampleTree()
	p := &Printer{Format: format.Bytes, Top: 2}

	var buf bytes.Buffer
	p.PrintTree(&buf, []*entry.Entry{d})

	want := "└── D [65 B]\n" +
		"    ├── a [30 B]\n" +
		"    ├── b [20 B]\n" +
		"    └── ... 2 more entries\n"
	if buf.String() != want {
		t.Fatalf("PrintTree output mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrintTreeDepthLimit(t *testing.T) {
	root := entry.New("root", entry.KindDir)
	sub := entry.New("root/sub", entry.KindDir)
	leaf := entry.New("root/sub/leaf", entry.KindFile)
	leaf.AddSize(10, 10)
	sub.AddChild(leaf)
	root.AddChild(sub)
	root.Finalize()

	p := &Printer{Format: format.Bytes, MaxDepth: 1}
	var buf bytes.Buffer
	p.PrintTree(&buf, []*entry.Entry{root})

	if bytes.Contains(buf.Bytes(), []byte("leaf")) {
		t.Fatalf("depth limit did not stop recursion: %s", buf.String())
	}
}

func TestPrintFlatAscendingWithTotal(t *testing.T) {
	a := entry.New("/a", entry.KindFile)
	a.AddSize(100, 100)
	b := entry.New("/b", entry.KindFile)
	b.AddSize(10, 10)

	p := &Printer{Format: format.Bytes}
	var buf bytes.Buffer
	p.PrintFlat(&buf, []*entry.Entry{a, b})

	out := buf.String()
	small := bytes.Index([]byte(out), []byte("10 B /b"))
	large := bytes.Index([]byte(out), []byte("100 B /a"))
	if small == -1 || large == -1 || small > large {
		t.Fatalf("expected ascending order to show smaller entry first: %s", out)
	}
	if !bytes.Contains([]byte(out), []byte("total")) {
		t.Fatalf("missing total line for multiple roots: %s", out)
	}
}

func TestPrintFlatSymlinkShowsTarget(t *testing.T) {
	link := entry.New("/link", entry.KindSymlink)
	link.SymlinkTarget = "/elsewhere"

	p := &Printer{Format: format.Bytes}
	var buf bytes.Buffer
	p.PrintFlat(&buf, []*entry.Entry{link})

	if !bytes.Contains(buf.Bytes(), []byte("/link -> /elsewhere")) {
		t.Fatalf("symlink target not rendered: %s", buf.String())
	}
}
