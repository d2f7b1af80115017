package quickview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateEmptyFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(p, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	preview := Generate(p)
	if preview.Kind != KindEmpty {
		t.Fatalf("kind = %v, want KindEmpty", preview.Kind)
	}
}

func TestGenerateTextFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f.txt")
	content := "line one\nline two\nline three\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	preview := Generate(p)
	if preview.Kind != KindText {
		t.Fatalf("kind = %v, want KindText", preview.Kind)
	}
	if len(preview.Lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(preview.Lines))
	}
	if preview.Lines[0].Plain != "line one" {
		t.Fatalf("line 0 = %q", preview.Lines[0].Plain)
	}
}

func TestGenerateBinaryFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f.bin")
	data := []byte{0x00, 0x01, 0x02, 0xff, 0xfe}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		t.Fatal(err)
	}
	preview := Generate(p)
	if preview.Kind != KindBinary {
		t.Fatalf("kind = %v, want KindBinary", preview.Kind)
	}
	if len(preview.Hex) == 0 {
		t.Fatalf("hex dump empty")
	}
}

func TestGenerateDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "zzz"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "aaa.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	preview := Generate(dir)
	if preview.Kind != KindDirectory {
		t.Fatalf("kind = %v, want KindDirectory", preview.Kind)
	}
	if len(preview.Dir) != 2 {
		t.Fatalf("dir entries = %d, want 2", len(preview.Dir))
	}
	if !strings.HasSuffix(preview.Dir[0], "/") {
		t.Fatalf("dirs should sort first: %v", preview.Dir)
	}
}

func TestGenerateImageExtension(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "pic.png")
	if err := os.WriteFile(p, []byte("not a real png but has bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	preview := Generate(p)
	if preview.Kind != KindImage {
		t.Fatalf("kind = %v, want KindImage", preview.Kind)
	}
}

func TestHexDumpLayout(t *testing.T) {
	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(i)
	}
	lines := HexDump(data)
	if len(lines) != 2 {
		t.Fatalf("rows = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "00000000  ") {
		t.Fatalf("first row missing offset prefix: %q", lines[0])
	}
	if !strings.Contains(lines[0], "|") {
		t.Fatalf("row missing ascii column: %q", lines[0])
	}
}

func TestParseSGRBasic(t *testing.T) {
	line := "\x1b[1mhello\x1b[0m world"
	cells := ParseSGR(line)
	if len(cells) != len("hello world") {
		t.Fatalf("cells = %d, want %d", len(cells), len("hello world"))
	}
	if !cells[0].Bold {
		t.Fatalf("first cell should be bold")
	}
	if cells[6].Bold {
		t.Fatalf("cell after reset should not be bold")
	}
}

func TestStripANSI(t *testing.T) {
	got := StripANSI("\x1b[31mred\x1b[0m")
	if got != "red" {
		t.Fatalf("StripANSI = %q, want %q", got, "red")
	}
}
