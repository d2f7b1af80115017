// Package quickview produces a bounded, in-memory textual preview of a
// path: syntax-highlighted text, a directory listing, a hex dump, or a
// metadata-only message for images/archives/empty/error cases.
package quickview

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/dux-cli/dux/internal/format"
)

// Kind is the category of preview produced for a path.
type Kind int

const (
	KindText Kind = iota
	KindDirectory
	KindBinary
	KindImage
	KindArchive
	KindEmpty
	KindError
)

const (
	maxPreviewLines = 10000
	maxLineLength   = 500
	maxDirEntries   = 2000
)

// Line is one rendered preview line: Plain is always populated (for
// search and width calculations); Cells holds per-character color
// when a syntax highlighter produced one.
type Line struct {
	Plain string
	Cells []Cell
}

// Preview is the bounded result of previewing one path.
type Preview struct {
	Kind    Kind
	Lines   []Line   // KindText
	Dir     []string // KindDirectory
	Hex     []string // KindBinary
	Message string   // KindImage, KindArchive, KindEmpty, KindError, and the KindBinary header
}

// Generate builds a preview for path.
func Generate(path string) Preview {
	info, err := os.Lstat(path)
	if err != nil {
		return Preview{Kind: KindError, Message: err.Error()}
	}

	if info.IsDir() {
		return directoryPreview(path)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return Preview{Kind: KindText, Lines: []Line{{Plain: "symlink"}}}
	}
	if info.Size() == 0 {
		return Preview{Kind: KindEmpty, Message: "(empty file)"}
	}

	if kind, ok := classifyExtension(path); ok {
		return Preview{Kind: kind, Message: metadataMessage(kind, info)}
	}

	binary, err := probeBinary(path)
	if err != nil {
		return Preview{Kind: KindError, Message: err.Error()}
	}
	if binary {
		return binaryPreview(path, info)
	}
	return textPreview(path)
}

func metadataMessage(kind Kind, info os.FileInfo) string {
	label := "Archive"
	if kind == KindImage {
		label = "Image"
	}
	return fmt.Sprintf("%s file, %s — press O to open externally", label, format.Size(info.Size(), format.Binary))
}

func binaryPreview(path string, info os.FileInfo) Preview {
	f, err := os.Open(path)
	if err != nil {
		return Preview{Kind: KindError, Message: err.Error()}
	}
	defer f.Close()

	buf := make([]byte, hexDumpBytes)
	n, _ := f.Read(buf)

	header := fmt.Sprintf("%s  %s", format.Size(info.Size(), format.Binary), info.Mode().Perm().String())
	return Preview{Kind: KindBinary, Message: header, Hex: HexDump(buf[:n])}
}

func directoryPreview(path string) Preview {
	entries, err := os.ReadDir(path)
	if err != nil {
		return Preview{Kind: KindError, Message: err.Error()}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return entries[i].Name() < entries[j].Name()
	})

	var lines []string
	overflow := 0
	for i, e := range entries {
		if i >= maxDirEntries {
			overflow = len(entries) - maxDirEntries
			break
		}
		if e.IsDir() {
			lines = append(lines, e.Name()+"/")
			continue
		}
		info, err := e.Info()
		size := int64(0)
		if err == nil {
			size = info.Size()
		}
		lines = append(lines, fmt.Sprintf("%-40s %s", e.Name(), format.Size(size, format.Binary)))
	}
	if overflow > 0 {
		lines = append(lines, fmt.Sprintf("... %d more entries", overflow))
	}
	return Preview{Kind: KindDirectory, Dir: lines}
}

func textPreview(path string) Preview {
	if highlighted, ok := tryHighlight(path); ok {
		return Preview{Kind: KindText, Lines: highlighted}
	}

	f, err := os.Open(path)
	if err != nil {
		return Preview{Kind: KindError, Message: err.Error()}
	}
	defer f.Close()

	var lines []Line
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() && len(lines) < maxPreviewLines {
		text := runewidth.Truncate(scanner.Text(), maxLineLength, "")
		lines = append(lines, Line{Plain: text})
	}
	return Preview{Kind: KindText, Lines: lines}
}

// tryHighlight invokes the optional "bat" syntax highlighter if it is
// present on PATH.
func tryHighlight(path string) ([]Line, bool) {
	batPath, err := exec.LookPath("bat")
	if err != nil {
		return nil, false
	}

	lineRange := fmt.Sprintf("1:%d", maxPreviewLines)
	cmd := exec.Command(batPath,
		"--color=always",
		"--style=plain",
		"--theme=Monokai Extended",
		"--paging=never",
		"--line-range="+lineRange,
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, false
	}

	var lines []Line
	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() && len(lines) < maxPreviewLines {
		raw := scanner.Text()
		plain := runewidth.Truncate(StripANSI(raw), maxLineLength, "")
		lines = append(lines, Line{Plain: plain, Cells: ParseSGR(raw)})
	}
	return lines, true
}

// OpenerCommand returns the platform-appropriate "open with system"
// command name.
func OpenerCommand() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// OpenExternally best-effort spawns the platform opener detached; any
// failure is silently ignored.
func OpenExternally(path string) {
	cmd := exec.Command(OpenerCommand(), path)
	_ = cmd.Start()
}
