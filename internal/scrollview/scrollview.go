// Package scrollview implements the cursor, viewport, and
// case-insensitive search state for the quick-view preview pane. It
// holds no rendering logic — it is a pure state machine the UI layer
// reads each frame.
package scrollview

import (
	"regexp"
	"strconv"
	"strings"
)

// Match is one hit of an active search.
type Match struct {
	Line, Col int
}

// View is the scrollable-view state machine.
type View struct {
	lines []string

	width, height int // viewport size in cells
	cx, cy        int // cursor position (rune column, line index)
	ox, oy        int // viewport top-left offset

	pattern      string
	matches      []Match
	matchIdx     int
	searchActive bool

	cmdBuffer string
	cmdActive bool
}

// New creates a view over lines with the given viewport dimensions.
func New(lines []string, width, height int) *View {
	v := &View{width: width, height: height}
	v.SetLines(lines)
	return v
}

// SetLines replaces the displayed content, resetting cursor and
// search state (a fresh preview has no relationship to the old one).
func (v *View) SetLines(lines []string) {
	v.lines = lines
	v.cx, v.cy, v.ox, v.oy = 0, 0, 0, 0
	v.matches = nil
	v.matchIdx = 0
	v.searchActive = false
	v.pattern = ""
}

// Resize updates the viewport dimensions, re-clamping the cursor into
// view.
func (v *View) Resize(width, height int) {
	v.width, v.height = width, height
	v.scrollToCursor()
}

// Cursor returns the current (column, line) cursor position.
func (v *View) Cursor() (int, int) { return v.cx, v.cy }

// Viewport returns the current (column, line) top-left offset.
func (v *View) Viewport() (int, int) { return v.ox, v.oy }

// Lines returns the displayed content.
func (v *View) Lines() []string { return v.lines }

func (v *View) lineLen(y int) int {
	if y < 0 || y >= len(v.lines) {
		return 0
	}
	return len([]rune(v.lines[y]))
}

func (v *View) clampCx() {
	n := v.lineLen(v.cy)
	if n == 0 {
		v.cx = 0
		return
	}
	if v.cx > n-1 {
		v.cx = n - 1
	}
	if v.cx < 0 {
		v.cx = 0
	}
}

func (v *View) scrollToCursor() {
	if v.height > 0 {
		if v.cy < v.oy {
			v.oy = v.cy
		}
		if v.cy >= v.oy+v.height {
			v.oy = v.cy - v.height + 1
		}
	}
	if v.width > 0 {
		if v.cx < v.ox {
			v.ox = v.cx
		}
		if v.cx >= v.ox+v.width {
			v.ox = v.cx - v.width + 1
		}
	}
	if v.oy < 0 {
		v.oy = 0
	}
	if v.ox < 0 {
		v.ox = 0
	}
}

// Up moves the cursor up one line.
func (v *View) Up() {
	if v.cy > 0 {
		v.cy--
	}
	v.clampCx()
	v.scrollToCursor()
}

// Down moves the cursor down one line.
func (v *View) Down() {
	if v.cy < len(v.lines)-1 {
		v.cy++
	}
	v.clampCx()
	v.scrollToCursor()
}

// Left moves the cursor left one rune; empty lines pin to column 0.
func (v *View) Left() {
	if v.cx > 0 {
		v.cx--
	}
	v.scrollToCursor()
}

// Right moves the cursor right one rune, stopping at the last
// character of a non-empty line (never past it).
func (v *View) Right() {
	n := v.lineLen(v.cy)
	if n == 0 {
		v.cx = 0
	} else if v.cx < n-1 {
		v.cx++
	}
	v.scrollToCursor()
}

// PageUp moves the cursor up by one window height.
func (v *View) PageUp() {
	v.cy -= max(v.height, 1)
	if v.cy < 0 {
		v.cy = 0
	}
	v.clampCx()
	v.scrollToCursor()
}

// PageDown moves the cursor down by one window height.
func (v *View) PageDown() {
	v.cy += max(v.height, 1)
	if v.cy > len(v.lines)-1 {
		v.cy = len(v.lines) - 1
	}
	if v.cy < 0 {
		v.cy = 0
	}
	v.clampCx()
	v.scrollToCursor()
}

// Home jumps to the first line.
func (v *View) Home() {
	v.cy = 0
	v.clampCx()
	v.scrollToCursor()
}

// End jumps to the last line.
func (v *View) End() {
	if len(v.lines) > 0 {
		v.cy = len(v.lines) - 1
	}
	v.clampCx()
	v.scrollToCursor()
}

// LineStart moves to column 0 of the current line.
func (v *View) LineStart() {
	v.cx = 0
	v.scrollToCursor()
}

// LineEnd moves to the last character of the current line.
func (v *View) LineEnd() {
	n := v.lineLen(v.cy)
	if n == 0 {
		v.cx = 0
	} else {
		v.cx = n - 1
	}
	v.scrollToCursor()
}

// PerformSearch scans every line case-insensitively for pattern,
// builds the ordered match list, and — on completion — moves the
// cursor to the match nearest the current position (line distance
// dominates column distance).
func (v *View) PerformSearch(pattern string) {
	v.pattern = pattern
	v.matches = nil
	v.searchActive = pattern != ""
	if pattern == "" {
		return
	}

	needle := strings.ToLower(pattern)
	for lineNo, line := range v.lines {
		lower := strings.ToLower(line)
		start := 0
		for {
			idx := strings.Index(lower[start:], needle)
			if idx < 0 {
				break
			}
			col := len([]rune(lower[:start+idx]))
			v.matches = append(v.matches, Match{Line: lineNo, Col: col})
			start += idx + len(needle)
			if start >= len(lower) {
				break
			}
		}
	}

	if len(v.matches) == 0 {
		return
	}

	best := 0
	bestDist := matchDistance(v.matches[0], v.cy, v.cx)
	for i, m := range v.matches[1:] {
		d := matchDistance(m, v.cy, v.cx)
		if d < bestDist {
			best, bestDist = i+1, d
		}
	}
	v.matchIdx = best
	v.jumpTo(v.matches[best])
}

func matchDistance(m Match, cy, cx int) int {
	lineDist := m.Line - cy
	if lineDist < 0 {
		lineDist = -lineDist
	}
	colDist := m.Col - cx
	if colDist < 0 {
		colDist = -colDist
	}
	return lineDist*1_000_000 + colDist
}

func (v *View) jumpTo(m Match) {
	v.cy = m.Line
	v.cx = m.Col
	v.clampCx()
	v.scrollToCursor()
}

// NextMatch moves to the first match after the cursor, wrapping.
func (v *View) NextMatch() {
	if len(v.matches) == 0 {
		return
	}
	v.matchIdx = 0
	for i, m := range v.matches {
		if m.Line > v.cy || (m.Line == v.cy && m.Col > v.cx) {
			v.matchIdx = i
			break
		}
	}
	v.jumpTo(v.matches[v.matchIdx])
}

// PrevMatch moves to the first match before the cursor, wrapping.
func (v *View) PrevMatch() {
	if len(v.matches) == 0 {
		return
	}
	v.matchIdx = len(v.matches) - 1
	for i := len(v.matches) - 1; i >= 0; i-- {
		m := v.matches[i]
		if m.Line < v.cy || (m.Line == v.cy && m.Col < v.cx) {
			v.matchIdx = i
			break
		}
	}
	v.jumpTo(v.matches[v.matchIdx])
}

// Matches returns the current match list (for a status line).
func (v *View) Matches() ([]Match, int) { return v.matches, v.matchIdx }

var wordRE = regexp.MustCompile(`[A-Za-z0-9_]+`)

// SearchWordUnderCursor extracts the [A-Za-z0-9_]+ token at the
// cursor and re-runs PerformSearch with it.
func (v *View) SearchWordUnderCursor() {
	if v.cy < 0 || v.cy >= len(v.lines) {
		return
	}
	line := []rune(v.lines[v.cy])
	if v.cx < 0 || v.cx >= len(line) {
		return
	}

	locs := wordRE.FindAllStringIndex(string(line), -1)
	for _, loc := range locs {
		start := len([]rune(string(line)[:loc[0]]))
		end := len([]rune(string(line)[:loc[1]]))
		if v.cx >= start && v.cx < end {
			v.PerformSearch(string(line[start:end]))
			return
		}
	}
}

// EnterCommandMode begins a ":"-prefixed command.
func (v *View) EnterCommandMode() {
	v.cmdActive = true
	v.cmdBuffer = ""
}

// CommandActive reports whether command-mode input is being captured.
func (v *View) CommandActive() bool { return v.cmdActive }

// CommandBuffer returns the in-progress command text.
func (v *View) CommandBuffer() string { return v.cmdBuffer }

// AppendCommandChar appends one character to the command buffer.
func (v *View) AppendCommandChar(r rune) {
	v.cmdBuffer += string(r)
}

// BackspaceCommand removes the last character of the command buffer.
func (v *View) BackspaceCommand() {
	if len(v.cmdBuffer) == 0 {
		return
	}
	runes := []rune(v.cmdBuffer)
	v.cmdBuffer = string(runes[:len(runes)-1])
}

// CancelCommand discards the in-progress command.
func (v *View) CancelCommand() {
	v.cmdActive = false
	v.cmdBuffer = ""
}

// ExecuteCommand interprets the buffer: ":<digits>" jumps to that
// 1-based line and centers it; ":$" jumps to the last line; any other
// input is silently ignored.
func (v *View) ExecuteCommand() {
	defer v.CancelCommand()

	buf := v.cmdBuffer
	if buf == "$" {
		v.gotoLineCentered(len(v.lines) - 1)
		return
	}
	n, err := strconv.Atoi(buf)
	if err != nil || n < 1 {
		return
	}
	v.gotoLineCentered(n - 1)
}

func (v *View) gotoLineCentered(line int) {
	if line < 0 {
		line = 0
	}
	if line > len(v.lines)-1 {
		line = len(v.lines) - 1
	}
	if line < 0 {
		line = 0
	}
	v.cy = line
	v.clampCx()
	v.oy = line - v.height/2
	if v.oy < 0 {
		v.oy = 0
	}
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
