package quickview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Cell is one character of a highlighted preview line together with
// its resolved color-pair slot and attributes.
type Cell struct {
	Ch        rune
	ColorPair int
	Bold      bool
	Underline bool
}

// Syntax roles the palette maps 24-bit colors onto. Index 0 is "no
// color" (terminal default).
const (
	roleNone = iota
	roleKeyword
	roleString
	roleComment
	roleType
	roleFunction
	roleVariable
	roleText
	paletteSize
)

// hardcodedPalette maps the RGB values bat's "Monokai Extended" theme
// actually emits for each syntax role onto a fixed color-pair slot, so
// the same five or six roles always land on the same pair regardless
// of the file's language.
var hardcodedPalette = map[[3]uint8]int{
	{249, 38, 114}: roleKeyword,  // pink
	{230, 219, 116}: roleString,  // yellow
	{117, 113, 94}:  roleComment, // gray-green
	{102, 217, 239}: roleType,    // cyan
	{166, 226, 46}:  roleFunction, // green
	{248, 248, 242}: roleText,    // off-white
}

// ParseSGR decodes an ANSI-colored line (as produced by the bat
// highlighter) into per-character cells. Unknown RGB triples fall back
// to a luminance bucket so the palette never overflows its ~16 slots.
func ParseSGR(line string) []Cell {
	cells := make([]Cell, 0, len(line))

	var pair int
	var bold, underline bool

	runes := []rune(line)
	i := 0
	for i < len(runes) {
		if runes[i] == 0x1b && i+1 < len(runes) && runes[i+1] == '[' {
			end := i + 2
			for end < len(runes) && runes[end] != 'm' {
				end++
			}
			if end < len(runes) {
				params := string(runes[i+2 : end])
				pair, bold, underline = applySGR(params, pair, bold, underline)
				i = end + 1
				continue
			}
		}
		cells = append(cells, Cell{Ch: runes[i], ColorPair: pair, Bold: bold, Underline: underline})
		i++
	}
	return cells
}

// applySGR folds one SGR parameter list into the running cell state.
func applySGR(params string, pair int, bold, underline bool) (int, bool, bool) {
	fields := strings.Split(params, ";")
	for idx := 0; idx < len(fields); idx++ {
		code, err := strconv.Atoi(fields[idx])
		if err != nil {
			continue
		}
		switch {
		case code == 0:
			pair, bold, underline = roleNone, false, false
		case code == 1:
			bold = true
		case code == 4:
			underline = true
		case code == 38 && idx+4 < len(fields) && fields[idx+1] == "2":
			r, _ := strconv.Atoi(fields[idx+2])
			g, _ := strconv.Atoi(fields[idx+3])
			b, _ := strconv.Atoi(fields[idx+4])
			pair = resolveColor(uint8(r), uint8(g), uint8(b))
			idx += 4
		case code >= 30 && code <= 37:
			pair = roleText
		case code >= 90 && code <= 97:
			pair = roleText
		}
	}
	return pair, bold, underline
}

// resolveColor maps an RGB triple to one of the hard-coded syntax
// roles, falling back to a luminance bucket (dark text vs. bright
// text) when the color doesn't match a known role.
func resolveColor(r, g, b uint8) int {
	if role, ok := hardcodedPalette[[3]uint8{r, g, b}]; ok {
		return role
	}
	lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	if lum > 128 {
		return roleText
	}
	return roleComment
}

// StripANSI removes escape sequences, returning plain text for
// consumers (ScrollableView search, width measurement) that don't need
// per-cell color.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
