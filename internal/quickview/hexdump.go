package quickview

import (
	"fmt"
	"strings"
)

const hexDumpBytes = 256
const hexDumpRowWidth = 16

// HexDump renders up to the first hexDumpBytes bytes of data as
// offset/hex/ASCII rows (8-hex-digit offset, 16 bytes per row, an
// extra gap at the 8-byte midpoint, `|ascii|` trailer with
// non-printable bytes shown as '.'), matching this tool's original
// implementation.
func HexDump(data []byte) []string {
	if len(data) > hexDumpBytes {
		data = data[:hexDumpBytes]
	}

	var lines []string
	for i := 0; i < len(data); i += hexDumpRowWidth {
		end := i + hexDumpRowWidth
		if end > len(data) {
			end = len(data)
		}
		row := data[i:end]

		var b strings.Builder
		fmt.Fprintf(&b, "%08X  ", i)
		for j := 0; j < hexDumpRowWidth; j++ {
			if j < len(row) {
				fmt.Fprintf(&b, "%02X ", row[j])
			} else {
				b.WriteString("   ")
			}
			if j == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for _, c := range row {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|")

		lines = append(lines, b.String())
	}
	return lines
}
