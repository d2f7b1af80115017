// Package format renders byte counts and paths for progress lines and
// the non-interactive printer and interactive UI.
package format

import "fmt"

// System selects the unit family used to render a byte count.
type System string

const (
	Metric System = "metric"
	Binary System = "binary"
	Bytes  System = "bytes"
	GB     System = "gb"
	GiB    System = "gib"
	MB     System = "mb"
	MiB    System = "mib"
)

// Size renders b using the given unit system.
func Size(b int64, sys System) string {
	switch sys {
	case Bytes, "":
		return fmt.Sprintf("%d B", b)
	case GB:
		return fixedUnit(b, 1_000_000_000, "GB")
	case GiB:
		return fixedUnit(b, 1<<30, "GiB")
	case MB:
		return fixedUnit(b, 1_000_000, "MB")
	case MiB:
		return fixedUnit(b, 1<<20, "MiB")
	case Binary:
		return largestUnit(b, 1024, binaryUnits)
	default: // Metric
		return largestUnit(b, 1000, metricUnits)
	}
}

var metricUnits = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}
var binaryUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

func fixedUnit(b, unitSize int64, suffix string) string {
	v := float64(b) / float64(unitSize)
	return fmt.Sprintf("%.2f %s", v, suffix)
}

// largestUnit picks the largest unit where the scaled value is >= 1,
// rendering the 0th unit (raw bytes) as an integer and every other unit
// with two decimal places.
func largestUnit(b int64, base float64, units []string) string {
	if b == 0 {
		return "0 B"
	}
	neg := b < 0
	v := float64(b)
	if neg {
		v = -v
	}
	idx := 0
	for idx < len(units)-1 && v >= base {
		v /= base
		idx++
	}
	sign := ""
	if neg {
		sign = "-"
	}
	if idx == 0 {
		return fmt.Sprintf("%s%d %s", sign, int64(v), units[idx])
	}
	return fmt.Sprintf("%s%.2f %s", sign, v, units[idx])
}

const shortenMaxLen = 45
const shortenHead = 30
const shortenTail = 30

// ShortenPath shortens paths longer than shortenMaxLen characters to
// "head30…tail30" for use in progress lines.
func ShortenPath(path string) string {
	r := []rune(path)
	if len(r) <= shortenMaxLen {
		return path
	}
	return string(r[:shortenHead]) + "…" + string(r[len(r)-shortenTail:])
}
