package scan

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dux-cli/dux/internal/format"
)

// progressInterval is how often the throttle is willing to write.
const progressInterval = 100 * time.Millisecond

// ProgressThrottle rate-limits progress writes to one per
// progressInterval, and only when the target is a terminal.
type ProgressThrottle struct {
	w        io.Writer
	isTTY    bool
	mu       sync.Mutex
	lastWall time.Time

	items   atomic.Int64
	skipped atomic.Int64
}

// NewProgressThrottle creates a throttle writing to w. isTTY should
// reflect whether w is a terminal; when false, Tick is a no-op.
func NewProgressThrottle(w io.Writer, isTTY bool) *ProgressThrottle {
	return &ProgressThrottle{w: w, isTTY: isTTY}
}

// IncItems records one more enumerated item.
func (p *ProgressThrottle) IncItems() { p.items.Add(1) }

// IncSkipped records one more skipped (timed-out) directory.
func (p *ProgressThrottle) IncSkipped() { p.skipped.Add(1) }

// Tick writes a progress line for path if the throttle interval has
// elapsed and the target is a terminal. Uses a carriage-return
// line-clear sequence.
func (p *ProgressThrottle) Tick(path string) {
	if !p.isTTY {
		return
	}
	now := time.Now()
	p.mu.Lock()
	if now.Sub(p.lastWall) < progressInterval {
		p.mu.Unlock()
		return
	}
	p.lastWall = now
	p.mu.Unlock()

	items := p.items.Load()
	skipped := p.skipped.Load()
	skippedPart := ""
	if skipped > 0 {
		skippedPart = fmt.Sprintf(" (skipped %d)", skipped)
	}
	fmt.Fprintf(p.w, "\rEnumerating %d items%s - %s", items, skippedPart, format.ShortenPath(path))
}

// Clear erases the progress line before final stats are printed.
func (p *ProgressThrottle) Clear() {
	if !p.isTTY {
		return
	}
	fmt.Fprint(p.w, "\r\033[K")
}
