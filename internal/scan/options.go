package scan

import "path/filepath"

// Format names the byte-count unit families, with the same values as
// format.System (the type the printer takes).
type Format string

const (
	FormatMetric Format = "metric"
	FormatBinary Format = "binary"
	FormatBytes  Format = "bytes"
	FormatGB     Format = "gb"
	FormatGiB    Format = "gib"
	FormatMB     Format = "mb"
	FormatMiB    Format = "mib"
)

// Options configures a Scanner.
type Options struct {
	// ApparentSize, when true, uses apparent size instead of
	// block-allocated size as the entry's primary size.
	ApparentSize bool

	// CountHardLinks disables hard-link dedup: every encounter of a
	// hard-linked file contributes its full size.
	CountHardLinks bool

	// StayOnFilesystem skips entries whose device_id differs from the
	// scanned root's.
	StayOnFilesystem bool

	// IgnoreDirs is the set of canonicalized paths to skip entirely.
	IgnoreDirs map[string]struct{}

	// Workers is the pool width. Zero or less means New probes the CPU
	// count itself.
	Workers int

	// DirTimeoutMillis bounds how long a single directory's
	// enumeration may take before it is abandoned and counted skipped.
	DirTimeoutMillis int
}

// DefaultOptions returns the scanner's defaults.
func DefaultOptions() *Options {
	return &Options{
		StayOnFilesystem: false,
		Workers:          0,
		DirTimeoutMillis: 5000,
	}
}

// WithApparentSize toggles apparent-size accounting.
func (o *Options) WithApparentSize(v bool) *Options { o.ApparentSize = v; return o }

// WithCountHardLinks disables hard-link dedup when v is true.
func (o *Options) WithCountHardLinks(v bool) *Options { o.CountHardLinks = v; return o }

// WithStayOnFilesystem toggles mount-boundary scoping.
func (o *Options) WithStayOnFilesystem(v bool) *Options { o.StayOnFilesystem = v; return o }

// WithWorkers sets the pool width.
func (o *Options) WithWorkers(n int) *Options { o.Workers = n; return o }

// AddIgnoreDir canonicalizes and records a path to skip.
func (o *Options) AddIgnoreDir(path string) *Options {
	if o.IgnoreDirs == nil {
		o.IgnoreDirs = make(map[string]struct{})
	}
	o.IgnoreDirs[filepath.Clean(path)] = struct{}{}
	return o
}

// shouldIgnore reports whether path was named by --ignore-dirs.
func (o *Options) shouldIgnore(path string) bool {
	if len(o.IgnoreDirs) == 0 {
		return false
	}
	_, ok := o.IgnoreDirs[filepath.Clean(path)]
	return ok
}

// dedupEnabled reports whether hard-link dedup is active.
func (o *Options) dedupEnabled() bool { return !o.CountHardLinks }
