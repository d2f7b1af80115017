package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/dux-cli/dux/internal/format"
	"github.com/dux-cli/dux/internal/scan"
)

func main() {
	dir := flag.String("dir", ".", "Directory tree to scan")
	workers := flag.Int("workers", 0, "Pool width (0 = number of CPUs)")
	runs := flag.Int("runs", 3, "Number of scans to average over")
	apparentSize := flag.Bool("apparent-size", false, "Use apparent size instead of disk usage")
	countHardLinks := flag.Bool("count-hard-links", false, "Disable hard-link dedup")
	flag.Parse()

	opts := scan.DefaultOptions().
		WithWorkers(*workers).
		WithApparentSize(*apparentSize).
		WithCountHardLinks(*countHardLinks)

	var totalElapsed time.Duration
	var lastStats scan.Stats

	for i := 0; i < *runs; i++ {
		scanner := scan.New(opts, nil)
		start := time.Now()
		roots, err := scanner.Scan([]string{*dir})
		elapsed := time.Since(start)
		scanner.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan error: %v\n", err)
			os.Exit(1)
		}
		lastStats = scanner.Stats()
		totalElapsed += elapsed

		var total int64
		for _, r := range roots {
			total += r.SizeOnDisk()
		}
		fmt.Printf("run %d: %s in %v (%d files, %d dirs)\n",
			i+1, format.Size(total, format.Binary), elapsed.Round(time.Millisecond), lastStats.Files, lastStats.Dirs)
	}

	avg := totalElapsed / time.Duration(*runs)
	fmt.Printf("\ndir=%s workers=%d runs=%d\n", *dir, effectiveWorkers(*workers), *runs)
	fmt.Printf("avg: %v\n", avg.Round(time.Millisecond))
	if avg.Seconds() > 0 {
		fmt.Printf("throughput: %.0f entries/sec\n", float64(lastStats.Files+lastStats.Dirs)/avg.Seconds())
	}
}

// effectiveWorkers mirrors scan.New's own worker-count probe, purely
// for the summary line; the scanner computes it independently.
func effectiveWorkers(n int) int {
	if n > 0 {
		return n
	}
	w := runtime.NumCPU()
	if runtime.GOOS == "darwin" && w > 3 {
		w = 3
	}
	if w < 1 {
		w = 1
	}
	return w
}
