package quickview

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".webp": true, ".svg": true, ".ico": true, ".tiff": true, ".heic": true,
}

var archiveExts = map[string]bool{
	".zip": true, ".tar": true, ".gz": true, ".tgz": true, ".bz2": true,
	".xz": true, ".7z": true, ".rar": true, ".zst": true, ".iso": true,
}

const probeSize = 8 * 1024

// classifyExtension reports whether path's extension identifies it as
// an image or archive, bypassing the content probe.
func classifyExtension(path string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if imageExts[ext] {
		return KindImage, true
	}
	if archiveExts[ext] {
		return KindArchive, true
	}
	return 0, false
}

// probeBinary reads up to probeSize bytes and classifies the content as
// binary if it contains a NUL byte or a non-whitespace control byte.
func probeBinary(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, probeSize)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return false, err
	}
	buf = buf[:n]

	for _, b := range buf {
		if b == 0x00 {
			return true, nil
		}
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return true, nil
		}
	}
	return false, nil
}
