package system

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultWorkers returns the number of physical cores, falling back to the
// logical CPU count when the host does not report it.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ResolveWorkers maps a configured worker count to a usable value
func ResolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}
	return DefaultWorkers()
}

var imageExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff", ".webp"}

// IsImagePath reports whether the file name has a supported raster extension
func IsImagePath(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FindLatestImage returns the newest image file in dir, e.g. the last
// screenshot dropped there by a capture tool.
func FindLatestImage(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !IsImagePath(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(dir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("no images found in %s", dir)
	}

	return latestFile, nil
}

// DefaultOutputPath derives "<name>_redacted_<timestamp>.png" next to the input
func DefaultOutputPath(input string, now time.Time) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, " ", "_")
	return filepath.Join(filepath.Dir(input), fmt.Sprintf("%s_redacted_%s.png", name, now.Format("20060102_150405")))
}
