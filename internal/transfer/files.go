package transfer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/talgya/delvemap/internal/delve"
)

// ExportFilename derives a deterministic file name from an entity name and
// the current date, e.g. "the-crimson-market-2026-09-01.json".
func ExportFilename(name string, now func() time.Time) string {
	if now == nil {
		now = time.Now
	}
	slug := slugify(name)
	if slug == "" {
		slug = "export"
	}
	return fmt.Sprintf("%s-%s.json", slug, now().Format("2006-01-02"))
}

func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// WriteMapFile exports a map into dir and returns the written path.
func WriteMapFile(dir string, m delve.DelveMap, now func() time.Time) (string, error) {
	raw, err := ExportMap(m)
	if err != nil {
		return "", err
	}
	return writeDoc(dir, ExportFilename(m.Name, now), raw)
}

// WriteLibraryFile exports a library into dir and returns the written path.
func WriteLibraryFile(dir string, lib delve.Library, now func() time.Time) (string, error) {
	raw, err := ExportLibrary(lib)
	if err != nil {
		return "", err
	}
	return writeDoc(dir, ExportFilename("library", now), raw)
}

func writeDoc(dir, name string, raw []byte) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	slog.Info("exported", "path", path, "size", humanize.Bytes(uint64(len(raw))))
	return path, nil
}

// ReadMapFile reads and parses a user-selected map file.
func ReadMapFile(path string) (delve.DelveMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return delve.DelveMap{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseMap(raw)
}

// ReadMapCollectionFile reads a map-collection file, returning the valid
// maps and logging a warning when invalid elements were dropped.
func ReadMapCollectionFile(path string) ([]delve.DelveMap, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	maps, dropped, err := ParseMapCollection(raw)
	if err != nil {
		return nil, err
	}
	if dropped > 0 {
		slog.Warn("skipped invalid maps in collection", "path", path, "skipped", dropped, "loaded", len(maps))
	}
	return maps, nil
}

// ReadLibraryFile reads and parses a user-selected library file.
func ReadLibraryFile(path string) (delve.Library, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return delve.Library{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseLibrary(raw)
}
