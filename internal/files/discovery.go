// Package files provides discovery of simulation export files on disk:
// finding exports by extension, matching glob patterns, and picking the most
// recent file. All lookups are relative to a base path unless an absolute
// directory is given.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"emcli/internal/filetypes"
)

// FileInfo describes one discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides export-file discovery rooted at a base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery instance rooted at basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExportFiles finds all recognized simulation export files in dir,
// sorted by modification time, oldest first.
func (d *Discovery) FindExportFiles(dir string) ([]FileInfo, error) {
	recognized := make(map[string]bool)
	for _, ext := range filetypes.KnownExtensions() {
		recognized["."+ext] = true
	}

	files, err := d.findByFilter(dir, func(name string) bool {
		return recognized[strings.ToLower(filepath.Ext(name))]
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}

// FindByExtension finds files in dir with the given extension (without dot).
func (d *Discovery) FindByExtension(dir, ext string) ([]FileInfo, error) {
	suffix := "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	return d.findByFilter(dir, func(name string) bool {
		return strings.HasSuffix(strings.ToLower(name), suffix)
	})
}

// FindFilesByPattern finds files in dir matching a glob pattern.
func (d *Discovery) FindFilesByPattern(dir, pattern string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)
	matches, err := filepath.Glob(filepath.Join(fullPath, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}

	var files []FileInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, FileInfo{
			Path:    match,
			Name:    filepath.Base(match),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

// GetLatestFile returns the most recently modified file from a list.
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}
	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}
	return latest, true
}

func (d *Discovery) findByFilter(dir string, keep func(name string) bool) ([]FileInfo, error) {
	fullPath := d.resolve(dir)
	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !keep(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return files, nil
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
