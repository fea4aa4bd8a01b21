// Package library scans the on-disk movie layout: a root directory holding
// one folder per movie, with reserved filenames for the poster, numbered
// screenshots, and an optional metadata text file.
package library

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// PosterName is the reserved poster filename inside a movie folder.
	PosterName = "poster.jpg"
	// ScreenshotPrefix together with ScreenshotExt matches screenshot files.
	ScreenshotPrefix = "screenshot"
	// ScreenshotExt is the extension screenshots are stored under.
	ScreenshotExt = ".jpg"
	// MetadataSuffix matches per-movie metadata files, e.g. "22_metadata.txt".
	MetadataSuffix = "_metadata.txt"
	// LegacyMetadataName is the obsolete metadata filename removed during
	// catalog builds.
	LegacyMetadataName = "metadata.txt"

	idKey = "id:"
)

var digitRun = regexp.MustCompile(`\d+`)

// Folder is one scanned movie directory. TMDBID is empty when no external ID
// could be resolved; such folders are reported but never fetched.
type Folder struct {
	Name            string
	Path            string
	TMDBID          string
	MetadataFile    string
	HasPoster       bool
	ScreenshotCount int
}

// HasMetadata reports whether the folder contains a metadata file.
func (f Folder) HasMetadata() bool { return f.MetadataFile != "" }

// HasScreenshots reports whether the folder contains at least one screenshot.
func (f Folder) HasScreenshots() bool { return f.ScreenshotCount > 0 }

// ScreenshotName returns the reserved filename for the n-th screenshot,
// counted from 1.
func ScreenshotName(n int) string {
	return fmt.Sprintf("%s_%d%s", ScreenshotPrefix, n, ScreenshotExt)
}

// Scan enumerates the immediate subdirectories of root in lexicographic
// order, one Folder per movie. Non-directory entries under root are skipped.
// A missing or unreadable root is an error; individual unreadable movie
// folders are not.
func Scan(root string) ([]Folder, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	var folders []Folder
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folders = append(folders, ScanFolder(root, entry.Name()))
	}
	return folders, nil
}

// ScanFolder scans a single movie directory under root. It never fails: an
// unreadable directory simply reports no assets.
func ScanFolder(root, name string) Folder {
	f := Folder{Name: name, Path: filepath.Join(root, name)}

	entries, err := os.ReadDir(f.Path)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			n := entry.Name()
			switch {
			case n == PosterName:
				f.HasPoster = true
			case strings.HasPrefix(n, ScreenshotPrefix) && strings.HasSuffix(n, ScreenshotExt):
				f.ScreenshotCount++
			case strings.HasSuffix(n, MetadataSuffix) && f.MetadataFile == "":
				// os.ReadDir sorts entries, so the first match is the
				// lexicographically first metadata file.
				f.MetadataFile = n
			}
		}
	}

	f.TMDBID = resolveID(f)
	return f
}

// resolveID derives the TMDB ID for a folder. A metadata file wins when
// present: first an "id:" line in its content, then the longest digit run in
// its filename. Without a metadata file the folder name itself is taken as
// the ID, verbatim.
func resolveID(f Folder) string {
	if f.MetadataFile == "" {
		return f.Name
	}
	if id := idFromContent(filepath.Join(f.Path, f.MetadataFile)); id != "" {
		return id
	}
	return longestDigitRun(f.MetadataFile)
}

// idFromContent returns the value of the first "id:" line (case-insensitive,
// surrounding whitespace trimmed) with a non-empty remainder, or "".
func idFromContent(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < len(idKey) || !strings.EqualFold(line[:len(idKey)], idKey) {
			continue
		}
		if value := strings.TrimSpace(line[len(idKey):]); value != "" {
			return value
		}
	}
	return ""
}

func longestDigitRun(name string) string {
	longest := ""
	for _, run := range digitRun.FindAllString(name, -1) {
		if len(run) > len(longest) {
			longest = run
		}
	}
	return longest
}

// RemoveLegacyMetadata deletes the obsolete metadata.txt from a movie folder
// if present. It reports whether a file was removed.
func RemoveLegacyMetadata(folderPath string) (bool, error) {
	err := os.Remove(filepath.Join(folderPath, LegacyMetadataName))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
