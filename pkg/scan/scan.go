// Package scan discovers audio files under the configured music directory.
// The result is handed to the music index as an opaque track list.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"github.com/mitchellh/go-homedir"

	"tableflip.dev/sessio/pkg/music"
)

// maxDepth bounds the directory walk below the music root.
const maxDepth = 3

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".aac":  true,
}

// Library walks dir (with ~ expansion) and returns every readable audio file
// as a track. Unreadable files are skipped so a permission problem on one
// entry never discards the rest of the scan. A missing directory is created
// and yields an empty library.
func Library(dir string) ([]music.Track, error) {
	root, err := homedir.Expand(dir)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(root); os.IsNotExist(err) {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var tracks []music.Track
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Partial result: skip what we cannot read.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if depthBelow(root, path) > maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !audioExtensions[ext] {
			return nil
		}
		tracks = append(tracks, music.Track{
			Path:  path,
			Title: titleFor(path),
		})
		return nil
	})
	if err != nil {
		return tracks, err
	}

	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Path < tracks[j].Path })
	return tracks, nil
}

// titleFor prefers embedded metadata and falls back to the file stem.
func titleFor(path string) string {
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if meta, err := tag.ReadFrom(f); err == nil {
			if t := strings.TrimSpace(meta.Title()); t != "" {
				return t
			}
		}
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return len(strings.Split(rel, string(os.PathSeparator)))
}
