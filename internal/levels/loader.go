// Package levels finds and loads level files.
// This package depends on level but level does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/shotfinder/internal/level"
	"github.com/vovakirdan/shotfinder/internal/levels/formats"
)

// Loader handles loading levels from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail
// to parse or validate are skipped and reported in skipped.
func (l *Loader) LoadAll() (lvls []level.Level, skipped []string, err error) {
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || extension(path) == "" {
			return nil
		}

		lvl, err := l.LoadFile(path)
		if err != nil {
			skipped = append(skipped, path)
			return nil
		}
		lvls = append(lvls, lvl)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(lvls, func(i, j int) bool {
		return lvls[i].ID < lvls[j].ID
	})
	return lvls, skipped, nil
}

// LoadFile loads and validates a single level file. ID, course and name
// default to the file's basename, "course_level.ext".
func (l *Loader) LoadFile(path string) (level.Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return level.Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := extension(path)
	lvl, err := parseByExtension(data, ext)
	if err != nil {
		return level.Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	file := filepath.Base(path)
	base := file[:len(file)-len(ext)]
	course, name := SplitID(base)
	if lvl.ID == "" {
		lvl.ID = base
	}
	if lvl.Course == "" {
		lvl.Course = course
	}
	if lvl.Name == "" {
		lvl.Name = name
	}
	lvl.FilePath = path

	if err := lvl.Validate(); err != nil {
		return level.Level{}, fmt.Errorf("level %s: %w", lvl.ID, err)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (level.Level, error) {
	lvls, _, err := l.LoadAll()
	if err != nil {
		return level.Level{}, err
	}
	for _, lvl := range lvls {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return level.Level{}, fmt.Errorf("%w: %s", level.ErrNotFound, id)
}

// Resolve loads ref as a file path when it names one, and as a level ID
// under Root otherwise.
func (l *Loader) Resolve(ref string) (level.Level, error) {
	if _, err := os.Stat(ref); err == nil {
		return l.LoadFile(ref)
	} else if !errors.Is(err, os.ErrNotExist) {
		return level.Level{}, fmt.Errorf("stat %s: %w", ref, err)
	}
	return l.LoadByID(ref)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	lvls, _, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(lvls))
	for i, lvl := range lvls {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// SplitID splits "course_level" into its parts. An ID without an
// underscore has no course.
func SplitID(id string) (course, name string) {
	if c, n, ok := strings.Cut(id, "_"); ok {
		return c, n
	}
	return "", id
}

// extension returns the supported extension of path, or "".
func extension(path string) string {
	lower := strings.ToLower(filepath.Base(path))
	for _, ext := range formats.FormatExtensions() {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return ""
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (level.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".json", ".plist.json":
		return formats.ParseGame(data)
	default:
		return level.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
