package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists the regular files directly inside dir whose base name
// matches the glob pattern, sorted lexicographically so repeated calls on
// an unchanged directory return the same order. No match is an empty
// result, not an error. Directories are never descended into. Hidden
// names (leading ".", such as AppleDouble "._MVI_0001.MOV" files) only
// match a pattern that itself starts with ".".
func Discover(dir, pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	showHidden := strings.HasPrefix(pattern, ".")

	var files []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") && !showHidden {
			continue
		}
		if ok, _ := filepath.Match(pattern, e.Name()); !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !isRegular(e, path) {
			continue
		}
		files = append(files, path)
	}
	sort.Strings(files)
	return files, nil
}

// isRegular reports whether e is a regular file, following a symlink to
// its target.
func isRegular(e os.DirEntry, path string) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
