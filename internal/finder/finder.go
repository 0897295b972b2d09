// Package finder discovers dotenv files under a directory tree.
package finder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

var defaultExcludeDirs = []string{
	".git",
	"node_modules",
	".cache",
	".turbo",
	".next",
	"vendor",
}

// IsEnvFilename reports whether name is a dotenv file. Templates like
// .env.example are not loadable environments and are excluded.
func IsEnvFilename(name string) bool {
	if name == ".env" {
		return true
	}
	if name == ".env.example" || name == ".env.sample" {
		return false
	}
	return strings.HasPrefix(name, ".env.") && len(name) > len(".env.")
}

// List walks root and returns the relative paths of every dotenv file,
// sorted. Well-known dependency and VCS directories are always skipped;
// a .gitignore at root further prunes the walk.
func List(root string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	ignore, err := LoadIgnore(root)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(defaultExcludeDirs))
	for _, d := range defaultExcludeDirs {
		excluded[d] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if excluded[d.Name()] || ignore.Match(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsEnvFilename(d.Name()) && !ignore.Match(rel, false) {
			files = append(files, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
