package finder

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type ignoreRule struct {
	pattern string // doublestar pattern, forward slashes
	dirOnly bool   // trailing slash: directories only
	anchor  bool   // leading slash: relative to the walk root
}

// Ignore matches relative paths against .gitignore-style rules. The zero
// value (and nil) matches nothing.
type Ignore struct {
	rules []ignoreRule
}

// LoadIgnore reads root/.gitignore if it exists. A missing file is not an
// error; it just means an empty matcher.
func LoadIgnore(root string) (*Ignore, error) {
	path := filepath.Join(root, ".gitignore")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rules []ignoreRule
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			// Negation rules are rare in the files we care about; skipping
			// them only makes the matcher more conservative.
			continue
		}

		dirOnly := strings.HasSuffix(line, "/")
		line = strings.TrimSuffix(line, "/")
		anchor := strings.HasPrefix(line, "/")
		line = strings.TrimPrefix(line, "/")
		if line == "" {
			continue
		}

		rules = append(rules, ignoreRule{
			pattern: filepath.ToSlash(line),
			dirOnly: dirOnly,
			anchor:  anchor,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return &Ignore{rules: rules}, nil
}

// Match reports whether the slash-separated relative path is ignored.
func (m *Ignore) Match(rel string, isDir bool) bool {
	if m == nil || len(m.rules) == 0 {
		return false
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "/")

	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.anchor {
			if ok, _ := doublestar.Match(r.pattern, rel); ok {
				return true
			}
			continue
		}
		// Unanchored rules match at any depth, like gitignore.
		if ok, _ := doublestar.Match(r.pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match("**/"+r.pattern, rel); ok {
			return true
		}
	}
	return false
}
