// Package envfile reads dotenv files from disk and hands the bytes to the
// parser. File-level failures are its own error kind; the parser's silent
// truncation of malformed trailing input is not an error and never surfaces
// here.
package envfile

import (
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding"

	"github.com/xmazu/dotenvx/internal/parser"
)

// UnreadableError reports a dotenv file that could not be read at all:
// missing, unreadable, or a directory. It is distinct from parse truncation,
// which silently drops the malformed tail.
type UnreadableError struct {
	Path     string
	Encoding string
	Err      error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("env file %s (%s): %v", e.Path, e.Encoding, e.Err)
}

func (e *UnreadableError) Unwrap() error {
	return e.Err
}

// Read loads path into memory and parses it. A nil encoding means strict
// UTF-8.
func Read(path string, enc encoding.Encoding) ([]parser.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &UnreadableError{Path: path, Encoding: EncodingName(enc), Err: err}
	}
	return parser.ParseWithEncoding(data, enc), nil
}

// Resolve expands path into the override sequence for suffix: the base file
// followed by path.suffix, keeping only files that exist. With an empty
// suffix it reports just the base file, if present.
func Resolve(path, suffix string) []string {
	candidates := []string{path}
	if suffix != "" {
		candidates = append(candidates, path+"."+suffix)
	}

	var found []string
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			found = append(found, p)
		}
	}
	return found
}

// ReadAll reads every path and concatenates the entries in argument order,
// so later files simply append; the overwrite policy is the loader's job.
// Files are read concurrently. When strict is false, unreadable files are
// skipped instead of failing the whole read.
func ReadAll(paths []string, enc encoding.Encoding, strict bool) ([]parser.Entry, error) {
	results := make([][]parser.Entry, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			entries, err := Read(path, enc)
			if err != nil {
				if strict {
					return err
				}
				return nil
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []parser.Entry
	for _, entries := range results {
		all = append(all, entries...)
	}
	return all, nil
}
