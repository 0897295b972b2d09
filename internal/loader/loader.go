// Package loader applies parsed dotenv entries to an environment. Mutation
// of the process environment is an explicit call with an explicit policy,
// never a side effect of parsing.
package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/xmazu/dotenvx/internal/parser"
)

// Policy decides what happens when a key is already set.
type Policy int

const (
	// KeepExisting leaves already-set variables alone.
	KeepExisting Policy = iota
	// Overwrite replaces already-set variables.
	Overwrite
)

func (p Policy) String() string {
	if p == Overwrite {
		return "overwrite"
	}
	return "keep-existing"
}

// Apply sets entries as process environment variables and returns how many
// were actually set. Under KeepExisting a variable that is already present
// stays untouched, which also means the first of several duplicate entries
// wins; under Overwrite the last one does.
//
// Setenv is process-wide; callers mutating the environment from several
// goroutines need their own synchronization.
func Apply(entries []parser.Entry, policy Policy) int {
	applied := 0
	for _, e := range entries {
		if policy == KeepExisting {
			if _, exists := os.LookupEnv(e.Key); exists {
				continue
			}
		}
		if err := os.Setenv(e.Key, e.Value); err != nil {
			continue
		}
		applied++
	}
	return applied
}

// Environ merges entries over base (in os.Environ form) without touching the
// process environment, for handing to a child process. Base order is kept;
// new keys append in entry order.
func Environ(entries []parser.Entry, base []string, policy Policy) []string {
	env := make([]string, len(base))
	copy(env, base)

	index := make(map[string]int, len(base))
	for i, kv := range base {
		if j := strings.IndexByte(kv, '='); j >= 0 {
			index[kv[:j]] = i
		}
	}

	for _, e := range entries {
		i, exists := index[e.Key]
		if exists && policy == KeepExisting {
			continue
		}
		if exists {
			env[i] = e.String()
			continue
		}
		index[e.Key] = len(env)
		env = append(env, e.String())
	}
	return env
}

// Overlay appends KEY=value overrides (e.g. from -e flags) to entries.
// Malformed overrides are a caller error, unlike file content.
func Overlay(entries []parser.Entry, overrides []string) ([]parser.Entry, error) {
	for _, s := range overrides {
		i := strings.IndexByte(s, '=')
		if i <= 0 {
			return nil, fmt.Errorf("invalid override %q: expected KEY=value", s)
		}
		entries = append(entries, parser.Entry{Key: s[:i], Value: s[i+1:]})
	}
	return entries, nil
}
