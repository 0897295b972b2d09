package cmd

import (
	"fmt"

	"golang.org/x/text/encoding"

	"github.com/xmazu/dotenvx/internal/config"
	"github.com/xmazu/dotenvx/internal/envfile"
)

// loadDefaults reads the user config; a broken config file is an error, a
// missing one is not.
func loadDefaults() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", config.Path(), err)
	}
	return cfg, nil
}

// resolveFiles turns -f flags, config defaults and the override suffix into
// the ordered file list to read. Explicit -f flags are taken verbatim so a
// missing file can surface as an error later; default and suffix expansion
// only keeps files that exist.
func resolveFiles(flagFiles []string, suffix string, cfg *config.Config) []string {
	if suffix == "" {
		suffix = cfg.Suffix
	}

	if len(flagFiles) > 0 {
		if suffix == "" {
			return flagFiles
		}
		var files []string
		for _, f := range flagFiles {
			files = append(files, f)
			files = append(files, envfile.Resolve(f+"."+suffix, "")...)
		}
		return files
	}

	var files []string
	for _, f := range cfg.DefaultFiles() {
		files = append(files, envfile.Resolve(f, suffix)...)
	}
	return files
}

// resolveEncoding maps the --encoding flag (or the config default) to an
// Encoding for the parser.
func resolveEncoding(name string, cfg *config.Config) (encoding.Encoding, error) {
	if name == "" {
		name = cfg.Encoding
	}
	return envfile.EncodingByName(name)
}
