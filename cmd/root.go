package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dotenvx",
	Short:         "Parse .env files and load them into process environments",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `dotenvx reads KEY=VALUE files, understands comments, blank lines and
single/double quoting, and applies the result to a process environment.

Values in double quotes have \n expanded to a real newline; single quotes
keep everything literal. Only the first = on a line splits key from value.
A malformed trailing fragment is dropped silently; use 'dotenvx check' to
see whether anything was discarded.

EXAMPLES:

  dotenvx parse -f .env
  dotenvx run -f .env --suffix local -- node server.js
  dotenvx get DATABASE_URL
  dotenvx check -f .env --encoding latin1`,
}

func init() {
	rootCmd.SetVersionTemplate("dotenvx version {{.Version}}\n")
}

// SetVersion sets the version string shown by --version (e.g. from ldflags).
func SetVersion(v string) { rootCmd.Version = v }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
