package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xmazu/dotenvx/internal/finder"
)

var lsCmd = &cobra.Command{
	Use:   "ls [directory]",
	Short: "List env files in a directory tree",
	Long: `Discover .env and .env.* files under the given directory (default: the
current one). Dependency directories like node_modules are skipped, and a
.gitignore at the root prunes the search further.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	files, err := finder.List(root)
	if err != nil {
		return fmt.Errorf("list env files: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range files {
		fmt.Fprintln(out, f)
	}
	return nil
}
