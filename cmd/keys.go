package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/xmazu/dotenvx/internal/envfile"
	"github.com/xmazu/dotenvx/internal/tui"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the keys defined in the env files",
	Long: `List every distinct key across the resolved env files, sorted. Keys
defined more than once are marked, since which value wins depends on the
overwrite policy at load time.`,
	RunE: runKeys,
}

var keysFiles []string
var keysSuffix string
var keysEncodingName string

func init() {
	keysCmd.Flags().StringSliceVarP(&keysFiles, "file", "f", nil, "Path(s) to env file (can be repeated)")
	keysCmd.Flags().StringVar(&keysSuffix, "suffix", "", "Override suffix, e.g. 'local' also reads .env.local")
	keysCmd.Flags().StringVar(&keysEncodingName, "encoding", "", "Charset of the files (IANA name, default utf-8)")
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	cfg, err := loadDefaults()
	if err != nil {
		return err
	}
	enc, err := resolveEncoding(keysEncodingName, cfg)
	if err != nil {
		return err
	}

	files := resolveFiles(keysFiles, keysSuffix, cfg)
	if len(files) == 0 {
		return fmt.Errorf("no env files found")
	}
	entries, err := envfile.ReadAll(files, enc, true)
	if err != nil {
		return err
	}

	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.Key]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	for _, k := range keys {
		if counts[k] > 1 {
			fmt.Fprintf(out, "%s %s\n", tui.Key(k), tui.Muted(fmt.Sprintf("(defined %d times)", counts[k])))
		} else {
			fmt.Fprintln(out, tui.Key(k))
		}
	}
	return nil
}
