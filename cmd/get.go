package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/xmazu/dotenvx/internal/envfile"
	"github.com/xmazu/dotenvx/internal/tui"
)

var getCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Get one or all values from the env files",
	Long: `Get a single value (for scripts: $(dotenvx get KEY)) or, without KEY,
all entries as JSON. Keys that look secret (TOKEN, SECRET, PASSWORD, ...)
are masked on a terminal unless you confirm or pass --reveal; piped output
is never masked so scripts keep working.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGet,
}

var getFiles []string
var getSuffix string
var getEncodingName string
var getReveal bool
var getMasked bool

func init() {
	getCmd.Flags().StringSliceVarP(&getFiles, "file", "f", nil, "Path(s) to env file (can be repeated)")
	getCmd.Flags().StringVar(&getSuffix, "suffix", "", "Override suffix, e.g. 'local' also reads .env.local")
	getCmd.Flags().StringVar(&getEncodingName, "encoding", "", "Charset of the files (IANA name, default utf-8)")
	getCmd.Flags().BoolVar(&getReveal, "reveal", false, "Print secret-looking values without asking")
	getCmd.Flags().BoolVar(&getMasked, "masked", false, "Always print the value masked")
	rootCmd.AddCommand(getCmd)
}

var secretKeyHints = []string{"SECRET", "TOKEN", "PASSWORD", "PRIVATE", "API_KEY", "CREDENTIAL"}

func looksSecret(key string) bool {
	upper := strings.ToUpper(key)
	for _, hint := range secretKeyHints {
		if strings.Contains(upper, hint) {
			return true
		}
	}
	return false
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadDefaults()
	if err != nil {
		return err
	}
	enc, err := resolveEncoding(getEncodingName, cfg)
	if err != nil {
		return err
	}

	files := resolveFiles(getFiles, getSuffix, cfg)
	if len(files) == 0 {
		return fmt.Errorf("no env files found")
	}
	entries, err := envfile.ReadAll(files, enc, true)
	if err != nil {
		return err
	}
	values := entriesToMap(entries)

	out := cmd.OutOrStdout()

	if len(args) == 0 {
		jenc := json.NewEncoder(out)
		jenc.SetEscapeHTML(false)
		return jenc.Encode(values)
	}

	key := args[0]
	value, ok := values[key]
	if !ok {
		return fmt.Errorf("key %q not found", key)
	}

	if getMasked {
		fmt.Fprintln(out, tui.Mask(value))
		return nil
	}

	if !getReveal && looksSecret(key) && isatty.IsTerminal(os.Stdout.Fd()) {
		reveal, err := tui.Confirm(fmt.Sprintf("%s looks like a secret. Print it in plaintext?", key))
		if err != nil {
			return err
		}
		if !reveal {
			fmt.Fprintln(out, tui.Mask(value))
			return nil
		}
	}

	fmt.Fprint(out, value)
	return nil
}
