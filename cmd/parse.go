package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xmazu/dotenvx/internal/envfile"
	"github.com/xmazu/dotenvx/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse env files and print the entries",
	Long: `Parse the given env files and print every entry in file order.
Duplicate keys are printed as often as they appear; merging is the run
command's job. Use --format json for machine-readable output, or
--format shell for a single line of KEY=value words.`,
	RunE: runParse,
}

var parseFiles []string
var parseSuffix string
var parseEncodingName string
var parseFormat string

func init() {
	parseCmd.Flags().StringSliceVarP(&parseFiles, "file", "f", nil, "Path(s) to env file (can be repeated)")
	parseCmd.Flags().StringVar(&parseSuffix, "suffix", "", "Override suffix, e.g. 'local' also reads .env.local")
	parseCmd.Flags().StringVar(&parseEncodingName, "encoding", "", "Charset of the files (IANA name, default utf-8)")
	parseCmd.Flags().StringVar(&parseFormat, "format", "env", "Output format: env, shell, or json")
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadDefaults()
	if err != nil {
		return err
	}
	enc, err := resolveEncoding(parseEncodingName, cfg)
	if err != nil {
		return err
	}

	files := resolveFiles(parseFiles, parseSuffix, cfg)
	if len(files) == 0 {
		return fmt.Errorf("no env files found")
	}

	entries, err := envfile.ReadAll(files, enc, true)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch parseFormat {
	case "env":
		for _, e := range entries {
			fmt.Fprintln(out, e)
		}
		return nil
	case "shell":
		words := make([]string, len(entries))
		for i, e := range entries {
			words[i] = shellEscape(e.Key) + "=" + shellEscape(e.Value)
		}
		fmt.Fprintln(out, strings.Join(words, " "))
		return nil
	case "json":
		list := make([]map[string]string, len(entries))
		for i, e := range entries {
			list[i] = map[string]string{"key": e.Key, "value": e.Value}
		}
		jenc := json.NewEncoder(out)
		jenc.SetEscapeHTML(false)
		return jenc.Encode(list)
	default:
		return fmt.Errorf("invalid --format %q: must be env, shell, or json", parseFormat)
	}
}

func shellEscape(s string) string {
	if strings.ContainsAny(s, " \t\n\"'$") {
		return `"` + strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`) + `"`
	}
	return s
}

// entriesToMap collapses entries to a map, later keys winning; shared by the
// commands that present one value per key.
func entriesToMap(entries []parser.Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Key] = e.Value
	}
	return m
}
