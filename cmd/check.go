package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xmazu/dotenvx/internal/envfile"
	"github.com/xmazu/dotenvx/internal/parser"
	"github.com/xmazu/dotenvx/internal/tui"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Parse env files and report what was silently discarded",
	Long: `The parser drops a malformed trailing fragment (a line without =, an
empty key, bytes that do not decode) without any error. check makes that
visible: it parses each file and reports the entry count plus any bytes
the parser left behind. Exits nonzero when content was discarded.`,
	RunE: runCheck,
}

var checkFiles []string
var checkSuffix string
var checkEncodingName string

func init() {
	checkCmd.Flags().StringSliceVarP(&checkFiles, "file", "f", nil, "Path(s) to env file (can be repeated)")
	checkCmd.Flags().StringVar(&checkSuffix, "suffix", "", "Override suffix, e.g. 'local' also reads .env.local")
	checkCmd.Flags().StringVar(&checkEncodingName, "encoding", "", "Charset of the files (IANA name, default utf-8)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadDefaults()
	if err != nil {
		return err
	}
	enc, err := resolveEncoding(checkEncodingName, cfg)
	if err != nil {
		return err
	}

	files := resolveFiles(checkFiles, checkSuffix, cfg)
	if len(files) == 0 {
		return fmt.Errorf("no env files found")
	}

	out := cmd.OutOrStdout()
	discarded := false

	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return &envfile.UnreadableError{Path: path, Encoding: envfile.EncodingName(enc), Err: err}
		}

		src := parser.NewBytesSource(data, enc)
		entries := parser.New(src).Parse()
		rest := src.Remaining()

		switch {
		case rest == 0:
			fmt.Fprintf(out, "%s %d entries\n", tui.Label(path+":"), len(entries))
		case tailIsComment(data, rest):
			// An unterminated trailing comment is dropped but harmless.
			fmt.Fprintf(out, "%s %d entries %s\n",
				tui.Label(path+":"), len(entries), tui.Muted("(trailing comment has no newline)"))
		default:
			discarded = true
			fmt.Fprintf(out, "%s %d entries, %s\n",
				tui.Label(path+":"), len(entries),
				tui.Warning(fmt.Sprintf("%d trailing bytes discarded", rest)))
		}
	}

	if discarded {
		return fmt.Errorf("some content could not be parsed")
	}
	return nil
}

func tailIsComment(data []byte, rest int) bool {
	tail := data[len(data)-rest:]
	for _, c := range tail {
		switch c {
		case ' ':
			continue
		case '#':
			return true
		default:
			return false
		}
	}
	return false
}
