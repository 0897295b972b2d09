package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xmazu/dotenvx/internal/envfile"
	"github.com/xmazu/dotenvx/internal/loader"
	"github.com/xmazu/dotenvx/internal/tui"
	"github.com/xmazu/dotenvx/internal/watch"
)

var runCmd = &cobra.Command{
	Use:   "run -- [command]",
	Short: "Run a command with the env files applied",
	Long: `Read the env files, merge them over the inherited environment and run
the command. Inherited variables win by default; pass --overwrite to let
file entries replace them. Use -f multiple times to layer files in order,
and --env KEY=value for one-off overrides.
With --watch the command restarts whenever a loaded env file changes.`,
	RunE: runRun,
}

var runFiles []string
var runSuffix string
var runEncodingName string
var runEnv []string
var runOverwrite bool
var runStrict bool
var runWatch bool
var runQuiet bool

func init() {
	runCmd.Flags().StringSliceVarP(&runFiles, "file", "f", nil, "Path(s) to env file (can be repeated)")
	runCmd.Flags().StringVar(&runSuffix, "suffix", "", "Override suffix, e.g. 'local' also reads .env.local")
	runCmd.Flags().StringVar(&runEncodingName, "encoding", "", "Charset of the files (IANA name, default utf-8)")
	runCmd.Flags().StringSliceVarP(&runEnv, "env", "e", nil, "Environment override KEY=value (can be repeated)")
	runCmd.Flags().BoolVar(&runOverwrite, "overwrite", false, "Let file entries replace inherited variables")
	runCmd.Flags().BoolVar(&runStrict, "strict", false, "Fail if any env file is missing or unreadable")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "Restart the command when an env file changes")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command specified. Use: dotenvx run -- your-command")
	}

	cfg, err := loadDefaults()
	if err != nil {
		return err
	}
	enc, err := resolveEncoding(runEncodingName, cfg)
	if err != nil {
		return err
	}
	policy := loader.KeepExisting
	if runOverwrite || cfg.Overwrite {
		policy = loader.Overwrite
	}

	files := resolveFiles(runFiles, runSuffix, cfg)

	buildEnv := func() ([]string, error) {
		entries, err := envfile.ReadAll(files, enc, runStrict)
		if err != nil {
			return nil, err
		}
		entries, err = loader.Overlay(entries, runEnv)
		if err != nil {
			return nil, err
		}
		return loader.Environ(entries, os.Environ(), policy), nil
	}

	command, cmdArgs := args[0], args[1:]

	if !runWatch {
		env, err := buildEnv()
		if err != nil {
			return err
		}
		return runOnce(env, command, cmdArgs)
	}
	return runWithWatch(buildEnv, files, command, cmdArgs)
}

func runOnce(env []string, command string, args []string) error {
	child := exec.Command(command, args...)
	child.Env = env
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr
	// Child stays in our process group so Ctrl+C reaches it too.

	err := child.Run()
	if exitErr, ok := err.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		return fmt.Errorf("run %s: %w", command, err)
	}
	return nil
}

func runWithWatch(buildEnv func() ([]string, error), files []string, command string, args []string) error {
	w, err := watch.New()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	for _, f := range files {
		if err := w.Add(f); err != nil {
			return fmt.Errorf("watch %s: %w", f, err)
		}
	}
	changed := w.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	for {
		env, err := buildEnv()
		if err != nil {
			return err
		}

		child := exec.Command(command, args...)
		child.Env = env
		child.Stdin = os.Stdin
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr
		child.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
		if err := child.Start(); err != nil {
			return fmt.Errorf("run %s: %w", command, err)
		}

		exited := make(chan error, 1)
		go func() { exited <- child.Wait() }()

		select {
		case path := <-changed:
			if !runQuiet {
				fmt.Fprintf(os.Stderr, "%s %s changed, restarting\n", tui.Label("dotenvx:"), path)
			}
			stopChild(child, exited)
		case sig := <-interrupt:
			stopChild(child, exited)
			signal.Stop(interrupt)
			if s, ok := sig.(syscall.Signal); ok {
				syscall.Kill(os.Getpid(), s)
			}
			return nil
		case err := <-exited:
			if exitErr, ok := err.(*exec.ExitError); ok {
				os.Exit(exitErr.ExitCode())
			}
			if err != nil {
				return fmt.Errorf("run %s: %w", command, err)
			}
			return nil
		}
	}
}

// stopChild terminates the child's process group, escalating to SIGKILL if
// it does not exit promptly.
func stopChild(child *exec.Cmd, exited <-chan error) {
	if child.Process == nil {
		return
	}
	pgid, err := syscall.Getpgid(child.Process.Pid)
	if err != nil {
		child.Process.Kill()
		<-exited
		return
	}
	syscall.Kill(-pgid, syscall.SIGTERM)
	select {
	case <-exited:
	case <-time.After(5 * time.Second):
		syscall.Kill(-pgid, syscall.SIGKILL)
		<-exited
	}
}
