package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/funvibe/minml/internal/config"
	"github.com/funvibe/minml/internal/diagnostics"
)

// Version is set at build time with -ldflags "-X github.com/funvibe/minml/pkg/cli.Version=...".
var Version = "dev"

// Exit codes
const (
	ExitOK       = 0
	ExitError    = 1 // a diagnostic was reported
	ExitUsage    = 2 // bad flags or arguments
	ExitInternal = 3 // recovered panic
)

// env is shared by every subcommand of one invocation.
type env struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	flagConfig  string
	flagColor   string
	flagVerbose bool

	cfg    *config.Config
	color  diagnostics.ColorMode
	logger *zap.Logger
	runID  string
}

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// reported marks a failure whose diagnostics were already printed.
func reported() error { return &exitError{code: ExitError} }

// failure reports err with ExitError.
func failure(err error) error { return &exitError{code: ExitError, err: err} }

func usageErr(format string, args ...interface{}) error {
	return &exitError{code: ExitUsage, err: fmt.Errorf(format, args...)}
}

// NewRootCmd builds the minml command tree writing to the given streams.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	e := &env{stdin: stdin, stdout: stdout, stderr: stderr, logger: zap.NewNop()}

	root := &cobra.Command{
		Use:           "minml",
		Short:         "Run and inspect minml programs",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup(cmd, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = e.logger.Sync()
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &exitError{code: ExitUsage, err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&e.flagConfig, "config", "", "Path to a minml.yaml file (default: minml.yaml next to the source file)")
	pf.StringVar(&e.flagColor, "color", "", "Colorize diagnostics: auto, always or never")
	pf.BoolVarP(&e.flagVerbose, "verbose", "v", false, "Enable debug logging, including a trace of every call")

	root.AddCommand(
		e.getRunCmd(),
		e.getCheckCmd(),
		e.getFmtCmd(),
		e.getParseCmd(),
		e.getTokensCmd(),
		e.getStoreCmd(),
	)
	return root
}

// setup loads configuration and builds the logger. Flags override the
// configuration file.
func (e *env) setup(cmd *cobra.Command, args []string) error {
	var err error
	switch {
	case e.flagConfig != "":
		e.cfg, err = config.Load(e.flagConfig)
	case len(args) > 0 && args[0] != "-":
		e.cfg, err = config.Discover(filepath.Dir(args[0]))
	default:
		e.cfg = config.Default()
	}
	if err != nil {
		return usageErr("%w", err)
	}

	colorSetting := e.cfg.Diagnostics.Color
	if e.flagColor != "" {
		colorSetting = e.flagColor
	}
	if e.color, err = diagnostics.ParseColorMode(colorSetting); err != nil {
		return usageErr("%w", err)
	}

	level := e.cfg.Log.Level
	if e.flagVerbose {
		level = config.LogLevelDebug
	}
	e.runID = uuid.New().String()
	if e.logger, err = newLogger(level, e.stderr); err != nil {
		return usageErr("%w", err)
	}
	e.logger = e.logger.With(zap.String("run_id", e.runID), zap.String("cmd", cmd.Name()))
	e.logger.Debug("configuration loaded", zap.String("config", e.cfg.Path), zap.String("log_level", level))
	return nil
}

// Execute runs the command line args and returns the process exit code.
// Panics are reported as internal errors.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			// Print stack trace for debugging
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(stderr, "Internal error: %v\n", r)
			fmt.Fprintln(stderr, "This is a bug. Please report it.")
			if os.Getenv("MINML_TRACE") == "1" {
				fmt.Fprintf(stderr, "%s", debug.Stack())
			}
			code = ExitInternal
		}
	}()

	root := NewRootCmd(stdin, stdout, stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}

	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", ee.err)
		}
		return ee.code
	}
	// cobra reports unknown commands and bad arguments as plain errors
	fmt.Fprintf(stderr, "Error: %s\n", err)
	return ExitUsage
}

// Run is the entry point of the minml binary.
func Run() {
	os.Exit(Execute(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
