package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"drac/pkg/compiler"
	"drac/pkg/config"
	"drac/pkg/report"
)

// errFault marks a run whose diagnostics have already been printed.
var errFault = errors.New("compilation failed")

// app carries the global flags and the state set up before each command.
type app struct {
	cfgFile        string
	verbose        bool
	strict         bool
	signedLiterals string
	noColor        bool

	cfg   *config.Config
	log   *slog.Logger
	stdin func() (string, error) // reads standard input on first use only
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "dracc",
		Short: "Drac compiler front end",
		Long: `dracc tokenizes, parses and checks Drac programs.

Commands:
  tokens  - list the tokens of a file
  parse   - print the syntax tree of a file
  check   - run the full front end over one or more files

Files named "-" are read from standard input.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./dracc.toml or $"+config.EnvConfig+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&a.strict, "strict", false, "reject calls to undeclared functions and check zero-argument calls")
	pf.StringVar(&a.signedLiterals, "signed-literals", "", "minus before digits: contextual or greedy")
	pf.BoolVar(&a.noColor, "no-color", false, "disable styled output")

	rootCmd.AddCommand(newTokensCmd(a), newParseCmd(a), newCheckCmd(a), newVersionCmd())
	return rootCmd
}

// Execute runs the command line. Faults in the compiled programs have been
// reported by the time it returns; other errors are printed here.
func Execute() error {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errFault) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "dracc: %v\n", err)
	}
	return err
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Discover(a.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("strict") {
		cfg.Checker.StrictCalls = a.strict
	}
	if flags.Changed("signed-literals") {
		cfg.Lexer.SignedLiterals = a.signedLiterals
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Output.Format = f.Value.String()
	}
	if a.noColor {
		cfg.Output.Color = false
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.stdin = sync.OnceValues(func() (string, error) {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	})

	level, _ := cfg.LogLevel()
	a.cfg = cfg
	a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString())
	a.log.Debug("configuration loaded",
		"component", "config",
		"path", path,
		"signed_literals", cfg.Lexer.SignedLiterals,
		"strict_calls", cfg.Checker.StrictCalls,
		"format", cfg.Output.Format,
	)
	return nil
}

type source struct {
	name string
	text string
}

// readSource reads path, or standard input for "-". Repeated "-" arguments
// share one read.
func (a *app) readSource(path string) (source, error) {
	if path == "-" {
		text, err := a.stdin()
		if err != nil {
			return source{}, fmt.Errorf("reading stdin: %w", err)
		}
		return source{name: "<stdin>", text: text}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return source{name: path, text: string(data)}, nil
}

// fault prints the diagnostic for err to stderr.
func (a *app) fault(cmd *cobra.Command, src source, err error) error {
	a.log.Debug("fault", "component", "report", "file", src.name, "error", err)
	if rerr := report.New(cmd.ErrOrStderr(), a.cfg.Output.Color).Diagnostic(src.name, src.text, err); rerr != nil {
		return rerr
	}
	return errFault
}

// writeAST prints root in the configured format.
func (a *app) writeAST(r *report.Reporter, root *compiler.Node) error {
	if a.cfg.Output.Format == "yaml" {
		return r.YAML(root)
	}
	return r.Tree(root)
}
