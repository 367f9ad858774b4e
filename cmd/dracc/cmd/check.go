package cmd

import (
	"errors"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"drac/pkg/compiler"
	"drac/pkg/report"
)

type checkResult struct {
	src     source
	root    *compiler.Node
	syms    *compiler.SymbolTable
	err     error
	elapsed time.Duration
}

func newCheckCmd(a *app) *cobra.Command {
	var (
		symbols bool
		ast     bool
	)

	checkCmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Run the full front end over one or more files",
		Long: `Tokenizes, parses and checks each file and prints OK for accepted
programs. Files are checked concurrently; results are printed in argument
order. The exit status is 1 if any file has a fault.

Examples:
  dracc check hello.drac
  dracc check --symbols --ast *.drac
  dracc check --strict lib.drac main.drac`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.cfg.Options()
			results := make([]checkResult, len(args))

			var g errgroup.Group
			g.SetLimit(runtime.GOMAXPROCS(0))
			for i, path := range args {
				g.Go(func() error {
					src, err := a.readSource(path)
					if err != nil {
						return err
					}
					start := time.Now()
					root, syms, err := compiler.Analyze(src.text, opts)
					results[i] = checkResult{src: src, root: root, syms: syms, err: err, elapsed: time.Since(start)}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := report.New(cmd.OutOrStdout(), a.cfg.Output.Color)
			failed := 0
			for _, res := range results {
				a.log.Info("checked",
					"component", "checker",
					"file", res.src.name,
					"ok", res.err == nil,
					"elapsed", res.elapsed,
				)
				if res.err != nil {
					failed++
					if err := a.fault(cmd, res.src, res.err); !errors.Is(err, errFault) {
						return err
					}
					continue
				}
				if ast {
					if err := a.writeAST(out, res.root); err != nil {
						return err
					}
				}
				if symbols {
					if err := out.Symbols(res.syms); err != nil {
						return err
					}
				}
				if err := out.OK(res.src.name); err != nil {
					return err
				}
			}
			if failed > 0 {
				return errFault
			}
			return nil
		},
	}
	checkCmd.Flags().StringP("format", "f", "tree", "AST output format with --ast (tree, yaml)")
	checkCmd.Flags().BoolVar(&symbols, "symbols", false, "dump the symbol tables of accepted programs")
	checkCmd.Flags().BoolVar(&ast, "ast", false, "print the syntax tree of accepted programs")
	return checkCmd
}
