package cmd

import (
	"github.com/spf13/cobra"

	"drac/pkg/compiler"
	"drac/pkg/report"
)

func newParseCmd(a *app) *cobra.Command {
	parseCmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a file",
		Long: `Parses a file without running the semantic checks and prints the tree.

Examples:
  dracc parse hello.drac
  dracc parse --format yaml hello.drac`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(args[0])
			if err != nil {
				return err
			}
			root, err := compiler.Parse(compiler.LexWith(src.text, a.cfg.Options().Lex))
			if err != nil {
				return a.fault(cmd, src, err)
			}
			a.log.Debug("parsed", "component", "parser", "file", src.name, "functions", root.Child(1).Len())
			return a.writeAST(report.New(cmd.OutOrStdout(), a.cfg.Output.Color), root)
		},
	}
	parseCmd.Flags().StringP("format", "f", "tree", "output format (tree, yaml)")
	return parseCmd
}
