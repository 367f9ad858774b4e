package cmd

import (
	"github.com/spf13/cobra"

	"drac/pkg/compiler"
	"drac/pkg/report"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "List the tokens of a file",
		Long: `Prints one token per line as {CATEGORY, "lexeme", @(row, column)}.
Tokenizing never fails; unknown characters become ILLEGAL_CHAR tokens.

Examples:
  dracc tokens hello.drac
  dracc tokens --signed-literals greedy hello.drac`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := a.readSource(args[0])
			if err != nil {
				return err
			}
			tokens := compiler.LexWith(src.text, a.cfg.Options().Lex)
			a.log.Debug("lexed", "component", "lexer", "file", src.name, "tokens", len(tokens))
			return report.New(cmd.OutOrStdout(), a.cfg.Output.Color).Tokens(tokens)
		},
	}
}
