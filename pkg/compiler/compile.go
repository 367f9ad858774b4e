package compiler

// Options bundles the settings of every pipeline stage.
type Options struct {
	Lex   LexOptions
	Check CheckOptions
}

// Compile runs the front end over src: Lex, Parse, then Check. It returns the
// accepted AST or the first fault, which is a *SyntaxError or *SemanticError.
// Calls share no state and may run concurrently.
func Compile(src string, opts Options) (*Node, error) {
	root, _, err := Analyze(src, opts)
	if err != nil {
		return nil, err
	}
	return root, nil
}

// Analyze is Compile that also returns the checker's symbol tables. The
// tables are returned even when checking fails, reflecting what was
// collected up to the fault.
func Analyze(src string, opts Options) (*Node, *SymbolTable, error) {
	root, err := Parse(LexWith(src, opts.Lex))
	if err != nil {
		return nil, nil, err
	}
	checker := NewChecker(opts.Check)
	if err := checker.Check(root); err != nil {
		return root, checker.Symbols(), err
	}
	return root, checker.Symbols(), nil
}
