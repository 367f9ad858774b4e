package compiler

import (
	"errors"
	"fmt"
	"strconv"
)

// CheckOptions tunes the semantic checker. The zero value reproduces the
// language's reference rules.
type CheckOptions struct {
	// StrictCalls additionally rejects calls to undeclared functions and
	// checks zero-argument calls against the declared arity.
	StrictCalls bool
}

type phase int

const (
	phaseIdle phase = iota
	phaseCollect
	phaseResolve
	phaseAccepted
)

// Checker validates an AST in two passes. Pass 1 collects global variables
// and function signatures without entering bodies; pass 2 resolves every
// body against them. A Checker is good for one run.
type Checker struct {
	opts      CheckOptions
	syms      *SymbolTable
	phase     phase
	loopDepth int
}

func NewChecker(opts CheckOptions) *Checker {
	return &Checker{opts: opts, syms: NewSymbolTable()}
}

// Symbols exposes the tables built by Check.
func (c *Checker) Symbols() *SymbolTable { return c.syms }

// Check accepts root or returns the first *SemanticError found.
func (c *Checker) Check(root *Node) error {
	if c.phase != phaseIdle {
		return errors.New("checker already used")
	}
	if root == nil || root.Kind != Program || root.Len() != 2 {
		return fmt.Errorf("malformed tree: expected a Program root")
	}

	c.phase = phaseCollect
	if err := c.collect(root); err != nil {
		return err
	}
	if _, ok := c.syms.Function("main"); !ok {
		return semanticErrorf(nil, "No main function declared")
	}

	c.phase = phaseResolve
	for _, fun := range root.Child(1).Children {
		if err := c.checkFunction(fun); err != nil {
			return err
		}
	}
	c.phase = phaseAccepted
	return nil
}

// collect is pass 1.
func (c *Checker) collect(root *Node) error {
	for _, def := range root.Child(0).Children {
		if !c.syms.DeclareGlobal(def.Lexeme()) {
			return semanticErrorf(def.Token, "Duplicated variable: %s", def.Lexeme())
		}
	}
	for _, fun := range root.Child(1).Children {
		if !c.syms.DeclareFunction(fun.Lexeme(), fun.Child(0).Len()) {
			return semanticErrorf(fun.Token, "Duplicated function: %s", fun.Lexeme())
		}
	}
	return nil
}

// checkFunction is pass 2 for one function.
func (c *Checker) checkFunction(fun *Node) error {
	c.syms.EnterFunction()

	params, locals, body := fun.Child(0), fun.Child(1), fun.Child(2)
	for _, decls := range []*Node{params, locals} {
		for _, decl := range decls.Children {
			if !c.syms.DeclareLocal(decl.Lexeme()) {
				return semanticErrorf(decl.Token, "Duplicated variable: %s", decl.Lexeme())
			}
		}
	}

	c.loopDepth = 0
	if err := c.visit(body); err != nil {
		return err
	}
	c.syms.ExitFunction(fun.Lexeme())
	return nil
}

func (c *Checker) visitChildren(n *Node) error {
	for _, child := range n.Children {
		if err := c.visit(child); err != nil {
			return err
		}
	}
	return nil
}

// visit checks one node inside a function body. Every kind must be handled
// by the operator and literal groups or by the switch.
func (c *Checker) visit(n *Node) error {
	switch {
	case n.Kind.IsBinary(), n.Kind.IsUnary():
		return c.visitChildren(n)
	case n.Kind.IsLiteral():
		return c.checkLiteral(n)
	}

	switch n.Kind {
	case Program, VarList, FunList, FunDef, DeclarationList, VarDef:
		return fmt.Errorf("malformed tree: %s inside a function body", n.Kind)

	case StatementList, ExprList, If, Elseif, Else, Return:
		return c.visitChildren(n)

	case Assignment:
		if !c.syms.Resolve(n.Lexeme()) {
			return semanticErrorf(n.Token, "Undeclared variable: %s", n.Lexeme())
		}
		return c.visitChildren(n)

	case Var:
		if !c.syms.Resolve(n.Lexeme()) {
			return semanticErrorf(n.Token, "Undeclared variable: %s", n.Lexeme())
		}
		return nil

	case Inc, Dec:
		return c.visitChildren(n)

	case FunCall:
		if err := c.checkCall(n); err != nil {
			return err
		}
		return c.visitChildren(n)

	case While, Do:
		c.loopDepth++
		err := c.visitChildren(n)
		c.loopDepth--
		return err

	case Break:
		if c.loopDepth == 0 {
			return semanticErrorf(n.Token, "Found Break outside loop declaration")
		}
		return nil
	}
	panic(fmt.Sprintf("checker: unhandled node kind %s", n.Kind))
}

func (c *Checker) checkLiteral(n *Node) error {
	switch n.Kind {
	case True, False:
		return c.checkBool(n)
	case IntLit:
		return c.checkInt(n)
	case CharLit:
		return c.checkChar(n)
	}
	return c.checkString(n)
}

func (c *Checker) checkCall(n *Node) error {
	name := n.Lexeme()
	args := 0
	if list := n.Child(0); list != nil {
		args = list.Len()
	}

	fn, ok := c.syms.Function(name)
	if !ok {
		if c.opts.StrictCalls {
			return semanticErrorf(n.Token, "Undeclared function: %s", name)
		}
		return nil
	}
	if (args > 0 || c.opts.StrictCalls) && fn.Arity != args {
		return semanticErrorf(n.Token, "Number of arguments mismatch: %s", name)
	}
	return nil
}

func (c *Checker) checkBool(n *Node) error {
	want := "true"
	if n.Kind == False {
		want = "false"
	}
	if n.Lexeme() != want {
		return semanticErrorf(n.Token, "Invalid boolean literal: %s", n.Lexeme())
	}
	return nil
}

func (c *Checker) checkInt(n *Node) error {
	if _, err := DecodeInt(n.Lexeme()); err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return semanticErrorf(n.Token, "Integer literal too large: %s", n.Lexeme())
		}
		return semanticErrorf(n.Token, "Invalid integer literal: %s", n.Lexeme())
	}
	return nil
}

func (c *Checker) checkChar(n *Node) error {
	if _, err := DecodeChar(n.Lexeme()); err != nil {
		if errors.Is(err, errBadCodePoint) {
			return semanticErrorf(n.Token, "Char literal too large: %s", n.Lexeme())
		}
		return semanticErrorf(n.Token, "Invalid character literal: %s", n.Lexeme())
	}
	return nil
}

func (c *Checker) checkString(n *Node) error {
	if _, err := DecodeString(n.Lexeme()); err != nil {
		if errors.Is(err, errBadCodePoint) {
			return semanticErrorf(n.Token, "String literal too large: %s", n.Lexeme())
		}
		return semanticErrorf(n.Token, "Invalid string literal: %s (%v)", n.Lexeme(), err)
	}
	return nil
}
