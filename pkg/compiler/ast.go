package compiler

import (
	"fmt"
	"strings"
)

// Kind tags an AST node. Every node carries exactly one Kind; the child
// layout for each kind is fixed by the parser and documented below.
type Kind int

const (
	Program         Kind = iota // VarList, FunList
	VarList                     // VarDef*
	VarDef                      // anchor: identifier
	FunList                     // FunDef*
	FunDef                      // anchor: identifier; ExprList (params), DeclarationList, StatementList
	DeclarationList             // VarDef* local to one function
	StatementList               // statements
	FunCall                     // anchor: callee; ExprList (arguments, possibly empty)
	Assignment                  // anchor: target; expression
	Var                         // anchor: identifier
	ExprList                    // expressions
	Inc                         // anchor: inc; Var
	Dec                         // anchor: dec; Var
	If                          // anchor: if; condition, StatementList, [Elseif | Else]
	Elseif                      // anchor: elif; condition, StatementList, [Elseif | Else]
	Else                        // anchor: else; StatementList
	While                       // anchor: while; condition, StatementList
	Do                          // anchor: do; StatementList, While (condition only)
	Break                       // anchor: break
	Return                      // anchor: return; expression

	// Binary operators, always two children.
	Or
	And
	Comp
	Dif
	LessT
	LessE
	MoreT
	MoreE
	Add
	Minus
	Mul
	Div
	Mod

	// Unary operators, always one child.
	UPlus
	UMinus
	UNot

	// Literals, no children.
	True
	False
	IntLit
	CharLit
	StringLit

	numKinds
)

var kindNames = [...]string{
	Program:         "Program",
	VarList:         "VarList",
	VarDef:          "VarDef",
	FunList:         "FunList",
	FunDef:          "FunDef",
	DeclarationList: "DeclarationList",
	StatementList:   "StatementList",
	FunCall:         "FunCall",
	Assignment:      "Assignment",
	Var:             "Var",
	ExprList:        "ExprList",
	Inc:             "Inc",
	Dec:             "Dec",
	If:              "If",
	Elseif:          "Elseif",
	Else:            "Else",
	While:           "While",
	Do:              "Do",
	Break:           "Break",
	Return:          "Return",
	Or:              "Or",
	And:             "And",
	Comp:            "Comp",
	Dif:             "Dif",
	LessT:           "LessT",
	LessE:           "LessE",
	MoreT:           "MoreT",
	MoreE:           "MoreE",
	Add:             "Add",
	Minus:           "Minus",
	Mul:             "Mul",
	Div:             "Div",
	Mod:             "Mod",
	UPlus:           "UPlus",
	UMinus:          "UMinus",
	UNot:            "UNot",
	True:            "True",
	False:           "False",
	IntLit:          "IntLit",
	CharLit:         "CharLit",
	StringLit:       "StringLit",
}

func (k Kind) String() string {
	if k >= 0 && k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Kinds returns every node kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// VariableArity marks kinds whose child count is not fixed.
const VariableArity = -1

// Arity returns the number of children a node of this kind always has, or
// VariableArity for list kinds and kinds with an optional trailing child.
func (k Kind) Arity() int {
	switch k {
	case Program:
		return 2
	case FunDef:
		return 3
	case FunCall, Assignment, Inc, Dec, Else, Return, UPlus, UMinus, UNot:
		return 1
	case While, Do:
		return 2
	case VarDef, Var, Break, True, False, IntLit, CharLit, StringLit:
		return 0
	case Or, And, Comp, Dif, LessT, LessE, MoreT, MoreE, Add, Minus, Mul, Div, Mod:
		return 2
	}
	return VariableArity
}

// IsBinary reports whether k is a two-operand operator.
func (k Kind) IsBinary() bool { return k >= Or && k <= Mod }

// IsUnary reports whether k is a prefix operator.
func (k Kind) IsUnary() bool { return k >= UPlus && k <= UNot }

// IsLiteral reports whether k is a literal leaf.
func (k Kind) IsLiteral() bool { return k >= True && k <= StringLit }

// Node is one vertex of the AST. A node exclusively owns its children; the
// structure is a strict tree.
type Node struct {
	Kind     Kind
	Token    *Token // anchor token; nil for purely structural nodes
	Children []*Node
}

// NewNode returns a childless node anchored at tok.
func NewNode(kind Kind, tok *Token) *Node {
	return &Node{Kind: kind, Token: tok}
}

// anchored copies tok so the node does not alias the parser's token slice.
func anchored(kind Kind, tok Token) *Node {
	return NewNode(kind, &tok)
}

// Add appends child. A nil child is ignored.
func (n *Node) Add(child *Node) *Node {
	if child != nil {
		n.Children = append(n.Children, child)
	}
	return n
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Len returns the number of children.
func (n *Node) Len() int { return len(n.Children) }

// Lexeme returns the anchor's lexeme, or "" for structural nodes.
func (n *Node) Lexeme() string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Lexeme
}

func (n *Node) String() string {
	if n.Token == nil {
		return n.Kind.String()
	}
	return fmt.Sprintf("%s %s", n.Kind, n.Token)
}

// Tree renders the subtree depth-first in pre-order, one node per line,
// indented two spaces per level.
func (n *Node) Tree() string {
	var sb strings.Builder
	n.Walk(func(node *Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(node.String())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

// Walk visits the subtree in pre-order. Returning false from fn skips the
// children of the current node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Equal reports whether a and b have the same kinds, lexemes and shape.
// Source positions are ignored.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Lexeme() != b.Lexeme() || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
