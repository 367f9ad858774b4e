package compiler

// Parser consumes the flat token slice produced by the Lexer and builds an AST.
// It is LL(1): every decision looks at the current token only, except the
// identifier-led statement, which peeks one token past the identifier.
//
// Grammar:
//
//	program    = (varDef | funDef)* EOF
//	varDef     = "var" idList ";"
//	idList     = ID ("," ID)*
//	funDef     = ID "(" idList? ")" "{" varDef* stmtList "}"
//	stmtList   = stmt*
//	stmt       = ID "=" expr ";" | ID "(" exprList? ")" ";"
//	           | "inc" ID ";" | "dec" ID ";"
//	           | if | while | doWhile | "break" ";" | "return" expr ";" | ";"
//	if         = "if" "(" expr ")" "{" stmtList "}" elif* else?
//	elif       = "elif" "(" expr ")" "{" stmtList "}"
//	else       = "else" "{" stmtList "}"
//	while      = "while" "(" expr ")" "{" stmtList "}"
//	doWhile    = "do" "{" stmtList "}" "while" "(" expr ")" ";"
//	exprList   = expr ("," expr)*
//	expr       = or
//	or         = and ("or" and)*
//	and        = comp ("and" comp)*
//	comp       = rel (("==" | "<>") rel)*
//	rel        = add (("<" | "<=" | ">" | ">=") add)*
//	add        = mul (("+" | "-") mul)*
//	mul        = unary (("*" | "/" | "%") unary)*
//	unary      = ("+" | "-" | "not") unary | primary
//	primary    = ID | ID "(" exprList? ")" | "[" exprList? "]"
//	           | "true" | "false" | INT | CHAR | STRING | "(" expr ")"
//
// Nesting depth is bounded only by the goroutine stack: every grammar level
// and every stacked prefix operator costs one frame.
type Parser struct {
	tokens []Token
	pos    int
}

var (
	firstOfDeclaration = []Category{VAR, IDENTIFIER}
	firstOfStatement   = []Category{IDENTIFIER, INC, DEC, IF, WHILE, DO, BREAK, RETURN, SEMICOLON}
	afterIdentifier    = []Category{ASSIGN, PAR_LEFT}
	firstOfExpression  = []Category{
		PLUS, MINUS, NOT, IDENTIFIER, OPEN_SQUARE_BRACKET,
		TRUE, FALSE, INT_LIT, CHAR_LIT, STRING_LIT, PAR_LEFT,
	}
)

// Each binary precedence level maps its operator categories to node kinds.
var (
	orOps    = map[Category]Kind{OR: Or}
	andOps   = map[Category]Kind{AND: And}
	compOps  = map[Category]Kind{COMPARE: Comp, DIFERENT: Dif}
	relOps   = map[Category]Kind{LESS_T: LessT, LESS_E: LessE, MORE_T: MoreT, MORE_E: MoreE}
	addOps   = map[Category]Kind{PLUS: Add, MINUS: Minus}
	mulOps   = map[Category]Kind{MULTIPLY: Mul, DIV: Div, MODULE: Mod}
	unaryOps = map[Category]Kind{PLUS: UPlus, MINUS: UMinus, NOT: UNot}
	literals = map[Category]Kind{TRUE: True, FALSE: False, INT_LIT: IntLit, CHAR_LIT: CharLit, STRING_LIT: StringLit}
)

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func in(c Category, set []Category) bool {
	for _, s := range set {
		if s == c {
			return true
		}
	}
	return false
}

// peek returns the current token without consuming it.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		if n := len(p.tokens); n > 0 {
			last := p.tokens[n-1]
			return Token{Category: EOF, Row: last.Row, Column: last.Column}
		}
		return Token{Category: EOF, Row: 1, Column: 1}
	}
	return p.tokens[p.pos]
}

// peekNext returns the token immediately after the current one.
func (p *Parser) peekNext() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Category: EOF}
	}
	return p.tokens[p.pos+1]
}

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the current token if it is of category c.
func (p *Parser) expect(c Category) (Token, error) {
	tok := p.peek()
	if tok.Category != c {
		return tok, &SyntaxError{Expected: []Category{c}, Found: tok}
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(expected []Category) error {
	return &SyntaxError{Expected: expected, Found: p.peek()}
}

// parseProgram parses the whole token stream.
func (p *Parser) parseProgram() (*Node, error) {
	vars := NewNode(VarList, nil)
	funs := NewNode(FunList, nil)

	for p.peek().Category != EOF {
		switch p.peek().Category {
		case VAR:
			defs, err := p.parseVarDef()
			if err != nil {
				return nil, err
			}
			vars.Children = append(vars.Children, defs...)
		case IDENTIFIER:
			fun, err := p.parseFunDef()
			if err != nil {
				return nil, err
			}
			funs.Add(fun)
		default:
			return nil, p.unexpected(firstOfDeclaration)
		}
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return NewNode(Program, nil).Add(vars).Add(funs), nil
}

// parseVarDef parses  var a, b, c;  into one VarDef per name.
func (p *Parser) parseVarDef() ([]*Node, error) {
	if _, err := p.expect(VAR); err != nil {
		return nil, err
	}
	ids, err := p.parseIDList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	defs := make([]*Node, len(ids))
	for i, id := range ids {
		defs[i] = anchored(VarDef, id)
	}
	return defs, nil
}

func (p *Parser) parseIDList() ([]Token, error) {
	first, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	ids := []Token{first}
	for p.peek().Category == COMA {
		p.advance()
		id, err := p.expect(IDENTIFIER)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseFunDef parses  name(params) { var ...; statements }
func (p *Parser) parseFunDef() (*Node, error) {
	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	fun := anchored(FunDef, nameTok)

	if _, err := p.expect(PAR_LEFT); err != nil {
		return nil, err
	}
	params := NewNode(ExprList, nil)
	if p.peek().Category == IDENTIFIER {
		ids, err := p.parseIDList()
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			params.Add(anchored(Var, id))
		}
	}
	if _, err := p.expect(PAR_RIGHT); err != nil {
		return nil, err
	}
	if _, err := p.expect(OPEN_CURLY_BRACKET); err != nil {
		return nil, err
	}

	locals := NewNode(DeclarationList, nil)
	for p.peek().Category == VAR {
		defs, err := p.parseVarDef()
		if err != nil {
			return nil, err
		}
		locals.Children = append(locals.Children, defs...)
	}

	body, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(CLOSE_CURLY_BRACKET); err != nil {
		return nil, err
	}
	return fun.Add(params).Add(locals).Add(body), nil
}

func (p *Parser) parseStmtList() (*Node, error) {
	list := NewNode(StatementList, nil)
	for in(p.peek().Category, firstOfStatement) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Add(stmt)
	}
	return list, nil
}

// parseBlock parses  { stmtList }
func (p *Parser) parseBlock() (*Node, error) {
	if _, err := p.expect(OPEN_CURLY_BRACKET); err != nil {
		return nil, err
	}
	body, err := p.parseStmtList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(CLOSE_CURLY_BRACKET); err != nil {
		return nil, err
	}
	return body, nil
}

// parseCondition parses  ( expr )
func (p *Parser) parseCondition() (*Node, error) {
	if _, err := p.expect(PAR_LEFT); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(PAR_RIGHT); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseStatement dispatches on the leading token. The empty statement yields
// a nil node.
func (p *Parser) parseStatement() (*Node, error) {
	switch p.peek().Category {
	case IDENTIFIER:
		switch p.peekNext().Category {
		case ASSIGN:
			return p.parseAssignment()
		case PAR_LEFT:
			call, err := p.parseFunCall()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(SEMICOLON); err != nil {
				return nil, err
			}
			return call, nil
		}
		p.advance()
		return nil, p.unexpected(afterIdentifier)
	case INC:
		return p.parseIncDec(Inc)
	case DEC:
		return p.parseIncDec(Dec)
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case DO:
		return p.parseDoWhile()
	case BREAK:
		tok := p.advance()
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return anchored(Break, tok), nil
	case RETURN:
		return p.parseReturn()
	case SEMICOLON:
		p.advance()
		return nil, nil
	}
	return nil, p.unexpected(firstOfStatement)
}

// parseAssignment parses  ID = expr ;
func (p *Parser) parseAssignment() (*Node, error) {
	target := p.advance()
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return anchored(Assignment, target).Add(value), nil
}

// parseIncDec parses  inc ID ;  and  dec ID ;
func (p *Parser) parseIncDec(kind Kind) (*Node, error) {
	op := p.advance()
	id, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return anchored(kind, op).Add(anchored(Var, id)), nil
}

// parseIf parses the if statement with its elif/else chain. Each elif nests
// the rest of the chain as its last child.
func (p *Parser) parseIf() (*Node, error) {
	node := anchored(If, p.advance())
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Add(cond).Add(body)

	tail, err := p.parseElseChain()
	if err != nil {
		return nil, err
	}
	return node.Add(tail), nil
}

// parseElseChain returns the Elseif/Else following an if body, or nil.
func (p *Parser) parseElseChain() (*Node, error) {
	switch p.peek().Category {
	case ELIF:
		node := anchored(Elseif, p.advance())
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		tail, err := p.parseElseChain()
		if err != nil {
			return nil, err
		}
		return node.Add(cond).Add(body).Add(tail), nil
	case ELSE:
		node := anchored(Else, p.advance())
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return node.Add(body), nil
	}
	return nil, nil
}

// parseWhile parses  while ( expr ) { stmtList }
func (p *Parser) parseWhile() (*Node, error) {
	node := anchored(While, p.advance())
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return node.Add(cond).Add(body), nil
}

// parseDoWhile parses  do { stmtList } while ( expr ) ;
func (p *Parser) parseDoWhile() (*Node, error) {
	node := anchored(Do, p.advance())
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	whileTok, err := p.expect(WHILE)
	if err != nil {
		return nil, err
	}
	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return node.Add(body).Add(anchored(While, whileTok).Add(cond)), nil
}

// parseReturn parses  return expr ;
func (p *Parser) parseReturn() (*Node, error) {
	node := anchored(Return, p.advance())
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return node.Add(value), nil
}

// parseFunCall parses  ID ( exprList? )  with the identifier still current.
func (p *Parser) parseFunCall() (*Node, error) {
	node := anchored(FunCall, p.advance())
	if _, err := p.expect(PAR_LEFT); err != nil {
		return nil, err
	}
	args, err := p.parseExprList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(PAR_RIGHT); err != nil {
		return nil, err
	}
	return node.Add(args), nil
}

// parseExprList parses a possibly empty comma separated list. An empty list
// is an ExprList without children.
func (p *Parser) parseExprList() (*Node, error) {
	list := NewNode(ExprList, nil)
	if !in(p.peek().Category, firstOfExpression) {
		return list, nil
	}
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Add(expr)
		if p.peek().Category != COMA {
			return list, nil
		}
		p.advance()
	}
}

// parseExpression is the entry point for expression parsing.
func (p *Parser) parseExpression() (*Node, error) {
	return p.parseOr()
}

// parseBinary parses one left-associative precedence level: operands come
// from next, and every operator in ops wraps the result so far.
func (p *Parser) parseBinary(ops map[Category]Kind, next func() (*Node, error)) (*Node, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for {
		kind, ok := ops[p.peek().Category]
		if !ok {
			return expr, nil
		}
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = anchored(kind, op).Add(expr).Add(right)
	}
}

// parseOr handles or (lowest precedence)
func (p *Parser) parseOr() (*Node, error) {
	return p.parseBinary(orOps, p.parseAnd)
}

// parseAnd handles and
func (p *Parser) parseAnd() (*Node, error) {
	return p.parseBinary(andOps, p.parseComp)
}

// parseComp handles == and <>
func (p *Parser) parseComp() (*Node, error) {
	return p.parseBinary(compOps, p.parseRel)
}

// parseRel handles < <= > >=
func (p *Parser) parseRel() (*Node, error) {
	return p.parseBinary(relOps, p.parseAdd)
}

// parseAdd handles + and -
func (p *Parser) parseAdd() (*Node, error) {
	return p.parseBinary(addOps, p.parseMul)
}

// parseMul handles * / %
func (p *Parser) parseMul() (*Node, error) {
	return p.parseBinary(mulOps, p.parseUnary)
}

// parseUnary handles prefix +, - and not; they stack to any depth.
func (p *Parser) parseUnary() (*Node, error) {
	kind, ok := unaryOps[p.peek().Category]
	if !ok {
		return p.parsePrimary()
	}
	node := anchored(kind, p.advance())
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return node.Add(operand), nil
}

// parsePrimary handles literals, variables, calls, list literals and
// parenthesised expressions.
func (p *Parser) parsePrimary() (*Node, error) {
	tok := p.peek()
	if kind, ok := literals[tok.Category]; ok {
		return anchored(kind, p.advance()), nil
	}

	switch tok.Category {
	case IDENTIFIER:
		if p.peekNext().Category == PAR_LEFT {
			return p.parseFunCall()
		}
		return anchored(Var, p.advance()), nil

	case OPEN_SQUARE_BRACKET:
		p.advance()
		list, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(CLOSE_SQUARE_BRACKET); err != nil {
			return nil, err
		}
		return list, nil

	case PAR_LEFT:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(PAR_RIGHT); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.unexpected(firstOfExpression)
}

// Parse builds the AST for a complete token stream, which must end in EOF.
func Parse(tokens []Token) (*Node, error) {
	return NewParser(tokens).parseProgram()
}
