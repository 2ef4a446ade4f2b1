package zylox

// MaxArgs is the practical cap on call arguments and function
// parameters. Going over it is reported but does not stop the parse.
const MaxArgs = 8

// Parser is a recursive-descent parser with one method per precedence
// level. A syntax error abandons the current declaration only: the
// parser synchronizes at the next statement boundary and keeps going, so
// one Parse can report several independent errors.
type Parser struct {
	tokens []Token
	cur    int
	errs   ErrorList
}

func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens, Token{Kind: TokenEOF, Line: line})
	}
	return &Parser{tokens: tokens}
}

// Parse returns the statements it could build along with every
// error reported. When the error is non-nil the program must not run.
func (p *Parser) Parse() ([]Stmt, error) {
	stmts := make([]Stmt, 0, 8)
	for !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, p.errs.Err()
}

// ParseExpression parses a single expression, as used by the repl
// `.ast` command on fragments.
func (p *Parser) ParseExpression() (Expr, error) {
	e, err := p.expression()
	if err == nil && !p.isAtEnd() {
		err = newSyntaxErrorAt(p.peek(), "Expecting end of expression.")
	}
	if err != nil {
		p.errs = append(p.errs, err)
	}
	return e, p.errs.Err()
}

// report records a non-fatal error; parsing continues in place.
func (p *Parser) report(tok Token, msg string) {
	p.errs = append(p.errs, newSyntaxErrorAt(tok, msg))
}

func (p *Parser) declaration() Stmt {
	var s Stmt
	var err error
	switch {
	case p.match(TokenClass):
		s, err = p.classDeclaration()
	case p.match(TokenFun):
		s, err = p.function("function")
	case p.match(TokenVar):
		s, err = p.varDeclaration()
	default:
		s, err = p.statement()
	}
	if err != nil {
		p.errs = append(p.errs, err)
		p.synchronize()
		return nil
	}
	return s
}

func (p *Parser) classDeclaration() (Stmt, error) {
	name, err := p.consume(TokenIdentifier, "Expecting class name.")
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(TokenSemicolon, "Expecting ; after class name."); err != nil {
		return nil, err
	}
	return &ClassStmt{Name: name}, nil
}

func (p *Parser) function(kind string) (Stmt, error) {
	name, err := p.consume(TokenIdentifier, "Expecting "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(TokenLeftParen, "Expecting ( after "+kind+" name."); err != nil {
		return nil, err
	}

	var params []Token
	if !p.check(TokenRightParen) {
		for {
			if len(params) >= MaxArgs {
				p.report(p.peek(), "Cannot have more than 8 parameters.")
			}
			param, err := p.consume(TokenIdentifier, "Expecting parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	if _, err = p.consume(TokenRightParen, "Expecting ) after parameters."); err != nil {
		return nil, err
	}
	if _, err = p.consume(TokenLeftBrace, "Expecting { before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(TokenIdentifier, "Expecting variable name.")
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.match(TokenEqual) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(TokenSemicolon, "Expecting ; after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{Name: name, Init: init}, nil
}

func (p *Parser) statement() (Stmt, error) {
	switch {
	case p.match(TokenPrint):
		return p.printStatement()
	case p.match(TokenLeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Stmts: stmts}, nil
	case p.match(TokenIf):
		return p.ifStatement()
	case p.match(TokenWhile):
		return p.whileStatement()
	case p.match(TokenFor):
		return p.forStatement()
	case p.match(TokenReturn):
		return p.returnStatement()
	}
	return p.expressionStatement()
}

func (p *Parser) printStatement() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(TokenSemicolon, "Expecting ; after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expr: e}, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	e, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(TokenSemicolon, "Expecting ; after expression."); err != nil {
		return nil, err
	}
	return &ExpressionStmt{Expr: e}, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	var err error
	if !p.check(TokenSemicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(TokenSemicolon, "Expecting ; after return value."); err != nil {
		return nil, err
	}
	return &ReturnStmt{Keyword: keyword, Value: value}, nil
}

// block parses declarations up to the closing brace; the opening
// brace has already been consumed. Errors inside the block are
// recovered from by declaration() itself.
func (p *Parser) block() ([]Stmt, error) {
	stmts := make([]Stmt, 0, 4)
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	if _, err := p.consume(TokenRightBrace, "Expecting } after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(TokenLeftParen, "Expecting ( after if."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(TokenRightParen, "Expecting ) after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els Stmt
	if p.match(TokenElse) {
		els, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(TokenLeftParen, "Expecting ( after while."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.consume(TokenRightParen, "Expecting ) after while condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

// forStatement desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while (cond) { body; incr; } }
//
// with cond defaulting to literal true.
func (p *Parser) forStatement() (Stmt, error) {
	if _, err := p.consume(TokenLeftParen, "Expecting ( after for."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case p.match(TokenSemicolon):
	case p.match(TokenVar):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !p.check(TokenSemicolon) {
		if cond, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(TokenSemicolon, "Expecting ; after loop condition."); err != nil {
		return nil, err
	}

	var incr Expr
	if !p.check(TokenRightParen) {
		if incr, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err = p.consume(TokenRightParen, "Expecting ) after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = &BlockStmt{Stmts: []Stmt{body, &ExpressionStmt{Expr: incr}}}
	}
	if cond == nil {
		cond = &Literal{Value: LoxBool(true)}
	}
	body = &WhileStmt{Cond: cond, Body: body}
	if init != nil {
		body = &BlockStmt{Stmts: []Stmt{init, body}}
	}
	return body, nil
}

func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

func (p *Parser) assignment() (Expr, error) {
	e, err := p.logicOr()
	if err != nil {
		return nil, err
	}

	if p.match(TokenEqual) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if v, ok := e.(*Variable); ok {
			return &Assign{Name: v.Name, Value: value}, nil
		}
		p.report(equals, "Invalid assignment target.")
	}
	return e, nil
}

func (p *Parser) logicOr() (Expr, error) {
	e, err := p.logicAnd()
	if err != nil {
		return nil, err
	}
	for p.match(TokenOr) {
		op := p.previous()
		right, err := p.logicAnd()
		if err != nil {
			return nil, err
		}
		e = &Logical{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *Parser) logicAnd() (Expr, error) {
	e, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(TokenAnd) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return nil, err
		}
		e = &Logical{Left: e, Op: op, Right: right}
	}
	return e, nil
}

// binaryLevel parses one left-associative layer of binary operators.
func (p *Parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	e, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		e = &Binary{Left: e, Op: op, Right: right}
	}
	return e, nil
}

func (p *Parser) equality() (Expr, error) {
	return p.binaryLevel(p.comparison, TokenBangEqual, TokenEqualEqual)
}

func (p *Parser) comparison() (Expr, error) {
	return p.binaryLevel(p.addition, TokenGreater, TokenGreaterEqual, TokenLess, TokenLessEqual)
}

func (p *Parser) addition() (Expr, error) {
	return p.binaryLevel(p.multiplication, TokenMinus, TokenPlus)
}

func (p *Parser) multiplication() (Expr, error) {
	return p.binaryLevel(p.unary, TokenSlash, TokenStar)
}

func (p *Parser) unary() (Expr, error) {
	if p.match(TokenBang, TokenMinus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, Operand: right}, nil
	}
	return p.call()
}

func (p *Parser) call() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(TokenLeftParen) {
		e, err = p.finishCall(e)
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	var args []Expr
	if !p.check(TokenRightParen) {
		for {
			if len(args) >= MaxArgs {
				p.report(p.peek(), "Cannot pass more than 8 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(TokenComma) {
				break
			}
		}
	}
	paren, err := p.consume(TokenRightParen, "Expecting ) after arguments.")
	if err != nil {
		return nil, err
	}
	return &Call{Callee: callee, Args: args, Paren: paren}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(TokenFalse):
		return &Literal{Value: LoxBool(false)}, nil
	case p.match(TokenTrue):
		return &Literal{Value: LoxBool(true)}, nil
	case p.match(TokenNil):
		return &Literal{Value: Nil}, nil
	case p.match(TokenNumber):
		f, _ := p.previous().Literal.(float64)
		return &Literal{Value: LoxNumber(f)}, nil
	case p.match(TokenString):
		s, _ := p.previous().Literal.(string)
		return &Literal{Value: LoxString(s)}, nil
	case p.match(TokenIdentifier):
		return &Variable{Name: p.previous()}, nil
	case p.match(TokenLeftParen):
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err = p.consume(TokenRightParen, "Expecting ) after expression."); err != nil {
			return nil, err
		}
		return &Grouping{Inner: e}, nil
	}
	return nil, newSyntaxErrorAt(p.peek(), "Expecting expression.")
}

// synchronize discards tokens until something that plausibly
// starts a new statement, or the end of input.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == TokenSemicolon {
			return
		}
		switch p.peek().Kind {
		case TokenClass, TokenFor, TokenWhile, TokenVar,
			TokenIf, TokenFun, TokenPrint, TokenReturn:
			return
		}
		p.advance()
	}
}

func (p *Parser) consume(kind TokenType, msg string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, newSyntaxErrorAt(p.peek(), msg)
}

func (p *Parser) match(kinds ...TokenType) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(kind TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.cur++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) peek() Token {
	return p.tokens[p.cur]
}

func (p *Parser) previous() Token {
	return p.tokens[p.cur-1]
}
