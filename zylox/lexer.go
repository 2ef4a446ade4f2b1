package zylox

import (
	"bytes"
	"strconv"
	"unicode/utf8"
)

// Lexer turns source text into Tokens. The token slice it
// produces always ends with exactly one TokenEOF; the parser
// relies on that to find the end of input without bounds checks.
type Lexer struct {
	src     []rune
	start   int
	cur     int
	tokens  []Token
	buffer  *bytes.Buffer
	linenum int
	errs    ErrorList
}

func NewLexer(src string) *Lexer {
	return &Lexer{
		src:     StringToRunes(src),
		tokens:  make([]Token, 0, 10),
		buffer:  new(bytes.Buffer),
		linenum: 1,
	}
}

// ScanTokens lexes src in one go. Lexing errors do not stop the
// scan; they are all returned alongside the tokens.
func ScanTokens(src string) ([]Token, error) {
	lex := NewLexer(src)
	toks := lex.Run()
	return toks, lex.Errors()
}

// Errors returns the lexing errors of the last Run, or nil.
func (lexer *Lexer) Errors() error {
	return lexer.errs.Err()
}

func (lexer *Lexer) Linenum() int {
	return lexer.linenum
}

func (lexer *Lexer) Reset(src string) {
	lexer.src = StringToRunes(src)
	lexer.start = 0
	lexer.cur = 0
	// a fresh slice: callers keep the tokens of the previous run.
	lexer.tokens = make([]Token, 0, 10)
	lexer.linenum = 1
	lexer.buffer.Reset()
	lexer.errs = nil
}

// Run scans the whole source. Errors are available from Errors.
func (lexer *Lexer) Run() []Token {
	for !lexer.atEnd() {
		lexer.start = lexer.cur
		lexer.lexNext()
	}
	lexer.tokens = append(lexer.tokens, Token{Kind: TokenEOF, Line: lexer.linenum})
	return lexer.tokens
}

func StringToRunes(str string) []rune {
	b := []byte(str)
	runes := make([]rune, 0, len(b))

	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		runes = append(runes, r)
		b = b[size:]
	}
	return runes
}

func (lexer *Lexer) atEnd() bool {
	return lexer.cur >= len(lexer.src)
}

func (lexer *Lexer) advance() rune {
	r := lexer.src[lexer.cur]
	lexer.cur++
	return r
}

func (lexer *Lexer) peek() rune {
	if lexer.atEnd() {
		return 0
	}
	return lexer.src[lexer.cur]
}

func (lexer *Lexer) peekNext() rune {
	if lexer.cur+1 >= len(lexer.src) {
		return 0
	}
	return lexer.src[lexer.cur+1]
}

func (lexer *Lexer) match(expected rune) bool {
	if lexer.atEnd() || lexer.src[lexer.cur] != expected {
		return false
	}
	lexer.cur++
	return true
}

func (lexer *Lexer) AppendToken(kind TokenType, literal interface{}) {
	lexer.tokens = append(lexer.tokens, Token{
		Kind:    kind,
		Lexeme:  string(lexer.src[lexer.start:lexer.cur]),
		Literal: literal,
		Line:    lexer.linenum,
	})
}

func (lexer *Lexer) errorf(msg string) {
	lexer.errs = append(lexer.errs, &SyntaxError{Line: lexer.linenum, Msg: msg})
}

// pick chooses between the one- and two-char form of an operator.
func (lexer *Lexer) pick(next rune, two, one TokenType) TokenType {
	if lexer.match(next) {
		return two
	}
	return one
}

func (lexer *Lexer) lexNext() {
	r := lexer.advance()
	switch r {
	case '(':
		lexer.AppendToken(TokenLeftParen, nil)
	case ')':
		lexer.AppendToken(TokenRightParen, nil)
	case '{':
		lexer.AppendToken(TokenLeftBrace, nil)
	case '}':
		lexer.AppendToken(TokenRightBrace, nil)
	case ',':
		lexer.AppendToken(TokenComma, nil)
	case '.':
		lexer.AppendToken(TokenDot, nil)
	case '-':
		lexer.AppendToken(TokenMinus, nil)
	case '+':
		lexer.AppendToken(TokenPlus, nil)
	case ';':
		lexer.AppendToken(TokenSemicolon, nil)
	case '*':
		lexer.AppendToken(TokenStar, nil)
	case '!':
		lexer.AppendToken(lexer.pick('=', TokenBangEqual, TokenBang), nil)
	case '=':
		lexer.AppendToken(lexer.pick('=', TokenEqualEqual, TokenEqual), nil)
	case '<':
		lexer.AppendToken(lexer.pick('=', TokenLessEqual, TokenLess), nil)
	case '>':
		lexer.AppendToken(lexer.pick('=', TokenGreaterEqual, TokenGreater), nil)
	case '/':
		if lexer.match('/') {
			for lexer.peek() != '\n' && !lexer.atEnd() {
				lexer.advance()
			}
			return
		}
		lexer.AppendToken(TokenSlash, nil)
	case ' ', '\r', '\t':
	case '\n':
		lexer.linenum++
	case '"':
		lexer.lexString()
	default:
		switch {
		case isDigit(r):
			lexer.lexNumber()
		case isAlpha(r):
			lexer.lexIdentifier()
		default:
			lexer.errorf("Unexpected character.")
		}
	}
}

func (lexer *Lexer) lexString() {
	lexer.buffer.Reset()
	for lexer.peek() != '"' && !lexer.atEnd() {
		r := lexer.advance()
		if r == '\n' {
			lexer.linenum++
		}
		lexer.buffer.WriteRune(r)
	}

	if lexer.atEnd() {
		lexer.errorf("Unterminated string.")
		return
	}

	// the closing quote
	lexer.advance()
	lexer.AppendToken(TokenString, lexer.buffer.String())
	lexer.buffer.Reset()
}

func (lexer *Lexer) lexNumber() {
	for isDigit(lexer.peek()) {
		lexer.advance()
	}
	if lexer.peek() == '.' && isDigit(lexer.peekNext()) {
		lexer.advance()
		for isDigit(lexer.peek()) {
			lexer.advance()
		}
	}
	text := string(lexer.src[lexer.start:lexer.cur])
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		lexer.errorf("Invalid number literal '" + text + "'.")
		return
	}
	lexer.AppendToken(TokenNumber, f)
}

func (lexer *Lexer) lexIdentifier() {
	for isAlphaNumeric(lexer.peek()) {
		lexer.advance()
	}
	text := string(lexer.src[lexer.start:lexer.cur])
	kind, ok := keywords[text]
	if !ok {
		kind = TokenIdentifier
	}
	lexer.AppendToken(kind, nil)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
