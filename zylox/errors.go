package zylox

import (
	"errors"
	"fmt"
	"strings"
)

var ErrCacheMiss = errors.New("token cache miss")
var ErrSnapshotVersion = errors.New("unrecognized snapshot version")

// SyntaxError is reported by the lexer, the parser and the resolver.
// All three share one sink; any of them stops the program from running.
type SyntaxError struct {
	Line  int
	Where string
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Line [%d] Error %s: %s", e.Line, e.Where, e.Msg)
}

func newSyntaxErrorAt(tok Token, msg string) *SyntaxError {
	where := "at '" + tok.Lexeme + "'"
	if tok.Kind == TokenEOF {
		where = "at end"
	}
	return &SyntaxError{Line: tok.Line, Where: where, Msg: msg}
}

// RuntimeError carries the offending token so we can name the line.
type RuntimeError struct {
	Token Token
	Msg   string
}

func (e *RuntimeError) Error() string {
	return e.Msg
}

// Report renders the error the way the driver prints it on stderr.
func (e *RuntimeError) Report() string {
	return fmt.Sprintf("%s\n[Line %d]", e.Msg, e.Token.Line)
}

func runtimeErrorf(tok Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Msg: fmt.Sprintf(format, args...)}
}

// ErrorList collects the independent errors of one pass.
type ErrorList []error

func (l ErrorList) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil for an empty list, so callers can
// write `return errs.Err()`.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
