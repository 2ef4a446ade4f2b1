package zylox

import (
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	ExitOK           = 0
	ExitUsage        = 64
	ExitSyntaxError  = 65
	ExitRuntimeError = 70
)

// Session is the state owned by one host loop: an interpreter whose
// globals persist across Run calls, the error flags the driver turns
// into an exit status, and where diagnostics go.
type Session struct {
	interp *Interpreter
	lexer  *Lexer
	Stdout io.Writer
	Stderr io.Writer

	// Cache, when set, short-circuits lexing of source already seen.
	Cache *TokenCache

	hadError        bool
	hadRuntimeError bool
}

func NewSession(stdout, stderr io.Writer) *Session {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Session{
		interp: NewInterpreter(stdout),
		lexer:  NewLexer(""),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func (s *Session) Interpreter() *Interpreter {
	return s.interp
}

func (s *Session) HadError() bool        { return s.hadError }
func (s *Session) HadRuntimeError() bool { return s.hadRuntimeError }

// ResetErrors clears the flags; the repl calls it before each line.
func (s *Session) ResetErrors() {
	s.hadError = false
	s.hadRuntimeError = false
}

// ExitCode maps the flags to the process exit status.
func (s *Session) ExitCode() int {
	switch {
	case s.hadError:
		return ExitSyntaxError
	case s.hadRuntimeError:
		return ExitRuntimeError
	}
	return ExitOK
}

// report prints every error in err, one per line.
func (s *Session) report(err error) {
	var list ErrorList
	if errors.As(err, &list) {
		for _, e := range list {
			fmt.Fprintln(s.Stderr, e.Error())
		}
		return
	}
	fmt.Fprintln(s.Stderr, err.Error())
}

// Scan lexes src, going through the token cache when one is set.
func (s *Session) Scan(src string) ([]Token, error) {
	if s.Cache != nil {
		toks, err := s.Cache.Get(src)
		if err == nil {
			Q("token cache hit")
			return toks, nil
		}
		if err != ErrCacheMiss {
			VPrintf("token cache read failed: %v", err)
		}
	}
	s.lexer.Reset(src)
	toks := s.lexer.Run()
	err := s.lexer.Errors()
	VPrintf("scanned %d tokens over %d lines", len(toks), s.lexer.Linenum())
	if err == nil && s.Cache != nil {
		if perr := s.Cache.Put(src, toks); perr != nil {
			VPrintf("token cache write failed: %v", perr)
		}
	}
	return toks, err
}

// Parse scans and parses src, reporting every lexing and syntax error.
// The statements are only safe to run when the error is nil.
func (s *Session) Parse(src string) ([]Stmt, error) {
	toks, scanErr := s.Scan(src)
	if scanErr != nil {
		s.report(scanErr)
		s.hadError = true
	}
	stmts, err := NewParser(toks).Parse()
	if err != nil {
		s.report(err)
		s.hadError = true
	}
	if err != nil {
		return nil, err
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return stmts, nil
}

// Run pushes src through scan, parse, resolve and interpret. Nothing
// executes unless the first three passes came back clean.
func (s *Session) Run(src string) error {
	stmts, err := s.Parse(src)
	if err != nil {
		return err
	}

	locals, err := NewResolver().Resolve(stmts)
	if err != nil {
		s.report(err)
		s.hadError = true
		return err
	}
	s.interp.AddLocals(locals)

	if err := s.interp.Interpret(stmts); err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) {
			fmt.Fprintln(s.Stderr, rerr.Report())
		} else {
			fmt.Fprintln(s.Stderr, err.Error())
		}
		s.hadRuntimeError = true
		return err
	}
	return nil
}

// RunFile reads path whole and runs it once.
func (s *Session) RunFile(path string) error {
	by, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Run(string(by))
}
