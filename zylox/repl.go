package zylox

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/shurcooL/go-goon"
)

func Version() string {
	return "0.3.0"
}

// Repl reads lines from pr and runs each against the one session, so
// globals and closures survive from line to line. Errors are reported
// and the loop carries on. It returns at end of input or on .quit.
func Repl(sess *Session, pr *Prompter) {
	for {
		line, err := pr.Getline()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(sess.Stderr, err)
			}
			return
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ".") {
			cmd, arg, _ := strings.Cut(trimmed, " ")
			if cmd == ".quit" {
				return
			}
			if processDotCommand(sess, cmd, strings.TrimSpace(arg)) {
				continue
			}
		}

		sess.ResetErrors()
		sess.Run(line)
	}
}

// processDotCommand handles the repl's meta commands. It returns
// false when cmd is not one of them.
func processDotCommand(sess *Session, cmd, arg string) bool {
	out := sess.Stdout
	switch cmd {
	case ".ast":
		node, err := parseFragment(arg)
		if err != nil {
			sess.report(err)
			return true
		}
		fmt.Fprintln(out, PrintAst(node))

	case ".tokens":
		toks, err := ScanTokens(arg)
		if err != nil {
			sess.report(err)
		}
		if err := EncodeTokensJSON(out, toks); err != nil {
			fmt.Fprintln(sess.Stderr, err)
		}
		fmt.Fprintln(out)

	case ".dump":
		processDumpCommand(sess, arg)

	case ".save":
		if arg == "" {
			fmt.Fprintln(sess.Stderr, "provide a file path to save to.")
			return true
		}
		f, err := os.Create(arg)
		if err != nil {
			fmt.Fprintf(sess.Stderr, "error: %s\n", err)
			return true
		}
		defer f.Close()
		n, err := sess.Interpreter().SaveGlobals(f)
		if err != nil {
			fmt.Fprintf(sess.Stderr, "error: %s\n", err)
			return true
		}
		fmt.Fprintf(out, "saved %d globals to %s\n", n, arg)

	case ".load":
		if arg == "" {
			fmt.Fprintln(sess.Stderr, "provide a file path to load from.")
			return true
		}
		f, err := os.Open(arg)
		if err != nil {
			fmt.Fprintf(sess.Stderr, "error: %s\n", err)
			return true
		}
		defer f.Close()
		n, err := sess.Interpreter().LoadGlobals(f)
		if err != nil {
			fmt.Fprintf(sess.Stderr, "error after %d globals: %s\n", n, err)
			return true
		}
		fmt.Fprintf(out, "loaded %d globals from %s\n", n, arg)

	case ".verb":
		Verbose = !Verbose
		fmt.Fprintf(out, "verbose: %v.\n", Verbose)

	default:
		return false
	}
	return true
}

// parseFragment accepts either whole statements or a bare expression,
// so `.ast 1 + 2` works without a trailing semicolon.
func parseFragment(src string) (interface{}, error) {
	toks, err := ScanTokens(src)
	if err != nil {
		return nil, err
	}
	stmts, err := NewParser(toks).Parse()
	if err == nil {
		return stmts, nil
	}
	if e, eerr := NewParser(toks).ParseExpression(); eerr == nil {
		return e, nil
	}
	return nil, err
}

func processDumpCommand(sess *Session, name string) {
	globals := sess.Interpreter().Globals()
	if name == "" {
		fmt.Fprint(sess.Stdout, globals.Show("global"))
		return
	}
	v, ok := globals.Lookup(name)
	if !ok {
		fmt.Fprintf(sess.Stderr, "%q not found\n", name)
		return
	}
	switch x := v.(type) {
	case *LoxFunction:
		// the closure reaches back to globals, so show only the declaration.
		fmt.Fprint(sess.Stdout, goon.Sdump(x.Decl))
	default:
		fmt.Fprint(sess.Stdout, goon.Sdump(v))
	}
}

// RunSource runs src once under cfg's dump switches and returns
// the process exit status.
func RunSource(sess *Session, cfg *ZyloxConfig, src string) int {
	switch {
	case cfg.DumpTokens:
		toks, err := sess.Scan(src)
		if err != nil {
			sess.report(err)
			return ExitSyntaxError
		}
		if err := EncodeTokensJSON(sess.Stdout, toks); err != nil {
			fmt.Fprintln(sess.Stderr, err)
			return ExitSyntaxError
		}
		fmt.Fprintln(sess.Stdout)
		return ExitOK

	case cfg.DumpAst:
		stmts, err := sess.Parse(src)
		if err != nil {
			return ExitSyntaxError
		}
		fmt.Fprintln(sess.Stdout, PrintAst(stmts))
		return ExitOK

	case cfg.DumpJSON:
		stmts, err := sess.Parse(src)
		if err != nil {
			return ExitSyntaxError
		}
		if err := EncodeAstJSON(sess.Stdout, stmts); err != nil {
			fmt.Fprintln(sess.Stderr, err)
			return ExitSyntaxError
		}
		fmt.Fprintln(sess.Stdout)
		return ExitOK
	}

	sess.Run(src)
	return sess.ExitCode()
}

// ReplMain is like main() for a standalone zylox, kept in the library.
// It returns the process exit status.
func ReplMain(cfg *ZyloxConfig) int {
	Verbose = cfg.Trace

	if cfg.CpuProfile != "" {
		f, err := os.Create(cfg.CpuProfile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}
	if cfg.MemProfile != "" {
		defer writeMemProfile(cfg.MemProfile)
	}

	sess := NewSession(os.Stdout, os.Stderr)
	if cfg.CacheDir != "" {
		cache, err := NewTokenCache(cfg.CacheDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		sess.Cache = cache
	}

	if cfg.Command != "" {
		return RunSource(sess, cfg, cfg.Command)
	}

	if path := cfg.ScriptPath(); path != "" {
		by, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return RunSource(sess, cfg, string(by))
	}

	if !cfg.Quiet {
		fmt.Printf("zylox version %s\n", Version())
		fmt.Printf("press tab to get completion suggestions. Ctrl-d to exit.\n")
	}
	var pr *Prompter
	if cfg.NoLiner {
		pr = NewPlainPrompter(cfg.Prompt, os.Stdin, os.Stdout)
	} else {
		pr = NewPrompter(cfg.Prompt)
	}
	defer pr.Close()

	Repl(sess, pr)
	return ExitOK
}

func writeMemProfile(fn string) {
	f, err := os.Create(fn)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer f.Close()

	err = pprof.Lookup("heap").WriteTo(f, 1)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
