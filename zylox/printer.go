package zylox

import (
	"fmt"
	"strconv"
	"strings"
)

// PrintAst renders an Expr, a Stmt or a []Stmt as s-expressions.
// It is a debugging aid for the -ast flag and the repl.
func PrintAst(node interface{}) string {
	switch n := node.(type) {
	case []Stmt:
		parts := make([]string, len(n))
		for i, s := range n {
			parts[i] = PrintAst(s)
		}
		return strings.Join(parts, "\n")
	case Stmt:
		return printStmt(n)
	case Expr:
		return printExpr(n)
	}
	return fmt.Sprintf("<%T>", node)
}

func parenthesize(name string, parts ...string) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, p := range parts {
		b.WriteString(" ")
		b.WriteString(p)
	}
	b.WriteString(")")
	return b.String()
}

func printExpr(e Expr) string {
	switch e := e.(type) {
	case *Literal:
		if s, ok := e.Value.(LoxString); ok {
			return strconv.Quote(string(s))
		}
		return Stringify(e.Value)
	case *Grouping:
		return parenthesize("group", printExpr(e.Inner))
	case *Unary:
		return parenthesize(e.Op.Lexeme, printExpr(e.Operand))
	case *Binary:
		return parenthesize(e.Op.Lexeme, printExpr(e.Left), printExpr(e.Right))
	case *Logical:
		return parenthesize(e.Op.Lexeme, printExpr(e.Left), printExpr(e.Right))
	case *Variable:
		return e.Name.Lexeme
	case *Assign:
		return parenthesize("=", e.Name.Lexeme, printExpr(e.Value))
	case *Call:
		parts := []string{printExpr(e.Callee)}
		for _, a := range e.Args {
			parts = append(parts, printExpr(a))
		}
		return parenthesize("call", parts...)
	}
	return fmt.Sprintf("<%T>", e)
}

func printStmt(s Stmt) string {
	switch s := s.(type) {
	case *ExpressionStmt:
		return parenthesize(";", printExpr(s.Expr))
	case *PrintStmt:
		return parenthesize("print", printExpr(s.Expr))
	case *VarStmt:
		if s.Init == nil {
			return parenthesize("var", s.Name.Lexeme)
		}
		return parenthesize("var", s.Name.Lexeme, printExpr(s.Init))
	case *BlockStmt:
		parts := make([]string, len(s.Stmts))
		for i, st := range s.Stmts {
			parts[i] = printStmt(st)
		}
		return parenthesize("block", parts...)
	case *IfStmt:
		if s.Else == nil {
			return parenthesize("if", printExpr(s.Cond), printStmt(s.Then))
		}
		return parenthesize("if-else", printExpr(s.Cond), printStmt(s.Then), printStmt(s.Else))
	case *WhileStmt:
		return parenthesize("while", printExpr(s.Cond), printStmt(s.Body))
	case *FunctionStmt:
		params := make([]string, len(s.Params))
		for i, p := range s.Params {
			params[i] = p.Lexeme
		}
		parts := []string{s.Name.Lexeme, "(" + strings.Join(params, " ") + ")"}
		for _, st := range s.Body {
			parts = append(parts, printStmt(st))
		}
		return parenthesize("fun", parts...)
	case *ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return parenthesize("return", printExpr(s.Value))
	case *ClassStmt:
		return parenthesize("class", s.Name.Lexeme)
	}
	return fmt.Sprintf("<%T>", s)
}
