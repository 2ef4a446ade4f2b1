package zylox

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/ugorji/go/codec"
)

type codecHelper struct {
	initialized bool
	jh          codec.JsonHandle
}

func (m *codecHelper) init() {
	if m.initialized {
		return
	}
	m.jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	m.jh.SignedInteger = true
	m.jh.Canonical = true // sort maps before writing them
	m.jh.Indent = 2
	m.initialized = true
}

var jsonHelper codecHelper

func init() {
	jsonHelper.init()
}

type tokenRecord struct {
	Kind    string      `codec:"kind"`
	Lexeme  string      `codec:"lexeme"`
	Literal interface{} `codec:"literal,omitempty"`
	Line    int         `codec:"line"`
}

// EncodeTokensJSON writes the token stream as a JSON array, one
// object per token.
func EncodeTokensJSON(w io.Writer, toks []Token) error {
	recs := make([]tokenRecord, len(toks))
	for i, t := range toks {
		recs[i] = tokenRecord{
			Kind:    t.Kind.String(),
			Lexeme:  t.Lexeme,
			Literal: t.Literal,
			Line:    t.Line,
		}
	}
	enc := codec.NewEncoder(w, &jsonHelper.jh)
	return enc.Encode(recs)
}

// EncodeAstJSON writes stmts as a JSON tree built by AstToGo.
func EncodeAstJSON(w io.Writer, stmts []Stmt) error {
	tree := make([]interface{}, len(stmts))
	for i, s := range stmts {
		tree[i] = AstToGo(s)
	}
	enc := codec.NewEncoder(w, &jsonHelper.jh)
	return enc.Encode(tree)
}

// JsonToGo decodes JSON produced by the encoders above into
// plain maps and slices.
func JsonToGo(json []byte) (interface{}, error) {
	var iface interface{}
	dec := codec.NewDecoderBytes(json, &jsonHelper.jh)
	if err := dec.Decode(&iface); err != nil {
		return nil, err
	}
	return iface, nil
}

// GoToJson encodes any go value with the canonical handle.
func GoToJson(iface interface{}) ([]byte, error) {
	var w bytes.Buffer
	enc := codec.NewEncoder(&w, &jsonHelper.jh)
	if err := enc.Encode(iface); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// AstToGo converts a node into nested map[string]interface{}, keyed
// by field name with the node kind under "node".
func AstToGo(node interface{}) interface{} {
	switch n := node.(type) {
	case nil:
		return nil
	case *Literal:
		m := map[string]interface{}{"node": "Literal", "type": n.Value.TypeName()}
		switch v := n.Value.(type) {
		case LoxNumber:
			m["value"] = float64(v)
		case LoxString:
			m["value"] = string(v)
		case LoxBool:
			m["value"] = bool(v)
		default:
			m["value"] = nil
		}
		return m
	case *Grouping:
		return map[string]interface{}{"node": "Grouping", "inner": AstToGo(n.Inner)}
	case *Unary:
		return map[string]interface{}{"node": "Unary", "op": n.Op.Lexeme, "operand": AstToGo(n.Operand)}
	case *Binary:
		return map[string]interface{}{"node": "Binary", "op": n.Op.Lexeme,
			"left": AstToGo(n.Left), "right": AstToGo(n.Right)}
	case *Logical:
		return map[string]interface{}{"node": "Logical", "op": n.Op.Lexeme,
			"left": AstToGo(n.Left), "right": AstToGo(n.Right)}
	case *Variable:
		return map[string]interface{}{"node": "Variable", "name": n.Name.Lexeme, "line": n.Name.Line}
	case *Assign:
		return map[string]interface{}{"node": "Assign", "name": n.Name.Lexeme, "value": AstToGo(n.Value)}
	case *Call:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = AstToGo(a)
		}
		return map[string]interface{}{"node": "Call", "callee": AstToGo(n.Callee), "args": args}
	case *ExpressionStmt:
		return map[string]interface{}{"node": "Expression", "expr": AstToGo(n.Expr)}
	case *PrintStmt:
		return map[string]interface{}{"node": "Print", "expr": AstToGo(n.Expr)}
	case *VarStmt:
		var init interface{}
		if n.Init != nil {
			init = AstToGo(n.Init)
		}
		return map[string]interface{}{"node": "Var", "name": n.Name.Lexeme, "init": init}
	case *BlockStmt:
		return map[string]interface{}{"node": "Block", "stmts": stmtsToGo(n.Stmts)}
	case *IfStmt:
		var els interface{}
		if n.Else != nil {
			els = AstToGo(n.Else)
		}
		return map[string]interface{}{"node": "If", "cond": AstToGo(n.Cond),
			"then": AstToGo(n.Then), "else": els}
	case *WhileStmt:
		return map[string]interface{}{"node": "While", "cond": AstToGo(n.Cond), "body": AstToGo(n.Body)}
	case *FunctionStmt:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = p.Lexeme
		}
		return map[string]interface{}{"node": "Function", "name": n.Name.Lexeme,
			"params": params, "body": stmtsToGo(n.Body)}
	case *ReturnStmt:
		var val interface{}
		if n.Value != nil {
			val = AstToGo(n.Value)
		}
		return map[string]interface{}{"node": "Return", "value": val, "line": n.Keyword.Line}
	case *ClassStmt:
		return map[string]interface{}{"node": "Class", "name": n.Name.Lexeme}
	}
	return fmt.Sprintf("<%T>", node)
}

func stmtsToGo(stmts []Stmt) []interface{} {
	out := make([]interface{}, len(stmts))
	for i, s := range stmts {
		out[i] = AstToGo(s)
	}
	return out
}
