package zylox

import (
	"bytes"
)

func panicOn(err error) {
	if err != nil {
		panic(err)
	}
}

// runLox runs src in a fresh session and returns what it printed.
func runLox(src string) (stdout string, stderr string, sess *Session) {
	var out, errout bytes.Buffer
	sess = NewSession(&out, &errout)
	sess.Run(src)
	return out.String(), errout.String(), sess
}

func kindsOf(toks []Token) []TokenType {
	kinds := make([]TokenType, len(toks))
	for i, t := range toks {
		kinds[i] = t.Kind
	}
	return kinds
}
