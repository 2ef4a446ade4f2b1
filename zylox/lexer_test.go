package zylox

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test001LexerProducesTokensEndingInOneEOF(t *testing.T) {

	cv.Convey(`Given a variable declaration, the lexer should produce its tokens followed by exactly one EOF`, t, func() {

		toks, err := ScanTokens(`var x = 1.5;`)
		panicOn(err)
		cv.So(kindsOf(toks), cv.ShouldResemble, []TokenType{
			TokenVar, TokenIdentifier, TokenEqual, TokenNumber, TokenSemicolon, TokenEOF})
		cv.So(toks[1].Lexeme, cv.ShouldEqual, "x")
		cv.So(toks[3].Literal, cv.ShouldEqual, 1.5)

		toks, err = ScanTokens(``)
		panicOn(err)
		cv.So(kindsOf(toks), cv.ShouldResemble, []TokenType{TokenEOF})
	})
}

func Test002LexerTwoCharOperatorsAndComments(t *testing.T) {

	cv.Convey(`Given operators and a line comment, two-char operators should win and the comment should vanish`, t, func() {

		toks, err := ScanTokens("a != b == c <= d >= e < f > g ! h // all of this is ignored\n/")
		panicOn(err)
		cv.So(kindsOf(toks), cv.ShouldResemble, []TokenType{
			TokenIdentifier, TokenBangEqual, TokenIdentifier, TokenEqualEqual,
			TokenIdentifier, TokenLessEqual, TokenIdentifier, TokenGreaterEqual,
			TokenIdentifier, TokenLess, TokenIdentifier, TokenGreater,
			TokenIdentifier, TokenBang, TokenIdentifier, TokenSlash, TokenEOF})
		cv.So(toks[15].Line, cv.ShouldEqual, 2)
	})
}

func Test003LexerStringsSpanLinesAndKeywordsAreRecognized(t *testing.T) {

	cv.Convey(`Given a string that spans two lines, its literal should keep the newline and later tokens should be on line 2`, t, func() {

		toks, err := ScanTokens("print \"a\nb\" andy and")
		panicOn(err)
		cv.So(kindsOf(toks), cv.ShouldResemble, []TokenType{
			TokenPrint, TokenString, TokenIdentifier, TokenAnd, TokenEOF})
		cv.So(toks[1].Literal, cv.ShouldEqual, "a\nb")
		cv.So(toks[1].Lexeme, cv.ShouldEqual, "\"a\nb\"")
		cv.So(toks[2].Lexeme, cv.ShouldEqual, "andy")
		cv.So(toks[2].Line, cv.ShouldEqual, 2)
	})
}

func Test004LexerReportsEveryErrorAndKeepsScanning(t *testing.T) {

	cv.Convey(`Given an unexpected character and an unterminated string, both should be reported and the good tokens kept`, t, func() {

		toks, err := ScanTokens("var @ x;\n\"open")
		cv.So(err, cv.ShouldNotBeNil)
		list, ok := err.(ErrorList)
		cv.So(ok, cv.ShouldBeTrue)
		cv.So(len(list), cv.ShouldEqual, 2)
		cv.So(list[0].Error(), cv.ShouldEqual, "Line [1] Error : Unexpected character.")
		cv.So(list[1].Error(), cv.ShouldEqual, "Line [2] Error : Unterminated string.")
		cv.So(kindsOf(toks), cv.ShouldResemble, []TokenType{
			TokenVar, TokenIdentifier, TokenSemicolon, TokenEOF})
	})
}

func Test005LexerNumbersNeedDigitsAfterTheDot(t *testing.T) {

	cv.Convey(`Given 12.foo, the number should stop before the dot since no digit follows it`, t, func() {

		toks, err := ScanTokens(`12.foo 3.25`)
		panicOn(err)
		cv.So(kindsOf(toks), cv.ShouldResemble, []TokenType{
			TokenNumber, TokenDot, TokenIdentifier, TokenNumber, TokenEOF})
		cv.So(toks[0].Literal, cv.ShouldEqual, 12.0)
		cv.So(toks[3].Literal, cv.ShouldEqual, 3.25)
		cv.So(toks[0].String(), cv.ShouldEqual, "NUMBER 12 12")
	})
}

func Test006LexerResetKeepsEarlierTokens(t *testing.T) {

	cv.Convey(`Given one lexer reused with Reset, each run should start on line 1 with no errors and leave the previous tokens untouched`, t, func() {

		lex := NewLexer("print 1;\n@")
		first := lex.Run()
		cv.So(lex.Errors(), cv.ShouldNotBeNil)
		cv.So(lex.Linenum(), cv.ShouldEqual, 2)

		lex.Reset("var y;")
		second := lex.Run()
		cv.So(lex.Errors(), cv.ShouldBeNil)
		cv.So(lex.Linenum(), cv.ShouldEqual, 1)
		cv.So(kindsOf(second), cv.ShouldResemble, []TokenType{
			TokenVar, TokenIdentifier, TokenSemicolon, TokenEOF})
		cv.So(kindsOf(first), cv.ShouldResemble, []TokenType{
			TokenPrint, TokenNumber, TokenSemicolon, TokenEOF})
	})
}
