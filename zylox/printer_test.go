package zylox

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test600PrintAstForms(t *testing.T) {

	cv.Convey(`Given each kind of literal and an empty loop body, PrintAst should render them as s-expressions`, t, func() {

		stmts, err := parseString(`var s = "two words"; print nil; print false; while (true) {} return;`)
		panicOn(err)
		cv.So(PrintAst(stmts), cv.ShouldEqual,
			"(var s \"two words\")\n(print nil)\n(print false)\n(while true (block))\n(return)")
	})

	cv.Convey(`Given a single node rather than a program, PrintAst should render just that node`, t, func() {

		stmts, err := parseString(`a = b or c;`)
		panicOn(err)
		cv.So(PrintAst(stmts[0]), cv.ShouldEqual, "(; (= a (or b c)))")
		cv.So(PrintAst(stmts[0].(*ExpressionStmt).Expr), cv.ShouldEqual, "(= a (or b c))")
		cv.So(PrintAst(42), cv.ShouldEqual, "<int>")
	})
}

func Test601ValueDisplayAndEquality(t *testing.T) {

	cv.Convey(`Given numbers, strings and nil, Stringify should give what print writes`, t, func() {

		cv.So(Stringify(LoxNumber(3)), cv.ShouldEqual, "3")
		cv.So(Stringify(LoxNumber(-0.5)), cv.ShouldEqual, "-0.5")
		cv.So(Stringify(LoxNumber(1e20)), cv.ShouldEqual, "100000000000000000000")
		cv.So(Stringify(LoxNumber(1e21)), cv.ShouldEqual, "1E21")
		cv.So(Stringify(LoxNumber(-2.5e24)), cv.ShouldEqual, "-2.5E24")
		cv.So(Stringify(LoxNumber(1.5e-8)), cv.ShouldEqual, "1.5E-8")
		cv.So(Stringify(LoxNumber(0.0001)), cv.ShouldEqual, "0.0001")
		cv.So(Stringify(LoxNumber(0)), cv.ShouldEqual, "0")
		cv.So(Stringify(LoxString("s")), cv.ShouldEqual, "s")
		cv.So(Stringify(Nil), cv.ShouldEqual, "nil")
		cv.So(Stringify(nil), cv.ShouldEqual, "nil")
	})

	cv.Convey(`Given values of different types, ValuesEqual should never coerce`, t, func() {

		cv.So(ValuesEqual(Nil, Nil), cv.ShouldBeTrue)
		cv.So(ValuesEqual(Nil, LoxBool(false)), cv.ShouldBeFalse)
		cv.So(ValuesEqual(LoxNumber(0), LoxBool(false)), cv.ShouldBeFalse)
		cv.So(ValuesEqual(LoxNumber(1), LoxString("1")), cv.ShouldBeFalse)
		cv.So(ValuesEqual(LoxString("a"), LoxString("a")), cv.ShouldBeTrue)

		c := &LoxClass{Name: "C"}
		cv.So(ValuesEqual(c, c), cv.ShouldBeTrue)
		cv.So(ValuesEqual(c, &LoxClass{Name: "C"}), cv.ShouldBeFalse)
		cv.So(IsTruthy(LoxNumber(0)), cv.ShouldBeTrue)
		cv.So(IsTruthy(Nil), cv.ShouldBeFalse)
	})
}
