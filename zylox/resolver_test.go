package zylox

import (
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func resolveString(src string) ([]Stmt, map[Expr]int, error) {
	stmts, err := parseString(src)
	panicOn(err)
	locals, err := NewResolver().Resolve(stmts)
	return stmts, locals, err
}

func Test200ResolverHopDistances(t *testing.T) {

	cv.Convey(`Given nested blocks, a read should record how many scopes out its binding lives`, t, func() {

		stmts, locals, err := resolveString(`
var g = 0;
{
  var a = 1;
  {
    var b = 2;
    print a;
    print b;
    print g;
  }
}`)
		panicOn(err)
		inner := stmts[1].(*BlockStmt).Stmts[1].(*BlockStmt).Stmts
		readA := inner[1].(*PrintStmt).Expr
		readB := inner[2].(*PrintStmt).Expr
		readG := inner[3].(*PrintStmt).Expr

		cv.So(locals[readA], cv.ShouldEqual, 1)
		cv.So(locals[readB], cv.ShouldEqual, 0)
		_, found := locals[readG]
		cv.So(found, cv.ShouldBeFalse)
	})

	cv.Convey(`Given a closure, the captured variable should be one scope out and the parameter zero`, t, func() {

		stmts, locals, err := resolveString(`
fun makeCounter(start) {
  var count = start;
  fun counter() {
    count = count + 1;
    return count;
  }
  return counter;
}`)
		panicOn(err)
		outer := stmts[0].(*FunctionStmt)
		initRead := outer.Body[0].(*VarStmt).Init
		counter := outer.Body[1].(*FunctionStmt)
		assign := counter.Body[0].(*ExpressionStmt).Expr.(*Assign)
		ret := counter.Body[1].(*ReturnStmt).Value

		cv.So(locals[initRead], cv.ShouldEqual, 0)
		cv.So(locals[assign], cv.ShouldEqual, 1)
		cv.So(locals[assign.Value.(*Binary).Left], cv.ShouldEqual, 1)
		cv.So(locals[ret], cv.ShouldEqual, 1)
		cv.So(locals[outer.Body[2].(*ReturnStmt).Value], cv.ShouldEqual, 0)
	})
}

func Test201ResolverStaticErrors(t *testing.T) {

	cv.Convey(`Given var a = a; inside a block, the resolver should report reading a local in its own initializer`, t, func() {

		_, _, err := resolveString(`{ var a = a; }`)
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldEqual,
			"Line [1] Error at 'a': Cannot read local variable in its own initializer.")
	})

	cv.Convey(`Given the same name declared twice in one block, the resolver should report it`, t, func() {

		_, _, err := resolveString("{\n var a = 1;\n var a = 2;\n}")
		cv.So(err, cv.ShouldNotBeNil)
		cv.So(err.Error(), cv.ShouldEqual,
			"Line [3] Error at 'a': Variable with this name already declared in this scope.")
	})

	cv.Convey(`Given a redeclared global, that is fine`, t, func() {

		_, _, err := resolveString(`var a = 1; var a = 2; var b = b;`)
		cv.So(err, cv.ShouldBeNil)
	})

	cv.Convey(`Given return outside any function, the resolver should report it, and report every error it finds`, t, func() {

		_, _, err := resolveString(`return 1; fun f() { return 2; } { var x; var x; }`)
		cv.So(err, cv.ShouldNotBeNil)
		list := err.(ErrorList)
		cv.So(len(list), cv.ShouldEqual, 2)
		cv.So(list[0].Error(), cv.ShouldEqual, "Line [1] Error at 'return': Cannot return from top-level code.")
	})
}
