package zylox

import (
	"bytes"
	"testing"

	cv "github.com/glycerine/goconvey/convey"
)

func Test400ArithmeticAndConcatenation(t *testing.T) {

	cv.Convey(`Given + on numbers and strings, sums and concatenations should work in both orders`, t, func() {

		out, errout, sess := runLox(`
print 1 + 2;
print "a" + 1;
print 1 + "a";
print "con" + "cat";
print 7 / 2;
print 3.0;
print -(2 * 3) - 1;
print 0.1 + 0.2;
print 1000000000000000000000 * 1000;`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(sess.ExitCode(), cv.ShouldEqual, ExitOK)
		cv.So(out, cv.ShouldEqual, "3\na1\n1a\nconcat\n3.5\n3\n-7\n0.30000000000000004\n1E24\n")
	})
}

func Test401ArithmeticRuntimeErrors(t *testing.T) {

	cv.Convey(`Given division by zero, a runtime error should be reported rather than printing Infinity`, t, func() {

		out, errout, sess := runLox("print 1;\nprint 1 / 0;\nprint 2;")
		cv.So(out, cv.ShouldEqual, "1\n")
		cv.So(errout, cv.ShouldEqual, "Division by zero.\n[Line 2]\n")
		cv.So(sess.ExitCode(), cv.ShouldEqual, ExitRuntimeError)
	})

	cv.Convey(`Given operands of the wrong type, each operator should name what it needs`, t, func() {

		_, errout, _ := runLox(`print -"a";`)
		cv.So(errout, cv.ShouldEqual, "Operand must be a number.\n[Line 1]\n")

		_, errout, _ = runLox(`print "a" - 1;`)
		cv.So(errout, cv.ShouldEqual, "Operands must be numbers.\n[Line 1]\n")

		_, errout, _ = runLox(`print 1 < "b";`)
		cv.So(errout, cv.ShouldEqual, "Operands must be numbers.\n[Line 1]\n")

		_, errout, _ = runLox(`print true + 1;`)
		cv.So(errout, cv.ShouldEqual, "Operands must be two numbers or two strings.\n[Line 1]\n")
	})
}

func Test402EqualityAndTruthiness(t *testing.T) {

	cv.Convey(`Given equality across types, nil should equal only nil and nothing should be coerced`, t, func() {

		out, errout, _ := runLox(`
print nil == nil;
print nil == false;
print 0 == false;
print "1" == 1;
print "a" == "a";
print 2 != 3;
print !nil;
print !0;
print !"";`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "true\nfalse\nfalse\nfalse\ntrue\ntrue\ntrue\nfalse\nfalse\n")
	})

	cv.Convey(`Given and/or, they should yield an operand and skip the right side when the left decides`, t, func() {

		out, errout, _ := runLox(`
print nil or "yes";
print false and 1;
print 1 and 2;
print "first" or undefinedName;
print nil and undefinedName;`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "yes\nfalse\n2\nfirst\nnil\n")
	})
}

func Test403ScopingAndLoops(t *testing.T) {

	cv.Convey(`Given a shadowing block, the inner binding should print first and the outer should be untouched after`, t, func() {

		out, errout, _ := runLox(`
var a = "outer";
{
  var a = "inner";
  print a;
}
print a;`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "inner\nouter\n")
	})

	cv.Convey(`Given a for loop, it should print 0 1 2`, t, func() {

		out, _, _ := runLox(`for (var i = 0; i < 3; i = i + 1) print i;`)
		cv.So(out, cv.ShouldEqual, "0\n1\n2\n")
	})

	cv.Convey(`Given if/else and while, control should follow the conditions`, t, func() {

		out, _, _ := runLox(`
var n = 0;
while (n < 5) {
  if (n == 2) print "two"; else print n;
  n = n + 1;
}`)
		cv.So(out, cv.ShouldEqual, "0\n1\ntwo\n3\n4\n")
	})

	cv.Convey(`Given a closure over a global shadowed later in its block, it should keep reading the global`, t, func() {

		out, errout, _ := runLox(`
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "block";
  show();
}`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "global\nglobal\n")
	})
}

func Test404FunctionsAndClosures(t *testing.T) {

	cv.Convey(`Given two counters from one factory, each should keep its own state`, t, func() {

		out, errout, _ := runLox(`
fun makeCounter() {
  var i = 0;
  fun count() {
    i = i + 1;
    return i;
  }
  return count;
}
var c1 = makeCounter();
var c2 = makeCounter();
print c1();
print c1();
print c2();
print c1();`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "1\n2\n1\n3\n")
	})

	cv.Convey(`Given two closures made in the same scope, they should share its bindings`, t, func() {

		out, errout, _ := runLox(`
var get;
var set;
fun pair() {
  var v = "before";
  fun g() { return v; }
  fun s(x) { v = x; }
  get = g;
  set = s;
}
pair();
set("after");
print get();`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "after\n")
	})

	cv.Convey(`Given recursion and a return from inside a loop, the right value should come back`, t, func() {

		out, errout, _ := runLox(`
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 1) + fib(n - 2);
}
print fib(10);
fun firstOver(limit) {
  var i = 0;
  while (true) {
    if (i * i > limit) return i;
    i = i + 1;
  }
}
print firstOver(50);
fun noReturn() {}
print noReturn();`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "55\n8\nnil\n")
	})

	cv.Convey(`Given functions, natives and classes, print should use their display forms`, t, func() {

		out, errout, _ := runLox(`
fun f() {}
class Point;
print f;
print clock;
print Point;
print Point();`)
		cv.So(errout, cv.ShouldEqual, "")
		cv.So(out, cv.ShouldEqual, "<fn f>\n<native fn>\nPoint\nPoint instance\n")
	})

	cv.Convey(`Given clock(), it should return a positive number`, t, func() {

		out, _, _ := runLox(`print clock() > 0;`)
		cv.So(out, cv.ShouldEqual, "true\n")
	})
}

func Test405CallErrors(t *testing.T) {

	cv.Convey(`Given a call on a non-callable, a runtime error should name the call site's line`, t, func() {

		_, errout, sess := runLox("var x = 1;\n\nx();")
		cv.So(errout, cv.ShouldEqual, "Can only call functions and classes.\n[Line 3]\n")
		cv.So(sess.ExitCode(), cv.ShouldEqual, ExitRuntimeError)
	})

	cv.Convey(`Given the wrong number of arguments, the error should name expected and actual counts`, t, func() {

		_, errout, _ := runLox(`fun f(a) {} f(1, 2);`)
		cv.So(errout, cv.ShouldEqual, "Expected 1 arguments but got 2.\n[Line 1]\n")

		_, errout, _ = runLox(`clock(1);`)
		cv.So(errout, cv.ShouldEqual, "Expected 0 arguments but got 1.\n[Line 1]\n")
	})

	cv.Convey(`Given unbounded recursion, a stack overflow should be a runtime error`, t, func() {

		_, errout, sess := runLox(`fun r() { r(); } r();`)
		cv.So(errout, cv.ShouldEqual, "Stack overflow.\n[Line 1]\n")
		cv.So(sess.ExitCode(), cv.ShouldEqual, ExitRuntimeError)
	})

	cv.Convey(`Given a read of an unknown global, it should be an undefined-variable error, not nil`, t, func() {

		_, errout, _ := runLox(`print nope;`)
		cv.So(errout, cv.ShouldEqual, "Undefined variable 'nope'.\n[Line 1]\n")
	})
}

func Test406InterpreterRestoresEnvironmentAfterErrors(t *testing.T) {

	cv.Convey(`Given a runtime error deep in a block, the next run should start back at the global frame`, t, func() {

		var out, errout = new(bytes.Buffer), new(bytes.Buffer)
		sess := NewSession(out, errout)
		sess.Run(`var g = "kept"; { var a = 1; fun f() { print 1 / 0; } f(); }`)
		cv.So(sess.HadRuntimeError(), cv.ShouldBeTrue)
		cv.So(sess.Interpreter().env, cv.ShouldEqual, sess.Interpreter().Globals())

		sess.ResetErrors()
		sess.Run(`print g; print a;`)
		cv.So(out.String(), cv.ShouldEqual, "kept\n")
		cv.So(errout.String(), cv.ShouldEqual, "Division by zero.\n[Line 1]\nUndefined variable 'a'.\n[Line 1]\n")
	})
}
