package wrapper

import (
	"regexp"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
)

var (
	jsModuleExports = regexp.MustCompile(`^\s*module\.exports(\.\w+)?\s*=`)
	jsExportDefault = regexp.MustCompile(`^\s*export\s+default\s+[\w$]+\s*;?\s*$`)
	jsExportPrefix  = regexp.MustCompile(`(?m)^(\s*)export\s+(default\s+)?`)
	jsSolution      = regexp.MustCompile(`(?m)\bclass\s+Solution\b`)
)

const javascriptHelpers = `function _judge_eq(actual, expected) {
  if (Array.isArray(expected)) {
    if (!Array.isArray(actual) && !ArrayBuffer.isView(actual)) return false;
    if (actual.length !== expected.length) return false;
    for (let i = 0; i < expected.length; i++) {
      if (!_judge_eq(actual[i], expected[i])) return false;
    }
    return true;
  }
  return actual === expected;
}

function _judge_fmt(value) {
  if (ArrayBuffer.isView(value)) value = Array.from(value);
  const text = JSON.stringify(value === undefined ? null : value);
  return (text === undefined ? "null" : text).split("|").join("\\u007c");
}
`

type javascriptDialect struct{}

func (javascriptDialect) Sanitize(code string) Source {
	code = dropStatements(code, jsModuleExports)
	code = dropLines(code, jsExportDefault)
	code = jsExportPrefix.ReplaceAllString(code, "$1")
	return Source{Body: code}
}

func (javascriptDialect) DeclaresSolution(code string) bool {
	return jsSolution.MatchString(code)
}

func (javascriptDialect) TypeName(t Type) string {
	switch t.Kind {
	case TypeBool:
		return "boolean"
	case TypeInt, TypeLong, TypeFloat:
		return "number"
	case TypeString, TypeChar:
		return "string"
	case TypeArray:
		return "Array"
	case TypeObject:
		return "object"
	}
	return "null"
}

func (d javascriptDialect) Literal(v domain.Value, t Type) string {
	switch v.Kind() {
	case domain.KindNull:
		return "null"
	case domain.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case domain.KindInt, domain.KindFloat:
		return numberLiteral(v, t)
	case domain.KindString:
		return d.Quote(v.AsString())
	case domain.KindArray:
		elem := InferType(v)
		if t.Kind == TypeArray {
			elem = t
		}
		return "[" + joinLiterals(d, v, *elem.Elem) + "]"
	case domain.KindObject:
		parts := make([]string, v.NumFields())
		for i := range parts {
			f := v.FieldAt(i)
			parts[i] = d.Quote(f.Name) + ": " + d.Literal(f.Value, InferType(f.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "null"
}

// Quote emits JSON string syntax, which is valid in strict and sloppy mode
func (javascriptDialect) Quote(s string) string {
	return domain.QuoteJSON(s)
}

func (javascriptDialect) Prologue(w *codeWriter, p *Program) {
	if p.Source.Body != "" {
		w.raw(p.Source.Body)
	}
	w.line("")
	w.raw(javascriptHelpers)
	w.line("")
	w.line("function _judge_main() {")
	w.in()
	w.line("let _judge_passed = 0;")
	w.line("let _judge_fail = null;")
}

func (javascriptDialect) BeginTest(w *codeWriter, _ *Program, tc *TestCall) {
	w.linef("{ // test %d", tc.Index)
	w.in()
}

func (javascriptDialect) Declare(w *codeWriter, arg Argument) {
	w.linef("let %s = %s;", arg.Name, arg.Literal)
}

func (javascriptDialect) Invoke(w *codeWriter, p *Program, tc *TestCall) {
	target := p.Function
	if p.Solution {
		target = "new Solution()." + p.Function
	}
	if p.Void {
		w.linef("%s(%s);", target, tc.CallArgs())
		w.linef("const _judge_actual = %s;", tc.Args[0].Name)
		return
	}
	w.linef("const _judge_actual = %s(%s);", target, tc.CallArgs())
}

func (javascriptDialect) Check(w *codeWriter, p *Program, tc *TestCall) {
	if tc.Canonical {
		w.linef("const _judge_ok = _judge_fmt(_judge_actual) === %s;", tc.ExpectedText)
	} else {
		w.linef("const _judge_ok = _judge_eq(_judge_actual, %s);", tc.ExpectedLiteral)
	}
	w.line("const _judge_got = _judge_fmt(_judge_actual);")
	w.linef(`console.log("\nTEST|%d|" + (_judge_ok ? "PASS" : "FAIL") + "|" + %s + "|" + %s + "|" + _judge_got);`,
		tc.Index, tc.InputText, tc.ExpectedText)
	w.line("if (_judge_ok) {")
	w.in()
	w.line("_judge_passed++;")
	w.out()
	if p.StopOnFailure() {
		w.line("} else {")
		w.in()
		w.linef(`console.log("\nFAIL|%d|" + %s + "|" + _judge_got);`, tc.Index, tc.ExpectedText)
		w.line("return;")
		w.out()
		w.line("}")
		return
	}
	w.line("} else if (_judge_fail === null) {")
	w.in()
	w.linef(`_judge_fail = "FAIL|%d|" + %s + "|" + _judge_got;`, tc.Index, tc.ExpectedText)
	w.out()
	w.line("}")
}

func (javascriptDialect) EndTest(w *codeWriter, _ *Program, _ *TestCall) {
	w.out()
	w.line("}")
}

func (javascriptDialect) Epilogue(w *codeWriter, _ *Program) {
	w.line("if (_judge_fail !== null) {")
	w.in()
	w.line(`console.log("\n" + _judge_fail);`)
	w.out()
	w.line("}")
	w.out()
	w.line("}")
	w.line("")
	w.line("_judge_main();")
}
