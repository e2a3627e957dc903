package wrapper

import (
	"regexp"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
)

var (
	pythonMainGuard = regexp.MustCompile(`^if\s+__name__\s*==\s*['"]__main__['"]\s*:`)
	pythonSolution  = regexp.MustCompile(`(?m)^class\s+Solution\b`)
)

const pythonHelpers = `def _judge_eq(actual, expected):
    if isinstance(expected, bool) or isinstance(actual, bool):
        return isinstance(actual, bool) and isinstance(expected, bool) and actual == expected
    if isinstance(expected, (list, tuple)):
        if not isinstance(actual, (list, tuple)) or len(actual) != len(expected):
            return False
        return all(_judge_eq(a, e) for a, e in zip(actual, expected))
    return actual == expected


def _judge_fmt(value):
    text = _judge_json.dumps(value, separators=(",", ":"), ensure_ascii=False, default=str)
    return text.replace("|", "\\u007c")
`

type pythonDialect struct{}

func (pythonDialect) Sanitize(code string) Source {
	return Source{Body: dropIndentedBlock(code, pythonMainGuard)}
}

func (pythonDialect) DeclaresSolution(code string) bool {
	return pythonSolution.MatchString(code)
}

func (pythonDialect) TypeName(t Type) string {
	switch t.Kind {
	case TypeBool:
		return "bool"
	case TypeInt, TypeLong:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString, TypeChar:
		return "str"
	case TypeArray:
		return "list"
	case TypeObject:
		return "dict"
	}
	return "None"
}

func (d pythonDialect) Literal(v domain.Value, t Type) string {
	switch v.Kind() {
	case domain.KindNull:
		return "None"
	case domain.KindBool:
		if v.AsBool() {
			return "True"
		}
		return "False"
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
	return "None"
}

func (pythonDialect) Quote(s string) string {
	return quoteC(s, '"')
}

func (pythonDialect) Prologue(w *codeWriter, p *Program) {
	w.line("import json as _judge_json")
	w.line("")
	if p.Source.Body != "" {
		w.raw(p.Source.Body)
	}
	w.line("")
	w.line("")
	w.raw(pythonHelpers)
	w.line("")
	w.line("")
	w.line("def _judge_main():")
	w.in()
	w.line("_judge_passed = 0")
	w.line("_judge_fail = None")
}

func (pythonDialect) BeginTest(w *codeWriter, _ *Program, tc *TestCall) {
	w.linef("# test %d", tc.Index)
}

func (pythonDialect) Declare(w *codeWriter, arg Argument) {
	w.linef("%s = %s", arg.Name, arg.Literal)
}

func (pythonDialect) Invoke(w *codeWriter, p *Program, tc *TestCall) {
	target := p.Function
	if p.Solution {
		target = "Solution()." + p.Function
	}
	if p.Void {
		w.linef("%s(%s)", target, tc.CallArgs())
		w.linef("_judge_actual = %s", tc.Args[0].Name)
		return
	}
	w.linef("_judge_actual = %s(%s)", target, tc.CallArgs())
}

func (pythonDialect) Check(w *codeWriter, p *Program, tc *TestCall) {
	if tc.Canonical {
		w.linef("_judge_ok = _judge_fmt(_judge_actual) == %s", tc.ExpectedText)
	} else {
		w.linef("_judge_ok = _judge_eq(_judge_actual, %s)", tc.ExpectedLiteral)
	}
	w.line("_judge_got = _judge_fmt(_judge_actual)")
	w.linef(`print("\nTEST|%d|" + ("PASS" if _judge_ok else "FAIL") + "|" + %s + "|" + %s + "|" + _judge_got)`,
		tc.Index, tc.InputText, tc.ExpectedText)
	w.line("if _judge_ok:")
	w.in()
	w.line("_judge_passed += 1")
	w.out()
	if p.StopOnFailure() {
		w.line("else:")
		w.in()
		w.linef(`print("\nFAIL|%d|" + %s + "|" + _judge_got)`, tc.Index, tc.ExpectedText)
		w.line("return")
		w.out()
		return
	}
	w.line("elif _judge_fail is None:")
	w.in()
	w.linef(`_judge_fail = "FAIL|%d|" + %s + "|" + _judge_got`, tc.Index, tc.ExpectedText)
	w.out()
}

func (pythonDialect) EndTest(*codeWriter, *Program, *TestCall) {}

func (pythonDialect) Epilogue(w *codeWriter, _ *Program) {
	w.line("if _judge_fail is not None:")
	w.in()
	w.line(`print("\n" + _judge_fail)`)
	w.out()
	w.out()
	w.line("")
	w.line("")
	w.line("_judge_main()")
}
