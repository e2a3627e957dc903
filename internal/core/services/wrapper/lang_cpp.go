package wrapper

import (
	"math"
	"regexp"

	"gitlab.com/codejudge.net/internal/domain"
)

var (
	cppInclude   = regexp.MustCompile(`^\s*#\s*include\b`)
	cppNamespace = regexp.MustCompile(`^\s*using\s+namespace\s+std\s*;\s*$`)
	cppUserMain  = regexp.MustCompile(`\bint\s+main\s*\(`)
	cppSolution  = regexp.MustCompile(`\b(?:class|struct)\s+Solution\b`)
)

const cppHelpers = `string judge_quote(const string& s) {
    string out = "\"";
    for (unsigned char c : s) {
        switch (c) {
        case '"': out += "\\\""; break;
        case '\\': out += "\\\\"; break;
        case '\n': out += "\\n"; break;
        case '\r': out += "\\r"; break;
        case '\t': out += "\\t"; break;
        case '\b': out += "\\b"; break;
        case '\f': out += "\\f"; break;
        default:
            if (c < 0x20) {
                char buf[8];
                snprintf(buf, sizeof(buf), "\\u%04x", c);
                out += buf;
            } else {
                out += (char) c;
            }
        }
    }
    return out + "\"";
}

string judge_esc(const string& s) {
    string out;
    for (char c : s) {
        if (c == '|') out += "\\u007c";
        else out += c;
    }
    return out;
}

inline string judge_fmt(const string& v) { return judge_quote(v); }
inline string judge_fmt(const char* v) { return judge_quote(v); }
inline string judge_fmt(char v) { return judge_quote(string(1, v)); }
inline string judge_fmt(bool v) { return v ? "true" : "false"; }
inline string judge_fmt(nullptr_t) { return "null"; }

template <typename T>
typename enable_if<is_integral<T>::value, string>::type judge_fmt(T v) {
    return to_string(v);
}

template <typename T>
typename enable_if<is_floating_point<T>::value, string>::type judge_fmt(T v) {
    double d = (double) v;
    if (std::isnan(d) || std::isinf(d)) return "null";
    if (d == std::floor(d) && std::fabs(d) < 1e15) return to_string((long long) d) + ".0";
    for (int precision = 1; precision <= 17; precision++) {
        ostringstream os;
        os << setprecision(precision) << d;
        if (strtod(os.str().c_str(), nullptr) == d) return os.str();
    }
    ostringstream os;
    os << setprecision(17) << d;
    return os.str();
}

template <typename T>
string judge_fmt(const vector<T>& v);
template <typename T>
string judge_fmt(const map<string, T>& v);

template <typename T>
string judge_fmt(const vector<T>& v) {
    string out = "[";
    for (size_t i = 0; i < v.size(); i++) {
        if (i > 0) out += ",";
        out += judge_fmt(v[i]);
    }
    return out + "]";
}

template <typename T>
string judge_fmt(const map<string, T>& v) {
    string out = "{";
    bool first = true;
    for (const auto& entry : v) {
        if (!first) out += ",";
        first = false;
        out += judge_quote(entry.first) + ":" + judge_fmt(entry.second);
    }
    return out + "}";
}

template <typename A, typename B>
bool judge_eq(const A& actual, const B& expected) {
    return judge_fmt(actual) == judge_fmt(expected);
}

template <typename A, typename B>
bool judge_eq(const vector<A>& actual, const vector<B>& expected) {
    if (actual.size() != expected.size()) return false;
    for (size_t i = 0; i < actual.size(); i++) {
        if (!judge_eq(actual[i], expected[i])) return false;
    }
    return true;
}
`

type cppDialect struct{}

func (cppDialect) Sanitize(code string) Source {
	includes, body := splitLines(code, cppInclude)
	body = dropLines(body, cppNamespace)
	body = cppUserMain.ReplaceAllString(body, "int judge_user_main(")
	return Source{Imports: includes, Body: body}
}

func (cppDialect) DeclaresSolution(code string) bool {
	return cppSolution.MatchString(code)
}

func (d cppDialect) TypeName(t Type) string {
	switch t.Kind {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long long"
	case TypeFloat:
		return "double"
	case TypeString, TypeObject:
		return "string"
	case TypeChar:
		return "char"
	case TypeArray:
		return "vector<" + d.TypeName(*t.Elem) + ">"
	}
	return "nullptr_t"
}

// Literal renders objects as their serialized text since the target has no
// dynamic map literal.
func (d cppDialect) Literal(v domain.Value, t Type) string {
	switch v.Kind() {
	case domain.KindNull:
		return "nullptr"
	case domain.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case domain.KindInt, domain.KindFloat:
		if v.Kind() == domain.KindInt && t.Kind == TypeLong {
			if v.AsInt() == math.MinInt64 {
				return "(-9223372036854775807LL - 1)"
			}
			return numberLiteral(v, t) + "LL"
		}
		return numberLiteral(v, t)
	case domain.KindString:
		if t.Kind == TypeChar {
			return quoteC(v.AsString(), '\'')
		}
		return "string(" + d.Quote(v.AsString()) + ")"
	case domain.KindArray:
		if t.Kind != TypeArray {
			t = InferType(v)
		}
		return d.TypeName(t) + "{" + joinLiterals(d, v, *t.Elem) + "}"
	case domain.KindObject:
		return "string(" + d.Quote(v.String()) + ")"
	}
	return "nullptr"
}

func (cppDialect) Quote(s string) string {
	return quoteC(s, '"')
}

func (cppDialect) Prologue(w *codeWriter, p *Program) {
	w.line("#include <bits/stdc++.h>")
	for _, inc := range p.Source.Imports {
		w.line(inc)
	}
	w.line("using namespace std;")
	w.line("")
	if p.Source.Body != "" {
		w.raw(p.Source.Body)
	}
	w.line("")
	w.raw(cppHelpers)
	w.line("")
	w.line("int main() {")
	w.in()
	w.line("int judge_passed = 0;")
	w.line("string judge_fail;")
}

func (cppDialect) BeginTest(w *codeWriter, _ *Program, tc *TestCall) {
	w.linef("{ // test %d", tc.Index)
	w.in()
}

func (d cppDialect) Declare(w *codeWriter, arg Argument) {
	w.linef("%s %s = %s;", d.TypeName(arg.Type), arg.Name, arg.Literal)
}

func (cppDialect) Invoke(w *codeWriter, p *Program, tc *TestCall) {
	target := p.Function
	if p.Solution {
		target = "Solution()." + p.Function
	}
	if p.Void {
		w.linef("%s(%s);", target, tc.CallArgs())
		w.linef("auto judge_actual = %s;", tc.Args[0].Name)
		return
	}
	w.linef("auto judge_actual = %s(%s);", target, tc.CallArgs())
}

func (cppDialect) Check(w *codeWriter, p *Program, tc *TestCall) {
	w.line("string judge_got = judge_esc(judge_fmt(judge_actual));")
	if tc.Canonical {
		w.linef("bool judge_ok = judge_got == string(%s);", tc.ExpectedText)
	} else {
		w.linef("bool judge_ok = judge_eq(judge_actual, %s);", tc.ExpectedLiteral)
	}
	w.linef(`cout << "\nTEST|%d|" << (judge_ok ? "PASS" : "FAIL") << "|" << %s << "|" << %s << "|" << judge_got << endl;`,
		tc.Index, tc.InputText, tc.ExpectedText)
	w.line("if (judge_ok) {")
	w.in()
	w.line("judge_passed++;")
	w.out()
	if p.StopOnFailure() {
		w.line("} else {")
		w.in()
		w.linef(`cout << "\nFAIL|%d|" << %s << "|" << judge_got << endl;`, tc.Index, tc.ExpectedText)
		w.line("return 0;")
		w.out()
		w.line("}")
		return
	}
	w.line("} else if (judge_fail.empty()) {")
	w.in()
	w.linef(`judge_fail = string("FAIL|%d|") + %s + "|" + judge_got;`, tc.Index, tc.ExpectedText)
	w.out()
	w.line("}")
}

func (cppDialect) EndTest(w *codeWriter, _ *Program, _ *TestCall) {
	w.out()
	w.line("}")
}

func (cppDialect) Epilogue(w *codeWriter, _ *Program) {
	w.line(`if (!judge_fail.empty()) cout << "\n" << judge_fail << endl;`)
	w.line("(void) judge_passed;")
	w.line("return 0;")
	w.out()
	w.line("}")
}
