package wrapper

import (
	"regexp"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
)

var (
	javaPackage  = regexp.MustCompile(`^\s*package\s+[\w.]+\s*;\s*$`)
	javaImport   = regexp.MustCompile(`^\s*import\s+(static\s+)?[\w.]+(\.\*)?\s*;\s*$`)
	javaPublic   = regexp.MustCompile(`(?m)^public\s+((?:final\s+|abstract\s+|sealed\s+)*(?:class|interface|enum|record)\b)`)
	javaSolution = regexp.MustCompile(`\bclass\s+Solution\b`)
)

const javaHelpers = `    static Object judgeNorm(Object v) {
        if (v == null) return null;
        if (v.getClass().isArray()) {
            int n = java.lang.reflect.Array.getLength(v);
            List<Object> out = new ArrayList<>(n);
            for (int i = 0; i < n; i++) out.add(judgeNorm(java.lang.reflect.Array.get(v, i)));
            return out;
        }
        if (v instanceof Collection) {
            List<Object> out = new ArrayList<>();
            for (Object item : (Collection<?>) v) out.add(judgeNorm(item));
            return out;
        }
        if (v instanceof Map) {
            Map<String, Object> out = new LinkedHashMap<>();
            for (Map.Entry<?, ?> e : ((Map<?, ?>) v).entrySet()) {
                out.put(String.valueOf(e.getKey()), judgeNorm(e.getValue()));
            }
            return out;
        }
        if (v instanceof Byte || v instanceof Short || v instanceof Integer || v instanceof Long) {
            return ((Number) v).longValue();
        }
        if (v instanceof Float || v instanceof Double) return ((Number) v).doubleValue();
        if (v instanceof Character) return String.valueOf(v);
        return v;
    }

    static boolean judgeDeepEq(Object a, Object b) {
        if (a == null || b == null) return a == b;
        if (a instanceof List && b instanceof List) {
            List<?> x = (List<?>) a;
            List<?> y = (List<?>) b;
            if (x.size() != y.size()) return false;
            for (int i = 0; i < x.size(); i++) {
                if (!judgeDeepEq(x.get(i), y.get(i))) return false;
            }
            return true;
        }
        if (a instanceof Number && b instanceof Number) {
            if (a instanceof Double || b instanceof Double) {
                return ((Number) a).doubleValue() == ((Number) b).doubleValue();
            }
            return ((Number) a).longValue() == ((Number) b).longValue();
        }
        return a.equals(b);
    }

    static boolean judgeEq(Object actual, Object expected) {
        return judgeDeepEq(judgeNorm(actual), judgeNorm(expected));
    }

    static String judgeFmt(Object v) {
        StringBuilder sb = new StringBuilder();
        judgeWrite(sb, judgeNorm(v));
        return sb.toString().replace("|", "\\u007c");
    }

    static void judgeWrite(StringBuilder sb, Object v) {
        if (v == null) {
            sb.append("null");
        } else if (v instanceof String) {
            judgeQuote(sb, (String) v);
        } else if (v instanceof Double) {
            double d = (Double) v;
            if (Double.isNaN(d) || Double.isInfinite(d)) sb.append("null");
            else if (d == Math.rint(d) && Math.abs(d) < 1e15) sb.append((long) d).append(".0");
            else sb.append(d);
        } else if (v instanceof List) {
            sb.append('[');
            boolean first = true;
            for (Object item : (List<?>) v) {
                if (!first) sb.append(',');
                first = false;
                judgeWrite(sb, item);
            }
            sb.append(']');
        } else if (v instanceof Map) {
            sb.append('{');
            boolean first = true;
            for (Map.Entry<?, ?> e : ((Map<?, ?>) v).entrySet()) {
                if (!first) sb.append(',');
                first = false;
                judgeQuote(sb, String.valueOf(e.getKey()));
                sb.append(':');
                judgeWrite(sb, e.getValue());
            }
            sb.append('}');
        } else {
            sb.append(v);
        }
    }

    static void judgeQuote(StringBuilder sb, String s) {
        sb.append('"');
        for (int i = 0; i < s.length(); i++) {
            char c = s.charAt(i);
            switch (c) {
                case '"': sb.append("\\\""); break;
                case '\\': sb.append("\\\\"); break;
                case '\n': sb.append("\\n"); break;
                case '\r': sb.append("\\r"); break;
                case '\t': sb.append("\\t"); break;
                case '\b': sb.append("\\b"); break;
                case '\f': sb.append("\\f"); break;
                default:
                    if (c < 0x20) sb.append(String.format("\\u%04x", (int) c));
                    else sb.append(c);
            }
        }
        sb.append('"');
    }

    static Map<String, Object> judgeObject(Object... kv) {
        Map<String, Object> out = new LinkedHashMap<>();
        for (int i = 0; i + 1 < kv.length; i += 2) out.put((String) kv[i], kv[i + 1]);
        return out;
    }
`

type javaDialect struct{}

// Sanitize hoists imports, drops the package clause and demotes public
// top-level types so the driver class stays the only public one. Code
// without a Solution class is wrapped into one.
func (javaDialect) Sanitize(code string) Source {
	code = dropLines(code, javaPackage)
	imports, body := splitLines(code, javaImport)
	body = javaPublic.ReplaceAllString(body, "$1")
	if !javaSolution.MatchString(body) {
		body = "class Solution {\n" + indentBlock(strings.Trim(body, "\n"), "    ") + "\n}"
	}
	return Source{Imports: imports, Body: body}
}

func (javaDialect) DeclaresSolution(code string) bool {
	return javaSolution.MatchString(code)
}

func (d javaDialect) TypeName(t Type) string {
	switch t.Kind {
	case TypeBool:
		return "boolean"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "double"
	case TypeString:
		return "String"
	case TypeChar:
		return "char"
	case TypeArray:
		if t.List {
			return "List<" + d.boxedName(*t.Elem) + ">"
		}
		return d.TypeName(*t.Elem) + "[]"
	case TypeObject:
		return "Map<String, Object>"
	}
	return "Object"
}

// boxedName is the type name usable as a generic argument
func (d javaDialect) boxedName(t Type) string {
	switch t.Kind {
	case TypeBool:
		return "Boolean"
	case TypeInt:
		return "Integer"
	case TypeLong:
		return "Long"
	case TypeFloat:
		return "Double"
	case TypeChar:
		return "Character"
	}
	return d.TypeName(t)
}

func (d javaDialect) Literal(v domain.Value, t Type) string {
	switch v.Kind() {
	case domain.KindNull:
		return "null"
	case domain.KindBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case domain.KindInt, domain.KindFloat:
		s := numberLiteral(v, t)
		if t.Kind == TypeLong {
			s += "L"
		}
		return s
	case domain.KindString:
		if t.Kind == TypeChar {
			return quoteC(v.AsString(), '\'')
		}
		return d.Quote(v.AsString())
	case domain.KindArray:
		if t.Kind != TypeArray {
			t = InferType(v)
		}
		if t.List {
			if v.Len() == 0 {
				return "new ArrayList<>()"
			}
			return "new ArrayList<>(Arrays.asList(" + joinLiterals(d, v, *t.Elem) + "))"
		}
		return "new " + d.TypeName(t) + "{" + joinLiterals(d, v, *t.Elem) + "}"
	case domain.KindObject:
		parts := make([]string, 0, 2*v.NumFields())
		for i := 0; i < v.NumFields(); i++ {
			f := v.FieldAt(i)
			parts = append(parts, d.Quote(f.Name), d.Literal(f.Value, InferType(f.Value)))
		}
		return "judgeObject(" + strings.Join(parts, ", ") + ")"
	}
	return "null"
}

func (javaDialect) Quote(s string) string {
	return quoteC(s, '"')
}

func (javaDialect) Prologue(w *codeWriter, p *Program) {
	w.line("import java.util.*;")
	for _, imp := range p.Source.Imports {
		if imp != "import java.util.*;" {
			w.line(imp)
		}
	}
	w.line("")
	w.line("public class Main {")
	w.raw(javaHelpers)
	w.line("")
	w.in()
	w.line("public static void main(String[] judgeArgs) throws Exception {")
	w.in()
	w.line("int judgePassed = 0;")
	w.line("String judgeFail = null;")
}

func (javaDialect) BeginTest(w *codeWriter, _ *Program, tc *TestCall) {
	w.linef("{ // test %d", tc.Index)
	w.in()
}

func (d javaDialect) Declare(w *codeWriter, arg Argument) {
	w.linef("%s %s = %s;", d.TypeName(arg.Type), arg.Name, arg.Literal)
}

func (javaDialect) Invoke(w *codeWriter, p *Program, tc *TestCall) {
	target := "new Solution()." + p.Function
	if p.Void {
		w.linef("%s(%s);", target, tc.CallArgs())
		w.linef("var judgeActual = %s;", tc.Args[0].Name)
		return
	}
	w.linef("var judgeActual = %s(%s);", target, tc.CallArgs())
}

func (javaDialect) Check(w *codeWriter, p *Program, tc *TestCall) {
	if tc.Canonical {
		w.linef("boolean judgeOk = judgeFmt(judgeActual).equals(%s);", tc.ExpectedText)
	} else {
		w.linef("boolean judgeOk = judgeEq(judgeActual, %s);", tc.ExpectedLiteral)
	}
	w.line("String judgeGot = judgeFmt(judgeActual);")
	w.linef(`System.out.println("\nTEST|%d|" + (judgeOk ? "PASS" : "FAIL") + "|" + %s + "|" + %s + "|" + judgeGot);`,
		tc.Index, tc.InputText, tc.ExpectedText)
	w.line("if (judgeOk) {")
	w.in()
	w.line("judgePassed++;")
	w.out()
	if p.StopOnFailure() {
		w.line("} else {")
		w.in()
		w.linef(`System.out.println("\nFAIL|%d|" + %s + "|" + judgeGot);`, tc.Index, tc.ExpectedText)
		w.line("return;")
		w.out()
		w.line("}")
		return
	}
	w.line("} else if (judgeFail == null) {")
	w.in()
	w.linef(`judgeFail = "FAIL|%d|" + %s + "|" + judgeGot;`, tc.Index, tc.ExpectedText)
	w.out()
	w.line("}")
}

func (javaDialect) EndTest(w *codeWriter, _ *Program, _ *TestCall) {
	w.out()
	w.line("}")
}

func (javaDialect) Epilogue(w *codeWriter, p *Program) {
	w.line(`if (judgeFail != null) System.out.println("\n" + judgeFail);`)
	w.out()
	w.line("}")
	w.out()
	w.line("}")
	w.line("")
	w.raw(p.Source.Body)
}

func indentBlock(code, unit string) string {
	lines := strings.Split(code, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = unit + line
		}
	}
	return strings.Join(lines, "\n")
}
