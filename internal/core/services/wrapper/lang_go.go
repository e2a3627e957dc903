package wrapper

import (
	"regexp"
	"strconv"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
)

var (
	goPackage    = regexp.MustCompile(`^\s*package\s+\w+\s*$`)
	goImportLine = regexp.MustCompile(`^\s*import\s+((?:[\w.]+\s+)?"[^"]+")\s*$`)
	goImportOpen = regexp.MustCompile(`^\s*import\s*\(\s*$`)
	goUserMain   = regexp.MustCompile(`\bfunc\s+main\s*\(`)
	goSolution   = regexp.MustCompile(`\btype\s+Solution\s+struct\b`)
)

var goDriverImports = []string{
	`"encoding/json"`,
	`"fmt"`,
	`"math"`,
	`"reflect"`,
	`"sort"`,
	`"strconv"`,
	`"strings"`,
}

const goHelpers = `func judgeNormalize(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int64:
		return rv.Int()
	case reflect.Int32:
		return string(rune(rv.Int()))
	case reflect.Uint8:
		return string(rune(rv.Uint()))
	case reflect.Uint, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, rv.Len())
		for i := range out {
			out[i] = judgeNormalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]interface{}, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = judgeNormalize(iter.Value().Interface())
		}
		return out
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return judgeNormalize(rv.Elem().Interface())
	}
	return v
}

func judgeDeepEqual(a, b interface{}) bool {
	switch x := a.(type) {
	case []interface{}:
		y, ok := b.([]interface{})
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !judgeDeepEqual(x[i], y[i]) {
				return false
			}
		}
		return true
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
		return false
	case float64:
		switch y := b.(type) {
		case float64:
			return x == y
		case int64:
			return x == float64(y)
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func judgeEqual(actual, expected interface{}) bool {
	return judgeDeepEqual(judgeNormalize(actual), judgeNormalize(expected))
}

func judgeWrite(b *strings.Builder, v interface{}) {
	switch x := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(x))
	case int64:
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			b.WriteString("null")
			return
		}
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		b.WriteString(s)
	case string:
		var sb strings.Builder
		enc := json.NewEncoder(&sb)
		enc.SetEscapeHTML(false)
		_ = enc.Encode(x)
		b.WriteString(strings.TrimSuffix(sb.String(), "\n"))
	case []interface{}:
		b.WriteByte('[')
		for i, item := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			judgeWrite(b, item)
		}
		b.WriteByte(']')
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			judgeWrite(b, k)
			b.WriteByte(':')
			judgeWrite(b, x[k])
		}
		b.WriteByte('}')
	default:
		judgeWrite(b, fmt.Sprint(x))
	}
}

func judgeFormat(v interface{}) string {
	var b strings.Builder
	judgeWrite(&b, judgeNormalize(v))
	return strings.ReplaceAll(b.String(), "|", "\\u007c")
}

func judgeVerdict(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}
`

type goDialect struct{}

// Sanitize removes the package clause and lifts imports into the driver's
// import block.
func (goDialect) Sanitize(code string) Source {
	code = dropLines(code, goPackage)

	var (
		imports []string
		kept    []string
		inBlock bool
	)
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case inBlock && trimmed == ")":
			inBlock = false
		case inBlock:
			if trimmed != "" && !strings.HasPrefix(trimmed, "//") {
				imports = append(imports, trimmed)
			}
		case goImportOpen.MatchString(line):
			inBlock = true
		case goImportLine.MatchString(line):
			imports = append(imports, goImportLine.FindStringSubmatch(line)[1])
		default:
			kept = append(kept, line)
		}
	}

	body := goUserMain.ReplaceAllString(strings.Join(kept, "\n"), "func userMain(")
	return Source{Imports: mergeGoImports(imports), Body: body}
}

func mergeGoImports(user []string) []string {
	seen := make(map[string]struct{}, len(goDriverImports)+len(user))
	out := make([]string, 0, len(goDriverImports)+len(user))
	for _, imp := range append(append([]string{}, goDriverImports...), user...) {
		spec := strings.Join(strings.Fields(imp), " ")
		if _, dup := seen[spec]; dup {
			continue
		}
		seen[spec] = struct{}{}
		out = append(out, spec)
	}
	return out
}

func (goDialect) DeclaresSolution(code string) bool {
	return goSolution.MatchString(code)
}

func (d goDialect) TypeName(t Type) string {
	switch t.Kind {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeLong:
		return "int64"
	case TypeFloat:
		return "float64"
	case TypeString:
		return "string"
	case TypeChar:
		if t.Wide {
			return "rune"
		}
		return "byte"
	case TypeArray:
		return "[]" + d.TypeName(*t.Elem)
	case TypeObject:
		return "map[string]interface{}"
	}
	return "interface{}"
}

func (d goDialect) Literal(v domain.Value, t Type) string {
	switch v.Kind() {
	case domain.KindNull:
		return "nil"
	case domain.KindBool:
		return strconv.FormatBool(v.AsBool())
	case domain.KindInt, domain.KindFloat:
		return numberLiteral(v, t)
	case domain.KindString:
		if t.Kind == TypeChar {
			r := []rune(v.AsString())[0]
			return strconv.QuoteRune(r)
		}
		return d.Quote(v.AsString())
	case domain.KindArray:
		if t.Kind != TypeArray {
			t = InferType(v)
		}
		return d.TypeName(t) + "{" + joinLiterals(d, v, *t.Elem) + "}"
	case domain.KindObject:
		parts := make([]string, v.NumFields())
		for i := range parts {
			f := v.FieldAt(i)
			parts[i] = d.Quote(f.Name) + ": " + d.Literal(f.Value, InferType(f.Value))
		}
		return "map[string]interface{}{" + strings.Join(parts, ", ") + "}"
	}
	return "nil"
}

func (goDialect) Quote(s string) string {
	return strconv.Quote(s)
}

func (goDialect) Prologue(w *codeWriter, p *Program) {
	w.line("package main")
	w.line("")
	w.line("import (")
	w.in()
	for _, imp := range p.Source.Imports {
		w.line(imp)
	}
	w.out()
	w.line(")")
	w.line("")
	if strings.TrimSpace(p.Source.Body) != "" {
		w.raw(strings.Trim(p.Source.Body, "\n"))
		w.line("")
	}
	w.raw(goHelpers)
	w.line("")
	w.line("func main() {")
	w.in()
	w.line("judgePassed := 0")
	w.line(`judgeFail := ""`)
}

func (goDialect) BeginTest(w *codeWriter, _ *Program, tc *TestCall) {
	w.linef("{ // test %d", tc.Index)
	w.in()
}

func (d goDialect) Declare(w *codeWriter, arg Argument) {
	w.linef("var %s %s = %s", arg.Name, d.TypeName(arg.Type), arg.Literal)
}

func (goDialect) Invoke(w *codeWriter, p *Program, tc *TestCall) {
	target := p.Function
	if p.Solution {
		target = "(&Solution{})." + p.Function
	}
	if p.Void {
		w.linef("%s(%s)", target, tc.CallArgs())
		w.linef("judgeActual := %s", tc.Args[0].Name)
		return
	}
	w.linef("judgeActual := %s(%s)", target, tc.CallArgs())
}

func (goDialect) Check(w *codeWriter, p *Program, tc *TestCall) {
	w.line("judgeGot := judgeFormat(judgeActual)")
	if tc.Canonical {
		w.linef("judgeOk := judgeGot == %s", tc.ExpectedText)
	} else {
		w.linef("judgeOk := judgeEqual(judgeActual, %s)", tc.ExpectedLiteral)
	}
	w.linef(`fmt.Println("\nTEST|%d|" + judgeVerdict(judgeOk) + "|" + %s + "|" + %s + "|" + judgeGot)`,
		tc.Index, tc.InputText, tc.ExpectedText)
	w.line("if judgeOk {")
	w.in()
	w.line("judgePassed++")
	w.out()
	if p.StopOnFailure() {
		w.line("} else {")
		w.in()
		w.linef(`fmt.Println("\nFAIL|%d|" + %s + "|" + judgeGot)`, tc.Index, tc.ExpectedText)
		w.line("return")
		w.out()
		w.line("}")
		return
	}
	w.line(`} else if judgeFail == "" {`)
	w.in()
	w.linef(`judgeFail = "FAIL|%d|" + %s + "|" + judgeGot`, tc.Index, tc.ExpectedText)
	w.out()
	w.line("}")
}

func (goDialect) EndTest(w *codeWriter, _ *Program, _ *TestCall) {
	w.out()
	w.line("}")
}

func (goDialect) Epilogue(w *codeWriter, _ *Program) {
	w.line("_ = judgePassed")
	w.line(`if judgeFail != "" {`)
	w.in()
	w.line(`fmt.Println("\n" + judgeFail)`)
	w.out()
	w.line("}")
	w.out()
	w.line("}")
}
