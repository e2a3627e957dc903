package wrapper

import (
	"fmt"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
)

// Source is sanitized user code split into hoisted header lines and body
type Source struct {
	Imports []string
	Body    string
}

// Argument is one local declared before the call
type Argument struct {
	Name    string
	Type    Type
	Literal string
}

// TestCall is one test case rendered for a dialect
type TestCall struct {
	Index           int
	Args            []Argument
	ExpectedType    Type
	ExpectedLiteral string
	// Canonical compares the serialized actual value against ExpectedText
	Canonical    bool
	InputText    string
	ExpectedText string
}

// Program is the language-neutral shape of a generated driver
type Program struct {
	Function string
	Void     bool
	Solution bool
	Policy   domain.FailurePolicy
	Source   Source
	Tests    []*TestCall
}

// StopOnFailure reports whether the driver returns after the first mismatch
func (p *Program) StopOnFailure() bool {
	return p.Policy != domain.RunAll
}

// CallArgs joins argument names for a call expression
func (tc *TestCall) CallArgs() string {
	names := make([]string, len(tc.Args))
	for i, a := range tc.Args {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}

// Dialect renders one target language
type Dialect interface {
	// Sanitize rewrites user code so it can be embedded in the driver
	Sanitize(code string) Source

	// DeclaresSolution reports whether the code defines a Solution type
	DeclaresSolution(code string) bool

	TypeName(t Type) string
	Literal(v domain.Value, t Type) string
	// Quote renders a string literal
	Quote(s string) string

	Prologue(w *codeWriter, p *Program)
	BeginTest(w *codeWriter, p *Program, tc *TestCall)
	Declare(w *codeWriter, arg Argument)
	Invoke(w *codeWriter, p *Program, tc *TestCall)
	Check(w *codeWriter, p *Program, tc *TestCall)
	EndTest(w *codeWriter, p *Program, tc *TestCall)
	Epilogue(w *codeWriter, p *Program)
}

type codeWriter struct {
	b      strings.Builder
	unit   string
	indent int
}

func newCodeWriter(unit string) *codeWriter {
	return &codeWriter{unit: unit}
}

func (w *codeWriter) in() { w.indent++ }
func (w *codeWriter) out() { w.indent-- }

func (w *codeWriter) line(s string) {
	if s != "" {
		w.b.WriteString(strings.Repeat(w.unit, w.indent))
	}
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

func (w *codeWriter) linef(format string, args ...interface{}) {
	w.line(fmt.Sprintf(format, args...))
}

// raw writes text verbatim, terminated by a newline
func (w *codeWriter) raw(s string) {
	w.b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		w.b.WriteByte('\n')
	}
}

func (w *codeWriter) String() string {
	return w.b.String()
}

// quoteC escapes a string for languages with C-like literals. Control
// characters other than \n, \r and \t become three-digit octal escapes.
func quoteC(s string, quote byte) string {
	var b strings.Builder
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			b.WriteString(`\\`)
		case c == quote:
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		case c < 0x20 || c == 0x7f:
			fmt.Fprintf(&b, `\%03o`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
	return b.String()
}

// joinLiterals renders the items of an array value with the element type
func joinLiterals(d Dialect, v domain.Value, elem Type) string {
	parts := make([]string, v.Len())
	for i := 0; i < v.Len(); i++ {
		parts[i] = d.Literal(v.Index(i), elem)
	}
	return strings.Join(parts, ", ")
}

// numberLiteral renders numeric values honoring the resolved type
func numberLiteral(v domain.Value, t Type) string {
	if t.Kind == TypeFloat || v.Kind() == domain.KindFloat {
		return domain.FormatFloat(v.AsFloat())
	}
	return fmt.Sprintf("%d", v.AsInt())
}
