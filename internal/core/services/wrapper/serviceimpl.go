package wrapper

import (
	"fmt"

	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ IGenerator = (*Generator)(nil)

// Generator composes drivers from a dialect per language key
type Generator struct {
	dialects map[string]Dialect
}

// NewGenerator creates a generator over the given dialects
func NewGenerator(dialects map[string]Dialect) *Generator {
	return &Generator{dialects: dialects}
}

// NewDefaultGenerator registers the dialects of the built-in languages
func NewDefaultGenerator() *Generator {
	return NewGenerator(map[string]Dialect{
		"python":     pythonDialect{},
		"javascript": javascriptDialect{},
		"java":       javaDialect{},
		"cpp":        cppDialect{},
		"go":         goDialect{},
	})
}

func (g *Generator) Generate(
	runtime domain.Runtime,
	userCode string,
	signature *domain.FunctionSignature,
	tests []domain.TestCase,
	policy domain.FailurePolicy,
) (string, error) {
	d, ok := g.dialects[runtime.Key]
	if !ok {
		return "", fmt.Errorf("%w: no driver for %q", errs.ErrUnsupportedLanguage, runtime.Key)
	}
	if err := signature.Validate(); err != nil {
		return "", err
	}

	program, err := buildProgram(d, userCode, signature, tests, policy)
	if err != nil {
		return "", err
	}

	w := newCodeWriter(indentUnit(runtime.Key))
	d.Prologue(w, program)
	for _, tc := range program.Tests {
		d.BeginTest(w, program, tc)
		for _, arg := range tc.Args {
			d.Declare(w, arg)
		}
		d.Invoke(w, program, tc)
		d.Check(w, program, tc)
		d.EndTest(w, program, tc)
	}
	d.Epilogue(w, program)

	return w.String(), nil
}

func indentUnit(key string) string {
	switch key {
	case "go":
		return "\t"
	case "javascript":
		return "  "
	default:
		return "    "
	}
}

func buildProgram(
	d Dialect,
	userCode string,
	signature *domain.FunctionSignature,
	tests []domain.TestCase,
	policy domain.FailurePolicy,
) (*Program, error) {
	src := d.Sanitize(normalizeNewlines(userCode))
	p := &Program{
		Function: signature.FunctionName,
		Void:     signature.IsVoid(),
		Solution: d.DeclaresSolution(src.Body),
		Policy:   policy,
		Source:   src,
		Tests:    make([]*TestCall, 0, len(tests)),
	}

	for i, tc := range tests {
		values, err := bindArguments(signature, tc.Input)
		if err != nil {
			return nil, fmt.Errorf("test %d: %w", i, err)
		}

		call := &TestCall{
			Index:        i,
			Args:         make([]Argument, len(values)),
			InputText:    d.Quote(domain.EscapeField(tc.Input.String())),
			ExpectedText: d.Quote(domain.EscapeField(tc.ExpectedOutput.String())),
		}
		for j, v := range values {
			param := parameterAt(signature, j)
			t := ResolveType(param.Type, v)
			call.Args[j] = Argument{Name: param.Name, Type: t, Literal: d.Literal(v, t)}
		}

		expectedHint := signature.ReturnType
		if p.Void {
			expectedHint = signature.Parameters[0].Type
		}
		call.ExpectedType = ResolveType(expectedHint, tc.ExpectedOutput)
		call.ExpectedLiteral = d.Literal(tc.ExpectedOutput, call.ExpectedType)
		call.Canonical = !comparesDirectly(tc.ExpectedOutput)
		p.Tests = append(p.Tests, call)
	}

	return p, nil
}

// comparesDirectly reports whether expected is checked with native equality
// (scalars and arrays of them) instead of its serialized form.
func comparesDirectly(v domain.Value) bool {
	switch v.Kind() {
	case domain.KindBool, domain.KindInt, domain.KindFloat, domain.KindString:
		return true
	case domain.KindArray:
		for _, item := range v.Items() {
			if !comparesDirectly(item) {
				return false
			}
		}
		return true
	}
	return false
}

func parameterAt(signature *domain.FunctionSignature, i int) domain.Parameter {
	if i < len(signature.Parameters) {
		return signature.Parameters[i]
	}
	return domain.Parameter{Name: fmt.Sprintf("arg%d", i)}
}

// bindArguments turns a test input into positional arguments. Object inputs
// whose field names cover the parameter names bind by name in signature
// order, other objects bind in declaration order.
func bindArguments(signature *domain.FunctionSignature, input domain.Value) ([]domain.Value, error) {
	params := signature.Parameters

	var args []domain.Value
	switch {
	case input.Kind() == domain.KindObject:
		if byName, ok := bindByName(params, input); ok {
			args = byName
		} else if len(params) == 1 && input.NumFields() != 1 {
			args = []domain.Value{input}
		} else {
			args = make([]domain.Value, 0, input.NumFields())
			for _, f := range input.Fields() {
				args = append(args, f.Value)
			}
		}
	case input.IsNull() && len(params) == 0:
		args = nil
	default:
		args = []domain.Value{input}
	}

	if len(params) > 0 && len(args) != len(params) {
		return nil, fmt.Errorf("%w: %d arguments for %d parameters", errs.ErrArgumentMismatch, len(args), len(params))
	}
	return args, nil
}

func bindByName(params []domain.Parameter, input domain.Value) ([]domain.Value, bool) {
	if len(params) == 0 || input.NumFields() != len(params) {
		return nil, false
	}
	args := make([]domain.Value, len(params))
	for i, p := range params {
		v, ok := input.Lookup(p.Name)
		if !ok {
			return nil, false
		}
		args[i] = v
	}
	return args, true
}
