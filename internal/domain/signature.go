package domain

import (
	"fmt"
	"regexp"
	"strings"

	"gitlab.com/codejudge.net/internal/static/errs"
)

// VoidReturnType marks functions that mutate their first parameter in place
const VoidReturnType = "void"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Parameter is one declared parameter of the user function
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// FunctionSignature describes the function the harness must call
type FunctionSignature struct {
	FunctionName string      `json:"functionName" yaml:"functionName"`
	ReturnType   string      `json:"returnType" yaml:"returnType"`
	Parameters   []Parameter `json:"parameters" yaml:"parameters"`
}

// IsVoid reports whether the function is called for its side effect on the
// first parameter
func (s *FunctionSignature) IsVoid() bool {
	return strings.EqualFold(strings.TrimSpace(s.ReturnType), VoidReturnType)
}

// Validate checks the signature before any code is generated
func (s *FunctionSignature) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: signature is missing", errs.ErrInvalidSignature)
	}
	if !identifierPattern.MatchString(s.FunctionName) {
		return fmt.Errorf("%w: invalid function name %q", errs.ErrInvalidSignature, s.FunctionName)
	}
	if strings.TrimSpace(s.ReturnType) == "" {
		return fmt.Errorf("%w: return type is required", errs.ErrInvalidSignature)
	}

	seen := make(map[string]struct{}, len(s.Parameters))
	for i, p := range s.Parameters {
		if !identifierPattern.MatchString(p.Name) {
			return fmt.Errorf("%w: parameter %d has invalid name %q", errs.ErrInvalidSignature, i, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("%w: duplicate parameter %q", errs.ErrInvalidSignature, p.Name)
		}
		seen[p.Name] = struct{}{}
	}

	if s.IsVoid() && len(s.Parameters) == 0 {
		return fmt.Errorf("%w: void function %q has no parameter to inspect", errs.ErrInvalidSignature, s.FunctionName)
	}

	return nil
}
