package language

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

const (
	Python     = "python"
	JavaScript = "javascript"
	Java       = "java"
	Cpp        = "cpp"
	Go         = "go"
)

var _ IRegistry = (*Registry)(nil)

// DefaultRuntimes returns the built-in language set
func DefaultRuntimes() []domain.Runtime {
	return []domain.Runtime{
		{
			Key:                Python,
			RuntimeID:          "python",
			Version:            "3.10.0",
			SourceFile:         "solution.py",
			Aliases:            []string{"py", "python3"},
			Interpreted:        true,
			SyntaxErrorMarkers: []string{"SyntaxError", "IndentationError", "TabError"},
		},
		{
			Key:                JavaScript,
			RuntimeID:          "javascript",
			Version:            "18.15.0",
			SourceFile:         "solution.js",
			Aliases:            []string{"js", "node", "nodejs"},
			Interpreted:        true,
			SyntaxErrorMarkers: []string{"SyntaxError"},
		},
		{
			Key:        Java,
			RuntimeID:  "java",
			Version:    "15.0.2",
			SourceFile: "Main.java",
			// the single-file launcher compiles inside the run stage
			Interpreted:        true,
			SyntaxErrorMarkers: []string{"error: compilation failed"},
		},
		{
			Key:        Cpp,
			RuntimeID:  "c++",
			Version:    "10.2.0",
			SourceFile: "solution.cpp",
			Aliases:    []string{"c++", "cplusplus"},
		},
		{
			Key:        Go,
			RuntimeID:  "go",
			Version:    "1.16.2",
			SourceFile: "main.go",
			Aliases:    []string{"golang"},
		},
	}
}

// Registry is an immutable table of supported languages
type Registry struct {
	byKey   map[string]domain.Runtime
	aliases map[string]string
	keys    []string
}

// NewRegistry builds a registry from the given runtimes. versions overrides
// the runtime version per canonical key.
func NewRegistry(runtimes []domain.Runtime, versions map[string]string) *Registry {
	r := &Registry{
		byKey:   make(map[string]domain.Runtime, len(runtimes)),
		aliases: make(map[string]string),
	}
	for _, rt := range runtimes {
		key := strings.ToLower(rt.Key)
		if v, ok := versions[key]; ok && v != "" {
			rt.Version = v
		}
		rt.Key = key
		r.byKey[key] = rt
		r.keys = append(r.keys, key)
		for _, alias := range rt.Aliases {
			r.aliases[strings.ToLower(alias)] = key
		}
	}
	sort.Strings(r.keys)
	return r
}

// NewDefaultRegistry builds the registry of built-in languages
func NewDefaultRegistry(versions map[string]string) *Registry {
	return NewRegistry(DefaultRuntimes(), versions)
}

func (r *Registry) Lookup(key string) (domain.Runtime, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if canonical, ok := r.aliases[k]; ok {
		k = canonical
	}
	rt, ok := r.byKey[k]
	if !ok {
		return domain.Runtime{}, fmt.Errorf("%w: %q", errs.ErrUnsupportedLanguage, key)
	}
	return rt, nil
}

func (r *Registry) Languages() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Registry) Runtimes() []domain.Runtime {
	out := make([]domain.Runtime, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.byKey[k])
	}
	return out
}

func (r *Registry) Verify(ctx context.Context, lister secondary.RuntimeLister) ([]string, error) {
	available, err := lister.Runtimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list sandbox runtimes: %w", err)
	}

	installed := make(map[string]struct{}, len(available))
	for _, info := range available {
		installed[runtimeKey(info.Language, info.Version)] = struct{}{}
		for _, alias := range info.Aliases {
			installed[runtimeKey(alias, info.Version)] = struct{}{}
		}
	}

	var missing []string
	for _, k := range r.keys {
		rt := r.byKey[k]
		if _, ok := installed[runtimeKey(rt.RuntimeID, rt.Version)]; !ok {
			missing = append(missing, fmt.Sprintf("%s-%s", rt.RuntimeID, rt.Version))
		}
	}
	return missing, nil
}

func runtimeKey(language, version string) string {
	return strings.ToLower(language) + "@" + version
}
