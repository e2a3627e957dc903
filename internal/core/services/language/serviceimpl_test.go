package language

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

type fakeLister struct {
	runtimes []domain.RuntimeInfo
	err      error
}

func (f *fakeLister) Runtimes(ctx context.Context) ([]domain.RuntimeInfo, error) {
	return f.runtimes, f.err
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewDefaultRegistry(nil)

	for key, want := range map[string]string{
		"python":  Python,
		"PY":      Python,
		"Python3": Python,
		"js":      JavaScript,
		" node ":  JavaScript,
		"java":    Java,
		"c++":     Cpp,
		"CPP":     Cpp,
		"golang":  Go,
	} {
		rt, err := r.Lookup(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, rt.Key, key)
	}

	rt, err := r.Lookup("cpp")
	require.NoError(t, err)
	assert.Equal(t, "c++", rt.RuntimeID)
	assert.Equal(t, "solution.cpp", rt.SourceFile)
	assert.False(t, rt.Interpreted)
}

func TestRegistry_LookupUnsupported(t *testing.T) {
	_, err := NewDefaultRegistry(nil).Lookup("cobol")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrUnsupportedLanguage))
	assert.Contains(t, err.Error(), "cobol")
}

func TestRegistry_VersionOverride(t *testing.T) {
	r := NewDefaultRegistry(map[string]string{"python": "3.12.0", "go": ""})

	py, err := r.Lookup("python")
	require.NoError(t, err)
	assert.Equal(t, "3.12.0", py.Version)

	goRt, err := r.Lookup("go")
	require.NoError(t, err)
	assert.Equal(t, "1.16.2", goRt.Version)
}

func TestRegistry_LanguagesSorted(t *testing.T) {
	r := NewDefaultRegistry(nil)
	assert.Equal(t, []string{"cpp", "go", "java", "javascript", "python"}, r.Languages())

	runtimes := r.Runtimes()
	require.Len(t, runtimes, 5)
	assert.Equal(t, "cpp", runtimes[0].Key)
}

func TestRegistry_Verify(t *testing.T) {
	r := NewRegistry([]domain.Runtime{
		{Key: "python", RuntimeID: "python", Version: "3.10.0"},
		{Key: "cpp", RuntimeID: "c++", Version: "10.2.0"},
		{Key: "go", RuntimeID: "go", Version: "1.16.2"},
	}, nil)

	lister := &fakeLister{runtimes: []domain.RuntimeInfo{
		{Language: "python", Version: "3.10.0", Aliases: []string{"py"}},
		{Language: "gcc", Version: "10.2.0", Aliases: []string{"c++", "g++"}},
		{Language: "go", Version: "1.20.0"},
	}}

	missing, err := r.Verify(context.Background(), lister)
	require.NoError(t, err)
	assert.Equal(t, []string{"go-1.16.2"}, missing)
}

func TestRegistry_VerifyListerError(t *testing.T) {
	_, err := NewDefaultRegistry(nil).Verify(context.Background(), &fakeLister{err: errors.New("down")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
}
