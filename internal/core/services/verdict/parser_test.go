package verdict

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/codejudge.net/internal/domain"
)

func TestParseOutput(t *testing.T) {
	ab := `"a` + domain.EscapedPipe + `b"`
	stdout := "debug print\n" +
		`TEST|0|PASS|{"nums":[2,7]}|[0,1]|[0,1]` + "\n" +
		`TEST|1|FAIL|` + ab + `|` + ab + `|"ab"` + "\r\n" +
		`FAIL|1|` + ab + `|"ab"` + "\n" +
		`FAIL|2|x|y` + "\n" +
		"TEST|oops|PASS|a|b|c\n" +
		"TEST|3|MAYBE|a|b|c\n" +
		"TEST|4|PASS|short\n"

	report := ParseOutput(stdout, 5)

	want := []domain.TestCaseResult{
		{Index: 0, Passed: true, Input: `{"nums":[2,7]}`, Expected: "[0,1]", Actual: "[0,1]"},
		{Index: 1, Passed: false, Input: `"a|b"`, Expected: `"a|b"`, Actual: `"ab"`},
	}
	if diff := cmp.Diff(want, report.Tests); diff != "" {
		t.Errorf("ParseOutput() tests mismatch (-want +got):\n%s", diff)
	}

	require.NotNil(t, report.Failure)
	assert.Equal(t, Failure{Index: 1, Expected: `"a|b"`, Actual: `"ab"`}, *report.Failure)
	assert.Equal(t, 1, report.Passed())
}

func TestParseOutput_ActualMayContainSeparators(t *testing.T) {
	report := ParseOutput("TEST|0|FAIL|1|2|oops|extra\nFAIL|0|2|oops|extra\n", 1)

	require.Len(t, report.Tests, 1)
	assert.Equal(t, "oops|extra", report.Tests[0].Actual)
	assert.Equal(t, "oops|extra", report.Failure.Actual)
}

func TestParseOutput_Empty(t *testing.T) {
	report := ParseOutput("", 3)
	assert.Empty(t, report.Tests)
	assert.Nil(t, report.Failure)
}

func TestParseOutput_RejectsOutOfSequenceRecords(t *testing.T) {
	stdout := "TEST|0|PASS|a|b|c\n" +
		"TEST|0|PASS|a|b|c\n" +
		"TEST|2|PASS|a|b|c\n" +
		"TEST|1|PASS|a|b|c\n" +
		"TEST|1|PASS|a|b|c\n" +
		"TEST|7|PASS|a|b|c\n"

	report := ParseOutput(stdout, 2)

	require.Len(t, report.Tests, 2)
	assert.Equal(t, 0, report.Tests[0].Index)
	assert.Equal(t, 1, report.Tests[1].Index)
	assert.Equal(t, 2, report.Passed())
}

func TestParseOutput_IndexBoundedByTotal(t *testing.T) {
	report := ParseOutput("TEST|0|PASS|a|b|c\nTEST|1|PASS|a|b|c\n", 1)
	assert.Len(t, report.Tests, 1)

	unbounded := ParseOutput("TEST|0|PASS|a|b|c\nTEST|1|PASS|a|b|c\n", 0)
	assert.Len(t, unbounded.Tests, 2)
}

func TestParseOutput_NothingAfterFailure(t *testing.T) {
	stdout := "TEST|0|FAIL|1|2|3\n" +
		"FAIL|0|2|3\n" +
		"TEST|1|PASS|a|b|c\n" +
		"FAIL|1|x|y\n"

	report := ParseOutput(stdout, 3)

	require.Len(t, report.Tests, 1)
	require.NotNil(t, report.Failure)
	assert.Equal(t, 0, report.Failure.Index)
	assert.Equal(t, "3", report.Failure.Actual)
}

func TestParseOutput_FailMustNameFirstFailingTest(t *testing.T) {
	stdout := "FAIL|0|x|y\n" +
		"TEST|0|PASS|a|b|b\n" +
		"FAIL|0|x|y\n" +
		"TEST|1|FAIL|a|b|c\n" +
		"TEST|2|FAIL|a|d|e\n" +
		"FAIL|2|d|e\n" +
		"FAIL|1|b|c\n"

	report := ParseOutput(stdout, 3)

	require.Len(t, report.Tests, 3)
	require.NotNil(t, report.Failure)
	assert.Equal(t, Failure{Index: 1, Expected: "b", Actual: "c"}, *report.Failure)
}

func TestParseOutput_RecordAfterUnterminatedUserOutput(t *testing.T) {
	stdout := "dbg\nTEST|0|PASS|121|true|true\nnoise\nTEST|1|PASS|1|true|true\n"

	report := ParseOutput(stdout, 2)

	assert.Equal(t, 2, report.Passed())
}
