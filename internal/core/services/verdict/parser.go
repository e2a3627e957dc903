package verdict

import (
	"strconv"
	"strings"

	"gitlab.com/codejudge.net/internal/domain"
)

// Failure is the first-failure record emitted by the driver
type Failure struct {
	Index    int
	Expected string
	Actual   string
}

// Report is everything the driver reported on stdout
type Report struct {
	Tests   []domain.TestCaseResult
	Failure *Failure
}

// Passed counts PASS records
func (r *Report) Passed() int {
	n := 0
	for _, t := range r.Tests {
		if t.Passed {
			n++
		}
	}
	return n
}

// ParseOutput extracts protocol records from program output. Lines that are
// not records, including anything the user code printed, are ignored.
//
// Records must arrive in driver order: a TEST record is accepted only when
// its index is the next expected one and below total (when total > 0), and a
// FAIL record only when it names the first failing test. Nothing is accepted
// after the FAIL record. Lines breaking that order are treated as user output,
// so duplicated or forged records cannot raise the passed count above total.
func ParseOutput(stdout string, total int) *Report {
	report := &Report{}
	firstFailure := -1
	for _, raw := range strings.Split(stdout, "\n") {
		if report.Failure != nil {
			break
		}
		line := strings.TrimRight(raw, "\r")
		switch {
		case strings.HasPrefix(line, domain.RecordTest+domain.FieldSeparator):
			tc, ok := parseTestRecord(line)
			if !ok || tc.Index != len(report.Tests) || (total > 0 && tc.Index >= total) {
				continue
			}
			if !tc.Passed && firstFailure < 0 {
				firstFailure = tc.Index
			}
			report.Tests = append(report.Tests, tc)
		case strings.HasPrefix(line, domain.RecordFail+domain.FieldSeparator):
			if f, ok := parseFailRecord(line); ok && firstFailure >= 0 && f.Index == firstFailure {
				report.Failure = f
			}
		}
	}
	return report
}

func parseTestRecord(line string) (domain.TestCaseResult, bool) {
	parts := strings.SplitN(line, domain.FieldSeparator, 6)
	if len(parts) != 6 {
		return domain.TestCaseResult{}, false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.TestCaseResult{}, false
	}
	var passed bool
	switch parts[2] {
	case domain.OutcomePass:
		passed = true
	case domain.OutcomeFail:
	default:
		return domain.TestCaseResult{}, false
	}
	return domain.TestCaseResult{
		Index:    index,
		Passed:   passed,
		Input:    domain.UnescapeField(parts[3]),
		Expected: domain.UnescapeField(parts[4]),
		Actual:   domain.UnescapeField(parts[5]),
	}, true
}

func parseFailRecord(line string) (*Failure, bool) {
	parts := strings.SplitN(line, domain.FieldSeparator, 4)
	if len(parts) != 4 {
		return nil, false
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, false
	}
	return &Failure{
		Index:    index,
		Expected: domain.UnescapeField(parts[2]),
		Actual:   domain.UnescapeField(parts[3]),
	}, true
}
