package domain

import "strings"

// Driver-to-orchestrator protocol. Each evaluated test prints
//
//	TEST|<index>|<PASS|FAIL>|<input>|<expected>|<actual>
//
// and the first failing test additionally prints
//
//	FAIL|<index>|<expected>|<actual>
//
// Serialized values never contain a raw separator: the driver writes it as
// the JSON escape \u007c.
const (
	RecordTest     = "TEST"
	RecordFail     = "FAIL"
	OutcomePass    = "PASS"
	OutcomeFail    = "FAIL"
	FieldSeparator = "|"
	EscapedPipe    = `\u007c`
)

// EscapeField makes a serialized value safe to embed in a record
func EscapeField(s string) string {
	return strings.ReplaceAll(s, FieldSeparator, EscapedPipe)
}

// UnescapeField restores a serialized value read from a record. Only an
// escape that starts a JSON escape sequence is restored: after an escaped
// backslash, the text u007c is literal.
func UnescapeField(s string) string {
	if !strings.Contains(s, EscapedPipe) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if strings.HasPrefix(s[i:], EscapedPipe) {
			b.WriteString(FieldSeparator)
			i += len(EscapedPipe) - 1
			continue
		}
		b.WriteByte(s[i])
		if i+1 < len(s) {
			i++
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
