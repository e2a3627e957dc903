package wrapper

import (
	"regexp"
	"strings"
)

// splitLines separates lines matching pattern from the rest of the code.
// Matching lines are returned trimmed and deduplicated in first-seen order.
func splitLines(code string, pattern *regexp.Regexp) ([]string, string) {
	var (
		hoisted []string
		kept    []string
		seen    = map[string]struct{}{}
	)
	for _, line := range strings.Split(code, "\n") {
		if pattern.MatchString(line) {
			trimmed := strings.TrimSpace(line)
			if _, dup := seen[trimmed]; !dup {
				seen[trimmed] = struct{}{}
				hoisted = append(hoisted, trimmed)
			}
			continue
		}
		kept = append(kept, line)
	}
	return hoisted, strings.Join(kept, "\n")
}

// dropLines removes every line matching pattern
func dropLines(code string, pattern *regexp.Regexp) string {
	_, rest := splitLines(code, pattern)
	return rest
}

// dropIndentedBlock removes each line matching header together with the
// indented (or blank) lines that follow it.
func dropIndentedBlock(code string, header *regexp.Regexp) string {
	lines := strings.Split(code, "\n")
	kept := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if !header.MatchString(lines[i]) {
			kept = append(kept, lines[i])
			continue
		}
		base := indentWidth(lines[i])
		for i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) != "" && indentWidth(next) <= base {
				break
			}
			i++
		}
	}
	return strings.Join(kept, "\n")
}

func indentWidth(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}

func normalizeNewlines(code string) string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	return strings.TrimRight(code, "\n\t ")
}

// dropStatements removes each line matching start and, when the statement
// opens more braces than it closes, the lines up to the balancing one.
func dropStatements(code string, start *regexp.Regexp) string {
	lines := strings.Split(code, "\n")
	kept := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if !start.MatchString(lines[i]) {
			kept = append(kept, lines[i])
			continue
		}
		depth := braceDelta(lines[i])
		for depth > 0 && i+1 < len(lines) {
			i++
			depth += braceDelta(lines[i])
		}
	}
	return strings.Join(kept, "\n")
}

func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}
