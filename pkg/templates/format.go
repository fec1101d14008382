package templates

import (
	"regexp"
	"strings"
)

// Reformatting patterns. Each call uses fresh match state; the compiled
// patterns themselves are immutable and safe to share.
var (
	placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

	// Split-keyword repair: join and BY keywords a substitution step left
	// straddling a line break.
	splitOuterPattern = regexp.MustCompile(`(?i)\b(OUTER)\s*\n\s*(JOIN)\b`)
	splitJoinPattern  = regexp.MustCompile(`(?i)\b(LEFT|RIGHT|INNER|FULL|CROSS)\s*\n\s*((?:OUTER[ \t]+)?JOIN)\b`)
	splitGroupPattern = regexp.MustCompile(`(?i)\b(GROUP|ORDER)\s*\n\s*(BY)\b`)

	// clausePattern forces each major clause keyword onto its own line.
	// The leading \s+ absorbs any existing line break, so re-running the
	// replacement leaves already-formatted SQL unchanged. Qualified join
	// forms come before the bare JOIN alternative so the whole keyword is
	// consumed in one match.
	clausePattern = regexp.MustCompile(`(?i)\s+((?:LEFT|RIGHT|INNER|FULL|CROSS)[ \t]+(?:OUTER[ \t]+)?JOIN|OUTER[ \t]+JOIN|JOIN|FROM|WHERE|HAVING|GROUP[ \t]+BY|ORDER[ \t]+BY)\b`)

	leadingSpacePattern  = regexp.MustCompile(`(?m)^[ \t]+`)
	trailingSpacePattern = regexp.MustCompile(`(?m)[ \t]+$`)
	blankLinePattern     = regexp.MustCompile(`\n{2,}`)
)

// Format re-flows a SQL string for readability: it repairs join keywords
// split across lines, puts each major clause keyword at the start of its
// own line, and collapses redundant blank lines. Single-quoted literals
// are left untouched, so a string value containing a clause keyword is
// never split. Formatting an already-formatted string yields the same
// string.
func Format(sql string) string {
	var b strings.Builder
	rest := sql
	for {
		i := strings.IndexByte(rest, '\'')
		if i < 0 {
			b.WriteString(reflow(rest))
			break
		}
		b.WriteString(reflow(rest[:i]))
		end := literalEnd(rest, i)
		b.WriteString(rest[i:end])
		rest = rest[end:]
	}

	out := leadingSpacePattern.ReplaceAllString(b.String(), "")
	out = trailingSpacePattern.ReplaceAllString(out, "")
	out = blankLinePattern.ReplaceAllString(out, "\n")

	return strings.TrimSpace(out)
}

// reflow applies the keyword repairs and clause line breaks to a segment
// containing no quoted literals.
func reflow(segment string) string {
	out := splitOuterPattern.ReplaceAllString(segment, "$1 $2")
	out = splitJoinPattern.ReplaceAllString(out, "$1 $2")
	out = splitGroupPattern.ReplaceAllString(out, "$1 $2")
	return clausePattern.ReplaceAllString(out, "\n$1")
}

// literalEnd returns the index just past the single-quoted literal opening
// at start. A doubled quote escapes a quote inside the literal; an
// unterminated literal runs to the end of the string.
func literalEnd(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		if s[i] != '\'' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}
