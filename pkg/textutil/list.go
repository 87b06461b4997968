package textutil

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// maxListRunes is the display budget for the compact list form.
	maxListRunes = 80
	// maxListLines caps the truncated list.
	maxListLines = 4
	// shortClauseRunes is the bound below which a trailing clause is
	// rendered as an indented sub-item.
	shortClauseRunes = 50
)

var (
	numberedLinePattern   = regexp.MustCompile(`^[0-9０-９一二三四五六七八九十]+[.、)\-]`)
	bulletLinePattern     = regexp.MustCompile(`^[•·\-*]`)
	indentedBulletPattern = regexp.MustCompile(`^[ \t]+[•·\-*]`)
	innerSpacePattern     = regexp.MustCompile(`[ \t]+`)
)

// listKeywords mark lines that open a verdict clause in the analysis
// output. Lines led by one of these get promoted to bullets.
var listKeywords = []string{"違反", "違法", "根據", "該廣告", "綜合", "結論"}

// FormatList reformats free-form analysis prose into a compact
// line-oriented list suitable for terse UI display. It is a best-effort
// heuristic, not a parser: any input passes through without error, already
// well-formed lists are preserved verbatim, and output exceeding 80 runes
// is cut to the first 4 lines.
func FormatList(text string) string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = innerSpacePattern.ReplaceAllString(line, " ")

		switch {
		case numberedLinePattern.MatchString(line) || bulletLinePattern.MatchString(line):
			out = append(out, line)
		case hasListKeyword(line):
			out = append(out, "• "+line)
		case isShortClause(line):
			out = append(out, "  - "+line)
		default:
			out = append(out, line)
		}
	}

	joined := strings.Join(out, "\n")
	if utf8.RuneCountInString(joined) > maxListRunes && len(out) > maxListLines {
		joined = strings.Join(out[:maxListLines], "\n")
	}
	return joined
}

// FormatListHTML maps each non-blank line to a wrapper div based on the
// same classification FormatList uses, without truncation. It is applied
// after FormatList already ran, so the input is expected to be short.
func FormatListHTML(text string) string {
	var b strings.Builder
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		switch {
		case indentedBulletPattern.MatchString(raw):
			content := strings.TrimSpace(strings.TrimLeft(trimmed, "•·-* "))
			writeItem(&b, "list-item-indented", content)
		case numberedLinePattern.MatchString(trimmed):
			writeItem(&b, "list-item-numbered", trimmed)
		case bulletLinePattern.MatchString(trimmed):
			writeItem(&b, "list-item-bullet", trimmed)
		default:
			writeItem(&b, "list-item", trimmed)
		}
	}
	return b.String()
}

func writeItem(b *strings.Builder, class, content string) {
	b.WriteString(`<div class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(content))
	b.WriteString(`</div>`)
}

func hasListKeyword(line string) bool {
	for _, kw := range listKeywords {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return false
}

// isShortClause reports whether a line reads as a terse clause worth
// indenting: short, and either closed by sentence/colon punctuation or
// containing a full-width separator.
func isShortClause(line string) bool {
	if utf8.RuneCountInString(line) >= shortClauseRunes {
		return false
	}
	if strings.ContainsAny(line, "，；") {
		return true
	}
	return strings.HasSuffix(line, "。") || strings.HasSuffix(line, ".") ||
		strings.HasSuffix(line, "！") || strings.HasSuffix(line, "!") ||
		strings.HasSuffix(line, "？") || strings.HasSuffix(line, "?") ||
		strings.HasSuffix(line, "：") || strings.HasSuffix(line, ":")
}
