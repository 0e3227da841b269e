package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// invisibles maps formatting code points that survive copy-paste from the
// dashboard. Spaces become a regular space; zero-width marks disappear.
var invisibles = strings.NewReplacer(
	"\u00a0", " ",
	"\u2009", " ",
	"\u202f", " ",
	"\u3000", " ",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\u2060", "",
	"\ufeff", "",
)

// escapes turns literal escape sequences into real control characters.
// Longer sequences come first so a doubly escaped newline is consumed whole.
var escapes = strings.NewReplacer(
	`\\r\\n`, "\n",
	`\\n`, "\n",
	`\r\n`, "\n",
	`\n`, "\n",
	`\\t`, "\t",
	`\t`, "\t",
	"\r\n", "\n",
	"\r", "\n",
)

var blankLinesRe = regexp.MustCompile(`\n[ \f\v]*(?:\n[ \f\v]*)+`)

// Text normalizes s for field matching: invisible characters removed,
// escapes and tabs resolved, and every whitespace run flattened to a single
// space. Empty input is returned unchanged.
func Text(s string) string {
	if s == "" {
		return s
	}
	s = prepare(s)
	return strings.Join(strings.Fields(s), " ")
}

// Lines is Text without the final flattening step: line breaks survive,
// whitespace inside each line is collapsed and blank lines are dropped.
func Lines(s string) string {
	if s == "" {
		return s
	}
	s = prepare(s)
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		collapsed := strings.Join(strings.Fields(line), " ")
		if collapsed == "" {
			continue
		}
		out = append(out, collapsed)
	}
	return strings.Join(out, "\n")
}

// prepare runs the steps shared by Text and Lines, in order.
func prepare(s string) string {
	s = canonical(s)
	s = invisibles.Replace(s)
	s = escapes.Replace(s)
	s = strings.ReplaceAll(s, "\t", " ")
	s = blankLinesRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}

// canonical folds full-width ASCII to its narrow form and composes
// decomposed Hangul so labels written either way compare equal.
func canonical(s string) string {
	t := transform.Chain(width.Fold, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
