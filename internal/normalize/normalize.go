package normalize

import (
	"regexp"
	"strings"
)

var spaceRe = regexp.MustCompile(`\s+`)

// Clean tidies text extracted from a page: NBSP to plain space, runs of
// whitespace collapsed, edges trimmed.
func Clean(text string) string {
	text = strings.ReplaceAll(text, "\u00a0", " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
