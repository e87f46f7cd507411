package transcribe

import (
	"regexp"
	"strings"
)

var (
	// Standard list markers get coerced to the "> " bullet dialect,
	// with blank lines forced between items.
	bulletRe = regexp.MustCompile(`(^|\n)([-*])\s+`)

	// Headings with trailing prose ("## a) Proof") split onto two
	// lines so the heading line carries only the id.
	headingTailRe = regexp.MustCompile(`(?m)^(#+\s+[a-zA-Z0-9]+\))\s+(.+)$`)
)

// CleanPage applies the per-page fixes the model's output routinely
// needs before assembly.
func CleanPage(s string) string {
	// Normalize percent escaping: fold any existing \% back to %, then
	// escape every % once. Handles both raw and pre-escaped output.
	s = strings.ReplaceAll(s, `\%`, "%")
	s = strings.ReplaceAll(s, "%", `\%`)

	// The model tends to insert a space in the definition operator.
	s = strings.ReplaceAll(s, ": =", ":=")

	s = stripCodeFence(s)
	s = bulletRe.ReplaceAllString(s, "$1\n\n> ")
	s = headingTailRe.ReplaceAllString(s, "$1\n$2")
	return s
}

// stripCodeFence removes a markdown fence wrapping the whole page, a
// common model habit when asked for markdown output.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
