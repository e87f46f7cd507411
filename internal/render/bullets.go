// Package render turns an assembled outline into LaTeX and drives the
// external compiler that typesets it.
package render

import (
	"strings"

	"github.com/awerner3/mathscribe/internal/outline"
)

// Block delimiters emitted around bullet groups. The "[>]" label keeps
// the handwritten arrow marker visible in the typeset list.
const (
	itemizeBegin = `\begin{itemize}`
	itemizeEnd   = `\end{itemize}`
	itemPrefix   = `\item[>] `
)

// NormalizeBullets rewrites "> " bullet lines into itemize blocks.
// Consecutive bullet lines share one block; any non-bullet line, blank
// lines included, closes the current block. Non-bullet lines pass
// through untouched.
func NormalizeBullets(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inList := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, ">") {
			if !inList {
				out = append(out, itemizeBegin)
				inList = true
			}
			item := strings.TrimSpace(stripped[1:])
			out = append(out, itemPrefix+item)
			continue
		}
		if inList {
			out = append(out, itemizeEnd)
			inList = false
		}
		out = append(out, line)
	}
	if inList {
		out = append(out, itemizeEnd)
	}
	return strings.Join(out, "\n")
}

// NormalizeDocument returns a copy of the document with every node's
// content passed through NormalizeBullets. The assembled tree itself is
// never mutated.
func NormalizeDocument(doc *outline.Document) *outline.Document {
	cp := doc.Clone()
	for i := range cp.Problems {
		p := &cp.Problems[i]
		if p.Content != "" {
			p.Content = NormalizeBullets(p.Content)
		}
		for j := range p.Parts {
			pt := &p.Parts[j]
			if pt.Content != "" {
				pt.Content = NormalizeBullets(pt.Content)
			}
			for k := range pt.Subparts {
				sp := &pt.Subparts[k]
				if sp.Content != "" {
					sp.Content = NormalizeBullets(sp.Content)
				}
			}
		}
	}
	return cp
}
