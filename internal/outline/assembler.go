package outline

import (
	"regexp"
	"strings"
)

// Heading patterns. The problem pattern tolerates a missing or
// single/double marker because the model transcribes inconsistently;
// parts and subparts require their exact marker depth.
var (
	problemRe = regexp.MustCompile(`(?i)^(?:#|##)?\s*problem\s+(\d+)`)
	partRe    = regexp.MustCompile(`(?i)^##\s*([a-z])\)`)
	subpartRe = regexp.MustCompile(`(?i)^###\s*([ivx]+)\)`)
)

// state tracks the innermost node currently accepting content.
type state int

const (
	stateNone state = iota
	stateProblem
	statePart
	stateSubpart
)

// assembler is the single-pass line machine. It indexes into the
// document's own slices rather than holding node pointers, so closing a
// node is just a state transition; only sealed values ever leave this
// package.
type assembler struct {
	doc *Document
	st  state

	probIdx, partIdx, subIdx int

	// Line buffers for the open node at each level. A node's content is
	// joined and trimmed once, when the node is sealed.
	probBuf, partBuf, subBuf []string
}

// Assemble parses a full transcript into a Document. It never fails:
// unrecognized lines become content of the innermost open node, and
// lines with no open node to receive them are dropped. Each call builds
// a fresh tree.
func Assemble(transcript string) *Document {
	a := &assembler{doc: &Document{Problems: []Problem{}}}
	for _, line := range strings.Split(transcript, "\n") {
		a.processLine(strings.TrimRight(line, " \t\r\f\v"))
	}
	a.closeProblem()
	return a.doc
}

func (a *assembler) processLine(line string) {
	clean := strings.TrimSpace(line)

	// Problem headings are recognized unconditionally.
	if m := problemRe.FindStringSubmatch(clean); m != nil {
		a.closeProblem()
		a.doc.Problems = append(a.doc.Problems, Problem{ID: m[1], Parts: []Part{}})
		a.probIdx = len(a.doc.Problems) - 1
		a.probBuf = nil
		a.st = stateProblem
		return
	}

	// Part headings only count inside an open Problem; otherwise the
	// line falls through to content routing below.
	if a.st >= stateProblem {
		if m := partRe.FindStringSubmatch(clean); m != nil {
			a.flushProblemContent()
			a.closePart()
			p := &a.doc.Problems[a.probIdx]
			p.Parts = append(p.Parts, Part{ID: m[1], Subparts: []Subpart{}})
			a.partIdx = len(p.Parts) - 1
			a.partBuf = nil
			a.st = statePart
			return
		}
	}

	// Subpart headings only count inside an open Part.
	if a.st >= statePart {
		if m := subpartRe.FindStringSubmatch(clean); m != nil {
			a.closeSubpart()
			pt := &a.doc.Problems[a.probIdx].Parts[a.partIdx]
			pt.Subparts = append(pt.Subparts, Subpart{ID: m[1]})
			a.subIdx = len(pt.Subparts) - 1
			a.subBuf = nil
			a.st = stateSubpart
			return
		}
	}

	// Content routes to the innermost open node. With nothing open the
	// line has no home and is dropped.
	switch a.st {
	case stateSubpart:
		a.subBuf = append(a.subBuf, line)
	case statePart:
		a.partBuf = append(a.partBuf, line)
	case stateProblem:
		a.probBuf = append(a.probBuf, line)
	}
}

// closeSubpart seals the open Subpart, if any, and returns to the
// enclosing Part.
func (a *assembler) closeSubpart() {
	if a.st != stateSubpart {
		return
	}
	sp := &a.doc.Problems[a.probIdx].Parts[a.partIdx].Subparts[a.subIdx]
	sp.Content = seal(a.subBuf)
	a.subBuf = nil
	a.st = statePart
}

// closePart seals the open Subpart and Part, innermost first.
func (a *assembler) closePart() {
	a.closeSubpart()
	if a.st != statePart {
		return
	}
	pt := &a.doc.Problems[a.probIdx].Parts[a.partIdx]
	pt.Content = seal(a.partBuf)
	a.partBuf = nil
	a.st = stateProblem
}

// flushProblemContent appends any buffered problem-level lines to the
// open Problem's content without closing it. The first flush happens
// when the first Part opens; a later flush with an empty buffer is a
// no-op, so content is never emitted twice.
func (a *assembler) flushProblemContent() {
	if a.st < stateProblem || len(a.probBuf) == 0 {
		return
	}
	p := &a.doc.Problems[a.probIdx]
	chunk := seal(a.probBuf)
	if p.Content != "" {
		p.Content += "\n" + chunk
	} else {
		p.Content = chunk
	}
	a.probBuf = nil
}

// closeProblem seals everything that is open: problem content is
// flushed, then the Subpart and Part close innermost-first, then the
// Problem itself stops accepting lines.
func (a *assembler) closeProblem() {
	a.flushProblemContent()
	a.closePart()
	a.st = stateNone
}

// seal joins buffered lines and trims the result, the single trim each
// node's content receives.
func seal(buf []string) string {
	return strings.TrimSpace(strings.Join(buf, "\n"))
}
