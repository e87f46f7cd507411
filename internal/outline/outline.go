// Package outline reconstructs the Problem/Part/Subpart hierarchy from a
// vision-model transcript of handwritten homework. The transcript is
// markdown-like but error-prone; the assembler recovers a strict
// three-level tree from it without ever failing on malformed input.
package outline

// Document is the root of one assembled transcript.
type Document struct {
	Problems []Problem `json:"problems"`
}

// Problem is a top-level exercise. ID is the numeral captured from the
// heading, kept verbatim ("01" and "1" are distinct).
type Problem struct {
	ID      string `json:"problem_id"`
	Content string `json:"content"`
	Parts   []Part `json:"parts"`
}

// Part is a lettered subdivision of a Problem.
type Part struct {
	ID       string    `json:"part_id"`
	Content  string    `json:"content"`
	Subparts []Subpart `json:"subparts"`
}

// Subpart is a roman-numeral subdivision of a Part.
type Subpart struct {
	ID      string `json:"subpart_id"`
	Content string `json:"content"`
}

// Clone returns a deep copy of the document. Downstream stages that
// rewrite node content work on a copy so the assembled tree stays
// untouched.
func (d *Document) Clone() *Document {
	out := &Document{Problems: make([]Problem, len(d.Problems))}
	for i, p := range d.Problems {
		cp := p
		cp.Parts = make([]Part, len(p.Parts))
		for j, pt := range p.Parts {
			cpt := pt
			cpt.Subparts = append([]Subpart(nil), pt.Subparts...)
			if cpt.Subparts == nil {
				cpt.Subparts = []Subpart{}
			}
			cp.Parts[j] = cpt
		}
		out.Problems[i] = cp
	}
	return out
}
