package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/awerner3/mathscribe/internal/outline"
)

func TestRenderTeX_FullDocument(t *testing.T) {
	doc := outline.Assemble(`# Problem 1
intro
## a)
part body
### i)
sub body`)

	tex, err := RenderTeX(doc, Options{Title: "HW 3", Author: "A. Student", Date: "1/15/2026"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		`\documentclass{article}`,
		`\title{HW 3}`,
		`\author{A. Student}`,
		`\date{1/15/2026}`,
		`\section*{Problem 1}`,
		"intro",
		`\subsection*{a)}`,
		"part body",
		`\subsubsection*{i)}`,
		"sub body",
		`\end{document}`,
	} {
		if !strings.Contains(tex, want) {
			t.Errorf("expected output to contain %q:\n%s", want, tex)
		}
	}
}

func TestRenderTeX_ContentVerbatim(t *testing.T) {
	// Math and already-normalized itemize blocks must pass through
	// without escaping.
	doc := outline.Assemble("# Problem 1\n$x^2 - 4 = 0, (x-2)(x+2)=0$")
	norm := NormalizeDocument(doc)
	tex, err := RenderTeX(norm, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(tex, `$x^2 - 4 = 0, (x-2)(x+2)=0$`) {
		t.Errorf("math content altered:\n%s", tex)
	}
}

func TestRenderTeX_Defaults(t *testing.T) {
	tex, err := RenderTeX(outline.Assemble("# Problem 1\nx"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(tex, `\title{Math Homework}`) {
		t.Errorf("expected default title:\n%s", tex)
	}
	if strings.Contains(tex, `\date{}`) {
		t.Errorf("expected default date to be filled in:\n%s", tex)
	}
}

func TestRenderTeX_EmptyProblemContentOmitted(t *testing.T) {
	doc := outline.Assemble("# Problem 1\n## a)\nbody")
	tex, err := RenderTeX(doc, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(tex, `\section*{Problem 1}`) {
		t.Errorf("missing section heading:\n%s", tex)
	}
	if !strings.Contains(tex, `\subsection*{a)}`) {
		t.Errorf("missing part heading:\n%s", tex)
	}
}

func TestCompiler_MissingBinary(t *testing.T) {
	c := NewCompiler("definitely-not-a-real-binary-xyz", time.Second)
	_, err := c.Compile(context.Background(), "/tmp/nonexistent.tex")
	if err == nil {
		t.Fatal("expected error for missing compiler binary")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected a not-found error, got: %v", err)
	}
}

func TestNewCompiler_DefaultPath(t *testing.T) {
	c := NewCompiler("", 0)
	if c.TectonicPath != "tectonic" {
		t.Errorf("expected default path %q, got %q", "tectonic", c.TectonicPath)
	}
}
