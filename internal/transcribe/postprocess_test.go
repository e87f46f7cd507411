package transcribe

import (
	"strings"
	"testing"
)

func TestCleanPage_PercentEscaping(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`$40 % 3 = 1$`, `$40 \% 3 = 1$`},
		{`$40 \% 3 = 1$`, `$40 \% 3 = 1$`}, // already escaped stays single-escaped
		{`a % b \% c`, `a \% b \% c`},
	}
	for _, tt := range tests {
		if got := CleanPage(tt.in); got != tt.want {
			t.Errorf("CleanPage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCleanPage_DefinitionOperator(t *testing.T) {
	if got := CleanPage("$a_n : = 2n$"); got != "$a_n := 2n$" {
		t.Errorf("expected := fix, got %q", got)
	}
}

func TestCleanPage_StripsCodeFence(t *testing.T) {
	in := "```markdown\n# Problem 1\nbody\n```"
	want := "# Problem 1\nbody"
	if got := CleanPage(in); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Bare fence without a language tag.
	in = "```\ntext\n```"
	if got := CleanPage(in); got != "text" {
		t.Errorf("expected %q, got %q", "text", got)
	}

	// Unfenced input passes through.
	if got := CleanPage("# Problem 1"); got != "# Problem 1" {
		t.Errorf("unfenced input altered: %q", got)
	}
}

func TestCleanPage_BulletCoercion(t *testing.T) {
	got := CleanPage("intro\n- first\n* second")
	if strings.Contains(got, "- first") || strings.Contains(got, "* second") {
		t.Errorf("expected list markers rewritten, got %q", got)
	}
	if !strings.Contains(got, "> first") || !strings.Contains(got, "> second") {
		t.Errorf("expected > bullets, got %q", got)
	}
	// The rewrite forces a blank-line gap before each bullet.
	if !strings.Contains(got, "intro\n\n\n> first") {
		t.Errorf("expected forced gap before bullet, got %q", got)
	}
}

func TestCleanPage_HeadingTailSplit(t *testing.T) {
	got := CleanPage("## a) Proof by induction")
	if got != "## a)\nProof by induction" {
		t.Errorf("expected heading split, got %q", got)
	}

	// Headings already on their own line are untouched.
	if got := CleanPage("## a)"); got != "## a)" {
		t.Errorf("bare heading altered: %q", got)
	}
}
