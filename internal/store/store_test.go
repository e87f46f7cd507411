package store

import (
	"strings"
	"testing"

	"github.com/awerner3/mathscribe/internal/outline"
)

func TestStore_TranscriptRoundtrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.SaveTranscript("job1", "# Problem 1\nbody"); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Transcript("job1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "# Problem 1\nbody" {
		t.Errorf("expected transcript back, got %q", got)
	}
}

func TestStore_OutlineRoundtrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := outline.Assemble("# Problem 1\nbody")
	if err := s.SaveOutline("job2", doc); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := s.Outline("job2")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{`"problem_id": "1"`, `"content": "body"`, `"parts": []`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected outline json to contain %s, got %s", want, data)
		}
	}
}

func TestStore_MissingArtifact(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Transcript("nope"); err == nil {
		t.Error("expected error for missing artifact")
	}
}

func TestStore_TeXPathInsideJobDir(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := s.TeXPath("../escape")
	if strings.Contains(p, "..") {
		t.Errorf("path traversal not neutralized: %q", p)
	}
	if !strings.HasPrefix(p, dir) {
		t.Errorf("expected path under %q, got %q", dir, p)
	}
}
