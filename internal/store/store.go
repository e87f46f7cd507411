// Package store keeps per-job pipeline artifacts on disk: the raw
// transcript, the assembled outline, and the rendered/compiled
// document. Handlers read artifacts back by job ID.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/awerner3/mathscribe/internal/outline"
)

const (
	transcriptFile = "transcript.md"
	outlineFile    = "outline.json"
	texFile        = "homework.tex"
	pdfFile        = "homework.pdf"
)

// Store is a directory-per-job artifact store rooted at one data dir.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) jobDir(jobID string) string {
	// Job IDs are ULIDs generated by the pipeline; Base strips anything
	// path-like that arrives via a URL.
	return filepath.Join(s.root, filepath.Base(jobID))
}

func (s *Store) write(jobID, name string, data []byte) error {
	dir := s.jobDir(jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create job dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *Store) read(jobID, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.jobDir(jobID), name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

// SaveTranscript stores the joined multi-page transcript.
func (s *Store) SaveTranscript(jobID, text string) error {
	return s.write(jobID, transcriptFile, []byte(text))
}

// Transcript returns the stored transcript.
func (s *Store) Transcript(jobID string) (string, error) {
	data, err := s.read(jobID, transcriptFile)
	return string(data), err
}

// SaveOutline stores the assembled document as indented JSON.
func (s *Store) SaveOutline(jobID string, doc *outline.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal outline: %w", err)
	}
	return s.write(jobID, outlineFile, data)
}

// Outline returns the stored outline JSON.
func (s *Store) Outline(jobID string) ([]byte, error) {
	return s.read(jobID, outlineFile)
}

// SaveTeX stores the rendered LaTeX source.
func (s *Store) SaveTeX(jobID, tex string) error {
	return s.write(jobID, texFile, []byte(tex))
}

// TeX returns the stored LaTeX source.
func (s *Store) TeX(jobID string) (string, error) {
	data, err := s.read(jobID, texFile)
	return string(data), err
}

// TeXPath returns where the job's LaTeX source lives; the compiler
// writes its PDF alongside it.
func (s *Store) TeXPath(jobID string) string {
	return filepath.Join(s.jobDir(jobID), texFile)
}

// PDF returns the compiled document.
func (s *Store) PDF(jobID string) ([]byte, error) {
	return s.read(jobID, pdfFile)
}
