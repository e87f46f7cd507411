package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Compiler invokes the tectonic binary to typeset a .tex file. It is
// the only component here with real latency or failure modes, so runs
// are context-bounded.
type Compiler struct {
	TectonicPath string
	Timeout      time.Duration
}

func NewCompiler(tectonicPath string, timeout time.Duration) *Compiler {
	if tectonicPath == "" {
		tectonicPath = "tectonic"
	}
	return &Compiler{TectonicPath: tectonicPath, Timeout: timeout}
}

// Compile runs tectonic on texPath and returns the path of the PDF it
// produced alongside the source. Compiler output is surfaced in the
// error when the run fails.
func (c *Compiler) Compile(ctx context.Context, texPath string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.TectonicPath, texPath)
	cmd.Dir = filepath.Dir(texPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("tectonic not found at %q: install it or set TECTONIC_PATH", c.TectonicPath)
		}
		return "", fmt.Errorf("tectonic failed: %w: %s", err, truncate(string(out), 500))
	}

	pdfPath := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
	if _, err := os.Stat(pdfPath); err != nil {
		return "", fmt.Errorf("tectonic ran but produced no pdf at %s", pdfPath)
	}
	return pdfPath, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
