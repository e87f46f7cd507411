// Package raster converts uploaded PDF pages into JPEG images for the
// vision model. Validation and page counting use a PDF library;
// rasterization itself shells out to pdftoppm, which handles scanned
// documents far better than pure-Go renderers.
package raster

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"

	pdflib "github.com/ledongthuc/pdf"
)

// Options configure a rasterization run.
type Options struct {
	DPI          int    // defaults to 300
	PdftoppmPath string // defaults to "pdftoppm"
}

func (o Options) withDefaults() Options {
	if o.DPI <= 0 {
		o.DPI = 300
	}
	if o.PdftoppmPath == "" {
		o.PdftoppmPath = "pdftoppm"
	}
	return o
}

// PageCount parses the PDF and returns its page count. It doubles as
// upload validation: garbage input errors out here before any
// subprocess runs.
func PageCount(pdfData []byte) (int, error) {
	reader, err := pdflib.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	n := reader.NumPage()
	if n < 1 {
		return 0, fmt.Errorf("pdf has no pages")
	}
	return n, nil
}

// Rasterize converts every page of the PDF into a JPEG at the
// configured DPI, returned in page order.
func Rasterize(ctx context.Context, pdfData []byte, opts Options) ([][]byte, error) {
	return rasterize(ctx, pdfData, opts, 0, 0)
}

// RasterizePage converts a single 1-based page.
func RasterizePage(ctx context.Context, pdfData []byte, page int, opts Options) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page number %d", page)
	}
	pages, err := rasterize(ctx, pdfData, opts, page, page)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("page %d not found in pdf", page)
	}
	return pages[0], nil
}

func rasterize(ctx context.Context, pdfData []byte, opts Options, first, last int) ([][]byte, error) {
	opts = opts.withDefaults()

	tmpDir, err := os.MkdirTemp("", "mathscribe-raster-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	args := []string{"-jpeg", "-r", strconv.Itoa(opts.DPI)}
	if first > 0 {
		args = append(args, "-f", strconv.Itoa(first), "-l", strconv.Itoa(last))
	}
	args = append(args, pdfPath, filepath.Join(tmpDir, "page"))

	cmd := exec.CommandContext(ctx, opts.PdftoppmPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, bytes.TrimSpace(out))
	}

	files, err := filepath.Glob(filepath.Join(tmpDir, "page-*.jpg"))
	if err != nil {
		return nil, fmt.Errorf("glob pages: %w", err)
	}
	// pdftoppm zero-pads page numbers, so lexical order is page order.
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages")
	}

	pages := make([][]byte, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read page image: %w", err)
		}
		pages = append(pages, data)
	}
	return pages, nil
}
