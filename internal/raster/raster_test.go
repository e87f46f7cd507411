package raster

import (
	"context"
	"testing"
)

func TestPageCount_InvalidPDF(t *testing.T) {
	if _, err := PageCount([]byte("this is not a pdf")); err == nil {
		t.Error("expected error for non-pdf data")
	}
}

func TestPageCount_EmptyInput(t *testing.T) {
	if _, err := PageCount(nil); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestRasterizePage_InvalidPageNumber(t *testing.T) {
	if _, err := RasterizePage(context.Background(), []byte("x"), 0, Options{}); err == nil {
		t.Error("expected error for page 0")
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.DPI != 300 {
		t.Errorf("expected default DPI 300, got %d", o.DPI)
	}
	if o.PdftoppmPath != "pdftoppm" {
		t.Errorf("expected default binary %q, got %q", "pdftoppm", o.PdftoppmPath)
	}

	o = Options{DPI: 150, PdftoppmPath: "/opt/poppler/pdftoppm"}.withDefaults()
	if o.DPI != 150 || o.PdftoppmPath != "/opt/poppler/pdftoppm" {
		t.Errorf("explicit options overridden: %+v", o)
	}
}
