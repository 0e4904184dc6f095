package infrastructure

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
)

// FitzPreviewer rasterizes PDF pages with MuPDF.
type FitzPreviewer struct{}

func NewFitzPreviewer() *FitzPreviewer { return &FitzPreviewer{} }

// RenderFirstPage writes page 1 of the PDF at pdfPath as a PNG to outPath.
func (FitzPreviewer) RenderFirstPage(pdfPath, outPath string) error {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return fmt.Errorf("PDF %s has no pages", pdfPath)
	}
	img, err := doc.Image(0)
	if err != nil {
		return fmt.Errorf("failed to render page 0: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	if err := imaging.Save(img, outPath); err != nil {
		return fmt.Errorf("failed to save preview: %w", err)
	}
	return nil
}
