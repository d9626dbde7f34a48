package convert

import (
	"fmt"
	"io"
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PDFConverter extracts plain text page by page; each page becomes one
// top-level section of the corpus file.
type PDFConverter struct{}

func (c *PDFConverter) Convert(r io.Reader, filename string) (string, error) {
	// ledongthuc/pdf needs a ReadSeeker with a known size, so spool to a
	// temp file first.
	tmp, err := os.CreateTemp("", "cargokb-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	var out emitter
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out.heading(1, fmt.Sprintf("Sayfa %d", i))
		out.paragraph(text)
	}
	return out.String(), nil
}
