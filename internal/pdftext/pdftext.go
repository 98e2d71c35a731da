// Package pdftext extracts per-page plain text from the weekly plan PDFs.
package pdftext

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Extractor turns a PDF file into one text string per page.
type Extractor interface {
	Extract(path string) ([]string, error)
}

type extractor struct{}

func New() Extractor { return extractor{} }

func (extractor) Extract(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("pdf %s: %w", path, err)
	}
	if err := api.ValidateFile(path, nil); err != nil {
		return nil, fmt.Errorf("pdf %s: validate: %w", path, err)
	}
	count, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdf %s: page count: %w", path, err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pdf %s: open: %w", path, err)
	}
	defer f.Close()

	pages := make([]string, 0, count)
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		var buf bytes.Buffer
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("pdf %s: page %d: %w", path, i, err)
		}
		for _, row := range rows {
			buf.WriteString(joinRow(row.Content))
			buf.WriteByte('\n')
		}
		pages = append(pages, buf.String())
	}
	return pages, nil
}

// joinRow assembles one text row from its extracted words. Adjacent
// table cells arrive as separate words with no whitespace of their own,
// so a separator is inserted between words unless one side already
// carries it.
func joinRow(words []pdf.Text) string {
	var buf bytes.Buffer
	for i, word := range words {
		if word.S == "" {
			continue
		}
		if i > 0 && buf.Len() > 0 &&
			!strings.HasSuffix(buf.String(), " ") && !strings.HasPrefix(word.S, " ") {
			buf.WriteByte(' ')
		}
		buf.WriteString(word.S)
	}
	return buf.String()
}
