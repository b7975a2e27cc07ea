// Package ingest turns uploaded document bytes into plain text.
//
// PDF content is detected by filename suffix, MIME type, or magic
// header; its pages are extracted and concatenated without separators.
// Anything else is decoded as text with invalid UTF-8 byte sequences
// dropped rather than failing.
package ingest

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pdfMagic is the file header of every PDF document.
var pdfMagic = []byte("%PDF-")

// Extract returns the plain text of raw. hint is a filename or MIME
// type used to pick the decoder; the PDF magic header is honored even
// without a hint. Only unreadable PDFs produce an error.
func Extract(raw []byte, hint string) (string, error) {
	if isPDF(raw, hint) {
		return extractPDF(raw)
	}
	return strings.ToValidUTF8(string(raw), ""), nil
}

func isPDF(raw []byte, hint string) bool {
	h := strings.ToLower(hint)
	return strings.HasSuffix(h, ".pdf") ||
		h == "application/pdf" ||
		bytes.HasPrefix(raw, pdfMagic)
}

// extractPDF concatenates the text of every page. Pages that cannot be
// read are skipped; only a document that cannot be opened errors.
func extractPDF(raw []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
