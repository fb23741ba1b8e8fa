package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumatch/resume-matcher/internal/errs"
)

type TextExtractor interface {
	ExtractText(filePath, mediaType string) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

// ExtractText converts a stored upload into a single text string. Dispatch is
// on the declared media type: PDF uploads are parsed page by page in document
// order, everything else is read as UTF-8 text.
func (e *textExtractor) ExtractText(filePath, mediaType string) (string, error) {
	if isPDF(mediaType) {
		return e.extractPDF(filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read file: %v", errs.ErrExtraction, err)
	}

	return string(data), nil
}

func (e *textExtractor) extractPDF(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to open PDF: %v", errs.ErrExtraction, err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest of the document
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in PDF", errs.ErrExtraction)
	}

	return text, nil
}

func isPDF(mediaType string) bool {
	mediaType = strings.ToLower(mediaType)
	return mediaType == "application/pdf" || strings.HasSuffix(mediaType, "+pdf")
}
