// Package render fills DOCX templates and converts the results to PDF.
package render

import (
	"fmt"

	docx "github.com/lukasjarosch/go-docx"
)

// DocxRenderer produces a filled copy of a DOCX template. Placeholders are
// written as {key} in the template body, headers, and footers.
type DocxRenderer struct{}

func NewDocxRenderer() *DocxRenderer {
	return &DocxRenderer{}
}

// Render implements core.TemplateRenderer. Placeholders with no matching
// field are left untouched; replacement values are inserted literally and
// never re-scanned.
func (d *DocxRenderer) Render(templatePath string, fields map[string]string, outPath string) error {
	doc, err := docx.Open(templatePath)
	if err != nil {
		return fmt.Errorf("open template: %w", err)
	}

	placeholders := make(docx.PlaceholderMap, len(fields))
	for key, value := range fields {
		placeholders[key] = value
	}

	if err := doc.ReplaceAll(placeholders); err != nil {
		return fmt.Errorf("substitute placeholders: %w", err)
	}

	if err := doc.WriteToFile(outPath); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
