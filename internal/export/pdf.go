package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"content-studio/internal/domain"
)

// ScriptPDF renders the transcript as a printable PDF document.
func ScriptPDF(script domain.ScriptData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(script.Title, true)
	pdf.SetAuthor("Content Studio", false)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := strings.TrimSpace(script.Title)
	if title == "" {
		title = "Roteiro"
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 10, tr(title), "", "L", false)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, tr("--- ROTEIRO ---"), "", "L", false)
	pdf.Ln(4)

	for _, part := range script.Script {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 6, tr(speakerLabel(part.Speaker)+":"), "", "L", false)

		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 6, tr(part.Text), "", "L", false)
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render script pdf: %w", err)
	}
	return buf.Bytes(), nil
}
