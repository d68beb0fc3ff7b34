package report

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF lays out report markdown on A4 pages. Headings and list items
// get their own styles; inline emphasis markers are dropped.
func RenderPDF(title, markdown string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("ZenAI", true)
	pdf.SetMargins(18, 20, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(title), "", "L", false)
	pdf.Ln(4)

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimRight(line, " \t")
		switch {
		case line == "":
			pdf.Ln(3)
		case strings.HasPrefix(line, "# "):
			pdf.SetFont("Helvetica", "B", 15)
			pdf.MultiCell(0, 8, tr(plain(line[2:])), "", "L", false)
		case strings.HasPrefix(line, "## "):
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 7, tr(plain(line[3:])), "", "L", false)
		case strings.HasPrefix(line, "- "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5.5, tr("• "+plain(line[2:])), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5.5, tr(plain(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func plain(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	return strings.ReplaceAll(s, "`", "")
}
