package server

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"newsroomai/pkg/domain"
)

// renderArticlePDF writes a paginated PDF report: title, bias score, summary,
// original content, and the rewritten text when one exists.
func renderArticlePDF(w io.Writer, article domain.Article) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, article.Title, "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, fmt.Sprintf("Bias Score: %d", article.BiasScore), "", "L", false)
	pdf.Ln(2)

	pdfSection(pdf, "Summary:", article.Summary)
	pdfSection(pdf, "Content:", article.Content)
	if article.RewrittenText != "" {
		pdfSection(pdf, "Rewritten Text:", article.RewrittenText)
	}

	return pdf.Output(w)
}

func pdfSection(pdf *fpdf.Fpdf, heading, body string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, heading, "", "L", false)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 6, body, "", "L", false)
	pdf.Ln(4)
}

// pdfFilename derives a safe attachment filename from the article title.
func pdfFilename(title string) string {
	title = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\n', '\r':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if title == "" {
		title = "article"
	}
	return title + ".pdf"
}
