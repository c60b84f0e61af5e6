package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/lexkit/clauseguard/internal/contract"
)

// ErrRender is returned when PDF serialization fails, including tripping
// the page safety cap. Retryable: the analysis behind it is untouched.
var ErrRender = errors.New("report rendering failed")

// A4 geometry in millimeters, plus the pagination margin: a new page
// starts before any block that would cross pageHeight - bottomMargin, so
// no block is ever silently clipped.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	sideMargin   = 15.0
	topMargin    = 15.0
	bottomMargin = 20.0
	lineHeight   = 5.0

	// maxPages is the hard safety cap on report length.
	maxPages = 200

	watermarkText = "CLAUSEGUARD FREE PREVIEW"
)

// WritePDF serializes a report document plus the analyzed text into a
// paginated PDF. Free-tier exports get a diagonal watermark on every
// page, a truncated revisions list, and no full-text appendix.
// Synchronous; the returned bytes are the complete artifact.
func WritePDF(doc Document, originalText string, freeUser bool) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(sideMargin, topMargin, sideMargin)
	// Pagination is handled explicitly per block.
	pdf.SetAutoPageBreak(false, 0)
	if freeUser {
		pdf.SetHeaderFunc(func() { watermark(pdf) })
	}
	pdf.AddPage()

	r := &renderer{pdf: pdf}

	// Title block.
	r.heading(doc.Title, 16)
	r.line(fmt.Sprintf("Generated: %s", doc.GeneratedAt.Format(time.RFC1123)), "I", 9)
	r.gap()

	// Score block.
	r.heading("Assessment", 13)
	r.line(fmt.Sprintf("Overall Risk: %d/100 (%s)", doc.OverallRisk, doc.RiskLevel), "B", 11)
	r.line(fmt.Sprintf("Confidence: %d%%", doc.Confidence), "", 11)
	r.gap()

	r.findings(fmt.Sprintf("Red Flags (%d)", len(doc.RedFlags)), doc.RedFlags)
	r.findings(fmt.Sprintf("Warnings (%d)", len(doc.Warnings)), doc.Warnings)

	// Revisions. Free tier sees only a preview of the list.
	revisions := doc.Revisions
	truncated := false
	if freeUser && len(revisions) > 2 {
		revisions = revisions[:2]
		truncated = true
	}
	r.heading(fmt.Sprintf("Suggested Revisions (%d)", len(doc.Revisions)), 13)
	for i, rev := range revisions {
		r.wrapped(fmt.Sprintf("%d. %s", i+1, rev), "", 10)
	}
	if truncated {
		r.wrapped(fmt.Sprintf("... %d more revisions available with a Pro subscription.",
			len(doc.Revisions)-len(revisions)), "I", 9)
	}
	r.gap()

	// Full-text appendix is a paid feature.
	if !freeUser && strings.TrimSpace(originalText) != "" {
		r.heading("Analyzed Contract Text", 13)
		for _, para := range strings.Split(originalText, "\n") {
			r.wrapped(para, "", 8)
		}
		r.gap()
	}

	// Fixed legal footer.
	r.wrapped(doc.Disclaimer, "I", 8)

	if r.overflow || pdf.PageCount() > maxPages {
		return nil, fmt.Errorf("%w: report exceeds %d pages", ErrRender, maxPages)
	}
	if pdf.Err() {
		return nil, fmt.Errorf("%w: %v", ErrRender, pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

type renderer struct {
	pdf      *fpdf.Fpdf
	overflow bool
}

// ensureSpace starts a new page before a block of height h would cross
// the bottom margin.
func (r *renderer) ensureSpace(h float64) {
	if r.pdf.GetY()+h > pageHeight-bottomMargin {
		if r.pdf.PageCount() >= maxPages {
			r.overflow = true
			return
		}
		r.pdf.AddPage()
	}
}

func (r *renderer) heading(s string, size float64) {
	if r.overflow {
		return
	}
	r.ensureSpace(lineHeight * 2)
	r.pdf.SetFont("Helvetica", "B", size)
	r.pdf.MultiCell(pageWidth-2*sideMargin, lineHeight+2, s, "", "L", false)
}

func (r *renderer) line(s, style string, size float64) {
	if r.overflow {
		return
	}
	r.ensureSpace(lineHeight)
	r.pdf.SetFont("Helvetica", style, size)
	r.pdf.MultiCell(pageWidth-2*sideMargin, lineHeight, s, "", "L", false)
}

// wrapped writes a block wrapped to page width, paginating by the block's
// measured height so a block never straddles the bottom margin unseen.
func (r *renderer) wrapped(s, style string, size float64) {
	if r.overflow || s == "" {
		return
	}
	r.pdf.SetFont("Helvetica", style, size)
	lines := r.pdf.SplitText(s, pageWidth-2*sideMargin)
	r.ensureSpace(float64(len(lines)) * lineHeight)
	for _, ln := range lines {
		// A very long block may still exceed one full page on its own.
		r.ensureSpace(lineHeight)
		if r.overflow {
			return
		}
		r.pdf.MultiCell(pageWidth-2*sideMargin, lineHeight, ln, "", "L", false)
	}
}

func (r *renderer) gap() {
	if r.overflow {
		return
	}
	r.pdf.Ln(lineHeight)
}

// findings writes an enumerated finding section: clause, section
// reference, issue, and suggestion per entry.
func (r *renderer) findings(heading string, fs []contract.Finding) {
	r.heading(heading, 13)
	if len(fs) == 0 {
		r.line("None detected.", "I", 10)
		r.gap()
		return
	}
	for i, f := range fs {
		label := fmt.Sprintf("%d. %s", i+1, f.Clause)
		if f.Section != "" {
			label += fmt.Sprintf(" (Section %s)", f.Section)
		}
		r.line(label, "B", 11)
		r.wrapped("Issue: "+f.Issue, "", 10)
		r.wrapped("Suggestion: "+f.Suggestion, "", 10)
	}
	r.gap()
}

// watermark draws the diagonal free-tier overlay across the current page.
func watermark(pdf *fpdf.Fpdf) {
	pdf.SetAlpha(0.12, "Normal")
	pdf.SetFont("Helvetica", "B", 48)
	pdf.SetTextColor(120, 120, 120)
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageWidth/2, pageHeight/2)
	w := pdf.GetStringWidth(watermarkText)
	pdf.Text(pageWidth/2-w/2, pageHeight/2, watermarkText)
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(0, 0, 0)
}

var filenameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds the deterministic export name:
// {contractType}-risk-analysis-{YYYY-MM-DD}.pdf
func Filename(contractType string, t time.Time) string {
	typ := filenameSanitizer.ReplaceAllString(strings.ToLower(contractType), "-")
	typ = strings.Trim(typ, "-")
	if typ == "" {
		typ = "contract"
	}
	return fmt.Sprintf("%s-risk-analysis-%s.pdf", typ, t.UTC().Format("2006-01-02"))
}
