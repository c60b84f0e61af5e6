// Package reporting turns a completed analysis into artifacts: a
// paginated PDF for export, a JSON file for the CLI, and a findings diff
// between two analyses. Building the report content is pure; only the
// serialization step can fail.
package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/lexkit/clauseguard/internal/contract"
)

// Disclaimer is the fixed legal footer on every report.
const Disclaimer = "This report was generated by automated rule-based analysis and " +
	"does not constitute legal advice. Review all findings with a qualified " +
	"attorney before acting on them."

// Document is the renderer-independent report content. Every serializer
// (PDF, plain text) consumes the same Document, so the findings a report
// shows are exactly the findings the analysis produced.
type Document struct {
	Title        string
	ContractType string
	GeneratedAt  time.Time

	OverallRisk int
	RiskLevel   contract.RiskLevel
	Confidence  int

	RedFlags  []contract.Finding
	Warnings  []contract.Finding
	Revisions []string

	Disclaimer string
}

// BuildDocument assembles the report content for a result. Pure: calling
// it twice with the same result and timestamp yields the same Document.
func BuildDocument(res *contract.Result, generatedAt time.Time) Document {
	title := "Contract Risk Analysis"
	if res.ContractType != "" {
		title = fmt.Sprintf("Contract Risk Analysis: %s", res.ContractType)
	}
	return Document{
		Title:        title,
		ContractType: res.ContractType,
		GeneratedAt:  generatedAt.UTC(),
		OverallRisk:  res.OverallRisk,
		RiskLevel:    res.RiskLevel,
		Confidence:   res.Confidence,
		RedFlags:     res.RedFlags,
		Warnings:     res.Warnings,
		Revisions:    res.SuggestedRevisions,
		Disclaimer:   Disclaimer,
	}
}

// PlainText renders the document as labeled text sections. The CLI prints
// it, and it doubles as the parseable form for verifying that reports
// preserve finding content.
func (d Document) PlainText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", d.Title)
	fmt.Fprintf(&b, "Generated: %s\n", d.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Overall Risk: %d/100 (%s)\n", d.OverallRisk, d.RiskLevel)
	fmt.Fprintf(&b, "Confidence: %d%%\n", d.Confidence)

	writeFindings := func(heading string, fs []contract.Finding) {
		fmt.Fprintf(&b, "\n%s (%d)\n", heading, len(fs))
		for i, f := range fs {
			fmt.Fprintf(&b, "%d. Clause: %s\n", i+1, f.Clause)
			if f.Section != "" {
				fmt.Fprintf(&b, "   Section: %s\n", f.Section)
			}
			fmt.Fprintf(&b, "   Issue: %s\n", f.Issue)
			fmt.Fprintf(&b, "   Suggestion: %s\n", f.Suggestion)
		}
	}
	writeFindings("RED FLAGS", d.RedFlags)
	writeFindings("WARNINGS", d.Warnings)

	fmt.Fprintf(&b, "\nSUGGESTED REVISIONS (%d)\n", len(d.Revisions))
	for i, r := range d.Revisions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	fmt.Fprintf(&b, "\n%s\n", d.Disclaimer)
	return b.String()
}
