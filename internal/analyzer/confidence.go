package analyzer

import "strings"

// ConfidenceWeights is the hand-tuned adjustment table behind the
// confidence estimate. The numbers model a simple intuition: longer,
// well-structured documents give the phrase rules more to grip, so their
// verdicts deserve more trust, while a pile of findings on a short text
// suggests the rules are tripping over each other. The values are carried
// as configuration so they can be revised without a code change.
type ConfidenceWeights struct {
	Base int `yaml:"base"`

	// Document size signals.
	LongTextBonus   int `yaml:"long_text_bonus"`   // text longer than LongTextLen
	LongTextLen     int `yaml:"long_text_len"`     //
	ShortTextMalus  int `yaml:"short_text_malus"`  // text shorter than ShortTextLen
	ShortTextLen    int `yaml:"short_text_len"`    //

	// Structure signals: drafted contracts reference their own sections.
	SectionBonus int `yaml:"section_bonus"` // "section" or "clause" present
	ArticleBonus int `yaml:"article_bonus"` // "article" or "schedule" present

	// Finding density: a moderate count is normal, an excessive one is a
	// hint the input is noisy. Applied once above ManyFindings, again
	// above ExcessiveFindings (cumulative).
	DensityMalus      int `yaml:"density_malus"`
	ManyFindings      int `yaml:"many_findings"`
	ExcessiveFindings int `yaml:"excessive_findings"`

	// Estimates are clamped to [Floor, Ceiling]: never certain, never
	// below a coin flip plus margin.
	Floor   int `yaml:"floor"`
	Ceiling int `yaml:"ceiling"`
}

func DefaultConfidenceWeights() ConfidenceWeights {
	return ConfidenceWeights{
		Base:              75,
		LongTextBonus:     5,
		LongTextLen:       5000,
		ShortTextMalus:    10,
		ShortTextLen:      500,
		SectionBonus:      5,
		ArticleBonus:      3,
		DensityMalus:      5,
		ManyFindings:      5,
		ExcessiveFindings: 10,
		Floor:             50,
		Ceiling:           100,
	}
}

// Estimate computes the confidence score for a lowercased text with
// totalFindings matched rules. All adjustments are additive.
func (cw ConfidenceWeights) Estimate(text string, totalFindings int) int {
	c := cw.Base

	if len(text) > cw.LongTextLen {
		c += cw.LongTextBonus
	}
	if len(text) < cw.ShortTextLen {
		c -= cw.ShortTextMalus
	}
	if strings.Contains(text, "section") || strings.Contains(text, "clause") {
		c += cw.SectionBonus
	}
	if strings.Contains(text, "article") || strings.Contains(text, "schedule") {
		c += cw.ArticleBonus
	}
	if totalFindings > cw.ManyFindings {
		c -= cw.DensityMalus
	}
	if totalFindings > cw.ExcessiveFindings {
		c -= cw.DensityMalus
	}

	if c < cw.Floor {
		c = cw.Floor
	}
	if c > cw.Ceiling {
		c = cw.Ceiling
	}
	return c
}
