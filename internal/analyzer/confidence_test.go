package analyzer

import (
	"strings"
	"testing"
)

func TestConfidenceEstimate(t *testing.T) {
	cw := DefaultConfidenceWeights()

	neutral := strings.Repeat("x", 1000) // no structure words, mid-length

	cases := []struct {
		name     string
		text     string
		findings int
		want     int
	}{
		{"base", neutral, 0, 75},
		{"short text", strings.Repeat("x", 100), 0, 65},
		{"long text", strings.Repeat("x", 5001), 0, 80},
		{"structural marker", neutral + " section 4", 0, 80},
		{"clause marker", neutral + " clause", 0, 80},
		{"article marker", neutral + " article ii", 0, 78},
		{"section and article", neutral + " section 1, article 2", 0, 83},
		{"many findings", neutral, 6, 70},
		{"excessive findings", neutral, 11, 65},
		{"boundary many", neutral, 5, 75},
		{"boundary excessive", neutral, 10, 70},
		{"floor", strings.Repeat("x", 100), 11, 55},
		{"ceiling", strings.Repeat("x", 6000) + " section 1 schedule a", 0, 88},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cw.Estimate(tc.text, tc.findings); got != tc.want {
				t.Fatalf("Estimate = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestConfidenceEstimate_Bounds(t *testing.T) {
	cw := DefaultConfidenceWeights()
	for length := 0; length < 8000; length += 499 {
		for findings := 0; findings < 20; findings++ {
			c := cw.Estimate(strings.Repeat("y", length), findings)
			if c < 50 || c > 100 {
				t.Fatalf("Estimate(len=%d, findings=%d) = %d, outside [50,100]", length, findings, c)
			}
		}
	}
}
