package perf

import (
	"strings"
	"testing"

	"github.com/lexkit/clauseguard/internal/analyzer"
	"github.com/lexkit/clauseguard/internal/rules"
)

const benchClause = `Section. The Provider shall deliver the services with
reasonable skill and care, and the Client shall pay the agreed fees within
thirty days of invoice. The parties shall keep confidential information
confidential and shall comply with the governing law of the agreement.
`

func benchText(repeats int) string {
	var b strings.Builder
	b.WriteString("SERVICES AGREEMENT\n\n")
	for i := 0; i < repeats; i++ {
		b.WriteString(benchClause)
	}
	b.WriteString("The Contractor shall bear unlimited liability for all losses.\n")
	return b.String()
}

func benchmarkAnalyze(b *testing.B, repeats int) {
	a := analyzer.New(rules.NewBaseline(rules.Settings{}))
	text := benchText(repeats)
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.Analyze(text, "service"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAnalyze_Small(b *testing.B)  { benchmarkAnalyze(b, 4) }
func BenchmarkAnalyze_Medium(b *testing.B) { benchmarkAnalyze(b, 64) }
func BenchmarkAnalyze_Large(b *testing.B)  { benchmarkAnalyze(b, 1024) }
