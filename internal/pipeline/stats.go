package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mfortier/tsx-data/internal/pricestore"
)

// Performance is one instrument's computed YTD result, kept for the
// run summary.
type Performance struct {
	Ticker    string
	YTDReturn float64
	Current   decimal.Decimal
}

// Stats aggregates everything a run did. Every skip and error lands in
// a counter here; there is no silent failure path.
type Stats struct {
	RunID uuid.UUID

	Instruments int

	FetchOK         int
	FetchNoData     int
	FetchErrors     int
	PointsCollected int

	Write pricestore.WriteStats

	MetricsComputed int
	MetricsSkipped  int
	MetricsErrors   int

	Performers []Performance
}

const rule = "======================================================================"

// Summary renders the human-readable run report printed at the end of
// a sweep.
func (s Stats) Summary() string {
	var b strings.Builder

	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "Run Summary", s.RunID)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Instruments:            %d\n", s.Instruments)
	fmt.Fprintf(&b, "Fetches:                %d ok, %d no data, %d failed\n", s.FetchOK, s.FetchNoData, s.FetchErrors)
	fmt.Fprintf(&b, "Price points collected: %d\n", s.PointsCollected)
	fmt.Fprintf(&b, "Write chunks:           %d attempted, %d failed\n", s.Write.Chunks, s.Write.FailedChunks)
	fmt.Fprintf(&b, "Rows:                   %d inserted, %d updated\n", s.Write.Inserted, s.Write.Updated)
	fmt.Fprintf(&b, "Metrics:                %d computed, %d skipped, %d failed\n", s.MetricsComputed, s.MetricsSkipped, s.MetricsErrors)

	if len(s.Performers) > 0 {
		ranked := make([]Performance, len(s.Performers))
		copy(ranked, s.Performers)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].YTDReturn > ranked[j].YTDReturn
		})

		var sum float64
		for _, p := range ranked {
			sum += p.YTDReturn
		}
		fmt.Fprintf(&b, "Average YTD return:     %+.2f%%\n", sum/float64(len(ranked)))

		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Top performers:")
		writePerformers(&b, topN(ranked, 5))

		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Bottom performers:")
		bottom := topN(reversed(ranked), 5)
		writePerformers(&b, bottom)
	}

	fmt.Fprintln(&b, rule)
	return b.String()
}

func writePerformers(b *strings.Builder, perfs []Performance) {
	for i, p := range perfs {
		fmt.Fprintf(b, "  %d. %-8s %+8.2f%%  $%s\n", i+1, p.Ticker, p.YTDReturn, p.Current.StringFixed(2))
	}
}

func topN(perfs []Performance, n int) []Performance {
	if len(perfs) < n {
		n = len(perfs)
	}
	return perfs[:n]
}

func reversed(perfs []Performance) []Performance {
	out := make([]Performance, len(perfs))
	for i, p := range perfs {
		out[len(perfs)-1-i] = p
	}
	return out
}
