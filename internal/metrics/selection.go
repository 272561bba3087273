package metrics

import "github.com/san-kum/colorfield/internal/field"

// SelectionStats tallies how target colors were chosen over a run of
// consecutive transition indices.
type SelectionStats struct {
	Day      int
	Period   int
	Samples  int
	Shortcut int
	Buckets  [3]int
}

func CollectSelections(g *field.Generator, day int, from int64, n int) SelectionStats {
	st := SelectionStats{Day: day, Period: field.PeriodOf(day), Samples: n}
	for i := 0; i < n; i++ {
		sel := g.Select(day, from+int64(i))
		if sel.Shortcut {
			st.Shortcut++
		}
		st.Buckets[sel.Bucket]++
	}
	return st
}

func (s SelectionStats) ShortcutRate() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Shortcut) / float64(s.Samples)
}

// BucketRate is the overall share of one bucket, shortcut picks included.
func (s SelectionStats) BucketRate(i int) float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Buckets[i]) / float64(s.Samples)
}
