package pairviz

import (
	"fmt"
	"io"
	"sort"
)

// Whole-chromosome counts, taken from an Aggregator run with ChromBinner
type ChromStats struct {
	SelfHits map[string]int64
	PairHits map[string]int64
	Totals Totals
	Distance int64
}

func MakeChromStats(a *Aggregator) ChromStats {
	stats := ChromStats{
		SelfHits: map[string]int64{},
		PairHits: map[string]int64{},
		Totals: a.Totals,
		Distance: a.Config.Distance,
	}
	for k, v := range a.SelfHits {
		stats.SelfHits[k.Chr] += v
	}
	for k, v := range a.PairHits {
		stats.PairHits[k.Chr] += v
	}
	return stats
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func FprintChromStats(w io.Writer, stats ChromStats) error {
	h := handle("FprintChromStats: %w")
	t := stats.Totals
	pairs := sortedKeys(stats.PairHits)

	printf := func(format string, args ...any) error {
		_, e := fmt.Fprintf(w, format, args...)
		return e
	}
	perPair := func(label string, value func(chrom string, v int64) float64) error {
		for _, k := range pairs {
			if e := printf("%s\t%s\t%.8g\n", label, k, value(k, stats.PairHits[k])); e != nil {
				return e
			}
		}
		return nil
	}

	for _, k := range sortedKeys(stats.SelfHits) {
		if e := printf("self\t%s\t%d\n", k, stats.SelfHits[k]); e != nil {
			return h(e)
		}
	}
	for _, k := range pairs {
		if e := printf("pair\t%s\t%d\n", k, stats.PairHits[k]); e != nil {
			return h(e)
		}
	}

	e := perPair("pair_proportion", func(k string, v int64) float64 {
		return float64(v) / float64(v + stats.SelfHits[k])
	})
	if e == nil {
		e = perPair("pair_proportion_of_total_good", func(k string, v int64) float64 {
			return float64(v) / float64(t.Good)
		})
	}
	if e == nil {
		e = perPair("pair_proportion_of_total", func(k string, v int64) float64 {
			return float64(v) / float64(t.Total)
		})
	}
	if e == nil {
		e = perPair("pair_proportion_of_total_close_range", func(k string, v int64) float64 {
			return float64(v) / float64(t.Close)
		})
	}
	if e != nil {
		return h(e)
	}

	if e := printf("total reads: %d\ntotal good reads: %d\ntotal bad reads: %d\ntotal close range reads (< %d bp): %d\n",
		t.Total, t.Good, t.Bad, stats.Distance, t.Close,
	); e != nil {
		return h(e)
	}

	for _, k := range sortedKeys(t.PairTypes) {
		if e := printf("%s reads: %d\n", k, t.PairTypes[k]); e != nil {
			return h(e)
		}
	}
	return nil
}
