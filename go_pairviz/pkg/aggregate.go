package pairviz

import (
	"context"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fastats/pkg"
	"github.com/jgbaldwinbrown/fasttsv"
	"golang.org/x/sync/errgroup"
)

// Hit counts keyed by chromosome and window
type HitTable map[fastats.ChrSpan]int64

type Totals struct {
	Total int64
	Good int64
	Bad int64
	Close int64
	// Counts of the pairtools pair_type column, when present
	PairTypes map[string]int64
}

func (t *Totals) Add(u Totals) {
	t.Total += u.Total
	t.Good += u.Good
	t.Bad += u.Bad
	t.Close += u.Close
	if t.PairTypes == nil {
		t.PairTypes = map[string]int64{}
	}
	for k, v := range u.PairTypes {
		t.PairTypes[k] += v
	}
}

// Accumulates self and pair hits for one run. Not safe for concurrent use;
// run several and Merge them instead.
type Aggregator struct {
	Config Config
	Binner Binner
	SelfHits HitTable
	PairHits HitTable
	Totals Totals
	bins []fastats.ChrSpan
	seen map[fastats.ChrSpan]struct{}
}

func NewAggregator(c Config, b Binner) *Aggregator {
	return &Aggregator{
		Config: c,
		Binner: b,
		SelfHits: HitTable{},
		PairHits: HitTable{},
		Totals: Totals{PairTypes: map[string]int64{}},
	}
}

// The union of both mates' bins, each bin once
func (a *Aggregator) pairBins(p Pair) []fastats.ChrSpan {
	if a.seen == nil {
		a.seen = map[fastats.ChrSpan]struct{}{}
	}
	clear(a.seen)

	a.bins = a.Binner.Bins(a.bins[:0], p.Read1.Chrom, p.Read1.Pos)
	if p.Read1.Chrom == p.Read2.Chrom && p.Read1.Pos == p.Read2.Pos {
		return a.bins
	}
	for _, b := range a.bins {
		a.seen[b] = struct{}{}
	}
	n := len(a.bins)
	a.bins = a.Binner.Bins(a.bins, p.Read2.Chrom, p.Read2.Pos)

	out := a.bins[:n]
	for _, b := range a.bins[n:] {
		if _, ok := a.seen[b]; !ok {
			a.seen[b] = struct{}{}
			out = append(out, b)
		}
	}
	a.bins = out
	return out
}

func (a *Aggregator) Add(p Pair) {
	a.Totals.Total++
	if p.PairType != "" {
		a.Totals.PairTypes[p.PairType]++
	}
	if p.Bad() {
		a.Totals.Bad++
		return
	}
	a.Totals.Good++

	if p.AbsPosDist() >= a.Config.Distance {
		return
	}
	a.Totals.Close++

	if !p.SameChrom() {
		return
	}

	table := a.PairHits
	if p.SameParent() {
		table = a.SelfHits
	}
	for _, b := range a.pairBins(p) {
		table[b]++
	}
}

// Comment and blank lines are ignored.
func (a *Aggregator) AddLine(line []string) error {
	if IsComment(line) || IsBlank(line) {
		return nil
	}
	p, e := ParsePair(line)
	if e != nil {
		return e
	}
	a.Add(p)
	return nil
}

func (a *Aggregator) Run(r io.Reader) error {
	h := handle("Aggregator.Run: line %v: %w")
	s := fasttsv.NewScanner(r)
	for i := 1; s.Scan(); i++ {
		if e := a.AddLine(s.Line()); e != nil {
			return h(i, e)
		}
	}
	return nil
}

func (a *Aggregator) Merge(b *Aggregator) {
	for k, v := range b.SelfHits {
		a.SelfHits[k] += v
	}
	for k, v := range b.PairHits {
		a.PairHits[k] += v
	}
	a.Totals.Add(b.Totals)
}

func (a *Aggregator) RunPath(path string) (err error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return handle("Aggregator.RunPath: %w")(e)
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()
	return a.Run(r)
}

// Aggregate each path in its own Aggregator, at most threads at once, and
// merge the results. Counts match a sequential run over the same inputs.
func AggregateFiles(ctx context.Context, c Config, threads int, paths ...string) (*Aggregator, error) {
	base, e := NewBinner(c)
	if e != nil {
		return nil, e
	}

	aggs := make([]*Aggregator, len(paths))
	g, _ := errgroup.WithContext(ctx)
	if threads > 0 {
		g.SetLimit(threads)
	}
	for i, path := range paths {
		i, path := i, path
		b := base
		if wb, ok := base.(*WindowBinner); ok {
			b = &WindowBinner{WinSize: wb.WinSize, WinStep: wb.WinStep}
		}
		aggs[i] = NewAggregator(c, b)
		g.Go(func() error {
			return aggs[i].RunPath(path)
		})
	}
	if e := g.Wait(); e != nil {
		return nil, e
	}

	out := NewAggregator(c, base)
	for _, a := range aggs {
		out.Merge(a)
	}
	return out, nil
}
