package register

import (
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/hicpair/go_pairviz/pkg"
)

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

type ReadType int

const (
	TypeUnknown ReadType = iota
	PairType
	SelfType
	TransType
)

func PairReadType(p pairviz.Pair) ReadType {
	if !p.SameChrom() {
		return TransType
	}
	if p.SameParent() {
		return SelfType
	}
	return PairType
}

// Histogram columns, per facing group
type Category int

const (
	CatPair Category = iota
	CatSelf
	CatTrans
	CatSelfTrans
	CatPairTrans
	NCategory
)

// Facing groups: every pair, then in, out and match facing pairs
const NFacing = 4

func GrowSlice[T any](sl []T, newlen int64) []T {
	if len(sl) < int(newlen) {
		nsl := make([]T, newlen, newlen*2)
		copy(nsl, sl)
		return nsl
	}
	return sl
}

func SliceInc(sl *[]int64, idx int64) {
	*sl = GrowSlice(*sl, idx+1)
	(*sl)[idx]++
}

// Counts of mate distances, one histogram per category and facing group
type Registers struct {
	Maxdist int64
	Counts [NFacing][NCategory][]int64
}

func NewRegisters(maxdist int64) *Registers {
	return &Registers{Maxdist: maxdist}
}

func pairCategories(p pairviz.Pair) []Category {
	switch PairReadType(p) {
	case TransType:
		if p.SameParent() {
			return []Category{CatTrans, CatSelfTrans}
		}
		return []Category{CatTrans, CatPairTrans}
	case SelfType:
		return []Category{CatSelf}
	default:
		return []Category{CatPair}
	}
}

// Bad pairs and pairs further apart than Maxdist (when non-negative) are ignored
func (g *Registers) Add(p pairviz.Pair) {
	if p.Bad() {
		return
	}
	dist := p.AbsPosDist()
	if g.Maxdist >= 0 && dist > g.Maxdist {
		return
	}
	face := p.Face()
	for _, c := range pairCategories(p) {
		SliceInc(&g.Counts[0][c], dist)
		if face != pairviz.Unknown {
			SliceInc(&g.Counts[face][c], dist)
		}
	}
}

func (g *Registers) Len() int {
	maxlen := 0
	for _, group := range g.Counts {
		for _, counts := range group {
			if len(counts) > maxlen {
				maxlen = len(counts)
			}
		}
	}
	return maxlen
}

func (g *Registers) Get(face pairviz.Facing, c Category, dist int) int64 {
	counts := g.Counts[face][c]
	if dist < len(counts) {
		return counts[dist]
	}
	return 0
}

var facePrefixes = [NFacing]string{"", "in_", "out_", "match_"}
var catNames = [NCategory]string{"pair", "self", "trans", "self_trans", "pair_trans"}

func (g *Registers) Fprint(w io.Writer) error {
	if _, e := fmt.Fprint(w, "distance"); e != nil {
		return e
	}
	for _, pre := range facePrefixes {
		for _, name := range catNames {
			if _, e := fmt.Fprintf(w, "\t%s%s", pre, name); e != nil {
				return e
			}
		}
	}
	if _, e := fmt.Fprintln(w); e != nil {
		return e
	}

	for i := 0; i < g.Len(); i++ {
		if _, e := fmt.Fprintf(w, "%v", i); e != nil {
			return e
		}
		for f := 0; f < NFacing; f++ {
			for c := Category(0); c < NCategory; c++ {
				if _, e := fmt.Fprintf(w, "\t%v", g.Get(pairviz.Facing(f), c, i)); e != nil {
					return e
				}
			}
		}
		if _, e := fmt.Fprintln(w); e != nil {
			return e
		}
	}
	return nil
}

// Calls f on every data line of a .pairs stream
func ForEachPair(r io.Reader, f func(line []string, p pairviz.Pair) error) error {
	cr := csvh.CsvIn(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	for line, e := cr.Read(); e != io.EOF; line, e = cr.Read() {
		if e != nil {
			return e
		}
		if pairviz.IsComment(line) || pairviz.IsBlank(line) {
			continue
		}
		p, e := pairviz.ParsePair(line)
		if e != nil {
			return e
		}
		if e = f(line, p); e != nil {
			return e
		}
	}
	return nil
}

func Run(maxdist int64, r io.Reader, w io.Writer) error {
	h := handle("Run: %w")
	g := NewRegisters(maxdist)
	e := ForEachPair(r, func(_ []string, p pairviz.Pair) error {
		g.Add(p)
		return nil
	})
	if e != nil {
		return h(e)
	}
	if e = g.Fprint(w); e != nil {
		return h(e)
	}
	return nil
}
