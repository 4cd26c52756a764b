package register

import (
	"encoding/csv"
	"encoding/json"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/hicpair/go_pairviz/pkg"
)

// Pairs pass a FilterSet when their distance is within [MinDist, MaxDist] and
// their facing and read type are both listed. With DropOverlaps, pairs whose
// mates overlap (given ReadLen) fail.
type FilterSet struct {
	MaxDist int64
	MinDist int64
	Faces []pairviz.Facing
	ReadTypes []ReadType
	DropOverlaps bool
	ReadLen int64
}

func contains[T comparable](xs []T, x T) bool {
	for _, y := range xs {
		if y == x {
			return true
		}
	}
	return false
}

func (f FilterSet) Check(dist int64, face pairviz.Facing, rtype ReadType) bool {
	if dist < f.MinDist {
		return false
	}
	if dist > f.MaxDist {
		return false
	}
	return contains(f.Faces, face) && contains(f.ReadTypes, rtype)
}

type FilterArgs struct {
	FilterSets []FilterSet
}

func (a FilterArgs) Check(p pairviz.Pair) bool {
	dist := p.AbsPosDist()
	face := p.Face()
	rtype := PairReadType(p)
	for _, filt := range a.FilterSets {
		if filt.DropOverlaps && pairviz.PairOverlaps(p, filt.ReadLen) {
			continue
		}
		if filt.Check(dist, face, rtype) {
			return true
		}
	}
	return false
}

func GetFilterArgsFromReader(r io.Reader) (FilterArgs, error) {
	h := handle("GetFilterArgsFromReader: %w")
	var args FilterArgs

	dec := json.NewDecoder(r)
	e := dec.Decode(&args)
	if e != nil { return args, h(e) }

	return args, nil
}

func GetFilterArgsFromPath(path string) (args FilterArgs, err error) {
	h := handle("GetFilterArgsFromPath: %w")

	r, e := csvh.OpenMaybeGz(path)
	if e != nil { return FilterArgs{}, h(e) }
	defer func() { csvh.DeferE(&err, r.Close()) }()

	return GetFilterArgsFromReader(r)
}

// Copy the good pairs that pass any filter set. Comments and bad pairs are dropped.
func RunFilter(r io.Reader, w io.Writer, args FilterArgs) error {
	h := handle("RunFilter: %w")

	cw := csv.NewWriter(w)
	cw.Comma = rune('\t')

	e := ForEachPair(r, func(line []string, p pairviz.Pair) error {
		if p.Bad() || !args.Check(p) {
			return nil
		}
		return cw.Write(line)
	})
	if e != nil {
		return h(e)
	}
	cw.Flush()
	if e = cw.Error(); e != nil {
		return h(e)
	}
	return nil
}
