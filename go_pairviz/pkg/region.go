package pairviz

import (
	"io"

	"github.com/biogo/store/interval"
	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/fastats/pkg"
	"github.com/jgbaldwinbrown/iter"
)

// A BED region stored in an interval tree
type regionRange struct {
	Start, End int
	UID uintptr
}

// Half-open
func (r regionRange) Overlap(b interval.IntRange) bool {
	return r.End > b.Start && r.Start < b.End
}
func (r regionRange) ID() uintptr { return r.UID }
func (r regionRange) Range() interval.IntRange { return interval.IntRange{Start: r.Start, End: r.End} }

// Bins positions into every BED region that contains them
type RegionBinner struct {
	Regions []fastats.ChrSpan
	Trees map[string]*interval.IntTree
}

func NewRegionBinner(regions []fastats.ChrSpan) (*RegionBinner, error) {
	b := &RegionBinner{Regions: regions, Trees: map[string]*interval.IntTree{}}
	for i, r := range regions {
		tree, ok := b.Trees[r.Chr]
		if !ok {
			tree = &interval.IntTree{}
			b.Trees[r.Chr] = tree
		}
		e := tree.Insert(regionRange{Start: int(r.Start), End: int(r.End), UID: uintptr(i)}, false)
		if e != nil {
			return nil, handle("NewRegionBinner: region %v: %w")(r, e)
		}
	}
	return b, nil
}

func (b *RegionBinner) Bins(dst []fastats.ChrSpan, chrom string, pos int64) []fastats.ChrSpan {
	tree, ok := b.Trees[chrom]
	if !ok {
		return dst
	}
	q := regionRange{Start: int(pos), End: int(pos) + 1}
	tree.DoMatching(func(iv interval.IntInterface) bool {
		dst = append(dst, b.Regions[iv.ID()])
		return false
	}, q)
	return dst
}

func (b *RegionBinner) Length(bin fastats.ChrSpan) int64 { return bin.End - bin.Start }
func (b *RegionBinner) Step(bin fastats.ChrSpan) int64 { return bin.End - bin.Start }

func ParseRegions(r io.Reader) ([]fastats.ChrSpan, error) {
	bed := fastats.ParseBed[struct{}](r, func([]string) (struct{}, error) {
		return struct{}{}, nil
	})
	spans := iter.Transform[fastats.BedEntry[struct{}], fastats.ChrSpan](bed, func(b fastats.BedEntry[struct{}]) (fastats.ChrSpan, error) {
		return b.ChrSpan, nil
	})
	return iter.Collect[fastats.ChrSpan](spans)
}

func ReadRegionBinner(r io.Reader) (*RegionBinner, error) {
	regions, e := ParseRegions(r)
	if e != nil {
		return nil, handle("ReadRegionBinner: %w")(e)
	}
	return NewRegionBinner(regions)
}

func ReadRegionBinnerPath(path string) (b *RegionBinner, err error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, handle("ReadRegionBinnerPath: %w")(e)
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()

	return ReadRegionBinner(r)
}
