package paircoord

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/hicpair/go_pairviz/pkg"
	"github.com/jgbaldwinbrown/lscan/pkg"
)

type SnpKey struct {
	Parent string
	Locus
}

// Positions that differ between the two genotypes, on each genotype's own
// coordinates
type SnpSet map[SnpKey]struct{}

func (s SnpSet) Has(parent, chrom string, pos int64) bool {
	_, ok := s[SnpKey{parent, Locus{chrom, pos}}]
	return ok
}

// Read show-snps output (plain or -T). P1 is the first field, P2 the fourth,
// and the reference and query tags are the last two. Header lines are skipped.
func ParseSnps(r io.Reader, ref, query string) (SnpSet, error) {
	h := handle("ParseSnps: line %v: %w")
	set := SnpSet{}
	s := bufio.NewScanner(r)
	s.Buffer([]byte{}, 1e12)

	for i := 1; s.Scan(); i++ {
		fields := strings.Fields(s.Text())
		if len(fields) < 6 {
			continue
		}
		p1, e := strconv.ParseInt(fields[0], 10, 64)
		if e != nil {
			continue
		}
		p2, e := strconv.ParseInt(fields[3], 10, 64)
		if e != nil {
			return nil, h(i, e)
		}
		rtag := fields[len(fields) - 2]
		qtag := fields[len(fields) - 1]
		set[SnpKey{ref, Locus{rtag, p1}}] = struct{}{}
		set[SnpKey{query, Locus{qtag, p2}}] = struct{}{}
	}
	if e := s.Err(); e != nil {
		return nil, handle("ParseSnps: %w")(e)
	}
	return set, nil
}

// Whether the bases read by r, readlen long from r.Pos in the direction of its
// strand, include a SNP of its own genotype
func ReadCoversSnp(r pairviz.Read, readlen int64, snps SnpSet) bool {
	step := int64(1)
	if r.Dir < 0 {
		step = -1
	}
	for i := int64(0); i < readlen; i++ {
		if snps.Has(r.Parent, r.Chrom, r.Pos + i * step) {
			return true
		}
	}
	return false
}

type FilterStats struct {
	Lines int64
	Kept int64
	Bad int64
}

// Keep the data lines where both mates cover a SNP. Comments are copied and
// bad lines dropped.
func FilterPairs(r io.Reader, w io.Writer, snps SnpSet, readlen int64) (FilterStats, error) {
	h := handle("FilterPairs: line %v: %w")
	var stats FilterStats

	s := bufio.NewScanner(r)
	s.Buffer([]byte{}, 1e12)
	var line []string

	for i := 1; s.Scan(); i++ {
		text := s.Text()
		if len(text) == 0 {
			continue
		}
		if text[0] == '#' {
			if e := writeLine(w, text); e != nil {
				return stats, h(i, e)
			}
			continue
		}

		line = lscan.SplitByFunc(line, text, tabSplit)
		p, e := pairviz.ParsePair(line)
		if e != nil {
			return stats, h(i, e)
		}
		stats.Lines++
		if p.Bad() {
			stats.Bad++
			continue
		}
		if ReadCoversSnp(p.Read1, readlen, snps) && ReadCoversSnp(p.Read2, readlen, snps) {
			stats.Kept++
			if e := writeLine(w, text); e != nil {
				return stats, h(i, e)
			}
		}
	}
	if e := s.Err(); e != nil {
		return stats, handle("FilterPairs: %w")(e)
	}
	return stats, nil
}
