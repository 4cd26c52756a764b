package paircoord

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/hicpair/go_pairviz/pkg"
	"github.com/jgbaldwinbrown/lscan/pkg"
)

var ErrUnmappedPosition = errors.New("position outside every alignment block")

func handle(format string) func(...any) error {
	return func(args ...any) error {
		return fmt.Errorf(format, args...)
	}
}

// What to do with a line whose query-genotype mate has no mapping
type UnmappedPolicy int

const (
	UnmappedFail UnmappedPolicy = iota
	UnmappedDrop
	UnmappedKeep
)

func ParseUnmappedPolicy(s string) (UnmappedPolicy, error) {
	switch s {
	case "", "fail":
		return UnmappedFail, nil
	case "drop":
		return UnmappedDrop, nil
	case "keep":
		return UnmappedKeep, nil
	default:
		return UnmappedFail, fmt.Errorf("ParseUnmappedPolicy: unknown policy %q (want fail, drop or keep)", s)
	}
}

// Move a mate of genotype query into subject coordinates. Other mates, and
// bad mates, are returned unchanged.
func TranslateRead(r pairviz.Read, m CoordMap, query string) (pairviz.Read, error) {
	if !r.Ok || r.Parent != query {
		return r, nil
	}
	l, ok := m.Lookup(r.Chrom, r.Pos)
	if !ok {
		return r, fmt.Errorf("TranslateRead: %v:%v: %w", r.Chrom, r.Pos, ErrUnmappedPosition)
	}
	r.Chrom = l.Chrom
	r.Pos = l.Pos
	return r, nil
}

func TranslatePair(p pairviz.Pair, m CoordMap, query string) (pairviz.Pair, error) {
	var e error
	if p.Read1, e = TranslateRead(p.Read1, m, query); e != nil {
		return p, e
	}
	if p.Read2, e = TranslateRead(p.Read2, m, query); e != nil {
		return p, e
	}
	return p, nil
}

type ConvStats struct {
	Comments int64
	Lines int64
	Translated int64
	Bad int64
	Dropped int64
	KeptUnmapped int64
}

func (s *ConvStats) Add(t ConvStats) {
	s.Comments += t.Comments
	s.Lines += t.Lines
	s.Translated += t.Translated
	s.Bad += t.Bad
	s.Dropped += t.Dropped
	s.KeptUnmapped += t.KeptUnmapped
}

// Rewrite the coordinate fields of line in place from a translated pair
func SetPairFields(line []string, p pairviz.Pair) {
	line[1] = p.Read1.ChromParent()
	line[2] = strconv.FormatInt(p.Read1.Pos, 10)
	line[3] = p.Read2.ChromParent()
	line[4] = strconv.FormatInt(p.Read2.Pos, 10)
}

func writeLine(w io.Writer, s string) error {
	_, e := io.WriteString(w, s + "\n")
	return e
}

var tabSplit = lscan.ByByte('\t')

// Translate every data line of a .pairs stream. Comments and bad lines are
// copied through unchanged; all fields other than the two mate coordinates
// are kept as they were.
func ConvFile(r io.Reader, w io.Writer, m CoordMap, query string, policy UnmappedPolicy) (ConvStats, error) {
	h := handle("ConvFile: line %v: %w")
	var stats ConvStats

	s := bufio.NewScanner(r)
	s.Buffer([]byte{}, 1e12)
	var line []string

	for i := 1; s.Scan(); i++ {
		text := s.Text()
		if len(text) == 0 {
			continue
		}
		if text[0] == '#' {
			stats.Comments++
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
			if e := writeLine(w, text); e != nil {
				return stats, h(i, e)
			}
			continue
		}

		tp, e := TranslatePair(p, m, query)
		if errors.Is(e, ErrUnmappedPosition) {
			switch policy {
			case UnmappedDrop:
				stats.Dropped++
				continue
			case UnmappedKeep:
				stats.KeptUnmapped++
				if e := writeLine(w, text); e != nil {
					return stats, h(i, e)
				}
				continue
			}
		}
		if e != nil {
			return stats, h(i, e)
		}

		SetPairFields(line, tp)
		stats.Translated++
		if e := writeLine(w, strings.Join(line, "\t")); e != nil {
			return stats, h(i, e)
		}
	}
	if e := s.Err(); e != nil {
		return stats, handle("ConvFile: %w")(e)
	}
	return stats, nil
}

// Translate several streams in order into one writer
func ConvAll(w io.Writer, m CoordMap, query string, policy UnmappedPolicy, rs ...io.Reader) (ConvStats, error) {
	var total ConvStats
	for _, r := range rs {
		stats, e := ConvFile(r, w, m, query, policy)
		total.Add(stats)
		if e != nil {
			return total, e
		}
	}
	return total, nil
}
