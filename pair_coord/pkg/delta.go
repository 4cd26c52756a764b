package paircoord

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jgbaldwinbrown/iter"
)

var ErrMalformedDelta = errors.New("malformed delta file")

// A position on one chromosome
type Locus struct {
	Chrom string
	Pos int64
}

// Query locus to subject locus. Immutable once ParseDelta returns, so it can
// be shared by any number of readers.
type CoordMap map[Locus]Locus

func (m CoordMap) Lookup(chrom string, pos int64) (Locus, bool) {
	l, ok := m[Locus{chrom, pos}]
	return l, ok
}

func axisStep(start, end int64) int64 {
	if start <= end {
		return 1
	}
	return -1
}

// One alignment block being walked
type Entry struct {
	SubjectChrom string
	QueryChrom string
	SubjectStart int64
	SubjectEnd int64
	QueryStart int64
	QueryEnd int64
	CurSubject int64
	CurQuery int64
	Subjects []int64
	Queries []int64
}

func (e *Entry) record() {
	e.Subjects = append(e.Subjects, e.CurSubject)
	e.Queries = append(e.Queries, e.CurQuery)
}

func (e *Entry) stepSubject() {
	e.CurSubject += axisStep(e.SubjectStart, e.SubjectEnd)
}

func (e *Entry) stepQuery() {
	e.CurQuery += axisStep(e.QueryStart, e.QueryEnd)
}

func (e *Entry) stepBoth() {
	e.stepSubject()
	e.stepQuery()
	e.record()
}

// Reached or passed the end of the axis
func reached(cur, start, end int64) bool {
	return (cur - end) * axisStep(start, end) >= 0
}

func (e *Entry) subjectDone() bool {
	return reached(e.CurSubject, e.SubjectStart, e.SubjectEnd)
}

func (e *Entry) queryDone() bool {
	return reached(e.CurQuery, e.QueryStart, e.QueryEnd)
}

func StartEntry(subjectChrom, queryChrom string, coords [4]int64) *Entry {
	e := &Entry{
		SubjectChrom: subjectChrom,
		QueryChrom: queryChrom,
		SubjectStart: coords[0],
		SubjectEnd: coords[1],
		QueryStart: coords[2],
		QueryEnd: coords[3],
		CurSubject: coords[0],
		CurQuery: coords[2],
	}
	e.record()
	return e
}

// Apply one edit. N-1 joint steps, then one step of the subject alone for a
// positive edit or of the query alone for a negative one.
func (e *Entry) Update(edit int64) {
	n := edit
	if n < 0 {
		n = -n
	}
	for i := int64(0); i < n - 1; i++ {
		e.stepBoth()
	}
	if edit > 0 {
		e.stepSubject()
	} else {
		e.stepQuery()
	}
}

// Walk the ungapped tail of the block up to its end coordinates
func (e *Entry) Finish() {
	for !e.subjectDone() && !e.queryDone() {
		e.stepBoth()
	}
}

func (e *Entry) AddTo(m CoordMap) {
	for i, q := range e.Queries {
		m[Locus{e.QueryChrom, q}] = Locus{e.SubjectChrom, e.Subjects[i]}
	}
}

func parseBlock(fields []string) (coords [4]int64, err error) {
	if len(fields) < 4 {
		return coords, fmt.Errorf("block %v has fewer than 4 coordinates: %w", fields, ErrMalformedDelta)
	}
	for i := 0; i < 4; i++ {
		coords[i], err = strconv.ParseInt(fields[i], 10, 64)
		if err != nil {
			return coords, fmt.Errorf("block coordinate %q: %w", fields[i], ErrMalformedDelta)
		}
	}
	return coords, nil
}

type deltaState struct {
	m CoordMap
	subjectChrom string
	queryChrom string
	haveHeader bool
	entry *Entry
	blocks int
}

func (s *deltaState) line(l string) error {
	fields := strings.Fields(l)
	if len(fields) == 0 {
		return nil
	}

	if strings.HasPrefix(l, ">") {
		if s.entry != nil {
			return fmt.Errorf("header %q inside an open block: %w", l, ErrMalformedDelta)
		}
		names := strings.Fields(strings.TrimPrefix(l, ">"))
		if len(names) < 2 {
			return fmt.Errorf("header %q needs subject and query names: %w", l, ErrMalformedDelta)
		}
		s.subjectChrom, s.queryChrom = names[0], names[1]
		s.haveHeader = true
		return nil
	}

	if len(fields) > 1 {
		if !s.haveHeader {
			return fmt.Errorf("block %q before any header: %w", l, ErrMalformedDelta)
		}
		if s.entry != nil {
			return fmt.Errorf("block %q before the previous block ended: %w", l, ErrMalformedDelta)
		}
		coords, e := parseBlock(fields)
		if e != nil {
			return e
		}
		s.entry = StartEntry(s.subjectChrom, s.queryChrom, coords)
		return nil
	}

	edit, e := strconv.ParseInt(fields[0], 10, 64)
	if e != nil {
		return fmt.Errorf("edit %q: %w", fields[0], ErrMalformedDelta)
	}
	if s.entry == nil {
		return fmt.Errorf("edit %v outside a block: %w", edit, ErrMalformedDelta)
	}
	if edit == 0 {
		s.entry.Finish()
		s.entry.AddTo(s.m)
		s.entry = nil
		s.blocks++
		return nil
	}
	s.entry.Update(edit)
	return nil
}

// Decode a nucmer delta file. The first two lines (input paths and program
// name) are skipped. Later blocks overwrite earlier ones at the same query
// position.
func ParseDelta(r io.Reader) (CoordMap, error) {
	m, _, e := ParseDeltaCount(r)
	return m, e
}

func ParseDeltaCount(r io.Reader) (CoordMap, int, error) {
	h := handle("ParseDelta: line %v: %w")
	s := iter.NewScanner(r)
	st := deltaState{m: CoordMap{}}

	i := 0
	for ; s.Scan(); i++ {
		if i < 2 {
			continue
		}
		if e := st.line(s.Text()); e != nil {
			return nil, st.blocks, h(i + 1, e)
		}
	}
	if e := s.Err(); e != nil {
		return nil, st.blocks, h(i, e)
	}
	if st.entry != nil {
		return nil, st.blocks, h(i, fmt.Errorf("block not terminated by 0: %w", ErrMalformedDelta))
	}
	return st.m, st.blocks, nil
}
