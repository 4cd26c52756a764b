package pairviz

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedRecord = errors.New("malformed pairs record")

// The literal used by pairtools for an unusable mate
const BadMate = "!"

// One mate of a read pair. Parent is the genotype label.
type Read struct {
	Chrom string
	Parent string
	Ok bool
	Pos int64
	Dir int
}

func (r Read) ChromParent() string {
	return r.Chrom + "_" + r.Parent
}

type Facing int

const (
	Unknown Facing = iota
	In
	Out
	Match
)

// A parsed .pairs line. Fields aliases the split input line and is only
// valid until the next line is read.
type Pair struct {
	Name string
	Read1 Read
	Read2 Read
	PairType string
	Fields []string
}

func (p Pair) Bad() bool {
	return !p.Read1.Ok || !p.Read2.Ok
}

func (p Pair) AbsPosDist() int64 {
	return Abs(p.Read2.Pos - p.Read1.Pos)
}

func (p Pair) SameChrom() bool {
	return p.Read1.Chrom == p.Read2.Chrom
}

func (p Pair) SameParent() bool {
	return p.Read1.Parent == p.Read2.Parent
}

func (p Pair) Face() Facing {
	if p.Read1.Dir < 0 && p.Read2.Dir < 0 {
		return Match
	}
	if p.Read1.Dir > 0 && p.Read2.Dir > 0 {
		return Match
	}

	lread := p.Read1
	rread := p.Read2

	if p.Read2.Pos < p.Read1.Pos {
		lread = p.Read2
		rread = p.Read1
	}

	if lread.Dir < 0 && rread.Dir > 0 {
		return Out
	}

	if lread.Dir > 0 && rread.Dir < 0 {
		return In
	}

	return Unknown
}

// Split a chrom_genotype field. The genotype is everything after the last
// underscore, so chromosome names may contain underscores themselves.
func SplitChromParent(field string) (chrom, parent string, err error) {
	i := strings.LastIndexByte(field, '_')
	if i < 0 {
		return "", "", fmt.Errorf("SplitChromParent: field %q has no genotype: %w", field, ErrMalformedRecord)
	}
	return field[:i], field[i+1:], nil
}

func ParseDir(strand string) int {
	switch strand {
		case "+": return 1
		case "-": return -1
		default: return 0
	}
}

func ParseRead(chromf, posf, strandf string) (read Read, err error) {
	read.Ok = chromf != BadMate && posf != BadMate
	if !read.Ok {
		return read, nil
	}
	read.Chrom, read.Parent, err = SplitChromParent(chromf)
	if err != nil {
		return read, err
	}
	read.Pos, err = strconv.ParseInt(posf, 10, 64)
	if err != nil {
		return read, fmt.Errorf("ParseRead: position %q: %w", posf, ErrMalformedRecord)
	}
	read.Dir = ParseDir(strandf)
	return read, nil
}

func IsComment(line []string) bool {
	return len(line) > 0 && len(line[0]) > 0 && line[0][0] == '#'
}

func IsBlank(line []string) bool {
	return len(line) == 0 || (len(line) == 1 && line[0] == "")
}

func field(line []string, i int) string {
	if i < len(line) {
		return line[i]
	}
	return ""
}

// Whether either mate's chromosome or position field is the bad-mate
// sentinel. The line must have at least 5 fields.
func HasBadMate(line []string) bool {
	for _, f := range line[1:5] {
		if f == BadMate {
			return true
		}
	}
	return false
}

// Parse a data line (readID chrom1 pos1 chrom2 pos2 [strand1 strand2 pair_type ...]).
// A line with a bad mate is not an error and neither of its mates is parsed:
// both are returned with Ok unset, so Pair.Bad reports it.
func ParsePair(line []string) (pair Pair, err error) {
	h := handle("ParsePair: %w")
	if len(line) < 5 {
		return pair, h(fmt.Errorf("%d fields in %v: %w", len(line), line, ErrMalformedRecord))
	}
	pair.Name = line[0]
	pair.Fields = line
	pair.PairType = field(line, 7)
	if HasBadMate(line) {
		return pair, nil
	}
	if pair.Read1, err = ParseRead(line[1], line[2], field(line, 5)); err != nil {
		return pair, h(err)
	}
	if pair.Read2, err = ParseRead(line[3], line[4], field(line, 6)); err != nil {
		return pair, h(err)
	}
	return pair, nil
}
