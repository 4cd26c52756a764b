package pairviz

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iter"
)

// Stream JSON report rows
func ParsePairvizOut(r io.Reader) *iter.Iterator[JsonRow] {
	return &iter.Iterator[JsonRow]{Iteratef: func(yield func(JsonRow) error) error {
		dec := json.NewDecoder(r)
		for {
			var j JsonRow
			err := dec.Decode(&j)
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return handle("ParsePairvizOut: %w")(err)
			}
			if err = yield(j); err != nil {
				return err
			}
		}
	}}
}

func AccumStats(sums *JsonRow, x JsonRow) {
	xs := x.Stats()
	for i, s := range sums.Stats() {
		*s += *xs[i]
	}
}

func DivCount(sums JsonRow, count float64) JsonRow {
	out := sums
	for _, s := range out.Stats() {
		*s /= JsonFloat(count)
	}
	return out
}

// Mean of every statistic over the rows on controlChr
func GetControlStatMeans(controlChr string, it iter.Iter[JsonRow]) (JsonRow, error) {
	var sums JsonRow
	var count int64

	err := it.Iterate(func(j JsonRow) error {
		if j.Chr == controlChr {
			AccumStats(&sums, j)
			count++
		}
		return nil
	})
	if err != nil {
		return sums, err
	}
	if count == 0 {
		return sums, fmt.Errorf("GetControlStatMeans: no rows on control chromosome %q", controlChr)
	}

	return DivCount(sums, float64(count)), nil
}

func SubtractControlStat(x JsonRow, control JsonRow) JsonRow {
	out := x
	cs := control.Stats()
	for i, s := range out.Stats() {
		*s -= *cs[i]
	}
	return out
}

func SubtractControlStatAll(it iter.Iter[JsonRow], control JsonRow) *iter.Iterator[JsonRow] {
	return iter.Transform[JsonRow, JsonRow](it, func(x JsonRow) (JsonRow, error) {
		return SubtractControlStat(x, control), nil
	})
}

func EncodeAll(w io.Writer, it iter.Iter[JsonRow]) error {
	enc := json.NewEncoder(w)
	return it.Iterate(func(j JsonRow) error {
		return enc.Encode(j)
	})
}

// Read the JSON report at inpath twice: once for the control means, once to
// write every row minus those means.
func SubtractControlPath(w io.Writer, controlChr, inpath string) (err error) {
	h := handle("SubtractControlPath: %w")

	r, e := csvh.OpenMaybeGz(inpath)
	if e != nil {
		return h(e)
	}
	cmean, e := GetControlStatMeans(controlChr, ParsePairvizOut(r))
	if e2 := r.Close(); e == nil {
		e = e2
	}
	if e != nil {
		return h(e)
	}

	r, e = csvh.OpenMaybeGz(inpath)
	if e != nil {
		return h(e)
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()

	return EncodeAll(w, SubtractControlStatAll(ParsePairvizOut(r), cmean))
}
