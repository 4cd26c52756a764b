package pairviz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/jgbaldwinbrown/fastats/pkg"
)

// Statistics for one window (or region) with at least one pair hit
type Row struct {
	fastats.ChrSpan
	PairHits int64
	SelfHits int64
	PairProp float64
	SelfProp float64
	PairTotProp float64
	PairTotGoodProp float64
	PairTotCloseProp float64
	WinSize int64
	WinStep int64
	SelfFpkm float64
	PairFpkm float64
	PairPropFpkm float64
	SelfPropFpkm float64
}

type Report struct {
	Rows []Row
	Totals Totals
	Fpkm bool
	GenomeLength int64
	Name string
}

func ChrSpanLess(cs1, cs2 fastats.ChrSpan) bool {
	if cs1.Chr != cs2.Chr {
		return cs1.Chr < cs2.Chr
	}
	if cs1.Start != cs2.Start {
		return cs1.Start < cs2.Start
	}
	return cs1.End < cs2.End
}

func SortedBins(t HitTable) []fastats.ChrSpan {
	out := make([]fastats.ChrSpan, 0, len(t))
	for k := range t {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return ChrSpanLess(out[i], out[j])
	})
	return out
}

// Sum of every self and pair count in every bin
func (a *Aggregator) TotalHits() int64 {
	var total int64
	for _, v := range a.SelfHits {
		total += v
	}
	for _, v := range a.PairHits {
		total += v
	}
	return total
}

// One row per bin in PairHits, sorted by chromosome and start. A bin with no
// self hits has proportions 1 and 0.
func MakeReport(a *Aggregator) Report {
	rep := Report{
		Totals: a.Totals,
		Fpkm: a.Config.Fpkm,
		GenomeLength: a.Config.GenomeLength,
		Name: a.Config.Name,
	}
	totalHits := a.TotalHits()
	t := a.Totals

	for _, bin := range SortedBins(a.PairHits) {
		pair := a.PairHits[bin]
		self, ok := a.SelfHits[bin]
		if !ok {
			self = 0
		}
		r := Row{
			ChrSpan: bin,
			PairHits: pair,
			SelfHits: self,
			PairProp: float64(pair) / float64(pair + self),
			SelfProp: float64(self) / float64(pair + self),
			PairTotProp: float64(pair) / float64(t.Total),
			PairTotGoodProp: float64(pair) / float64(t.Good),
			PairTotCloseProp: float64(pair) / float64(t.Close),
			WinSize: a.Binner.Length(bin),
			WinStep: a.Binner.Step(bin),
		}
		if rep.Fpkm {
			r.SelfFpkm = Fpkm(self, totalHits, r.WinSize)
			r.PairFpkm = Fpkm(pair, totalHits, r.WinSize)
			r.PairPropFpkm = r.PairFpkm / (r.SelfFpkm + r.PairFpkm)
			r.SelfPropFpkm = r.SelfFpkm / (r.SelfFpkm + r.PairFpkm)
		}
		rep.Rows = append(rep.Rows, r)
	}
	return rep
}

func FprintHeader(w io.Writer, fpkm bool, namecol bool) error {
	_, e := fmt.Fprint(w, "chrom\tstart\tend\thit_type\talt_hit_type\thits\talt_hits\tpair_prop\talt_prop\tpair_totprop\tpair_totgoodprop\tpair_totcloseprop\twinsize\twinstep")
	if e != nil {
		return e
	}
	if fpkm {
		if _, e = fmt.Fprint(w, "\tself_fpkm\tpair_fpkm\tpair_prop_fpkm\talt_prop_fpkm"); e != nil {
			return e
		}
	}
	if namecol {
		if _, e = fmt.Fprint(w, "\tname"); e != nil {
			return e
		}
	}
	_, e = fmt.Fprintln(w, "")
	return e
}

// Write the report as a tab-separated table with a header
func FprintReport(w io.Writer, rep Report) error {
	h := handle("FprintReport: %w")
	if e := FprintHeader(w, rep.Fpkm, rep.Name != ""); e != nil {
		return h(e)
	}
	format_string := "%s\t%d\t%d\t%s\t%s\t%d\t%d\t%.8g\t%.8g\t%.8g\t%.8g\t%.8g\t%d\t%d"
	fpkm_format_string := "\t%.8g\t%.8g\t%.8g\t%.8g"
	name_format_string := "\t%s"
	for _, r := range rep.Rows {
		_, e := fmt.Fprintf(w,
			format_string,
			r.Chr,
			r.Start,
			r.End,
			"paired",
			"self",
			r.PairHits,
			r.SelfHits,
			r.PairProp,
			r.SelfProp,
			r.PairTotProp,
			r.PairTotGoodProp,
			r.PairTotCloseProp,
			r.WinSize,
			r.WinStep,
		)
		if e != nil {
			return h(e)
		}
		if rep.Fpkm {
			_, e = fmt.Fprintf(w,
				fpkm_format_string,
				r.SelfFpkm,
				r.PairFpkm,
				r.PairPropFpkm,
				r.SelfPropFpkm,
			)
			if e != nil {
				return h(e)
			}
		}
		if rep.Name != "" {
			if _, e = fmt.Fprintf(w, name_format_string, rep.Name); e != nil {
				return h(e)
			}
		}
		if _, e = fmt.Fprintln(w, ""); e != nil {
			return h(e)
		}
	}
	return nil
}

// A special variant of float64 that can marshal and unmarshal NaN and Inf values
type JsonFloat float64

func (j JsonFloat) MarshalJSON() ([]byte, error) {
	f := float64(j)
	if math.IsNaN(f) {
		return json.Marshal("NaN")
	}
	if math.IsInf(f, 1) {
		return json.Marshal("Inf")
	}
	if math.IsInf(f, -1) {
		return json.Marshal("-Inf")
	}
	return json.Marshal(f)
}

var jsonNaN = []byte(`"NaN"`)
var jsonInf = []byte(`"Inf"`)
var jsonNegInf = []byte(`"-Inf"`)

func (j *JsonFloat) UnmarshalJSON(p []byte) error {
	if bytes.Equal(p, jsonNaN) {
		*j = JsonFloat(math.NaN())
		return nil
	}
	if bytes.Equal(p, jsonInf) {
		*j = JsonFloat(math.Inf(1))
		return nil
	}
	if bytes.Equal(p, jsonNegInf) {
		*j = JsonFloat(math.Inf(-1))
		return nil
	}
	err := json.Unmarshal(p, (*float64)(j))
	if err != nil {
		return fmt.Errorf("JsonFloat UnmarshalJSON: input %v: %w", string(p), err)
	}
	return nil
}

// One report row as JSON. Field names follow the table header.
type JsonRow struct {
	Chr string `json:"chrom"`
	Start int64 `json:"start"`
	End int64 `json:"end"`
	HitType string `json:"hit_type"`
	AltHitType string `json:"alt_hit_type"`
	Hits JsonFloat `json:"hits"`
	AltHits JsonFloat `json:"alt_hits"`
	PairProp JsonFloat `json:"pair_prop"`
	AltProp JsonFloat `json:"alt_prop"`
	PairTotProp JsonFloat `json:"pair_totprop"`
	PairTotGoodProp JsonFloat `json:"pair_totgoodprop"`
	PairTotCloseProp JsonFloat `json:"pair_totcloseprop"`
	WinSize int64 `json:"winsize"`
	WinStep int64 `json:"winstep"`
	SelfFpkm JsonFloat `json:"self_fpkm"`
	PairFpkm JsonFloat `json:"pair_fpkm"`
	PairPropFpkm JsonFloat `json:"pair_prop_fpkm"`
	AltPropFpkm JsonFloat `json:"alt_prop_fpkm"`
	Name string `json:"name,omitempty"`
}

// Pointers to every numeric statistic, for column-wise arithmetic
func (j *JsonRow) Stats() []*JsonFloat {
	return []*JsonFloat{
		&j.Hits, &j.AltHits,
		&j.PairProp, &j.AltProp,
		&j.PairTotProp, &j.PairTotGoodProp, &j.PairTotCloseProp,
		&j.SelfFpkm, &j.PairFpkm, &j.PairPropFpkm, &j.AltPropFpkm,
	}
}

func MakeJsonRow(r Row, name string) JsonRow {
	return JsonRow{
		Chr: r.Chr,
		Start: r.Start,
		End: r.End,
		HitType: "paired",
		AltHitType: "self",
		Hits: JsonFloat(r.PairHits),
		AltHits: JsonFloat(r.SelfHits),
		PairProp: JsonFloat(r.PairProp),
		AltProp: JsonFloat(r.SelfProp),
		PairTotProp: JsonFloat(r.PairTotProp),
		PairTotGoodProp: JsonFloat(r.PairTotGoodProp),
		PairTotCloseProp: JsonFloat(r.PairTotCloseProp),
		WinSize: r.WinSize,
		WinStep: r.WinStep,
		SelfFpkm: JsonFloat(r.SelfFpkm),
		PairFpkm: JsonFloat(r.PairFpkm),
		PairPropFpkm: JsonFloat(r.PairPropFpkm),
		AltPropFpkm: JsonFloat(r.SelfPropFpkm),
		Name: name,
	}
}

// Write one JSON object per row
func FprintReportJson(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	for _, r := range rep.Rows {
		if e := enc.Encode(MakeJsonRow(r, rep.Name)); e != nil {
			return handle("FprintReportJson: %w")(e)
		}
	}
	return nil
}
