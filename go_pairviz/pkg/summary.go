package pairviz

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/montanaflynn/stats"
)

// Distribution of one report column over the windows of one chromosome
type ColumnSummary struct {
	Chrom string
	Column string
	N int
	Mean float64
	Median float64
	Sd float64
	Max float64
}

func colIndex(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// Read a TSV report and collect the named columns per chromosome. Columns
// missing from the header are skipped.
func ReadReportColumns(r io.Reader, cols ...string) (byChrom map[string]map[string]stats.Float64Data, present []string, err error) {
	h := handle("ReadReportColumns: %w")
	cr := csvh.CsvIn(r)
	cr.FieldsPerRecord = -1

	header, e := cr.Read()
	if e != nil {
		return nil, nil, h(e)
	}
	header = append([]string{}, header...)
	chromi := colIndex(header, "chrom")
	if chromi < 0 {
		return nil, nil, h(fmt.Errorf("no chrom column in header %v", header))
	}
	var idxs []int
	for _, c := range cols {
		if i := colIndex(header, c); i >= 0 {
			idxs = append(idxs, i)
			present = append(present, c)
		}
	}

	byChrom = map[string]map[string]stats.Float64Data{}
	for l, e := cr.Read(); e != io.EOF; l, e = cr.Read() {
		if e != nil {
			return nil, nil, h(e)
		}
		chrom := l[chromi]
		m, ok := byChrom[chrom]
		if !ok {
			m = map[string]stats.Float64Data{}
			byChrom[chrom] = m
		}
		for j, i := range idxs {
			if i >= len(l) {
				return nil, nil, h(fmt.Errorf("line %v too short", l))
			}
			f, e := strconv.ParseFloat(l[i], 64)
			if e != nil {
				return nil, nil, h(e)
			}
			if math.IsNaN(f) {
				continue
			}
			m[present[j]] = append(m[present[j]], f)
		}
	}
	return byChrom, present, nil
}

func SummarizeColumn(chrom, col string, data stats.Float64Data) (ColumnSummary, error) {
	s := ColumnSummary{Chrom: chrom, Column: col, N: data.Len()}
	if s.N == 0 {
		s.Mean, s.Median, s.Sd, s.Max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s, nil
	}
	var e error
	if s.Mean, e = stats.Mean(data); e != nil {
		return s, e
	}
	if s.Median, e = stats.Median(data); e != nil {
		return s, e
	}
	if s.Sd, e = stats.StandardDeviation(data); e != nil {
		return s, e
	}
	if s.Max, e = stats.Max(data); e != nil {
		return s, e
	}
	return s, nil
}

// Summaries of pair_prop and, when present, pair_prop_fpkm for every chromosome
func Summarize(r io.Reader) ([]ColumnSummary, error) {
	byChrom, present, e := ReadReportColumns(r, "pair_prop", "pair_prop_fpkm")
	if e != nil {
		return nil, e
	}
	var out []ColumnSummary
	for _, chrom := range sortedKeys(byChrom) {
		for _, col := range present {
			s, e := SummarizeColumn(chrom, col, byChrom[chrom][col])
			if e != nil {
				return nil, handle("Summarize: %v %v: %w")(chrom, col, e)
			}
			out = append(out, s)
		}
	}
	return out, nil
}

func FprintSummaries(w io.Writer, ss []ColumnSummary) error {
	if _, e := fmt.Fprintln(w, "chrom\tcolumn\tn\tmean\tmedian\tsd\tmax"); e != nil {
		return e
	}
	for _, s := range ss {
		_, e := fmt.Fprintf(w, "%s\t%s\t%d\t%.8g\t%.8g\t%.8g\t%.8g\n", s.Chrom, s.Column, s.N, s.Mean, s.Median, s.Sd, s.Max)
		if e != nil {
			return e
		}
	}
	return nil
}
