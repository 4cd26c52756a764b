package pairviz

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"github.com/jgbaldwinbrown/iter"
	"github.com/sajari/regression"
)

type BatchInfo struct {
	Name string
	Batch int
}

type BatchInfoTable struct {
	Infos []BatchInfo
	NameToBatch map[string]int
	NBatches int
}

// Read a tab-separated (name, batch) table. Batches are small non-negative integers.
func GetBatchInfo(r io.Reader) (BatchInfoTable, error) {
	h := handle("GetBatchInfo: %w")
	cr := csvh.CsvIn(r)
	bit := BatchInfoTable{NameToBatch: map[string]int{}}
	for l, e := cr.Read(); e != io.EOF; l, e = cr.Read() {
		if e != nil {
			return bit, h(e)
		}
		if len(l) < 2 {
			return bit, h(fmt.Errorf("line %v too short", l))
		}

		var bi BatchInfo
		if _, e = csvh.Scan(l, &bi.Name, &bi.Batch); e != nil {
			return bit, h(e)
		}
		if bi.Batch < 0 {
			return bit, h(fmt.Errorf("negative batch %v for %v", bi.Batch, bi.Name))
		}
		bit.Infos = append(bit.Infos, bi)
		bit.NameToBatch[bi.Name] = bi.Batch
		if bi.Batch + 1 > bit.NBatches {
			bit.NBatches = bi.Batch + 1
		}
	}

	return bit, nil
}

func GetBatchInfoPath(path string) (bit BatchInfoTable, err error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return BatchInfoTable{}, e
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()

	return GetBatchInfo(r)
}

// y followed by indicator columns for batches 1..n-1; batch 0 is the intercept
func MakeControlLine(y float64, name string, t BatchInfoTable) []float64 {
	n := t.NBatches
	if n < 1 {
		n = 1
	}
	x := make([]float64, n)
	x[0] = y
	if b := t.NameToBatch[name]; b > 0 {
		x[b] = 1
	}
	return x
}

// Self FPKM of every control chromosome row, with its batch indicators
func GetBatchControlStatTable(controlChr string, t BatchInfoTable, it iter.Iter[JsonRow]) ([][]float64, error) {
	var out [][]float64
	err := it.Iterate(func(j JsonRow) error {
		if j.Chr == controlChr {
			out = append(out, MakeControlLine(float64(j.SelfFpkm), j.Name, t))
		}
		return nil
	})
	return out, err
}

func TrainTable(table [][]float64, depcol int, depname string, indepcols []int, indepnames []string) (*regression.Regression, error) {
	totrain := make(regression.DataPoints, len(table))
	for i, row := range table {
		indeps := make([]float64, len(indepcols))
		for j, col := range indepcols {
			indeps[j] = row[col]
		}
		totrain[i] = regression.DataPoint(row[depcol], indeps)
	}

	r := new(regression.Regression)
	r.SetObserved(depname)
	for i, name := range indepnames {
		r.SetVar(i, name)
	}
	r.Train(totrain...)
	if e := r.Run(); e != nil {
		return nil, handle("TrainTable: %w")(e)
	}
	return r, nil
}

func BuildModel(table [][]float64) (*regression.Regression, error) {
	if len(table) < 1 {
		return nil, fmt.Errorf("BuildModel: empty control table")
	}
	indepcols := make([]int, len(table[0]) - 1)
	indepnames := make([]string, len(table[0]) - 1)
	for i := 0; i < len(indepcols); i++ {
		indepcols[i] = i + 1
		indepnames[i] = fmt.Sprintf("batch%d", i + 1)
	}

	return TrainTable(table, 0, "self_fpkm", indepcols, indepnames)
}

func Residual(y float64, x []float64, model *regression.Regression) (float64, error) {
	p, e := model.Predict(x)
	if e != nil {
		return 0, e
	}
	return y - p, nil
}

// Replace pair FPKM with its residual from the batch model
func ResidualFromFpkm(x JsonRow, t BatchInfoTable, model *regression.Regression) (JsonRow, error) {
	line := MakeControlLine(float64(x.PairFpkm), x.Name, t)
	res, err := Residual(line[0], line[1:], model)
	if err != nil {
		return x, handle("ResidualFromFpkm: row %v:%v: %w")(x.Chr, x.Start, err)
	}
	x.PairFpkm = JsonFloat(res)
	return x, nil
}

func ResidualFromFpkmAll(it iter.Iter[JsonRow], t BatchInfoTable, model *regression.Regression) *iter.Iterator[JsonRow] {
	return iter.Transform[JsonRow, JsonRow](it, func(x JsonRow) (JsonRow, error) {
		return ResidualFromFpkm(x, t, model)
	})
}

func WriteModel(path string, bit BatchInfoTable, controls [][]float64, model *regression.Regression) (err error) {
	w, e := csvh.CreateMaybeGz(path)
	if e != nil {
		return e
	}
	defer func() { csvh.DeferE(&err, w.Close()) }()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")

	if e = enc.Encode(bit); e != nil {
		return e
	}
	if e = enc.Encode(controls); e != nil {
		return e
	}
	return enc.Encode(model)
}

type EcnormLmArgs struct {
	BatchPath string
	ControlChr string
	Inpath string
	ModelOut string
}

// Fit the control-chromosome model from inpath, then stream every row of
// inpath with its pair FPKM replaced by the residual.
func EcnormLmPath(w io.Writer, a EcnormLmArgs) (err error) {
	h := handle("EcnormLmPath: %w")

	bit, e := GetBatchInfoPath(a.BatchPath)
	if e != nil {
		return h(e)
	}

	r, e := csvh.OpenMaybeGz(a.Inpath)
	if e != nil {
		return h(e)
	}
	controls, e := GetBatchControlStatTable(a.ControlChr, bit, ParsePairvizOut(r))
	if e2 := r.Close(); e == nil {
		e = e2
	}
	if e != nil {
		return h(e)
	}

	model, e := BuildModel(controls)
	if e != nil {
		return h(e)
	}
	if a.ModelOut != "" {
		if e := WriteModel(a.ModelOut, bit, controls, model); e != nil {
			return h(e)
		}
	}

	r, e = csvh.OpenMaybeGz(a.Inpath)
	if e != nil {
		return h(e)
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()

	return EncodeAll(w, ResidualFromFpkmAll(ParsePairvizOut(r), bit, model))
}
