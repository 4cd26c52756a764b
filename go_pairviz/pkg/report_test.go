package pairviz

import (
	"math"
	"strings"
	"testing"

	"github.com/jgbaldwinbrown/iter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reportIn = `R1	2L_A	5	2L_B	6	+	-	UU
R2	2L_A	15	2L_A	16	+	-	UU
R3	2L_A	15	2L_B	17	+	-	UU
R4	!	!	2L_B	3	-	-	NU
`

func reportConfig() Config {
	c := DefaultConfig()
	c.WinSize = 10
	c.WinStep = 10
	return c
}

const reportHeader = "chrom\tstart\tend\thit_type\talt_hit_type\thits\talt_hits\tpair_prop\talt_prop\tpair_totprop\tpair_totgoodprop\tpair_totcloseprop\twinsize\twinstep"

func TestFprintReport(t *testing.T) {
	a := runLines(t, reportConfig(), reportIn)
	var b strings.Builder
	require.NoError(t, FprintReport(&b, MakeReport(a)))

	expect := reportHeader + "\n" +
		"2L\t0\t10\tpaired\tself\t1\t0\t1\t0\t0.25\t0.33333333\t0.33333333\t10\t10\n" +
		"2L\t10\t20\tpaired\tself\t1\t1\t0.5\t0.5\t0.25\t0.33333333\t0.33333333\t10\t10\n"
	if b.String() != expect {
		t.Errorf("output %q != expect %q", b.String(), expect)
	}
}

func TestFprintReportFpkm(t *testing.T) {
	c := reportConfig()
	c.Fpkm = true
	c.GenomeLength = 1000
	c.Name = "s1"
	a := runLines(t, c, reportIn)
	var b strings.Builder
	require.NoError(t, FprintReport(&b, MakeReport(a)))

	expect := reportHeader + "\tself_fpkm\tpair_fpkm\tpair_prop_fpkm\talt_prop_fpkm\tname\n" +
		"2L\t0\t10\tpaired\tself\t1\t0\t1\t0\t0.25\t0.33333333\t0.33333333\t10\t10\t0\t33333333\t1\t0\ts1\n" +
		"2L\t10\t20\tpaired\tself\t1\t1\t0.5\t0.5\t0.25\t0.33333333\t0.33333333\t10\t10\t33333333\t33333333\t0.5\t0.5\ts1\n"
	if b.String() != expect {
		t.Errorf("output %q != expect %q", b.String(), expect)
	}
}

func TestMakeReportIdempotent(t *testing.T) {
	a := runLines(t, DefaultConfig(), aggIn1 + aggIn2)
	var b1, b2 strings.Builder
	require.NoError(t, FprintReport(&b1, MakeReport(a)))
	require.NoError(t, FprintReport(&b2, MakeReport(a)))
	assert.Equal(t, b1.String(), b2.String())
}

func TestMakeReportSorted(t *testing.T) {
	rep := MakeReport(runLines(t, DefaultConfig(), aggIn1 + aggIn2))
	require.NotEmpty(t, rep.Rows)
	for i := 1; i < len(rep.Rows); i++ {
		assert.True(t, ChrSpanLess(rep.Rows[i-1].ChrSpan, rep.Rows[i].ChrSpan))
	}
}

func TestFprintReportJson(t *testing.T) {
	c := reportConfig()
	c.Name = "s1"
	a := runLines(t, c, reportIn)
	var b strings.Builder
	require.NoError(t, FprintReportJson(&b, MakeReport(a)))

	rows, e := iter.Collect[JsonRow](ParsePairvizOut(strings.NewReader(b.String())))
	require.NoError(t, e)
	require.Len(t, rows, 2)
	assert.Equal(t, "2L", rows[1].Chr)
	assert.Equal(t, int64(10), rows[1].Start)
	assert.Equal(t, JsonFloat(1), rows[1].Hits)
	assert.Equal(t, JsonFloat(0.5), rows[1].PairProp)
	assert.Equal(t, "s1", rows[1].Name)
}

func TestJsonFloat(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 0.25} {
		p, e := JsonFloat(f).MarshalJSON()
		require.NoError(t, e)
		var j JsonFloat
		require.NoError(t, j.UnmarshalJSON(p))
		floatsMatch(t, f, float64(j))
	}
}
