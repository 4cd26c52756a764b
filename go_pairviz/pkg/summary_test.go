package pairviz

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	c := reportConfig()
	c.Fpkm = true
	c.GenomeLength = 1000
	var b strings.Builder
	require.NoError(t, FprintReport(&b, MakeReport(runLines(t, c, reportIn))))

	ss, e := Summarize(strings.NewReader(b.String()))
	require.NoError(t, e)
	require.Len(t, ss, 2)

	assert.Equal(t, "pair_prop", ss[0].Column)
	assert.Equal(t, "2L", ss[0].Chrom)
	assert.Equal(t, 2, ss[0].N)
	assert.InDelta(t, 0.75, ss[0].Mean, 1e-9)
	assert.InDelta(t, 0.75, ss[0].Median, 1e-9)
	assert.InDelta(t, 0.25, ss[0].Sd, 1e-9)
	assert.InDelta(t, 1.0, ss[0].Max, 1e-9)
	assert.Equal(t, "pair_prop_fpkm", ss[1].Column)

	var out strings.Builder
	require.NoError(t, FprintSummaries(&out, ss))
	assert.True(t, strings.HasPrefix(out.String(), "chrom\tcolumn\tn\tmean\tmedian\tsd\tmax\n2L\tpair_prop\t2\t0.75\t0.75\t0.25\t1\n"))
}

func TestSummarizeColumnEmpty(t *testing.T) {
	s, e := SummarizeColumn("2L", "pair_prop", nil)
	require.NoError(t, e)
	assert.Equal(t, 0, s.N)
	assert.True(t, math.IsNaN(s.Mean))
}

func TestSummarizeNoChrom(t *testing.T) {
	_, e := Summarize(strings.NewReader("start\tend\n0\t10\n"))
	assert.Error(t, e)
}
