package paircoord

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const convDelta = deltaHead + `>2L 2L 1000 1000
10 20 100 110 0 0 0
0
`

const convIn = `## pairs format v1.0
#columns: readID chrom1 pos1 chrom2 pos2 strand1 strand2 pair_type
R1	2L_q	105	2L_s	50	+	-	UU	extra
R2	!	!	2L_q	105	-	-	NU
R3	2L_q	500	2L_s	50	+	-	UU
`

const convHead = "## pairs format v1.0\n#columns: readID chrom1 pos1 chrom2 pos2 strand1 strand2 pair_type\n" +
	"R1\t2L_q\t15\t2L_s\t50\t+\t-\tUU\textra\n" +
	"R2\t!\t!\t2L_q\t105\t-\t-\tNU\n"

func convMap(t *testing.T) CoordMap {
	m, e := ParseDelta(strings.NewReader(convDelta))
	require.NoError(t, e)
	return m
}

func TestConvFilePolicies(t *testing.T) {
	m := convMap(t)

	var drop strings.Builder
	stats, e := ConvFile(strings.NewReader(convIn), &drop, m, "q", UnmappedDrop)
	require.NoError(t, e)
	assert.Equal(t, convHead, drop.String())
	assert.Equal(t, ConvStats{Comments: 2, Lines: 3, Translated: 1, Bad: 1, Dropped: 1}, stats)

	var keep strings.Builder
	stats, e = ConvFile(strings.NewReader(convIn), &keep, m, "q", UnmappedKeep)
	require.NoError(t, e)
	assert.Equal(t, convHead + "R3\t2L_q\t500\t2L_s\t50\t+\t-\tUU\n", keep.String())
	assert.Equal(t, int64(1), stats.KeptUnmapped)

	var fail strings.Builder
	_, e = ConvFile(strings.NewReader(convIn), &fail, m, "q", UnmappedFail)
	assert.ErrorIs(t, e, ErrUnmappedPosition)
	assert.Contains(t, e.Error(), "line 5")
}

func TestConvFileOtherGenotype(t *testing.T) {
	m := convMap(t)
	in := "R1\t2L_s\t105\t2L_s\t500\t+\t-\tUU\n"
	var b strings.Builder
	stats, e := ConvFile(strings.NewReader(in), &b, m, "q", UnmappedFail)
	require.NoError(t, e)
	assert.Equal(t, in, b.String())
	assert.Equal(t, int64(1), stats.Translated)
}

func TestConvFileMalformed(t *testing.T) {
	var b strings.Builder
	_, e := ConvFile(strings.NewReader("R1\t2L\t105\n"), &b, CoordMap{}, "q", UnmappedDrop)
	assert.Error(t, e)
}

func TestConvAll(t *testing.T) {
	m := convMap(t)
	var b strings.Builder
	stats, e := ConvAll(&b, m, "q", UnmappedDrop, strings.NewReader(convIn), strings.NewReader(convIn))
	require.NoError(t, e)
	assert.Equal(t, convHead + convHead, b.String())
	assert.Equal(t, int64(2), stats.Translated)
	assert.Equal(t, int64(2), stats.Dropped)
}

func TestParseUnmappedPolicy(t *testing.T) {
	for s, p := range map[string]UnmappedPolicy{"": UnmappedFail, "fail": UnmappedFail, "drop": UnmappedDrop, "keep": UnmappedKeep} {
		got, e := ParseUnmappedPolicy(s)
		require.NoError(t, e)
		assert.Equal(t, p, got)
	}
	_, e := ParseUnmappedPolicy("ignore")
	assert.Error(t, e)
}
