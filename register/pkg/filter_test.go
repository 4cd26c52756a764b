package register

import (
	"testing"
	"strings"

	"github.com/jgbaldwinbrown/hicpair/go_pairviz/pkg"
	"github.com/stretchr/testify/require"
)

const filterArg = `
{
	"FilterSets": [
		{
			"MaxDist": 5,
			"MinDist": 2,
			"Faces": [1,2,3],
			"ReadTypes": [1,2,3]
		}
	]
}
`

const filterIn = `#columns: readID chrom1 pos1 chrom2 pos2 strand1 strand2 pair_type
r1	c1_p1	3	c1_p1	8	+	-	UU
r2	c1_p1	3	c1_p2	6	+	-	UU
r3	c1_p1	1	c2_p1	9	+	-	UU
r3	c1_p1	1	c2_p2	2	+	-	UU
r4	!	0	c1_p1	4	-	-	NU`

const filterExpect = `r1	c1_p1	3	c1_p1	8	+	-	UU
r2	c1_p1	3	c1_p2	6	+	-	UU
`

func TestFilter(t *testing.T) {
	arg, e := GetFilterArgsFromReader(strings.NewReader(filterArg))
	require.NoError(t, e)

	var b strings.Builder
	e = RunFilter(strings.NewReader(filterIn), &b, arg)
	require.NoError(t, e)

	out := b.String()
	if out != filterExpect {
		t.Errorf("out %v != expect %v", out, filterExpect)
	}
}

func TestFilterReadTypes(t *testing.T) {
	arg := FilterArgs{FilterSets: []FilterSet{{MaxDist: 100, Faces: []pairviz.Facing{pairviz.In}, ReadTypes: []ReadType{TransType}}}}

	var b strings.Builder
	require.NoError(t, RunFilter(strings.NewReader(filterIn), &b, arg))

	expect := "r3\tc1_p1\t1\tc2_p1\t9\t+\t-\tUU\nr3\tc1_p1\t1\tc2_p2\t2\t+\t-\tUU\n"
	if b.String() != expect {
		t.Errorf("out %q != expect %q", b.String(), expect)
	}
}

func TestFilterDropOverlaps(t *testing.T) {
	arg := FilterArgs{FilterSets: []FilterSet{{
		MaxDist: 100,
		Faces: []pairviz.Facing{pairviz.In},
		ReadTypes: []ReadType{SelfType, PairType},
		DropOverlaps: true,
		ReadLen: 3,
	}}}

	var b strings.Builder
	require.NoError(t, RunFilter(strings.NewReader(filterIn), &b, arg))

	expect := "r2\tc1_p1\t3\tc1_p2\t6\t+\t-\tUU\n"
	if b.String() != expect {
		t.Errorf("out %q != expect %q", b.String(), expect)
	}
}
