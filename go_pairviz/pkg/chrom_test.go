package pairviz

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFprintChromStats(t *testing.T) {
	c := DefaultConfig()
	c.Chromosome = true
	a := runLines(t, c, reportIn)

	var b strings.Builder
	require.NoError(t, FprintChromStats(&b, MakeChromStats(a)))

	expect := `self	2L	1
pair	2L	2
pair_proportion	2L	0.66666667
pair_proportion_of_total_good	2L	0.66666667
pair_proportion_of_total	2L	0.5
pair_proportion_of_total_close_range	2L	0.66666667
total reads: 4
total good reads: 3
total bad reads: 1
total close range reads (< 5000000 bp): 3
NU reads: 1
UU reads: 3
`
	if b.String() != expect {
		t.Errorf("output %q != expect %q", b.String(), expect)
	}
}
