package pairviz

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jgbaldwinbrown/iter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRows(t *testing.T, rows ...JsonRow) string {
	var b bytes.Buffer
	require.NoError(t, EncodeAll(&b, iter.SliceIter[JsonRow](rows)))
	return b.String()
}

func testRows() []JsonRow {
	return []JsonRow{
		{Chr: "X", Start: 0, Hits: 2, PairProp: 0.25, SelfFpkm: 10},
		{Chr: "X", Start: 10, Hits: 4, PairProp: 0.75, SelfFpkm: 20},
		{Chr: "2L", Start: 0, Hits: 10, PairProp: 0.5, SelfFpkm: 30},
	}
}

func TestGetControlStatMeans(t *testing.T) {
	in := encodeRows(t, testRows()...)
	control, e := GetControlStatMeans("X", ParsePairvizOut(strings.NewReader(in)))
	require.NoError(t, e)
	assert.Equal(t, JsonFloat(3), control.Hits)
	assert.Equal(t, JsonFloat(0.5), control.PairProp)
	assert.Equal(t, JsonFloat(15), control.SelfFpkm)
}

func TestSubtractControlStatAll(t *testing.T) {
	in := encodeRows(t, testRows()...)
	control, e := GetControlStatMeans("X", ParsePairvizOut(strings.NewReader(in)))
	require.NoError(t, e)

	subs, e := iter.Collect[JsonRow](SubtractControlStatAll(ParsePairvizOut(strings.NewReader(in)), control))
	require.NoError(t, e)
	require.Len(t, subs, 3)
	assert.Equal(t, JsonFloat(7), subs[2].Hits)
	assert.Equal(t, JsonFloat(0), subs[2].PairProp)
	assert.Equal(t, JsonFloat(15), subs[2].SelfFpkm)
	assert.Equal(t, "2L", subs[2].Chr)
	assert.Equal(t, JsonFloat(-1), subs[0].Hits)
}

func TestSubtractControlPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(encodeRows(t, testRows()...)), 0644))

	var b bytes.Buffer
	require.NoError(t, SubtractControlPath(&b, "X", path))
	subs, e := iter.Collect[JsonRow](ParsePairvizOut(&b))
	require.NoError(t, e)
	require.Len(t, subs, 3)
	assert.Equal(t, JsonFloat(7), subs[2].Hits)
}

func TestSubtractControlMissingChrom(t *testing.T) {
	in := encodeRows(t, testRows()...)
	_, e := GetControlStatMeans("Y", ParsePairvizOut(strings.NewReader(in)))
	assert.Error(t, e)

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte(in), 0644))
	var b bytes.Buffer
	assert.Error(t, SubtractControlPath(&b, "Y", path))
	assert.Zero(t, b.Len())
}

func TestPairvizJsonRoundTrip(t *testing.T) {
	c := reportConfig()
	c.JsonOut = true
	agg, e := Aggregate(context.Background(), c, strings.NewReader(reportIn))
	require.NoError(t, e)

	var b bytes.Buffer
	require.NoError(t, WriteAggregate(&b, agg))
	control, e := GetControlStatMeans("2L", ParsePairvizOut(&b))
	require.NoError(t, e)
	assert.Equal(t, JsonFloat(0.75), control.PairProp)
}
