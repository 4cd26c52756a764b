package pairviz

import (
	"testing"

	"github.com/jgbaldwinbrown/fastats/pkg"
	"github.com/stretchr/testify/assert"
)

func TestWinsHit(t *testing.T) {
	wins := WinsHit(150, 100000, 10000)
	assert.Len(t, wins, 10)
	assert.Equal(t, fastats.Span{Start: -90000, End: 10000}, wins[0])
	assert.Equal(t, fastats.Span{Start: 0, End: 100000}, wins[9])
}

func TestWinsHitContainsPos(t *testing.T) {
	sizes := [][2]int64{{100000, 10000}, {10, 10}, {30, 10}, {9, 3}}
	positions := []int64{0, 1, 9, 10, 11, 150, 9999, 10000, 100000, 123456, -1, -10}
	for _, sz := range sizes {
		for _, pos := range positions {
			wins := WinsHit(pos, sz[0], sz[1])
			if len(wins) != int(sz[0] / sz[1]) {
				t.Errorf("pos %v size %v step %v: %v windows", pos, sz[0], sz[1], len(wins))
			}
			for _, w := range wins {
				if pos < w.Start || pos >= w.End {
					t.Errorf("pos %v not in window %v", pos, w)
				}
				if w.Start % sz[1] != 0 {
					t.Errorf("window %v not aligned to %v", w, sz[1])
				}
			}
		}
	}
}

func TestWindowBinner(t *testing.T) {
	b := &WindowBinner{WinSize: 20, WinStep: 10}
	bins := b.Bins(nil, "2L", 25)
	assert.Equal(t, []fastats.ChrSpan{
		{Chr: "2L", Span: fastats.Span{Start: 10, End: 30}},
		{Chr: "2L", Span: fastats.Span{Start: 20, End: 40}},
	}, bins)
	assert.Equal(t, int64(20), b.Length(bins[0]))
	assert.Equal(t, int64(10), b.Step(bins[0]))
}

func TestChromBinner(t *testing.T) {
	var b ChromBinner
	bins := b.Bins(nil, "3R", 12345)
	assert.Equal(t, []fastats.ChrSpan{{Chr: "3R"}}, bins)
}
