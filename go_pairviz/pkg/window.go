package pairviz

import (
	"github.com/jgbaldwinbrown/fastats/pkg"
)

// Maps one mate position to the bins it is counted in
type Binner interface {
	Bins(dst []fastats.ChrSpan, chrom string, pos int64) []fastats.ChrSpan
	// Length used as the FPKM denominator, and reported as winsize/winstep
	Length(bin fastats.ChrSpan) int64
	Step(bin fastats.ChrSpan) int64
}

// Every window of width winsize, aligned to a multiple of winstep, that
// contains pos. Near the start of a chromosome some windows begin below
// zero so that every position lands in exactly winsize/winstep windows.
func WinsHit(pos, winsize, winstep int64) []fastats.Span {
	return AppendWinsHit(make([]fastats.Span, 0, winsize / winstep), pos, winsize, winstep)
}

func AppendWinsHit(dst []fastats.Span, pos, winsize, winstep int64) []fastats.Span {
	hi := FloorDiv(pos, winstep) * winstep
	for start := hi - winsize + winstep; start <= hi; start += winstep {
		dst = append(dst, fastats.Span{Start: start, End: start + winsize})
	}
	return dst
}

type WindowBinner struct {
	WinSize int64
	WinStep int64
	spans []fastats.Span
}

func (b *WindowBinner) Bins(dst []fastats.ChrSpan, chrom string, pos int64) []fastats.ChrSpan {
	b.spans = AppendWinsHit(b.spans[:0], pos, b.WinSize, b.WinStep)
	for _, s := range b.spans {
		dst = append(dst, fastats.ChrSpan{Chr: chrom, Span: s})
	}
	return dst
}

func (b *WindowBinner) Length(fastats.ChrSpan) int64 { return b.WinSize }
func (b *WindowBinner) Step(fastats.ChrSpan) int64 { return b.WinStep }

// One bin per chromosome, keyed with a zero span
type ChromBinner struct{}

func (ChromBinner) Bins(dst []fastats.ChrSpan, chrom string, pos int64) []fastats.ChrSpan {
	return append(dst, fastats.ChrSpan{Chr: chrom})
}

func (ChromBinner) Length(fastats.ChrSpan) int64 { return 0 }
func (ChromBinner) Step(fastats.ChrSpan) int64 { return 0 }

// Pick the binner a configuration asks for. Region files are read here.
func NewBinner(c Config) (Binner, error) {
	if c.Chromosome {
		return ChromBinner{}, nil
	}
	if c.Region != "" {
		return ReadRegionBinnerPath(c.Region)
	}
	return &WindowBinner{WinSize: c.WinSize, WinStep: c.WinStep}, nil
}
