package pairviz

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/jgbaldwinbrown/csvh"
	"github.com/sirupsen/logrus"
)

type PairvizArgs struct {
	Inputs []string `arg:"positional" help:".pairs files, optionally gzipped (default stdin)"`
	Stdin bool `arg:"-i,--stdin" help:"read standard input as well as the listed files"`
	WinSize int64 `arg:"-w,--winsize" default:"100000" help:"window size"`
	WinStep int64 `arg:"-s,--winstep" default:"10000" help:"window step; must divide the window size"`
	Distance int64 `arg:"-d,--distance" default:"5000000" help:"mates this far apart or more are not counted as contacts"`
	Chromosome bool `arg:"-c,--chromosome" help:"whole-chromosome statistics instead of sliding windows"`
	Region string `arg:"-r,--region" help:"BED file of regions to use instead of sliding windows"`
	Fpkm bool `arg:"-f,--fpkm" help:"add FPKM columns"`
	GenomeLength int64 `arg:"-g,--genome-length" default:"-1" help:"genome length, required with --fpkm"`
	Name string `arg:"-n,--name" help:"name to add as a final column"`
	Json bool `arg:"-j,--json" help:"write JSON rows instead of a table"`
	Threads int `arg:"-t,--threads" default:"1" help:"input files to aggregate at once"`
}

func (a PairvizArgs) Config() Config {
	return Config{
		WinSize: a.WinSize,
		WinStep: a.WinStep,
		Distance: a.Distance,
		Chromosome: a.Chromosome,
		Region: a.Region,
		Fpkm: a.Fpkm,
		GenomeLength: a.GenomeLength,
		Name: a.Name,
		JsonOut: a.Json,
		Threads: a.Threads,
	}
}

// Aggregate stdin (if non-nil) and every path into one run.
func Aggregate(ctx context.Context, c Config, stdin io.Reader, paths ...string) (*Aggregator, error) {
	if e := c.Validate(); e != nil {
		return nil, e
	}
	agg, e := AggregateFiles(ctx, c, c.Threads, paths...)
	if e != nil {
		return nil, e
	}
	if stdin != nil {
		if e := agg.Run(stdin); e != nil {
			return nil, e
		}
	}
	return agg, nil
}

func WriteAggregate(w io.Writer, agg *Aggregator) error {
	c := agg.Config
	if c.Chromosome {
		return FprintChromStats(w, MakeChromStats(agg))
	}
	rep := MakeReport(agg)
	if c.JsonOut {
		return FprintReportJson(w, rep)
	}
	return FprintReport(w, rep)
}

func LogTotals(agg *Aggregator) {
	t := agg.Totals
	logrus.WithFields(logrus.Fields{
		"total": t.Total,
		"good": t.Good,
		"bad": t.Bad,
		"close": t.Close,
		"self_bins": len(agg.SelfHits),
		"pair_bins": len(agg.PairHits),
	}).Info("aggregated pairs")
}

func FullPairviz() {
	var args PairvizArgs
	arg.MustParse(&args)

	var stdin io.Reader
	if args.Stdin || len(args.Inputs) == 0 {
		stdin = bufio.NewReader(os.Stdin)
	}

	agg, e := Aggregate(context.Background(), args.Config(), stdin, args.Inputs...)
	if e != nil {
		logrus.Fatal(e)
	}
	LogTotals(agg)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if e := WriteAggregate(w, agg); e != nil {
		logrus.Fatal(e)
	}
}

type SubtractControlArgs struct {
	Control string `arg:"-c,--control,required" help:"chromosome to use as control"`
	Inpath string `arg:"-i,--input,required" help:"JSON report from pairviz --json"`
}

func FullSubtractControl() {
	var args SubtractControlArgs
	arg.MustParse(&args)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if e := SubtractControlPath(w, args.Control, args.Inpath); e != nil {
		logrus.Fatal(e)
	}
}

type EcnormLmCliArgs struct {
	Batch string `arg:"--batch,required" help:"tab-separated batch table (name, batch number)"`
	Control string `arg:"-c,--control,required" help:"chromosome to use as control"`
	Inpath string `arg:"-i,--input,required" help:"JSON report from pairviz --json"`
	ModelOut string `arg:"--mo" help:"path to write the fitted model to"`
}

func FullEcnormLm() {
	var args EcnormLmCliArgs
	arg.MustParse(&args)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	e := EcnormLmPath(w, EcnormLmArgs{
		BatchPath: args.Batch,
		ControlChr: args.Control,
		Inpath: args.Inpath,
		ModelOut: args.ModelOut,
	})
	if e != nil {
		logrus.Fatal(e)
	}
}

type SummaryArgs struct {
	Input string `arg:"positional" help:"pairviz table (default stdin)"`
}

func FullSummary() {
	var args SummaryArgs
	arg.MustParse(&args)

	var r io.Reader = os.Stdin
	if args.Input != "" {
		rc, e := csvh.OpenMaybeGz(args.Input)
		if e != nil {
			logrus.Fatal(e)
		}
		defer rc.Close()
		r = rc
	}

	ss, e := Summarize(r)
	if e != nil {
		logrus.Fatal(e)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	if e := FprintSummaries(w, ss); e != nil {
		logrus.Fatal(e)
	}
}
