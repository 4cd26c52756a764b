package paircoord

import (
	"bufio"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/jgbaldwinbrown/csvh"
	"github.com/sirupsen/logrus"
)

type ConvArgs struct {
	Inputs []string `arg:"positional" help:".pairs files (default stdin)"`
	Stdin bool `arg:"-i,--stdin" help:"read standard input before the listed files"`
	Query string `arg:"-q,--query,required" help:"genotype that was the nucmer query; its coordinates are converted to the subject's"`
	Delta string `arg:"-m,--delta,required" help:"nucmer .delta file"`
	Unmapped string `arg:"-u,--unmapped" default:"fail" help:"unmapped query positions: fail, drop or keep"`
}

func ReadDeltaPath(path string) (m CoordMap, blocks int, err error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, 0, e
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()
	return ParseDeltaCount(bufio.NewReader(r))
}

// Open every input, with stdin first when asked for or when there are no
// paths. The returned closer closes all of them.
func OpenInputs(stdin bool, paths ...string) ([]io.Reader, func() error, error) {
	var rs []io.Reader
	var cs []io.Closer
	closeAll := func() error {
		var err error
		for _, c := range cs {
			if e := c.Close(); err == nil {
				err = e
			}
		}
		return err
	}

	if stdin || len(paths) == 0 {
		rs = append(rs, os.Stdin)
	}
	for _, p := range paths {
		r, e := csvh.OpenMaybeGz(p)
		if e != nil {
			closeAll()
			return nil, nil, e
		}
		rs = append(rs, r)
		cs = append(cs, r)
	}
	return rs, closeAll, nil
}

func FullPairCoord() {
	var args ConvArgs
	p := arg.MustParse(&args)
	policy, e := ParseUnmappedPolicy(args.Unmapped)
	if e != nil {
		p.Fail(e.Error())
	}

	cmap, blocks, e := ReadDeltaPath(args.Delta)
	if e != nil {
		logrus.Fatal(e)
	}
	logrus.WithFields(logrus.Fields{
		"blocks": blocks,
		"positions": len(cmap),
	}).Info("decoded delta")

	rs, closeAll, e := OpenInputs(args.Stdin, args.Inputs...)
	if e != nil {
		logrus.Fatal(e)
	}
	defer closeAll()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	stats, e := ConvAll(w, cmap, args.Query, policy, rs...)
	if e != nil {
		logrus.Fatal(e)
	}
	logrus.WithFields(logrus.Fields{
		"lines": stats.Lines,
		"translated": stats.Translated,
		"bad": stats.Bad,
		"dropped": stats.Dropped,
		"kept_unmapped": stats.KeptUnmapped,
	}).Info("translated pairs")
}

type SnpArgs struct {
	Inputs []string `arg:"positional" help:".pairs files (default stdin)"`
	Stdin bool `arg:"-i,--stdin" help:"read standard input before the listed files"`
	Snps string `arg:"-m,--snps,required" help:"show-snps output"`
	Query string `arg:"-q,--query,required" help:"genotype that was the nucmer query"`
	Reference string `arg:"-r,--reference,required" help:"genotype that was the nucmer reference"`
	ReadLen int64 `arg:"-l,--readlen" default:"150" help:"read length"`
}

func ReadSnpsPath(path, ref, query string) (s SnpSet, err error) {
	r, e := csvh.OpenMaybeGz(path)
	if e != nil {
		return nil, e
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()
	return ParseSnps(r, ref, query)
}

func FullPairSnps() {
	var args SnpArgs
	arg.MustParse(&args)

	snps, e := ReadSnpsPath(args.Snps, args.Reference, args.Query)
	if e != nil {
		logrus.Fatal(e)
	}

	rs, closeAll, e := OpenInputs(args.Stdin, args.Inputs...)
	if e != nil {
		logrus.Fatal(e)
	}
	defer closeAll()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	var total FilterStats
	for _, r := range rs {
		stats, e := FilterPairs(r, w, snps, args.ReadLen)
		total.Lines += stats.Lines
		total.Kept += stats.Kept
		total.Bad += stats.Bad
		if e != nil {
			logrus.Fatal(e)
		}
	}
	logrus.WithFields(logrus.Fields{
		"snps": len(snps),
		"lines": total.Lines,
		"kept": total.Kept,
		"bad": total.Bad,
	}).Info("filtered pairs")
}
