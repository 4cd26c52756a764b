package register

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/jgbaldwinbrown/csvh"
	"golang.org/x/sync/errgroup"
)

type Job struct {
	Inpath string
	Outpath string
	Maxdist int64
}

func RunPaths(inpath, outpath string, maxdist int64) (err error) {
	r, e := csvh.OpenMaybeGz(inpath)
	if e != nil {
		return e
	}
	defer func() { csvh.DeferE(&err, r.Close()) }()

	w, e := csvh.CreateMaybeGz(outpath)
	if e != nil {
		return e
	}
	defer func() { csvh.DeferE(&err, w.Close()) }()
	bw := bufio.NewWriter(w)
	defer func() { csvh.DeferE(&err, bw.Flush()) }()

	return Run(maxdist, bufio.NewReader(r), bw)
}

func RunJob(ctx context.Context, j Job) error {
	if e := ctx.Err(); e != nil {
		return e
	}
	if e := RunPaths(j.Inpath, j.Outpath, j.Maxdist); e != nil {
		return handle("RunJob: %v: %w")(j.Inpath, e)
	}
	return nil
}

// Run every job, at most threads at once (no limit when threads <= 0). The
// first failure cancels jobs that have not started.
func RegisterMulti(ctx context.Context, threads int, jobs ...Job) error {
	g, ctx2 := errgroup.WithContext(ctx)
	if threads > 0 {
		g.SetLimit(threads)
	}
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return RunJob(ctx2, job)
		})
	}
	return g.Wait()
}

// A stream of JSON jobs
func ReadJobs(r io.Reader) ([]Job, error) {
	dec := json.NewDecoder(r)
	var jobs []Job
	for {
		var j Job
		e := dec.Decode(&j)
		if e == io.EOF {
			return jobs, nil
		}
		if e != nil {
			return nil, handle("ReadJobs: %w")(e)
		}
		jobs = append(jobs, j)
	}
}
