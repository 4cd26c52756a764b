package register

import (
	"bufio"
	"context"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/sirupsen/logrus"
)

type RegisterArgs struct {
	Maxdist int64 `arg:"-m,--maxdist" default:"30000" help:"largest mate distance to count; negative for no limit"`
}

func FullRegister() {
	var args RegisterArgs
	arg.MustParse(&args)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if e := Run(args.Maxdist, bufio.NewReader(os.Stdin), w); e != nil {
		logrus.Fatal(e)
	}
}

type MultiArgs struct {
	Threads int `arg:"-t,--threads" default:"-1" help:"jobs to run at once (default no limit)"`
}

// Jobs are read as JSON objects from stdin
func FullRegisterMulti() {
	var args MultiArgs
	arg.MustParse(&args)

	jobs, e := ReadJobs(os.Stdin)
	if e != nil {
		logrus.Fatal(e)
	}
	logrus.WithField("jobs", len(jobs)).Info("running register jobs")

	if e := RegisterMulti(context.Background(), args.Threads, jobs...); e != nil {
		logrus.Fatal(e)
	}
}

type FilterCliArgs struct {
	Args string `arg:"-a,--args,required" help:"JSON file of filter sets"`
}

func FullFilter() {
	var cli FilterCliArgs
	arg.MustParse(&cli)

	args, e := GetFilterArgsFromPath(cli.Args)
	if e != nil {
		logrus.Fatal(e)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	if e := RunFilter(bufio.NewReader(os.Stdin), w, args); e != nil {
		logrus.Fatal(e)
	}
}
