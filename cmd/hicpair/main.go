package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/jgbaldwinbrown/hicpair/go_pairviz/pkg"
	"github.com/jgbaldwinbrown/hicpair/pair_coord/pkg"
	"github.com/jgbaldwinbrown/hicpair/register/pkg"
)

const Version = "0.1.0"

type progPair struct {
	help string
	main func()
}

var progs = map[string]progPair{
	"pairviz": progPair{"self and paired hit proportions in sliding windows, regions or whole chromosomes", pairviz.FullPairviz},
	"pair-coord": progPair{"translate one genotype's .pairs coordinates through a nucmer delta", paircoord.FullPairCoord},
	"pair-snps": progPair{"keep .pairs lines where both mates cover a SNP", paircoord.FullPairSnps},
	"summary": progPair{"per-chromosome distribution of pairviz proportions", pairviz.FullSummary},
	"subtract-control": progPair{"subtract control chromosome means from a JSON pairviz report", pairviz.FullSubtractControl},
	"ecnorm-lm": progPair{"replace pair FPKM with residuals from a batch model of control self FPKM", pairviz.FullEcnormLm},
	"register": progPair{"histograms of mate distance by pair category and facing", register.FullRegister},
	"register-multi": progPair{"run register over a JSON list of jobs in parallel", register.FullRegisterMulti},
	"register-filter": progPair{"filter .pairs lines by distance, facing and pair category", register.FullFilter},
}

func printProgs() {
	var wtr io.Writer = os.Stdout

	fmt.Fprintf(wtr, "hicpair Version: %s\n\n", Version)
	var keys []string
	l := 5
	for k := range progs {
		keys = append(keys, k)
		if len(k) > l {
			l = len(k)
		}
	}
	fmtr := "%-" + strconv.Itoa(l) + "s : %s\n"
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(wtr, fmtr, k, progs[k].help)
	}
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		printProgs()
	}
	var p progPair
	var ok bool
	if p, ok = progs[os.Args[1]]; !ok {
		printProgs()
	}
	// remove the prog name from the call
	os.Args = append(os.Args[:1], os.Args[2:]...)
	p.main()
}
