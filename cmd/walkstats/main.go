// walkstats computes walk output statistics for each entry in the cartesian
// product of a collection of walk parameters, e.g. step count, crystal phase
// and mode overlap, and outputs a CSV of relevant statistics for each
// combination, e.g. vacuum probability and photon-count subspace masses.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	"github.com/UltrafastQO/UTBEQuantumWalk/walk"
	"github.com/UltrafastQO/UTBEQuantumWalk/walk/dist"
	"github.com/UltrafastQO/UTBEQuantumWalk/walk/optics"
)

var (
	nSteps  = flag.IntSlice("nSteps", []int{3}, "The number of crystal steps in the walk.")
	gamma   = flag.Float64Slice("gamma", []float64{0}, "The H/V phase imparted by each crystal's group delay.")
	overlap = flag.Float64Slice("overlap", []float64{1}, "The mode overlap between the heralded photon and the coherent state.")

	r          = flag.Float64("r", 0.07, "The squeezing parameter of the TMSV source.")
	alphaSq    = flag.Float64("alphaSq", 0.08, "The mean photon number of the coherent input.")
	eta        = flag.Float64("eta", 0.07, "The overall efficiency applied before all detectors.")
	nNoise     = flag.Float64("nNoise", 5e-6, "The dark count probability per pump pulse in each mode.")
	maxPhotons = flag.Int("maxPhotons", 2, "The total-photon-number cutoff for detection outcomes.")
	verbose    = flag.Bool("verbose", false, "Enable debug logging.")
)

var (
	inputs  = []string{"nSteps", "gamma", "overlap"}
	columns = []string{"NSteps", "Gamma", "Overlap", "Outcomes", "VacuumProb",
		"OneFoldMass", "TwoFoldMass", "MaxHProb", "MaxVProb", "Succeeded"}
)

// An Experiment packages together the result of a single parameterization
// for easy formatting.
type Experiment struct {
	// Fields corresponding to experiment parameters
	NSteps  int
	Gamma   float64
	Overlap float64

	// Fields corresponding to experiment results
	Outcomes    int
	VacuumProb  float64
	OneFoldMass float64
	TwoFoldMass float64
	MaxHProb    float64
	MaxVProb    float64
	Succeeded   bool
}

func main() {
	flag.Parse()
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		zl = zl.Level(zerolog.InfoLevel)
	}
	engine, err := walk.NewEngine(walk.EngineOpts{
		Backend: optics.NewMeanField(optics.MeanFieldOpts{}),
		Logger:  &zl,
	})
	if err != nil {
		log.Fatalf("Constructing engine: %v", err)
	}

	fmt.Println(header())
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	var args [][]interface{}
	for _, inp := range inputs {
		args = append(args, lookupInput(inp))
	}
	applyCartesian(func(args []interface{}) {
		exp := &Experiment{
			NSteps:  args[inpIndex("nSteps")].(int),
			Gamma:   args[inpIndex("gamma")].(float64),
			Overlap: args[inpIndex("overlap")].(float64),
		}
		if err := compute(engine, exp); err != nil {
			zl.Error().Err(err).Int("nSteps", exp.NSteps).Msg("computing walk output")
		}
		if err := tmpl.Execute(os.Stdout, exp); err != nil {
			log.Fatalf("BUG: could not fill in line template: %v", err)
		}
	}, args)
}

func inpIndex(v string) int {
	for i, inp := range inputs {
		if inp == v {
			return i
		}
	}
	return -1
}

func compute(engine *walk.Engine, exp *Experiment) error {
	p := walk.Params{
		Steps:             exp.NSteps,
		Squeezing:         *r,
		CoherentIntensity: *alphaSq,
		Efficiency:        *eta,
		Phase:             exp.Gamma,
		DarkCountProb:     *nNoise,
		MaxPhotons:        *maxPhotons,
	}
	pn, err := engine.ComputeWalkWithMismatch(p, exp.Overlap)
	if err != nil {
		return err
	}
	exp.Outcomes = len(pn)
	exp.VacuumProb = pn[dist.NewOutcome(make([]int, p.DetectionChannels()))]
	for o, w := range pn {
		switch o.Total() {
		case 1:
			exp.OneFoldMass += w
		case 2:
			exp.TwoFoldMass += w
		}
	}
	h, v, err := dist.MarginalizeInterleaved(pn)
	if err != nil {
		return err
	}
	hSum, err := dist.Summarize(h)
	if err != nil {
		return err
	}
	vSum, err := dist.Summarize(v)
	if err != nil {
		return err
	}
	exp.MaxHProb = hSum.Max
	exp.MaxVProb = vSum.Max
	exp.Succeeded = true
	return nil
}

func header() string {
	return strings.Join(columns, ", ")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}

func lookupInput(name string) []interface{} {
	var vals []interface{}
	if v, err := flag.CommandLine.GetIntSlice(name); err == nil {
		for _, val := range v {
			vals = append(vals, val)
		}
	} else if v, err := flag.CommandLine.GetFloat64Slice(name); err == nil {
		for _, val := range v {
			vals = append(vals, val)
		}
	} else {
		log.Fatalf("Unknown type for input %s", name)
	}
	return vals
}

func applyCartesian(f func([]interface{}), args [][]interface{}) {
	for i := range args {
		if len(args[i]) == 1 {
			continue
		}
		l := make([][]interface{}, len(args))
		r := make([][]interface{}, len(args))
		copy(l, args)
		copy(r, args)
		l[i] = args[i][:1]
		r[i] = args[i][1:]
		applyCartesian(f, l)
		applyCartesian(f, r)
		return
	}
	x := make([]interface{}, 0, len(args))
	for _, a := range args {
		x = append(x, a[0])
	}
	f(x)
}
