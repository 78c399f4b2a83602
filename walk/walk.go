// Package walk computes the output photon-detection statistics of a
// time-multiplexed photonic quantum walk, in which a heralded single photon
// interferes with a coherent state across a sequence of birefringent-crystal
// steps, subject to loss, dark counts, and partial mode mismatch.
//
// Detection channels follow the interleaved time-bin convention
// (H;t0, V;t0, H;t1, V;t1, ...). The herald occupies a separate circuit mode
// that is conditioned upon but never reported in outcomes.
package walk

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/UltrafastQO/UTBEQuantumWalk/walk/optics"
)

// Params collects the physical configuration of a single walk computation.
// It is passed by value through the pipeline and never mutated.
type Params struct {
	// Steps is the number of birefringent-crystal steps in the walk.
	Steps int

	// Squeezing is the squeezing parameter r of the TMSV pair source that
	// produces the heralded photon.
	Squeezing float64

	// CoherentIntensity is the mean photon number of the coherent input.
	CoherentIntensity float64

	// Efficiency is the overall transmission applied to every channel
	// (including the herald) before detection.
	Efficiency float64

	// Phase is the H/V phase gamma imparted by each crystal's group delay.
	Phase float64

	// DarkCountProb is the dark-count probability per pump pulse in each
	// mode.
	DarkCountProb float64

	// MaxPhotons is the total-photon-number cutoff for enumerated
	// detection outcomes.
	MaxPhotons int
}

// Validate rejects unphysical parameters. It is called before any backend
// work so that configuration errors never reach the solver.
func (p Params) Validate() error {
	if p.Steps < 0 {
		return fmt.Errorf("negative step count %d", p.Steps)
	}
	if p.MaxPhotons < 0 {
		return fmt.Errorf("negative photon cutoff %d", p.MaxPhotons)
	}
	if p.CoherentIntensity < 0 {
		return fmt.Errorf("negative coherent intensity %v", p.CoherentIntensity)
	}
	if p.Efficiency < 0 || p.Efficiency > 1 {
		return fmt.Errorf("efficiency %v outside [0,1]", p.Efficiency)
	}
	if p.DarkCountProb < 0 || p.DarkCountProb > 1 {
		return fmt.Errorf("dark count probability %v outside [0,1]", p.DarkCountProb)
	}
	return nil
}

// DetectionChannels returns the number of reported channels for p: two
// polarization channels per time bin, with each step opening one new bin.
func (p Params) DetectionChannels() int {
	return 2 * (p.Steps + 1)
}

// An Engine computes walk output statistics against a configured backend.
type Engine struct {
	backend optics.Backend
	log     zerolog.Logger
}

// EngineOpts packages together the arguments necessary to construct an
// Engine.
type EngineOpts struct {
	// Backend evolves walk circuits into queryable states. Must be
	// non-nil.
	Backend optics.Backend

	// Logger receives per-run diagnostics. Optional; defaults to a no-op
	// logger.
	Logger *zerolog.Logger
}

// NewEngine returns a new Engine, configured in accordance with opts, or an
// error if the options are nonsensical.
func NewEngine(opts EngineOpts) (*Engine, error) {
	if opts.Backend == nil {
		return nil, errors.New("must provide Backend")
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "walk_engine").Logger()
	}
	return &Engine{backend: opts.Backend, log: log}, nil
}
