package walk

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/UltrafastQO/UTBEQuantumWalk/walk/dist"
)

// ComputeIdealWalk computes the walk output statistics for p with a fully
// present heralded photon and full coherent intensity, returning the
// normalized distribution over the full outcome space.
func (e *Engine) ComputeIdealWalk(p Params) (dist.Distribution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log := e.log.With().Str("run_id", uuid.NewString()).Logger()
	log.Debug().Int("steps", p.Steps).Int("max_photons", p.MaxPhotons).Msg("computing ideal walk")
	raw, err := e.run(p, p.CoherentIntensity, 1)
	if err != nil {
		return nil, err
	}
	return dist.Normalize(raw)
}

// ComputeWalkWithMismatch computes the walk output statistics for p when the
// heralded photon and the coherent state have mode overlap in [0,1].
//
// Partial indistinguishability is modeled as an incoherent mixture of two
// orthogonal walks running at once: a parallel branch carrying the heralded
// photon and a coherent intensity scaled by overlap, and a perpendicular
// branch carrying the remaining coherent intensity with the heralded-photon
// input fully attenuated but the herald click still conditioned on. The two
// photon-number distributions combine by convolution, since the detectors
// cannot tell the branches apart. At overlap 0 or 1 only one branch carries
// light, so that branch is computed alone; convolving with the other would
// fold its dark-count-only statistics in twice.
func (e *Engine) ComputeWalkWithMismatch(p Params, overlap float64) (dist.Distribution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if overlap < 0 || overlap > 1 {
		return nil, fmt.Errorf("mode overlap %v outside [0,1]", overlap)
	}
	log := e.log.With().Str("run_id", uuid.NewString()).Logger()
	log.Debug().Int("steps", p.Steps).Float64("overlap", overlap).Msg("computing walk with mode mismatch")

	switch overlap {
	case 1:
		raw, err := e.run(p, p.CoherentIntensity, 1)
		if err != nil {
			return nil, err
		}
		return dist.Normalize(raw)
	case 0:
		raw, err := e.run(p, p.CoherentIntensity, 0)
		if err != nil {
			return nil, err
		}
		return dist.Normalize(raw)
	}

	para, err := e.run(p, overlap*p.CoherentIntensity, 1)
	if err != nil {
		return nil, fmt.Errorf("parallel branch: %w", err)
	}
	perp, err := e.run(p, (1-overlap)*p.CoherentIntensity, 0)
	if err != nil {
		return nil, fmt.Errorf("perpendicular branch: %w", err)
	}
	conv, discarded := dist.Convolve(para, perp, p.MaxPhotons)
	log.Debug().Float64("discarded_mass", discarded).Msg("convolved mismatch branches")
	return dist.Normalize(conv)
}

// run performs one full single-pass computation: it builds the topology,
// submits it to the backend, and queries the joint probability of every
// enumerated outcome together with exactly one herald photon. The returned
// distribution is unnormalized; the herald-success probability stays folded
// in as an overall factor so that independently computed branches keep their
// correct relative weights.
func (e *Engine) run(p Params, coherentIntensity, fockTransmission float64) (dist.Distribution, error) {
	circ := buildTopology(p, coherentIntensity, fockTransmission)
	state, err := e.backend.Simulate(circ)
	if err != nil {
		return nil, fmt.Errorf("simulating walk circuit: %w", err)
	}

	channels := p.DetectionChannels()
	outcomes := dist.Enumerate(channels, p.MaxPhotons)
	pn := make(dist.Distribution, len(outcomes))
	occupation := make([]int, channels+1)
	occupation[0] = 1 // herald click
	for _, o := range outcomes {
		for i := 0; i < channels; i++ {
			occupation[i+1] = o.At(i)
		}
		pr, err := state.OccupationProbability(occupation)
		if err != nil {
			return nil, fmt.Errorf("querying outcome %v: %w", o, err)
		}
		pn[o] = pr
	}
	return pn, nil
}
