package walk

import (
	"math"

	"github.com/UltrafastQO/UTBEQuantumWalk/walk/optics"
)

// Circuit mode indexing: mode 0 is the herald; detection channel k of the
// interleaved (H;t0, V;t0, H;t1, V;t1, ...) convention is circuit mode k+1.

// buildTopology assembles the full walk circuit for p: input preparation,
// the parity-alternating crystal steps, the half-wave-plate correction when
// the walk ends mid-basis, and the closing loss+noise stage on every mode.
// The coherent intensity and the transmission of the heralded-photon input
// are passed separately from p so that the mode-mismatch branches can rescale
// or remove them without touching the rest of the configuration. Identical
// arguments always yield an identical operation sequence.
func buildTopology(p Params, coherentIntensity, fockTransmission float64) optics.Circuit {
	modes := p.DetectionChannels() + 1
	c := optics.Circuit{Modes: modes}

	// Input preparation: TMSV pair on (herald, H;t0), with an optional
	// attenuator on the heralded photon, and a coherent state on V;t0.
	c.Ops = append(c.Ops,
		optics.TwoModeSqueeze(0, 1, p.Squeezing),
		optics.ThermalLoss(1, fockTransmission, 0),
		optics.Coherent(2, math.Sqrt(coherentIntensity)),
	)

	// The crystal sequence alternates between two fixed orientations: odd
	// steps sit at 45° to the detection basis, even steps at 0°. At 45° the
	// time shift acts in the rotated basis, so each affected time-bin pair
	// is rotated in, shifted, and rotated back; at 0° the shift applies
	// directly.
	for s := 1; s <= p.Steps; s++ {
		if s%2 == 1 {
			for k := s - 1; k >= 0; k-- {
				c.Ops = append(c.Ops,
					optics.Beamsplitter(2*k+1, 2*k+2, -math.Pi/4, 0),
					optics.Beamsplitter(2*k+3, 2*k+4, -math.Pi/4, 0),
					optics.Beamsplitter(2*k+2, 2*k+4, math.Pi/2, p.Phase),
					optics.Beamsplitter(2*k+1, 2*k+2, math.Pi/4, 0),
					optics.Beamsplitter(2*k+3, 2*k+4, math.Pi/4, 0),
				)
			}
			continue
		}
		for k := s - 1; k >= 0; k-- {
			c.Ops = append(c.Ops,
				optics.Beamsplitter(2*k+2, 2*k+4, math.Pi/2, p.Phase),
			)
		}
	}

	// A walk ending on a 45° crystal leaves the state mid-basis; one more
	// basis change per time bin restores the detection basis, mimicking a
	// half-wave plate.
	if p.Steps%2 == 1 {
		for k := 0; k <= p.Steps; k++ {
			c.Ops = append(c.Ops,
				optics.Beamsplitter(2*k+1, 2*k+2, -math.Pi/4, 0),
			)
		}
	}

	// Loss and dark counts apply uniformly to every mode, herald included.
	for i := 0; i < modes; i++ {
		c.Ops = append(c.Ops, optics.ThermalLoss(i, p.Efficiency, p.DarkCountProb))
	}
	return c
}
