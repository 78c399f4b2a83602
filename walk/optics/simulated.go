package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultHBar is the convention constant used by continuous-variable solvers
// to relate quadrature operators to creation/annihilation operators.
const DefaultHBar = 2

// MeanFieldOpts configures a MeanField backend.
type MeanFieldOpts struct {
	// HBar fixes the quadrature convention, for parity with Gaussian-state
	// solvers that require it at construction. The mean-field model itself
	// is convention-free. Defaults to DefaultHBar.
	HBar float64
}

// A MeanField is a simulated backend that tracks only the mean photon number
// of each mode: squeezers and coherent sources deposit intensity,
// beamsplitters mix it, and thermal loss attenuates it. Occupation
// probabilities are reported as products of independent Poisson factors, so
// amplitude interference between modes is ignored. That makes it a faithful
// stand-in only in the low-mean-photon-number regime, which is exactly where
// the walk operates; it is intended for tests and smoke runs in place of a
// full Gaussian-state solver.
type MeanField struct {
	hbar float64
}

// NewMeanField returns a MeanField backend configured by opts.
func NewMeanField(opts MeanFieldOpts) *MeanField {
	hbar := opts.HBar
	if hbar == 0 {
		hbar = DefaultHBar
	}
	return &MeanField{hbar: hbar}
}

// Simulate implements the Backend interface.
func (m *MeanField) Simulate(c Circuit) (State, error) {
	if c.Modes < 0 {
		return nil, fmt.Errorf("circuit has %d modes", c.Modes)
	}
	means := make([]float64, c.Modes)
	for i, op := range c.Ops {
		if err := checkModes(op, c.Modes); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		switch op.Kind {
		case KindTwoModeSqueeze:
			// A TMSV source emits thermal marginals of mean sinh²(r) into
			// both modes.
			mu := math.Sinh(op.R)
			mu *= mu
			means[op.ModeA] += mu
			means[op.ModeB] += mu
		case KindCoherent:
			means[op.ModeA] += op.Alpha * op.Alpha
		case KindBeamsplitter:
			cos2 := math.Cos(op.Theta)
			cos2 *= cos2
			a, b := means[op.ModeA], means[op.ModeB]
			means[op.ModeA] = cos2*a + (1-cos2)*b
			means[op.ModeB] = (1-cos2)*a + cos2*b
		case KindThermalLoss:
			if op.Transmission < 0 || op.Transmission > 1 {
				return nil, fmt.Errorf("op %d: transmission %v outside [0,1]", i, op.Transmission)
			}
			t := op.Transmission
			means[op.ModeA] = t*means[op.ModeA] + (1-t)*op.NoiseMean
		default:
			return nil, fmt.Errorf("op %d: unknown kind %d", i, op.Kind)
		}
	}
	return &meanFieldState{means: means}, nil
}

type meanFieldState struct {
	means []float64
}

// OccupationProbability implements the State interface.
func (s *meanFieldState) OccupationProbability(occupation []int) (float64, error) {
	if len(occupation) != len(s.means) {
		return 0, fmt.Errorf("occupation vector covers %d modes, state has %d", len(occupation), len(s.means))
	}
	p := 1.0
	for i, n := range occupation {
		if n < 0 {
			return 0, fmt.Errorf("mode %d: negative occupation %d", i, n)
		}
		p *= poissonProb(s.means[i], n)
	}
	return p, nil
}

func poissonProb(mean float64, n int) float64 {
	if mean <= 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	return distuv.Poisson{Lambda: mean}.Prob(float64(n))
}

func checkModes(op Op, modes int) error {
	if op.ModeA < 0 || op.ModeA >= modes {
		return fmt.Errorf("mode %d outside circuit of %d modes", op.ModeA, modes)
	}
	twoMode := op.Kind == KindTwoModeSqueeze || op.Kind == KindBeamsplitter
	if !twoMode {
		return nil
	}
	if op.ModeB < 0 || op.ModeB >= modes {
		return fmt.Errorf("mode %d outside circuit of %d modes", op.ModeB, modes)
	}
	if op.ModeA == op.ModeB {
		return fmt.Errorf("two-mode op targets mode %d twice", op.ModeA)
	}
	return nil
}
