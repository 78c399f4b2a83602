package optics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func simulate(t *testing.T, c Circuit) State {
	t.Helper()
	s, err := NewMeanField(MeanFieldOpts{}).Simulate(c)
	require.NoError(t, err)
	return s
}

func prob(t *testing.T, s State, occ []int) float64 {
	t.Helper()
	p, err := s.OccupationProbability(occ)
	require.NoError(t, err)
	return p
}

func TestSimulateVacuum(t *testing.T) {
	s := simulate(t, Circuit{Modes: 2})
	assert.InDelta(t, 1, prob(t, s, []int{0, 0}), tol)
	assert.Zero(t, prob(t, s, []int{1, 0}))
}

func TestSimulateCoherent(t *testing.T) {
	alpha := 0.5
	mu := alpha * alpha
	s := simulate(t, Circuit{Modes: 1, Ops: []Op{Coherent(0, alpha)}})
	assert.InDelta(t, math.Exp(-mu), prob(t, s, []int{0}), tol)
	assert.InDelta(t, mu*math.Exp(-mu), prob(t, s, []int{1}), tol)
	assert.InDelta(t, mu*mu/2*math.Exp(-mu), prob(t, s, []int{2}), tol)
}

func TestSimulateTwoModeSqueeze(t *testing.T) {
	r := 0.07
	mu := math.Sinh(r) * math.Sinh(r)
	s := simulate(t, Circuit{Modes: 2, Ops: []Op{TwoModeSqueeze(0, 1, r)}})
	assert.InDelta(t, mu*math.Exp(-mu)*math.Exp(-mu), prob(t, s, []int{1, 0}), tol)
	assert.InDelta(t, mu*mu*math.Exp(-2*mu), prob(t, s, []int{1, 1}), tol)
}

func TestSimulateBeamsplitter(t *testing.T) {
	tcs := []struct {
		name   string
		theta  float64
		wantA  float64
		wantB  float64
		intens float64
	}{
		{name: "full swap", theta: math.Pi / 2, wantA: 0, wantB: 1, intens: 1},
		{name: "balanced", theta: math.Pi / 4, wantA: 0.5, wantB: 0.5, intens: 1},
		{name: "identity", theta: 0, wantA: 1, wantB: 0, intens: 1},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			s := simulate(t, Circuit{Modes: 2, Ops: []Op{
				Coherent(0, math.Sqrt(tc.intens)),
				Beamsplitter(0, 1, tc.theta, 0),
			}})
			// P(0,0) factorizes over the per-mode means.
			want := math.Exp(-tc.wantA) * math.Exp(-tc.wantB)
			assert.InDelta(t, want, prob(t, s, []int{0, 0}), 1e-9)
			wantOne := poissonProb(tc.wantA, 0) * poissonProb(tc.wantB, 1)
			assert.InDelta(t, wantOne, prob(t, s, []int{0, 1}), 1e-9)
		})
	}
}

func TestSimulateThermalLoss(t *testing.T) {
	s := simulate(t, Circuit{Modes: 1, Ops: []Op{
		Coherent(0, 1),
		ThermalLoss(0, 0.5, 0.1),
	}})
	mu := 0.5*1 + 0.5*0.1
	assert.InDelta(t, math.Exp(-mu), prob(t, s, []int{0}), tol)
	assert.InDelta(t, mu*math.Exp(-mu), prob(t, s, []int{1}), tol)
}

func TestSimulateFullAttenuation(t *testing.T) {
	s := simulate(t, Circuit{Modes: 1, Ops: []Op{
		Coherent(0, 1),
		ThermalLoss(0, 0, 0),
	}})
	assert.InDelta(t, 1, prob(t, s, []int{0}), tol)
	assert.Zero(t, prob(t, s, []int{1}))
}

func TestSimulateErrors(t *testing.T) {
	mf := NewMeanField(MeanFieldOpts{})
	tcs := []struct {
		name string
		c    Circuit
	}{
		{name: "mode out of range", c: Circuit{Modes: 1, Ops: []Op{Coherent(1, 1)}}},
		{name: "negative mode", c: Circuit{Modes: 2, Ops: []Op{Beamsplitter(-1, 0, 0, 0)}}},
		{name: "self coupling", c: Circuit{Modes: 2, Ops: []Op{Beamsplitter(1, 1, 0, 0)}}},
		{name: "transmission above one", c: Circuit{Modes: 1, Ops: []Op{ThermalLoss(0, 1.5, 0)}}},
		{name: "unknown op", c: Circuit{Modes: 1, Ops: []Op{{Kind: OpKind(99)}}}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := mf.Simulate(tc.c)
			require.Error(t, err)
		})
	}
}

func TestOccupationProbabilityErrors(t *testing.T) {
	s := simulate(t, Circuit{Modes: 2})
	_, err := s.OccupationProbability([]int{0})
	require.Error(t, err)
	_, err = s.OccupationProbability([]int{0, -1})
	require.Error(t, err)
}
