package walk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UltrafastQO/UTBEQuantumWalk/walk/optics"
)

func countKind(c optics.Circuit, kind optics.OpKind) int {
	n := 0
	for _, op := range c.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func TestBuildTopologyZeroSteps(t *testing.T) {
	p := Params{Steps: 0, Squeezing: 0.07, Efficiency: 0.5, DarkCountProb: 1e-6}
	c := buildTopology(p, 0.08, 1)

	require.Equal(t, 3, c.Modes)
	// Only initialization and the closing loss stage: no walk couplings.
	assert.Zero(t, countKind(c, optics.KindBeamsplitter))
	assert.Equal(t, 1, countKind(c, optics.KindTwoModeSqueeze))
	assert.Equal(t, 1, countKind(c, optics.KindCoherent))
	// One attenuator on the heralded input plus one loss per mode.
	assert.Equal(t, 1+c.Modes, countKind(c, optics.KindThermalLoss))

	// Input preparation comes first and in fixed order.
	require.GreaterOrEqual(t, len(c.Ops), 3)
	assert.Equal(t, optics.TwoModeSqueeze(0, 1, 0.07), c.Ops[0])
	assert.Equal(t, optics.ThermalLoss(1, 1, 0), c.Ops[1])
	assert.Equal(t, optics.Coherent(2, math.Sqrt(0.08)), c.Ops[2])
}

func TestBuildTopologyStepCounts(t *testing.T) {
	tcs := []struct {
		steps         int
		beamsplitters int
	}{
		// Odd step s contributes 5 couplings per prior time-bin pair, even
		// steps one; an odd walk ends with one basis change per time bin.
		{steps: 1, beamsplitters: 5 + 2},
		{steps: 2, beamsplitters: 5 + 2},
		{steps: 3, beamsplitters: 5 + 2 + 15 + 4},
		{steps: 4, beamsplitters: 5 + 2 + 15 + 4},
	}
	for _, tc := range tcs {
		p := Params{Steps: tc.steps, Efficiency: 0.07}
		c := buildTopology(p, 0.08, 1)
		assert.Equal(t, 2*(tc.steps+1)+1, c.Modes, "steps=%d", tc.steps)
		assert.Equal(t, tc.beamsplitters, countKind(c, optics.KindBeamsplitter), "steps=%d", tc.steps)
		assert.Equal(t, 1+c.Modes, countKind(c, optics.KindThermalLoss), "steps=%d", tc.steps)
	}
}

func TestBuildTopologyPhaseOnTimeShifts(t *testing.T) {
	p := Params{Steps: 3, Efficiency: 0.07, Phase: 0.3}
	c := buildTopology(p, 0.08, 1)
	shifts := 0
	for _, op := range c.Ops {
		if op.Kind != optics.KindBeamsplitter {
			continue
		}
		if op.Theta == math.Pi/2 {
			shifts++
			assert.Equal(t, 0.3, op.Phi)
			// Time shifts couple V-channel modes across adjacent bins.
			assert.Equal(t, op.ModeA+2, op.ModeB)
		} else {
			// Basis changes carry no phase.
			assert.Zero(t, op.Phi)
		}
	}
	// One time shift per (step, prior bin) pair: s=1,2,3 give 1+2+3.
	assert.Equal(t, 6, shifts)
}

func TestBuildTopologyHeraldedAttenuation(t *testing.T) {
	p := Params{Steps: 1, Efficiency: 0.07}
	c := buildTopology(p, 0.08, 0)
	assert.Equal(t, optics.ThermalLoss(1, 0, 0), c.Ops[1])
}

func TestBuildTopologyDeterministic(t *testing.T) {
	p := Params{Steps: 3, Squeezing: 0.07, Efficiency: 0.07, Phase: 0.1, DarkCountProb: 5e-6}
	assert.Equal(t, buildTopology(p, 0.08, 1), buildTopology(p, 0.08, 1))
}
