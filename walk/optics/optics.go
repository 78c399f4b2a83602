// Package optics describes linear-optical circuits over indexed bosonic
// modes and the contract for backends that evolve them into queryable
// photon-number statistics.
package optics

// An OpKind discriminates the operation types a Circuit may contain.
type OpKind int

const (
	// KindTwoModeSqueeze entangles two modes with a two-mode-squeezing
	// interaction of magnitude R, as produced by a TMSV pair source.
	KindTwoModeSqueeze OpKind = iota
	// KindCoherent displaces a single mode by the real amplitude Alpha,
	// preparing a coherent state of mean photon number Alpha².
	KindCoherent
	// KindBeamsplitter couples two modes with mixing angle Theta and
	// relative phase Phi.
	KindBeamsplitter
	// KindThermalLoss attenuates a single mode to Transmission and admixes
	// a thermal background of mean occupation NoiseMean, which models both
	// detection inefficiency and dark counts.
	KindThermalLoss
)

// An Op is a single typed operation on one or two modes. Only the parameter
// fields relevant to Kind are meaningful; the rest are zero.
type Op struct {
	Kind OpKind

	// ModeA is the target of single-mode operations and the first input of
	// two-mode operations; ModeB is the second input of two-mode operations.
	ModeA, ModeB int

	R            float64
	Alpha        float64
	Theta, Phi   float64
	Transmission float64
	NoiseMean    float64
}

// TwoModeSqueeze returns a two-mode squeezing op of magnitude r on (a, b).
func TwoModeSqueeze(a, b int, r float64) Op {
	return Op{Kind: KindTwoModeSqueeze, ModeA: a, ModeB: b, R: r}
}

// Coherent returns a coherent-displacement op of amplitude alpha on mode m.
func Coherent(m int, alpha float64) Op {
	return Op{Kind: KindCoherent, ModeA: m, Alpha: alpha}
}

// Beamsplitter returns a beamsplitter op with angle theta and phase phi
// coupling modes (a, b).
func Beamsplitter(a, b int, theta, phi float64) Op {
	return Op{Kind: KindBeamsplitter, ModeA: a, ModeB: b, Theta: theta, Phi: phi}
}

// ThermalLoss returns a loss op on mode m with the given transmission and
// thermal background mean.
func ThermalLoss(m int, transmission, noiseMean float64) Op {
	return Op{Kind: KindThermalLoss, ModeA: m, Transmission: transmission, NoiseMean: noiseMean}
}

// A Circuit is an ordered sequence of operations over Modes bosonic modes,
// all of which start in vacuum. It is built once per simulation run and
// consumed exactly once by a Backend.
type Circuit struct {
	Modes int
	Ops   []Op
}

// A State is the result of evolving a circuit, queryable for exact
// occupation-number probabilities.
type State interface {
	// OccupationProbability returns the joint probability of finding
	// exactly occupation[i] photons in mode i, for every mode
	// simultaneously. The occupation vector must cover all modes of the
	// simulated circuit.
	OccupationProbability(occupation []int) (float64, error)
}

// A Backend evolves circuits into queryable states. Backend errors indicate
// invalid physical parameters or numerical instability in the solver and are
// fatal to the run; callers must not retry.
type Backend interface {
	Simulate(c Circuit) (State, error)
}
