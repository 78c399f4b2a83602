package dist

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// ErrZeroMass is returned when an operation would need to normalize a
// distribution carrying no probability mass, e.g. after projecting onto a
// photon-count subspace that the input never populates. Surfacing it keeps a
// degenerate projection from silently becoming a NaN-valued map.
var ErrZeroMass = errors.New("dist: distribution has no probability mass")

// A Distribution maps detection outcomes to non-negative weights. It may be
// unnormalized (weights summing below one, e.g. when a herald-success factor
// is folded in) or normalized; operations in this package never mutate their
// inputs and always return fresh maps.
type Distribution map[Outcome]float64

// Mass returns the summed weight of d.
func (d Distribution) Mass() float64 {
	weights := make([]float64, 0, len(d))
	for _, w := range d {
		weights = append(weights, w)
	}
	return floats.Sum(weights)
}

// Normalize returns a copy of d with every weight divided by the total mass
// of d. A zero-mass input yields ErrZeroMass.
func Normalize(d Distribution) (Distribution, error) {
	mass := d.Mass()
	if mass <= 0 {
		return nil, ErrZeroMass
	}
	r := make(Distribution, len(d))
	for o, w := range d {
		r[o] = w / mass
	}
	return r, nil
}

// FilterByTotal projects d onto the subspace of outcomes whose total photon
// count equals n, and normalizes the projection. An empty or zero-mass
// subspace yields ErrZeroMass.
func FilterByTotal(d Distribution, n int) (Distribution, error) {
	sub := make(Distribution)
	for o, w := range d {
		if o.Total() == n {
			sub[o] = w
		}
	}
	return Normalize(sub)
}

// MarginalizeInterleaved splits every outcome of d into the sub-outcomes at
// even and odd channel positions, which by the walk's channel convention are
// the H- and V-polarization channels of each time bin, and traces out the
// other half. Both returned distributions are normalized.
func MarginalizeInterleaved(d Distribution) (even, odd Distribution, err error) {
	even = make(Distribution)
	odd = make(Distribution)
	for o, w := range d {
		counts := o.Counts()
		var evenCounts, oddCounts []int
		for i, c := range counts {
			if i%2 == 0 {
				evenCounts = append(evenCounts, c)
			} else {
				oddCounts = append(oddCounts, c)
			}
		}
		even[NewOutcome(evenCounts)] += w
		odd[NewOutcome(oddCounts)] += w
	}
	if even, err = Normalize(even); err != nil {
		return nil, nil, err
	}
	if odd, err = Normalize(odd); err != nil {
		return nil, nil, err
	}
	return even, odd, nil
}

// Convolve combines two independent, non-interfering processes sharing the
// same detection channels: for every pair of outcomes it sums occupations
// element-wise and multiplies weights, accumulating by summed outcome.
// Combined outcomes whose total exceeds maxPhotons are dropped; the dropped
// weight is reported in discarded so callers can judge the truncation. The
// result is not renormalized; the caller decides when to normalize.
func Convolve(d1, d2 Distribution, maxPhotons int) (conv Distribution, discarded float64) {
	conv = make(Distribution)
	for o1, w1 := range d1 {
		for o2, w2 := range d2 {
			sum := add(o1, o2)
			if sum.Total() > maxPhotons {
				discarded += w1 * w2
				continue
			}
			conv[sum] += w1 * w2
		}
	}
	return conv, discarded
}
