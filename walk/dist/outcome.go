// Package dist provides photon-number detection outcomes and the sparse
// probability distributions defined over them.
package dist

import (
	"fmt"
	"strings"
)

// An Outcome is an ordered, fixed-length vector of photon counts, one entry
// per detection channel. It is packed one byte per channel so that it can be
// used directly as a map key with structural equality. Outcomes are
// immutable; all accessors return copies.
type Outcome string

// NewOutcome packs counts into an Outcome. Counts must be non-negative and
// below 256; walk configurations keep per-channel occupation in single
// digits, so the byte packing is never a practical restriction.
func NewOutcome(counts []int) Outcome {
	var b strings.Builder
	b.Grow(len(counts))
	for _, c := range counts {
		if c < 0 || c > 255 {
			panic(fmt.Sprintf("dist: occupation %d outside packable range", c))
		}
		b.WriteByte(byte(c))
	}
	return Outcome(b.String())
}

// Len returns the number of detection channels in o.
func (o Outcome) Len() int {
	return len(o)
}

// At returns the photon count in channel i.
func (o Outcome) At(i int) int {
	return int(o[i])
}

// Total returns the summed photon count across all channels.
func (o Outcome) Total() int {
	t := 0
	for i := 0; i < len(o); i++ {
		t += int(o[i])
	}
	return t
}

// Counts returns a copy of the per-channel photon counts underlying o.
func (o Outcome) Counts() []int {
	counts := make([]int, len(o))
	for i := range counts {
		counts[i] = int(o[i])
	}
	return counts
}

// String renders o in the conventional tuple form, e.g. "(1,0,2)".
func (o Outcome) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < len(o); i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", o[i])
	}
	b.WriteByte(')')
	return b.String()
}

// add returns the element-wise sum of a and b, zipping over the shorter of
// the two if their lengths differ.
func add(a, b Outcome) Outcome {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := make([]int, n)
	for i := 0; i < n; i++ {
		sum[i] = int(a[i]) + int(b[i])
	}
	return NewOutcome(sum)
}

// Enumerate produces every length-numChannels outcome whose per-channel
// occupation lies in [0, maxPhotons] and whose total does not exceed
// maxPhotons. It backtracks channel by channel, pruning branches whose
// remaining photon budget is exhausted, and returns outcomes in
// lexicographic order. numChannels == 0 yields the single empty outcome.
func Enumerate(numChannels, maxPhotons int) []Outcome {
	var outcomes []Outcome
	counts := make([]int, numChannels)
	var rec func(channel, remaining int)
	rec = func(channel, remaining int) {
		if channel == numChannels {
			outcomes = append(outcomes, NewOutcome(counts))
			return
		}
		for n := 0; n <= maxPhotons && n <= remaining; n++ {
			counts[channel] = n
			rec(channel+1, remaining-n)
		}
		counts[channel] = 0
	}
	if maxPhotons < 0 {
		return nil
	}
	rec(0, maxPhotons)
	return outcomes
}
