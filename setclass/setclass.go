// Package setclass classifies pitch-class sets: normal form, prime form
// (Rahn packing) and Forte catalog lookup.
package setclass

import (
	"fmt"
	"strings"
)

// PCSet is a pitch-class set as a 12-bit mask, bit 0 = C.
type PCSet uint16

const (
	// Aggregate is the full chromatic, all 12 pitch classes.
	Aggregate PCSet = 0x0FFF
)

func New(classes ...uint8) PCSet {
	var s PCSet
	for _, pc := range classes {
		s |= 1 << (pc % 12)
	}
	return s
}

// FromMidipitches folds midipitches down to their pitch classes.
func FromMidipitches(pitches []uint8) PCSet {
	var s PCSet
	for _, p := range pitches {
		s |= 1 << (p % 12)
	}
	return s
}

func (s PCSet) Contains(pc uint8) bool {
	return s&(1<<(pc%12)) != 0
}

func (s PCSet) Cardinality() int {
	count := 0
	for pc := 0; pc < 12; pc++ {
		if s&(1<<pc) != 0 {
			count++
		}
	}
	return count
}

// Classes returns the pitch classes in ascending order.
func (s PCSet) Classes() []uint8 {
	res := make([]uint8, 0, s.Cardinality())
	for pc := uint8(0); pc < 12; pc++ {
		if s.Contains(pc) {
			res = append(res, pc)
		}
	}
	return res
}

func (s PCSet) Transpose(n int) PCSet {
	n = ((n % 12) + 12) % 12
	rotated := (uint16(s) << n) | (uint16(s) >> (12 - n))
	return PCSet(rotated & 0x0FFF)
}

// Invert mirrors the set around pitch class 0.
func (s PCSet) Invert() PCSet {
	var res PCSet
	for pc := 0; pc < 12; pc++ {
		if s&(1<<pc) != 0 {
			res |= 1 << ((12 - pc) % 12)
		}
	}
	return res
}

// NormalForm returns the most compact rotation of the set, Rahn's
// packing: smallest outer interval, ties broken by packing from the
// right, then by lowest starting pitch class.
func (s PCSet) NormalForm() []uint8 {
	classes := s.Classes()
	n := len(classes)
	if n < 2 {
		return classes
	}

	best := 0
	for rot := 1; rot < n; rot++ {
		if rotationLess(classes, rot, best) {
			best = rot
		}
	}

	res := make([]uint8, n)
	for i := 0; i < n; i++ {
		res[i] = classes[(best+i)%n]
	}
	return res
}

// rotationLess reports whether rotation a of the ordered classes is
// packed tighter than rotation b.
func rotationLess(classes []uint8, a, b int) bool {
	n := len(classes)
	span := func(rot, i int) int {
		from := int(classes[rot])
		to := int(classes[(rot+i)%n])
		return ((to - from) % 12 + 12) % 12
	}
	for i := n - 1; i >= 1; i-- {
		sa, sb := span(a, i), span(b, i)
		if sa != sb {
			return sa < sb
		}
	}
	return classes[a] < classes[b]
}

// PrimeForm returns the canonical zero-based representative of the set
// class, using Rahn's algorithm: the better packed of the normal form
// and the inversion's normal form, both transposed to start on 0.
func (s PCSet) PrimeForm() []uint8 {
	if s == 0 {
		return []uint8{}
	}
	upright := zeroBased(s.NormalForm())
	inverted := zeroBased(s.Invert().NormalForm())
	for i := range upright {
		if upright[i] != inverted[i] {
			if upright[i] < inverted[i] {
				return upright
			}
			return inverted
		}
	}
	return upright
}

// Prime returns the prime form as a PCSet, the catalog key.
func (s PCSet) Prime() PCSet {
	return New(s.PrimeForm()...)
}

func zeroBased(form []uint8) []uint8 {
	res := make([]uint8, len(form))
	for i, pc := range form {
		res[i] = uint8((int(pc) - int(form[0]) + 12) % 12)
	}
	return res
}

// IntervalVector counts the interval classes (1..6) between all pairs.
func (s PCSet) IntervalVector() [6]int {
	var icv [6]int
	classes := s.Classes()
	for i := 0; i < len(classes); i++ {
		for j := i + 1; j < len(classes); j++ {
			ic := int(classes[j] - classes[i])
			if ic > 6 {
				ic = 12 - ic
			}
			icv[ic-1]++
		}
	}
	return icv
}

// Forte returns the Forte name of the set's class, e.g. "3-11".
func (s PCSet) Forte() string {
	return Lookup(s).Name
}

func (s PCSet) String() string {
	classes := s.Classes()
	parts := make([]string, len(classes))
	for i, pc := range classes {
		parts[i] = fmt.Sprintf("%d", pc)
	}
	return "{" + strings.Join(parts, ",") + "}"
}
