// Package data generates synthetic regression datasets for training.
//
// Samples are drawn from a target function over an evenly stepped x range,
// perturbed with Gaussian noise, split into train and test sets, rescaled into
// a target range and optionally shuffled.
package data

import "slices"

// Entry is one sample: input vector X and target vector Y.
type Entry struct {
	X []float64
	Y []float64
}

// Clone returns a deep copy of e.
func (e Entry) Clone() Entry {
	return Entry{X: slices.Clone(e.X), Y: slices.Clone(e.Y)}
}

// Set is an insertion-ordered sequence of entries.
type Set []Entry

// Len returns the number of entries.
func (s Set) Len() int {
	return len(s)
}

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for i, e := range s {
		out[i] = e.Clone()
	}
	return out
}

// Batches partitions s into contiguous batches of size; the last batch may
// be shorter. The batches alias s.
func (s Set) Batches(size int) []Set {
	if size < 1 {
		size = 1
	}
	batches := make([]Set, 0, (len(s)+size-1)/size)
	for lo := 0; lo < len(s); lo += size {
		batches = append(batches, s[lo:min(lo+size, len(s))])
	}
	return batches
}

// Inputs returns the first component of every X, the common single-input case.
func (s Set) Inputs() []float64 {
	out := make([]float64, len(s))
	for i, e := range s {
		out[i] = e.X[0]
	}
	return out
}

// Targets returns the first component of every Y.
func (s Set) Targets() []float64 {
	out := make([]float64, len(s))
	for i, e := range s {
		out[i] = e.Y[0]
	}
	return out
}
