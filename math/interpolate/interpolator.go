/*package interpolate provides one dimensional interpolators over tables
which refuse to extrapolate, along with the search cache they share.
*/
package interpolate

import (
	"errors"
)

var (
	// ErrDomain is returned when an interpolator is evaluated outside the
	// range of its table. Interpolators never extrapolate.
	ErrDomain = errors.New("interpolate: point outside of table domain")
	// ErrTableLength is returned for tables with fewer than two points or
	// with x and y columns of different lengths.
	ErrTableLength = errors.New("interpolate: invalid table length")
	// ErrNotIncreasing is returned for tables whose x values are not
	// strictly increasing.
	ErrNotIncreasing = errors.New("interpolate: table x values not strictly increasing")
)

// Interpolator is a one dimensional interpolator over a fixed table.
type Interpolator interface {
	// Eval returns the interpolated value at x, using acc to speed up the
	// interval search. acc may be nil.
	Eval(x float64, acc *Accel) (float64, error)
	// Domain returns the smallest and largest x values of the table.
	Domain() (lo, hi float64)
}

var (
	_ Interpolator = &Spline{}
	_ Interpolator = &Linear{}
)

// Accel caches the index of the last interval found by a lookup, so that
// monotonic sequences of lookups take O(1) time.
//
// An Accel is modified by every lookup and must not be shared between
// goroutines.
type Accel struct {
	cache        int
	hits, misses int
}

// NewAccel returns an Accel pointing at the first interval.
func NewAccel() *Accel { return &Accel{} }

// Reset returns acc to its initial state.
func (acc *Accel) Reset() { *acc = Accel{} }

// Stats returns the number of lookups which were and were not resolved by
// the cached interval.
func (acc *Accel) Stats() (hits, misses int) { return acc.hits, acc.misses }

// find returns the index of the interval of xs which contains x. x must lie
// inside [xs[0], xs[len(xs)-1]].
func (acc *Accel) find(xs []float64, x float64) int {
	i := acc.cache
	if i > len(xs)-2 {
		i = 0
	}

	if x < xs[i] {
		acc.misses++
		acc.cache = bsearch(xs, x, 0, i)
	} else if x >= xs[i+1] {
		acc.misses++
		acc.cache = bsearch(xs, x, i, len(xs)-1)
	} else {
		acc.hits++
		acc.cache = i
	}
	return acc.cache
}

// bsearch returns the index of the largest element of xs[lo:hi] which is
// not larger than x.
func bsearch(xs []float64, x float64, lo, hi int) int {
	for hi > lo+1 {
		mid := (lo + hi) / 2
		if xs[mid] > x {
			hi = mid
		} else {
			lo = mid
		}
	}
	return lo
}

// checkTable returns an error if the given table cannot be interpolated.
func checkTable(xs, ys []float64) error {
	if len(xs) != len(ys) || len(xs) < 2 {
		return ErrTableLength
	}
	for i := 0; i < len(xs)-1; i++ {
		if !(xs[i+1] > xs[i]) {
			return ErrNotIncreasing
		}
	}
	return nil
}
