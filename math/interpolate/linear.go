package interpolate

import (
	"gonum.org/v1/gonum/interp"
)

// Linear is a piecewise linear interpolator.
type Linear struct {
	pl     interp.PiecewiseLinear
	lo, hi float64
}

// NewLinear creates a linear interpolator from a table with strictly
// increasing x values. The table is copied.
func NewLinear(xs, ys []float64) (*Linear, error) {
	if err := checkTable(xs, ys); err != nil {
		return nil, err
	}
	lin := &Linear{lo: xs[0], hi: xs[len(xs)-1]}
	if err := lin.pl.Fit(xs, ys); err != nil {
		return nil, err
	}
	return lin, nil
}

// Domain returns the range of x values covered by the table.
func (lin *Linear) Domain() (lo, hi float64) { return lin.lo, lin.hi }

// Eval returns the interpolated value at x, or ErrDomain if x is outside
// the table. The interval search is done by gonum, so acc is unused.
func (lin *Linear) Eval(x float64, acc *Accel) (float64, error) {
	if !(x >= lin.lo && x <= lin.hi) {
		return 0, ErrDomain
	}
	return lin.pl.Predict(x), nil
}
