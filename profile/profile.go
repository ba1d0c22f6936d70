/*package profile contains the radial profiles which the transforms in this
module operate on: bound single-argument functions, tabulated profiles with
an explicit policy for radii outside of the table, and closed-form NFW
profiles.
*/
package profile

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/math/interpolate"
)

// ErrInvalidInput is returned for tables and parameters which cannot
// describe a profile.
var ErrInvalidInput = errors.New("invalid input")

// Func is a radial profile, f(r). Any Func can be integrated directly by
// the routines in math/quad.
type Func interface {
	Eval(r float64) float64
}

// Function allows an ordinary function to be used as a Func.
type Function func(r float64) float64

func (f Function) Eval(r float64) float64 { return f(r) }

// Constant is a profile with the same value at every radius.
type Constant float64

func (c Constant) Eval(r float64) float64 { return float64(c) }

// Zero is the profile which vanishes everywhere.
var Zero = Constant(0)

// Table is an immutable table of radii and profile values.
type Table struct {
	rs, vs []float64
}

// NewTable copies rs and vs into a new Table. rs must be strictly
// increasing and contain at least two elements.
func NewTable(rs, vs []float64) (*Table, error) {
	if len(rs) != len(vs) {
		return nil, fmt.Errorf(
			"%w: table has %d radii but %d values", ErrInvalidInput, len(rs), len(vs),
		)
	} else if len(rs) < 2 {
		return nil, fmt.Errorf(
			"%w: table has %d elements, need at least 2", ErrInvalidInput, len(rs),
		)
	}
	for i := 1; i < len(rs); i++ {
		if !(rs[i] > rs[i-1]) {
			return nil, fmt.Errorf(
				"%w: table radii not strictly increasing at index %d",
				ErrInvalidInput, i,
			)
		}
	}

	t := &Table{make([]float64, len(rs)), make([]float64, len(vs))}
	copy(t.rs, rs)
	copy(t.vs, vs)
	return t, nil
}

// Len returns the number of elements in the table.
func (t *Table) Len() int { return len(t.rs) }

// R returns the i-th radius.
func (t *Table) R(i int) float64 { return t.rs[i] }

// V returns the i-th value.
func (t *Table) V(i int) float64 { return t.vs[i] }

// Min returns the smallest radius in the table.
func (t *Table) Min() float64 { return t.rs[0] }

// Max returns the largest radius in the table.
func (t *Table) Max() float64 { return t.rs[len(t.rs)-1] }

// Radii returns a copy of the table's radii.
func (t *Table) Radii() []float64 { return append([]float64(nil), t.rs...) }

// Values returns a copy of the table's values.
func (t *Table) Values() []float64 { return append([]float64(nil), t.vs...) }

// Tabulated interpolates a Table. Radii below the table are evaluated with
// Below and radii above it with Above. A nil boundary Func is zero. A
// Tabulated never extrapolates its interpolant.
//
// A Tabulated owns a search cache which is updated on every evaluation, so
// it must not be shared between goroutines.
type Tabulated struct {
	Below, Above Func

	interp interpolate.Interpolator
	acc    *interpolate.Accel
	lo, hi float64
	logR   bool
}

// NewSpline returns a cubic spline through the table. If logR is true the
// spline is built over ln(r) instead of r, which requires positive radii.
func NewSpline(t *Table, logR bool) (*Tabulated, error) {
	xs := t.rs
	if logR {
		if t.rs[0] <= 0 {
			return nil, fmt.Errorf(
				"%w: logarithmic table has non-positive radius %g",
				ErrInvalidInput, t.rs[0],
			)
		}
		xs = make([]float64, len(t.rs))
		for i := range xs {
			xs[i] = math.Log(t.rs[i])
		}
	}

	sp, err := interpolate.NewSpline(xs, t.vs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	return &Tabulated{
		interp: sp, acc: interpolate.NewAccel(),
		lo: t.Min(), hi: t.Max(), logR: logR,
	}, nil
}

// NewLinear returns a piecewise linear interpolation of the table.
func NewLinear(t *Table) (*Tabulated, error) {
	lin, err := interpolate.NewLinear(t.rs, t.vs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	return &Tabulated{
		interp: lin, acc: interpolate.NewAccel(), lo: t.Min(), hi: t.Max(),
	}, nil
}

// Domain returns the range of radii covered by the interpolant.
func (tab *Tabulated) Domain() (lo, hi float64) { return tab.lo, tab.hi }

// Eval evaluates the profile at r.
func (tab *Tabulated) Eval(r float64) float64 {
	switch {
	case r < tab.lo:
		if tab.Below == nil {
			return 0
		}
		return tab.Below.Eval(r)
	case r > tab.hi:
		if tab.Above == nil {
			return 0
		}
		return tab.Above.Eval(r)
	}

	x := r
	if tab.logR {
		x = math.Log(r)
	}
	v, err := tab.interp.Eval(x, tab.acc)
	if err != nil {
		// NaN radii.
		return math.NaN()
	}
	return v
}

// PowerLaw is the profile A r^Slope.
type PowerLaw struct {
	A, Slope float64
}

// NewPowerLaw returns the power law through (r0, v0) and (r1, v1). All four
// values must be positive and the radii distinct.
func NewPowerLaw(r0, v0, r1, v1 float64) (PowerLaw, error) {
	if !(r0 > 0 && v0 > 0 && r1 > 0 && v1 > 0) || r0 == r1 {
		return PowerLaw{}, fmt.Errorf(
			"%w: no power law passes through (%g, %g) and (%g, %g)",
			ErrInvalidInput, r0, v0, r1, v1,
		)
	}
	slope := math.Log(v0/v1) / math.Log(r0/r1)
	return PowerLaw{v0 * math.Pow(r0, -slope), slope}, nil
}

func (pl PowerLaw) Eval(r float64) float64 {
	return pl.A * math.Pow(r, pl.Slope)
}
