package interpolate

import (
	"errors"
)

// ErrSingularSystem is returned by TriDiagAt when the system has no unique
// solution.
var ErrSingularSystem = errors.New("interpolate: singular tridiagonal system")

type splineCoeff struct {
	a, b, c, d float64
}

// Spline represents a 1D natural cubic spline which can be used to
// interpolate between points. The second derivative vanishes at both ends of
// the table.
type Spline struct {
	xs, ys, y2s []float64
	coeffs      []splineCoeff

	// Usually the input data is uniform. This is our estimate of the point
	// spacing.
	dx float64
}

// NewSpline creates a spline based off a table of x and y values. The x
// values must be strictly increasing. The table is copied, so xs and ys may
// be modified afterwards.
func NewSpline(xs, ys []float64) (*Spline, error) {
	if err := checkTable(xs, ys); err != nil {
		return nil, err
	}

	n := len(xs)
	sp := &Spline{
		xs:     make([]float64, n),
		ys:     make([]float64, n),
		y2s:    make([]float64, n),
		coeffs: make([]splineCoeff, n-1),
		dx:     (xs[n-1] - xs[0]) / float64(n-1),
	}
	copy(sp.xs, xs)
	copy(sp.ys, ys)

	if err := sp.calcY2s(); err != nil {
		return nil, err
	}
	sp.calcCoeffs()
	return sp, nil
}

// Domain returns the range of x values covered by the spline.
func (sp *Spline) Domain() (lo, hi float64) {
	return sp.xs[0], sp.xs[len(sp.xs)-1]
}

// Eval computes the value of the spline at the given point. ErrDomain is
// returned if x is outside the table.
func (sp *Spline) Eval(x float64, acc *Accel) (float64, error) {
	return sp.Diff(x, 0, acc)
}

// Diff computes the derivative of spline at the given point to the
// specified order.
func (sp *Spline) Diff(x float64, order int, acc *Accel) (float64, error) {
	i, err := sp.index(x, acc)
	if err != nil {
		return 0, err
	}

	dx := x - sp.xs[i]
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	switch order {
	case 0:
		return ((a*dx+b)*dx+c)*dx + d, nil
	case 1:
		return (3*a*dx+2*b)*dx + c, nil
	case 2:
		return 6*a*dx + 2*b, nil
	case 3:
		return 6 * a, nil
	default:
		return 0, nil
	}
}

// Integrate returns the integral of the spline from lo to hi. Both limits
// must be inside the table. If lo > hi the result is negative.
func (sp *Spline) Integrate(lo, hi float64, acc *Accel) (float64, error) {
	if lo > hi {
		res, err := sp.Integrate(hi, lo, acc)
		return -res, err
	}

	ilo, err := sp.index(lo, acc)
	if err != nil {
		return 0, err
	}
	ihi, err := sp.index(hi, acc)
	if err != nil {
		return 0, err
	}

	sum := 0.0
	for i := ilo; i <= ihi; i++ {
		x0, x1 := sp.xs[i], sp.xs[i+1]
		if i == ilo {
			x0 = lo
		}
		if i == ihi {
			x1 = hi
		}
		sum += sp.antiDiff(i, x1-sp.xs[i]) - sp.antiDiff(i, x0-sp.xs[i])
	}
	return sum, nil
}

// antiDiff evaluates the antiderivative of the i-th segment at an offset dx
// from its left edge.
func (sp *Spline) antiDiff(i int, dx float64) float64 {
	a, b, c, d := sp.coeffs[i].a, sp.coeffs[i].b, sp.coeffs[i].c, sp.coeffs[i].d
	return (((a/4*dx+b/3)*dx+c/2)*dx + d) * dx
}

// index returns the index of the table interval containing x.
func (sp *Spline) index(x float64, acc *Accel) (int, error) {
	n := len(sp.xs)
	if !(x >= sp.xs[0] && x <= sp.xs[n-1]) {
		return 0, ErrDomain
	}
	if acc != nil {
		return acc.find(sp.xs, x), nil
	}

	// Guess under the assumption of uniform spacing.
	guess := int((x - sp.xs[0]) / sp.dx)
	if guess >= 0 && guess < n-1 && sp.xs[guess] <= x && x <= sp.xs[guess+1] {
		return guess, nil
	}
	return bsearch(sp.xs, x, 0, n-1), nil
}

// calcY2s computes the second derivative at every point in the table.
func (sp *Spline) calcY2s() error {
	n := len(sp.xs)
	// Boundaries are zero for a natural spline.
	sp.y2s[0], sp.y2s[n-1] = 0, 0
	if n == 2 {
		return nil
	}

	as, bs := make([]float64, n-2), make([]float64, n-2)
	cs, rs := make([]float64, n-2), make([]float64, n-2)

	xs, ys := sp.xs, sp.ys
	for i := range rs {
		// j indexes into xs and ys.
		j := i + 1

		as[i] = (xs[j] - xs[j-1]) / 6
		bs[i] = (xs[j+1] - xs[j-1]) / 3
		cs[i] = (xs[j+1] - xs[j]) / 6
		rs[i] = ((ys[j+1] - ys[j]) / (xs[j+1] - xs[j])) -
			((ys[j] - ys[j-1]) / (xs[j] - xs[j-1]))
	}

	return TriDiagAt(as, bs, cs, rs, sp.y2s[1:n-1])
}

func (sp *Spline) calcCoeffs() {
	coeffs, xs, ys, y2s := sp.coeffs, sp.xs, sp.ys, sp.y2s
	for i := range coeffs {
		h := xs[i+1] - xs[i]
		coeffs[i].a = (y2s[i+1] - y2s[i]) / (6 * h)
		coeffs[i].b = y2s[i] / 2
		coeffs[i].c = (ys[i+1]-ys[i])/h - h*(2*y2s[i]+y2s[i+1])/6
		coeffs[i].d = ys[i]
	}
}

// TriDiagAt solves the system of equations
//
// | b0 c0 ..    |   | u0 |   | r0 |
// | a1 b1 c1 .. |   | u1 |   | r1 |
// | ..          | * | .. | = | .. |
// | ..    an bn |   | un |   | rn |
//
// for u0 .. un and writes the solution to out.
func TriDiagAt(as, bs, cs, rs, out []float64) error {
	if len(as) != len(bs) || len(as) != len(cs) ||
		len(as) != len(out) || len(as) != len(rs) {
		return ErrTableLength
	} else if len(as) == 0 {
		return nil
	}

	tmp := make([]float64, len(as))

	beta := bs[0]
	if beta == 0 {
		return ErrSingularSystem
	}
	out[0] = rs[0] / beta

	for i := 1; i < len(out); i++ {
		tmp[i] = cs[i-1] / beta
		beta = bs[i] - as[i]*tmp[i]
		if beta == 0 {
			return ErrSingularSystem
		}
		out[i] = (rs[i] - as[i]*out[i-1]) / beta
	}

	for i := len(out) - 2; i >= 0; i-- {
		out[i] -= tmp[i+1] * out[i+1]
	}
	return nil
}
