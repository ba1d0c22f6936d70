package transform

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/math/interpolate"
	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/profile"
)

// losKernel evaluates f at a distance l along the line of sight which
// passes a projected distance r from the center.
type losKernel struct {
	f profile.Func
	r float64
}

func (lk losKernel) Eval(l float64) float64 {
	return lk.f.Eval(math.Sqrt(lk.r*lk.r + l*l))
}

// Abel computes the line-of-sight projection of the spherically symmetric
// profile f,
//
//	Sigma(r) = integral_-inf^inf f(sqrt(r^2 + l^2)) dl,
//
// at every projected radius in rs. If outErr is non-nil the absolute error
// estimates are written to it. Processing stops at the first integral which
// fails.
func Abel(out, outErr, rs []float64, f profile.Func, tol Tolerance) error {
	if f == nil {
		return fmt.Errorf("%w: nil profile", ErrInvalidInput)
	} else if err := checkOutput(out, outErr, rs); err != nil {
		return err
	} else if err := CheckQAG(tol); err != nil {
		return err
	}

	ws, err := Workspace(tol)
	if err != nil {
		return err
	}

	for i, r := range rs {
		res, abserr, err := quad.QAGI(losKernel{f, r}, tol.EpsAbs, tol.EpsRel, ws)
		if err != nil {
			return &IntegrationError{Index: i, X: r, Err: err}
		}
		out[i] = res
		if outErr != nil {
			outErr[i] = abserr
		}
	}
	return nil
}

// AbelTable computes the projection of a tabulated profile. The table is
// interpolated with a cubic spline. Below the table the profile is given by
// below, or is f(rmin) if below is nil. Above the table it is zero.
func AbelTable(
	out, outErr, rs []float64, tab *profile.Table, below profile.Func, tol Tolerance,
) error {
	if tab == nil {
		return fmt.Errorf("%w: nil table", ErrInvalidInput)
	}
	f, err := profile.NewSpline(tab, false)
	if err != nil {
		return err
	}
	if below == nil {
		below = profile.Constant(tab.V(0))
	}
	f.Below = below
	return Abel(out, outErr, rs, f, tol)
}

// IntegrateTable returns the exact integral from a to b of the cubic spline
// through tab. Both limits must be inside the table.
func IntegrateTable(tab *profile.Table, a, b float64) (float64, error) {
	if tab == nil {
		return 0, fmt.Errorf("%w: nil table", ErrInvalidInput)
	}
	sp, err := interpolate.NewSpline(tab.Radii(), tab.Values())
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	res, err := sp.Integrate(a, b, nil)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: limits [%g, %g] outside of table [%g, %g]",
			ErrInvalidInput, a, b, tab.Min(), tab.Max(),
		)
	}
	return res, nil
}
