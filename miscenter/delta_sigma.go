package miscenter

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/math/interpolate"
	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/profile"
	"github.com/phil-mansfield/radprof/transform"
)

// enclosedIntegrand is R^2 Sigma(R) as a function of ln(R).
type enclosedIntegrand struct {
	sp  *interpolate.Spline
	acc *interpolate.Accel
}

func (ei enclosedIntegrand) Eval(lnR float64) float64 {
	lo, hi := ei.sp.Domain()
	r := math.Max(lo, math.Min(hi, math.Exp(lnR)))
	s, err := ei.sp.Eval(r, ei.acc)
	if err != nil {
		return math.NaN()
	}
	return r * r * s
}

// innerPowerLaw is the power law through the two innermost points of a
// table.
func innerPowerLaw(tab *profile.Table) (profile.PowerLaw, error) {
	pl, err := profile.NewPowerLaw(tab.R(0), tab.V(0), tab.R(1), tab.V(1))
	if err != nil {
		return pl, err
	} else if pl.Slope <= -2 {
		return pl, fmt.Errorf(
			"%w: inner slope %g makes the enclosed mass diverge",
			transform.ErrInvalidInput, pl.Slope,
		)
	}
	return pl, nil
}

// DeltaSigma computes the differential surface density,
//
//	DeltaSigma(R) = Sigma(<R) - Sigma(R),
//
// of a tabulated surface density profile at the radii rs, which must lie
// inside the table. The table is interpolated with a cubic spline and the
// mass inside its innermost radius is taken from the power law through its
// two innermost points. A zero tol is replaced by DefaultTolerance.
func DeltaSigma(out, outErr, rs []float64, tab *profile.Table, tol transform.Tolerance) error {
	if tol == (transform.Tolerance{}) {
		tol = DefaultTolerance
	}
	if err := checkParams(out, outErr, rs, tol); err != nil {
		return err
	} else if tab == nil {
		return fmt.Errorf("%w: nil table", transform.ErrInvalidInput)
	}
	for i, r := range rs {
		if r < tab.Min() || r > tab.Max() {
			return fmt.Errorf(
				"%w: radius %d (%g) outside of table [%g, %g]",
				transform.ErrInvalidInput, i, r, tab.Min(), tab.Max(),
			)
		}
	}

	pl, err := innerPowerLaw(tab)
	if err != nil {
		return err
	}
	rmin := tab.Min()
	low := pl.A * math.Pow(rmin, pl.Slope+2) / (pl.Slope + 2)

	sp, err := interpolate.NewSpline(tab.Radii(), tab.Values())
	if err != nil {
		return fmt.Errorf("%w: %s", transform.ErrInvalidInput, err.Error())
	}
	f := enclosedIntegrand{sp, interpolate.NewAccel()}
	ws, err := transform.Workspace(tol)
	if err != nil {
		return err
	}

	lnRMin := math.Log(rmin)
	for i, r := range rs {
		res, abserr, err := quad.QAG(f, lnRMin, math.Log(r), tol.EpsAbs, tol.EpsRel, quad.GK21, ws)
		if err != nil {
			return &transform.IntegrationError{Index: i, X: r, Err: err}
		}

		s, err := sp.Eval(r, f.acc)
		if err != nil {
			return &transform.IntegrationError{Index: i, X: r, Err: err}
		}
		out[i] = (low+res)*2/(r*r) - s
		if outErr != nil {
			outErr[i] = abserr * 2 / (r * r)
		}
	}
	return nil
}
