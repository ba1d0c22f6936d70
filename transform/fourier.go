package transform

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/profile"
)

// fourierKernel evaluates f(r) r / k. The sin(kr) factor is supplied by the
// integrator.
type fourierKernel struct {
	f profile.Func
	k float64
}

func (fk fourierKernel) Eval(r float64) float64 {
	return fk.f.Eval(r) * r / fk.k
}

// sineTransform computes integral_0^inf f(r) (r / k) sin(k r) dr for every
// k. With no normalization factor this is F(k) / 4 pi for the forward
// transform and 2 pi^2 f(r) for the inverse transform.
func sineTransform(
	out, outErr, ks []float64, f profile.Func, limit int, epsabs float64,
) error {
	tol := Tolerance{Limit: limit}
	ws, err := Workspace(tol)
	if err != nil {
		return err
	}
	cycle, err := Workspace(tol)
	if err != nil {
		return err
	}

	for i, k := range ks {
		res, abserr, err := quad.QAWF(fourierKernel{f, k}, 0, k, epsabs, ws, cycle)
		if err != nil {
			return &IntegrationError{Index: i, X: k, Err: err}
		}
		out[i] = res
		if outErr != nil {
			outErr[i] = abserr
		}
	}
	return nil
}

func checkFourier(out, outErr, ks []float64, tol Tolerance) error {
	if err := checkOutput(out, outErr, ks); err != nil {
		return err
	}
	for i, k := range ks {
		if !(k > 0) {
			return fmt.Errorf(
				"%w: coordinate %d is %g, must be positive", ErrInvalidInput, i, k,
			)
		}
	}
	return checkQAWF(tol.EpsAbs)
}

// SphericalFourier computes the three dimensional Fourier transform of the
// spherically symmetric profile f,
//
//	F(k) = (4 pi / k) integral_0^inf r sin(k r) f(r) dr,
//
// at every wavenumber in ks and writes it to out. If outErr is non-nil the
// absolute error estimates are written to it. Only tol.EpsAbs is used, since
// the integral is summed over oscillation cycles.
//
// Processing stops at the first integral which fails; the contents of out
// are undefined in that case.
func SphericalFourier(out, outErr, ks []float64, f profile.Func, tol Tolerance) error {
	if f == nil {
		return fmt.Errorf("%w: nil profile", ErrInvalidInput)
	} else if err := checkFourier(out, outErr, ks, tol); err != nil {
		return err
	}

	norm := 4 * math.Pi
	if err := sineTransform(out, outErr, ks, f, tol.Limit, tol.EpsAbs/norm); err != nil {
		return err
	}
	scale(out, outErr, norm)
	return nil
}

// fourierTable interpolates a tabulated transform linearly. Below the table
// it is flat at the first value; above the table it is zero.
func fourierTable(tab *profile.Table) (*profile.Tabulated, error) {
	if tab == nil {
		return nil, fmt.Errorf("%w: nil table", ErrInvalidInput)
	}
	f, err := profile.NewLinear(tab)
	if err != nil {
		return nil, err
	}
	f.Below = profile.Constant(tab.V(0))
	return f, nil
}

// InverseSphericalFourier computes the inverse transform of the tabulated
// F(k),
//
//	f(r) = 1 / (2 pi^2 r) integral_0^inf k sin(k r) F(k) dk,
//
// at every radius in rs. F is interpolated linearly, taken to be F(kmin)
// below the table and zero above it.
func InverseSphericalFourier(
	out, outErr, rs []float64, tab *profile.Table, tol Tolerance,
) error {
	if err := checkFourier(out, outErr, rs, tol); err != nil {
		return err
	}
	f, err := fourierTable(tab)
	if err != nil {
		return err
	}

	norm := 2 * math.Pi * math.Pi
	if err := sineTransform(out, outErr, rs, f, tol.Limit, tol.EpsAbs*norm); err != nil {
		return err
	}
	scale(out, outErr, 1/norm)
	return nil
}

// ForwardSphericalFourier is SphericalFourier applied to a tabulated f(r).
// f is interpolated linearly, taken to be f(rmin) below the table and zero
// above it.
func ForwardSphericalFourier(
	out, outErr, ks []float64, tab *profile.Table, tol Tolerance,
) error {
	f, err := fourierTable(tab)
	if err != nil {
		return err
	}
	return SphericalFourier(out, outErr, ks, f, tol)
}
