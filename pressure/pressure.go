/*package pressure implements the generalized NFW electron pressure profile
of Battaglia, Bond, Pfrommer and Sievers (2012) and its projections.
*/
package pressure

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/cosmo"
	"github.com/phil-mansfield/radprof/profile"
	"github.com/phil-mansfield/radprof/transform"
)

// DefaultTolerance is a tolerance suited to Projected and ComptonY.
var DefaultTolerance = transform.Tolerance{Limit: 1000, EpsAbs: 0, EpsRel: 1e-4}

// BBPS is a pressure profile of a halo with mass M (Msun) at redshift Z,
//
//	P(r) = P_delta P0 (x/xc)^gamma (1 + (x/xc)^alpha)^-beta, x = r / R_delta.
//
// Radii are in Mpc and pressures in Msun / Mpc / s^2.
type BBPS struct {
	M, Z  float64
	Cosmo cosmo.Params

	P0, XC, Beta, Alpha, Gamma float64
	// Delta is the overdensity of the halo definition relative to the
	// critical density.
	Delta float64
}

// Fit returns the best fit BBPS profile for a halo of mass m200c at
// redshift z, from the AGN feedback simulations of Battaglia et al. (2012).
func Fit(m200c, z float64, c cosmo.Params) BBPS {
	m := m200c / 1e14
	return BBPS{
		M: m200c, Z: z, Cosmo: c,
		P0:    18.1 * math.Pow(m, 0.154) * math.Pow(1+z, -0.758),
		XC:    0.497 * math.Pow(m, -0.00865) * math.Pow(1+z, 0.731),
		Beta:  4.35 * math.Pow(m, 0.0393) * math.Pow(1+z, 0.415),
		Alpha: 1,
		Gamma: -0.3,
		Delta: 200,
	}
}

// RDelta returns the radius of the halo.
func (p BBPS) RDelta() float64 {
	return cosmo.RDelta(p.M, p.Delta, p.Cosmo.OmegaM, p.Cosmo.H, p.Z)
}

// PDelta returns the self-similar pressure scale of the halo,
// G M delta rho_c(z) (OmegaB / OmegaM) / (2 R_delta).
func (p BBPS) PDelta() float64 {
	rhoc := cosmo.RhoCritical(p.Cosmo.OmegaM, p.Cosmo.H, p.Z)
	return cosmo.G * p.M * p.Delta * rhoc *
		(p.Cosmo.OmegaB / p.Cosmo.OmegaM) / (2 * p.RDelta())
}

func (p BBPS) Eval(r float64) float64 {
	return p.eval(r, p.RDelta(), p.PDelta())
}

func (p BBPS) eval(r, rDelta, pDelta float64) float64 {
	x := r / rDelta / p.XC
	return pDelta * p.P0 * math.Pow(x, p.Gamma) *
		math.Pow(1+math.Pow(x, p.Alpha), -p.Beta)
}

// At writes the pressure at every radius in rs to out.
func (p BBPS) At(out, rs []float64) {
	rDelta, pDelta := p.RDelta(), p.PDelta()
	for i, r := range rs {
		out[i] = p.eval(r, rDelta, pDelta)
	}
}

// Check returns an error if the profile's parameters are unphysical.
func (p BBPS) Check() error {
	switch {
	case !(p.M > 0):
		return fmt.Errorf("%w: halo mass %g is not positive", profile.ErrInvalidInput, p.M)
	case !(p.Z > -1):
		return fmt.Errorf("%w: redshift %g is not above -1", profile.ErrInvalidInput, p.Z)
	case !(p.Cosmo.OmegaM > 0) || !(p.Cosmo.H > 0):
		return fmt.Errorf("%w: invalid cosmology %+v", profile.ErrInvalidInput, p.Cosmo)
	case !(p.Delta > 0) || !(p.XC > 0):
		return fmt.Errorf(
			"%w: delta = %g and xc = %g must be positive",
			profile.ErrInvalidInput, p.Delta, p.XC,
		)
	}
	return nil
}

// Projected computes the line-of-sight projection of the pressure profile at
// the projected radii rs, including the 1 / (1 + z) factor which converts
// it into an observed quantity.
func Projected(out, outErr, rs []float64, p BBPS, tol transform.Tolerance) error {
	if err := p.Check(); err != nil {
		return err
	}
	if err := transform.Abel(out, outErr, rs, p, tol); err != nil {
		return err
	}

	for i := range out {
		out[i] /= 1 + p.Z
		if outErr != nil {
			outErr[i] /= 1 + p.Z
		}
	}
	return nil
}

// FourierTolerance returns a tolerance for Fourier whose absolute error is
// a fixed fraction of the pressure scale, P_delta.
func (p BBPS) FourierTolerance() transform.Tolerance {
	return transform.Tolerance{Limit: 1000, EpsAbs: 1e-5 * p.PDelta()}
}

// Fourier computes the three dimensional Fourier transform of the pressure
// profile at the wavenumbers ks.
func Fourier(out, outErr, ks []float64, p BBPS, tol transform.Tolerance) error {
	if err := p.Check(); err != nil {
		return err
	}
	return transform.SphericalFourier(out, outErr, ks, p, tol)
}

// ComptonY computes the thermal Sunyaev-Zel'dovich Compton y parameter at
// the projected radii rs.
func ComptonY(out, outErr, rs []float64, p BBPS, tol transform.Tolerance) error {
	if err := Projected(out, outErr, rs, p, tol); err != nil {
		return err
	}
	for i := range out {
		out[i] *= cosmo.PressureToY
		if outErr != nil {
			outErr[i] *= cosmo.PressureToY
		}
	}
	return nil
}

// ApertureY integrates a tabulated Compton y profile over a disk of radius
// rAp, 2 pi integral_0^rAp R y(R) dR. The profile is taken to be flat
// inside the innermost radius of the table.
func ApertureY(rs, ys []float64, rAp float64) (float64, error) {
	if len(rs) != len(ys) {
		return 0, fmt.Errorf(
			"%w: %d radii but %d y values", profile.ErrInvalidInput, len(rs), len(ys),
		)
	}
	rys := make([]float64, len(rs))
	for i := range rs {
		rys[i] = rs[i] * ys[i]
	}
	tab, err := profile.NewTable(rs, rys)
	if err != nil {
		return 0, err
	}

	inner := math.Pi * tab.R(0) * tab.R(0) * ys[0]
	outer, err := transform.IntegrateTable(tab, tab.Min(), rAp)
	if err != nil {
		return 0, err
	}
	return inner + 2*math.Pi*outer, nil
}
