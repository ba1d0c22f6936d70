/*package power implements lookups into tabulated linear matter power spectra
and the peak height and halo bias statistics derived from them.
*/
package power

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/cosmo"
	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/profile"
	"github.com/phil-mansfield/radprof/transform"
)

// DeltaC is the linear collapse threshold used for peak heights.
const DeltaC = 1.686

// DefaultTolerance is the tolerance of the variance integral.
var DefaultTolerance = transform.Tolerance{Limit: 8000, EpsAbs: 0, EpsRel: 1e-4}

// Spectrum is a tabulated power spectrum, P(k). Inside the table it is
// interpolated with a cubic spline. Outside of it, P(k) follows the power
// law through the two table points closest to k.
//
// Wavenumbers are in h/Mpc and powers in (Mpc/h)^3. A Spectrum caches its
// last lookup and must not be shared between goroutines.
type Spectrum struct {
	tab *profile.Table
	p   *profile.Tabulated
	Tol transform.Tolerance
}

// NewSpectrum creates a Spectrum from a table of wavenumbers and powers. All
// values must be positive and ks must be strictly increasing.
func NewSpectrum(ks, ps []float64) (*Spectrum, error) {
	tab, err := profile.NewTable(ks, ps)
	if err != nil {
		return nil, err
	}
	n := tab.Len()
	below, err := profile.NewPowerLaw(tab.R(0), tab.V(0), tab.R(1), tab.V(1))
	if err != nil {
		return nil, err
	}
	above, err := profile.NewPowerLaw(tab.R(n-2), tab.V(n-2), tab.R(n-1), tab.V(n-1))
	if err != nil {
		return nil, err
	}

	p, err := profile.NewSpline(tab, false)
	if err != nil {
		return nil, err
	}
	p.Below, p.Above = below, above
	return &Spectrum{tab: tab, p: p, Tol: DefaultTolerance}, nil
}

// At returns P(k).
func (s *Spectrum) At(k float64) float64 { return s.p.Eval(k) }

// Eval returns P(k), so that a Spectrum can be transformed like any other
// profile.
func (s *Spectrum) Eval(k float64) float64 { return s.p.Eval(k) }

// Domain returns the range of tabulated wavenumbers.
func (s *Spectrum) Domain() (kmin, kmax float64) { return s.tab.Min(), s.tab.Max() }

// TopHat is the Fourier transform of a spherical top-hat window with unit
// volume integral, evaluated at x = k R.
func TopHat(x float64) float64 {
	if math.Abs(x) < 1e-3 {
		x2 := x * x
		return 1 - x2/10 + x2*x2/280
	}
	return 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
}

// varianceIntegrand is k^3 P(k) W(kR)^2 as a function of ln(k).
type varianceIntegrand struct {
	s *Spectrum
	r float64
}

func (vi varianceIntegrand) Eval(lnK float64) float64 {
	k := math.Exp(lnK)
	w := TopHat(k * vi.r)
	return k * k * k * vi.s.At(k) * w * w
}

// Sigma2AtR returns the variance of the linear density field smoothed with
// a top-hat of radius r (Mpc/h),
//
//	sigma^2(R) = 1/(2 pi^2) integral k^3 P(k) W(kR)^2 d ln k,
//
// integrated over the tabulated range of wavenumbers.
func (s *Spectrum) Sigma2AtR(r float64) (float64, error) {
	if !(r > 0) {
		return 0, fmt.Errorf("%w: radius %g is not positive", transform.ErrInvalidInput, r)
	}
	if err := transform.CheckQAG(s.Tol); err != nil {
		return 0, err
	}
	ws, err := transform.Workspace(s.Tol)
	if err != nil {
		return 0, err
	}

	kmin, kmax := s.Domain()
	res, _, err := quad.QAG(
		varianceIntegrand{s, r}, math.Log(kmin), math.Log(kmax),
		s.Tol.EpsAbs, s.Tol.EpsRel, quad.GK21, ws,
	)
	if err != nil {
		return 0, &transform.IntegrationError{Index: 0, X: r, Err: err}
	}
	return res / (2 * math.Pi * math.Pi), nil
}

// LagrangianRadius is the comoving radius which encloses a mass m (Msun/h)
// at the mean matter density.
func LagrangianRadius(m, omegaM float64) float64 {
	return cosmo.RDeltaMean(m, 1, omegaM)
}

// Sigma2AtM returns sigma^2 at the Lagrangian radius of mass m.
func (s *Spectrum) Sigma2AtM(m, omegaM float64) (float64, error) {
	return s.Sigma2AtR(LagrangianRadius(m, omegaM))
}

// NuAtR returns the peak height, DeltaC / sigma(R).
func (s *Spectrum) NuAtR(r float64) (float64, error) {
	s2, err := s.Sigma2AtR(r)
	if err != nil {
		return 0, err
	}
	return DeltaC / math.Sqrt(s2), nil
}

// NuAtM returns the peak height of a halo of mass m.
func (s *Spectrum) NuAtM(m, omegaM float64) (float64, error) {
	return s.NuAtR(LagrangianRadius(m, omegaM))
}

// BiasAtNu returns the large-scale bias of halos with peak height nu from
// the fit of Tinker et al. (2010) for halos defined at 200 times the mean
// density.
func BiasAtNu(nu float64) float64 {
	const delta = 200.0
	y := math.Log10(delta)
	xp := math.Exp(-math.Pow(4/y, 4))

	A := 1 + 0.24*y*xp
	a := 0.44*y - 0.88
	B := 0.183
	b := 1.5
	C := 0.019 + 0.107*y + 0.19*xp
	c := 2.4

	nua := math.Pow(nu, a)
	return 1 - A*nua/(nua+math.Pow(DeltaC, a)) + B*math.Pow(nu, b) + C*math.Pow(nu, c)
}

// BiasAtR returns the bias of halos with Lagrangian radius r.
func (s *Spectrum) BiasAtR(r float64) (float64, error) {
	nu, err := s.NuAtR(r)
	if err != nil {
		return 0, err
	}
	return BiasAtNu(nu), nil
}

// BiasAtM returns the bias of halos of mass m.
func (s *Spectrum) BiasAtM(m, omegaM float64) (float64, error) {
	return s.BiasAtR(LagrangianRadius(m, omegaM))
}
