/*package xi computes three dimensional halo-matter correlation functions:
closed-form one-halo terms (NFW and Einasto), the linear two-halo term, their
combination, and the matter-matter correlation function transformed from a
tabulated power spectrum.

Radii are comoving Mpc/h, masses Msun/h and densities comoving
Msun h^2 / Mpc^3. Every function writes into caller-allocated output slices.
*/
package xi

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mathext"

	"github.com/phil-mansfield/radprof/cosmo"
	"github.com/phil-mansfield/radprof/power"
	"github.com/phil-mansfield/radprof/profile"
	"github.com/phil-mansfield/radprof/transform"
)

// Power is a linear matter power spectrum, P(k), with k in h/Mpc.
type Power interface {
	At(k float64) float64
}

// PeakHeight supplies the peak height, nu = delta_c / sigma(M), of halos.
type PeakHeight interface {
	NuAtM(m, omegaM float64) (float64, error)
}

var (
	_ Power      = &power.Spectrum{}
	_ PeakHeight = &power.Spectrum{}
)

func checkLen(out []float64, name string, xs []float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("%w: no %s", transform.ErrInvalidInput, name)
	} else if len(out) != len(xs) {
		return fmt.Errorf(
			"%w: %d %s but output has length %d",
			transform.ErrInvalidInput, len(xs), name, len(out),
		)
	}
	return nil
}

func checkRadii(out, rs []float64) error {
	if err := checkLen(out, "radii", rs); err != nil {
		return err
	}
	for i, r := range rs {
		if !(r > 0) {
			return fmt.Errorf(
				"%w: radius %d is %g, must be positive",
				transform.ErrInvalidInput, i, r,
			)
		}
	}
	return nil
}

func checkHalo(m, c, delta, omegaM float64) error {
	if !(m > 0 && c > 0 && delta > 0 && omegaM > 0) {
		return fmt.Errorf(
			"%w: halo with M = %g, c = %g, delta = %g, OmegaM = %g",
			transform.ErrInvalidInput, m, c, delta, omegaM,
		)
	}
	return nil
}

// NFWAt writes the correlation function of an NFW halo,
// rho_NFW(r) / rho_m - 1, to out.
func NFWAt(out, rs []float64, h profile.NFW) error {
	if err := checkRadii(out, rs); err != nil {
		return err
	} else if err := checkHalo(h.M, h.C, h.Delta, h.OmegaM); err != nil {
		return err
	}

	rhom := cosmo.RhoMean(h.OmegaM)
	for i, r := range rs {
		out[i] = h.Eval(r)/rhom - 1
	}
	return nil
}

// Einasto is an Einasto halo,
//
//	rho(r) = RhoS exp(-2/Alpha (r/rs)^Alpha),
//
// with rs = R_delta / C. If RhoS is not positive, it is chosen so that the
// mass inside R_delta is M.
type Einasto struct {
	M, C, Alpha, Delta, OmegaM float64
	RhoS                       float64
}

// RDelta returns the halo radius.
func (e Einasto) RDelta() float64 {
	return cosmo.RDeltaMean(e.M, e.Delta, e.OmegaM)
}

func (e Einasto) rhoS() float64 {
	if e.RhoS > 0 {
		return e.RhoS
	}
	return RhoSEinasto(e.M, e.C, e.Alpha, e.Delta, e.OmegaM)
}

// Eval returns the density at r.
func (e Einasto) Eval(r float64) float64 {
	rs := e.RDelta() / e.C
	return e.rhoS() * math.Exp(-2/e.Alpha*math.Pow(r/rs, e.Alpha))
}

// RhoSEinasto returns the Einasto normalization which puts a mass m inside
// R_delta:
//
//	rho_s = delta rho_m R_delta^3 alpha (2/alpha)^(3/alpha) /
//	        (3 rs^3 gamma(3/alpha, 2/alpha c^alpha))
//
// where gamma is the lower incomplete gamma function.
func RhoSEinasto(m, c, alpha, delta, omegaM float64) float64 {
	rhom := cosmo.RhoMean(omegaM)
	rDelta := cosmo.RDeltaMean(m, delta, omegaM)
	rs := rDelta / c

	x := 2 / alpha * math.Pow(c, alpha)
	a := 3 / alpha
	gam := math.Gamma(a) * mathext.GammaIncReg(a, x)

	num := delta * rhom * rDelta * rDelta * rDelta * alpha * math.Pow(2/alpha, a)
	den := 3 * rs * rs * rs * gam
	return num / den
}

// EinastoAt writes the correlation function of an Einasto halo to out.
func EinastoAt(out, rs []float64, e Einasto) error {
	if err := checkRadii(out, rs); err != nil {
		return err
	} else if err := checkHalo(e.M, e.C, e.Delta, e.OmegaM); err != nil {
		return err
	} else if !(e.Alpha > 0) {
		return fmt.Errorf(
			"%w: Einasto alpha = %g is not positive", transform.ErrInvalidInput, e.Alpha,
		)
	}

	e.RhoS = e.rhoS()
	rhom := cosmo.RhoMean(e.OmegaM)
	for i, r := range rs {
		out[i] = e.Eval(r)/rhom - 1
	}
	return nil
}

// TwoHaloAt writes the two-halo term, bias * xi_mm, to out.
func TwoHaloAt(out []float64, bias float64, xiMM []float64) error {
	if err := checkLen(out, "matter correlation values", xiMM); err != nil {
		return err
	}
	for i := range xiMM {
		out[i] = bias * xiMM[i]
	}
	return nil
}

// Combine selects how the one-halo and two-halo terms are joined.
type Combine int

const (
	// CombineMax takes the larger of the two terms.
	CombineMax Combine = iota
	// CombineSum returns 1 + xi_1h + xi_2h.
	CombineSum
)

func (c Combine) String() string {
	switch c {
	case CombineMax:
		return "max"
	case CombineSum:
		return "sum"
	}
	return fmt.Sprintf("Combine(%d)", int(c))
}

// ParseCombine converts the name of a Combine rule into its value. Case is
// ignored.
func ParseCombine(s string) (Combine, error) {
	switch strings.ToLower(s) {
	case "max":
		return CombineMax, nil
	case "sum":
		return CombineSum, nil
	}
	return 0, fmt.Errorf(
		"%w: unrecognized combination rule '%s'", transform.ErrInvalidInput, s,
	)
}

// HMAt writes the halo-matter correlation function built from the one-halo
// and two-halo terms xi1h and xi2h to out.
func HMAt(out, xi1h, xi2h []float64, c Combine) error {
	if err := checkLen(out, "one-halo values", xi1h); err != nil {
		return err
	} else if err := checkLen(out, "two-halo values", xi2h); err != nil {
		return err
	}

	switch c {
	case CombineMax:
		for i := range out {
			out[i] = math.Max(xi1h[i], xi2h[i])
		}
	case CombineSum:
		for i := range out {
			out[i] = 1 + xi1h[i] + xi2h[i]
		}
	default:
		return fmt.Errorf("%w: unknown %v", transform.ErrInvalidInput, c)
	}
	return nil
}
