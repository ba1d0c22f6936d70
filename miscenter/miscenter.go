/*package miscenter computes the surface density profiles of clusters whose
assumed centers are offset from their true centers, either by a known
distance or by a distribution of distances across a stack of clusters, and
the differential surface density profiles measured by weak lensing.
*/
package miscenter

import (
	"fmt"
	"math"
	"strings"

	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/profile"
	"github.com/phil-mansfield/radprof/transform"
)

// Kernel is the distribution of miscentering offsets within a stack.
type Kernel int

const (
	// Rayleigh is a two dimensional Gaussian offset distribution,
	// P(Rc) = Rc / RMis^2 exp(-Rc^2 / 2 RMis^2).
	Rayleigh Kernel = iota
	// Exponential is a gamma distribution, P(Rc) = Rc / RMis^2 exp(-Rc / RMis).
	Exponential
)

func (k Kernel) String() string {
	switch k {
	case Rayleigh:
		return "Rayleigh"
	case Exponential:
		return "Exponential"
	}
	return fmt.Sprintf("Kernel(%d)", int(k))
}

// ParseKernel converts a kernel name into a Kernel. Case is ignored.
func ParseKernel(s string) (Kernel, error) {
	switch strings.ToLower(s) {
	case "rayleigh":
		return Rayleigh, nil
	case "exponential":
		return Exponential, nil
	}
	return 0, fmt.Errorf("%w: unrecognized kernel '%s'", transform.ErrInvalidInput, s)
}

// weight returns RMis^2 P(rc) / rc.
func (k Kernel) weight(rc, rmis float64) float64 {
	if k == Exponential {
		return math.Exp(-rc / rmis)
	}
	return math.Exp(-0.5 * rc * rc / (rmis * rmis))
}

// DefaultTolerance is the tolerance used for both the angular and radial
// integrals unless a Params asks otherwise.
var DefaultTolerance = transform.Tolerance{Limit: 8000, EpsAbs: 0, EpsRel: 1e-4}

// Params describes the miscentering of a cluster or a stack of clusters.
type Params struct {
	// RMis is the offset of a single cluster or the scale of the offset
	// distribution of a stack, in the same units as the radii.
	RMis   float64
	Kernel Kernel
	// Centered is the centered profile used below the innermost radius of
	// the table, usually a profile.SigmaNFW. It is required.
	Centered profile.Func
	// Tolerance is used for every integral. The zero value is replaced by
	// DefaultTolerance.
	Tolerance transform.Tolerance
}

func (p *Params) tolerance() transform.Tolerance {
	if p.Tolerance == (transform.Tolerance{}) {
		return DefaultTolerance
	}
	return p.Tolerance
}

// centered interpolates a centered surface density table in ln(R). Below
// the table it is given by p.Centered and above it it is zero.
func (p *Params) centered(tab *profile.Table) (*profile.Tabulated, error) {
	if tab == nil {
		return nil, fmt.Errorf("%w: nil table", transform.ErrInvalidInput)
	} else if p.Centered == nil {
		return nil, fmt.Errorf(
			"%w: no centered profile below the table", transform.ErrInvalidInput,
		)
	}
	sigma, err := profile.NewSpline(tab, true)
	if err != nil {
		return nil, err
	}
	sigma.Below = p.Centered
	return sigma, nil
}

// ringIntegrand is the profile at a distance rmis from the assumed center
// along angle theta, which is the integrand around an annulus.
type ringIntegrand struct {
	sigma profile.Func
	r, rmis float64
}

func (ri ringIntegrand) Eval(theta float64) float64 {
	return ri.sigma.Eval(offset(ri.r, ri.rmis, math.Cos(theta)))
}

// offset returns the distance between points at distances r and rc from a
// center, separated by an angle with cosine cosTheta.
func offset(r, rc, cosTheta float64) float64 {
	return math.Sqrt(math.Max(0, r*r+rc*rc-2*r*rc*cosTheta))
}

// radialIntegrand integrates over the offset distribution at fixed theta in
// terms of ln(Rc).
type radialIntegrand struct {
	sigma    profile.Func
	kernel   Kernel
	r, rmis  float64
	cosTheta float64
}

func (ri *radialIntegrand) Eval(lnRc float64) float64 {
	rc := math.Exp(lnRc)
	s := ri.sigma.Eval(offset(ri.r, rc, ri.cosTheta))
	return rc * rc * ri.kernel.weight(rc, ri.rmis) * s
}

// angularIntegrand evaluates the full radial integral at each theta. The
// first failure of a radial integral is stored in err and turns the
// integrand into NaN, which stops the outer integration.
type angularIntegrand struct {
	radial *radialIntegrand
	lo, hi float64
	tol    transform.Tolerance
	ws     *quad.Workspace
	err    error
}

func (ai *angularIntegrand) Eval(theta float64) float64 {
	if ai.err != nil {
		return math.NaN()
	}
	ai.radial.cosTheta = math.Cos(theta)
	res, _, err := quad.QAG(
		ai.radial, ai.lo, ai.hi, ai.tol.EpsAbs, ai.tol.EpsRel, quad.GK21, ai.ws,
	)
	if err != nil {
		ai.err = err
		return math.NaN()
	}
	return res
}

func checkParams(out, outErr, rs []float64, tol transform.Tolerance) error {
	if len(rs) == 0 {
		return fmt.Errorf("%w: no output radii", transform.ErrInvalidInput)
	} else if len(out) != len(rs) {
		return fmt.Errorf(
			"%w: %d radii but output has length %d",
			transform.ErrInvalidInput, len(rs), len(out),
		)
	} else if outErr != nil && len(outErr) != len(rs) {
		return fmt.Errorf(
			"%w: %d radii but error output has length %d",
			transform.ErrInvalidInput, len(rs), len(outErr),
		)
	}
	return transform.CheckQAG(tol)
}

// SigmaSingle computes the surface density of a single cluster whose assumed
// center is offset by p.RMis from its true center. tab is the centered
// profile, which is interpolated in ln(R); above the table it is zero.
//
//	Sigma_mis(R) = 1/pi integral_0^pi Sigma(sqrt(R^2 + RMis^2 - 2 R RMis cos t)) dt
func SigmaSingle(out, outErr, rs []float64, tab *profile.Table, p Params) error {
	tol := p.tolerance()
	if err := checkParams(out, outErr, rs, tol); err != nil {
		return err
	} else if !(p.RMis >= 0) {
		return fmt.Errorf(
			"%w: miscentering offset %g is negative", transform.ErrInvalidInput, p.RMis,
		)
	}

	sigma, err := p.centered(tab)
	if err != nil {
		return err
	}
	ws, err := transform.Workspace(tol)
	if err != nil {
		return err
	}

	for i, r := range rs {
		f := ringIntegrand{sigma, r, p.RMis}
		res, abserr, err := quad.QAG(f, 0, math.Pi, tol.EpsAbs, tol.EpsRel, quad.GK21, ws)
		if err != nil {
			return &transform.IntegrationError{Index: i, X: r, Err: err}
		}
		out[i] = res / math.Pi
		if outErr != nil {
			outErr[i] = abserr / math.Pi
		}
	}
	return nil
}

// SigmaStack computes the mean surface density of a stack of clusters whose
// offsets follow the distribution p.Kernel with scale p.RMis. The offset
// integral runs over ln(Rc) from ln(Rmin) - 10 to ln(Rmax) for every angle
// of the outer integral.
func SigmaStack(out, outErr, rs []float64, tab *profile.Table, p Params) error {
	tol := p.tolerance()
	if err := checkParams(out, outErr, rs, tol); err != nil {
		return err
	} else if !(p.RMis > 0) {
		return fmt.Errorf(
			"%w: miscentering scale %g is not positive",
			transform.ErrInvalidInput, p.RMis,
		)
	} else if p.Kernel != Rayleigh && p.Kernel != Exponential {
		return fmt.Errorf("%w: unknown %v", transform.ErrInvalidInput, p.Kernel)
	}

	sigma, err := p.centered(tab)
	if err != nil {
		return err
	}
	ws, err := transform.Workspace(tol)
	if err != nil {
		return err
	}
	inner, err := transform.Workspace(tol)
	if err != nil {
		return err
	}

	radial := &radialIntegrand{sigma: sigma, kernel: p.Kernel, rmis: p.RMis}
	ang := &angularIntegrand{
		radial: radial,
		lo:     math.Log(tab.Min()) - 10, hi: math.Log(tab.Max()),
		tol: tol, ws: inner,
	}
	norm := math.Pi * p.RMis * p.RMis

	for i, r := range rs {
		radial.r = r
		res, abserr, err := quad.QAG(ang, 0, math.Pi, tol.EpsAbs, tol.EpsRel, quad.GK21, ws)
		if ang.err != nil {
			err = ang.err
		}
		if err != nil {
			return &transform.IntegrationError{Index: i, X: r, Err: err}
		}
		out[i] = res / norm
		if outErr != nil {
			outErr[i] = abserr / norm
		}
	}
	return nil
}
