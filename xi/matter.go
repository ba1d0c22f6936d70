package xi

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/transform"
)

// OgataCache holds the abscissas and weights of Ogata's double exponential
// quadrature for the sine transform. A cache is rebuilt when the step size
// changes or more points are requested than it holds, so repeated calls
// with the same (h, n) share the work.
//
// An OgataCache must not be shared between goroutines.
type OgataCache struct {
	h  float64
	xs []float64
	// ws is x sin(x) dpsi(t), the full weight of each abscissa.
	ws []float64
}

// NewOgataCache returns an empty cache.
func NewOgataCache() *OgataCache { return &OgataCache{} }

// Len returns the number of abscissas currently held by the cache.
func (c *OgataCache) Len() int { return len(c.xs) }

// Step returns the step size the cache was built for.
func (c *OgataCache) Step() float64 { return c.h }

func (c *OgataCache) update(n int, h float64) {
	if h == c.h && len(c.xs) >= n {
		return
	}

	c.h = h
	c.xs, c.ws = make([]float64, n), make([]float64, n)
	for i := range c.xs {
		t := h * float64(i+1)
		psi := t * math.Tanh(math.Pi/2*math.Sinh(t))
		x := psi * math.Pi / h

		piSinh := math.Pi * math.Sinh(t)
		dpsi := (math.Pi*t*math.Cosh(t) + math.Sinh(piSinh)) / (1 + math.Cosh(piSinh))
		if math.IsNaN(dpsi) {
			dpsi = 1
		}

		c.xs[i] = x
		c.ws[i] = x * math.Sin(x) * dpsi
	}
}

// MMAt writes the matter-matter correlation function,
//
//	xi_mm(r) = 1/(2 pi^2 r) integral_0^inf k P(k) sin(k r) dk,
//
// to out using the first n nodes of Ogata's quadrature with step size h.
// cache may be nil, in which case the nodes are computed for this call
// only.
func MMAt(out, rs []float64, p Power, n int, h float64, cache *OgataCache) error {
	if err := checkRadii(out, rs); err != nil {
		return err
	} else if p == nil {
		return fmt.Errorf("%w: no power spectrum", transform.ErrInvalidInput)
	} else if n <= 0 || !(h > 0) {
		return fmt.Errorf(
			"%w: Ogata quadrature with n = %d, h = %g",
			transform.ErrInvalidInput, n, h,
		)
	}

	if cache == nil {
		cache = NewOgataCache()
	}
	cache.update(n, h)

	for j, r := range rs {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += cache.ws[i] * p.At(cache.xs[i]/r)
		}
		// The factor of pi from the quadrature rule cancels one in the
		// normalization.
		out[j] = sum / (2 * math.Pi * r * r * r)
	}
	return nil
}

// Integration range of MMExactAt, in h/Mpc.
const (
	ExactKMin = 5e-8
	ExactKMax = 4e3
)

// DefaultExactTolerance is the tolerance used by MMExactAt when it is given
// the zero Tolerance. Limit bounds the number of oscillation cycles.
var DefaultExactTolerance = transform.Tolerance{Limit: 8000, EpsAbs: 0, EpsRel: 1.8e-4}

type exactIntegrand struct {
	p Power
	r float64
}

func (ei exactIntegrand) Eval(k float64) float64 {
	return ei.p.At(k) * k / ei.r
}

// MMExactAt computes the same correlation function as MMAt by direct
// adaptive integration of the sine-weighted integral over
// [ExactKMin, ExactKMax], cycle by cycle. It is slower than MMAt but has
// no step size to tune. outErr may be nil.
func MMExactAt(out, outErr, rs []float64, p Power, tol transform.Tolerance) error {
	if tol == (transform.Tolerance{}) {
		tol = DefaultExactTolerance
	}
	if err := checkRadii(out, rs); err != nil {
		return err
	} else if outErr != nil && len(outErr) != len(rs) {
		return fmt.Errorf(
			"%w: %d radii but error output has length %d",
			transform.ErrInvalidInput, len(rs), len(outErr),
		)
	} else if p == nil {
		return fmt.Errorf("%w: no power spectrum", transform.ErrInvalidInput)
	} else if err := transform.CheckQAG(tol); err != nil {
		return err
	}

	ws, err := transform.Workspace(tol)
	if err != nil {
		return err
	}
	cycle, err := transform.Workspace(tol)
	if err != nil {
		return err
	}

	norm := 2 * math.Pi * math.Pi
	for i, r := range rs {
		res, abserr, err := quad.QAWO(
			exactIntegrand{p, r}, ExactKMin, ExactKMax, r,
			tol.EpsAbs, tol.EpsRel, ws, cycle,
		)
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
