package profile

import (
	"math"

	"github.com/phil-mansfield/radprof/cosmo"
)

// NFW is a Navarro-Frenk-White halo with mass M (Msun/h) and concentration
// C, defined with an overdensity of Delta times the mean matter density of
// a universe with matter fraction OmegaM. Distances are comoving Mpc/h.
//
// NFW evaluates the three dimensional density in Msun h^2 / Mpc^3.
type NFW struct {
	M, C, Delta, OmegaM float64
}

// RDelta returns the halo radius.
func (h NFW) RDelta() float64 {
	return cosmo.RDeltaMean(h.M, h.Delta, h.OmegaM)
}

// RS returns the scale radius.
func (h NFW) RS() float64 { return h.RDelta() / h.C }

func (h NFW) fc() float64 {
	return math.Log(1+h.C) - h.C/(1+h.C)
}

func (h NFW) Eval(r float64) float64 {
	rs := h.RS()
	x := r / rs
	return h.M / (4 * math.Pi * rs * rs * rs * h.fc()) / (x * (1 + x) * (1 + x))
}

// SigmaNFW is the surface density of an NFW halo, in h Msun / pc^2
// comoving, at projected radii in Mpc/h.
type SigmaNFW NFW

func (h SigmaNFW) Eval(r float64) float64 {
	// Msun / Mpc^2 -> Msun / pc^2
	const conversion = 1e-12

	halo := NFW(h)
	rs := halo.RS()
	rhom := cosmo.RhoMean(h.OmegaM)
	deltac := h.Delta / 3 * h.C * h.C * h.C / halo.fc()
	amp := 2 * rs * deltac * rhom * conversion

	x := r / rs
	switch {
	case x < 1:
		arg := math.Sqrt((1 - x) / (1 + x))
		return amp * (1 - 2*math.Atanh(arg)/math.Sqrt(1-x*x)) / (x*x - 1)
	case x > 1:
		arg := math.Sqrt((x - 1) / (1 + x))
		return amp * (1 - 2*math.Atan(arg)/math.Sqrt(x*x-1)) / (x*x - 1)
	default:
		return amp / 3
	}
}
