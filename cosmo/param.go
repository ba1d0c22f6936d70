package cosmo

import (
	"math"
)

// HubbleFrac calculates h(z) = H(z)/H0. Here H(z) is from Hubble's Law,
// H(z)**2 + k (c/a)**2 = H0**2 h100**2 (OmegaM a**-3 + OmegaL). Assumes
// k, r = 0.
func HubbleFrac(omegaM, omegaL, z float64) float64 {
	return math.Sqrt(omegaM*math.Pow(1.0+z, 3.0) + omegaL)
}

// RhoCritical calculates the critical density of a flat universe at
// redshift z, in Msun / Mpc^3 for a dimensionless Hubble constant h.
func RhoCritical(omegaM, h, z float64) float64 {
	hz := HubbleFrac(omegaM, 1-omegaM, z)
	return RhoCritical0 * h * h * hz * hz
}

// RhoMean calculates the comoving mean matter density in Msun h^2 / Mpc^3.
func RhoMean(omegaM float64) float64 {
	return omegaM * RhoMeanUnit
}

// RDelta calculates the radius of a halo of mass mDelta which encloses an
// average density of delta times the critical density at redshift z.
func RDelta(mDelta, delta, omegaM, h, z float64) float64 {
	vol := mDelta / (delta * RhoCritical(omegaM, h, z))
	return math.Cbrt(3 * vol / (4 * math.Pi))
}

// RDeltaMean calculates the comoving radius of a halo of mass mDelta which
// encloses an average density of delta times the mean matter density.
func RDeltaMean(mDelta, delta, omegaM float64) float64 {
	vol := mDelta / (delta * RhoMean(omegaM))
	return math.Cbrt(3 * vol / (4 * math.Pi))
}

// MDeltaMean is the inverse of RDeltaMean.
func MDeltaMean(rDelta, delta, omegaM float64) float64 {
	return 4 * math.Pi / 3 * rDelta * rDelta * rDelta * delta * RhoMean(omegaM)
}

// Params is a flat LCDM cosmology. H is the dimensionless Hubble constant,
// H0 / (100 km/s/Mpc).
type Params struct {
	OmegaM, OmegaB, H float64
}

// Planck15 is a flat LCDM cosmology close to the Planck 2015 best fit.
var Planck15 = Params{OmegaM: 0.3089, OmegaB: 0.0486, H: 0.6774}
