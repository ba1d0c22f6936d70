package cosmo

// All constants are in units of Mpc, Msun and s, with the h scaling given
// per constant.
const (
	// RhoCritical0 is 3 (100 km/s/Mpc)^2 / (8 pi G), in Msun h^2 / Mpc^3.
	RhoCritical0 = 2.77536627e+11
	// RhoMeanUnit is the mean matter density of a universe with
	// OmegaM = 1, in comoving Msun h^2 / Mpc^3.
	RhoMeanUnit = 2.77533742639e+11
	// G is the gravitational constant in Mpc^3 / Msun / s^2.
	G = 4.51710305e-48
	// PressureToY is sigma_T / (m_e c^2) in s^2 / Msun. It converts an
	// integrated electron pressure into a Compton y parameter.
	PressureToY = 1.61574202e+15
)
