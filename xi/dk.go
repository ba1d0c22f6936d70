package xi

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/radprof/cosmo"
	"github.com/phil-mansfield/radprof/transform"
)

// DKParams are the parameters of a Diemer & Kravtsov (2014) profile. Alpha,
// Beta, Gamma and RhoS are optional: non-positive values are replaced by
// their defaults when the profile is created.
type DKParams struct {
	M, C          float64
	Delta, OmegaM float64
	// Be and Se are the amplitude and slope of the outer term.
	Be, Se float64

	RhoS               float64
	Alpha, Beta, Gamma float64
}

// DK is a Diemer & Kravtsov (2014) profile: an Einasto inner profile which
// is steepened beyond a truncation radius, plus an outer power law,
//
//	rho(r) = rho_ein(r) f_trans(r) + rho_m (Be (r / 5 R_delta)^-Se + 1)
//	f_trans(r) = (1 + (r / r_t)^Beta)^(-Gamma/Beta)
type DK struct {
	DKParams
	Nu     float64
	RDelta float64
	// RT is the truncation radius.
	RT float64
}

// NewDK resolves the defaults of p using the peak height of the halo,
//
//	Alpha = 0.155 + 0.0095 nu^2, Beta = 4, Gamma = 8,
//	r_t = (1.9 - 0.18 nu) R_delta,
//
// and RhoS from the halo mass.
func NewDK(p DKParams, ph PeakHeight) (*DK, error) {
	if err := checkHalo(p.M, p.C, p.Delta, p.OmegaM); err != nil {
		return nil, err
	} else if ph == nil {
		return nil, fmt.Errorf("%w: no peak height provider", transform.ErrInvalidInput)
	}

	nu, err := ph.NuAtM(p.M, p.OmegaM)
	if err != nil {
		return nil, fmt.Errorf("peak height of M = %g: %w", p.M, err)
	}

	if p.Alpha <= 0 {
		p.Alpha = 0.155 + 0.0095*nu*nu
	}
	if p.Beta <= 0 {
		p.Beta = 4
	}
	if p.Gamma <= 0 {
		p.Gamma = 8
	}
	if p.RhoS <= 0 {
		p.RhoS = RhoSEinasto(p.M, p.C, p.Alpha, p.Delta, p.OmegaM)
	}

	rDelta := cosmo.RDeltaMean(p.M, p.Delta, p.OmegaM)
	return &DK{
		DKParams: p, Nu: nu, RDelta: rDelta, RT: (1.9 - 0.18*nu) * rDelta,
	}, nil
}

// inner returns rho_ein(r) f_trans(r) / rho_m.
func (dk *DK) inner(r float64) float64 {
	ein := Einasto{
		M: dk.M, C: dk.C, Alpha: dk.Alpha, Delta: dk.Delta, OmegaM: dk.OmegaM,
		RhoS: dk.RhoS,
	}
	trans := math.Pow(1+math.Pow(r/dk.RT, dk.Beta), -dk.Gamma/dk.Beta)
	return ein.Eval(r) * trans / cosmo.RhoMean(dk.OmegaM)
}

func (dk *DK) outer(r float64) float64 {
	return dk.Be * math.Pow(r/(5*dk.RDelta), -dk.Se)
}

// At writes the correlation function of the profile, rho / rho_m - 1, to
// out.
func (dk *DK) At(out, rs []float64) error {
	if err := checkRadii(out, rs); err != nil {
		return err
	}
	for i, r := range rs {
		out[i] = dk.inner(r) + dk.outer(r)
	}
	return nil
}

// App1At writes the first appendix variant of the profile, in which the
// outer term is multiplied by the two-halo term bias * xiMM.
func (dk *DK) App1At(out, rs []float64, bias float64, xiMM []float64) error {
	if err := dk.checkApp(out, rs, xiMM); err != nil {
		return err
	}
	for i, r := range rs {
		out[i] = dk.inner(r) + dk.outer(r)*bias*xiMM[i]
	}
	return nil
}

// App2At writes the second appendix variant of the profile, in which the
// outer term is (1 + Be (r / 5 R_delta)^-Se) bias xiMM.
func (dk *DK) App2At(out, rs []float64, bias float64, xiMM []float64) error {
	if err := dk.checkApp(out, rs, xiMM); err != nil {
		return err
	}
	for i, r := range rs {
		out[i] = dk.inner(r) + (1+dk.outer(r))*bias*xiMM[i]
	}
	return nil
}

func (dk *DK) checkApp(out, rs, xiMM []float64) error {
	if err := checkRadii(out, rs); err != nil {
		return err
	} else if len(xiMM) != len(rs) {
		return fmt.Errorf(
			"%w: %d radii but %d matter correlation values",
			transform.ErrInvalidInput, len(rs), len(xiMM),
		)
	}
	return nil
}
