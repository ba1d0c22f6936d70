package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	rpio "github.com/phil-mansfield/radprof/io"
	"github.com/phil-mansfield/radprof/power"
	"github.com/phil-mansfield/radprof/profile"
	"github.com/phil-mansfield/radprof/transform"
	"github.com/phil-mansfield/radprof/xi"
)

func newXiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "xi <config>",
		Short: "Halo-matter and matter-matter correlation functions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := rpio.ReadXiConfig(args[0])
			if err != nil {
				return err
			}
			return run(cmd, &con.SharedConfig, "Xi",
				func(logger *log.Logger, rs []float64) (*output, error) {
					return xiMain(logger, con, rs)
				})
		},
	}
}

func readSpectrum(logger *log.Logger, con *rpio.XiConfig) (*power.Spectrum, error) {
	cols, err := rpio.ParseColumns(con.PowerColumns, 2)
	if err != nil {
		return nil, err
	}
	vals, err := rpio.ReadColumns(con.PowerFile, cols)
	if err != nil {
		return nil, err
	}
	ps, err := power.NewSpectrum(vals[0], vals[1])
	if err != nil {
		return nil, fmt.Errorf("power spectrum in %s: %w", con.PowerFile, err)
	}

	kmin, kmax := ps.Domain()
	logger.Debug("read power spectrum", "file", con.PowerFile,
		"points", len(vals[0]), "kmin", kmin, "kmax", kmax)
	return ps, nil
}

// twoHalo computes the matter correlation function and the two-halo term
// of the configured halo.
func twoHalo(
	logger *log.Logger, con *rpio.XiConfig, ps *power.Spectrum, rs []float64,
) (xiMM, xi2h []float64, bias float64, err error) {
	xiMM = make([]float64, len(rs))
	cache := xi.NewOgataCache()
	if err := xi.MMAt(xiMM, rs, ps, con.OgataPoints, con.OgataStep, cache); err != nil {
		return nil, nil, 0, err
	}

	bias, err = ps.BiasAtM(con.M, con.OmegaM)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("halo bias: %w", err)
	}
	logger.Debug("halo bias", "M", con.M, "bias", bias)

	xi2h = make([]float64, len(rs))
	if err := xi.TwoHaloAt(xi2h, bias, xiMM); err != nil {
		return nil, nil, 0, err
	}
	return xiMM, xi2h, bias, nil
}

func xiMain(logger *log.Logger, con *rpio.XiConfig, rs []float64) (*output, error) {
	halo := profile.NFW{M: con.M, C: con.C, Delta: con.Delta, OmegaM: con.OmegaM}
	out := &output{}
	out.add("R", rs, false)

	model := strings.ToLower(con.Model)
	switch model {
	case "nfw":
		vals := make([]float64, len(rs))
		if err := xi.NFWAt(vals, rs, halo); err != nil {
			return nil, err
		}
		out.add("xi_nfw", vals, true)
		return out, nil
	case "einasto":
		vals := make([]float64, len(rs))
		ein := xi.Einasto{
			M: con.M, C: con.C, Alpha: con.Alpha, Delta: con.Delta, OmegaM: con.OmegaM,
		}
		if err := xi.EinastoAt(vals, rs, ein); err != nil {
			return nil, err
		}
		out.add("xi_einasto", vals, true)
		return out, nil
	}

	ps, err := readSpectrum(logger, con)
	if err != nil {
		return nil, err
	}

	switch model {
	case "mm":
		vals := make([]float64, len(rs))
		err := xi.MMAt(vals, rs, ps, con.OgataPoints, con.OgataStep, nil)
		if err != nil {
			return nil, err
		}
		out.add("xi_mm", vals, true)

	case "mmexact":
		res := transform.NewResult(len(rs))
		tol := con.Tolerance(xi.DefaultExactTolerance)
		if err := xi.MMExactAt(res.Values, res.Errors, rs, ps, tol); err != nil {
			return nil, err
		}
		out.add("xi_mm", res.Values, true)
		out.add("err", res.Errors, false)

	case "hm":
		combine, err := xi.ParseCombine(con.Combine)
		if err != nil {
			return nil, err
		}
		xi1h := make([]float64, len(rs))
		if err := xi.NFWAt(xi1h, rs, halo); err != nil {
			return nil, err
		}
		_, xi2h, _, err := twoHalo(logger, con, ps, rs)
		if err != nil {
			return nil, err
		}
		hm := make([]float64, len(rs))
		if err := xi.HMAt(hm, xi1h, xi2h, combine); err != nil {
			return nil, err
		}
		out.add("xi_hm", hm, true)
		out.add("xi_1h", xi1h, false)
		out.add("xi_2h", xi2h, false)

	case "dk":
		dk, err := xi.NewDK(xi.DKParams{
			M: con.M, C: con.C, Delta: con.Delta, OmegaM: con.OmegaM,
			Be: con.Be, Se: con.Se, Alpha: con.Alpha,
		}, ps)
		if err != nil {
			return nil, err
		}
		logger.Debug("DK profile", "nu", dk.Nu, "alpha", dk.Alpha, "r_t", dk.RT)

		vals := make([]float64, len(rs))
		if con.Appendix == 0 {
			err = dk.At(vals, rs)
		} else {
			xiMM, _, bias, terr := twoHalo(logger, con, ps, rs)
			if terr != nil {
				return nil, terr
			}
			if con.Appendix == 1 {
				err = dk.App1At(vals, rs, bias, xiMM)
			} else {
				err = dk.App2At(vals, rs, bias, xiMM)
			}
		}
		if err != nil {
			return nil, err
		}
		out.add("xi_dk", vals, true)

	default:
		return nil, fmt.Errorf("unrecognized model '%s'", con.Model)
	}
	return out, nil
}
