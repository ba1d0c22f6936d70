package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	rpio "github.com/phil-mansfield/radprof/io"
	"github.com/phil-mansfield/radprof/miscenter"
	"github.com/phil-mansfield/radprof/pressure"
	"github.com/phil-mansfield/radprof/profile"
	"github.com/phil-mansfield/radprof/transform"
)

func newPressureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pressure <config>",
		Short: "BBPS pressure profiles, their projections and Compton y",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := rpio.ReadPressureConfig(args[0])
			if err != nil {
				return err
			}
			return run(cmd, &con.SharedConfig, "Pressure",
				func(logger *log.Logger, rs []float64) (*output, error) {
					return pressureMain(logger, con, rs)
				})
		},
	}
}

func pressureMain(
	logger *log.Logger, con *rpio.PressureConfig, rs []float64,
) (*output, error) {
	p := pressure.Fit(con.M200c, con.Z, con.Cosmology())
	logger.Debug("BBPS fit",
		"P0", p.P0, "xc", p.XC, "beta", p.Beta,
		"R200c", p.RDelta(), "P200c", p.PDelta(),
	)

	res := transform.NewResult(len(rs))
	tol := con.Tolerance(pressure.DefaultTolerance)
	out := &output{}

	var err error
	switch strings.ToLower(con.Quantity) {
	case "pressure":
		if err := p.Check(); err != nil {
			return nil, err
		}
		p.At(res.Values, rs)
		out.add("R", rs, false)
		out.add("P", res.Values, true)
		return out, nil
	case "projected":
		err = pressure.Projected(res.Values, res.Errors, rs, p, tol)
		out.add("R", rs, false)
		out.add("P_proj", res.Values, true)
	case "fourier":
		tol = con.Tolerance(p.FourierTolerance())
		err = pressure.Fourier(res.Values, res.Errors, rs, p, tol)
		out.add("k", rs, false)
		out.add("P_k", res.Values, true)
	case "comptony":
		err = pressure.ComptonY(res.Values, res.Errors, rs, p, tol)
		out.add("R", rs, false)
		out.add("y", res.Values, true)
	default:
		return nil, fmt.Errorf("unrecognized quantity '%s'", con.Quantity)
	}
	if err != nil {
		return nil, err
	}
	out.add("err", res.Errors, false)

	if strings.EqualFold(con.Quantity, "comptony") && con.ValidAperture() {
		y, err := pressure.ApertureY(rs, res.Values, con.Aperture)
		if err != nil {
			return nil, fmt.Errorf("aperture Compton y: %w", err)
		}
		logger.Info("aperture Compton y", "R", con.Aperture, "Y", y)
	}
	return out, nil
}

func newTransformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transform <config>",
		Short: "Fourier and Abel transforms of tabulated profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := rpio.ReadTransformConfig(args[0])
			if err != nil {
				return err
			}
			return run(cmd, &con.SharedConfig, "Transform",
				func(logger *log.Logger, xs []float64) (*output, error) {
					return transformMain(logger, con, xs)
				})
		},
	}
}

var (
	fourierTableTolerance = transform.Tolerance{Limit: 2000}
	abelTableTolerance    = transform.Tolerance{Limit: 1000, EpsRel: 1e-6}
)

func transformMain(
	logger *log.Logger, con *rpio.TransformConfig, xs []float64,
) (*output, error) {
	tab, err := rpio.ReadProfileTable(con.Input, con.InputColumns)
	if err != nil {
		return nil, err
	}
	logger.Debug("read table", "file", con.Input, "points", tab.Len(),
		"min", tab.Min(), "max", tab.Max())

	res := transform.NewResult(len(xs))
	out := &output{}
	switch strings.ToLower(con.Direction) {
	case "inverse":
		tol := con.Tolerance(fourierTableTolerance)
		err = transform.InverseSphericalFourier(res.Values, res.Errors, xs, tab, tol)
		out.add("R", xs, false)
	case "forward":
		tol := con.Tolerance(fourierTableTolerance)
		err = transform.ForwardSphericalFourier(res.Values, res.Errors, xs, tab, tol)
		out.add("k", xs, false)
	case "abel":
		tol := con.Tolerance(abelTableTolerance)
		err = transform.AbelTable(res.Values, res.Errors, xs, tab, nil, tol)
		out.add("R", xs, false)
	default:
		return nil, fmt.Errorf("unrecognized direction '%s'", con.Direction)
	}
	if err != nil {
		return nil, err
	}

	out.add(con.Direction, res.Values, true)
	out.add("err", res.Errors, false)
	return out, nil
}

func newMiscenterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "miscenter <config>",
		Short: "Miscentered surface density and DeltaSigma profiles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			con, err := rpio.ReadMiscenterConfig(args[0])
			if err != nil {
				return err
			}
			return run(cmd, &con.SharedConfig, "Miscenter",
				func(logger *log.Logger, rs []float64) (*output, error) {
					return miscenterMain(logger, con, rs)
				})
		},
	}
}

func miscenterMain(
	logger *log.Logger, con *rpio.MiscenterConfig, rs []float64,
) (*output, error) {
	tab, err := rpio.ReadProfileTable(con.Input, con.InputColumns)
	if err != nil {
		return nil, err
	}

	p := miscenter.Params{
		RMis: con.RMis,
		Centered: profile.SigmaNFW{
			M: con.M, C: con.C, Delta: con.Delta, OmegaM: con.OmegaM,
		},
		Tolerance: con.Tolerance(miscenter.DefaultTolerance),
	}

	sigma := transform.NewResult(len(rs))
	if con.Single {
		logger.Debug("single cluster", "RMis", con.RMis)
		err = miscenter.SigmaSingle(sigma.Values, sigma.Errors, rs, tab, p)
	} else {
		if p.Kernel, err = miscenter.ParseKernel(con.Kernel); err != nil {
			return nil, err
		}
		logger.Debug("stacked clusters", "RMis", con.RMis, "kernel", p.Kernel)
		err = miscenter.SigmaStack(sigma.Values, sigma.Errors, rs, tab, p)
	}
	if err != nil {
		return nil, err
	}

	out := &output{}
	out.add("R", rs, false)
	out.add("Sigma_mis", sigma.Values, true)
	out.add("err", sigma.Errors, false)
	if !con.DeltaSigma {
		return out, nil
	}

	misTab, err := profile.NewTable(rs, sigma.Values)
	if err != nil {
		return nil, err
	}
	ds := transform.NewResult(len(rs))
	err = miscenter.DeltaSigma(ds.Values, ds.Errors, rs, misTab, p.Tolerance)
	if err != nil {
		return nil, fmt.Errorf("DeltaSigma: %w", err)
	}
	out.add("DeltaSigma_mis", ds.Values, true)
	out.add("err", ds.Errors, false)
	return out, nil
}
