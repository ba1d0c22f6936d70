package io

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/radprof/cosmo"
	"github.com/phil-mansfield/radprof/miscenter"
	"github.com/phil-mansfield/radprof/transform"
	"github.com/phil-mansfield/radprof/xi"
)

const (
	ExamplePressureFile = `[Pressure]

#######################
# Required Parameters #
#######################

# Halo mass, M200c, in Msun and redshift of the halo.
M200c = 1e14
Z = 0.5

# The quantity to compute. Must be one of:
# [ Pressure | Projected | Fourier | ComptonY ]
# Fourier output is indexed by wavenumber (1/Mpc) rather than radius.
Quantity = Projected

# Output coordinates are log-spaced between RMin and RMax.
RMin = 0.01
RMax = 10
Bins = 100

#######################
# Optional Parameters #
#######################

# Cosmology. Defaults to Planck 2015.
# OmegaM = 0.3089
# OmegaB = 0.0486
# H = 0.6774

# Alternative way of specifying output coordinates: a column of a text file.
# RadiusFile = path/to/radii.txt
# RadiusColumn = 0

# When set alongside Quantity = ComptonY, the cylindrical Compton y inside
# this radius (Mpc) is logged.
# Aperture = 1

# Integration tolerances. Limit is the maximum number of subintervals (or
# cycles for Fourier integrals) of each integral.
# Limit = 1000
# EpsAbs = 0
# EpsRel = 1e-4

# Output = out.txt
# Plot = out.png
# LogFile = log.out
# ProfileFile = prof.out`

	ExampleTransformFile = `[Transform]

#######################
# Required Parameters #
#######################

# Text file containing the table to transform. InputColumns gives the
# coordinate and value columns.
Input = path/to/table.txt
InputColumns = 0 1

# Must be one of [ Inverse | Forward | Abel ]. Inverse transforms a Fourier
# space table into real space and Forward does the reverse. Abel projects a
# real space table along the line of sight.
Direction = Inverse

RMin = 0.01
RMax = 10
Bins = 100

# Fourier transforms need a positive absolute tolerance. It is not needed
# for Abel.
EpsAbs = 1e-3

#######################
# Optional Parameters #
#######################

# RadiusFile = path/to/radii.txt
# RadiusColumn = 0
# Limit = 2000
# EpsRel = 0

# Output = out.txt
# Plot = out.png
# LogFile = log.out
# ProfileFile = prof.out`

	ExampleMiscenterFile = `[Miscenter]

#######################
# Required Parameters #
#######################

# Text file containing the centered surface density profile, R (Mpc/h) and
# Sigma (h Msun / pc^2).
Input = path/to/sigma.txt
InputColumns = 0 1

# Offset of a single cluster or scale of the offset distribution of a stack.
RMis = 0.2

# Must be one of [ Rayleigh | Exponential ]. Ignored if Single = true.
Kernel = Rayleigh

# The NFW halo which gives the profile below the innermost radius of the
# table. Masses are Msun/h and Delta is relative to the mean matter density.
M = 1e14
C = 5
Delta = 200
OmegaM = 0.3

RMin = 0.05
RMax = 5
Bins = 50

#######################
# Optional Parameters #
#######################

# Treat RMis as the offset of a single cluster instead of the scale of a
# stack's offset distribution.
# Single = false

# Also compute DeltaSigma from the miscentered profile. The output radii
# must lie inside the table.
# DeltaSigma = true

# RadiusFile = path/to/radii.txt
# RadiusColumn = 0
# Limit = 8000
# EpsAbs = 0
# EpsRel = 1e-4

# Output = out.txt
# Plot = out.png
# LogFile = log.out
# ProfileFile = prof.out`

	ExampleXiFile = `[Xi]

#######################
# Required Parameters #
#######################

# The correlation function to compute. Must be one of:
# [ NFW | Einasto | MM | MMExact | HM | DK ]
Model = HM

# Halo parameters. Masses are Msun/h and Delta is relative to the mean
# matter density.
M = 1e14
C = 5
Delta = 200
OmegaM = 0.3

RMin = 0.1
RMax = 50
Bins = 100

# Text file containing the linear matter power spectrum, k (h/Mpc) and
# P(k) (Mpc/h)^3. Needed by every model except NFW and Einasto.
PowerFile = path/to/pk.txt
PowerColumns = 0 1

#######################
# Optional Parameters #
#######################

# Einasto shape parameter. Needed by Einasto. For DK it defaults to a
# function of the peak height.
# Alpha = 0.18

# Parameters of the Ogata quadrature used for MM, HM and DK.
# OgataPoints = 500
# OgataStep = 0.005

# How HM combines the one-halo and two-halo terms: [ max | sum ]
# Combine = max

# Outer profile of DK, and the appendix variant to use (0, 1 or 2).
# Be = 1
# Se = 1.5
# Appendix = 0

# RadiusFile = path/to/radii.txt
# RadiusColumn = 0
# Limit = 8000
# EpsAbs = 0
# EpsRel = 1.8e-4

# Output = out.txt
# Plot = out.png
# LogFile = log.out
# ProfileFile = prof.out`
)

// SharedConfig holds the variables which every mode accepts.
type SharedConfig struct {
	// Optional
	Output, Plot         string
	LogFile, ProfileFile string

	RMin, RMax   float64
	Bins         int
	RadiusFile   string
	RadiusColumn int

	Limit          int
	EpsAbs, EpsRel float64
}

func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidPlot() bool {
	return con.Plot != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}
func (con *SharedConfig) ValidRadiusFile() bool {
	return con.RadiusFile != "" && con.RadiusColumn >= 0
}
func (con *SharedConfig) ValidRange() bool {
	return con.RMin > 0 && con.RMax > con.RMin && con.Bins >= 2
}
func (con *SharedConfig) ValidTolerance() bool {
	return con.Limit >= 0 && con.EpsAbs >= 0 && con.EpsRel >= 0
}

// Tolerance returns the integration tolerance given by the file. Each
// variable which was not set is taken from def.
func (con *SharedConfig) Tolerance(def transform.Tolerance) transform.Tolerance {
	tol := def
	if con.Limit != 0 {
		tol.Limit = con.Limit
	}
	if con.EpsAbs != 0 {
		tol.EpsAbs = con.EpsAbs
	}
	if con.EpsRel != 0 {
		tol.EpsRel = con.EpsRel
	}
	return tol
}

// CheckShared returns an error describing the first invalid shared
// variable.
func (con *SharedConfig) CheckShared(mode string) error {
	if !con.ValidRadiusFile() && !con.ValidRange() {
		return fmt.Errorf(
			"[%s] needs either 'RadiusFile' or valid 'RMin', 'RMax' and "+
				"'Bins' values.", mode,
		)
	} else if !con.ValidTolerance() {
		return fmt.Errorf("[%s] given a negative tolerance variable.", mode)
	}
	return nil
}

type PressureConfig struct {
	SharedConfig

	// Required
	M200c, Z float64
	Quantity string

	// Optional
	OmegaM, OmegaB, H float64
	Aperture          float64
}

// PressureQuantities lists the accepted values of PressureConfig.Quantity.
var PressureQuantities = []string{"Pressure", "Projected", "Fourier", "ComptonY"}

func DefaultPressureWrapper() *PressureWrapper {
	con := PressureConfig{}
	con.OmegaM = cosmo.Planck15.OmegaM
	con.OmegaB = cosmo.Planck15.OmegaB
	con.H = cosmo.Planck15.H
	return &PressureWrapper{con}
}

func (con *PressureConfig) ValidM200c() bool {
	return con.M200c > 0
}
func (con *PressureConfig) ValidZ() bool {
	return con.Z >= 0
}
func (con *PressureConfig) ValidQuantity() bool {
	return validName(con.Quantity, PressureQuantities)
}
func (con *PressureConfig) ValidCosmology() bool {
	return con.OmegaM > 0 && con.OmegaB > 0 && con.H > 0
}
func (con *PressureConfig) ValidAperture() bool {
	return con.Aperture > 0
}

// Cosmology returns the cosmology given by the file.
func (con *PressureConfig) Cosmology() cosmo.Params {
	return cosmo.Params{OmegaM: con.OmegaM, OmegaB: con.OmegaB, H: con.H}
}

func (con *PressureConfig) Check() error {
	if err := con.CheckShared("Pressure"); err != nil {
		return err
	} else if !con.ValidM200c() {
		return fmt.Errorf("Invalid/non-existent 'M200c' value.")
	} else if !con.ValidZ() {
		return fmt.Errorf("Invalid 'Z' value.")
	} else if !con.ValidQuantity() {
		return fmt.Errorf(
			"Invalid/non-existent 'Quantity'. Accepted values are: %s.",
			strings.Join(PressureQuantities, ", "),
		)
	} else if !con.ValidCosmology() {
		return fmt.Errorf("Invalid 'OmegaM', 'OmegaB' or 'H' value.")
	}
	return nil
}

type TransformConfig struct {
	SharedConfig

	// Required
	Input        string
	InputColumns string
	Direction    string
}

// TransformDirections lists the accepted values of TransformConfig.Direction.
var TransformDirections = []string{"Inverse", "Forward", "Abel"}

func DefaultTransformWrapper() *TransformWrapper {
	con := TransformConfig{}
	con.InputColumns = "0 1"
	con.Direction = "Inverse"
	return &TransformWrapper{con}
}

func (con *TransformConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *TransformConfig) ValidDirection() bool {
	return validName(con.Direction, TransformDirections)
}

// Fourier returns true if the requested transform is a Fourier transform.
func (con *TransformConfig) Fourier() bool {
	return !strings.EqualFold(con.Direction, "Abel")
}

func (con *TransformConfig) Check() error {
	if err := con.CheckShared("Transform"); err != nil {
		return err
	} else if !con.ValidInput() {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if _, err := ParseColumns(con.InputColumns, 2); err != nil {
		return fmt.Errorf("Invalid 'InputColumns' value: %s", err.Error())
	} else if !con.ValidDirection() {
		return fmt.Errorf(
			"Invalid 'Direction' value, '%s'. Accepted values are: %s.",
			con.Direction, strings.Join(TransformDirections, ", "),
		)
	} else if con.Fourier() && !(con.EpsAbs > 0) {
		return fmt.Errorf("Fourier transforms need a positive 'EpsAbs' value.")
	}
	return nil
}

type MiscenterConfig struct {
	SharedConfig

	// Required
	Input               string
	InputColumns        string
	RMis                float64
	Kernel              string
	M, C, Delta, OmegaM float64

	// Optional
	Single, DeltaSigma bool
}

func DefaultMiscenterWrapper() *MiscenterWrapper {
	con := MiscenterConfig{}
	con.InputColumns = "0 1"
	con.Kernel = miscenter.Rayleigh.String()
	return &MiscenterWrapper{con}
}

func (con *MiscenterConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *MiscenterConfig) ValidRMis() bool {
	if con.Single {
		return con.RMis >= 0
	}
	return con.RMis > 0
}
func (con *MiscenterConfig) ValidKernel() bool {
	_, err := miscenter.ParseKernel(con.Kernel)
	return err == nil
}
func (con *MiscenterConfig) ValidHalo() bool {
	return con.M > 0 && con.C > 0 && con.Delta > 0 && con.OmegaM > 0
}

func (con *MiscenterConfig) Check() error {
	if err := con.CheckShared("Miscenter"); err != nil {
		return err
	} else if !con.ValidInput() {
		return fmt.Errorf("Invalid/non-existent 'Input' value.")
	} else if _, err := ParseColumns(con.InputColumns, 2); err != nil {
		return fmt.Errorf("Invalid 'InputColumns' value: %s", err.Error())
	} else if !con.ValidRMis() {
		return fmt.Errorf("Invalid/non-existent 'RMis' value.")
	} else if !con.Single && !con.ValidKernel() {
		return fmt.Errorf(
			"Invalid 'Kernel' value, '%s'. Must be Rayleigh or Exponential.",
			con.Kernel,
		)
	} else if !con.ValidHalo() {
		return fmt.Errorf("Invalid/non-existent 'M', 'C', 'Delta' or 'OmegaM' value.")
	}
	return nil
}

type XiConfig struct {
	SharedConfig

	// Required
	Model               string
	M, C, Delta, OmegaM float64
	PowerFile           string
	PowerColumns        string

	// Optional
	Alpha       float64
	OgataPoints int
	OgataStep   float64
	Combine     string
	Be, Se      float64
	Appendix    int
}

// XiModels lists the accepted values of XiConfig.Model.
var XiModels = []string{"NFW", "Einasto", "MM", "MMExact", "HM", "DK"}

func DefaultXiWrapper() *XiWrapper {
	con := XiConfig{}
	con.Delta = 200
	con.OmegaM = 0.3
	con.PowerColumns = "0 1"
	con.OgataPoints = 500
	con.OgataStep = 0.005
	con.Combine = xi.CombineMax.String()
	con.Be = 1
	con.Se = 1.5
	return &XiWrapper{con}
}

func (con *XiConfig) ValidModel() bool {
	return validName(con.Model, XiModels)
}
func (con *XiConfig) ValidHalo() bool {
	return con.M > 0 && con.C > 0 && con.Delta > 0 && con.OmegaM > 0
}
func (con *XiConfig) ValidPowerFile() bool {
	return con.PowerFile != ""
}
func (con *XiConfig) ValidOgata() bool {
	return con.OgataPoints > 0 && con.OgataStep > 0
}
func (con *XiConfig) ValidCombine() bool {
	_, err := xi.ParseCombine(con.Combine)
	return err == nil
}
func (con *XiConfig) ValidAppendix() bool {
	return con.Appendix >= 0 && con.Appendix <= 2
}

// NeedsPower returns true if the model needs a power spectrum.
func (con *XiConfig) NeedsPower() bool {
	m := strings.ToLower(con.Model)
	return m != "nfw" && m != "einasto"
}

func (con *XiConfig) Check() error {
	if err := con.CheckShared("Xi"); err != nil {
		return err
	} else if !con.ValidModel() {
		return fmt.Errorf(
			"Invalid/non-existent 'Model'. Accepted values are: %s.",
			strings.Join(XiModels, ", "),
		)
	} else if !con.ValidHalo() {
		return fmt.Errorf("Invalid/non-existent 'M', 'C', 'Delta' or 'OmegaM' value.")
	} else if con.NeedsPower() && !con.ValidPowerFile() {
		return fmt.Errorf("Model '%s' needs a 'PowerFile'.", con.Model)
	} else if _, err := ParseColumns(con.PowerColumns, 2); err != nil {
		return fmt.Errorf("Invalid 'PowerColumns' value: %s", err.Error())
	} else if strings.ToLower(con.Model) == "einasto" && !(con.Alpha > 0) {
		return fmt.Errorf("Model 'Einasto' needs a positive 'Alpha'.")
	} else if !con.ValidOgata() {
		return fmt.Errorf("Invalid 'OgataPoints' or 'OgataStep' value.")
	} else if !con.ValidCombine() {
		return fmt.Errorf("Invalid 'Combine' value, '%s'.", con.Combine)
	} else if !con.ValidAppendix() {
		return fmt.Errorf("Invalid 'Appendix' value, %d.", con.Appendix)
	}
	return nil
}

type PressureWrapper struct {
	Pressure PressureConfig
}

type TransformWrapper struct {
	Transform TransformConfig
}

type MiscenterWrapper struct {
	Miscenter MiscenterConfig
}

type XiWrapper struct {
	Xi XiConfig
}

// ReadPressureConfig reads and checks a [Pressure] file.
func ReadPressureConfig(fname string) (*PressureConfig, error) {
	wrap := DefaultPressureWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return &wrap.Pressure, wrap.Pressure.Check()
}

// ReadTransformConfig reads and checks a [Transform] file.
func ReadTransformConfig(fname string) (*TransformConfig, error) {
	wrap := DefaultTransformWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return &wrap.Transform, wrap.Transform.Check()
}

// ReadMiscenterConfig reads and checks a [Miscenter] file.
func ReadMiscenterConfig(fname string) (*MiscenterConfig, error) {
	wrap := DefaultMiscenterWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return &wrap.Miscenter, wrap.Miscenter.Check()
}

// ReadXiConfig reads and checks an [Xi] file.
func ReadXiConfig(fname string) (*XiConfig, error) {
	wrap := DefaultXiWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return &wrap.Xi, wrap.Xi.Check()
}

// ExampleConfig returns the example file of the given mode.
func ExampleConfig(mode string) (string, error) {
	switch strings.ToLower(mode) {
	case "pressure":
		return ExamplePressureFile, nil
	case "transform":
		return ExampleTransformFile, nil
	case "miscenter":
		return ExampleMiscenterFile, nil
	case "xi":
		return ExampleXiFile, nil
	}
	return "", fmt.Errorf(
		"Unrecognized mode '%s'. Recognized modes are 'Pressure', "+
			"'Transform', 'Miscenter', and 'Xi'.", mode,
	)
}

func validName(name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
