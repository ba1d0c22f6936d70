package io

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/radprof/transform"
)

func TestExampleFilesParse(t *testing.T) {
	pw := DefaultPressureWrapper()
	require.NoError(t, gcfg.ReadStringInto(pw, ExamplePressureFile))
	assert.NoError(t, pw.Pressure.Check())
	assert.Equal(t, 1e14, pw.Pressure.M200c)
	assert.Equal(t, "Projected", pw.Pressure.Quantity)
	assert.Equal(t, 0.6774, pw.Pressure.Cosmology().H)

	iw := DefaultTransformWrapper()
	require.NoError(t, gcfg.ReadStringInto(iw, ExampleTransformFile))
	assert.NoError(t, iw.Transform.Check())
	assert.Equal(t, 1e-3, iw.Transform.EpsAbs)

	mw := DefaultMiscenterWrapper()
	require.NoError(t, gcfg.ReadStringInto(mw, ExampleMiscenterFile))
	assert.NoError(t, mw.Miscenter.Check())
	assert.Equal(t, 0.2, mw.Miscenter.RMis)
	assert.False(t, mw.Miscenter.Single)

	xw := DefaultXiWrapper()
	require.NoError(t, gcfg.ReadStringInto(xw, ExampleXiFile))
	assert.NoError(t, xw.Xi.Check())
	assert.Equal(t, "HM", xw.Xi.Model)
	assert.Equal(t, 500, xw.Xi.OgataPoints)
	assert.True(t, xw.Xi.NeedsPower())
}

func TestExampleConfig(t *testing.T) {
	for _, mode := range []string{"Pressure", "transform", "MISCENTER", "Xi"} {
		s, err := ExampleConfig(mode)
		require.NoError(t, err)
		assert.NotEmpty(t, s)
	}
	_, err := ExampleConfig("Density")
	assert.Error(t, err)
}

func TestConfigChecks(t *testing.T) {
	pw := DefaultPressureWrapper()
	pw.Pressure.RMin, pw.Pressure.RMax, pw.Pressure.Bins = 0.1, 1, 10
	pw.Pressure.M200c, pw.Pressure.Quantity = 1e14, "comptony"
	assert.NoError(t, pw.Pressure.Check())

	pw.Pressure.Quantity = "Density"
	assert.Error(t, pw.Pressure.Check())
	pw.Pressure.Quantity = "Fourier"
	pw.Pressure.Bins = 1
	assert.Error(t, pw.Pressure.Check())
	pw.Pressure.RadiusFile = "radii.txt"
	assert.NoError(t, pw.Pressure.Check())
	pw.Pressure.EpsRel = -1
	assert.Error(t, pw.Pressure.Check())

	iw := DefaultTransformWrapper()
	iw.Transform.Input, iw.Transform.RadiusFile = "in.txt", "radii.txt"
	assert.Error(t, iw.Transform.Check(), "Fourier transforms need EpsAbs")
	iw.Transform.EpsAbs = 1e-3
	assert.NoError(t, iw.Transform.Check())
	iw.Transform.InputColumns = "0"
	assert.Error(t, iw.Transform.Check())
	iw.Transform.InputColumns, iw.Transform.EpsAbs = "0 1", 0
	iw.Transform.Direction = "abel"
	assert.NoError(t, iw.Transform.Check())
	assert.False(t, iw.Transform.Fourier())

	mw := DefaultMiscenterWrapper()
	mw.Miscenter.Input, mw.Miscenter.RadiusFile = "in.txt", "radii.txt"
	mw.Miscenter.Single = true
	assert.Error(t, mw.Miscenter.Check(), "no halo")
	mw.Miscenter.M, mw.Miscenter.C = 1e14, 5
	mw.Miscenter.Delta, mw.Miscenter.OmegaM = 200, 0.3
	assert.NoError(t, mw.Miscenter.Check())
	mw.Miscenter.Single = false
	assert.Error(t, mw.Miscenter.Check())
	mw.Miscenter.RMis, mw.Miscenter.Kernel = 0.1, "Gaussian"
	assert.Error(t, mw.Miscenter.Check())
	mw.Miscenter.Kernel = "exponential"
	assert.NoError(t, mw.Miscenter.Check())
	mw.Miscenter.C = -1
	assert.Error(t, mw.Miscenter.Check())
	mw.Miscenter.C, mw.Miscenter.OmegaM = 5, 0
	assert.Error(t, mw.Miscenter.Check())

	xw := DefaultXiWrapper()
	xw.Xi.RadiusFile, xw.Xi.Model = "radii.txt", "NFW"
	xw.Xi.M, xw.Xi.C = 1e14, 5
	assert.NoError(t, xw.Xi.Check())
	xw.Xi.Model = "Einasto"
	assert.Error(t, xw.Xi.Check())
	xw.Xi.Alpha = 0.18
	assert.NoError(t, xw.Xi.Check())
	xw.Xi.Model = "DK"
	assert.Error(t, xw.Xi.Check())
	xw.Xi.PowerFile = "pk.txt"
	assert.NoError(t, xw.Xi.Check())
	xw.Xi.Appendix = 3
	assert.Error(t, xw.Xi.Check())
}

func TestTolerance(t *testing.T) {
	def := transform.Tolerance{Limit: 100, EpsAbs: 0, EpsRel: 1e-4}
	con := &SharedConfig{}
	assert.Equal(t, def, con.Tolerance(def))

	con.EpsAbs = 1e-3
	assert.Equal(t,
		transform.Tolerance{Limit: 100, EpsAbs: 1e-3, EpsRel: 1e-4}, con.Tolerance(def),
	)

	con.Limit = 7
	assert.Equal(t,
		transform.Tolerance{Limit: 7, EpsAbs: 1e-3, EpsRel: 1e-4}, con.Tolerance(def),
	)

	// Unset variables keep their defaults.
	fourier := transform.Tolerance{Limit: 2000, EpsAbs: 1e-8}
	con = &SharedConfig{EpsRel: 1e-6}
	assert.Equal(t,
		transform.Tolerance{Limit: 2000, EpsAbs: 1e-8, EpsRel: 1e-6}, con.Tolerance(fourier),
	)
	con = &SharedConfig{Limit: 50}
	assert.Equal(t,
		transform.Tolerance{Limit: 50, EpsAbs: 1e-8}, con.Tolerance(fourier),
	)
}

func TestReadConfigFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "xi.config")
	text := `[Xi]
Model = NFW
M = 2e14
C = 4
RMin = 0.1
RMax = 10
Bins = 20
Combine = sum`
	require.NoError(t, os.WriteFile(fname, []byte(text), 0644))

	con, err := ReadXiConfig(fname)
	require.NoError(t, err)
	assert.Equal(t, 2e14, con.M)
	assert.Equal(t, 200.0, con.Delta)
	assert.Equal(t, "sum", con.Combine)

	rs, err := Radii(&con.SharedConfig)
	require.NoError(t, err)
	require.Len(t, rs, 20)
	assert.InEpsilon(t, 0.1, rs[0], 1e-12)
	assert.InEpsilon(t, 10, rs[19], 1e-12)

	_, err = ReadPressureConfig(fname)
	assert.Error(t, err)
	_, err = ReadXiConfig(filepath.Join(t.TempDir(), "missing.config"))
	assert.Error(t, err)
}

func TestParseColumns(t *testing.T) {
	cols, err := ParseColumns(" 2  5 ", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5}, cols)

	for _, bad := range []string{"1", "1 2 3", "a 1", "-1 2"} {
		_, err := ParseColumns(bad, 2)
		assert.Error(t, err, bad)
	}
}

func TestWriteAndReadColumns(t *testing.T) {
	rs := []float64{0.1, 1, 10}
	vs := []float64{3.5, -2, 1.25e-7}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteColumns(buf, []string{"R", "Value"}, rs, vs))
	assert.Equal(t, "# R Value\n0.1 3.5\n1 -2\n10 1.25e-07\n", buf.String())

	fname := filepath.Join(t.TempDir(), "table.txt")
	require.NoError(t, os.WriteFile(fname, buf.Bytes(), 0644))

	tab, err := ReadProfileTable(fname, "0 1")
	require.NoError(t, err)
	assert.Equal(t, rs, tab.Radii())
	assert.Equal(t, vs, tab.Values())

	assert.Error(t, WriteColumns(buf, []string{"R"}, rs, vs))
	assert.Error(t, WriteColumns(buf, []string{"R", "V"}, rs, vs[:2]))
}
