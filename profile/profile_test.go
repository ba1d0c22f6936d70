package profile

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/radprof/math/quad"
)

func TestNewTable(t *testing.T) {
	table := []struct {
		name   string
		rs, vs []float64
	}{
		{"short", []float64{1}, []float64{1}},
		{"empty", nil, nil},
		{"mismatched", []float64{1, 2, 3}, []float64{1, 2}},
		{"decreasing", []float64{3, 2, 1}, []float64{1, 2, 3}},
		{"repeated", []float64{1, 2, 2}, []float64{1, 2, 3}},
	}
	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewTable(test.rs, test.vs)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	rs, vs := []float64{1, 2, 3}, []float64{4, 5, 6}
	tab, err := NewTable(rs, vs)
	require.NoError(t, err)
	rs[0], vs[0] = -1, -1
	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, 1.0, tab.Min())
	assert.Equal(t, 3.0, tab.Max())
	assert.Equal(t, []float64{4, 5, 6}, tab.Values())
	assert.Equal(t, 2.0, tab.R(1))
	assert.Equal(t, 5.0, tab.V(1))
}

func TestTabulatedBoundaries(t *testing.T) {
	tab, err := NewTable([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	require.NoError(t, err)

	sp, err := NewSpline(tab, false)
	require.NoError(t, err)
	lin, err := NewLinear(tab)
	require.NoError(t, err)

	for _, f := range []*Tabulated{sp, lin} {
		assert.InDelta(t, 5, f.Eval(2.5), 1e-12)
		assert.InDelta(t, 2, f.Eval(1), 1e-12)
		assert.InDelta(t, 8, f.Eval(4), 1e-12)
		assert.Equal(t, 0.0, f.Eval(0.5))
		assert.Equal(t, 0.0, f.Eval(10))

		f.Below = Constant(2)
		f.Above = Function(func(r float64) float64 { return -r })
		assert.Equal(t, 2.0, f.Eval(0.5))
		assert.Equal(t, -10.0, f.Eval(10))
		assert.True(t, math.IsNaN(f.Eval(math.NaN())))
	}
}

func TestTabulatedLogRadius(t *testing.T) {
	rs := []float64{0.01, 0.1, 1, 10, 100}
	vs := make([]float64, len(rs))
	for i := range rs {
		vs[i] = 3*math.Log(rs[i]) + 1
	}
	tab, err := NewTable(rs, vs)
	require.NoError(t, err)

	f, err := NewSpline(tab, true)
	require.NoError(t, err)
	for _, r := range []float64{0.01, 0.05, 0.7, 33, 100} {
		assert.InDelta(t, 3*math.Log(r)+1, f.Eval(r), 1e-10, "r = %g", r)
	}

	neg, err := NewTable([]float64{-1, 1}, []float64{0, 0})
	require.NoError(t, err)
	_, err = NewSpline(neg, true)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSigmaNFW(t *testing.T) {
	halo := NFW{M: 1e14, C: 5, Delta: 200, OmegaM: 0.3}
	ws, err := quad.NewWorkspace(1000)
	require.NoError(t, err)

	for _, r := range []float64{0.05, 0.5, 2} {
		los := quad.Func(func(l float64) float64 {
			return halo.Eval(math.Sqrt(r*r + l*l))
		})
		res, _, err := quad.QAGIU(los, 0, 0, 1e-10, ws)
		require.NoError(t, err)

		assert.InEpsilon(t, 2*res*1e-12, SigmaNFW(halo).Eval(r), 1e-6, "r = %g", r)
	}

	rs := halo.RS()
	assert.InEpsilon(t, SigmaNFW(halo).Eval(rs), SigmaNFW(halo).Eval(rs*1.001), 1e-2)
	assert.InEpsilon(t, SigmaNFW(halo).Eval(rs), SigmaNFW(halo).Eval(rs*0.999), 1e-2)
}

func TestNFWMass(t *testing.T) {
	halo := NFW{M: 1e14, C: 5, Delta: 200, OmegaM: 0.3}
	ws, err := quad.NewWorkspace(1000)
	require.NoError(t, err)

	shell := quad.Func(func(r float64) float64 { return 4 * math.Pi * r * r * halo.Eval(r) })
	m, _, err := quad.QAG(shell, 0, halo.RDelta(), 0, 1e-10, quad.GK21, ws)
	require.NoError(t, err)
	assert.InEpsilon(t, halo.M, m, 1e-8)
}

func TestPowerLaw(t *testing.T) {
	pl, err := NewPowerLaw(2, 12, 4, 3)
	require.NoError(t, err)
	assert.InDelta(t, -2, pl.Slope, 1e-12)
	assert.InEpsilon(t, 48, pl.A, 1e-12)
	assert.InEpsilon(t, 48.0/9, pl.Eval(3), 1e-12)

	for _, bad := range [][4]float64{{1, 1, 1, 2}, {1, 0, 2, 1}, {-1, 1, 2, 1}} {
		_, err := NewPowerLaw(bad[0], bad[1], bad[2], bad[3])
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
