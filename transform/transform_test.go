package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/profile"
)

var gaussian = profile.Function(func(r float64) float64 {
	return math.Exp(-r * r / 2)
})

// gaussianFourier is the three dimensional Fourier transform of gaussian.
func gaussianFourier(k float64) float64 {
	return math.Pow(2*math.Pi, 1.5) * math.Exp(-k*k/2)
}

// gaussianAbel is the line-of-sight projection of gaussian.
func gaussianAbel(r float64) float64 {
	return math.Sqrt(2*math.Pi) * math.Exp(-r*r/2)
}

func TestSphericalFourierGaussian(t *testing.T) {
	ks := []float64{0.1, 0.5, 1, 2, 3}
	res := NewResult(len(ks))
	tol := Tolerance{Limit: 1000, EpsAbs: 1e-8}

	require.NoError(t, SphericalFourier(res.Values, res.Errors, ks, gaussian, tol))
	for i, k := range ks {
		assert.InDelta(t, gaussianFourier(k), res.Values[i], 1e-6, "k = %g", k)
		assert.GreaterOrEqual(t, res.Errors[i], 0.0)
	}

	// Error estimates are optional.
	out := make([]float64, len(ks))
	require.NoError(t, SphericalFourier(out, nil, ks, gaussian, tol))
	assert.InDeltaSlice(t, res.Values, out, 1e-12)
}

func TestSphericalFourierZero(t *testing.T) {
	ks := []float64{0.01, 1, 100}
	out := make([]float64, len(ks))
	tol := Tolerance{Limit: 100, EpsAbs: 1e-10}

	require.NoError(t, SphericalFourier(out, nil, ks, profile.Zero, tol))
	for i := range out {
		assert.InDelta(t, 0, out[i], 1e-10)
	}
}

func TestFourierRoundTrip(t *testing.T) {
	ks := make([]float64, 300)
	floats.Span(ks, 1e-3, 12)
	fs := make([]float64, len(ks))
	for i, k := range ks {
		fs[i] = gaussianFourier(k)
	}
	tab, err := profile.NewTable(ks, fs)
	require.NoError(t, err)

	rs := []float64{0.5, 1, 1.5}
	out := make([]float64, len(rs))
	// The kinks of the linear interpolant limit the achievable accuracy.
	tol := Tolerance{Limit: 2000, EpsAbs: 3e-3}
	require.NoError(t, InverseSphericalFourier(out, nil, rs, tab, tol))
	for i, r := range rs {
		assert.InDelta(t, gaussian(r), out[i], 1e-2, "r = %g", r)
	}
}

func TestForwardSphericalFourierTable(t *testing.T) {
	rs := make([]float64, 250)
	floats.Span(rs, 1e-3, 10)
	vs := make([]float64, len(rs))
	for i, r := range rs {
		vs[i] = gaussian(r)
	}
	tab, err := profile.NewTable(rs, vs)
	require.NoError(t, err)

	ks := []float64{0.5, 1, 2}
	out := make([]float64, len(ks))
	tol := Tolerance{Limit: 2000, EpsAbs: 1e-2}
	require.NoError(t, ForwardSphericalFourier(out, nil, ks, tab, tol))
	for i, k := range ks {
		assert.InDelta(t, gaussianFourier(k), out[i], 3e-2, "k = %g", k)
	}
}

func TestFourierTableBoundaries(t *testing.T) {
	tab, err := profile.NewTable([]float64{0.1, 1, 10}, []float64{5, 3, 1})
	require.NoError(t, err)
	f, err := fourierTable(tab)
	require.NoError(t, err)

	assert.Equal(t, 5.0, f.Eval(0.05))
	assert.Equal(t, 5.0, f.Eval(1e-10))
	assert.Equal(t, 5.0, f.Eval(0.1))
	assert.Equal(t, 0.0, f.Eval(10.01))
	assert.Equal(t, 0.0, f.Eval(1e10))
	assert.InDelta(t, 4, f.Eval(0.55), 1e-12)
}

func TestAbelGaussian(t *testing.T) {
	rs := []float64{0, 0.3, 1, 2.5}
	res := NewResult(len(rs))
	tol := Tolerance{Limit: 1000, EpsRel: 1e-10}

	require.NoError(t, Abel(res.Values, res.Errors, rs, gaussian, tol))
	for i, r := range rs {
		assert.InEpsilon(t, gaussianAbel(r), res.Values[i], 1e-9, "r = %g", r)
	}
}

func TestAbelTable(t *testing.T) {
	rs := make([]float64, 400)
	floats.Span(rs, 0.01, 8)
	vs := make([]float64, len(rs))
	for i, r := range rs {
		vs[i] = gaussian(r)
	}
	tab, err := profile.NewTable(rs, vs)
	require.NoError(t, err)

	out := make([]float64, 3)
	tol := Tolerance{Limit: 1000, EpsRel: 1e-6}
	xs := []float64{0.2, 1, 3}

	require.NoError(t, AbelTable(out, nil, xs, tab, gaussian, tol))
	for i, x := range xs {
		assert.InEpsilon(t, gaussianAbel(x), out[i], 1e-5, "r = %g", x)
	}

	// A constant extension below 0.01 barely differs from the Gaussian.
	require.NoError(t, AbelTable(out, nil, xs, tab, nil, tol))
	for i, x := range xs {
		assert.InEpsilon(t, gaussianAbel(x), out[i], 1e-4, "r = %g", x)
	}
}

func TestAbelTableTruncation(t *testing.T) {
	// A constant profile truncated at r = 2 projects to a chord length.
	tab, err := profile.NewTable([]float64{0.5, 1, 1.5, 2}, []float64{1, 1, 1, 1})
	require.NoError(t, err)

	xs := []float64{0, 1, 1.9}
	out := make([]float64, len(xs))
	tol := Tolerance{Limit: 1000, EpsAbs: 1e-8, EpsRel: 1e-8}
	require.NoError(t, AbelTable(out, nil, xs, tab, nil, tol))
	for i, x := range xs {
		assert.InDelta(t, 2*math.Sqrt(4-x*x), out[i], 1e-6, "r = %g", x)
	}
}

func TestIntegrateTable(t *testing.T) {
	tab, err := profile.NewTable([]float64{0, 1, 2, 3}, []float64{0, 2, 4, 6})
	require.NoError(t, err)

	res, err := IntegrateTable(tab, 0.5, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, 2.5*2.5-0.5*0.5, res, 1e-12)

	_, err = IntegrateTable(tab, -1, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInvalidInput(t *testing.T) {
	tab, err := profile.NewTable([]float64{1, 2}, []float64{1, 1})
	require.NoError(t, err)
	tol := Tolerance{Limit: 100, EpsAbs: 1e-6, EpsRel: 1e-6}
	xs := []float64{1, 2}
	out := make([]float64, 2)

	table := []struct {
		name string
		err  error
	}{
		{"empty", SphericalFourier(nil, nil, nil, gaussian, tol)},
		{"short output", SphericalFourier(out[:1], nil, xs, gaussian, tol)},
		{"short errors", Abel(out, out[:1], xs, gaussian, tol)},
		{"nil profile", Abel(out, nil, xs, nil, tol)},
		{"nil table", InverseSphericalFourier(out, nil, xs, nil, tol)},
		{"non-positive k", SphericalFourier(out, nil, []float64{0, 1}, gaussian, tol)},
		{"zero epsabs", SphericalFourier(out, nil, xs, gaussian, Tolerance{Limit: 10})},
		{"zero tolerance", AbelTable(out, nil, xs, tab, nil, Tolerance{Limit: 10})},
	}
	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			assert.ErrorIs(t, test.err, ErrInvalidInput)
		})
	}

	err = Abel(out, nil, xs, gaussian, Tolerance{Limit: 0, EpsRel: 1e-3})
	assert.ErrorIs(t, err, ErrAllocation)
	err = SphericalFourier(out, nil, xs, gaussian, Tolerance{Limit: 0, EpsAbs: 1e-3})
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestNonConvergence(t *testing.T) {
	rs := []float64{1, 2}
	out := make([]float64, len(rs))
	tol := Tolerance{Limit: 1, EpsRel: 1e-12}
	wiggle := profile.Function(func(r float64) float64 {
		return math.Cos(40*r) / (1 + r*r)
	})

	err := Abel(out, nil, rs, wiggle, tol)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonConvergence)
	assert.ErrorIs(t, err, quad.ErrMaxSubdivisions)

	var ierr *IntegrationError
	require.True(t, errors.As(err, &ierr))
	assert.Equal(t, 0, ierr.Index)
	assert.Equal(t, 1.0, ierr.X)
}
