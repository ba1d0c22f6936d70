package power

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/radprof/cosmo"
	"github.com/phil-mansfield/radprof/transform"
)

// powerLawSpectrum tabulates P(k) = 100 k^-2.
func powerLawSpectrum(t *testing.T) *Spectrum {
	ks := make([]float64, 300)
	floats.LogSpan(ks, 1e-4, 1e4)
	ps := make([]float64, len(ks))
	for i, k := range ks {
		ps[i] = 100 / (k * k)
	}
	s, err := NewSpectrum(ks, ps)
	require.NoError(t, err)
	return s
}

func TestSpectrumAt(t *testing.T) {
	s := powerLawSpectrum(t)

	for _, k := range []float64{1e-7, 1e-5, 3e-3, 1, 40, 1e5, 1e8} {
		assert.InEpsilon(t, 100/(k*k), s.At(k), 1e-4, "k = %g", k)
	}

	// Outside the table the power laws are exact.
	assert.InEpsilon(t, 100/(1e-6*1e-6), s.At(1e-6), 1e-9)
	assert.InEpsilon(t, 100/(1e6*1e6), s.At(1e6), 1e-9)
	assert.Equal(t, s.At(2.5), s.Eval(2.5))

	_, err := NewSpectrum([]float64{1, 2}, []float64{1, -1})
	assert.ErrorIs(t, err, transform.ErrInvalidInput)
	_, err = NewSpectrum([]float64{1}, []float64{1})
	assert.ErrorIs(t, err, transform.ErrInvalidInput)
}

func TestTopHat(t *testing.T) {
	assert.InDelta(t, 1, TopHat(0), 1e-15)
	for _, x := range []float64{1e-4, 9e-4, 1.1e-3} {
		exact := 3 * (math.Sin(x) - x*math.Cos(x)) / (x * x * x)
		assert.InDelta(t, exact, TopHat(x), 1e-6)
	}
	// First zero of tan(x) = x.
	assert.InDelta(t, 0, TopHat(4.493409457909064), 1e-12)
}

func TestSigma2Scaling(t *testing.T) {
	s := powerLawSpectrum(t)

	// For P ~ k^n, sigma^2 ~ R^-(n+3).
	s1, err := s.Sigma2AtR(1)
	require.NoError(t, err)
	s2, err := s.Sigma2AtR(2)
	require.NoError(t, err)
	assert.InEpsilon(t, 2, s1/s2, 2e-3)

	m := cosmo.MDeltaMean(1.3, 1, 0.3)
	sr, err := s.Sigma2AtR(1.3)
	require.NoError(t, err)
	sm, err := s.Sigma2AtM(m, 0.3)
	require.NoError(t, err)
	assert.InEpsilon(t, sr, sm, 1e-8)

	nu, err := s.NuAtR(1.3)
	require.NoError(t, err)
	assert.InEpsilon(t, DeltaC/math.Sqrt(sr), nu, 1e-14)

	nuM, err := s.NuAtM(m, 0.3)
	require.NoError(t, err)
	assert.InEpsilon(t, nu, nuM, 1e-8)

	_, err = s.Sigma2AtR(0)
	assert.ErrorIs(t, err, transform.ErrInvalidInput)
}

func TestBias(t *testing.T) {
	s := powerLawSpectrum(t)

	prev := 0.0
	for _, m := range []float64{1e13, 3e13, 1e14, 3e14, 1e15} {
		b, err := s.BiasAtM(m, 0.3)
		require.NoError(t, err)
		assert.Greater(t, b, prev, "m = %g", m)
		prev = b

		nu, err := s.NuAtM(m, 0.3)
		require.NoError(t, err)
		assert.Equal(t, BiasAtNu(nu), b)
	}

	prev = 0
	for nu := 0.5; nu < 5; nu += 0.25 {
		b := BiasAtNu(nu)
		assert.Greater(t, b, prev, "nu = %g", nu)
		prev = b
	}

	r := LagrangianRadius(1e14, 0.3)
	bm, err := s.BiasAtM(1e14, 0.3)
	require.NoError(t, err)
	br, err := s.BiasAtR(r)
	require.NoError(t, err)
	assert.Equal(t, bm, br)
}
