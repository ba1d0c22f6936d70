package quad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gquad "gonum.org/v1/gonum/integrate/quad"
)

func newWorkspace(t *testing.T, limit int) *Workspace {
	ws, err := NewWorkspace(limit)
	require.NoError(t, err)
	return ws
}

func TestNewWorkspace(t *testing.T) {
	_, err := NewWorkspace(0)
	assert.ErrorIs(t, err, ErrBadLimit)

	ws, err := NewWorkspace(100)
	require.NoError(t, err)
	assert.Equal(t, 100, ws.Limit())
}

func TestRulePolynomials(t *testing.T) {
	table := []struct {
		name string
		rule *Rule
		deg  int
	}{
		{"GK15", GK15, 21},
		{"GK21", GK21, 31},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			for deg := 0; deg <= test.deg; deg += 3 {
				p := float64(deg)
				f := Func(func(x float64) float64 { return math.Pow(x, p) })
				res, _, _, _ := test.rule.Apply(f, 0, 2)
				exact := math.Pow(2, p+1) / (p + 1)
				assert.InEpsilon(t, exact, res, 1e-12, "degree %d", deg)
			}
		})
	}

	assert.Equal(t, 15, GK15.Points())
	assert.Equal(t, 21, GK21.Points())
}

func TestQAG(t *testing.T) {
	ws := newWorkspace(t, 1000)

	table := []struct {
		name  string
		f     Func
		a, b  float64
		exact float64
	}{
		{"sin", math.Sin, 0, math.Pi, 2},
		{"sqrt", math.Sqrt, 0, 1, 2.0 / 3},
		{"log", math.Log, 0, 1, -1},
		{"oscillating", func(x float64) float64 { return math.Cos(20 * x) }, 0, 1,
			math.Sin(20) / 20},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			res, _, err := QAG(test.f, test.a, test.b, 0, 1e-10, GK21, ws)
			require.NoError(t, err)
			assert.InDelta(t, test.exact, res, 1e-9)
		})
	}
}

func TestQAGMatchesFixedLegendre(t *testing.T) {
	ws := newWorkspace(t, 100)
	f := func(x float64) float64 { return math.Exp(-x*x) * math.Cos(x) }

	res, _, err := QAG(Func(f), -1, 2, 1e-13, 0, GK15, ws)
	require.NoError(t, err)

	ref := gquad.Fixed(f, -1, 2, 60, gquad.Legendre{}, 0)
	assert.InDelta(t, ref, res, 1e-11)
}

func TestQAGFailures(t *testing.T) {
	ws := newWorkspace(t, 2)
	f := Func(func(x float64) float64 { return math.Sin(50 * x) })

	_, _, err := QAG(f, 0, 10, 0, 1e-12, GK15, ws)
	assert.ErrorIs(t, err, ErrMaxSubdivisions)

	_, _, err = QAG(f, 0, 1, 0, 0, GK15, ws)
	assert.ErrorIs(t, err, ErrTolerance)

	_, _, err = QAG(f, 0, 1, 0, 1e-3, GK15, nil)
	assert.ErrorIs(t, err, ErrBadLimit)
}

func TestQAGI(t *testing.T) {
	ws := newWorkspace(t, 500)

	gauss := Func(func(x float64) float64 { return math.Exp(-x * x) })
	res, _, err := QAGI(gauss, 0, 1e-10, ws)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(math.Pi), res, 1e-9)

	lorentz := Func(func(x float64) float64 { return 1 / (1 + x*x) })
	res, _, err = QAGI(lorentz, 0, 1e-10, ws)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, res, 1e-9)

	inv2 := Func(func(x float64) float64 { return 1 / (x * x) })
	res, _, err = QAGIU(inv2, 1, 0, 1e-10, ws)
	require.NoError(t, err)
	assert.InDelta(t, 1, res, 1e-9)
}

func TestQAWF(t *testing.T) {
	ws, cycle := newWorkspace(t, 1000), newWorkspace(t, 1000)
	expDecay := Func(func(x float64) float64 { return math.Exp(-x) })

	for _, omega := range []float64{0.3, 1, 3.5, 10} {
		res, abserr, err := QAWF(expDecay, 0, omega, 1e-10, ws, cycle)
		require.NoError(t, err, "omega = %g", omega)
		exact := omega / (1 + omega*omega)
		assert.InDelta(t, exact, res, 1e-8, "omega = %g", omega)
		assert.Less(t, abserr, 1e-6)
	}

	// Slowly decaying, so the extrapolation has to do the work.
	inv := Func(func(x float64) float64 { return 1 / math.Sqrt(x) })
	res, _, err := QAWF(inv, 0, 1, 1e-6, ws, cycle)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(math.Pi/2), res, 1e-5)
}

func TestQAWFTrivial(t *testing.T) {
	ws, cycle := newWorkspace(t, 100), newWorkspace(t, 100)
	zero := Func(func(x float64) float64 { return 0 })

	res, abserr, err := QAWF(zero, 0, 2, 1e-10, ws, cycle)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res)
	assert.Equal(t, 0.0, abserr)

	res, _, err = QAWF(Func(math.Exp), 0, 0, 1e-10, ws, cycle)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res)

	_, _, err = QAWF(zero, 0, 1, 0, ws, cycle)
	assert.ErrorIs(t, err, ErrTolerance)
}

func TestQAWO(t *testing.T) {
	ws, cycle := newWorkspace(t, 1000), newWorkspace(t, 1000)
	id := Func(func(x float64) float64 { return x })

	res, _, err := QAWO(id, 0, math.Pi, 1, 0, 1e-10, ws, cycle)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, res, 1e-9)

	// Many cycles: integral_0^L sin(5x) dx = (1 - cos(5L)) / 5.
	one := Func(func(x float64) float64 { return 1 })
	res, _, err = QAWO(one, 0, 40, 5, 1e-10, 0, ws, cycle)
	require.NoError(t, err)
	assert.InDelta(t, (1-math.Cos(200))/5, res, 1e-9)

	small := newWorkspace(t, 2)
	_, _, err = QAWO(one, 0, 40, 5, 1e-12, 0, small, cycle)
	assert.ErrorIs(t, err, ErrMaxSubdivisions)
}

func TestEpsilonTable(t *testing.T) {
	table := &epsilonTable{}
	sum := 0.0
	var res, abserr float64
	for k := 1; k <= 12; k++ {
		sum += math.Pow(-1, float64(k+1)) / float64(k)
		table.append(sum)
		if table.n >= 2 {
			res, abserr = table.extrapolate()
		}
	}
	assert.InDelta(t, math.Ln2, res, 1e-8)
	assert.Less(t, abserr, 1e-4)
}

func TestQAGLargestErrorFirst(t *testing.T) {
	ws := newWorkspace(t, 1000)
	f := Func(func(x float64) float64 { return math.Sin(50 * x) })

	res, _, _ := QAG(f, 0, 10, 0, 1e-10, GK15, ws)
	assert.InDelta(t, (1-math.Cos(500))/50, res, 1e-8)
	require.Greater(t, ws.Len(), 10)

	for i := 1; i < ws.Len(); i++ {
		parent := (i - 1) / 2
		assert.GreaterOrEqual(t, ws.ivals[parent].err, ws.ivals[i].err, "i = %d", i)
	}

	// The subintervals still tile [0, 10].
	width := 0.0
	for _, iv := range ws.ivals {
		width += iv.b - iv.a
	}
	assert.InDelta(t, 10, width, 1e-12)
}
