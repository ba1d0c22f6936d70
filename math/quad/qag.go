package quad

import (
	"math"
)

// QAG integrates f over [a, b] by repeatedly bisecting the subinterval with
// the largest error estimate until the total error is below
// max(epsabs, epsrel*|result|) or the workspace is full.
//
// On failure the best estimate found so far is still returned alongside the
// error.
func QAG(
	f Integrand, a, b, epsabs, epsrel float64, rule *Rule, ws *Workspace,
) (result, abserr float64, err error) {
	if ws == nil {
		return 0, 0, ErrBadLimit
	} else if !ValidTolerance(epsabs, epsrel) {
		return 0, 0, ErrTolerance
	}

	ws.reset()
	r0, e0, resabs0, resasc0 := rule.Apply(f, a, b)
	ws.ivals = append(ws.ivals, interval{a, b, r0, e0})

	tol := math.Max(epsabs, epsrel*math.Abs(r0))
	roundoff := 50 * dblEpsilon * resabs0
	if e0 <= roundoff && e0 > tol {
		return r0, e0, ErrRoundoff
	} else if (e0 <= tol && e0 != resasc0) || e0 == 0 {
		return r0, e0, nil
	} else if ws.limit == 1 {
		return r0, e0, ErrMaxSubdivisions
	}

	area, errsum := r0, e0
	roundoff1, roundoff2 := 0, 0

	for errsum > tol && err == nil && len(ws.ivals) < ws.limit {
		iv := ws.ivals[0]
		mid := 0.5 * (iv.a + iv.b)

		r1, e1, _, resasc1 := rule.Apply(f, iv.a, mid)
		r2, e2, _, resasc2 := rule.Apply(f, mid, iv.b)

		area12, err12 := r1+r2, e1+e2
		errsum += err12 - iv.err
		area += area12 - iv.result

		if resasc1 != e1 && resasc2 != e2 {
			delta := iv.result - area12
			if math.Abs(delta) <= 1e-5*math.Abs(area12) && err12 >= 0.99*iv.err {
				roundoff1++
			}
			if len(ws.ivals) >= 10 && err12 > iv.err {
				roundoff2++
			}
		}

		tol = math.Max(epsabs, epsrel*math.Abs(area))
		if errsum > tol {
			if roundoff1 >= 6 || roundoff2 >= 20 {
				err = ErrRoundoff
			}
			if subintervalTooSmall(iv.a, mid, iv.b) {
				err = ErrSingular
			}
		}

		ws.bisect(interval{iv.a, mid, r1, e1}, interval{mid, iv.b, r2, e2})
	}

	result, abserr = ws.sum(), errsum
	if errsum <= tol {
		return result, abserr, nil
	} else if err != nil {
		return result, abserr, err
	}
	return result, abserr, ErrMaxSubdivisions
}

// infiniteMap maps (-inf, inf) onto (0, 1] through x = (1 - t) / t, folding
// the negative half onto the positive one.
type infiniteMap struct {
	f Integrand
}

func (m infiniteMap) Eval(t float64) float64 {
	x := (1 - t) / t
	return (m.f.Eval(x) + m.f.Eval(-x)) / (t * t)
}

// upperMap maps [a, inf) onto (0, 1] through x = a + (1 - t) / t.
type upperMap struct {
	f Integrand
	a float64
}

func (m upperMap) Eval(t float64) float64 {
	x := m.a + (1-t)/t
	return m.f.Eval(x) / (t * t)
}

// QAGI integrates f over (-inf, inf). The 15-point rule is used because it
// never evaluates the transformed integrand at the singular endpoint t = 0.
func QAGI(
	f Integrand, epsabs, epsrel float64, ws *Workspace,
) (result, abserr float64, err error) {
	return QAG(infiniteMap{f}, 0, 1, epsabs, epsrel, GK15, ws)
}

// QAGIU integrates f over [a, inf).
func QAGIU(
	f Integrand, a, epsabs, epsrel float64, ws *Workspace,
) (result, abserr float64, err error) {
	return QAG(upperMap{f, a}, 0, 1, epsabs, epsrel, GK15, ws)
}
