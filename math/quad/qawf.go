package quad

import (
	"math"
)

// sineWeighted evaluates f(x) sin(omega x).
type sineWeighted struct {
	f     Integrand
	omega float64
}

func (s sineWeighted) Eval(x float64) float64 {
	return s.f.Eval(x) * math.Sin(s.omega*x)
}

// cycleLength returns the length of an odd number of half periods of
// sin(omega x), at least one full half period long. Consecutive cycles then
// alternate in sign.
func cycleLength(omega float64) float64 {
	omega = math.Abs(omega)
	return (2*math.Floor(omega) + 1) * math.Pi / omega
}

// QAWF computes the Fourier sine integral of f over [a, inf). The integral
// is split into cycles of the oscillation, each of which is integrated with
// QAG using the cycle Workspace, and the partial sums are accelerated with
// the epsilon algorithm. ws.Limit() bounds the number of cycles.
//
// Only an absolute tolerance is accepted, since the terms of the series are
// not known in advance.
func QAWF(
	f Integrand, a, omega, epsabs float64, ws, cycle *Workspace,
) (result, abserr float64, err error) {
	if ws == nil || cycle == nil {
		return 0, 0, ErrBadLimit
	} else if epsabs <= 0 {
		return 0, 0, ErrTolerance
	} else if omega == 0 {
		return 0, 0, nil
	}

	ws.reset()
	g := sineWeighted{f, omega}
	c := cycleLength(omega)

	const p = 0.9
	factor := 1.0
	eps := epsabs * (1 - p)

	area, errsum := 0.0, 0.0
	resExt, errExt := 0.0, math.MaxFloat64
	correc, truncation, totalErr := 0.0, 0.0, 0.0
	ktmin := 0
	converged := false
	var failure error

	table := &epsilonTable{}
	b := a
	for iter := 0; iter < ws.limit; iter++ {
		a1 := b
		b = b + c

		area1, err1, qagErr := QAG(g, a1, b, eps*factor, 0, GK21, cycle)
		if qagErr != nil {
			return area, errsum, qagErr
		}
		ws.ivals = append(ws.ivals, interval{a1, b, area1, err1})
		factor *= p

		area += area1
		errsum += err1

		// The truncation error of the series is estimated as fifty times
		// the most recent term.
		truncation = 50 * math.Abs(area1)
		totalErr = errsum + truncation

		if totalErr < epsabs && iter > 4 {
			return area, totalErr, nil
		}
		if err1 > correc {
			correc = err1
		}

		table.append(area)
		if table.n < 2 {
			continue
		}

		reseps, erreps := table.extrapolate()
		ktmin++
		if ktmin >= 15 && errExt < 0.001*totalErr {
			failure = ErrDivergent
			break
		}

		if erreps < errExt {
			ktmin = 0
			errExt, resExt = erreps, reseps
			if errExt+10*correc <= epsabs && iter > 4 {
				converged = true
				break
			}
		}
	}

	if !converged && failure == nil {
		failure = ErrMaxSubdivisions
	}

	if errExt == math.MaxFloat64 {
		return area, totalErr, failure
	}
	errExt += 10 * correc

	if converged {
		return resExt, errExt, nil
	}

	if resExt != 0 && area != 0 {
		if errExt/math.Abs(resExt) > errsum/math.Abs(area) {
			return area, totalErr, failure
		}
	} else if errExt > errsum {
		return area, totalErr, failure
	}

	if failure == ErrDivergent {
		errExt += truncation
	}
	return resExt, errExt, failure
}

// QAWO computes the sine-weighted integral of f over the finite interval
// [a, b] by integrating each cycle of the oscillation separately. The
// number of cycles may not exceed ws.Limit(); cycle is used for the
// integration inside each one.
func QAWO(
	f Integrand, a, b, omega, epsabs, epsrel float64, ws, cycle *Workspace,
) (result, abserr float64, err error) {
	if ws == nil || cycle == nil {
		return 0, 0, ErrBadLimit
	} else if !ValidTolerance(epsabs, epsrel) {
		return 0, 0, ErrTolerance
	} else if omega == 0 || a == b {
		return 0, 0, nil
	}

	ws.reset()
	g := sineWeighted{f, omega}
	c := cycleLength(omega)
	n := int(math.Ceil((b - a) / c))
	if n > ws.limit {
		return 0, 0, ErrMaxSubdivisions
	}

	for i := 0; i < n; i++ {
		lo := a + float64(i)*c
		hi := math.Min(lo+c, b)
		r, e, qagErr := QAG(g, lo, hi, epsabs/float64(n), epsrel, GK21, cycle)
		result += r
		abserr += e
		if qagErr != nil {
			return result, abserr, qagErr
		}
		ws.ivals = append(ws.ivals, interval{lo, hi, r, e})
	}

	return result, abserr, nil
}
