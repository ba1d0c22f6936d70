package quad

import (
	"math"
)

const epsilonLimit = 50

// epsilonTable holds the state of Wynn's epsilon algorithm, which
// extrapolates the limit of a slowly converging sequence of partial sums.
type epsilonTable struct {
	n      int
	rlist2 [epsilonLimit + 2]float64
	nres   int
	res3la [3]float64
}

func (t *epsilonTable) append(y float64) {
	t.rlist2[t.n] = y
	t.n++
}

// extrapolate returns the extrapolated limit of the sequence and an error
// estimate. The table is shifted in place so that it never holds more than
// epsilonLimit elements.
func (t *epsilonTable) extrapolate() (result, abserr float64) {
	epstab := t.rlist2[:]
	n := t.n - 1
	current := epstab[n]

	absolute := math.MaxFloat64
	relative := 5 * dblEpsilon * math.Abs(current)

	newelm := n / 2
	nOrig, nFinal := n, n
	nresOrig := t.nres

	result, abserr = current, math.MaxFloat64

	if n < 2 {
		return current, math.Max(absolute, relative)
	}

	epstab[n+2] = epstab[n]
	epstab[n] = math.MaxFloat64

	for i := 0; i < newelm; i++ {
		res := epstab[n-2*i+2]
		e0 := epstab[n-2*i-2]
		e1 := epstab[n-2*i-1]
		e2 := res

		e1abs := math.Abs(e1)
		delta2 := e2 - e1
		err2 := math.Abs(delta2)
		tol2 := math.Max(math.Abs(e2), e1abs) * dblEpsilon
		delta3 := e1 - e0
		err3 := math.Abs(delta3)
		tol3 := math.Max(e1abs, math.Abs(e0)) * dblEpsilon

		if err2 < tol2 && err3 < tol3 {
			// e0, e1 and e2 agree to machine precision.
			absolute = err2 + err3
			relative = 5 * dblEpsilon * math.Abs(res)
			return res, math.Max(absolute, relative)
		}

		e3 := epstab[n-2*i]
		epstab[n-2*i] = e1
		delta1 := e1 - e3
		err1 := math.Abs(delta1)
		tol1 := math.Max(e1abs, math.Abs(e3)) * dblEpsilon

		if err1 < tol1 || err2 < tol2 || err3 < tol3 {
			nFinal = 2 * i
			break
		}

		ss := (1/delta1 + 1/delta2) - 1/delta3
		if math.Abs(ss*e1) <= 0.0001 {
			nFinal = 2 * i
			break
		}

		res = e1 + 1/ss
		epstab[n-2*i] = res

		if e := err2 + math.Abs(res-e2) + err3; e <= abserr {
			abserr = e
			result = res
		}
	}

	if limexp := epsilonLimit - 1; nFinal == limexp {
		nFinal = 2 * (limexp / 2)
	}

	if nOrig%2 == 1 {
		for i := 0; i <= newelm; i++ {
			epstab[1+2*i] = epstab[2*i+3]
		}
	} else {
		for i := 0; i <= newelm; i++ {
			epstab[2*i] = epstab[2*i+2]
		}
	}

	if nOrig != nFinal {
		for i := 0; i <= nFinal; i++ {
			epstab[i] = epstab[nOrig-nFinal+i]
		}
	}

	t.n = nFinal + 1

	if nresOrig < 3 {
		t.res3la[nresOrig] = result
		abserr = math.MaxFloat64
	} else {
		abserr = math.Abs(result-t.res3la[2]) +
			math.Abs(result-t.res3la[1]) +
			math.Abs(result-t.res3la[0])
		t.res3la[0], t.res3la[1], t.res3la[2] = t.res3la[1], t.res3la[2], result
	}
	t.nres = nresOrig + 1

	return result, math.Max(abserr, 5*dblEpsilon*math.Abs(result))
}
