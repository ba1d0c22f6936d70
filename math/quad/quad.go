/*package quad contains adaptive Gauss-Kronrod integrators for finite,
infinite and sine-weighted integrals. All routines report failure through
their error return and never abort the program.
*/
package quad

import (
	"container/heap"
	"errors"
	"math"
)

var (
	// ErrBadLimit is returned when a Workspace is requested with room for
	// fewer than one subinterval.
	ErrBadLimit = errors.New("quad: workspace limit must be positive")
	// ErrTolerance is returned when the requested tolerances can never be
	// met.
	ErrTolerance = errors.New("quad: tolerance cannot be achieved")
	// ErrMaxSubdivisions is returned when the workspace limit is reached
	// before the error estimate drops below the tolerance.
	ErrMaxSubdivisions = errors.New("quad: maximum number of subdivisions reached")
	// ErrRoundoff is returned when roundoff error prevents the tolerance
	// from being reached.
	ErrRoundoff = errors.New("quad: roundoff error prevents convergence")
	// ErrSingular is returned when an interval becomes too small to bisect,
	// which usually means the integrand is singular.
	ErrSingular = errors.New("quad: bad integrand behavior, interval too small")
	// ErrDivergent is returned when the extrapolated series does not settle.
	ErrDivergent = errors.New("quad: integral is divergent or slowly convergent")
)

const (
	dblEpsilon = 2.2204460492503131e-16
	dblMin     = 2.2250738585072014e-308
)

// Integrand is a function of a single variable. Integrands are usually small
// value types which bind the parameters of a function to an Eval method.
type Integrand interface {
	Eval(x float64) float64
}

// Func adapts an ordinary function to the Integrand interface.
type Func func(float64) float64

func (f Func) Eval(x float64) float64 { return f(x) }

type interval struct {
	a, b        float64
	result, err float64
}

// Workspace holds the subintervals of an adaptive integration. A Workspace
// may be reused across calls, but not by two integrations at once.
type Workspace struct {
	limit int
	ivals intervalHeap
}

// NewWorkspace creates a Workspace which can hold up to limit subintervals.
func NewWorkspace(limit int) (*Workspace, error) {
	if limit < 1 {
		return nil, ErrBadLimit
	}
	return &Workspace{limit: limit, ivals: make([]interval, 0, 16)}, nil
}

// Limit returns the maximum number of subintervals the Workspace can hold.
func (ws *Workspace) Limit() int { return ws.limit }

// Len returns the number of subintervals used by the last integration.
func (ws *Workspace) Len() int { return len(ws.ivals) }

func (ws *Workspace) reset() { ws.ivals = ws.ivals[:0] }

// intervalHeap is a max-heap of subintervals ordered by error, so the
// interval to bisect next is always ivals[0].
type intervalHeap []interval

func (h intervalHeap) Len() int           { return len(h) }
func (h intervalHeap) Less(i, j int) bool { return h[i].err > h[j].err }
func (h intervalHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *intervalHeap) Push(x any) { *h = append(*h, x.(interval)) }

func (h *intervalHeap) Pop() any {
	old := *h
	iv := old[len(old)-1]
	*h = old[:len(old)-1]
	return iv
}

// bisect replaces the interval with the largest error by its two halves.
func (ws *Workspace) bisect(lo, hi interval) {
	ws.ivals[0] = lo
	heap.Fix(&ws.ivals, 0)
	heap.Push(&ws.ivals, hi)
}

func (ws *Workspace) sum() float64 {
	sum := 0.0
	for i := range ws.ivals {
		sum += ws.ivals[i].result
	}
	return sum
}

// ValidTolerance reports whether QAG can ever satisfy the given pair of
// tolerances.
func ValidTolerance(epsabs, epsrel float64) bool {
	return !(epsabs <= 0 && (epsrel < 50*dblEpsilon || epsrel < 0.5e-28))
}

func subintervalTooSmall(a1, a2, b2 float64) bool {
	tmp := (1 + 100*dblEpsilon) * (math.Abs(a2) + 1000*dblMin)
	return math.Abs(a1) <= tmp && math.Abs(b2) <= tmp
}
