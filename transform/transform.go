/*package transform implements the radial transforms of spherically symmetric
profiles: forward and inverse spherical Fourier transforms and the Abel
(line-of-sight) projection. Each transform evaluates one adaptive integral
per output coordinate and reports the integrator's own absolute error
estimate alongside every value.
*/
package transform

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/radprof/math/quad"
	"github.com/phil-mansfield/radprof/profile"
)

var (
	// ErrInvalidInput is returned for empty or mismatched arrays, invalid
	// tables, missing profiles and unachievable tolerances.
	ErrInvalidInput = profile.ErrInvalidInput
	// ErrAllocation is returned when an integration workspace cannot be
	// created.
	ErrAllocation = errors.New("workspace allocation failed")
	// ErrNonConvergence is returned when an integral does not reach the
	// requested tolerance within the subdivision limit.
	ErrNonConvergence = errors.New("integration did not converge")
)

// Tolerance controls the adaptive integrations of a transform. Limit is the
// maximum number of subintervals (or cycles, for Fourier integrals) of each
// integral.
type Tolerance struct {
	Limit          int
	EpsAbs, EpsRel float64
}

// Result holds the output of a transform. Errors may be nil if the error
// estimates are not needed.
type Result struct {
	Values, Errors []float64
}

// NewResult allocates a Result for n output points with room for error
// estimates.
func NewResult(n int) *Result {
	return &Result{make([]float64, n), make([]float64, n)}
}

// IntegrationError reports the output point at which a transform stopped.
// It matches ErrNonConvergence under errors.Is and unwraps to the error
// returned by the integrator.
type IntegrationError struct {
	Index int
	X     float64
	Err   error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf(
		"integration failed for point %d (x = %g): %s", e.Index, e.X, e.Err,
	)
}

func (e *IntegrationError) Unwrap() error { return e.Err }

func (e *IntegrationError) Is(target error) bool {
	return target == ErrNonConvergence
}

// checkOutput returns an error if out and outErr cannot hold one value for
// every element of xs.
func checkOutput(out, outErr, xs []float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("%w: no output coordinates", ErrInvalidInput)
	} else if len(out) != len(xs) {
		return fmt.Errorf(
			"%w: %d coordinates but output has length %d",
			ErrInvalidInput, len(xs), len(out),
		)
	} else if outErr != nil && len(outErr) != len(xs) {
		return fmt.Errorf(
			"%w: %d coordinates but error output has length %d",
			ErrInvalidInput, len(xs), len(outErr),
		)
	}
	return nil
}

// Workspace allocates an integration workspace for tol, translating
// failures into ErrAllocation.
func Workspace(tol Tolerance) (*quad.Workspace, error) {
	ws, err := quad.NewWorkspace(tol.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrAllocation, err.Error())
	}
	return ws, nil
}

// CheckQAG returns an error if tol cannot be used for a finite or infinite
// range integral.
func CheckQAG(tol Tolerance) error {
	if !quad.ValidTolerance(tol.EpsAbs, tol.EpsRel) {
		return fmt.Errorf(
			"%w: tolerance (epsabs = %g, epsrel = %g) cannot be achieved",
			ErrInvalidInput, tol.EpsAbs, tol.EpsRel,
		)
	}
	return nil
}

func checkQAWF(epsabs float64) error {
	if !(epsabs > 0) {
		return fmt.Errorf(
			"%w: Fourier transforms need a positive epsabs, got %g",
			ErrInvalidInput, epsabs,
		)
	}
	return nil
}

func scale(out, outErr []float64, factor float64) {
	for i := range out {
		out[i] *= factor
		if outErr != nil {
			outErr[i] *= factor
		}
	}
}
