package cosmo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHubbleFrac(t *testing.T) {
	assert.InDelta(t, 1, HubbleFrac(0.3, 0.7, 0), 1e-14)
	assert.InDelta(t, math.Sqrt(0.3*8+0.7), HubbleFrac(0.3, 0.7, 1), 1e-14)
}

func TestRhoCritical(t *testing.T) {
	assert.InEpsilon(t, RhoCritical0, RhoCritical(0.3, 1, 0), 1e-14)
	assert.InEpsilon(t, RhoCritical0*0.49, RhoCritical(0.27, 0.7, 0), 1e-14)
	assert.Greater(t, RhoCritical(0.3, 0.7, 1), RhoCritical(0.3, 0.7, 0))
}

func TestRDelta(t *testing.T) {
	m, delta := 1e14, 200.0
	r := RDelta(m, delta, 0.3, 0.7, 0)
	rho := m / (4 * math.Pi / 3 * r * r * r)
	assert.InEpsilon(t, delta*RhoCritical(0.3, 0.7, 0), rho, 1e-12)

	rm := RDeltaMean(m, delta, 0.3)
	assert.InEpsilon(t, m, MDeltaMean(rm, delta, 0.3), 1e-12)
	// The mean density is smaller than the critical density.
	assert.Greater(t, rm, RDelta(m, delta, 0.3, 1, 0))
}
