package initializers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gomarch/eos"
)

func TestSodTube(t *testing.T) {
	var (
		sod = NewSodTube(1.4, 0.5)
		gas = eos.NewIdealGas(1.4)
	)
	{ // At t=0 the diaphragm separates the two resting states
		q := sod.Evaluate(0, coords(0.25, 0.75))
		assert.Equal(t, 1., q.Rho().AtVec(0))
		assert.Equal(t, 0.125, q.Rho().AtVec(1))
		p := gas.Pressure(q)
		assert.True(t, near(1, p.AtVec(0)))
		assert.True(t, near(0.1, p.AtVec(1)))
		assert.Equal(t, 0., q.Momentum(0).AtVec(0))
	}
	{ // The similarity solution at t=0.2 hits the textbook star values
		q := sod.Evaluate(0.2, coords(0.1, 0.4, 0.55, 0.75, 0.95))
		var (
			p   = gas.Pressure(q)
			rho = q.Rho()
			u   = q.Momentum(0).Copy().ElDiv(q.Rho())
		)
		// Undisturbed ends
		assert.True(t, near(1, rho.AtVec(0)))
		assert.True(t, near(0.125, rho.AtVec(4)))
		assert.True(t, near(0, u.AtVec(4)))
		// Between rarefaction tail and contact
		assert.True(t, near(0.42632, rho.AtVec(2), 1.e-4))
		assert.True(t, near(0.30313, p.AtVec(2), 1.e-4))
		assert.True(t, near(0.92745, u.AtVec(2), 1.e-4))
		// Between contact and shock: same pressure and velocity, denser gas
		assert.True(t, near(0.26557, rho.AtVec(3), 1.e-4))
		assert.True(t, near(0.30313, p.AtVec(3), 1.e-4))
		assert.True(t, near(0.92745, u.AtVec(3), 1.e-4))
	}
	{ // The rarefaction fan is isentropic and carries the left invariant
		q := sod.Evaluate(0.2, coords(0.3, 0.35, 0.4, 0.45))
		var (
			p  = gas.Pressure(q)
			c  = gas.SoundSpeed(q)
			u  = q.Momentum(0).Copy().ElDiv(q.Rho())
			cL = math.Sqrt(1.4)
		)
		for i := 0; i < 4; i++ {
			assert.True(t, near(math.Pow(q.Rho().AtVec(i), 1.4), p.AtVec(i), 1.e-10))
			assert.True(t, near(2*cL/0.4, u.AtVec(i)+2*c.AtVec(i)/0.4, 1.e-10))
		}
	}
}
