package integrators

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gomarch/fields"
)

// decayRHS is dq/dt = -q, exact solution q0 * exp(-t).
type decayRHS struct{}

func (decayRHS) Derivative(t float64, q fields.Conserved) (fields.Conserved, error) {
	return q.Copy().Scale(-1), nil
}

type failingRHS struct{}

func (failingRHS) Derivative(t float64, q fields.Conserved) (fields.Conserved, error) {
	return fields.Conserved{}, fmt.Errorf("derivative blew up")
}

func ones() (q fields.Conserved) {
	q = fields.NewConserved(1, 1)
	for n := range q.Q {
		q.Q[n].SetVec(0, 1)
	}
	return
}

func TestNew(t *testing.T) {
	for name, want := range map[string]string{
		"":             "RK4",
		"RK4":          "RK4",
		"rk4":          "RK4",
		"LSERK4":       "LSERK4",
		"Euler":        "ForwardEuler",
		"forwardeuler": "ForwardEuler",
	} {
		ti, err := New(name)
		assert.NoError(t, err)
		assert.Equal(t, want, ti.Name())
	}
	_, err := New("leapfrog")
	assert.Error(t, err)
}

func TestStep(t *testing.T) {
	h := 0.1
	{ // RK4 one step matches its closed form 1 - h + h^2/2 - h^3/6 + h^4/24
		qNew, err := RK4{}.Step(decayRHS{}, ones(), 0, h)
		assert.NoError(t, err)
		want := 1 - h + h*h/2 - h*h*h/6 + h*h*h*h/24
		for n := range qNew.Q {
			assert.True(t, near(want, qNew.Q[n].AtVec(0), 1.e-14))
		}
	}
	{ // LSERK4 is fourth order, one step lands within h^5 of exp(-h)
		qNew, err := LSERK4{}.Step(decayRHS{}, ones(), 0, h)
		assert.NoError(t, err)
		assert.True(t, near(math.Exp(-h), qNew.Q[0].AtVec(0), 1.e-6))
		coarse := math.Abs(qNew.Q[0].AtVec(0) - math.Exp(-h))
		qHalf, _ := LSERK4{}.Step(decayRHS{}, ones(), 0, h/2)
		fine := math.Abs(qHalf.Q[0].AtVec(0) - math.Exp(-h/2))
		assert.True(t, fine < coarse)
	}
	{ // Forward Euler is 1 - h
		qNew, err := ForwardEuler{}.Step(decayRHS{}, ones(), 0, h)
		assert.NoError(t, err)
		assert.True(t, near(1-h, qNew.Q[0].AtVec(0), 1.e-15))
	}
	{ // Steps never mutate the input state
		for _, ti := range []Integrator{RK4{}, LSERK4{}, ForwardEuler{}} {
			q := ones()
			_, err := ti.Step(decayRHS{}, q, 0, h)
			assert.NoError(t, err)
			assert.Equal(t, 1., q.Q[0].AtVec(0), ti.Name())
		}
	}
	{ // Identical inputs give bit identical outputs
		for _, ti := range []Integrator{RK4{}, LSERK4{}, ForwardEuler{}} {
			a, _ := ti.Step(decayRHS{}, ones(), 0, h)
			b, _ := ti.Step(decayRHS{}, ones(), 0, h)
			for n := range a.Q {
				assert.Equal(t, a.Q[n].DataP(), b.Q[n].DataP(), ti.Name())
			}
		}
	}
	{ // Derivative errors propagate
		for _, ti := range []Integrator{RK4{}, LSERK4{}, ForwardEuler{}} {
			_, err := ti.Step(failingRHS{}, ones(), 0, h)
			assert.Error(t, err, ti.Name())
		}
	}
}

func near(a, b float64, tolI ...float64) (l bool) {
	var (
		tol float64
	)
	if len(tolI) == 0 {
		tol = 1.e-08
	} else {
		tol = tolI[0]
	}
	bound := math.Max(tol, tol*math.Abs(a))
	if math.Abs(a-b) <= bound {
		l = true
	}
	return
}
