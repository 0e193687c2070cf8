package integrators

import (
	"fmt"
	"strings"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/utils"
)

// RightHandSide computes d(state)/dt at a point in time. Implementations
// carry their own discretization, boundary and gas-model context.
type RightHandSide interface {
	Derivative(t float64, q fields.Conserved) (fields.Conserved, error)
}

// Integrator advances a state by one explicit step. Implementations never
// mutate the input state and are deterministic for identical inputs.
type Integrator interface {
	Step(rhs RightHandSide, q fields.Conserved, t, dt float64) (fields.Conserved, error)
	Name() string
}

func New(name string) (ti Integrator, err error) {
	switch strings.ToLower(name) {
	case "", "rk4":
		ti = RK4{}
	case "lserk4":
		ti = LSERK4{}
	case "euler", "forwardeuler":
		ti = ForwardEuler{}
	default:
		err = fmt.Errorf("unknown time integrator %q", name)
	}
	return
}

// RK4 is the classic four stage Runge-Kutta method.
type RK4 struct{}

func (RK4) Name() string { return "RK4" }

func (RK4) Step(rhs RightHandSide, q fields.Conserved, t, dt float64) (qNew fields.Conserved, err error) {
	var (
		k1, k2, k3, k4 fields.Conserved
	)
	if k1, err = rhs.Derivative(t, q); err != nil {
		return
	}
	if k2, err = rhs.Derivative(t+0.5*dt, q.Copy().AddScaled(0.5*dt, k1)); err != nil {
		return
	}
	if k3, err = rhs.Derivative(t+0.5*dt, q.Copy().AddScaled(0.5*dt, k2)); err != nil {
		return
	}
	if k4, err = rhs.Derivative(t+dt, q.Copy().AddScaled(dt, k3)); err != nil {
		return
	}
	qNew = q.Copy().
		AddScaled(dt/6., k1).
		AddScaled(dt/3., k2).
		AddScaled(dt/3., k3).
		AddScaled(dt/6., k4)
	return
}

// LSERK4 is the five stage, fourth order low storage Runge-Kutta method of
// Carpenter and Kennedy.
type LSERK4 struct{}

func (LSERK4) Name() string { return "LSERK4" }

func (LSERK4) Step(rhs RightHandSide, q fields.Conserved, t, dt float64) (qNew fields.Conserved, err error) {
	var (
		rhsQ  fields.Conserved
		resid = fields.NewConserved(q.Dim, q.Len())
	)
	qNew = q.Copy()
	for INTRK := 0; INTRK < 5; INTRK++ {
		timeLocal := t + dt*utils.RK4c[INTRK]
		if rhsQ, err = rhs.Derivative(timeLocal, qNew); err != nil {
			qNew = fields.Conserved{}
			return
		}
		// resid = rk4a(INTRK) * resid + dt * rhsq
		resid.Scale(utils.RK4a[INTRK]).AddScaled(dt, rhsQ)
		// q += rk4b(INTRK) * resid
		qNew.AddScaled(utils.RK4b[INTRK], resid)
	}
	return
}

// ForwardEuler is the single stage first order method, useful for debugging
// new right hand sides at small dt.
type ForwardEuler struct{}

func (ForwardEuler) Name() string { return "ForwardEuler" }

func (ForwardEuler) Step(rhs RightHandSide, q fields.Conserved, t, dt float64) (qNew fields.Conserved, err error) {
	var (
		k fields.Conserved
	)
	if k, err = rhs.Derivative(t, q); err != nil {
		return
	}
	qNew = q.Copy().AddScaled(dt, k)
	return
}
