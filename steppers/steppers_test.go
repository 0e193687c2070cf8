package steppers

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gomarch/checkpoint"
	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/integrators"
)

// decayRHS is dq/dt = -q, exact solution q0 * exp(-t).
type decayRHS struct{}

func (decayRHS) Derivative(t float64, q fields.Conserved) (fields.Conserved, error) {
	return q.Copy().Scale(-1), nil
}

type failAfterRHS struct {
	tFail float64
}

func (r failAfterRHS) Derivative(t float64, q fields.Conserved) (fields.Conserved, error) {
	if t >= r.tFail {
		return fields.Conserved{}, fmt.Errorf("derivative blew up at t=%v", t)
	}
	return q.Copy().Scale(-1), nil
}

func ones() (q fields.Conserved) {
	q = fields.NewConserved(1, 1)
	for n := range q.Q {
		q.Q[n].SetVec(0, 1)
	}
	return
}

type call struct {
	step  int
	force bool
}

// recorder logs every checkpoint call and reports divergence from
// divergeAtStep on, mirroring how a reporter would judge the state.
func recorder(calls *[]call, divergeAtStep int) CheckpointFunc {
	return func(step int, t, dt float64, q fields.Conserved, force bool) (res checkpoint.Result) {
		*calls = append(*calls, call{step, force})
		if divergeAtStep >= 0 && step >= divergeAtStep && !force {
			res.Status = checkpoint.StatusDiverged
			res.MaxErrors = []float64{0.5, 0, 0}
		}
		return
	}
}

type stubStable struct {
	dt float64
}

func (s stubStable) StableTimestep(q fields.Conserved, cfl float64) float64 { return cfl * s.dt }

func TestTimestepSelector(t *testing.T) {
	q := ones()
	{ // Fixed dt passes through until the final time clips it
		ts := &TimestepSelector{DT: 0.03, TFinal: 0.1}
		assert.Equal(t, 0.03, ts.NextDT(q, 0))
		assert.InDelta(t, 0.01, ts.NextDT(q, 0.09), 1.e-12)
		assert.True(t, ts.NextDT(q, 0.2) <= 0)
	}
	{ // Constant CFL defers to the stability estimate
		ts := &TimestepSelector{CFL: 0.5, ConstantCFL: true, TFinal: 1, Stable: stubStable{dt: 0.2}}
		assert.InDelta(t, 0.1, ts.NextDT(q, 0), 1.e-15)
	}
	{ // The step never overshoots the final time
		ts := &TimestepSelector{DT: 0.07, TFinal: 1}
		for _, tNow := range []float64{0, 0.5, 0.95, 0.999999} {
			dt := ts.NextDT(q, tNow)
			assert.True(t, tNow+dt <= 1+1.e-12)
		}
	}
}

func TestAdvance(t *testing.T) {
	stepper, err := integrators.New("rk4")
	assert.NoError(t, err)
	{ // Ten hundredth steps land exactly on the final time
		var calls []call
		ts := &TimestepSelector{DT: 0.01, TFinal: 0.1}
		r := Advance(decayRHS{}, stepper, ts.NextDT, recorder(&calls, -1), ones(), 0, 0.1)
		assert.Equal(t, Completed, r.Status)
		assert.NoError(t, r.Err)
		assert.Equal(t, 10, r.Step)
		assert.InDelta(t, 0.1, r.T, 1.e-9)
		assert.InDelta(t, math.Exp(-0.1), r.Q.Q[0].AtVec(0), 1.e-8)
		// Checkpoint ran before every step plus one forced terminal report
		assert.Equal(t, 11, len(calls))
		for n := 0; n < 10; n++ {
			assert.Equal(t, call{n, false}, calls[n])
		}
		assert.Equal(t, call{10, true}, calls[10])
	}
	{ // A coarse dt is clipped on the last step, never overshooting
		var calls []call
		ts := &TimestepSelector{DT: 0.03, TFinal: 0.1}
		r := Advance(decayRHS{}, stepper, ts.NextDT, recorder(&calls, -1), ones(), 0, 0.1)
		assert.Equal(t, Completed, r.Status)
		assert.Equal(t, 4, r.Step) // three full steps and the clipped remainder
		assert.InDelta(t, 0.1, r.T, 1.e-9)
	}
	{ // Divergence aborts with the last valid state and a terminal report
		var calls []call
		ts := &TimestepSelector{DT: 0.01, TFinal: 0.1}
		r := Advance(decayRHS{}, stepper, ts.NextDT, recorder(&calls, 5), ones(), 0, 0.1)
		assert.Equal(t, Diverged, r.Status)
		assert.True(t, errors.Is(r.Err, ErrDiverged))
		assert.Equal(t, 5, r.Step)
		assert.InDelta(t, 0.05, r.T, 1.e-9)
		assert.Equal(t, []float64{0.5, 0, 0}, r.MaxErrors)
		assert.InDelta(t, math.Exp(-0.05), r.Q.Q[0].AtVec(0), 1.e-8)
		assert.Equal(t, call{5, true}, calls[len(calls)-1])
	}
	{ // Right hand side failures carry context and the last good state
		var calls []call
		ts := &TimestepSelector{DT: 0.01, TFinal: 0.1}
		r := Advance(failAfterRHS{tFail: 0.035}, stepper, ts.NextDT, recorder(&calls, -1), ones(), 0, 0.1)
		assert.Equal(t, Failed, r.Status)
		assert.Error(t, r.Err)
		assert.Contains(t, r.Err.Error(), "advancing from step 3")
		assert.Equal(t, 3, r.Step)
		assert.InDelta(t, 0.03, r.T, 1.e-9)
		assert.True(t, r.Q.IsValid())
		assert.Equal(t, call{3, true}, calls[len(calls)-1])
	}
	{ // A stalled selector fails as incomplete
		var calls []call
		zero := func(q fields.Conserved, tNow float64) float64 { return 0 }
		r := Advance(decayRHS{}, stepper, zero, recorder(&calls, -1), ones(), 0, 0.1)
		assert.Equal(t, Failed, r.Status)
		assert.True(t, errors.Is(r.Err, ErrIncomplete))
		assert.Equal(t, 0, r.Step)
		assert.Equal(t, []call{{0, true}}, calls)
	}
	{ // Nothing to do when already at the final time
		var calls []call
		ts := &TimestepSelector{DT: 0.01, TFinal: 0.1}
		r := Advance(decayRHS{}, stepper, ts.NextDT, recorder(&calls, -1), ones(), 0.1, 0.1)
		assert.Equal(t, Completed, r.Status)
		assert.Equal(t, 0, r.Step)
		assert.Equal(t, []call{{0, true}}, calls)
	}
}
