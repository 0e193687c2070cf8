package steppers

import (
	"errors"
	"fmt"
	"math"

	"github.com/notargets/gomarch/checkpoint"
	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/integrators"
)

var (
	ErrDiverged   = errors.New("solution diverged from reference")
	ErrIncomplete = errors.New("final time not reached")
)

// timeEps is the relative tolerance for declaring the final time reached;
// accumulated rounding leaves the clock short of t_final by a few ulps.
const timeEps = 1.e-12

// TimestepFunc yields the dt for the next step given the current state and
// time. A non-positive return means there is nothing left to do.
type TimestepFunc func(q fields.Conserved, t float64) float64

// CheckpointFunc observes the state at (step, t). force bypasses interval
// gating for the terminal report.
type CheckpointFunc func(step int, t, dt float64, q fields.Conserved, force bool) checkpoint.Result

// StableTimestepper is the stability computation a discretization supplies
// for constant CFL stepping.
type StableTimestepper interface {
	StableTimestep(q fields.Conserved, cfl float64) float64
}

// TimestepSelector picks the next dt, fixed or CFL-derived, clipped so the
// final step lands exactly on TFinal.
type TimestepSelector struct {
	DT          float64 // fixed step size when ConstantCFL is false
	CFL         float64
	TFinal      float64
	ConstantCFL bool
	Stable      StableTimestepper // required in constant CFL mode
}

func (ts *TimestepSelector) NextDT(q fields.Conserved, t float64) (dt float64) {
	dt = ts.DT
	if ts.ConstantCFL {
		dt = ts.Stable.StableTimestep(q, ts.CFL)
	}
	if t+dt > ts.TFinal {
		dt = ts.TFinal - t
	}
	return
}

type Status int

const (
	Completed Status = iota
	Diverged
	Failed
)

func (s Status) String() string {
	switch s {
	case Completed:
		return "completed"
	case Diverged:
		return "diverged"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Result is the terminal outcome of a stepping run. On divergence, Step, T
// and Q hold the last valid point before the offending step was taken.
type Result struct {
	Status    Status
	Step      int
	T         float64
	Q         fields.Conserved
	MaxErrors []float64
	Err       error
}

// Advance drives q from t to tFinal, reporting at the checkpoint cadence
// before each step and once more, forced, on every exit path. Divergence
// aborts the loop; upstream errors from the right hand side fail it. The
// step counter increments by one per iteration and t by the dt used.
func Advance(rhs integrators.RightHandSide, stepper integrators.Integrator,
	nextDT TimestepFunc, checkpointFn CheckpointFunc,
	q fields.Conserved, t, tFinal float64) (r Result) {
	var (
		step int
		dt   float64
		eps  = timeEps * math.Max(1., math.Abs(tFinal))
	)
	for tFinal-t > eps {
		dt = nextDT(q, t)
		if dt <= 0 || t+dt == t {
			break
		}
		res := checkpointFn(step, t, dt, q, false)
		if res.Status == checkpoint.StatusDiverged {
			r = Result{
				Status:    Diverged,
				Step:      step,
				T:         t,
				Q:         q,
				MaxErrors: res.MaxErrors,
				Err:       ErrDiverged,
			}
			checkpointFn(step, t, dt, q, true)
			return
		}
		qNew, err := stepper.Step(rhs, q, t, dt)
		if err != nil {
			r = Result{
				Status: Failed,
				Step:   step,
				T:      t,
				Q:      q,
				Err:    fmt.Errorf("advancing from step %d, t=%v: %w", step, t, err),
			}
			checkpointFn(step, t, dt, q, true)
			return
		}
		q = qNew
		t += dt
		step++
	}
	r = Result{Status: Completed, Step: step, T: t, Q: q}
	if tFinal-t > eps {
		r.Status = Failed
		r.Err = fmt.Errorf("%w: stopped at t=%v of %v", ErrIncomplete, t, tFinal)
	}
	checkpointFn(step, t, dt, q, true)
	return
}
