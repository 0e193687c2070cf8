package checkpoint

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gomarch/eos"
	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/initializers"
	"github.com/notargets/gomarch/logging"
	"github.com/notargets/gomarch/utils"
)

// CheckStep reports whether step falls on the given interval. A zero
// interval is due every step, a negative interval never.
func CheckStep(step, interval int) bool {
	if interval == 0 {
		return true
	}
	if interval < 0 {
		return false
	}
	return step%interval == 0
}

type Status int

const (
	StatusOK Status = iota
	StatusDiverged
)

// Result carries the outcome of one checkpoint call. MaxErrors holds the
// per-field maximum absolute error against the reference when one is
// configured and status reporting ran.
type Result struct {
	Status    Status
	MaxErrors []float64
}

// Visualizer persists a named set of field arrays; the file format is the
// sink's business.
type Visualizer interface {
	Dump(basename string, step int, t float64, fs []fields.Named) error
}

// Reporter performs the periodic status and visualization work of a run. All
// collaborators are bound at construction; Checkpoint itself holds no state
// between calls.
type Reporter struct {
	Gas      eos.Gas
	Nodes    fields.Coordinates
	Exact    initializers.Solution // optional divergence reference
	Viz      Visualizer            // optional
	Log      logging.Logger
	Comm     utils.Communicator
	Casename string
	NStatus  int
	NViz     int
	ExitTol  float64
	CFL      float64
}

// Checkpoint emits status and visualization output when step falls on the
// configured intervals, or unconditionally when forced. Divergence beyond
// ExitTol is returned as a signal, never raised; the stepping loop decides
// what follows.
func (r *Reporter) Checkpoint(step int, t, dt float64, q fields.Conserved, force bool) (res Result) {
	var (
		doStatus = force || CheckStep(step, r.NStatus)
		doViz    = force || CheckStep(step, r.NViz)
	)
	if !doStatus && !doViz {
		return
	}
	var (
		pres      = r.Gas.Pressure(q)
		temp      = r.Gas.Temperature(q)
		expected  fields.Conserved
		haveExact bool
	)
	if r.Exact != nil {
		expected = r.Exact.Evaluate(t, r.Nodes)
		haveExact = true
	}
	if doStatus {
		res = r.status(step, t, dt, q, pres, temp, expected, haveExact)
	}
	if doViz {
		r.dump(step, t, q, pres, temp, expected, haveExact)
	}
	return
}

func (r *Reporter) status(step int, t, dt float64, q fields.Conserved,
	pres, temp utils.Vector, expected fields.Conserved, haveExact bool) (res Result) {
	msg := fmt.Sprintf("Status: Step(%6d) Time(%8.5f)", step, t)
	msg += fmt.Sprintf("\n------ P(%10.3e, %10.3e)", pres.Min(), pres.Max())
	msg += fmt.Sprintf("\n------ T(%10.3e, %10.3e)", temp.Min(), temp.Max())
	msg += fmt.Sprintf("\n------ dt,cfl = (%8.3e, %5.2f)", dt, r.CFL)
	if haveExact {
		res.MaxErrors = q.MaxAbsDiff(expected)
		// Reduce so every rank reaches the same verdict and aborts together
		for n := range res.MaxErrors {
			res.MaxErrors[n] = r.Comm.AllReduceMax(res.MaxErrors[n])
		}
		msg += fmt.Sprintf("\n------ Err(%s)", formatErrors(res.MaxErrors))
		worst := 0.
		for _, e := range res.MaxErrors {
			if math.IsNaN(e) || math.IsInf(e, 0) {
				worst = math.Inf(1)
				break
			}
			if e > worst {
				worst = e
			}
		}
		if worst > r.ExitTol {
			res.Status = StatusDiverged
		}
	} else if !q.IsValid() {
		res.Status = StatusDiverged
	}
	if r.Comm.Rank() == 0 {
		r.Log.Infof("%s", msg)
		if res.Status == StatusDiverged {
			if haveExact {
				r.Log.Errorf("solution diverged from %s reference at step %d, tolerance %v",
					r.Exact.Name(), step, r.ExitTol)
			} else {
				r.Log.Errorf("solution contains NaN or Inf values at step %d", step)
			}
		}
	}
	return
}

func (r *Reporter) dump(step int, t float64, q fields.Conserved,
	pres, temp utils.Vector, expected fields.Conserved, haveExact bool) {
	if r.Viz == nil {
		return
	}
	fs := q.Named()
	fs = append(fs,
		fields.Named{Label: "pressure", V: pres},
		fields.Named{Label: "temperature", V: temp},
	)
	if haveExact {
		resid := q.Copy().Subtract(expected)
		for n, f := range expected.Named() {
			fs = append(fs, fields.Named{Label: "exact_" + f.Label, V: f.V})
			fs = append(fs, fields.Named{Label: "resid_" + f.Label, V: resid.Q[n]})
		}
	}
	basename := fmt.Sprintf("%s-%04d-%04d", r.Casename, r.Comm.Rank(), step)
	if err := r.Viz.Dump(basename, step, t, fs); err != nil {
		r.Log.Errorf("visualization dump %s failed: %s", basename, err.Error())
	}
}

func formatErrors(errs []float64) string {
	strs := make([]string, len(errs))
	for n, e := range errs {
		strs[n] = fmt.Sprintf("%10.3e", e)
	}
	return strings.Join(strs, ",")
}
