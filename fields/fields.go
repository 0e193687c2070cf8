package fields

import (
	"fmt"

	"github.com/notargets/gomarch/utils"
)

var momentumLabels = []string{"rhoU", "rhoV", "rhoW"}

// Conserved bundles the conserved variables of a compressible flow on one
// rank's partition, one value per cell, laid out [Rho, RhoE, RhoU...].
type Conserved struct {
	Dim int
	Q   []utils.Vector
}

func NewConserved(dim, nCells int) (q Conserved) {
	if dim < 1 || dim > 3 {
		panic(fmt.Errorf("invalid dimension %d", dim))
	}
	q = Conserved{
		Dim: dim,
		Q:   make([]utils.Vector, dim+2),
	}
	for n := range q.Q {
		q.Q[n] = utils.NewVector(nCells)
	}
	return
}

func (q Conserved) Rho() utils.Vector    { return q.Q[0] }
func (q Conserved) Energy() utils.Vector { return q.Q[1] }
func (q Conserved) Momentum(d int) utils.Vector {
	return q.Q[2+d]
}

func (q Conserved) NumFields() int { return len(q.Q) }
func (q Conserved) Len() int       { return q.Q[0].Len() }

func (q Conserved) Copy() (r Conserved) {
	r = Conserved{
		Dim: q.Dim,
		Q:   make([]utils.Vector, len(q.Q)),
	}
	for n, v := range q.Q {
		r.Q[n] = v.Copy()
	}
	return
}

// Chainable in-place operations, used on integrator-owned scratch only
func (q Conserved) Scale(a float64) Conserved {
	for _, v := range q.Q {
		v.Scale(a)
	}
	return q
}

func (q Conserved) Add(a Conserved) Conserved {
	for n, v := range q.Q {
		v.Add(a.Q[n])
	}
	return q
}

func (q Conserved) AddScaled(c float64, a Conserved) Conserved {
	for n, v := range q.Q {
		v.AddScaled(c, a.Q[n])
	}
	return q
}

func (q Conserved) Subtract(a Conserved) Conserved {
	for n, v := range q.Q {
		v.Subtract(a.Q[n])
	}
	return q
}

// MaxAbsDiff returns the per-field maximum absolute difference against a,
// the divergence measure used by checkpoint reporting.
func (q Conserved) MaxAbsDiff(a Conserved) (errs []float64) {
	errs = make([]float64, len(q.Q))
	for n, v := range q.Q {
		errs[n] = v.Copy().Subtract(a.Q[n]).MaxAbs()
	}
	return
}

// IsValid reports whether every field is free of NaN and Inf values.
func (q Conserved) IsValid() bool {
	for _, v := range q.Q {
		if !v.IsValid() {
			return false
		}
	}
	return true
}

func (q Conserved) Label(n int) (label string) {
	switch {
	case n == 0:
		label = "rho"
	case n == 1:
		label = "rhoE"
	default:
		label = momentumLabels[n-2]
	}
	return
}

// Named returns the labeled conserved fields for visualization dumps.
func (q Conserved) Named() (fs []Named) {
	fs = make([]Named, len(q.Q))
	for n, v := range q.Q {
		fs[n] = Named{Label: q.Label(n), V: v}
	}
	return
}

// Named pairs a field array with its visualization label.
type Named struct {
	Label string
	V     utils.Vector
}

// Coordinates holds one spatial coordinate vector per dimension.
type Coordinates []utils.Vector
