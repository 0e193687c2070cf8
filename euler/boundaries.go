package euler

import (
	"fmt"
	"strings"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/initializers"
	"github.com/notargets/gomarch/utils"
)

// Boundary supplies the ghost cell state beyond a domain end. The interior
// argument is the edge cell laid out like the conserved state,
// [rho, rhoE, rhoU].
type Boundary interface {
	Ghost(t, xGhost float64, interior []float64) (ghost []float64)
}

func NewBoundary(name string, sol initializers.Solution) (bc Boundary, err error) {
	switch strings.ToLower(name) {
	case "", "wall":
		bc = WallBoundary{}
	case "prescribed":
		if sol == nil {
			err = fmt.Errorf("prescribed boundary requires an initializer solution")
			return
		}
		bc = PrescribedBoundary{Sol: sol}
	default:
		err = fmt.Errorf("unknown boundary type %q", name)
	}
	return
}

// WallBoundary is a slip wall: density and energy mirror the interior, the
// momentum reflects.
type WallBoundary struct{}

func (WallBoundary) Ghost(t, xGhost float64, interior []float64) (ghost []float64) {
	ghost = make([]float64, len(interior))
	copy(ghost, interior)
	for n := 2; n < len(ghost); n++ {
		ghost[n] = -ghost[n]
	}
	return
}

// PrescribedBoundary fills the ghost cell from an analytic solution
// evaluated at the ghost center.
type PrescribedBoundary struct {
	Sol initializers.Solution
}

func (b PrescribedBoundary) Ghost(t, xGhost float64, interior []float64) (ghost []float64) {
	var (
		x = fields.Coordinates{utils.NewVector(1, []float64{xGhost})}
		q = b.Sol.Evaluate(t, x)
	)
	ghost = make([]float64, len(interior))
	for n := range ghost {
		ghost[n] = q.Q[n].AtVec(0)
	}
	return
}
