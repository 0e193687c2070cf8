package euler

import (
	"fmt"
	"math"

	"github.com/notargets/gomarch/eos"
	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/utils"
)

// InviscidOperator is a cell centered finite volume discretization of the
// compressible inviscid flow equations on one rank's partition, with Rusanov
// interface fluxes and a single halo cell exchanged with each neighbor rank.
type InviscidOperator struct {
	Mesh *Mesh1D
	Gas  eos.Gas
	BC   Boundary
	Comm utils.Communicator
	div  utils.CSR // signed interface difference, dq = div * fluxes
}

func NewInviscidOperator(msh *Mesh1D, gas eos.Gas, bc Boundary, comm utils.Communicator) (c *InviscidOperator) {
	var (
		oodx = 1. / msh.Dx
		dok  = utils.NewDOK(msh.K, msh.K+1).SetName("interface difference")
	)
	// Cell i is flanked by interfaces i and i+1: dq_i = (F_i - F_i+1)/dx
	for i := 0; i < msh.K; i++ {
		dok.Set(i, i, oodx)
		dok.Set(i, i+1, -oodx)
	}
	c = &InviscidOperator{
		Mesh: msh,
		Gas:  gas,
		BC:   bc,
		Comm: comm,
		div:  dok.ToCSR(),
	}
	return
}

func (c *InviscidOperator) Dim() int { return 1 }

func (c *InviscidOperator) Nodes() fields.Coordinates { return c.Mesh.Nodes() }

// Derivative returns the flux divergence of q at time t, the right hand side
// of the semi-discrete system.
func (c *InviscidOperator) Derivative(t float64, q fields.Conserved) (dq fields.Conserved, err error) {
	var (
		K = c.Mesh.K
	)
	if q.Dim != 1 {
		err = fmt.Errorf("operator is one dimensional, state has dimension %d", q.Dim)
		return
	}
	if q.Len() != K {
		err = fmt.Errorf("state has %d cells, partition has %d", q.Len(), K)
		return
	}
	qx := c.extendWithHalo(t, q)
	var (
		// Primitives over the K+2 extended cells
		U    = qx.Momentum(0).Copy().ElDiv(qx.Rho())
		Pres = c.Gas.Pressure(qx)
		CS   = c.Gas.SoundSpeed(qx)

		rho, ener, mom = qx.Rho().DataP(), qx.Energy().DataP(), qx.Momentum(0).DataP()
		u, p, cs       = U.DataP(), Pres.DataP(), CS.DataP()

		fRho  = utils.NewVector(K + 1)
		fEner = utils.NewVector(K + 1)
		fMom  = utils.NewVector(K + 1)
	)
	for f := 0; f < K+1; f++ {
		var (
			l, r = f, f + 1 // extended cells flanking interface f
			lam  = math.Max(math.Abs(u[l])+cs[l], math.Abs(u[r])+cs[r])
		)
		fRho.SetVec(f, 0.5*(mom[l]+mom[r])-0.5*lam*(rho[r]-rho[l]))
		fEner.SetVec(f, 0.5*(u[l]*(ener[l]+p[l])+u[r]*(ener[r]+p[r]))-0.5*lam*(ener[r]-ener[l]))
		fMom.SetVec(f, 0.5*(mom[l]*u[l]+p[l]+mom[r]*u[r]+p[r])-0.5*lam*(mom[r]-mom[l]))
	}
	dq = fields.Conserved{
		Dim: 1,
		Q: []utils.Vector{
			c.div.MulVec(fRho),
			c.div.MulVec(fEner),
			c.div.MulVec(fMom),
		},
	}
	return
}

// StableTimestep returns the largest stable dt for the given CFL number,
// min-reduced so every rank steps together.
func (c *InviscidOperator) StableTimestep(q fields.Conserved, cfl float64) (dt float64) {
	sMax := q.Momentum(0).Copy().ElDiv(q.Rho()).Apply(math.Abs).Add(c.Gas.SoundSpeed(q)).Max()
	dt = cfl * c.Mesh.Dx / sMax
	dt = c.Comm.AllReduceMin(dt)
	return
}

// extendWithHalo builds the K+2 cell extended state: neighbor edge cells
// arrive through the communicator, domain ends come from the boundary.
func (c *InviscidOperator) extendWithHalo(t float64, q fields.Conserved) (qx fields.Conserved) {
	var (
		K           = c.Mesh.K
		left, right = c.neighbors()
	)
	qx = fields.NewConserved(q.Dim, K+2)
	for n := range q.Q {
		copy(qx.Q[n].DataP()[1:K+1], q.Q[n].DataP())
	}
	ghostL := c.Comm.SendRecv(left, c.edgeCell(q, 0), left)
	ghostR := c.Comm.SendRecv(right, c.edgeCell(q, K-1), right)
	xL, xR := c.Mesh.GhostCenters()
	if ghostL == nil {
		ghostL = c.BC.Ghost(t, xL, c.edgeCell(q, 0))
	}
	if ghostR == nil {
		ghostR = c.BC.Ghost(t, xR, c.edgeCell(q, K-1))
	}
	for n := range qx.Q {
		qx.Q[n].SetVec(0, ghostL[n])
		qx.Q[n].SetVec(K+1, ghostR[n])
	}
	return
}

func (c *InviscidOperator) neighbors() (left, right int) {
	var (
		rank, size = c.Comm.Rank(), c.Comm.Size()
	)
	left, right = rank-1, rank+1
	if right == size {
		right = -1
	}
	return
}

func (c *InviscidOperator) edgeCell(q fields.Conserved, i int) (cell []float64) {
	cell = make([]float64, q.NumFields())
	for n := range cell {
		cell[n] = q.Q[n].AtVec(i)
	}
	return
}
