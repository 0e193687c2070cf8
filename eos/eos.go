package eos

import (
	"math"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/utils"
)

// Gas supplies the derived quantities the flux, timestep and reporting paths
// need from an equation of state.
type Gas interface {
	Pressure(q fields.Conserved) utils.Vector
	Temperature(q fields.Conserved) utils.Vector
	SoundSpeed(q fields.Conserved) utils.Vector
	Name() string
}

const (
	DefaultGamma       = 1.4
	DefaultGasConstant = 287.1
)

// IdealGas is a single-species gamma-law gas.
type IdealGas struct {
	Gamma       float64
	GasConstant float64
}

func NewIdealGas(gamma float64) IdealGas {
	return IdealGas{
		Gamma:       gamma,
		GasConstant: DefaultGasConstant,
	}
}

func (g IdealGas) Name() string { return "IdealGas" }

// InternalEnergy returns rhoE less the kinetic energy, per cell.
func (g IdealGas) InternalEnergy(q fields.Conserved) (e utils.Vector) {
	ke := utils.NewVector(q.Len())
	for d := 0; d < q.Dim; d++ {
		ke.Add(q.Momentum(d).Copy().POW(2))
	}
	ke.ElDiv(q.Rho()).Scale(0.5)
	e = q.Energy().Copy().Subtract(ke)
	return
}

func (g IdealGas) Pressure(q fields.Conserved) (p utils.Vector) {
	p = g.InternalEnergy(q).Scale(g.Gamma - 1.)
	return
}

func (g IdealGas) Temperature(q fields.Conserved) (temp utils.Vector) {
	temp = g.Pressure(q).ElDiv(q.Rho()).Scale(1. / g.GasConstant)
	return
}

func (g IdealGas) SoundSpeed(q fields.Conserved) (c utils.Vector) {
	c = g.Pressure(q).ElDiv(q.Rho()).Scale(g.Gamma).Apply(math.Sqrt)
	return
}

// EnergyFor assembles the conserved energy for a cell given primitive values,
// the inverse of Pressure for initializer use.
func (g IdealGas) EnergyFor(rho, pressure, kineticEnergy float64) float64 {
	return pressure/(g.Gamma-1.) + kineticEnergy
}
