package initializers

import (
	"fmt"
	"math"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/utils"
)

// Solution produces a flow state at a given time over the supplied
// coordinates. Implementations serve both as initial conditions and, where
// the analytic solution is known, as the divergence reference.
type Solution interface {
	Evaluate(t float64, x fields.Coordinates) fields.Conserved
	Name() string
}

// Lump is a Gaussian density lump advecting at constant velocity under
// uniform pressure, an exact solution of the inviscid flow equations.
type Lump struct {
	Rho0, RhoAmp, P0 float64
	Center, Velocity []float64
	Gamma            float64
}

func NewLump(gamma float64, center, velocity []float64) (l *Lump) {
	if len(center) != len(velocity) {
		panic(fmt.Errorf("center dimension %d does not match velocity dimension %d",
			len(center), len(velocity)))
	}
	l = &Lump{
		Rho0:     1.,
		RhoAmp:   1.,
		P0:       1.,
		Center:   center,
		Velocity: velocity,
		Gamma:    gamma,
	}
	return
}

func (l *Lump) Name() string { return "Lump" }

func (l *Lump) Evaluate(t float64, x fields.Coordinates) (q fields.Conserved) {
	var (
		dim    = len(l.Center)
		nCells = x[0].Len()
		vMag2  float64
	)
	q = fields.NewConserved(dim, nCells)
	for d := 0; d < dim; d++ {
		vMag2 += utils.POW(l.Velocity[d], 2)
	}
	var (
		rho  = q.Rho().DataP()
		ener = q.Energy().DataP()
	)
	for i := 0; i < nCells; i++ {
		var r2 float64
		for d := 0; d < dim; d++ {
			rel := x[d].AtVec(i) - (l.Center[d] + t*l.Velocity[d])
			r2 += utils.POW(rel, 2)
		}
		rho[i] = l.Rho0 + l.RhoAmp*math.Exp(1.-r2)
		ener[i] = l.P0/(l.Gamma-1.) + 0.5*rho[i]*vMag2
		for d := 0; d < dim; d++ {
			q.Momentum(d).SetVec(i, l.Velocity[d]*rho[i])
		}
	}
	return
}

// Uniform is a constant free-stream state.
type Uniform struct {
	Rho, P   float64
	Velocity []float64
	Gamma    float64
}

func NewUniform(gamma float64, velocity []float64) *Uniform {
	return &Uniform{
		Rho:      1.,
		P:        1.,
		Velocity: velocity,
		Gamma:    gamma,
	}
}

func (u *Uniform) Name() string { return "Uniform" }

func (u *Uniform) Evaluate(t float64, x fields.Coordinates) (q fields.Conserved) {
	var (
		dim    = len(u.Velocity)
		nCells = x[0].Len()
		vMag2  float64
	)
	q = fields.NewConserved(dim, nCells)
	for d := 0; d < dim; d++ {
		vMag2 += utils.POW(u.Velocity[d], 2)
	}
	ener := u.P/(u.Gamma-1.) + 0.5*u.Rho*vMag2
	for i := 0; i < nCells; i++ {
		q.Rho().SetVec(i, u.Rho)
		q.Energy().SetVec(i, ener)
		for d := 0; d < dim; d++ {
			q.Momentum(d).SetVec(i, u.Rho*u.Velocity[d])
		}
	}
	return
}

// AcousticPulse superimposes a Gaussian energy perturbation on a base state.
// The perturbed field has no closed-form evolution, so runs driven by it
// carry no divergence reference; Evaluate returns the t=0 profile.
type AcousticPulse struct {
	Amplitude, Width float64
	Center           []float64
	Base             Solution
}

func NewAcousticPulse(amplitude, width float64, center []float64, base Solution) *AcousticPulse {
	return &AcousticPulse{
		Amplitude: amplitude,
		Width:     width,
		Center:    center,
		Base:      base,
	}
}

func (p *AcousticPulse) Name() string { return "AcousticPulse" }

func (p *AcousticPulse) Evaluate(t float64, x fields.Coordinates) (q fields.Conserved) {
	q = p.Base.Evaluate(0, x)
	var (
		nCells = x[0].Len()
		ener   = q.Energy().DataP()
	)
	for i := 0; i < nCells; i++ {
		var r2 float64
		for d := range p.Center {
			r2 += utils.POW(x[d].AtVec(i)-p.Center[d], 2)
		}
		ener[i] += p.Amplitude * math.Exp(-0.5*r2/utils.POW(p.Width, 2))
	}
	return
}
