package initializers

import (
	"math"

	"github.com/notargets/gomarch/fields"
	"github.com/notargets/gomarch/utils"
)

// Classic diaphragm states, left and right of X0
const (
	sodRhoL, sodPL = 1., 1.
	sodRhoR, sodPR = 0.125, 0.1
)

// SodTube is the shock tube of Sod: a diaphragm at X0 separating two resting
// gas states. Evaluate returns the analytic similarity solution, five regions
// bounded by the rarefaction head and tail, the contact and the shock, so the
// tube doubles as a divergence reference for shock capturing runs.
type SodTube struct {
	X0    float64
	Gamma float64

	pPost float64 // post shock pressure, solved once at construction
}

func NewSodTube(gamma, x0 float64) (s *SodTube) {
	s = &SodTube{X0: x0, Gamma: gamma}
	s.pPost = s.solvePostPressure()
	return
}

func (s *SodTube) Name() string { return "SodTube" }

func (s *SodTube) Evaluate(t float64, x fields.Coordinates) (q fields.Conserved) {
	var (
		nCells  = x[0].Len()
		g       = s.Gamma
		mu2     = (g - 1) / (g + 1)
		cL      = math.Sqrt(g * sodPL / sodRhoL)
		pPost   = s.pPost
		vPost   = 2 * (math.Sqrt(g) / (g - 1)) * (1 - math.Pow(pPost, (g-1)/(2*g)))
		rhoPost = sodRhoR * ((pPost / sodPR) + mu2) / (1 + mu2*(pPost/sodPR))
		vShock  = vPost * (rhoPost / sodRhoR) / ((rhoPost / sodRhoR) - 1)
		rhoMid  = sodRhoL * math.Pow(pPost/sodPL, 1/g)
		cTail   = cL - 0.5*(g-1)*vPost
		// Wave positions at time t
		x1 = s.X0 - cL*t
		x2 = s.X0 + (vPost-cTail)*t
		x3 = s.X0 + vPost*t
		x4 = s.X0 + vShock*t
	)
	q = fields.NewConserved(1, nCells)
	for i := 0; i < nCells; i++ {
		var (
			xi        = x[0].AtVec(i)
			rho, p, u float64
		)
		switch {
		case xi < x1:
			rho, p, u = sodRhoL, sodPL, 0
		case t == 0:
			// All waves still sit on the diaphragm
			rho, p, u = sodRhoR, sodPR, 0
		case xi < x2:
			// Inside the rarefaction fan
			c := mu2*(s.X0-xi)/t + (1-mu2)*cL
			rho = sodRhoL * math.Pow(c/cL, 2/(g-1))
			p = sodPL * math.Pow(rho/sodRhoL, g)
			u = (1 - mu2) * ((xi-s.X0)/t + cL)
		case xi < x3:
			rho, p, u = rhoMid, pPost, vPost
		case xi < x4:
			rho, p, u = rhoPost, pPost, vPost
		default:
			rho, p, u = sodRhoR, sodPR, 0
		}
		q.Rho().SetVec(i, rho)
		q.Energy().SetVec(i, p/(g-1)+0.5*rho*u*u)
		q.Momentum(0).SetVec(i, rho*u)
	}
	return
}

// solvePostPressure bisects the shock jump residual between the right and
// left pressures; the residual is monotonic over that bracket.
func (s *SodTube) solvePostPressure() float64 {
	var (
		lo, hi = sodPR, sodPL
	)
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		if s.shockResidual(mid) > 0 {
			hi = mid
		} else {
			lo = mid
		}
	}
	return 0.5 * (lo + hi)
}

// shockResidual matches the velocity behind the shock, from the Rankine
// Hugoniot relations, against the one behind the rarefaction; its root is
// the post shock pressure.
func (s *SodTube) shockResidual(p float64) float64 {
	var (
		g   = s.Gamma
		mu2 = (g - 1) / (g + 1)
	)
	return (p-sodPR)*math.Sqrt(utils.POW(1-mu2, 2)/(sodRhoR*(p+mu2*sodPR))) -
		2*(math.Sqrt(g)/(g-1))*(1-math.Pow(p, (g-1)/(2*g)))
}
