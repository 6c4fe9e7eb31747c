package ScalarWave3D

import (
	"math"

	"github.com/notargets/gowave/grid"
)

// FillExact writes the evolved variables of an exact solution at time t into
// state at the given flattened indices, using the current ADM data
func (sw *ScalarWave) FillExact(state *grid.Arena, es ExactSolution, t float64, inds ...int) {
	for _, ind := range inds {
		sw.fillExactPoint(state, es, t, ind)
	}
}

func (sw *ScalarWave) fillExactPoint(state *grid.Arena, es ExactSolution, t float64, ind int) {
	var (
		ep                 = es.Evaluate(sw.Jac.Position(ind), t)
		alpha, beta, g, _  = sw.ADM.At(ind)
		kphi               = KPhiFromTimeDerivative(alpha, beta, ep.Grad, ep.DtPhi)
	)
	state.Field(0)[ind] = ep.Phi
	switch sw.Formulation {
	case FirstOrderFlux:
		state.Field(1)[ind] = 2 * math.Sqrt(g.Det()) * kphi
		for i := 0; i < 3; i++ {
			state.Field(2 + i)[ind] = ep.Grad[i]
		}
	default:
		state.Field(1)[ind] = kphi
	}
}

// InitializeState fills every point of state, ghosts included, from an exact
// solution at time t
func (sw *ScalarWave) InitializeState(state *grid.Arena, es ExactSolution, t float64) {
	sw.Full.RunParallel(func(_, kMin, kMax int) {
		for ind := kMin; ind < kMax; ind++ {
			sw.fillExactPoint(state, es, t, ind)
		}
	})
}

// ExactRHS is the time derivative of the evolved variables of a flat space
// solution with unit lapse and zero shift, in arena order
func (sw *ScalarWave) ExactRHS(es ExactSolution, t float64, ind int) (rhs []float64) {
	ep := es.Evaluate(sw.Jac.Position(ind), t)
	switch sw.Formulation {
	case FirstOrderFlux:
		// Π = -∂_tΦ, Ψ_i = ∂_iΦ
		rhs = []float64{ep.DtPhi, -ep.DttPhi, ep.DtGrad[0], ep.DtGrad[1], ep.DtGrad[2]}
	default:
		// K_Φ = -½ ∂_tΦ
		rhs = []float64{ep.DtPhi, -0.5 * ep.DttPhi}
	}
	return
}
