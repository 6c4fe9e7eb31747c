package ScalarWave3D

import (
	"github.com/notargets/gowave/ADM"
)

// PointState is everything the second order RHS needs at one point. All
// derivatives are with respect to global Cartesian coordinates.
type PointState struct {
	Alpha       float64
	Beta        [3]float64
	Gu          ADM.Metric // inverse spatial metric
	Christoffel ADM.Christoffel
	TraceK      float64
	Phi, KPhi   float64
	DPhi        [3]float64
	DDPhi       [3][3]float64
	DAlpha      [3]float64
	DKPhi       [3]float64
}

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// SecondOrderRHS evaluates
//
//	∂_t Φ   = -2α K_Φ + β^i ∂_iΦ
//	∂_t K_Φ = α K_Φ K - ½α (g^ij ∂_i∂_jΦ - g^ij Γ^k_ij ∂_kΦ) + ½α m² Φ
//	          - ½ g^ij ∂_iα ∂_jΦ + β^i ∂_i K_Φ
func SecondOrderRHS(ps *PointState, mass float64) (dPhi, dKPhi float64) {
	var (
		alpha = ps.Alpha
		gu    = ps.Gu
		gamma = ps.Christoffel.Contract(gu)
		lap   = gu.ContractMatrix(&ps.DDPhi) - dot(gamma, ps.DPhi)
	)
	dPhi = -2*alpha*ps.KPhi + dot(ps.Beta, ps.DPhi)
	dKPhi = alpha*ps.KPhi*ps.TraceK -
		0.5*alpha*lap +
		0.5*alpha*mass*mass*ps.Phi -
		0.5*gu.Quad(ps.DAlpha, ps.DPhi) +
		dot(ps.Beta, ps.DKPhi)
	return
}

// FluxPoint evaluates the pointwise part of the first order system, the time
// derivative of Φ and the flux F^i whose divergence drives Π:
//
//	∂_t Φ = β^i Ψ_i - α Π/√γ
//	F^i   = α √γ g^ij Ψ_j - β^i Π
func FluxPoint(alpha float64, beta [3]float64, gu ADM.Metric, sqrtGamma, Pi float64,
	Psi [3]float64) (dPhi float64, F [3]float64) {
	dPhi = dot(beta, Psi) - alpha*Pi/sqrtGamma
	up := gu.MulVec(Psi)
	for i := 0; i < 3; i++ {
		F[i] = alpha*sqrtGamma*up[i] - beta[i]*Pi
	}
	return
}

// FluxRHS assembles the first order RHS from the flux divergence and the
// gradient of ∂_tΦ:
//
//	∂_t Π   = -∂_i F^i + α √γ m² Φ
//	∂_t Ψ_i = ∂_i (∂_t Φ)
func FluxRHS(alpha, sqrtGamma, mass, Phi, divF float64, dDPhi [3]float64) (dPi float64, dPsi [3]float64) {
	dPi = -divF + alpha*sqrtGamma*mass*mass*Phi
	dPsi = dDPhi
	return
}

// KPhiFromTimeDerivative inverts ∂_tΦ = -2α K_Φ + β^i ∂_iΦ
func KPhiFromTimeDerivative(alpha float64, beta, dPhi [3]float64, dtPhi float64) float64 {
	return -(dtPhi - dot(beta, dPhi)) / (2 * alpha)
}
