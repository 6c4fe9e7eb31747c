package ScalarWave3D

import (
	"math"

	"github.com/notargets/gowave/ADM"
	"github.com/notargets/gowave/geometry3D"
	"github.com/notargets/gowave/grid"
	"github.com/notargets/gowave/utils"
)

// StressEnergy holds the ten components of T_μν of the field, written only
// at interior points
type StressEnergy struct {
	Arena *grid.Arena
	Ttt   grid.GridFunction
	Tti   [3]grid.GridFunction
	Tij   [6]grid.GridFunction
}

func NewStressEnergy(p *grid.Patch) (se *StressEnergy) {
	se = &StressEnergy{
		Arena: grid.NewArena(p, "ttt", "ttx", "tty", "ttz",
			"txx", "txy", "txz", "tyy", "tyz", "tzz"),
	}
	se.Ttt = se.Arena.Field(0)
	for i := 0; i < 3; i++ {
		se.Tti[i] = se.Arena.Field(1 + i)
	}
	for n := 0; n < 6; n++ {
		se.Tij[n] = se.Arena.Field(4 + n)
	}
	return
}

// fieldPoint is the field, its normal derivative and its global gradient at
// one interior point
type fieldPoint struct {
	alpha     float64
	beta      [3]float64
	g, gu     ADM.Metric
	sqrtGamma float64
	phi       float64
	pin       float64 // n^μ ∂_μΦ = -2 K_Φ
	dphi      [3]float64
}

func (sw *ScalarWave) fieldPointAt(state *grid.Arena, ind int) (fp fieldPoint) {
	var (
		det float64
	)
	fp.alpha, fp.beta, fp.g, _ = sw.ADM.At(ind)
	fp.gu, det = fp.g.Inverse()
	fp.sqrtGamma = math.Sqrt(det)
	fp.phi = state.Field(0)[ind]
	switch sw.Formulation {
	case FirstOrderFlux:
		fp.pin = -state.Field(1)[ind] / fp.sqrtGamma
		for i := 0; i < 3; i++ {
			fp.dphi[i] = state.Field(2 + i)[ind]
		}
	default:
		fp.pin = -2 * state.Field(1)[ind]
		fp.dphi = sw.Op.Gradient(state.Field(0), ind)
		if !sw.Jac.Cartesian {
			J, _ := sw.Jac.At(ind)
			fp.dphi = geometry3D.TransformGradient(&J, fp.dphi)
		}
	}
	return
}

// energyDensity is ε = ½ (Π_n² + g^ij ∂_iΦ ∂_jΦ + m²Φ²)
func (fp *fieldPoint) energyDensity(mass float64) float64 {
	return 0.5 * (fp.pin*fp.pin + fp.gu.Quad(fp.dphi, fp.dphi) + mass*mass*fp.phi*fp.phi)
}

// AccumulateStressEnergy adds
//
//	T_μν = ∂_μΦ ∂_νΦ - ½ g_μν (g^αβ ∂_αΦ ∂_βΦ + m²Φ²)
//
// into se at every interior point. se must be zeroed before the first
// contribution.
func (sw *ScalarWave) AccumulateStressEnergy(state *grid.Arena, se *StressEnergy) {
	sw.Interior.RunParallel(func(_, kMin, kMax int) {
		for n := kMin; n < kMax; n++ {
			var (
				ind   = sw.Patch.InteriorIndex(n)
				fp    = sw.fieldPointAt(state, ind)
				dtPhi = fp.alpha*fp.pin + dot(fp.beta, fp.dphi)
				L     = -fp.pin*fp.pin + fp.gu.Quad(fp.dphi, fp.dphi) + sw.Mass*sw.Mass*fp.phi*fp.phi
				betaL = fp.g.MulVec(fp.beta)
				gtt   = -fp.alpha*fp.alpha + dot(betaL, fp.beta)
			)
			se.Ttt[ind] += dtPhi*dtPhi - 0.5*gtt*L
			for i := 0; i < 3; i++ {
				se.Tti[i][ind] += dtPhi*fp.dphi[i] - 0.5*betaL[i]*L
			}
			for m, ij := range utils.SymPairs {
				i, j := ij[0], ij[1]
				se.Tij[m][ind] += fp.dphi[i]*fp.dphi[j] - 0.5*fp.g[m]*L
			}
		}
	})
}

// AccumulateEnergyDensity adds ε into eps at every interior point
func (sw *ScalarWave) AccumulateEnergyDensity(state *grid.Arena, eps grid.GridFunction) {
	sw.Interior.RunParallel(func(_, kMin, kMax int) {
		for n := kMin; n < kMax; n++ {
			ind := sw.Patch.InteriorIndex(n)
			fp := sw.fieldPointAt(state, ind)
			eps[ind] += fp.energyDensity(sw.Mass)
		}
	})
}

// TotalEnergy integrates ε √γ over the interior of the patch with the
// midpoint rule in global volume
func (sw *ScalarWave) TotalEnergy(state *grid.Arena) (E float64) {
	var (
		partial = make([]float64, sw.Interior.ParallelDegree)
		dV      = sw.Patch.CellVolume()
	)
	sw.Interior.RunParallel(func(np, kMin, kMax int) {
		for n := kMin; n < kMax; n++ {
			ind := sw.Patch.InteriorIndex(n)
			fp := sw.fieldPointAt(state, ind)
			vol := dV
			if !sw.Jac.Cartesian {
				J, _ := sw.Jac.At(ind)
				vol *= geometry3D.VolumeElement(&J)
			}
			partial[np] += fp.energyDensity(sw.Mass) * fp.sqrtGamma * vol
		}
	})
	for _, e := range partial {
		E += e
	}
	return
}

// SolutionError writes Φ - Φ_exact into out at every interior point and
// returns the maximum and root mean square of the difference
func (sw *ScalarWave) SolutionError(state *grid.Arena, es ExactSolution, t float64,
	out grid.GridFunction) (Linf, L2 float64) {
	var (
		phi  = state.Field(0)
		maxs = make([]float64, sw.Interior.ParallelDegree)
		sums = make([]float64, sw.Interior.ParallelDegree)
	)
	sw.Interior.RunParallel(func(np, kMin, kMax int) {
		for n := kMin; n < kMax; n++ {
			ind := sw.Patch.InteriorIndex(n)
			ep := es.Evaluate(sw.Jac.Position(ind), t)
			d := phi[ind] - ep.Phi
			out[ind] = d
			maxs[np] = math.Max(maxs[np], math.Abs(d))
			sums[np] += d * d
		}
	})
	for np := range maxs {
		Linf = math.Max(Linf, maxs[np])
		L2 += sums[np]
	}
	L2 = math.Sqrt(L2 / float64(sw.Patch.InteriorLen()))
	return
}
