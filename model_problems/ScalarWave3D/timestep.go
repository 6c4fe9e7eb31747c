package ScalarWave3D

import (
	"math"

	"github.com/notargets/gowave/FD3D"
)

// stabilityRadiusRK4 is the extent of the classic RK4 stability region along
// the imaginary axis
var stabilityRadiusRK4 = 2 * math.Sqrt2

// StableTimestep returns CFL times the largest RK4 step for the current ADM
// data. The spectral radius of the second derivative matrix along each
// computational direction is combined with the largest characteristic speed
// along that direction,
//
//	dt = CFL 2√2 / √(Σ_a ρ_a s_a²),  s_a = max (|J^a_i β^i| + α √(J^a_i g^ij J^a_j))
func (sw *ScalarWave) StableTimestep(CFL float64) (dt float64) {
	var (
		p     = sw.Patch
		o     = sw.Order
		nMat  = 2*o.Width() + 8 // even, so the grid scale mode is periodic
		speed [3]float64
		sum   float64
	)
	for n := 0; n < p.InteriorLen(); n++ {
		ind := p.InteriorIndex(n)
		alpha, beta, g, _ := sw.ADM.At(ind)
		gu, _ := g.Inverse()
		J, _ := sw.Jac.At(ind)
		for a := 0; a < 3; a++ {
			s := math.Abs(dot(J[a], beta)) + math.Abs(alpha)*math.Sqrt(gu.Quad(J[a], J[a]))
			speed[a] = math.Max(speed[a], s)
		}
	}
	for a := 0; a < 3; a++ {
		D2, err := FD3D.DiffMatrix1D(o, 2, nMat, p.Delta[a])
		if err != nil {
			panic(err)
		}
		rho := FD3D.SpectralRadius(D2, 50)
		sum += rho * speed[a] * speed[a]
	}
	if !(sum > 0) || math.IsInf(sum, 0) {
		return 0
	}
	dt = CFL * stabilityRadiusRK4 / math.Sqrt(sum)
	return
}
