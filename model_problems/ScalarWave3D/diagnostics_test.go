package ScalarWave3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gowave/ADM"
	"github.com/notargets/gowave/FD3D"
	"github.com/notargets/gowave/geometry3D"
	"github.com/notargets/gowave/utils"
)

func TestDiagnostics(t *testing.T) {
	var (
		mass = 0.5
		A    = 0.7
		pw   = NewPlaneWave(A, 0.1, [3]float64{2 * math.Pi, 2 * math.Pi, 2 * math.Pi}, mass)
		p    = cube(t, 16, 3, 0, 1)
	)
	for _, form := range []Formulation{SecondOrder, FirstOrderFlux} {
		sw := newTestWave(t, p, Config{Order: FD3D.Order6, Mass: mass, Formulation: form},
			geometry3D.Cartesian{}, ADM.Minkowski{})
		state := sw.NewState()
		sw.InitializeState(state, pw, 0)
		{ // Test the box energy of a plane wave, ½ A² ω² per unit volume
			assert.InEpsilon(t, 0.5*A*A*pw.Omega*pw.Omega, sw.TotalEnergy(state), 1.e-3)
		}
		{ // Test energy density and stress energy against the exact solution
			se := NewStressEnergy(p)
			eps := p.NewGridFunction()
			sw.AccumulateStressEnergy(state, se)
			sw.AccumulateEnergyDensity(state, eps)
			scale := A * A * pw.Omega * pw.Omega
			for n := 0; n < p.InteriorLen(); n++ {
				var (
					ind = p.InteriorIndex(n)
					ep  = pw.Evaluate(sw.Jac.Position(ind), 0)
					L   = -ep.DtPhi*ep.DtPhi + dot(ep.Grad, ep.Grad) + mass*mass*ep.Phi*ep.Phi
				)
				// Flat space T_tt is the energy density
				assert.InDelta(t, eps[ind], se.Ttt[ind], 1.e-12*scale)
				assert.InDelta(t, 0.5*(ep.DtPhi*ep.DtPhi+dot(ep.Grad, ep.Grad)+mass*mass*ep.Phi*ep.Phi),
					eps[ind], 1.e-3*scale)
				for i := 0; i < 3; i++ {
					assert.InDelta(t, ep.DtPhi*ep.Grad[i], se.Tti[i][ind], 1.e-3*scale)
				}
				for m, ij := range utils.SymPairs {
					i, j := ij[0], ij[1]
					expected := ep.Grad[i] * ep.Grad[j]
					if i == j {
						expected -= 0.5 * L
					}
					assert.InDelta(t, expected, se.Tij[m][ind], 1.e-3*scale)
				}
			}
			{ // Test accumulation is additive
				before := append([]float64(nil), eps...)
				sw.AccumulateEnergyDensity(state, eps)
				for n := 0; n < p.InteriorLen(); n++ {
					ind := p.InteriorIndex(n)
					assert.Equal(t, 2*before[ind], eps[ind])
				}
			}
		}
		{ // Test the solution error norms
			out := p.NewGridFunction()
			Linf, L2 := sw.SolutionError(state, pw, 0, out)
			assert.Equal(t, 0., Linf)
			assert.Equal(t, 0., L2)
			ind := p.InteriorIndex(17)
			state.Field(0)[ind] += 1.e-3
			Linf, L2 = sw.SolutionError(state, pw, 0, out)
			assert.InDelta(t, 1.e-3, Linf, 1.e-15)
			assert.InEpsilon(t, 1.e-3/math.Sqrt(float64(p.InteriorLen())), L2, 1.e-9)
			assert.InDelta(t, 1.e-3, out[ind], 1.e-15)
		}
	}
}

func TestCurvilinearEnergy(t *testing.T) {
	// Φ = x with K_Φ = 0 has ε = ½ everywhere, so the total energy is half
	// the global volume of the mapped box
	var (
		cm = geometry3D.Sinusoidal{Amplitude: 0.1, WaveNumber: 2}
		p  = cube(t, 12, 4, 0, 1)
		sw = newTestWave(t, p, Config{Order: FD3D.Order8}, cm, ADM.Minkowski{})
	)
	state := sw.NewState()
	for ind := 0; ind < p.Len(); ind++ {
		state.Field(0)[ind] = sw.Jac.Position(ind)[0]
	}
	var volume float64
	for n := 0; n < p.InteriorLen(); n++ {
		xi := p.Coord(p.InteriorIJK(n))
		F := cm.Jacobian(xi)
		det := F[0][0]*(F[1][1]*F[2][2]-F[1][2]*F[2][1]) -
			F[0][1]*(F[1][0]*F[2][2]-F[1][2]*F[2][0]) +
			F[0][2]*(F[1][0]*F[2][1]-F[1][1]*F[2][0])
		volume += det * p.CellVolume()
	}
	assert.InEpsilon(t, 0.5*volume, sw.TotalEnergy(state), 1.e-6)
}
