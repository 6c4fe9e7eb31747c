package ScalarWave3D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowave/ADM"
	"github.com/notargets/gowave/FD3D"
	"github.com/notargets/gowave/geometry3D"
	"github.com/notargets/gowave/grid"
)

func TestRungeKutta4(t *testing.T) {
	p, err := grid.NewPatch([3]int{3, 2, 1}, 0, [3]float64{}, [3]float64{1, 1, 1})
	require.NoError(t, err)
	{ // Test the stability polynomial on du/dt = -u
		state := grid.NewArena(p, "u", "v")
		for i := range state.Data() {
			state.Data()[i] = float64(i + 1)
		}
		var (
			rk = NewRungeKutta4(state, 2)
			dt = 0.1
			R  = 1 - dt + dt*dt/2 - dt*dt*dt/6 + dt*dt*dt*dt/24
		)
		rk.Step(func(_ float64, s, r *grid.Arena) {
			for i, v := range s.Data() {
				r.Data()[i] = -v
			}
		}, 0, dt, state)
		for i, v := range state.Data() {
			assert.InDelta(t, R*float64(i+1), v, 1.e-14)
		}
	}
	{ // Test stage times, RK4 integrates a cubic in t exactly
		state := grid.NewArena(p, "u")
		rk := NewRungeKutta4(state, 0)
		tt, dt := 1., 0.25
		rk.Step(func(t float64, _, r *grid.Arena) {
			for i := range r.Data() {
				r.Data()[i] = 3 * t * t
			}
		}, tt, dt, state)
		for _, v := range state.Data() {
			assert.InDelta(t, math.Pow(tt+dt, 3)-math.Pow(tt, 3), v, 1.e-14)
		}
	}
}

func TestStableTimestep(t *testing.T) {
	{ // Test the flat space step against the D2 symbol at the grid scale
		var (
			p   = cube(t, 8, 2, 0, 1)
			sw  = newTestWave(t, p, Config{Order: FD3D.Order4}, geometry3D.Cartesian{}, ADM.Minkowski{})
			h   = p.Delta[0]
			rho = 16. / 3. / (h * h)
			CFL = 0.5
		)
		dt := sw.StableTimestep(CFL)
		assert.InEpsilon(t, CFL*2*math.Sqrt2/math.Sqrt(3*rho), dt, 1.e-6)

		fine := cube(t, 16, 2, 0, 1)
		swF := newTestWave(t, fine, Config{Order: FD3D.Order4}, geometry3D.Cartesian{}, ADM.Minkowski{})
		assert.InEpsilon(t, dt/2, swF.StableTimestep(CFL), 1.e-6)

		// Higher order stencils reach further along the imaginary axis
		p6 := cube(t, 8, 3, 0, 1)
		sw6 := newTestWave(t, p6, Config{Order: FD3D.Order6}, geometry3D.Cartesian{}, ADM.Minkowski{})
		assert.Less(t, sw6.StableTimestep(CFL), dt)
	}
	{ // Test slower characteristic speeds near a mass allow a larger step
		var (
			p  = cube(t, 8, 2, 1, 2)
			sw = newTestWave(t, p, Config{Order: FD3D.Order4}, geometry3D.Cartesian{}, ADM.Minkowski{})
			bh = newTestWave(t, p, Config{Order: FD3D.Order4}, geometry3D.Cartesian{}, ADM.Schwarzschild{Mass: 0.5})
		)
		assert.Greater(t, bh.StableTimestep(0.5), sw.StableTimestep(0.5))
	}
	{ // Test a shift adds to the characteristic speed
		var (
			p  = cube(t, 8, 2, 0, 1)
			sw = newTestWave(t, p, Config{Order: FD3D.Order4}, geometry3D.Cartesian{}, ADM.Minkowski{})
			mb = newTestWave(t, p, Config{Order: FD3D.Order4}, geometry3D.Cartesian{}, manufacturedBackground{Shift: true})
		)
		assert.Less(t, mb.StableTimestep(0.5), sw.StableTimestep(0.5)*1.2)
		assert.Greater(t, mb.StableTimestep(0.5), 0.)
	}
}
