package ScalarWave3D

import (
	"github.com/notargets/gowave/grid"
	"github.com/notargets/gowave/utils"
)

// RHSFunc evaluates the full right hand side, boundaries included, of state
// at time t into rhs
type RHSFunc func(t float64, state, rhs *grid.Arena)

// RungeKutta4 is the classic four stage integrator over whole arenas
type RungeKutta4 struct {
	stage, acc, k *grid.Arena
	pm            *utils.PartitionMap
}

func NewRungeKutta4(state *grid.Arena, ProcLimit int) (rk *RungeKutta4) {
	N := len(state.Data())
	rk = &RungeKutta4{
		stage: state.Clone(),
		acc:   state.Clone(),
		k:     state.Clone(),
		pm:    utils.NewPartitionMap(utils.GetParallelDegree(ProcLimit, N), N),
	}
	return
}

// axpy sets y = x + a*k over the whole buffer
func (rk *RungeKutta4) axpy(y, x []float64, a float64, k []float64) {
	rk.pm.RunParallel(func(_, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			y[i] = x[i] + a*k[i]
		}
	})
}

// Step advances state from t to t+dt in place
func (rk *RungeKutta4) Step(f RHSFunc, t, dt float64, state *grid.Arena) {
	var (
		y          = state.Data()
		s, acc, kD = rk.stage.Data(), rk.acc.Data(), rk.k.Data()
	)
	rk.acc.CopyFrom(state)
	f(t, state, rk.k)
	rk.axpy(acc, acc, dt/6, kD)
	rk.axpy(s, y, 0.5*dt, kD)

	f(t+0.5*dt, rk.stage, rk.k)
	rk.axpy(acc, acc, dt/3, kD)
	rk.axpy(s, y, 0.5*dt, kD)

	f(t+0.5*dt, rk.stage, rk.k)
	rk.axpy(acc, acc, dt/3, kD)
	rk.axpy(s, y, dt, kD)

	f(t+dt, rk.stage, rk.k)
	rk.axpy(y, acc, dt/6, kD)
}
