package ScalarWave3D

import (
	"fmt"
	"math"

	"github.com/notargets/gowave/ADM"
	"github.com/notargets/gowave/FD3D"
	"github.com/notargets/gowave/geometry3D"
	"github.com/notargets/gowave/grid"
	"github.com/notargets/gowave/utils"
)

type Config struct {
	Order       FD3D.Order
	Mass        float64 // field_mass, zero for a massless wave
	Formulation Formulation
	Dissipation float64 // Kreiss-Oliger strength, zero disables
	ProcLimit   int     // Maximum number of go routines, zero means one per CPU
}

// ScalarWave computes the RHS of the Klein-Gordon field on one patch. All
// configuration checks happen in NewScalarWave, RHS itself has no error path.
type ScalarWave struct {
	Config
	Patch        *grid.Patch
	Op           *FD3D.Operator
	KO           *FD3D.Dissipation
	Jac          *geometry3D.JacobianField
	ADM          *ADM.Fields
	Interior     *utils.PartitionMap // Partitions of the interior ordinal range
	Full         *utils.PartitionMap // Partitions of the full patch index range
	scratch      *grid.Arena         // Flux form intermediates: fx, fy, fz, dphi
	flux         [3]grid.GridFunction
	dtPhiScratch grid.GridFunction
}

func NewScalarWave(p *grid.Patch, cfg Config, jac *geometry3D.JacobianField,
	adm *ADM.Fields) (sw *ScalarWave, err error) {
	if jac.Patch != p || adm.Arena.Patch != p {
		err = fmt.Errorf("jacobian and ADM fields must live on the evolved patch")
		return
	}
	if math.IsNaN(cfg.Mass) || math.IsInf(cfg.Mass, 0) {
		err = fmt.Errorf("field_mass must be finite, have %g", cfg.Mass)
		return
	}
	sw = &ScalarWave{
		Config: cfg,
		Patch:  p,
		Jac:    jac,
		ADM:    adm,
	}
	if sw.Op, err = FD3D.NewOperator(p, cfg.Order); err != nil {
		return nil, err
	}
	if cfg.Dissipation != 0 {
		if sw.KO, err = FD3D.NewDissipation(p, cfg.Order, cfg.Dissipation); err != nil {
			return nil, err
		}
	}
	sw.Interior = utils.NewPartitionMap(utils.GetParallelDegree(cfg.ProcLimit, p.InteriorLen()), p.InteriorLen())
	sw.Full = utils.NewPartitionMap(utils.GetParallelDegree(cfg.ProcLimit, p.Len()), p.Len())
	if cfg.Formulation == FirstOrderFlux {
		sw.scratch = grid.NewArena(p, "fx", "fy", "fz", "dphi")
		for i := 0; i < 3; i++ {
			sw.flux[i] = sw.scratch.Field(i)
		}
		sw.dtPhiScratch = sw.scratch.Field(3)
	}
	return
}

// NewState allocates the evolved fields of the formulation on the patch
func (sw *ScalarWave) NewState() *grid.Arena {
	return grid.NewArena(sw.Patch, sw.Formulation.FieldNames()...)
}

// RHS fills rhs at every interior point from state. Ghost zones of state and
// of the ADM data must be current. Ghost values of rhs are left untouched.
func (sw *ScalarWave) RHS(state, rhs *grid.Arena) {
	switch sw.Formulation {
	case FirstOrderFlux:
		sw.Full.RunParallel(func(_, kMin, kMax int) {
			sw.fluxPass(state, kMin, kMax)
		})
		// All fluxes, including ghosts, are in place before any divergence
		sw.Interior.RunParallel(func(_, kMin, kMax int) {
			sw.fluxDivergencePass(state, rhs, kMin, kMax)
		})
	default:
		sw.Interior.RunParallel(func(_, kMin, kMax int) {
			sw.secondOrderPass(state, rhs, kMin, kMax)
		})
	}
	if sw.KO != nil {
		sw.Interior.RunParallel(func(_, kMin, kMax int) {
			sw.dissipationPass(state, rhs, kMin, kMax)
		})
	}
}

func (sw *ScalarWave) secondOrderPass(state, rhs *grid.Arena, kMin, kMax int) {
	var (
		phi, kphi   = state.Field(0), state.Field(1)
		dphi, dkphi = rhs.Field(0), rhs.Field(1)
	)
	for n := kMin; n < kMax; n++ {
		ind := sw.Patch.InteriorIndex(n)
		ps := sw.PointStateAt(ind, phi, kphi)
		dphi[ind], dkphi[ind] = SecondOrderRHS(&ps, sw.Mass)
	}
}

// PointStateAt gathers metric algebra and global derivatives at one interior
// point
func (sw *ScalarWave) PointStateAt(ind int, phi, kphi grid.GridFunction) (ps PointState) {
	var (
		op    = sw.Op
		adm   = sw.ADM
		dg    [3]ADM.Metric
		g, K  ADM.Metric
		J, DJ = sw.Jac.At(ind)
	)
	ps.Alpha, ps.Beta, g, K = adm.At(ind)
	ps.Gu, _ = g.Inverse()
	ps.TraceK = ADM.TraceK(ps.Gu, K)
	ps.Phi, ps.KPhi = phi[ind], kphi[ind]
	ps.DPhi = op.Gradient(phi, ind)
	ps.DDPhi = op.Hessian(phi, ind)
	ps.DAlpha = op.Gradient(adm.Alpha, ind)
	ps.DKPhi = op.Gradient(kphi, ind)
	for n := 0; n < 6; n++ {
		dgn := op.Gradient(adm.G[n], ind)
		if !sw.Jac.Cartesian {
			dgn = geometry3D.TransformGradient(&J, dgn)
		}
		for l := 0; l < 3; l++ {
			dg[l][n] = dgn[l]
		}
	}
	if !sw.Jac.Cartesian {
		ps.DDPhi = geometry3D.TransformHessian(&J, &DJ, ps.DPhi, ps.DDPhi)
		ps.DPhi = geometry3D.TransformGradient(&J, ps.DPhi)
		ps.DAlpha = geometry3D.TransformGradient(&J, ps.DAlpha)
		ps.DKPhi = geometry3D.TransformGradient(&J, ps.DKPhi)
	}
	ps.Christoffel = ADM.NewChristoffel(ps.Gu, &dg)
	return
}

func (sw *ScalarWave) fluxPass(state *grid.Arena, kMin, kMax int) {
	var (
		pi  = state.Field(1)
		psi = [3]grid.GridFunction{state.Field(2), state.Field(3), state.Field(4)}
	)
	for ind := kMin; ind < kMax; ind++ {
		alpha, beta, g, _ := sw.ADM.At(ind)
		gu, det := g.Inverse()
		dPhi, F := FluxPoint(alpha, beta, gu, math.Sqrt(det), pi[ind],
			[3]float64{psi[0][ind], psi[1][ind], psi[2][ind]})
		sw.dtPhiScratch[ind] = dPhi
		for i := 0; i < 3; i++ {
			sw.flux[i][ind] = F[i]
		}
	}
}

func (sw *ScalarWave) fluxDivergencePass(state, rhs *grid.Arena, kMin, kMax int) {
	var (
		op  = sw.Op
		phi = state.Field(0)
	)
	for n := kMin; n < kMax; n++ {
		var (
			ind   = sw.Patch.InteriorIndex(n)
			J, _  = sw.Jac.At(ind)
			dDPhi = op.Gradient(sw.dtPhiScratch, ind)
			divF  float64
		)
		alpha, _, g, _ := sw.ADM.At(ind)
		for i := 0; i < 3; i++ {
			dF := op.Gradient(sw.flux[i], ind)
			if !sw.Jac.Cartesian {
				dF = geometry3D.TransformGradient(&J, dF)
			}
			divF += dF[i]
		}
		if !sw.Jac.Cartesian {
			dDPhi = geometry3D.TransformGradient(&J, dDPhi)
		}
		dPi, dPsi := FluxRHS(alpha, math.Sqrt(g.Det()), sw.Mass, phi[ind], divF, dDPhi)
		rhs.Field(0)[ind] = sw.dtPhiScratch[ind]
		rhs.Field(1)[ind] = dPi
		for i := 0; i < 3; i++ {
			rhs.Field(2 + i)[ind] = dPsi[i]
		}
	}
}

func (sw *ScalarWave) dissipationPass(state, rhs *grid.Arena, kMin, kMax int) {
	for f := 0; f < state.NumFields(); f++ {
		var (
			u  = state.Field(f)
			du = rhs.Field(f)
		)
		for n := kMin; n < kMax; n++ {
			ind := sw.Patch.InteriorIndex(n)
			du[ind] += sw.KO.Apply(u, ind)
		}
	}
}
