package ScalarWave3D

import (
	"fmt"
	"math"

	"github.com/notargets/gowave/InputParameters"
	"github.com/notargets/gowave/geometry3D"
	"github.com/notargets/gowave/grid"
	"github.com/notargets/gowave/utils"
)

// Boundary fills ghost zones of the evolved fields before each RHS evaluation
// and applies the radiative override to the RHS afterwards
type Boundary struct {
	Types  [6]utils.BCType
	Exact  ExactSolution // Required by BCAnalytic
	sw     *ScalarWave
	ghosts [6]utils.Index // Ghost indices per face, used by BCAnalytic
	layers [6]utils.Index // Outermost interior layer per face, used by BCRadiative
}

func NewBoundary(sw *ScalarWave, types [6]utils.BCType, exact ExactSolution) (b *Boundary, err error) {
	b = &Boundary{
		Types: types,
		Exact: exact,
		sw:    sw,
	}
	for dir := 0; dir < 3; dir++ {
		lo, hi := types[2*dir], types[2*dir+1]
		if (lo == utils.BCPeriodic) != (hi == utils.BCPeriodic) {
			err = fmt.Errorf("periodic boundaries must be paired, direction %d has %s and %s", dir, lo, hi)
			return
		}
	}
	p := sw.Patch
	for f := utils.XLower; f <= utils.ZUpper; f++ {
		if need := types[f].MinPoints(p.Ghost); p.N[f.Dir()] < need {
			err = fmt.Errorf("%w: %s boundary on face %s needs %d points along the normal with %d ghost zones, have %d",
				InputParameters.ErrInvalidParameter, types[f], f, need, p.Ghost, p.N[f.Dir()])
			return
		}
		switch types[f] {
		case utils.BCAnalytic:
			if exact == nil {
				err = fmt.Errorf("analytic boundary on face %s needs an exact solution", f)
				return
			}
			b.ghosts[f] = faceGhosts(p, f)
		case utils.BCRadiative:
			b.layers[f] = p.BoundaryLayer(f)
		}
	}
	return
}

// faceGhosts lists the ghost points beyond face f over the full tangential
// extent
func faceGhosts(p *grid.Patch, f utils.Face) (I utils.Index) {
	var (
		dir = f.Dir()
	)
	p.ForEachNonInterior(func(ind, i, j, k int) {
		ijk := [3]int{i, j, k}
		if f.IsUpper() && ijk[dir] >= p.Ghost+p.N[dir] {
			I = append(I, ind)
		}
		if !f.IsUpper() && ijk[dir] < p.Ghost {
			I = append(I, ind)
		}
	})
	return
}

// FillGhosts brings the ghost zones of state up to date for time t. Faces are
// processed x, then y, then z so edges and corners pick up already filled
// values.
func (b *Boundary) FillGhosts(state *grid.Arena, t float64) {
	var (
		p      = b.sw.Patch
		form   = b.sw.Formulation
		fields = make([]grid.GridFunction, state.NumFields())
	)
	for n := range fields {
		fields[n] = state.Field(n)
	}
	for f := utils.XLower; f <= utils.ZUpper; f++ {
		switch b.Types[f] {
		case utils.BCPeriodic:
			p.FillPeriodic(f, fields...)
		case utils.BCReflecting, utils.BCSymmetry:
			parity := form.Parity(f.Dir())
			for n, u := range fields {
				par := parity[n]
				if b.Types[f] == utils.BCSymmetry {
					par = -par
				}
				p.FillMirror(f, par, u)
			}
		case utils.BCRadiative:
			p.FillExtrapolate(f, fields...)
		case utils.BCAnalytic:
			b.sw.FillExact(state, b.Exact, t, b.ghosts[f]...)
		}
	}
}

// ApplyRHS overrides the RHS on the outermost interior layer of radiative
// faces with the outgoing Sommerfeld condition for a field falling off as
// 1/r,
//
//	∂_t u = -(x^i/r) ∂_i u - u/r
func (b *Boundary) ApplyRHS(state, rhs *grid.Arena) {
	var (
		sw = b.sw
		op = sw.Op
	)
	for f := utils.XLower; f <= utils.ZUpper; f++ {
		if b.Types[f] != utils.BCRadiative {
			continue
		}
		for _, ind := range b.layers[f] {
			var (
				X    = sw.Jac.Position(ind)
				r    = math.Sqrt(dot(X, X))
				J, _ = sw.Jac.At(ind)
			)
			for n := 0; n < state.NumFields(); n++ {
				u := state.Field(n)
				du := op.Gradient(u, ind)
				if !sw.Jac.Cartesian {
					du = geometry3D.TransformGradient(&J, du)
				}
				rhs.Field(n)[ind] = -dot(X, du)/r - u[ind]/r
			}
		}
	}
}

// ParseBCs maps six face names to boundary types, in face order
func ParseBCs(names [6]string) (types [6]utils.BCType, err error) {
	for f, name := range names {
		if types[f], err = utils.ParseBCName(name); err != nil {
			err = fmt.Errorf("face %s: %w", utils.Face(f), err)
			return
		}
	}
	return
}
