package geometry3D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gowave/grid"
	"github.com/notargets/gowave/utils"
)

// JacobianField stores the inverse map derivatives of a coordinate map over a
// whole patch, ghosts included:
//
//	J[a][i]      = ∂ξ^a/∂x^i
//	DJ[a][SymIndex(i,j)] = ∂²ξ^a/∂x^i∂x^j
//
// X holds the global coordinates of every point.
type JacobianField struct {
	Patch     *grid.Patch
	Map       CoordinateMap
	Cartesian bool
	J         [3][3]grid.GridFunction
	DJ        [3][6]grid.GridFunction
	X         [3]grid.GridFunction
	arena     *grid.Arena
}

func NewJacobianField(p *grid.Patch, cm CoordinateMap) (jf *JacobianField, err error) {
	var (
		names []string
	)
	for a := 0; a < 3; a++ {
		for i := 0; i < 3; i++ {
			names = append(names, fmt.Sprintf("J%d%d", a, i))
		}
	}
	for a := 0; a < 3; a++ {
		for n := 0; n < 6; n++ {
			names = append(names, fmt.Sprintf("DJ%d%d", a, n))
		}
	}
	names = append(names, "x", "y", "z")
	jf = &JacobianField{
		Patch: p,
		Map:   cm,
		arena: grid.NewArena(p, names...),
	}
	_, jf.Cartesian = cm.(Cartesian)
	var nf int
	for a := 0; a < 3; a++ {
		for i := 0; i < 3; i++ {
			jf.J[a][i] = jf.arena.Field(nf)
			nf++
		}
	}
	for a := 0; a < 3; a++ {
		for n := 0; n < 6; n++ {
			jf.DJ[a][n] = jf.arena.Field(nf)
			nf++
		}
	}
	for n := 0; n < 3; n++ {
		jf.X[n] = jf.arena.Field(nf)
		nf++
	}
	var (
		F    = mat.NewDense(3, 3, nil)
		Finv = mat.NewDense(3, 3, nil)
	)
	for ind := 0; ind < p.Len(); ind++ {
		xi := p.Coord(p.IJK(ind))
		X := cm.Position(xi)
		for n := 0; n < 3; n++ {
			jf.X[n][ind] = X[n]
		}
		if jf.Cartesian {
			for a := 0; a < 3; a++ {
				jf.J[a][a][ind] = 1
			}
			continue
		}
		Fa := cm.Jacobian(xi)
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				F.Set(a, b, Fa[a][b])
			}
		}
		if err = Finv.Inverse(F); err != nil {
			err = fmt.Errorf("singular %s map Jacobian at ξ = %v: %w", cm.Name(), xi, err)
			return
		}
		var Ji [3][3]float64
		for a := 0; a < 3; a++ {
			for i := 0; i < 3; i++ {
				Ji[a][i] = Finv.At(a, i)
				jf.J[a][i][ind] = Ji[a][i]
			}
		}
		DJ := InverseHessian(Ji, cm.Hessian(xi))
		for a := 0; a < 3; a++ {
			for n := 0; n < 6; n++ {
				jf.DJ[a][n][ind] = DJ[a][n]
			}
		}
	}
	return
}

// InverseHessian converts the forward map Hessian into second derivatives of
// the inverse map, ∂²ξ^c/∂x^i∂x^j = -J[c][d] H[d][e][f] J[e][i] J[f][j].
func InverseHessian(J [3][3]float64, H [3][3][3]float64) (DJ [3][6]float64) {
	for n, ij := range utils.SymPairs {
		i, j := ij[0], ij[1]
		var t [3]float64 // t[d] = H[d][e][f] J[e][i] J[f][j]
		for d := 0; d < 3; d++ {
			for e := 0; e < 3; e++ {
				for f := 0; f < 3; f++ {
					t[d] += H[d][e][f] * J[e][i] * J[f][j]
				}
			}
		}
		for c := 0; c < 3; c++ {
			DJ[c][n] = -(J[c][0]*t[0] + J[c][1]*t[1] + J[c][2]*t[2])
		}
	}
	return
}

// At gathers the point values of J and DJ at flattened index ind
func (jf *JacobianField) At(ind int) (J [3][3]float64, DJ [3][6]float64) {
	for a := 0; a < 3; a++ {
		for i := 0; i < 3; i++ {
			J[a][i] = jf.J[a][i][ind]
		}
		for n := 0; n < 6; n++ {
			DJ[a][n] = jf.DJ[a][n][ind]
		}
	}
	return
}

func (jf *JacobianField) Position(ind int) [3]float64 {
	return [3]float64{jf.X[0][ind], jf.X[1][ind], jf.X[2][ind]}
}

// TransformGradient promotes computational derivatives to global ones,
// g_i = Σ_a J[a][i] l_a.
func TransformGradient(J *[3][3]float64, local [3]float64) (g [3]float64) {
	for i := 0; i < 3; i++ {
		g[i] = J[0][i]*local[0] + J[1][i]*local[1] + J[2][i]*local[2]
	}
	return
}

// TransformHessian promotes computational second derivatives to global ones,
//
//	H_ij = Σ_ab J[a][i] J[b][j] lH_ab + Σ_c DJ[c][ij] l_c
func TransformHessian(J *[3][3]float64, DJ *[3][6]float64, localGrad [3]float64,
	localHess [3][3]float64) (H [3][3]float64) {
	for n, ij := range utils.SymPairs {
		i, j := ij[0], ij[1]
		var sum float64
		for a := 0; a < 3; a++ {
			for b := 0; b < 3; b++ {
				sum += J[a][i] * J[b][j] * localHess[a][b]
			}
		}
		for c := 0; c < 3; c++ {
			sum += DJ[c][n] * localGrad[c]
		}
		H[i][j] = sum
		H[j][i] = sum
	}
	return
}

// VolumeElement is the global volume of a unit computational cell, 1/|det J|
func VolumeElement(J *[3][3]float64) float64 {
	det := J[0][0]*(J[1][1]*J[2][2]-J[1][2]*J[2][1]) -
		J[0][1]*(J[1][0]*J[2][2]-J[1][2]*J[2][0]) +
		J[0][2]*(J[1][0]*J[2][1]-J[1][1]*J[2][0])
	return 1 / math.Abs(det)
}
