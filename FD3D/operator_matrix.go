package FD3D

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DiffMatrix1D assembles the periodic n x n matrix of the centred derivative
// deriv (1 or 2) at order o on a line of spacing h.
func DiffMatrix1D(o Order, deriv, n int, h float64) (D *sparse.CSR, err error) {
	var (
		st Stencil
	)
	if st, err = Coefficients(deriv, o); err != nil {
		return
	}
	if n < 2*o.Width()+1 {
		err = fmt.Errorf("periodic matrix at order %d needs at least %d points, have %d",
			int(o), 2*o.Width()+1, n)
		return
	}
	if !(h > 0) {
		err = fmt.Errorf("spacing must be positive, have %g", h)
		return
	}
	var (
		dok   = sparse.NewDOK(n, n)
		scale = 1. / h
		sign  = -1.
	)
	if deriv == 2 {
		scale /= h
		sign = 1.
	}
	wrap := func(i int) int { return ((i % n) + n) % n }
	for i := 0; i < n; i++ {
		if st.C0 != 0 {
			dok.Set(i, i, st.C0*scale)
		}
		for m, c := range st.C {
			off := m + 1
			dok.Set(i, wrap(i+off), c*scale)
			dok.Set(i, wrap(i-off), sign*c*scale)
		}
	}
	D = dok.ToCSR()
	return
}

// SpectralRadius estimates the largest eigenvalue magnitude of a normal
// matrix by power iteration. The start vector is the grid scale mode with a
// small seeded random perturbation, so every eigenvector has a component.
func SpectralRadius(A mat.Matrix, iters int) (rho float64) {
	var (
		n, _ = A.Dims()
		x    = mat.NewVecDense(n, nil)
		y    = mat.NewVecDense(n, nil)
		rnd  = rand.New(rand.NewSource(1))
	)
	for i := 0; i < n; i++ {
		x.SetVec(i, math.Pow(-1, float64(i))+1.e-3*(rnd.Float64()-0.5))
	}
	x.ScaleVec(1/mat.Norm(x, 2), x)
	for it := 0; it < iters; it++ {
		y.MulVec(A, x)
		rho = mat.Norm(y, 2)
		if rho == 0 {
			return
		}
		x.ScaleVec(1/rho, y)
	}
	return
}
