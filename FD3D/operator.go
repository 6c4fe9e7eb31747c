package FD3D

import (
	"fmt"

	"github.com/notargets/gowave/grid"
)

// Operator evaluates centred derivatives of grid functions on one patch. The
// coefficient rows, strides and spacings are resolved once, so the per point
// methods carry no dispatch on the order.
type Operator struct {
	Patch  *grid.Patch
	Order  Order
	stride [3]int
	invH   [3]float64
	invH2  [3]float64
	d1, d2 Stencil
}

func NewOperator(p *grid.Patch, o Order) (op *Operator, err error) {
	if o, err = NewOrder(int(o)); err != nil {
		return
	}
	if p.Ghost < o.Width() {
		err = fmt.Errorf("%w: order %d needs %d ghost zones, patch has %d",
			ErrInsufficientGhosts, int(o), o.Width(), p.Ghost)
		return
	}
	op = &Operator{
		Patch: p,
		Order: o,
		d1:    firstDerivative[o],
		d2:    secondDerivative[o],
	}
	for n := 0; n < 3; n++ {
		op.stride[n] = p.Stride(n)
		op.invH[n] = 1. / p.Delta[n]
		op.invH2[n] = op.invH[n] * op.invH[n]
	}
	return
}

// D1 is the first derivative of f along dir at flattened index ind
func (op *Operator) D1(f grid.GridFunction, ind, dir int) (d float64) {
	var (
		s = op.stride[dir]
	)
	for m, c := range op.d1.C {
		off := (m + 1) * s
		d += c * (f[ind+off] - f[ind-off])
	}
	return d * op.invH[dir]
}

// D2 is the second derivative of f along dir at flattened index ind
func (op *Operator) D2(f grid.GridFunction, ind, dir int) (d float64) {
	var (
		s = op.stride[dir]
	)
	d = op.d2.C0 * f[ind]
	for m, c := range op.d2.C {
		off := (m + 1) * s
		d += c * (f[ind+off] + f[ind-off])
	}
	return d * op.invH2[dir]
}

// D11 is the mixed second derivative along d1 and d2, the tensor product of
// the first derivative stencils. Equal directions use D2.
func (op *Operator) D11(f grid.GridFunction, ind, d1, d2 int) (d float64) {
	if d1 == d2 {
		return op.D2(f, ind, d1)
	}
	var (
		s1, s2 = op.stride[d1], op.stride[d2]
	)
	for m, cm := range op.d1.C {
		o1 := (m + 1) * s1
		var inner float64
		for n, cn := range op.d1.C {
			o2 := (n + 1) * s2
			inner += cn * (f[ind+o1+o2] - f[ind+o1-o2] - f[ind-o1+o2] + f[ind-o1-o2])
		}
		d += cm * inner
	}
	return d * op.invH[d1] * op.invH[d2]
}

func (op *Operator) Gradient(f grid.GridFunction, ind int) (g [3]float64) {
	for n := 0; n < 3; n++ {
		g[n] = op.D1(f, ind, n)
	}
	return
}

// Hessian returns the full symmetric matrix of second derivatives
func (op *Operator) Hessian(f grid.GridFunction, ind int) (H [3][3]float64) {
	for a := 0; a < 3; a++ {
		H[a][a] = op.D2(f, ind, a)
		for b := a + 1; b < 3; b++ {
			H[a][b] = op.D11(f, ind, a, b)
			H[b][a] = H[a][b]
		}
	}
	return
}
