package FD3D

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedOrder   = errors.New("unsupported finite difference order")
	ErrInsufficientGhosts = errors.New("insufficient ghost zones")
)

// Order is the accuracy order of the centred stencils, one of 4, 6 or 8
type Order int

const (
	Order4 Order = 4
	Order6 Order = 6
	Order8 Order = 8
)

func NewOrder(n int) (o Order, err error) {
	switch Order(n) {
	case Order4, Order6, Order8:
		o = Order(n)
	default:
		err = fmt.Errorf("%w: fd_order = %d, must be one of 4, 6, 8", ErrUnsupportedOrder, n)
	}
	return
}

// Width is the number of neighbours used on each side of a point
func (o Order) Width() int { return int(o) / 2 }

// DissipationWidth is the stencil half width of the matching Kreiss-Oliger
// operator
func (o Order) DissipationWidth() int { return o.Width() + 1 }

func (o Order) String() string { return fmt.Sprintf("O(h^%d)", int(o)) }

// Stencil holds the coefficients of one centred derivative. C0 multiplies the
// centre point, C[m-1] the pair of points at distance m. For a first
// derivative the pair is antisymmetric (f[+m] - f[-m]), for the second
// derivative symmetric (f[+m] + f[-m]).
type Stencil struct {
	C0 float64
	C  []float64
}

var firstDerivative = map[Order]Stencil{
	Order4: {C: []float64{2. / 3., -1. / 12.}},
	Order6: {C: []float64{3. / 4., -3. / 20., 1. / 60.}},
	Order8: {C: []float64{4. / 5., -1. / 5., 4. / 105., -1. / 280.}},
}

var secondDerivative = map[Order]Stencil{
	Order4: {C0: -5. / 2., C: []float64{4. / 3., -1. / 12.}},
	Order6: {C0: -49. / 18., C: []float64{3. / 2., -3. / 20., 1. / 90.}},
	Order8: {C0: -205. / 72., C: []float64{8. / 5., -1. / 5., 8. / 315., -1. / 560.}},
}

// Coefficients returns the stencil for derivative deriv (1 or 2) at order o
func Coefficients(deriv int, o Order) (s Stencil, err error) {
	var ok bool
	switch deriv {
	case 1:
		s, ok = firstDerivative[o]
	case 2:
		s, ok = secondDerivative[o]
	default:
		err = fmt.Errorf("derivative order %d not available, must be 1 or 2", deriv)
		return
	}
	if !ok {
		err = fmt.Errorf("%w: %d", ErrUnsupportedOrder, int(o))
	}
	return
}
