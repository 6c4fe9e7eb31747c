package FD3D

import (
	"fmt"

	"github.com/notargets/gowave/grid"
	"github.com/notargets/gowave/utils"
)

// Dissipation is Kreiss-Oliger artificial dissipation matched to a stencil
// order N. The added term is
//
//	Q u = sigma (-1)^(r+1) h^(2r-1) / 2^(2r) (D+ D-)^r u,  r = N/2 + 1
//
// summed over directions, which damps the grid scale mode at rate sigma/h
// and leaves the interior scheme accurate to O(h^N).
type Dissipation struct {
	Sigma  float64
	R      int
	coeff  []float64 // binomial weights for offsets -R..R
	stride [3]int
	scale  [3]float64
}

func NewDissipation(p *grid.Patch, o Order, sigma float64) (kd *Dissipation, err error) {
	if o, err = NewOrder(int(o)); err != nil {
		return
	}
	if sigma < 0 {
		err = fmt.Errorf("dissipation strength must be non-negative, have %g", sigma)
		return
	}
	r := o.DissipationWidth()
	if p.Ghost < r {
		err = fmt.Errorf("%w: dissipation at order %d needs %d ghost zones, patch has %d",
			ErrInsufficientGhosts, int(o), r, p.Ghost)
		return
	}
	kd = &Dissipation{
		Sigma: sigma,
		R:     r,
		coeff: make([]float64, 2*r+1),
	}
	// (D+ D-)^r h^(2r) has weights (-1)^(r+m) C(2r, r+m)
	for m := -r; m <= r; m++ {
		kd.coeff[m+r] = utils.Sign(r+m) * binomial(2*r, r+m)
	}
	pre := utils.Sign(r+1) * sigma / utils.POW(2, 2*r)
	for n := 0; n < 3; n++ {
		kd.stride[n] = p.Stride(n)
		kd.scale[n] = pre / p.Delta[n]
	}
	return
}

// Apply returns the dissipation term for f at flattened index ind
func (kd *Dissipation) Apply(f grid.GridFunction, ind int) (q float64) {
	for n := 0; n < 3; n++ {
		var (
			s   = kd.stride[n]
			sum float64
		)
		for m := -kd.R; m <= kd.R; m++ {
			sum += kd.coeff[m+kd.R] * f[ind+m*s]
		}
		q += kd.scale[n] * sum
	}
	return
}

func binomial(n, k int) (b float64) {
	b = 1
	for i := 1; i <= k; i++ {
		b *= float64(n-k+i) / float64(i)
	}
	return
}
