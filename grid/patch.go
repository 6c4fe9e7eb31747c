package grid

import (
	"fmt"
)

// GridFunction is a dense array of reals over the full, ghost inclusive,
// extent of a patch. All grid functions on a patch share the same shape.
type GridFunction []float64

// Patch describes a uniform structured block of points in computational
// coordinates. Index triples (i,j,k) always include the ghost offset, so
// interior points run from Ghost to Ghost+N-1 in each direction.
type Patch struct {
	N      [3]int     // Interior points per direction
	Ghost  int        // Ghost zone width, same in every direction
	Dims   [3]int     // N + 2*Ghost
	Origin [3]float64 // Computational coordinate of the first interior point
	Delta  [3]float64 // Uniform spacing
}

func NewPatch(N [3]int, Ghost int, Origin, Delta [3]float64) (p *Patch, err error) {
	for n := 0; n < 3; n++ {
		if N[n] < 1 {
			err = fmt.Errorf("patch needs at least one interior point per direction, have N = %v", N)
			return
		}
		if !(Delta[n] > 0) {
			err = fmt.Errorf("patch spacing must be positive, have Delta = %v", Delta)
			return
		}
	}
	if Ghost < 0 {
		err = fmt.Errorf("ghost width must be non-negative, have %d", Ghost)
		return
	}
	p = &Patch{
		N:      N,
		Ghost:  Ghost,
		Origin: Origin,
		Delta:  Delta,
	}
	for n := 0; n < 3; n++ {
		p.Dims[n] = N[n] + 2*Ghost
	}
	return
}

// NewPatchFromBounds places N cell centered points in each direction between
// XMin and XMax, so the faces of the box sit half a cell outside the first
// and last interior points.
func NewPatchFromBounds(N [3]int, Ghost int, XMin, XMax [3]float64) (p *Patch, err error) {
	var (
		origin, delta [3]float64
	)
	for n := 0; n < 3; n++ {
		if N[n] < 1 {
			err = fmt.Errorf("patch needs at least one interior point per direction, have N = %v", N)
			return
		}
		delta[n] = (XMax[n] - XMin[n]) / float64(N[n])
		origin[n] = XMin[n] + 0.5*delta[n]
	}
	return NewPatch(N, Ghost, origin, delta)
}

func (p *Patch) Len() int { return p.Dims[0] * p.Dims[1] * p.Dims[2] }

func (p *Patch) Index(i, j, k int) int { return i + p.Dims[0]*(j+p.Dims[1]*k) }

func (p *Patch) IJK(ind int) (i, j, k int) {
	i = ind % p.Dims[0]
	ind /= p.Dims[0]
	j = ind % p.Dims[1]
	k = ind / p.Dims[1]
	return
}

// Stride is the flattened index offset between neighbours in direction dir
func (p *Patch) Stride(dir int) int {
	switch dir {
	case 0:
		return 1
	case 1:
		return p.Dims[0]
	default:
		return p.Dims[0] * p.Dims[1]
	}
}

func (p *Patch) InteriorLen() int { return p.N[0] * p.N[1] * p.N[2] }

// InteriorIJK maps an interior ordinal in [0, InteriorLen) to full indices
func (p *Patch) InteriorIJK(n int) (i, j, k int) {
	i = n%p.N[0] + p.Ghost
	n /= p.N[0]
	j = n%p.N[1] + p.Ghost
	k = n/p.N[1] + p.Ghost
	return
}

func (p *Patch) InteriorIndex(n int) int {
	i, j, k := p.InteriorIJK(n)
	return p.Index(i, j, k)
}

func (p *Patch) IsInterior(i, j, k int) bool {
	var (
		g = p.Ghost
	)
	return i >= g && i < g+p.N[0] &&
		j >= g && j < g+p.N[1] &&
		k >= g && k < g+p.N[2]
}

// Coord returns the computational coordinate of a full index triple
func (p *Patch) Coord(i, j, k int) (xi [3]float64) {
	ijk := [3]int{i, j, k}
	for n := 0; n < 3; n++ {
		xi[n] = p.Origin[n] + float64(ijk[n]-p.Ghost)*p.Delta[n]
	}
	return
}

func (p *Patch) CellVolume() float64 { return p.Delta[0] * p.Delta[1] * p.Delta[2] }

func (p *Patch) NewGridFunction() GridFunction { return make(GridFunction, p.Len()) }

func (p *Patch) String() string {
	return fmt.Sprintf("N = %v, Ghost = %d, Origin = %v, Delta = %v", p.N, p.Ghost, p.Origin, p.Delta)
}
