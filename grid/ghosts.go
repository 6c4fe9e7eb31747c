package grid

import (
	"github.com/notargets/gowave/utils"
)

// forEachGhost visits every ghost point beyond face f, across the full
// (ghost inclusive) extent of the two tangential directions. pos is the full
// index along the face normal of the ghost point, g its distance in points
// from the last interior point (1 .. Ghost), and base the flattened index
// with the normal component removed.
func (p *Patch) forEachGhost(f utils.Face, fn func(base, pos, g int)) {
	var (
		dir    = f.Dir()
		t1, t2 = (dir + 1) % 3, (dir + 2) % 3
		s      = p.Stride(dir)
		s1, s2 = p.Stride(t1), p.Stride(t2)
	)
	for b := 0; b < p.Dims[t2]; b++ {
		for a := 0; a < p.Dims[t1]; a++ {
			base := a*s1 + b*s2
			for g := 1; g <= p.Ghost; g++ {
				var pos int
				if f.IsUpper() {
					pos = p.Ghost + p.N[dir] - 1 + g
				} else {
					pos = p.Ghost - g
				}
				fn(base, pos*s, g)
			}
		}
	}
}

// FillPeriodic wraps ghost values of face f from the opposite side of the
// interior. Ghost zones wider than the interior wrap more than once.
func (p *Patch) FillPeriodic(f utils.Face, fields ...GridFunction) {
	var (
		dir = f.Dir()
		s   = p.Stride(dir)
		n   = p.N[dir]
	)
	p.forEachGhost(f, func(base, off, g int) {
		src := (p.Ghost + n - 1 - (g-1)%n) * s
		if f.IsUpper() {
			src = (p.Ghost + (g-1)%n) * s
		}
		for _, u := range fields {
			u[base+off] = u[base+src]
		}
	})
}

// FillMirror reflects interior values into the ghosts of face f about a
// plane half a cell outside the last interior point. parity is +1 for an
// even (Neumann) and -1 for an odd (Dirichlet) reflection.
func (p *Patch) FillMirror(f utils.Face, parity float64, fields ...GridFunction) {
	var (
		dir = f.Dir()
		s   = p.Stride(dir)
	)
	p.forEachGhost(f, func(base, off, g int) {
		src := off + (2*g-1)*s
		if f.IsUpper() {
			src = off - (2*g-1)*s
		}
		for _, u := range fields {
			u[base+off] = parity * u[base+src]
		}
	})
}

// FillExtrapolate fills the ghosts of face f by linear extrapolation from
// the last two interior points.
func (p *Patch) FillExtrapolate(f utils.Face, fields ...GridFunction) {
	var (
		dir = f.Dir()
		s   = p.Stride(dir)
	)
	p.forEachGhost(f, func(base, off, g int) {
		var last, prev int
		if f.IsUpper() {
			last = off - g*s
			prev = last - s
		} else {
			last = off + g*s
			prev = last + s
		}
		for _, u := range fields {
			u[base+off] = u[base+last] + float64(g)*(u[base+last]-u[base+prev])
		}
	})
}

// ForEachNonInterior calls fn for every ghost point of the patch
func (p *Patch) ForEachNonInterior(fn func(ind, i, j, k int)) {
	for k := 0; k < p.Dims[2]; k++ {
		for j := 0; j < p.Dims[1]; j++ {
			for i := 0; i < p.Dims[0]; i++ {
				if !p.IsInterior(i, j, k) {
					fn(p.Index(i, j, k), i, j, k)
				}
			}
		}
	}
}

// BoundaryLayer returns the flattened indices of the outermost interior
// points adjacent to face f.
func (p *Patch) BoundaryLayer(f utils.Face) (I utils.Index) {
	var (
		dir    = f.Dir()
		t1, t2 = (dir + 1) % 3, (dir + 2) % 3
		pos    = p.Ghost
	)
	if f.IsUpper() {
		pos = p.Ghost + p.N[dir] - 1
	}
	I = utils.NewIndex(p.N[t1] * p.N[t2])
	var ii int
	for b := p.Ghost; b < p.Ghost+p.N[t2]; b++ {
		for a := p.Ghost; a < p.Ghost+p.N[t1]; a++ {
			I[ii] = pos*p.Stride(dir) + a*p.Stride(t1) + b*p.Stride(t2)
			ii++
		}
	}
	return
}
