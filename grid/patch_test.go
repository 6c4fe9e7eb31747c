package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowave/utils"
)

func TestPatch(t *testing.T) {
	{ // Test index arithmetic
		p, err := NewPatch([3]int{4, 5, 6}, 2, [3]float64{0, 0, 0}, [3]float64{0.1, 0.2, 0.3})
		require.NoError(t, err)
		assert.Equal(t, [3]int{8, 9, 10}, p.Dims)
		assert.Equal(t, 8*9*10, p.Len())
		assert.Equal(t, 4*5*6, p.InteriorLen())
		assert.Equal(t, 1, p.Stride(0))
		assert.Equal(t, 8, p.Stride(1))
		assert.Equal(t, 72, p.Stride(2))
		for ind := 0; ind < p.Len(); ind++ {
			i, j, k := p.IJK(ind)
			assert.Equal(t, ind, p.Index(i, j, k))
		}
		seen := make(map[int]bool)
		for n := 0; n < p.InteriorLen(); n++ {
			i, j, k := p.InteriorIJK(n)
			assert.True(t, p.IsInterior(i, j, k))
			seen[p.InteriorIndex(n)] = true
		}
		assert.Equal(t, p.InteriorLen(), len(seen))
		assert.False(t, p.IsInterior(1, 2, 2))
		assert.False(t, p.IsInterior(2, 2, 8))
		xi := p.Coord(2, 2, 2)
		assert.Equal(t, [3]float64{0, 0, 0}, xi)
		xi = p.Coord(0, 3, 2)
		assert.InDeltaSlice(t, []float64{-0.2, 0.2, 0}, xi[:], 1.e-14)
	}
	{ // Test cell centered bounds
		p, err := NewPatchFromBounds([3]int{10, 10, 4}, 3, [3]float64{-1, -1, 0}, [3]float64{1, 1, 2})
		require.NoError(t, err)
		assert.InDelta(t, 0.2, p.Delta[0], 1.e-15)
		assert.InDelta(t, 0.5, p.Delta[2], 1.e-15)
		assert.InDelta(t, -0.9, p.Origin[0], 1.e-15)
		assert.InDelta(t, 0.25, p.Origin[2], 1.e-15)
		xi := p.Coord(p.Ghost+9, 0, 0)
		assert.InDelta(t, 0.9, xi[0], 1.e-14)
	}
	{ // Test invalid patches
		_, err := NewPatch([3]int{0, 5, 6}, 2, [3]float64{}, [3]float64{1, 1, 1})
		assert.Error(t, err)
		_, err = NewPatch([3]int{4, 5, 6}, 2, [3]float64{}, [3]float64{1, 0, 1})
		assert.Error(t, err)
		_, err = NewPatch([3]int{4, 5, 6}, -1, [3]float64{}, [3]float64{1, 1, 1})
		assert.Error(t, err)
	}
}

func TestArena(t *testing.T) {
	p, err := NewPatch([3]int{3, 3, 3}, 1, [3]float64{}, [3]float64{1, 1, 1})
	require.NoError(t, err)
	a := NewArena(p, "phi", "kphi")
	assert.Equal(t, 2, a.NumFields())
	assert.Equal(t, 2*p.Len(), len(a.Data()))
	phi, kphi := a.Get("phi"), a.Get("kphi")
	phi[3] = 1.5
	kphi[0] = 2.5
	assert.Equal(t, 1.5, a.Data()[3])
	assert.Equal(t, 2.5, a.Data()[p.Len()])
	assert.True(t, a.Has("kphi"))
	assert.False(t, a.Has("pi"))
	assert.Panics(t, func() { a.Get("pi") })
	assert.Panics(t, func() { NewArena(p, "phi", "phi") })
	b := a.Clone()
	assert.Equal(t, 0., b.Get("phi")[3])
	b.CopyFrom(a)
	assert.Equal(t, 1.5, b.Get("phi")[3])
	a.Zero()
	assert.Equal(t, 0., phi[3])
	assert.Equal(t, 1.5, b.Get("phi")[3])
}

func TestGhostFill(t *testing.T) {
	p, err := NewPatch([3]int{5, 4, 3}, 2, [3]float64{}, [3]float64{1, 1, 1})
	require.NoError(t, err)
	f := p.NewGridFunction()
	linear := func(i, j, k int) float64 { return float64(i) + 10*float64(j) + 100*float64(k) }
	for n := 0; n < p.InteriorLen(); n++ {
		i, j, k := p.InteriorIJK(n)
		f[p.Index(i, j, k)] = linear(i, j, k)
	}
	{ // Test periodic wrap
		g := append(GridFunction{}, f...)
		p.FillPeriodic(utils.XLower, g)
		p.FillPeriodic(utils.XUpper, g)
		// i = 0,1 are copies of i = 5,6; i = 7,8 are copies of i = 2,3
		assert.Equal(t, g[p.Index(5, 3, 2)], g[p.Index(0, 3, 2)])
		assert.Equal(t, g[p.Index(6, 3, 2)], g[p.Index(1, 3, 2)])
		assert.Equal(t, g[p.Index(2, 3, 2)], g[p.Index(7, 3, 2)])
		assert.Equal(t, g[p.Index(3, 3, 2)], g[p.Index(8, 3, 2)])
	}
	{ // Test periodic wrap with ghosts wider than the interior
		q, err := NewPatch([3]int{2, 1, 1}, 3, [3]float64{}, [3]float64{1, 1, 1})
		require.NoError(t, err)
		g := q.NewGridFunction()
		g[q.Index(3, 3, 3)], g[q.Index(4, 3, 3)] = 1, 2
		q.FillPeriodic(utils.XLower, g)
		q.FillPeriodic(utils.XUpper, g)
		var row []float64
		for i := 0; i < q.Dims[0]; i++ {
			row = append(row, g[q.Index(i, 3, 3)])
		}
		assert.Equal(t, []float64{2, 1, 2, 1, 2, 1, 2, 1}, row)
	}
	{ // Test odd and even mirrors
		g := append(GridFunction{}, f...)
		p.FillMirror(utils.YLower, -1, g)
		p.FillMirror(utils.YUpper, 1, g)
		assert.Equal(t, -g[p.Index(3, 2, 3)], g[p.Index(3, 1, 3)])
		assert.Equal(t, -g[p.Index(3, 3, 3)], g[p.Index(3, 0, 3)])
		assert.Equal(t, g[p.Index(3, 5, 3)], g[p.Index(3, 6, 3)])
		assert.Equal(t, g[p.Index(3, 4, 3)], g[p.Index(3, 7, 3)])
	}
	{ // Test linear extrapolation is exact for linear data
		g := append(GridFunction{}, f...)
		for _, face := range []utils.Face{utils.XLower, utils.XUpper, utils.YLower,
			utils.YUpper, utils.ZLower, utils.ZUpper} {
			p.FillExtrapolate(face, g)
		}
		for ind := range g {
			i, j, k := p.IJK(ind)
			assert.InDelta(t, linear(i, j, k), g[ind], 1.e-10)
		}
	}
	{ // Test boundary layers and non interior iteration
		I := p.BoundaryLayer(utils.ZUpper)
		assert.Equal(t, 5*4, len(I))
		for _, ind := range I {
			_, _, k := p.IJK(ind)
			assert.Equal(t, 4, k)
		}
		var count int
		p.ForEachNonInterior(func(ind, i, j, k int) {
			assert.False(t, p.IsInterior(i, j, k))
			count++
		})
		assert.Equal(t, p.Len()-p.InteriorLen(), count)
	}
}
