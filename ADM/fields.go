package ADM

import (
	"github.com/notargets/gowave/geometry3D"
	"github.com/notargets/gowave/grid"
)

var FieldNames = []string{
	"alp", "betax", "betay", "betaz",
	"gxx", "gxy", "gxz", "gyy", "gyz", "gzz",
	"kxx", "kxy", "kxz", "kyy", "kyz", "kzz",
}

// Fields holds the ADM data on a patch in one arena
type Fields struct {
	Arena *grid.Arena
	Alpha grid.GridFunction
	Beta  [3]grid.GridFunction
	G     [6]grid.GridFunction
	K     [6]grid.GridFunction
}

func NewFields(p *grid.Patch) (f *Fields) {
	f = &Fields{
		Arena: grid.NewArena(p, FieldNames...),
	}
	f.Alpha = f.Arena.Field(0)
	for n := 0; n < 3; n++ {
		f.Beta[n] = f.Arena.Field(1 + n)
	}
	for n := 0; n < 6; n++ {
		f.G[n] = f.Arena.Field(4 + n)
		f.K[n] = f.Arena.Field(10 + n)
	}
	return
}

// Fill evaluates the background at every point of the patch, ghosts
// included, using the global positions of the Jacobian field
func (f *Fields) Fill(jf *geometry3D.JacobianField, bg Background, t float64) {
	for ind := 0; ind < jf.Patch.Len(); ind++ {
		alpha, beta, g, K := bg.Evaluate(jf.Position(ind), t)
		f.Alpha[ind] = alpha
		for n := 0; n < 3; n++ {
			f.Beta[n][ind] = beta[n]
		}
		for n := 0; n < 6; n++ {
			f.G[n][ind] = g[n]
			f.K[n][ind] = K[n]
		}
	}
}

// At gathers the point values at flattened index ind
func (f *Fields) At(ind int) (alpha float64, beta [3]float64, g, K Metric) {
	alpha = f.Alpha[ind]
	for n := 0; n < 3; n++ {
		beta[n] = f.Beta[n][ind]
	}
	for n := 0; n < 6; n++ {
		g[n] = f.G[n][ind]
		K[n] = f.K[n][ind]
	}
	return
}

// IsStatic is true when every component is constant in time, letting
// drivers skip refills between stages
func IsStatic(bg Background) bool {
	switch bg.(type) {
	case Minkowski, Schwarzschild:
		return true
	}
	return false
}
