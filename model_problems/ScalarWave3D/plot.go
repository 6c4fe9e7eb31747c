package ScalarWave3D

import (
	"sync"
	"time"

	"github.com/notargets/avs/chart2d"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gowave/grid"
)

// LinePlot draws Φ along the x line through the middle of the patch
type LinePlot struct {
	FieldMin, FieldMax float32
	plotOnce           sync.Once
	chart              *chart2d.Chart2D
	colorMap           *utils2.ColorMap
}

// lineIndices returns the interior indices of the centre x line
func lineIndices(p *grid.Patch) (inds []int) {
	var (
		j = p.Ghost + p.N[1]/2
		k = p.Ghost + p.N[2]/2
	)
	for i := p.Ghost; i < p.Ghost+p.N[0]; i++ {
		inds = append(inds, p.Index(i, j, k))
	}
	return
}

// LineOut samples a field and the global x coordinate along the centre line
func (sw *ScalarWave) LineOut(f grid.GridFunction) (X, F []float64) {
	for _, ind := range lineIndices(sw.Patch) {
		X = append(X, sw.Jac.Position(ind)[0])
		F = append(F, f[ind])
	}
	return
}

func (lp *LinePlot) Plot(sw *ScalarWave, state *grid.Arena, es ExactSolution, timeT float64,
	graphDelay ...time.Duration) {
	X, Phi := sw.LineOut(state.Field(0))
	lp.plotOnce.Do(func() {
		lp.chart = chart2d.NewChart2D(1920, 1280, float32(X[0]), float32(X[len(X)-1]),
			lp.FieldMin, lp.FieldMax)
		lp.colorMap = utils2.NewColorMap(-1, 1, 1)
		go lp.chart.Plot()
	})
	if err := lp.chart.AddSeries("Phi", X, Phi, chart2d.NoGlyph, chart2d.Solid,
		lp.colorMap.GetRGB(-0.7)); err != nil {
		panic("unable to add graph series")
	}
	if es != nil {
		exact := make([]float64, len(X))
		for n, ind := range lineIndices(sw.Patch) {
			exact[n] = es.Evaluate(sw.Jac.Position(ind), timeT).Phi
		}
		if err := lp.chart.AddSeries("ExactPhi", X, exact, chart2d.XGlyph, chart2d.NoLine,
			lp.colorMap.GetRGB(0.7)); err != nil {
			panic("unable to add exact solution series")
		}
	}
	if len(graphDelay) != 0 {
		time.Sleep(graphDelay[0])
	}
}
