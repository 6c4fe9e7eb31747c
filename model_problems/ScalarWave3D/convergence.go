package ScalarWave3D

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/gowave/InputParameters"
)

// ResidualLevel is the RHS truncation error at one resolution, per evolved
// field
type ResidualLevel struct {
	N        [3]int
	H        float64 // Largest logical spacing
	Linf, L2 []float64
}

// RHSResidual compares the full discrete RHS (ghost fill and boundary
// override included) with the time derivative of the exact solution at t.
// ExactRHS is a flat space derivative, so the residual measures truncation
// error only on flat backgrounds.
func (m *Model) RHSResidual(t float64) (lvl ResidualLevel) {
	var (
		p   = m.SW.Patch
		rhs = m.SW.NewState()
		nf  = m.State.NumFields()
	)
	m.SW.InitializeState(m.State, m.Exact, t)
	m.RHS(t, m.State, rhs)
	lvl.N = p.N
	lvl.H = math.Max(p.Delta[0], math.Max(p.Delta[1], p.Delta[2]))
	lvl.Linf, lvl.L2 = make([]float64, nf), make([]float64, nf)
	for n := 0; n < p.InteriorLen(); n++ {
		ind := p.InteriorIndex(n)
		exact := m.SW.ExactRHS(m.Exact, t, ind)
		for f := 0; f < nf; f++ {
			d := math.Abs(rhs.Field(f)[ind] - exact[f])
			lvl.Linf[f] = math.Max(lvl.Linf[f], d)
			lvl.L2[f] += d * d
		}
	}
	for f := range lvl.L2 {
		lvl.L2[f] = math.Sqrt(lvl.L2[f] / float64(p.InteriorLen()))
	}
	return
}

// ConvergenceStudy measures the RHS residual of ip at levels resolutions,
// doubling the point count per direction at each level. Levels run
// concurrently; the first error cancels the ones not yet started.
func ConvergenceStudy(ctx context.Context, ip *InputParameters.InputParameters3D, levels int) (study []ResidualLevel, err error) {
	if levels < 2 {
		err = fmt.Errorf("%w: a convergence study needs at least 2 levels, have %d",
			InputParameters.ErrInvalidParameter, levels)
		return
	}
	study = make([]ResidualLevel, levels)
	g, ctx := errgroup.WithContext(ctx)
	for l := 0; l < levels; l++ {
		lip := *ip
		for dir := 0; dir < 3; dir++ {
			lip.N[dir] = ip.N[dir] << l
		}
		g.Go(func() (err error) {
			var m *Model
			if err = ctx.Err(); err != nil {
				return
			}
			if m, err = NewModel(&lip); err != nil {
				return fmt.Errorf("level %d: %w", l, err)
			}
			study[l] = m.RHSResidual(0)
			return
		})
	}
	if err = g.Wait(); err != nil {
		study = nil
	}
	return
}

// ObservedOrders returns log(e_{l-1}/e_l)/log(h_{l-1}/h_l) of the L∞ residual
// for each refinement and field
func ObservedOrders(study []ResidualLevel) (orders [][]float64) {
	for l := 1; l < len(study); l++ {
		var (
			coarse, fine = study[l-1], study[l]
			rate         = make([]float64, len(fine.Linf))
		)
		for f := range rate {
			rate[f] = math.Log(coarse.Linf[f]/fine.Linf[f]) / math.Log(coarse.H/fine.H)
		}
		orders = append(orders, rate)
	}
	return
}

var ConvergenceCSVHeader = []string{"Title", "Order", "Formulation", "Field", "NX", "NY", "NZ", "H", "Linf", "L2"}

// WriteConvergenceCSV writes one record per level and field
func WriteConvergenceCSV(w io.Writer, title string, order int, form Formulation, study []ResidualLevel) (err error) {
	var (
		cw     = csv.NewWriter(w)
		names  = form.FieldNames()
		format = func(v float64) string { return strconv.FormatFloat(v, 'e', 8, 64) }
	)
	if err = cw.Write(ConvergenceCSVHeader); err != nil {
		return
	}
	for _, lvl := range study {
		for f, name := range names {
			rec := []string{
				title, strconv.Itoa(order), form.Print(), name,
				strconv.Itoa(lvl.N[0]), strconv.Itoa(lvl.N[1]), strconv.Itoa(lvl.N[2]),
				format(lvl.H), format(lvl.Linf[f]), format(lvl.L2[f]),
			}
			if err = cw.Write(rec); err != nil {
				return
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
