package ScalarWave3D

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gowave/ADM"
	"github.com/notargets/gowave/FD3D"
	"github.com/notargets/gowave/InputParameters"
	"github.com/notargets/gowave/geometry3D"
	"github.com/notargets/gowave/grid"
	"github.com/notargets/gowave/utils"
)

// Model evolves one patch from an input file to FinalTime
type Model struct {
	RunID         uuid.UUID
	Title         string
	CFL           float64
	FinalTime     float64
	MaxIterations int
	PlotSteps     int
	SW            *ScalarWave
	BC            *Boundary
	Background    ADM.Background
	Exact         ExactSolution
	State         *grid.Arena
	Time          float64
	Steps         int
	rk            *RungeKutta4
	static        bool // Background data are filled once
	errScratch    grid.GridFunction
	plot          *LinePlot
	logger        *log.Entry
}

func NewModel(ip *InputParameters.InputParameters3D) (m *Model, err error) {
	var (
		order FD3D.Order
		form  Formulation
		p     *grid.Patch
		cm    geometry3D.CoordinateMap
		jac   *geometry3D.JacobianField
		types [6]utils.BCType
	)
	if err = ip.Validate(); err != nil {
		return
	}
	m = &Model{
		RunID:         uuid.New(),
		Title:         ip.Title,
		CFL:           ip.CFL,
		FinalTime:     ip.FinalTime,
		MaxIterations: ip.MaxIterations,
		PlotSteps:     ip.PlotSteps,
	}
	if m.PlotSteps < 1 {
		m.PlotSteps = 10
	}
	m.logger = log.WithFields(log.Fields{
		"run":   m.RunID.String(),
		"title": ip.Title,
	})
	if order, err = FD3D.NewOrder(ip.FDOrder); err != nil {
		return nil, err
	}
	if form, err = NewFormulation(ip.Formulation); err != nil {
		return nil, err
	}
	if p, err = grid.NewPatchFromBounds(ip.N, ip.Ghost, ip.XMin, ip.XMax); err != nil {
		return nil, err
	}
	if cm, err = geometry3D.NewCoordinateMap(ip.CoordinateMap, ip.MapParameters); err != nil {
		return nil, err
	}
	if jac, err = geometry3D.NewJacobianField(p, cm); err != nil {
		return nil, err
	}
	if m.Background, err = ADM.NewBackground(ip.Background, ip.BackgroundParameters); err != nil {
		return nil, err
	}
	m.static = ADM.IsStatic(m.Background)
	adm := ADM.NewFields(p)
	adm.Fill(jac, m.Background, 0)
	if m.Exact, err = NewExactSolution(ip.InitType, ip.InitParameters, ip.FieldMass); err != nil {
		return nil, err
	}
	cfg := Config{
		Order:       order,
		Mass:        ip.FieldMass,
		Formulation: form,
		Dissipation: ip.Dissipation,
		ProcLimit:   ip.ProcLimit,
	}
	if m.SW, err = NewScalarWave(p, cfg, jac, adm); err != nil {
		return nil, err
	}
	if types, err = ParseBCs(ip.BCNames()); err != nil {
		return nil, err
	}
	if m.BC, err = NewBoundary(m.SW, types, m.Exact); err != nil {
		return nil, err
	}
	m.State = m.SW.NewState()
	m.SW.InitializeState(m.State, m.Exact, 0)
	m.rk = NewRungeKutta4(m.State, ip.ProcLimit)
	m.errScratch = p.NewGridFunction()
	m.logger.WithFields(log.Fields{
		"order":       order.String(),
		"formulation": form.Print(),
		"grid":        p.String(),
		"map":         cm.Name(),
		"background":  m.Background.Name(),
		"init":        m.Exact.Name(),
		"parallelism": m.SW.Interior.ParallelDegree,
	}).Info("model initialized")
	return
}

// RHS is the full right hand side: ADM refresh, ghost fill, interior RHS and
// the radiative override
func (m *Model) RHS(t float64, state, rhs *grid.Arena) {
	if !m.static {
		m.SW.ADM.Fill(m.SW.Jac, m.Background, t)
	}
	m.BC.FillGhosts(state, t)
	m.SW.RHS(state, rhs)
	m.BC.ApplyRHS(state, rhs)
}

func (m *Model) CheckIfFinished() (finished bool) {
	if m.Time >= m.FinalTime-1.e-12*math.Max(1, m.FinalTime) || m.Steps >= m.MaxIterations {
		finished = true
	}
	return
}

// Run integrates to FinalTime or MaxIterations. A NaN or Inf in the state
// stops the run with an error.
func (m *Model) Run(graph bool, graphDelay ...time.Duration) (err error) {
	var (
		dt      float64
		elapsed time.Duration
		start   time.Time
	)
	if graph {
		m.plot = &LinePlot{FieldMin: -1.1, FieldMax: 1.1}
	}
	m.PrintInitialization()
	if m.static {
		dt = m.SW.StableTimestep(m.CFL)
	}
	for !m.CheckIfFinished() {
		if !m.static {
			m.SW.ADM.Fill(m.SW.Jac, m.Background, m.Time)
			dt = m.SW.StableTimestep(m.CFL)
		}
		if !(dt > 0) {
			return fmt.Errorf("no stable time step at t = %g", m.Time)
		}
		stepDt := math.Min(dt, m.FinalTime-m.Time)
		start = time.Now()
		m.rk.Step(m.RHS, m.Time, stepDt, m.State)
		elapsed += time.Since(start)
		m.Steps++
		m.Time += stepDt
		if utils.IsNan(m.State.Data()) {
			err = fmt.Errorf("non finite state after step %d at t = %g", m.Steps, m.Time)
			m.logger.WithField("step", m.Steps).Error(err)
			return
		}
		if m.Steps%m.PlotSteps == 0 || m.CheckIfFinished() {
			m.PrintUpdate(stepDt)
			if m.plot != nil {
				m.plot.Plot(m.SW, m.State, m.Exact, m.Time, graphDelay...)
			}
		}
	}
	m.PrintFinal(elapsed)
	return
}

func (m *Model) PrintInitialization() {
	fmt.Printf("Solving until finaltime = %8.5f\n", m.FinalTime)
	fmt.Printf("    iter    time      dt")
	fmt.Printf("     Energy      Linf         L2\n")
}

func (m *Model) PrintUpdate(dt float64) {
	format := "%11.4e"
	if !m.static {
		m.SW.ADM.Fill(m.SW.Jac, m.Background, m.Time)
	}
	m.BC.FillGhosts(m.State, m.Time)
	E := m.SW.TotalEnergy(m.State)
	Linf, L2 := m.SW.SolutionError(m.State, m.Exact, m.Time, m.errScratch)
	fmt.Printf("%8d%8.5f%8.5f", m.Steps, m.Time, dt)
	fmt.Printf(format, E)
	fmt.Printf(format, Linf)
	fmt.Printf(format, L2)
	fmt.Printf("\n")
}

func (m *Model) PrintFinal(elapsed time.Duration) {
	if m.Steps == 0 {
		return
	}
	rate := float64(elapsed.Microseconds()) / float64(m.SW.Patch.InteriorLen()*m.Steps)
	fmt.Printf("\nRate of execution = %8.5f us/(point*iteration) over %d iterations\n", rate, m.Steps)
	m.logger.WithFields(log.Fields{
		"steps":   m.Steps,
		"time":    m.Time,
		"elapsed": elapsed.String(),
		"memory":  utils.GetMemUsage(),
	}).Info("run complete")
}
