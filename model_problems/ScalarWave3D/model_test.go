package ScalarWave3D

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowave/FD3D"
	"github.com/notargets/gowave/InputParameters"
)

func TestModel(t *testing.T) {
	{ // Test a periodic plane wave run tracks the exact solution
		ip := InputParameters.NewInputParameters3D()
		ip.N = [3]int{16, 8, 8}
		ip.FieldMass = 0.5
		ip.FinalTime = 0.1
		ip.CFL = 0.5
		ip.PlotSteps = 5
		m, err := NewModel(ip)
		require.NoError(t, err)
		assert.Equal(t, 2, m.SW.Patch.Ghost)
		require.NoError(t, m.Run(false))
		assert.InDelta(t, 0.1, m.Time, 1.e-12)
		assert.Greater(t, m.Steps, 1)
		Linf, _ := m.SW.SolutionError(m.State, m.Exact, m.Time, m.errScratch)
		assert.Less(t, Linf, 1.e-2)
	}
	{ // Test a flux form run on a gauge wave background with dissipation
		ip := InputParameters.NewInputParameters3D()
		ip.N = [3]int{12, 4, 4}
		ip.Formulation = "flux"
		ip.Background = "gaugewave"
		ip.BackgroundParameters = map[string]float64{"amplitude": 0.01, "wavelength": 2}
		ip.Dissipation = 0.05
		ip.FinalTime = 0.05
		m, err := NewModel(ip)
		require.NoError(t, err)
		assert.False(t, m.static)
		assert.Equal(t, 3, m.SW.Patch.Ghost)
		require.NoError(t, m.Run(false))
		assert.InDelta(t, 0.05, m.Time, 1.e-12)
	}
	{ // Test the iteration limit stops a run
		ip := InputParameters.NewInputParameters3D()
		ip.N = [3]int{8, 8, 8}
		ip.MaxIterations = 3
		ip.FinalTime = 10
		m, err := NewModel(ip)
		require.NoError(t, err)
		require.NoError(t, m.Run(false))
		assert.Equal(t, 3, m.Steps)
	}
	{ // Test configuration errors surface from NewModel
		ip := InputParameters.NewInputParameters3D()
		ip.FDOrder = 3
		_, err := NewModel(ip)
		assert.True(t, errors.Is(err, FD3D.ErrUnsupportedOrder))

		ip = InputParameters.NewInputParameters3D()
		ip.Formulation = "bssn"
		_, err = NewModel(ip)
		assert.Error(t, err)

		ip = InputParameters.NewInputParameters3D()
		ip.InitType = "gaussian"
		ip.FieldMass = 1
		_, err = NewModel(ip)
		assert.Error(t, err)

		ip = InputParameters.NewInputParameters3D()
		ip.BCType = "analytic"
		ip.BCs = map[string]string{"xlower": "periodic"}
		_, err = NewModel(ip)
		assert.Error(t, err)
	}
}
