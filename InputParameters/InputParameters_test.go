package InputParameters

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gowave/FD3D"
)

func TestInputParameters3D(t *testing.T) {
	{ // Test YAML parsing over the defaults
		fileInput := []byte(`
Title: Gauge Wave
fd_order: 6
field_mass: 0.5
bc_type: periodic
BCs:
  xlower: radiative
  XUpper: radiative
Formulation: flux
Points: [16, 8, 8]
XMin: [-4, -1, -1]
XMax: [4, 1, 1]
Background: gaugewave
BackgroundParameters:
  amplitude: 0.1
  wavelength: 2
InitType: planewave
InitParameters:
  kx: 3.14159
CFL: 0.25
FinalTime: 2.
Dissipation: 0.1
`)
		ip := NewInputParameters3D()
		require.NoError(t, ip.Parse(fileInput))
		want := NewInputParameters3D()
		want.Title = "Gauge Wave"
		want.FDOrder = 6
		want.FieldMass = 0.5
		want.BCs = map[string]string{"xlower": "radiative", "XUpper": "radiative"}
		want.Formulation = "flux"
		want.N = [3]int{16, 8, 8}
		want.XMin = [3]float64{-4, -1, -1}
		want.XMax = [3]float64{4, 1, 1}
		want.Background = "gaugewave"
		want.BackgroundParameters = map[string]float64{"amplitude": 0.1, "wavelength": 2}
		want.InitParameters = map[string]float64{"kx": 3.14159}
		want.CFL = 0.25
		want.FinalTime = 2
		want.Dissipation = 0.1
		if diff := cmp.Diff(want, ip); diff != "" {
			t.Errorf("parsed parameters mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, [6]string{"radiative", "radiative", "periodic", "periodic", "periodic", "periodic"},
			ip.BCNames())
		require.NoError(t, ip.Validate())
		// Order 6 with dissipation needs four ghost zones
		assert.Equal(t, 4, ip.Ghost)
		ip.Print()
	}
	{ // Test the grid size key survives YAML 1.1 boolean keys
		ip := NewInputParameters3D()
		require.NoError(t, ip.Parse([]byte("Points: [48, 8, 8]\n")))
		assert.Equal(t, [3]int{48, 8, 8}, ip.N)
		require.NoError(t, ip.Validate())
	}
	{ // Test Cactus parameter files
		parInput := []byte(`
# Scalar wave on a sinusoidal grid
ActiveThorns = "ScalarWave CoordBase"
ScalarWave::fd_order     = 8
ScalarWave::field_mass   = 1.5
ScalarWave::bc_type      = "reflecting"
ScalarWave::zupper       = "radiative"
ScalarWave::coordinate_map = "sinusoidal"
CoordinateMap::amplitude = 0.05
CoordBase::nx   = 20
CoordBase::xmin = -2
CoordBase::xmax = 2
Time::dtfac     = 0.4
Cactus::cctk_final_time = 3
Cactus::cctk_itlast = 100
`)
		ip := NewInputParameters3D()
		require.NoError(t, ip.ParsePar(parInput))
		assert.Equal(t, 8, ip.FDOrder)
		assert.Equal(t, 1.5, ip.FieldMass)
		assert.Equal(t, "reflecting", ip.BCType)
		assert.Equal(t, "radiative", ip.BCNames()[5])
		assert.Equal(t, "sinusoidal", ip.CoordinateMap)
		assert.Equal(t, map[string]float64{"amplitude": 0.05}, ip.MapParameters)
		assert.Equal(t, 20, ip.N[0])
		assert.Equal(t, -2., ip.XMin[0])
		assert.Equal(t, 2., ip.XMax[0])
		assert.Equal(t, 0.4, ip.CFL)
		assert.Equal(t, 3., ip.FinalTime)
		assert.Equal(t, 100, ip.MaxIterations)
		require.NoError(t, ip.Validate())
		assert.Equal(t, 4, ip.Ghost)

		bad := NewInputParameters3D()
		assert.Error(t, bad.ParsePar([]byte("ScalarWave::no_such_key = 1\n")))
		assert.Error(t, bad.ParsePar([]byte("ScalarWave::fd_order = four\n")))
	}
	{ // Test configuration errors
		ip := NewInputParameters3D()
		ip.FDOrder = 5
		assert.True(t, errors.Is(ip.Validate(), FD3D.ErrUnsupportedOrder))

		ip = NewInputParameters3D()
		ip.Ghost = 1
		assert.True(t, errors.Is(ip.Validate(), FD3D.ErrInsufficientGhosts))

		ip = NewInputParameters3D()
		ip.BCType = "sticky"
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))

		ip = NewInputParameters3D()
		ip.BCs = map[string]string{"wupper": "periodic"}
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))

		ip = NewInputParameters3D()
		ip.XMax[1] = ip.XMin[1]
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))

		ip = NewInputParameters3D()
		ip.CFL = 0
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))

		ip = NewInputParameters3D()
		ip.Dissipation = -1
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))
	}
	{ // Test faces too narrow for their ghost fill
		ip := NewInputParameters3D()
		ip.FDOrder = 8
		ip.BCType = "reflecting"
		ip.N = [3]int{2, 8, 8}
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))

		ip = NewInputParameters3D()
		ip.FDOrder = 8
		ip.BCs = map[string]string{"ylower": "symmetry", "yupper": "symmetry"}
		ip.N = [3]int{2, 3, 8}
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))
		ip.N[1] = 4
		require.NoError(t, ip.Validate())

		ip = NewInputParameters3D()
		ip.BCs = map[string]string{"zupper": "radiative", "zlower": "radiative"}
		ip.N = [3]int{8, 8, 1}
		assert.True(t, errors.Is(ip.Validate(), ErrInvalidParameter))
		ip.N[2] = 2
		require.NoError(t, ip.Validate())

		// Periodic directions wrap any width
		ip = NewInputParameters3D()
		ip.FDOrder = 8
		ip.N = [3]int{1, 2, 8}
		require.NoError(t, ip.Validate())
	}
}
