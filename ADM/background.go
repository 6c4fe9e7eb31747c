package ADM

import (
	"fmt"
	"math"
	"strings"
)

// Background supplies analytic ADM data at a global position and time
type Background interface {
	Name() string
	Evaluate(X [3]float64, t float64) (alpha float64, beta [3]float64, g, K Metric)
}

type Minkowski struct{}

func (Minkowski) Name() string { return "minkowski" }

func (Minkowski) Evaluate(_ [3]float64, _ float64) (alpha float64, beta [3]float64, g, K Metric) {
	return 1, beta, Identity(), K
}

// GaugeWave is flat space in a time dependent slicing along x,
//
//	ds² = H (-dt² + dx²) + dy² + dz²,  H = 1 - A sin(2π(x - t)/d)
type GaugeWave struct {
	Amplitude, Wavelength float64
}

func (gw GaugeWave) Name() string { return "gaugewave" }

func (gw GaugeWave) Evaluate(X [3]float64, t float64) (alpha float64, beta [3]float64, g, K Metric) {
	var (
		kw    = 2 * math.Pi / gw.Wavelength
		s, c  = math.Sincos(kw * (X[0] - t))
		H     = 1 - gw.Amplitude*s
		dtH   = gw.Amplitude * kw * c
		sqrtH = math.Sqrt(H)
	)
	alpha = sqrtH
	g = Identity()
	g[XX] = H
	K[XX] = -dtH / (2 * sqrtH)
	return
}

// Schwarzschild is the static black hole in isotropic coordinates. The
// lapse vanishes on the horizon r = M/2 and everything is singular at r = 0.
type Schwarzschild struct {
	Mass float64
}

func (s Schwarzschild) Name() string { return "schwarzschild" }

func (s Schwarzschild) Evaluate(X [3]float64, _ float64) (alpha float64, beta [3]float64, g, K Metric) {
	var (
		r   = math.Sqrt(X[0]*X[0] + X[1]*X[1] + X[2]*X[2])
		m2r = s.Mass / (2 * r)
		psi = 1 + m2r
		p4  = psi * psi * psi * psi
	)
	alpha = (1 - m2r) / (1 + m2r)
	g = Metric{p4, 0, 0, p4, 0, p4}
	return
}

// NewBackground builds a background by name. GaugeWave reads "amplitude" and
// "wavelength", Schwarzschild reads "mass".
func NewBackground(name string, params map[string]float64) (bg Background, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "minkowski", "flat":
		bg = Minkowski{}
	case "gaugewave", "gauge_wave":
		gw := GaugeWave{Amplitude: params["amplitude"], Wavelength: params["wavelength"]}
		if !(gw.Wavelength > 0) || math.Abs(gw.Amplitude) >= 1 {
			err = fmt.Errorf("gauge wave needs wavelength > 0 and |amplitude| < 1, have %g, %g",
				gw.Wavelength, gw.Amplitude)
			return
		}
		bg = gw
	case "schwarzschild":
		s := Schwarzschild{Mass: params["mass"]}
		if s.Mass < 0 {
			err = fmt.Errorf("schwarzschild mass must be non-negative, have %g", s.Mass)
			return
		}
		bg = s
	default:
		err = fmt.Errorf("unknown background: %q", name)
	}
	return
}
