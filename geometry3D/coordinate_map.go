package geometry3D

import (
	"fmt"
	"math"
	"strings"
)

// CoordinateMap is the forward map x(ξ) from computational coordinates to
// global Cartesian coordinates, with its first and second derivatives.
type CoordinateMap interface {
	Name() string
	Position(xi [3]float64) [3]float64
	// Jacobian returns F[a][b] = ∂x^a/∂ξ^b
	Jacobian(xi [3]float64) [3][3]float64
	// Hessian returns H[a][b][c] = ∂²x^a/∂ξ^b∂ξ^c
	Hessian(xi [3]float64) [3][3][3]float64
}

type Cartesian struct{}

func (Cartesian) Name() string                      { return "cartesian" }
func (Cartesian) Position(xi [3]float64) [3]float64 { return xi }
func (Cartesian) Jacobian(_ [3]float64) (F [3][3]float64) {
	F[0][0], F[1][1], F[2][2] = 1, 1, 1
	return
}
func (Cartesian) Hessian(_ [3]float64) (H [3][3][3]float64) { return }

// Sinusoidal is a smooth warp of the unit box, each global coordinate being
// displaced by a sine of the next computational coordinate:
//
//	x^a = ξ^a + A sin(κ ξ^(a+1 mod 3))
//
// The map is invertible for A κ < 1.
type Sinusoidal struct {
	Amplitude, WaveNumber float64
}

func (s Sinusoidal) Name() string { return "sinusoidal" }

func (s Sinusoidal) Position(xi [3]float64) (X [3]float64) {
	for a := 0; a < 3; a++ {
		b := (a + 1) % 3
		X[a] = xi[a] + s.Amplitude*math.Sin(s.WaveNumber*xi[b])
	}
	return
}

func (s Sinusoidal) Jacobian(xi [3]float64) (F [3][3]float64) {
	for a := 0; a < 3; a++ {
		b := (a + 1) % 3
		F[a][a] = 1
		F[a][b] = s.Amplitude * s.WaveNumber * math.Cos(s.WaveNumber*xi[b])
	}
	return
}

func (s Sinusoidal) Hessian(xi [3]float64) (H [3][3][3]float64) {
	k2 := s.WaveNumber * s.WaveNumber
	for a := 0; a < 3; a++ {
		b := (a + 1) % 3
		H[a][b][b] = -s.Amplitude * k2 * math.Sin(s.WaveNumber*xi[b])
	}
	return
}

// Spherical maps ξ = (r, θ, φ) to Cartesian. Singular at r = 0 and on the
// polar axis.
type Spherical struct{}

func (Spherical) Name() string { return "spherical" }

func (Spherical) Position(xi [3]float64) [3]float64 {
	var (
		r, th, ph = xi[0], xi[1], xi[2]
	)
	return [3]float64{
		r * math.Sin(th) * math.Cos(ph),
		r * math.Sin(th) * math.Sin(ph),
		r * math.Cos(th),
	}
}

func (Spherical) Jacobian(xi [3]float64) (F [3][3]float64) {
	var (
		r      = xi[0]
		st, ct = math.Sincos(xi[1])
		sp, cp = math.Sincos(xi[2])
	)
	F = [3][3]float64{
		{st * cp, r * ct * cp, -r * st * sp},
		{st * sp, r * ct * sp, r * st * cp},
		{ct, -r * st, 0},
	}
	return
}

func (Spherical) Hessian(xi [3]float64) (H [3][3][3]float64) {
	var (
		r      = xi[0]
		st, ct = math.Sincos(xi[1])
		sp, cp = math.Sincos(xi[2])
	)
	set := func(a, b, c int, v float64) {
		H[a][b][c] = v
		H[a][c][b] = v
	}
	// x
	set(0, 0, 1, ct*cp)
	set(0, 0, 2, -st*sp)
	set(0, 1, 1, -r*st*cp)
	set(0, 1, 2, -r*ct*sp)
	set(0, 2, 2, -r*st*cp)
	// y
	set(1, 0, 1, ct*sp)
	set(1, 0, 2, st*cp)
	set(1, 1, 1, -r*st*sp)
	set(1, 1, 2, r*ct*cp)
	set(1, 2, 2, -r*st*sp)
	// z
	set(2, 0, 1, -st)
	set(2, 1, 1, -r*ct)
	return
}

// NewCoordinateMap builds a map by name. Sinusoidal reads the "amplitude" and
// "wavenumber" parameters.
func NewCoordinateMap(name string, params map[string]float64) (cm CoordinateMap, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "cartesian":
		cm = Cartesian{}
	case "sinusoidal", "warped":
		s := Sinusoidal{Amplitude: params["amplitude"], WaveNumber: params["wavenumber"]}
		if math.Abs(s.Amplitude*s.WaveNumber) >= 1 {
			err = fmt.Errorf("sinusoidal map is not invertible for |amplitude*wavenumber| = %g >= 1",
				math.Abs(s.Amplitude*s.WaveNumber))
			return
		}
		cm = s
	case "spherical":
		cm = Spherical{}
	default:
		err = fmt.Errorf("unknown coordinate map: %q", name)
	}
	return
}
