package ScalarWave3D

import (
	"fmt"
	"math"
	"strings"
)

// ExactPoint holds an exact solution and its derivatives at one event
type ExactPoint struct {
	Phi, DtPhi, DttPhi float64
	Grad               [3]float64    // ∂_iΦ
	DtGrad             [3]float64    // ∂_i∂_tΦ
	Hess               [3][3]float64 // ∂_i∂_jΦ
}

// ExactSolution is a closed form solution of the flat space Klein-Gordon
// equation, used for initial data, analytic boundaries and error norms
type ExactSolution interface {
	Name() string
	Evaluate(X [3]float64, t float64) ExactPoint
}

// GaussianPulse is the regular spherical solution of the massless wave
// equation
//
//	Φ = A/(2r) [u(r-t) + u(r+t)],  u(s) = s exp(-s²/σ²)
//
// centred at Center. Within 1e-3 Width of the centre the closed form loses
// most of its digits to cancellation, so a Taylor series in r is used there.
type GaussianPulse struct {
	Amplitude, Width float64
	Center           [3]float64
}

func (gp GaussianPulse) Name() string { return "gaussian" }

// u(s) = s exp(-s²/σ²) and its derivatives through sixth order, from
// u⁽ᵏ⁾(s) = (-1)ᵏ σ¹⁻ᵏ H_{k+1}(s/σ) exp(-s²/σ²) / 2 with H the Hermite
// polynomials
func (gp GaussianPulse) u(s float64) (d [7]float64) {
	var (
		xi    = s / gp.Width
		hm, h = 1., 2 * xi // H_0, H_1
		scale = 0.5 * gp.Width * math.Exp(-xi*xi)
	)
	for k := range d {
		d[k] = scale * h
		hm, h = h, 2*xi*h-2*float64(k+1)*hm
		scale *= -1 / gp.Width
	}
	return
}

func (gp GaussianPulse) Evaluate(X [3]float64, t float64) (ep ExactPoint) {
	var (
		A  = gp.Amplitude
		x  [3]float64
		r2 float64
	)
	for i := 0; i < 3; i++ {
		x[i] = X[i] - gp.Center[i]
		r2 += x[i] * x[i]
	}
	r := math.Sqrt(r2)
	if r < 1.e-3*gp.Width {
		// Φ = A (u'(t) + r² u'''(t)/6 + r⁴ u⁽⁵⁾(t)/120 + ...), the dropped terms
		// are O(r⁴) against the leading one
		d := gp.u(t)
		ep.Phi = A * (d[1] + r2*d[3]/6 + r2*r2*d[5]/120)
		ep.DtPhi = A * (d[2] + r2*d[4]/6 + r2*r2*d[6]/120)
		ep.DttPhi = A * (d[3] + r2*d[5]/6)
		var (
			g  = A * (d[3]/3 + r2*d[5]/30) // ∂_rΦ / r
			gt = A * (d[4]/3 + r2*d[6]/30) // ∂_r∂_tΦ / r
			h  = A * d[5] / 15             // (∂_r²Φ - ∂_rΦ/r) / r²
		)
		for i := 0; i < 3; i++ {
			ep.Grad[i] = g * x[i]
			ep.DtGrad[i] = gt * x[i]
			for j := 0; j < 3; j++ {
				ep.Hess[i][j] = h * x[i] * x[j]
			}
			ep.Hess[i][i] += g
		}
		return
	}
	var (
		dm, dp    = gp.u(r-t), gp.u(r+t)
		S, S1, S2 = dm[0] + dp[0], dm[1] + dp[1], dm[2] + dp[2] // S = u(r-t) + u(r+t) and r derivatives
		W, W1     = dp[1] - dm[1], dp[2] - dm[2]                // W = ∂_t S and its r derivative
		ir        = 1 / r
	)
	ep.Phi = 0.5 * A * S * ir
	ep.DtPhi = 0.5 * A * W * ir
	ep.DttPhi = 0.5 * A * S2 * ir
	var (
		dr   = 0.5 * A * (S1*ir - S*ir*ir)                   // ∂_rΦ
		drr  = 0.5 * A * (S2*ir - 2*S1*ir*ir + 2*S*ir*ir*ir) // ∂_r²Φ
		dtdr = 0.5 * A * (W1*ir - W*ir*ir)                   // ∂_r∂_tΦ
	)
	for i := 0; i < 3; i++ {
		ni := x[i] * ir
		ep.Grad[i] = dr * ni
		ep.DtGrad[i] = dtdr * ni
		for j := 0; j < 3; j++ {
			nj := x[j] * ir
			var delta float64
			if i == j {
				delta = 1
			}
			ep.Hess[i][j] = drr*ni*nj + dr*ir*(delta-ni*nj)
		}
	}
	return
}

// PlaneWave is Φ = A cos(k·x - ωt + φ0) with the massive dispersion relation
// ω² = k² + m²
type PlaneWave struct {
	Amplitude, Phase float64
	K                [3]float64
	Omega            float64
}

func NewPlaneWave(amplitude, phase float64, K [3]float64, mass float64) PlaneWave {
	return PlaneWave{
		Amplitude: amplitude,
		Phase:     phase,
		K:         K,
		Omega:     math.Sqrt(K[0]*K[0] + K[1]*K[1] + K[2]*K[2] + mass*mass),
	}
}

func (pw PlaneWave) Name() string { return "planewave" }

func (pw PlaneWave) Evaluate(X [3]float64, t float64) (ep ExactPoint) {
	var (
		A    = pw.Amplitude
		w    = pw.Omega
		s, c = math.Sincos(dot(pw.K, X) - w*t + pw.Phase)
	)
	ep.Phi = A * c
	ep.DtPhi = A * w * s
	ep.DttPhi = -A * w * w * c
	for i := 0; i < 3; i++ {
		ep.Grad[i] = -A * pw.K[i] * s
		ep.DtGrad[i] = A * w * pw.K[i] * c
		for j := 0; j < 3; j++ {
			ep.Hess[i][j] = -A * pw.K[i] * pw.K[j] * c
		}
	}
	return
}

// NewExactSolution builds a solution by name. Gaussian reads "amplitude",
// "width" and "x0", "y0", "z0", the plane wave reads "amplitude", "phase"
// and "kx", "ky", "kz".
func NewExactSolution(name string, params map[string]float64, mass float64) (es ExactSolution, err error) {
	get := func(key string, def float64) float64 {
		if v, ok := params[key]; ok {
			return v
		}
		return def
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gaussian", "gaussianpulse", "pulse":
		if mass != 0 {
			err = fmt.Errorf("the gaussian pulse solves the massless equation, field_mass = %g", mass)
			return
		}
		gp := GaussianPulse{
			Amplitude: get("amplitude", 1),
			Width:     get("width", 1),
			Center:    [3]float64{get("x0", 0), get("y0", 0), get("z0", 0)},
		}
		if !(gp.Width > 0) {
			err = fmt.Errorf("gaussian width must be positive, have %g", gp.Width)
			return
		}
		es = gp
	case "planewave", "plane":
		es = NewPlaneWave(get("amplitude", 1), get("phase", 0),
			[3]float64{get("kx", 2*math.Pi), get("ky", 0), get("kz", 0)}, mass)
	default:
		err = fmt.Errorf("unknown exact solution: %q", name)
	}
	return
}
