package ADM

import (
	"github.com/notargets/gowave/utils"
)

// Metric holds the six independent components of a symmetric 3x3 tensor in
// the order xx, xy, xz, yy, yz, zz. It is used for the spatial metric, its
// inverse and the extrinsic curvature.
type Metric [6]float64

const (
	XX = iota
	XY
	XZ
	YY
	YZ
	ZZ
)

func Identity() Metric { return Metric{1, 0, 0, 1, 0, 1} }

func (g Metric) At(i, j int) float64 { return g[utils.SymIndex(i, j)] }

func (g Metric) Det() float64 {
	return g[XX]*(g[YY]*g[ZZ]-g[YZ]*g[YZ]) -
		g[XY]*(g[XY]*g[ZZ]-g[YZ]*g[XZ]) +
		g[XZ]*(g[XY]*g[YZ]-g[YY]*g[XZ])
}

// Inverse divides the cofactors by the determinant. A vanishing determinant
// is not trapped, the result is Inf or NaN.
func (g Metric) Inverse() (gu Metric, det float64) {
	var (
		cxx = g[YY]*g[ZZ] - g[YZ]*g[YZ]
		cxy = g[XZ]*g[YZ] - g[XY]*g[ZZ]
		cxz = g[XY]*g[YZ] - g[XZ]*g[YY]
		cyy = g[XX]*g[ZZ] - g[XZ]*g[XZ]
		cyz = g[XY]*g[XZ] - g[XX]*g[YZ]
		czz = g[XX]*g[YY] - g[XY]*g[XY]
	)
	det = g[XX]*cxx + g[XY]*cxy + g[XZ]*cxz
	oodet := 1. / det
	gu = Metric{cxx * oodet, cxy * oodet, cxz * oodet, cyy * oodet, cyz * oodet, czz * oodet}
	return
}

// MulVec contracts the tensor with a vector, raising or lowering an index
// depending on whether g is the inverse or the covariant metric
func (g Metric) MulVec(v [3]float64) (w [3]float64) {
	w[0] = g[XX]*v[0] + g[XY]*v[1] + g[XZ]*v[2]
	w[1] = g[XY]*v[0] + g[YY]*v[1] + g[YZ]*v[2]
	w[2] = g[XZ]*v[0] + g[YZ]*v[1] + g[ZZ]*v[2]
	return
}

// Quad is the bilinear form u^i g_ij v^j
func (g Metric) Quad(u, v [3]float64) float64 {
	w := g.MulVec(v)
	return u[0]*w[0] + u[1]*w[1] + u[2]*w[2]
}

// ContractSym is the full contraction g^ij A_ij with a symmetric A
func (g Metric) ContractSym(A Metric) float64 {
	return g[XX]*A[XX] + g[YY]*A[YY] + g[ZZ]*A[ZZ] +
		2*(g[XY]*A[XY]+g[XZ]*A[XZ]+g[YZ]*A[YZ])
}

// ContractMatrix is g^ij H_ij for a full 3x3 matrix
func (g Metric) ContractMatrix(H *[3][3]float64) float64 {
	return g[XX]*H[0][0] + g[YY]*H[1][1] + g[ZZ]*H[2][2] +
		g[XY]*(H[0][1]+H[1][0]) + g[XZ]*(H[0][2]+H[2][0]) + g[YZ]*(H[1][2]+H[2][1])
}

// TraceK is the trace of the extrinsic curvature, K = g^ij K_ij
func TraceK(gu, K Metric) float64 { return gu.ContractSym(K) }
