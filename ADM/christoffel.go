package ADM

import "github.com/notargets/gowave/utils"

// Christoffel holds Γ^i_jk with the symmetric lower pair packed like Metric
type Christoffel [3][6]float64

// NewChristoffel computes Γ^i_jk = ½ g^il (∂_j g_kl + ∂_k g_jl - ∂_l g_jk)
// from the inverse metric and dg[l] = ∂_l g.
func NewChristoffel(gu Metric, dg *[3]Metric) (G Christoffel) {
	var (
		low [3][6]float64 // Γ_l,jk
	)
	for n, jk := range utils.SymPairs {
		j, k := jk[0], jk[1]
		for l := 0; l < 3; l++ {
			low[l][n] = 0.5 * (dg[j][utils.SymIndex(k, l)] + dg[k][utils.SymIndex(j, l)] - dg[l][n])
		}
	}
	for n := 0; n < 6; n++ {
		G[0][n] = gu[XX]*low[0][n] + gu[XY]*low[1][n] + gu[XZ]*low[2][n]
		G[1][n] = gu[XY]*low[0][n] + gu[YY]*low[1][n] + gu[YZ]*low[2][n]
		G[2][n] = gu[XZ]*low[0][n] + gu[YZ]*low[1][n] + gu[ZZ]*low[2][n]
	}
	return
}

func (G *Christoffel) At(i, j, k int) float64 { return G[i][utils.SymIndex(j, k)] }

// Contract returns Γ^i = g^jk Γ^i_jk
func (G *Christoffel) Contract(gu Metric) (c [3]float64) {
	for i := 0; i < 3; i++ {
		c[i] = gu.ContractSym(G[i])
	}
	return
}
