package ScalarWave3D

import (
	"fmt"
	"strings"
)

type Formulation uint

const (
	// SecondOrder evolves Φ and its conjugate momentum K_Φ
	SecondOrder Formulation = iota
	// FirstOrderFlux evolves Φ, Π = 2√γ K_Φ and Ψ_i = ∂_iΦ in conservation form
	FirstOrderFlux
)

var (
	FormulationNames = map[string]Formulation{
		"secondorder": SecondOrder,
		"second":      SecondOrder,
		"adm":         SecondOrder,
		"flux":        FirstOrderFlux,
		"firstorder":  FirstOrderFlux,
		"first":       FirstOrderFlux,
	}
	FormulationPrintNames = []string{"Second Order (Phi, KPhi)", "First Order Flux (Phi, Pi, Psi)"}
)

func (f Formulation) Print() (txt string) {
	if int(f) < len(FormulationPrintNames) {
		txt = FormulationPrintNames[f]
	}
	return
}

func NewFormulation(label string) (f Formulation, err error) {
	var (
		ok bool
	)
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) == 0 {
		return SecondOrder, nil
	}
	if f, ok = FormulationNames[label]; !ok {
		err = fmt.Errorf("unable to use formulation named %q", label)
	}
	return
}

// FieldNames lists the evolved grid functions of the formulation, in arena
// order
func (f Formulation) FieldNames() []string {
	if f == FirstOrderFlux {
		return []string{"phi", "pi", "psix", "psiy", "psiz"}
	}
	return []string{"phi", "kphi"}
}

// Parity returns the mirror parity of every evolved field across a wall
// normal to dir, for an odd (Dirichlet) reflection. Even reflections flip
// all signs.
func (f Formulation) Parity(dir int) (parity []float64) {
	if f == FirstOrderFlux {
		parity = []float64{-1, -1, -1, -1, -1}
		// The normal derivative of an odd field is even
		parity[2+dir] = 1
		return
	}
	return []float64{-1, -1}
}
