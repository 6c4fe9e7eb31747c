package utils

import (
	"fmt"
	"strings"
)

// BCType represents the boundary treatment applied on one face of a patch
type BCType uint8

const (
	// BCNone leaves ghost zones untouched, the driver owns them
	BCNone BCType = iota
	// BCPeriodic wraps ghost zones around to the opposite face
	BCPeriodic
	// BCReflecting mirrors with odd parity about a wall half a cell outside
	// the last interior point (Dirichlet, field vanishes at the wall)
	BCReflecting
	// BCSymmetry mirrors with even parity (Neumann)
	BCSymmetry
	// BCRadiative extrapolates ghosts and imposes an outgoing Sommerfeld
	// condition on the outermost interior layer of the RHS
	BCRadiative
	// BCAnalytic fills ghosts from an exact solution
	BCAnalytic
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	names := map[BCType]string{
		BCNone:       "None",
		BCPeriodic:   "Periodic",
		BCReflecting: "Reflecting",
		BCSymmetry:   "Symmetry",
		BCRadiative:  "Radiative",
		BCAnalytic:   "Analytic",
	}
	if name, ok := names[bc]; ok {
		return name
	}
	return "Unknown"
}

// MinPoints is the fewest interior points normal to a face that the ghost
// fill of bc can draw from with ghost zones of the given width. Mirror fills
// reach ghost points deep into the interior and extrapolation uses the last
// two points.
func (bc BCType) MinPoints(ghost int) int {
	switch bc {
	case BCReflecting, BCSymmetry:
		return ghost
	case BCRadiative:
		return 2
	}
	return 1
}

// BCNameMap provides a mapping from common boundary condition names to BCType
// Keys are lowercase for case-insensitive matching
var BCNameMap = map[string]BCType{
	"none":       BCNone,
	"periodic":   BCPeriodic,
	"reflecting": BCReflecting,
	"reflect":    BCReflecting,
	"dirichlet":  BCReflecting,
	"symmetry":   BCSymmetry,
	"symmetric":  BCSymmetry,
	"neumann":    BCSymmetry,
	"radiative":  BCRadiative,
	"radiation":  BCRadiative,
	"newrad":     BCRadiative,
	"analytic":   BCAnalytic,
	"exact":      BCAnalytic,
}

// ParseBCName converts a boundary condition name string to BCType
// The matching is case-insensitive and trims whitespace
func ParseBCName(name string) (bc BCType, err error) {
	var (
		ok        bool
		lowerName = strings.ToLower(strings.TrimSpace(name))
	)
	if bc, ok = BCNameMap[lowerName]; !ok {
		err = fmt.Errorf("unknown boundary condition type: %q", name)
	}
	return
}

// Face identifies one of the six faces of a structured patch
type Face uint8

const (
	XLower Face = iota
	XUpper
	YLower
	YUpper
	ZLower
	ZUpper
)

var FaceNames = [6]string{"xlower", "xupper", "ylower", "yupper", "zlower", "zupper"}

func (f Face) String() string { return FaceNames[f] }

// Dir is the coordinate direction normal to the face
func (f Face) Dir() int { return int(f) / 2 }

// IsUpper is true for faces on the high index side
func (f Face) IsUpper() bool { return int(f)%2 == 1 }

func ParseFaceName(name string) (f Face, err error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	for i, fn := range FaceNames {
		if fn == lowerName {
			return Face(i), nil
		}
	}
	err = fmt.Errorf("unknown face name: %q", name)
	return
}
