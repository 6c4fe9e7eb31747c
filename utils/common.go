package utils

// SymIndex packs the index pair of a symmetric 3x3 tensor into the
// xx, xy, xz, yy, yz, zz ordering used for metric components.
func SymIndex(i, j int) int {
	if i > j {
		i, j = j, i
	}
	switch i {
	case 0:
		return j
	case 1:
		return 2 + j
	default:
		return 5
	}
}

// SymPairs is the inverse of SymIndex.
var SymPairs = [6][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 2}, {2, 2}}
