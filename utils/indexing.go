package utils

// Index is a list of flattened grid indices
type Index []int

func NewIndex(N int) (I Index) {
	return make(Index, N)
}
