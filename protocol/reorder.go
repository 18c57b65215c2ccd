package protocol

// Reorder pairs each result vector with its landmark index and returns
// the vectors sorted by landmark ascending, i.e. in original input
// order. Every landmark must be a unique index in [0, len(vectors));
// duplicates surface as a missing slot.
func Reorder(vectors [][]float64, landmarks []int32) ([][]float64, error) {
	if len(vectors) != len(landmarks) {
		return nil, &ErrResultCountMismatch{Want: len(vectors), Got: len(landmarks)}
	}

	ordered := make([][]float64, len(vectors))
	for i, lm := range landmarks {
		if lm < 0 || int(lm) >= len(vectors) {
			return nil, &ErrInvalidLandmark{Landmark: lm, Count: len(vectors)}
		}
		ordered[lm] = vectors[i]
	}
	for i, vec := range ordered {
		if vec == nil {
			return nil, &ErrInvalidLandmark{Landmark: int32(i), Count: len(vectors)}
		}
	}
	return ordered, nil
}
