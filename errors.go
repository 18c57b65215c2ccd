package bhtsne

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the sample matrix has no rows.
	ErrEmptyInput = errors.New("input must contain at least one sample")

	// ErrEmptyRow is returned when a sample has no columns.
	ErrEmptyRow = errors.New("samples must have at least one dimension")
)

// ErrRaggedMatrix indicates a non-rectangular sample matrix.
type ErrRaggedMatrix struct {
	Row      int
	Expected int
	Actual   int
}

func (e *ErrRaggedMatrix) Error() string {
	return fmt.Sprintf("ragged matrix: row %d has %d columns, expected %d", e.Row, e.Actual, e.Expected)
}

// validate checks the sample matrix shape before any work begins.
// Shape errors are fatal and reported before the engine is invoked.
func validate(samples [][]float64) (n, d int, err error) {
	if len(samples) == 0 {
		return 0, 0, ErrEmptyInput
	}
	d = len(samples[0])
	if d == 0 {
		return 0, 0, ErrEmptyRow
	}
	for i, row := range samples {
		if len(row) != d {
			return 0, 0, &ErrRaggedMatrix{Row: i, Expected: d, Actual: len(row)}
		}
	}
	return len(samples), d, nil
}
