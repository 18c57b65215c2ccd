// Package pca performs the linear preprocessing pass that runs before
// the nonlinear embedding: center the data and project it onto the top
// directions of maximal variance.
package pca

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ErrDecomposition is returned when the eigendecomposition of the
// covariance matrix fails to converge. There is no retry; degenerate
// input surfaces as-is.
var ErrDecomposition = errors.New("eigendecomposition of covariance matrix failed")

// Reduce centers the n×d sample matrix x and projects it onto the k
// eigenvectors of the covariance matrix with the largest eigenvalues,
// returning an n×min(k, d) matrix. k larger than d silently clamps.
//
// Tie-breaking between exactly-equal eigenvalues follows the stable
// sort over the factorization's output ordering and is
// implementation-defined.
func Reduce(x mat.Matrix, k int) (*mat.Dense, error) {
	n, d := x.Dims()
	if n < 1 || d < 1 {
		return nil, fmt.Errorf("pca: matrix must be non-empty, got %dx%d", n, d)
	}
	if k < 1 {
		return nil, fmt.Errorf("pca: target dims must be positive, got %d", k)
	}
	if k > d {
		k = d
	}

	centered := center(x)

	// Covariance up to scale: scaling by 1/(n-1) does not change the
	// eigenvectors, so the projection is identical without it.
	var cov mat.Dense
	cov.Mul(centered.T(), centered)
	sym := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			sym.SetSym(i, j, cov.At(i, j))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, ErrDecomposition
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// EigenSym returns eigenvalues in ascending order; the projection
	// wants the largest first.
	order := make([]int, d)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	projection := mat.NewDense(d, k, nil)
	for col := 0; col < k; col++ {
		for row := 0; row < d; row++ {
			projection.Set(row, col, vectors.At(row, order[col]))
		}
	}

	reduced := mat.NewDense(n, k, nil)
	reduced.Mul(centered, projection)
	return reduced, nil
}

// center returns a copy of x with the per-column mean subtracted from
// every row. The input is never mutated.
func center(x mat.Matrix) *mat.Dense {
	n, d := x.Dims()

	means := make([]float64, d)
	for j := 0; j < d; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += x.At(i, j)
		}
		means[j] = sum / float64(n)
	}

	centered := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			centered.Set(i, j, x.At(i, j)-means[j])
		}
	}
	return centered
}
