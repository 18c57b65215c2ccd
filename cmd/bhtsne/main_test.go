package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadMatrix(t *testing.T) {
	in := "1.0\t0.0\n\n0.5 -2.5\n"
	got, err := readMatrix(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 0}, {0.5, -2.5}}, got)
}

func TestReadMatrixRejectsGarbage(t *testing.T) {
	_, err := readMatrix(strings.NewReader("1.0\tnope\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestWriteRow(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, writeRow(&sb, []float64{1.5, -2, 0}))
	assert.Equal(t, "1.5\t-2\t0\n", sb.String())
}
