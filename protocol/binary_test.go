package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	header := Header{
		SampleCount: 2,
		SampleDim:   3,
		Theta:       0.5,
		Perplexity:  50,
		OutputDims:  2,
	}
	require.NoError(t, w.WriteHeader(header))
	require.NoError(t, w.WriteSample([]float64{1, 2, 3}))
	require.NoError(t, w.WriteSample([]float64{4, 5, 6}))
	require.NoError(t, w.WriteSeed(42))

	// Two int32, two float64, one int32 header; 2x3 float64 samples; one
	// int32 seed. No padding anywhere.
	wantLen := (4 + 4 + 8 + 8 + 4) + 2*3*8 + 4
	require.Equal(t, wantLen, buf.Len())

	r := bytes.NewReader(buf.Bytes())
	var got Header
	require.NoError(t, binary.Read(r, binary.LittleEndian, &got))
	assert.Equal(t, header, got)

	samples := make([]float64, 6)
	require.NoError(t, binary.Read(r, binary.LittleEndian, samples))
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, samples)

	var seed int32
	require.NoError(t, binary.Read(r, binary.LittleEndian, &seed))
	assert.Equal(t, int32(42), seed)
}

// writeResult builds a synthetic engine output stream. Vectors are given
// in engine emission order with their landmarks; costs pad the tail like
// the real engine does.
func writeResult(t *testing.T, header ResultHeader, vectors [][]float64, landmarks []int32, costs []float64) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, &header))
	for _, vec := range vectors {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, vec))
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, landmarks))
	if costs != nil {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, costs))
	}
	return &buf
}

func TestDecodeResultRestoresOrder(t *testing.T) {
	// Engine emits in fully reversed order; landmarks carry the truth.
	buf := writeResult(t,
		ResultHeader{Count: 3, Dims: 2},
		[][]float64{{2, 20}, {1, 10}, {0, 0}},
		[]int32{2, 1, 0},
		[]float64{0.1, 0.2, 0.3},
	)

	got, err := DecodeResult(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0}, {1, 10}, {2, 20}}, got)
}

func TestDecodeResultIgnoresTrailingCosts(t *testing.T) {
	buf := writeResult(t,
		ResultHeader{Count: 1, Dims: 2},
		[][]float64{{7, 8}},
		[]int32{0},
		[]float64{0.5},
	)
	before := buf.Len()

	got, err := DecodeResult(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{7, 8}}, got)

	// The cost record bytes must stay unconsumed.
	assert.Equal(t, 8, buf.Len())
	assert.Less(t, buf.Len(), before)
}

func TestDecodeResultCountMismatch(t *testing.T) {
	buf := writeResult(t,
		ResultHeader{Count: 2, Dims: 2},
		[][]float64{{1, 2}, {3, 4}},
		[]int32{0, 1},
		nil,
	)

	_, err := DecodeResult(buf, 3)
	var mismatch *ErrResultCountMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Want)
	assert.Equal(t, 2, mismatch.Got)
}

func TestDecodeResultTruncated(t *testing.T) {
	tests := []struct {
		name string
		trim int
	}{
		{"MissingLandmarks", 2 * 4},
		{"MissingVectorTail", 2*4 + 8},
		{"HeaderOnly", 2*4 + 2*2*8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := writeResult(t,
				ResultHeader{Count: 2, Dims: 2},
				[][]float64{{1, 2}, {3, 4}},
				[]int32{0, 1},
				nil,
			)
			buf.Truncate(buf.Len() - tt.trim)

			_, err := DecodeResult(buf, 2)
			assert.ErrorIs(t, err, ErrTruncatedStream)
		})
	}
}

func TestDecodeResultRejectsBadHeader(t *testing.T) {
	buf := writeResult(t, ResultHeader{Count: 0, Dims: 2}, nil, nil, nil)
	_, err := DecodeResult(buf, 0)
	assert.ErrorIs(t, err, ErrInvalidHeader)
}
