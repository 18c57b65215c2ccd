package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer encodes the engine's input stream.
//
// Writes are strictly sequential: header first, then one record per
// sample in input order, then an optional trailing seed. There is no
// partial-write recovery; the first error aborts the stream.
type Writer struct {
	w         io.Writer
	byteOrder binary.ByteOrder
}

// NewWriter creates a writer for the engine's input stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:         w,
		byteOrder: binary.LittleEndian, // Native on x86/ARM, matches the engine build
	}
}

// WriteHeader writes the input header record.
func (pw *Writer) WriteHeader(header Header) error {
	if err := binary.Write(pw.w, pw.byteOrder, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteSample writes one sample record of SampleDim float64 values.
func (pw *Writer) WriteSample(sample []float64) error {
	if err := binary.Write(pw.w, pw.byteOrder, sample); err != nil {
		return fmt.Errorf("write sample: %w", err)
	}
	return nil
}

// WriteSeed appends the optional random seed record. Callers only
// invoke this when a non-default seed was requested; the engine treats
// the record's absence as "seed from time".
func (pw *Writer) WriteSeed(seed int32) error {
	if err := binary.Write(pw.w, pw.byteOrder, seed); err != nil {
		return fmt.Errorf("write seed: %w", err)
	}
	return nil
}

// Reader decodes the engine's output stream.
//
// The framing is fixed: result header, then Count vectors of Dims
// float64, then Count int32 landmarks. A trailing cost record (one
// float64 per sample) follows the landmarks in the stream; nothing here
// reads it, deliberately, so the bytes stay unconsumed.
type Reader struct {
	r         io.Reader
	byteOrder binary.ByteOrder
}

// NewReader creates a reader for the engine's output stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:         r,
		byteOrder: binary.LittleEndian,
	}
}

// ReadResultHeader reads and validates the two-int32 result header.
func (pr *Reader) ReadResultHeader() (ResultHeader, error) {
	var header ResultHeader
	if err := binary.Read(pr.r, pr.byteOrder, &header); err != nil {
		return ResultHeader{}, fmt.Errorf("%w: %w", ErrTruncatedStream, err)
	}
	if header.Count <= 0 || header.Dims <= 0 {
		return ResultHeader{}, fmt.Errorf("%w: count=%d dims=%d", ErrInvalidHeader, header.Count, header.Dims)
	}
	return header, nil
}

// ReadVector reads one result vector of dims float64 values.
func (pr *Reader) ReadVector(dims int) ([]float64, error) {
	vec := make([]float64, dims)
	if err := binary.Read(pr.r, pr.byteOrder, vec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedStream, err)
	}
	return vec, nil
}

// ReadLandmarks reads the count int32 landmark indices framed after all
// result vectors.
func (pr *Reader) ReadLandmarks(count int) ([]int32, error) {
	landmarks := make([]int32, count)
	if err := binary.Read(pr.r, pr.byteOrder, landmarks); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTruncatedStream, err)
	}
	return landmarks, nil
}

// DecodeResult reads the complete result stream and returns the vectors
// restored to input order. wantCount is the number of samples originally
// sent; a differing result count is a protocol violation.
func DecodeResult(r io.Reader, wantCount int) ([][]float64, error) {
	pr := NewReader(r)

	header, err := pr.ReadResultHeader()
	if err != nil {
		return nil, err
	}
	if int(header.Count) != wantCount {
		return nil, &ErrResultCountMismatch{Want: wantCount, Got: int(header.Count)}
	}

	vectors := make([][]float64, header.Count)
	for i := range vectors {
		if vectors[i], err = pr.ReadVector(int(header.Dims)); err != nil {
			return nil, err
		}
	}

	landmarks, err := pr.ReadLandmarks(int(header.Count))
	if err != nil {
		return nil, err
	}

	// The per-sample cost record trailing the landmarks is left unread.
	return Reorder(vectors, landmarks)
}
