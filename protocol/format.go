package protocol

import (
	"errors"
	"fmt"
)

const (
	// DataFile is the input filename the engine expects in its working directory.
	DataFile = "data.dat"

	// ResultFile is the output filename the engine writes in its working directory.
	ResultFile = "result.dat"
)

var (
	// ErrTruncatedStream indicates the result stream ended before all
	// framed records were read.
	ErrTruncatedStream = errors.New("truncated result stream")

	// ErrInvalidHeader indicates a header with non-positive counts or dims.
	ErrInvalidHeader = errors.New("invalid result header")
)

// Header is the fixed-layout record written once before any sample data:
// two int32, two float64, one int32, in that order.
type Header struct {
	SampleCount int32
	SampleDim   int32
	Theta       float64
	Perplexity  float64
	OutputDims  int32
}

// ResultHeader is the two-int32 record at the start of the engine's output.
type ResultHeader struct {
	Count int32
	Dims  int32
}

// ErrResultCountMismatch indicates the engine returned a different number
// of vectors than it was given. This is a protocol violation, not a user
// error.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrResultCountMismatch struct {
	Want  int
	Got   int
	cause error
}

func (e *ErrResultCountMismatch) Error() string {
	return fmt.Sprintf("result count mismatch: sent %d samples, engine returned %d", e.Want, e.Got)
}

func (e *ErrResultCountMismatch) Unwrap() error { return e.cause }

// ErrInvalidLandmark indicates a landmark index outside [0, count).
type ErrInvalidLandmark struct {
	Landmark int32
	Count    int
}

func (e *ErrInvalidLandmark) Error() string {
	return fmt.Sprintf("invalid landmark index %d for %d results", e.Landmark, e.Count)
}
