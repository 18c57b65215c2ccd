// Package protocol implements the binary file protocol spoken by the
// bh_tsne engine.
//
// The engine reads its input from data.dat in its working directory and
// writes its output to result.dat in the same directory. Both files use
// fixed-width little-endian records with no padding; the layout is fixed
// by the engine's own compiled platform and is not negotiated at runtime.
// Changing the byte order or field widths here is a breaking-change
// boundary: streams produced with a different layout will not decode.
//
// The result stream is unordered. Each result vector carries a landmark
// index (framed after all vectors) naming the input sample it belongs
// to; Reorder restores input order from those landmarks.
package protocol
