// Package ion implements the IonHit record and its binary file format.
package ion

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/threedepict/tomo/geom"
)

// Hit is a single ion detection: a position plus a scalar value, which
// is a mass-to-charge ratio by convention (spec §3). The on-disk record
// is a fixed-size little-endian float32 quadruple (spec §6), but values
// are carried as float64 in memory for processing precision.
type Hit struct {
	Pos   geom.Point3D
	Value float64
}

// RecordSize is the size, in bytes, of one IonHit on disk: four
// little-endian float32 values (x,y,z,value).
const RecordSize = 16

// ReadAll reads a binary ion stream. The input length must be an exact
// multiple of RecordSize, per spec §6; otherwise ErrTruncated is
// returned.
func ReadAll(r io.Reader) ([]Hit, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ion.ReadAll: %w", err)
	}
	if len(data)%RecordSize != 0 {
		return nil, fmt.Errorf("ion.ReadAll: %w: size %d is not a multiple of %d", ErrTruncated, len(data), RecordSize)
	}
	n := len(data) / RecordSize
	hits := make([]Hit, n)
	for i := 0; i < n; i++ {
		off := i * RecordSize
		x := math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		y := math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:]))
		z := math.Float32frombits(binary.LittleEndian.Uint32(data[off+8:]))
		v := math.Float32frombits(binary.LittleEndian.Uint32(data[off+12:]))
		hits[i] = Hit{Pos: geom.Pt(float64(x), float64(y), float64(z)), Value: float64(v)}
	}
	return hits, nil
}

// ErrTruncated is returned by ReadAll when the input is not an exact
// multiple of RecordSize.
var ErrTruncated = fmt.Errorf("ion: truncated binary ion file")

// WriteAll writes hits to w in the binary format described by spec §6.
func WriteAll(w io.Writer, hits []Hit) error {
	buf := make([]byte, RecordSize*len(hits))
	for i, h := range hits {
		off := i * RecordSize
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(float32(h.Pos.X)))
		binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(float32(h.Pos.Y)))
		binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(float32(h.Pos.Z)))
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(float32(h.Value)))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("ion.WriteAll: %w", err)
	}
	return nil
}

// BoundingCube returns the bounding cube of hits.
func BoundingCube(hits []Hit) geom.BoundCube {
	b := geom.EmptyBoundCube()
	for _, h := range hits {
		b = b.ExpandByPoint(h.Pos)
	}
	return b
}
