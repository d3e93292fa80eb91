package ion

import (
	"bytes"
	"testing"

	"github.com/threedepict/tomo/geom"
)

func TestWriteReadWriteIsByteIdentical(t *testing.T) {
	hits := []Hit{
		{Pos: geom.Pt(1.5, -2.25, 0), Value: 3.125},
		{Pos: geom.Pt(0, 0, 0), Value: 0},
		{Pos: geom.Pt(-100.5, 200.25, 50), Value: 99.5},
	}

	var first bytes.Buffer
	if err := WriteAll(&first, hits); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	roundTripped, err := ReadAll(bytes.NewReader(first.Bytes()))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	var second bytes.Buffer
	if err := WriteAll(&second, roundTripped); err != nil {
		t.Fatalf("WriteAll (2nd): %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Fatalf("write->read->write not byte-identical: %v != %v", first.Bytes(), second.Bytes())
	}
}

func TestReadAllRejectsTruncatedInput(t *testing.T) {
	_, err := ReadAll(bytes.NewReader(make([]byte, RecordSize+1)))
	if err == nil {
		t.Fatal("ReadAll accepted a truncated record, want ErrTruncated")
	}
}

func TestBoundingCubeEmptyForNoHits(t *testing.T) {
	b := BoundingCube(nil)
	if b.Valid() {
		t.Fatal("BoundingCube(nil) is valid, want empty/invalid")
	}
}
