package frame

import (
	"bytes"
	"testing"
)

func TestSOF55RoundTrip(t *testing.T) {
	h := FrameHeader{
		Precision: 8,
		Height:    480,
		Width:     640,
		Components: []FrameComponent{
			{ID: 1, HSampling: 1, VSampling: 1},
			{ID: 2, HSampling: 1, VSampling: 1},
			{ID: 3, HSampling: 1, VSampling: 1},
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := WriteSOF55(w, h); err != nil {
		t.Fatalf("WriteSOF55: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	marker, err := r.ReadMarker()
	if err != nil || marker != MarkerSOF55 {
		t.Fatalf("ReadMarker = %#x, %v, want %#x", marker, err, MarkerSOF55)
	}
	body, err := r.ReadSegment()
	if err != nil {
		t.Fatalf("ReadSegment: %v", err)
	}
	got, err := ReadSOF55(body)
	if err != nil {
		t.Fatalf("ReadSOF55: %v", err)
	}
	if got.Width != h.Width || got.Height != h.Height || got.Precision != h.Precision || len(got.Components) != 3 {
		t.Fatalf("ReadSOF55 = %+v, want %+v", got, h)
	}
}

func TestLSERoundTrip(t *testing.T) {
	p := PresetParams{MaxVal: 255, T1: 3, T2: 7, T3: 21, Reset: 64}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := WriteLSE(w, p); err != nil {
		t.Fatalf("WriteLSE: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	marker, err := r.ReadMarker()
	if err != nil || marker != MarkerLSE {
		t.Fatalf("ReadMarker = %#x, %v", marker, err)
	}
	body, err := r.ReadSegment()
	if err != nil {
		t.Fatalf("ReadSegment: %v", err)
	}
	got, err := ReadLSE(body)
	if err != nil {
		t.Fatalf("ReadLSE: %v", err)
	}
	if got != p {
		t.Fatalf("ReadLSE = %+v, want %+v", got, p)
	}
}

func TestSOSRoundTrip(t *testing.T) {
	h := ScanHeader{ComponentIDs: []int{1, 2, 3}, Near: 2, Interleave: InterleaveLine, PointTransform: 0}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := WriteSOS(w, h); err != nil {
		t.Fatalf("WriteSOS: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	marker, err := r.ReadMarker()
	if err != nil || marker != MarkerSOS {
		t.Fatalf("ReadMarker = %#x, %v", marker, err)
	}
	body, err := r.ReadSegment()
	if err != nil {
		t.Fatalf("ReadSegment: %v", err)
	}
	got, err := ReadSOS(body)
	if err != nil {
		t.Fatalf("ReadSOS: %v", err)
	}
	if got.Near != h.Near || got.Interleave != h.Interleave || len(got.ComponentIDs) != 3 {
		t.Fatalf("ReadSOS = %+v, want %+v", got, h)
	}
}

func TestDRIRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := WriteDRI(w, 8); err != nil {
		t.Fatalf("WriteDRI: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	r := NewReader(&buf)
	marker, err := r.ReadMarker()
	if err != nil || marker != MarkerDRI {
		t.Fatalf("ReadMarker = %#x, %v, want %#x", marker, err, MarkerDRI)
	}
	body, err := r.ReadSegment()
	if err != nil {
		t.Fatalf("ReadSegment: %v", err)
	}
	got, err := ReadDRI(body)
	if err != nil {
		t.Fatalf("ReadDRI: %v", err)
	}
	if got != 8 {
		t.Fatalf("ReadDRI = %d, want 8", got)
	}
}

func TestReaderRejectsZeroStuffedMarker(t *testing.T) {
	data := []byte{0xFF, 0x00}
	r := NewReader(bytes.NewReader(data))
	if _, err := r.ReadMarker(); err == nil {
		t.Fatalf("expected error reading a 0x00-stuffed byte as a marker")
	}
}

func TestReaderSkipsFillBytes(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0xFF, byte(MarkerEOI & 0xFF)}
	r := NewReader(bytes.NewReader(data))
	marker, err := r.ReadMarker()
	if err != nil || marker != MarkerEOI {
		t.Fatalf("ReadMarker = %#x, %v, want EOI", marker, err)
	}
}
