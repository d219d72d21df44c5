package scan

import (
	"bytes"
	"testing"

	"github.com/cocosip/go-jpegls/bitio"
)

func makeGradientPlane(width, height, maxVal int) []int {
	plane := make([]int, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			plane[y*width+x] = (x*7 + y*13) % (maxVal + 1)
		}
	}
	return plane
}

func makeFlatPlane(width, height, value int) []int {
	plane := make([]int, width*height)
	for i := range plane {
		plane[i] = value
	}
	return plane
}

func roundTripComponent(t *testing.T, p Params, samples []int) []int {
	t.Helper()
	codec := New(p)
	recon := make([]int, p.Width*p.Height)

	var buf bytes.Buffer
	w := bitio.NewWriter(&buf)
	if err := codec.EncodeComponent(w, samples, recon); err != nil {
		t.Fatalf("EncodeComponent: %v", err)
	}
	if err := w.EndScan(); err != nil {
		t.Fatalf("EndScan: %v", err)
	}

	decoded := make([]int, p.Width*p.Height)
	r := bitio.NewReader(bytes.NewReader(buf.Bytes()))
	dcodec := New(p)
	if err := dcodec.DecodeComponent(r, decoded); err != nil {
		t.Fatalf("DecodeComponent: %v", err)
	}
	return decoded
}

func TestLosslessRoundTripGradient(t *testing.T) {
	p := Params{Width: 16, Height: 16, MaxVal: 255, Near: 0, Reset: 64}
	samples := makeGradientPlane(16, 16, 255)
	decoded := roundTripComponent(t, p, samples)
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, decoded[i], samples[i])
		}
	}
}

func TestLosslessRoundTripFlatTriggersRunMode(t *testing.T) {
	p := Params{Width: 32, Height: 8, MaxVal: 255, Near: 0, Reset: 64}
	samples := makeFlatPlane(32, 8, 120)
	decoded := roundTripComponent(t, p, samples)
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, decoded[i], samples[i])
		}
	}
}

func TestNearLosslessRoundTripWithinBound(t *testing.T) {
	p := Params{Width: 16, Height: 16, MaxVal: 255, Near: 3, Reset: 64}
	samples := makeGradientPlane(16, 16, 255)
	decoded := roundTripComponent(t, p, samples)
	for i := range samples {
		diff := samples[i] - decoded[i]
		if diff < 0 {
			diff = -diff
		}
		if diff > p.Near {
			t.Fatalf("sample %d: |%d - %d| = %d exceeds NEAR=%d", i, samples[i], decoded[i], diff, p.Near)
		}
	}
}

func TestRestartIntervalRoundTrip(t *testing.T) {
	p := Params{Width: 10, Height: 9, MaxVal: 255, Near: 0, Reset: 64, RestartInterval: 3}
	samples := makeGradientPlane(10, 9, 255)
	decoded := roundTripComponent(t, p, samples)
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, decoded[i], samples[i])
		}
	}
}

// TestFirstRowGradientUsesRegularMode exercises the first-row edge case
// directly: only the first sample (a=b=c=d=0) starts a run, which the
// second sample interrupts; from the third sample on a is non-zero, so
// the gradients are not all zero and the rest of the row is coded in
// regular mode rather than collapsing into one spurious run.
func TestFirstRowGradientUsesRegularMode(t *testing.T) {
	p := Params{Width: 4, Height: 1, MaxVal: 255, Near: 0, Reset: 64}
	samples := []int{0, 1, 2, 3}
	decoded := roundTripComponent(t, p, samples)
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, decoded[i], samples[i])
		}
	}
}

func TestRunModeMixedWithInterruption(t *testing.T) {
	p := Params{Width: 20, Height: 4, MaxVal: 255, Near: 0, Reset: 64}
	samples := make([]int, 20*4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 20; x++ {
			v := 50
			if x > 14 {
				v = 50 + (x - 14) // interrupts the run partway through the line
			}
			samples[y*20+x] = v
		}
	}
	decoded := roundTripComponent(t, p, samples)
	for i := range samples {
		if decoded[i] != samples[i] {
			t.Fatalf("mismatch at %d: got %d want %d", i, decoded[i], samples[i])
		}
	}
}
