package scan

import "testing"

func TestNewTraitsLosslessRange(t *testing.T) {
	tr := NewTraits(255, 0, 0, 0, 0, 64)
	if tr.Range != 256 {
		t.Errorf("Range = %d, want 256", tr.Range)
	}
	if tr.T1 == 0 || tr.T2 == 0 || tr.T3 == 0 {
		t.Errorf("expected non-zero default thresholds, got T1=%d T2=%d T3=%d", tr.T1, tr.T2, tr.T3)
	}
	if !(tr.T1 < tr.T2 && tr.T2 < tr.T3) {
		t.Errorf("expected T1 < T2 < T3, got %d %d %d", tr.T1, tr.T2, tr.T3)
	}
}

func TestTraitsReconstructRoundTrip(t *testing.T) {
	tr := NewTraits(255, 0, 0, 0, 0, 64)
	for pred := 0; pred <= 255; pred += 17 {
		for actual := 0; actual <= 255; actual += 23 {
			errorValue := tr.ModuloRange(actual - pred)
			got := tr.ComputeReconstructedSample(pred, errorValue)
			if got != actual {
				t.Errorf("pred=%d actual=%d: reconstructed=%d", pred, actual, got)
			}
		}
	}
}

func TestQuantizeGradientSymmetry(t *testing.T) {
	tr := NewTraits(255, 0, 0, 0, 0, 64)
	for d := -300; d <= 300; d++ {
		if tr.QuantizeGradient(d) != -tr.QuantizeGradient(-d) {
			t.Fatalf("QuantizeGradient(%d)=%d not antisymmetric with QuantizeGradient(%d)=%d",
				d, tr.QuantizeGradient(d), -d, tr.QuantizeGradient(-d))
		}
	}
}

func TestNearLosslessIsNear(t *testing.T) {
	tr := NewTraits(255, 3, 0, 0, 0, 64)
	if !tr.IsNear(100, 102) {
		t.Errorf("expected 100 and 102 to be within NEAR=3")
	}
	if tr.IsNear(100, 105) {
		t.Errorf("expected 100 and 105 to exceed NEAR=3")
	}
}
