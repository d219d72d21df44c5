package scan

// predictMED computes the median edge detector prediction from the causal
// neighbourhood a (left), b (above), c (above-left), per ISO/IEC 14495-1
// §A.2. Grounded on jpegls/lossless/predictor.go's Predict, but this
// unified codec always routes gradient quantization through
// Traits.QuantizeGradient rather than predictor.go's hardcoded
// thresholds, so Annex C.2.4.1.1's configurable T1/T2/T3 actually take
// effect for non-default presets and near-lossless scans.
func predictMED(a, b, c int) int {
	if c >= maxInt(a, b) {
		return minInt(a, b)
	}
	if c <= minInt(a, b) {
		return maxInt(a, b)
	}
	return a + b - c
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// gradients returns the three context gradients D1 = d-b, D2 = b-c,
// D3 = c-a for the causal neighbourhood a,b,c,d.
func gradients(a, b, c, d int) (d1, d2, d3 int) {
	return d - b, b - c, c - a
}

// computeContext quantizes the three raw gradients into (q1, q2, q3),
// each in [-4, 4].
func computeContext(t Traits, a, b, c, d int) (q1, q2, q3 int) {
	d1, d2, d3 := gradients(a, b, c, d)
	return t.QuantizeGradient(d1), t.QuantizeGradient(d2), t.QuantizeGradient(d3)
}

// applySign negates a value according to the context sign established
// by ContextTable.Get/Set: a sign of 1 leaves it unchanged, -1 negates
// it. It does no clamping.
func applySign(value, sign int) int {
	return value * sign
}
