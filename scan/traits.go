// Package scan implements the JPEG-LS (ISO/IEC 14495-1) scan codec: the
// LOCO-I predictor, context modeller, Golomb-Rice coder and run-length
// mode that must run in lockstep on the encoder and decoder side of a
// single scan. It is grounded on the CharLS reference decoder
// (original_source/src/*.h) and on this module's teacher lineage,
// jpegls/lossless and jpegls/nearlossless, unified here so NEAR is a
// runtime parameter of one codec instead of two parallel implementations.
package scan

// Traits holds the derived JPEG-LS parameters for one scan: MAXVAL, the
// NEAR (allowed lossy error) bound, and the quantities Annex C derives
// from them.
type Traits struct {
	MaxVal int
	Near   int
	Range  int
	Qbpp   int
	Limit  int
	Reset  int
	T1     int
	T2     int
	T3     int
}

// NewTraits computes RANGE, qbpp, bpp, limit and, when t1/t2/t3 are all
// zero, the Annex C.2.4.1.1 default thresholds for the given maxVal/near.
func NewTraits(maxVal, near, t1, t2, t3, reset int) Traits {
	if reset <= 0 {
		reset = 64
	}
	rng := (maxVal+2*near)/(2*near+1) + 1

	bpp := 2
	for (1 << uint(bpp)) < maxVal+1 {
		bpp++
	}
	qbpp := ceilLog2(rng)
	limitShift := bpp
	if 8 > limitShift {
		limitShift = 8
	}
	limit := 2 * (bpp + limitShift)

	if t1 == 0 && t2 == 0 && t3 == 0 {
		t1, t2, t3 = defaultThresholds(maxVal, near)
	}

	return Traits{
		MaxVal: maxVal,
		Near:   near,
		Range:  rng,
		Qbpp:   qbpp,
		Limit:  limit,
		Reset:  reset,
		T1:     t1,
		T2:     t2,
		T3:     t3,
	}
}

func ceilLog2(n int) int {
	k := 0
	for (1 << uint(k)) < n {
		k++
	}
	return k
}

// defaultThresholds implements Annex C.2.4.1.1/C.2.4.1.2: the T1/T2/T3
// formulas for MAXVAL >= 128, and the fixed small-range table otherwise.
func defaultThresholds(maxVal, near int) (int, int, int) {
	if maxVal >= 128 {
		factor := (minInt(maxVal, 4095) + 128) / 256
		t1 := clampThreshold(factor*(3-2)+2+3*near, near+1, maxVal)
		t2 := clampThreshold(factor*(7-3)+3+5*near, t1, maxVal)
		t3 := clampThreshold(factor*(21-4)+4+7*near, t2, maxVal)
		return t1, t2, t3
	}

	factor := 256 / (maxVal + 1)
	t1 := clampThreshold(maxInt(2, 3/factor+3*near), near+1, maxVal)
	t2 := clampThreshold(maxInt(3, 7/factor+5*near), t1, maxVal)
	t3 := clampThreshold(maxInt(4, 21/factor+7*near), t2, maxVal)
	return t1, t2, t3
}

func clampThreshold(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// ComputeReconstructedSample dequantizes a near-lossless error and fixes
// it into [0, MaxVal] (masking when MaxVal+1 is a power of two and NEAR
// is zero; otherwise bringing a value outside [-NEAR, MaxVal+NEAR] back
// by RANGE*(2*NEAR+1) and then clamping), matching CharLS's
// default_traits.h.
func (t Traits) ComputeReconstructedSample(prediction, errorValue int) int {
	return t.fixReconstructedValue(prediction + t.dequantize(errorValue))
}

func (t Traits) dequantize(errorValue int) int {
	return errorValue * (2*t.Near + 1)
}

func (t Traits) fixReconstructedValue(value int) int {
	if t.Near == 0 && (t.MaxVal+1)&t.MaxVal == 0 {
		return value & t.MaxVal
	}
	if value < -t.Near {
		value += t.Range * (2*t.Near + 1)
	} else if value > t.MaxVal+t.Near {
		value -= t.Range * (2*t.Near + 1)
	}
	return t.CorrectPrediction(value)
}

// CorrectPrediction clamps a predicted value into [0, MaxVal].
func (t Traits) CorrectPrediction(pred int) int {
	if pred < 0 {
		return 0
	}
	if pred > t.MaxVal {
		return t.MaxVal
	}
	return pred
}

// ModuloRange reduces a raw prediction error into [-RANGE/2, RANGE/2 - 1].
func (t Traits) ModuloRange(errorValue int) int {
	if errorValue < 0 {
		errorValue += t.Range
	}
	if errorValue >= (t.Range+1)/2 {
		errorValue -= t.Range
	}
	return errorValue
}

// QuantizeError applies the near-lossless error quantizer (identity when
// NEAR is zero) and reduces the result modulo RANGE.
func (t Traits) QuantizeError(e int) int {
	return t.ModuloRange(t.quantize(e))
}

func (t Traits) quantize(errorValue int) int {
	if t.Near == 0 {
		return errorValue
	}
	if errorValue > 0 {
		return (errorValue + t.Near) / (2*t.Near + 1)
	}
	return -(t.Near - errorValue) / (2*t.Near + 1)
}

// QuantizeGradient maps a gradient difference to one of {-4,...,4} using
// T1/T2/T3 and NEAR (ISO/IEC 14495-1 §A.3).
func (t Traits) QuantizeGradient(d int) int {
	if d <= -t.T3 {
		return -4
	}
	if d <= -t.T2 {
		return -3
	}
	if d <= -t.T1 {
		return -2
	}
	if d < -t.Near {
		return -1
	}
	if d <= t.Near {
		return 0
	}
	if d < t.T1 {
		return 1
	}
	if d < t.T2 {
		return 2
	}
	if d < t.T3 {
		return 3
	}
	return 4
}

// IsNear reports whether lhs and rhs are within NEAR of each other.
func (t Traits) IsNear(lhs, rhs int) bool {
	return absInt(lhs-rhs) <= t.Near
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
