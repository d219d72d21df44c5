package scan

// Context is one of the 365 regular contexts (plus the two run-interruption
// contexts reuse this shape). It carries the adaptive state used to derive
// the Golomb parameter k and the bias correction C, grounded on
// jpegls/lossless/context.go's Context/ContextTable pair.
type Context struct {
	A int // accumulated magnitude of prediction errors
	B int // accumulated bias
	C int // current bias correction value
	N int // sample count
}

// NewContext initializes a context for the given RANGE, per Annex C.2.3
// (A is seeded so the initial Golomb parameter is not zero).
func NewContext(rng int) Context {
	a := (rng + 32) / 64
	if a < 2 {
		a = 2
	}
	return Context{A: a, B: 0, C: 0, N: 1}
}

// ComputeGolombParameter derives k such that N << k >= A (Annex C.2.3).
func (c Context) ComputeGolombParameter() int {
	k := 0
	for (c.N << uint(k)) < c.A {
		k++
	}
	return k
}

// GetPredictionCorrection returns the current bias correction value to be
// added to (sign-adjusted onto) the MED prediction.
func (c Context) GetPredictionCorrection() int {
	return c.C
}

// NegatesOnZeroK reports the Annex A.5.2 condition under which, when the
// Golomb parameter k is zero, the error value's sign must be flipped
// before MapErrorValue to avoid an otherwise-redundant codeword. The
// transform is an involution, so applying it again on decode recovers
// the original error value.
func (c Context) NegatesOnZeroK() bool {
	return 2*c.B <= -c.N
}

// FlipForZeroK applies the Annex A.5.2 sign flip.
func FlipForZeroK(errorValue int) int {
	return -errorValue - 1
}

// Update applies the Annex C.2.3 adaptation after coding one error value
// (already sign-corrected to the context's canonical orientation) and
// returns the updated context.
func (c Context) Update(errorValue, reset int) Context {
	c.B += errorValue
	c.A += absInt(errorValue)
	if c.N == reset {
		c.A >>= 1
		c.B >>= 1
		c.N >>= 1
	}
	c.N++

	if c.B <= -c.N {
		if c.C > -128 {
			c.C--
		}
		c.B += c.N
		if c.B <= -c.N {
			c.B = -c.N + 1
		}
	} else if c.B > 0 {
		if c.C < 127 {
			c.C++
		}
		c.B -= c.N
		if c.B > 0 {
			c.B = 0
		}
	}
	return c
}

// ContextTable holds the 365 regular contexts indexed by the signed
// 3-tuple (q1, q2, q3), each in [-4, 4], plus the sign applied to recover
// the canonical (non-negative leading component) index, grounded on
// jpegls/lossless/context.go's ContextTable.
type ContextTable struct {
	contexts []Context
	rng      int
}

// NewContextTable builds the 365-entry regular context table for the
// given RANGE.
func NewContextTable(rng int) *ContextTable {
	ct := &ContextTable{
		contexts: make([]Context, 365),
		rng:      rng,
	}
	c := NewContext(rng)
	for i := range ct.contexts {
		ct.contexts[i] = c
	}
	return ct
}

// Index folds (q1, q2, q3), each in [-4,4], into [0, 364] and a sign,
// applying the context sign-symmetry rule of ISO/IEC 14495-1 §A.3: when
// the leading nonzero component is negative, all three are negated and
// the caller must also negate the coded error value.
func Index(q1, q2, q3 int) (idx int, sign int) {
	sign = 1
	if q1 < 0 || (q1 == 0 && q2 < 0) || (q1 == 0 && q2 == 0 && q3 < 0) {
		sign = -1
		q1, q2, q3 = -q1, -q2, -q3
	}
	idx = (q1*9+q2)*9 + q3
	return idx, sign
}

// Get returns the context for (q1, q2, q3) and the sign that must be
// applied to the prediction error before it is coded/decoded against it.
func (ct *ContextTable) Get(q1, q2, q3 int) (Context, int) {
	idx, sign := Index(q1, q2, q3)
	return ct.contexts[idx], sign
}

// Set stores an updated context back by (q1, q2, q3).
func (ct *ContextTable) Set(q1, q2, q3 int, c Context) {
	idx, _ := Index(q1, q2, q3)
	ct.contexts[idx] = c
}

// MapErrorValue maps a signed prediction error onto a non-negative code
// value by interleaving sign: 0,-1,1,-2,2,... -> 0,1,2,3,4,...
func MapErrorValue(errorValue int) int {
	if errorValue >= 0 {
		return 2 * errorValue
	}
	return -2*errorValue - 1
}

// UnmapErrorValue inverts MapErrorValue.
func UnmapErrorValue(mapped int) int {
	if mapped&1 == 0 {
		return mapped / 2
	}
	return -(mapped + 1) / 2
}
