package scan

// runModeJ is the 32-entry run-length exponent table from Annex A.7,
// Table A.1. Grounded on jpegls/lossless/run_mode.go's package-level J
// array, which carries the correct 32-entry table; spec.md's prose
// listing of this table drops two entries in the middle (reading
// ...,3,3,4,4,... where the standard and this teacher array both have
// ...,3,3,3,3,4,4,...) and is treated as a transcription slip rather
// than as a deliberate redesign (see DESIGN.md).
var runModeJ = [32]int{
	0, 0, 0, 0, 1, 1, 1, 1,
	2, 2, 2, 2, 3, 3, 3, 3,
	4, 4, 5, 5, 6, 6, 7, 7,
	8, 9, 10, 11, 12, 13, 14, 15,
}

// RunState tracks the adaptive run-index J used across an entire scan
// component (reset per line, not per context), and the two
// run-interruption contexts (one for when the interrupting sample a
// equals b, one for when it doesn't).
type RunState struct {
	RunIndex int
	Interrupt [2]Context
}

// NewRunState seeds the two run-interruption contexts per Annex A.8.
func NewRunState(rng int) *RunState {
	return &RunState{
		Interrupt: [2]Context{NewContext(rng), NewContext(rng)},
	}
}

// RunLength returns the run-length limit 1<<J(RunIndex) for the current
// run index, used to decide how many identical samples to request/match
// before falling back to run-interruption coding.
func (rs *RunState) RunLength() int {
	return 1 << uint(runModeJ[rs.RunIndex])
}

// Increment advances the run index after a full run segment is coded
// (Annex A.7: increase J unless already at the top of the table).
func (rs *RunState) Increment() {
	if rs.RunIndex < len(runModeJ)-1 {
		rs.RunIndex++
	}
}

// Decrement reduces the run index after a run is ended by an
// interruption sample (Annex A.7).
func (rs *RunState) Decrement() {
	if rs.RunIndex > 0 {
		rs.RunIndex--
	}
}

// runModeBitsForIndex returns the number of bits used to code a
// non-terminal run segment's length at the current index: J(RunIndex),
// or 0 once J reaches the top of the table (a full-width run still ends
// in a single terminating zero/one rather than a coded count).
func runModeBitsForIndex(runIndex int) int {
	return runModeJ[runIndex]
}
