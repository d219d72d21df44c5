package scan

import "github.com/cocosip/go-jpegls/bitio"

// encodeRun implements the Annex A.7 run-mode encoder starting at
// (x0, y): it matches consecutive samples against the run value a for
// as long as they stay within NEAR, coding a '1' bit and advancing the
// adaptive run index each time a full 1<<J(RunIndex) segment completes,
// then codes the interruption (a '0' bit, the partial count, and,
// unless the line simply ended, the interrupting sample itself against
// one of the two run-interruption contexts, after which the run index is
// decremented). Returns the x position just past the run.
func (c *Codec) encodeRun(w *bitio.Writer, samples, recon []int, run *RunState, table *ContextTable, x0, y int) (int, error) {
	width := c.params.Width
	aValue := recon[c.index(maxInt(x0-1, 0), y)]
	if x0 == 0 {
		if y == 0 {
			aValue = 0
		} else {
			aValue = recon[c.index(0, y-1)]
		}
	}

	x := x0
	runCount := 0
	for x < width && c.traits.IsNear(samples[c.index(x, y)], aValue) {
		recon[c.index(x, y)] = aValue
		runCount++
		x++
		if runCount == run.RunLength() {
			if err := w.AppendBits(1, 1); err != nil {
				return 0, err
			}
			run.Increment()
			runCount = 0
		}
	}

	if x == width {
		if runCount > 0 {
			if err := w.AppendBits(0, 1); err != nil {
				return 0, err
			}
			bits := runModeBitsForIndex(run.RunIndex)
			if bits > 0 {
				if err := w.AppendBits(uint32(runCount), bits); err != nil {
					return 0, err
				}
			}
		}
		return x, nil
	}

	if err := w.AppendBits(0, 1); err != nil {
		return 0, err
	}
	bits := runModeBitsForIndex(run.RunIndex)
	if bits > 0 {
		if err := w.AppendBits(uint32(runCount), bits); err != nil {
			return 0, err
		}
	}

	b := c.neighbourAbove(recon, x, y)
	if err := c.encodeRunInterruption(w, samples, recon, run, x, y, aValue, b); err != nil {
		return 0, err
	}
	run.Decrement()
	return x + 1, nil
}

// decodeRun mirrors encodeRun.
func (c *Codec) decodeRun(r *bitio.Reader, recon []int, run *RunState, table *ContextTable, x0, y int) (int, error) {
	width := c.params.Width
	aValue := recon[c.index(maxInt(x0-1, 0), y)]
	if x0 == 0 {
		if y == 0 {
			aValue = 0
		} else {
			aValue = recon[c.index(0, y-1)]
		}
	}

	x := x0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			break
		}
		limit := run.RunLength()
		run.Increment()
		for i := 0; i < limit && x < width; i++ {
			recon[c.index(x, y)] = aValue
			x++
		}
		if x == width {
			return x, nil
		}
	}

	bits := runModeBitsForIndex(run.RunIndex)
	partial := 0
	if bits > 0 {
		v, err := r.ReadBits(bits)
		if err != nil {
			return 0, err
		}
		partial = int(v)
	}
	for i := 0; i < partial && x < width; i++ {
		recon[c.index(x, y)] = aValue
		x++
	}
	if x == width {
		return x, nil
	}

	b := c.neighbourAbove(recon, x, y)
	if err := c.decodeRunInterruption(r, recon, run, x, y, aValue, b); err != nil {
		return 0, err
	}
	run.Decrement()
	return x + 1, nil
}

// neighbourAbove returns the reconstructed sample directly above (x, y),
// or 0 on the first line, matching the b=0 edge rule neighbours uses.
func (c *Codec) neighbourAbove(recon []int, x, y int) int {
	if y == 0 {
		return 0
	}
	return recon[c.index(x, y-1)]
}

// runInterruptionContext returns which of the two run-interruption
// contexts applies (Annex A.7.2 distinguishes a==b from a!=b) along with
// the prediction and sign to use for the interrupting sample.
func runInterruptionContext(a, b int) (ritype int, pred int, negate bool) {
	if a == b {
		return 0, a, false
	}
	if a < b {
		return 1, a, false
	}
	return 1, b, true
}

func (c *Codec) encodeRunInterruption(w *bitio.Writer, samples, recon []int, run *RunState, x, y, a, b int) error {
	ritype, pred, negate := runInterruptionContext(a, b)
	ctx := run.Interrupt[ritype]

	actual := samples[c.index(x, y)]
	raw := actual - pred
	if negate {
		raw = -raw
	}
	errorValue := c.traits.QuantizeError(raw)

	k := ctx.ComputeGolombParameter()
	coded := errorValue
	if k == 0 && ctx.NegatesOnZeroK() {
		coded = FlipForZeroK(errorValue)
	}
	if err := encodeMapped(w, MapErrorValue(coded), k, c.traits.Limit, c.traits.Qbpp); err != nil {
		return err
	}

	run.Interrupt[ritype] = ctx.Update(errorValue, c.traits.Reset)
	recon[c.index(x, y)] = c.traits.ComputeReconstructedSample(pred, signedFor(errorValue, negate))
	return nil
}

func (c *Codec) decodeRunInterruption(r *bitio.Reader, recon []int, run *RunState, x, y, a, b int) error {
	ritype, pred, negate := runInterruptionContext(a, b)
	ctx := run.Interrupt[ritype]

	k := ctx.ComputeGolombParameter()
	mapped, err := decodeMapped(r, k, c.traits.Limit, c.traits.Qbpp)
	if err != nil {
		return err
	}
	coded := UnmapErrorValue(mapped)
	errorValue := coded
	if k == 0 && ctx.NegatesOnZeroK() {
		errorValue = FlipForZeroK(coded)
	}

	run.Interrupt[ritype] = ctx.Update(errorValue, c.traits.Reset)
	recon[c.index(x, y)] = c.traits.ComputeReconstructedSample(pred, signedFor(errorValue, negate))
	return nil
}

func signedFor(errorValue int, negate bool) int {
	if negate {
		return -errorValue
	}
	return errorValue
}
