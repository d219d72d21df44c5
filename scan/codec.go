package scan

import (
	"fmt"

	"github.com/cocosip/go-jpegls/bitio"
)

// Codec implements the regular-mode/run-mode state machine of ISO/IEC
// 14495-1 §4.4 for a single component plane. One Codec instance is
// scoped to one scan the way CharLS scopes an EncoderStrategy/
// DecoderStrategy to one scan; callers needing several components
// (LineProcessor) construct one Codec per component.
type Codec struct {
	params Params
	traits Traits
}

// New builds a Codec for the given plane parameters.
func New(params Params) *Codec {
	return &Codec{params: params, traits: params.Traits()}
}

// ScanState is the adaptive state (regular context table, run-mode
// index and interruption contexts) a Codec threads across coding
// steps. It is exposed, rather than kept private to EncodeComponent,
// so a caller driving several components in lockstep (LineProcessor's
// Line/Sample interleave) can hold one ScanState per component and
// step them in whatever order the wire interleaving requires, while
// None-interleave and a component's own restart-interval reset still
// go through EncodeComponent/DecodeComponent below unchanged.
type ScanState struct {
	table *ContextTable
	run   *RunState
}

// NewScanState builds a fresh ScanState for this Codec's RANGE.
func (c *Codec) NewScanState() *ScanState {
	return &ScanState{table: NewContextTable(c.traits.Range), run: NewRunState(c.traits.Range)}
}

func (c *Codec) index(x, y int) int {
	return y*c.params.Width + x
}

// neighbours returns the causal context samples a (left), b (above),
// c (above-left) and d (above-right), applying the edge-replication
// rules of ISO/IEC 14495-1 §A.2 for the first row/column.
func (c *Codec) neighbours(recon []int, x, y int) (a, b, c2, d int) {
	width := c.params.Width
	if y == 0 {
		// Per ISO/IEC 14495-1 Annex A.2, the first row has no samples
		// above it: b, c and d stay 0 for the whole row. Only a is
		// derived from the previous same-row reconstructed sample.
		if x == 0 {
			return 0, 0, 0, 0
		}
		a = recon[c.index(x-1, 0)]
		return a, 0, 0, 0
	}
	if x == 0 {
		a = recon[c.index(0, y-1)]
	} else {
		a = recon[c.index(x-1, y)]
	}
	b = recon[c.index(x, y-1)]
	if x == 0 {
		c2 = b
	} else {
		c2 = recon[c.index(x-1, y-1)]
	}
	if x == width-1 {
		d = b
	} else {
		d = recon[c.index(x+1, y-1)]
	}
	return a, b, c2, d
}

// EncodeStep codes exactly one coding unit starting at column x on row
// y — either a single regular-mode sample, or (when the context
// gradients are all zero) an entire run-mode segment including its
// interruption sample — and returns the column just past it. This is
// the unit LineProcessor's Sample interleave round-robins across
// components.
func (c *Codec) EncodeStep(w *bitio.Writer, samples, recon []int, st *ScanState, x, y int) (int, error) {
	a, b, cc, d := c.neighbours(recon, x, y)
	q1, q2, q3 := computeContext(c.traits, a, b, cc, d)
	if q1 == 0 && q2 == 0 && q3 == 0 {
		return c.encodeRun(w, samples, recon, st.run, st.table, x, y)
	}

	ctx, sign := st.table.Get(q1, q2, q3)
	pred := c.traits.CorrectPrediction(predictMED(a, b, cc) + applySign(ctx.GetPredictionCorrection(), sign))
	actual := samples[c.index(x, y)]
	errorValue := c.traits.QuantizeError(applySign(actual-pred, sign))

	k := ctx.ComputeGolombParameter()
	coded := errorValue
	if k == 0 && ctx.NegatesOnZeroK() {
		coded = FlipForZeroK(errorValue)
	}
	if err := encodeMapped(w, MapErrorValue(coded), k, c.traits.Limit, c.traits.Qbpp); err != nil {
		return 0, err
	}

	st.table.Set(q1, q2, q3, ctx.Update(errorValue, c.traits.Reset))
	recon[c.index(x, y)] = c.traits.ComputeReconstructedSample(pred, applySign(errorValue, sign))
	return x + 1, nil
}

// DecodeStep mirrors EncodeStep.
func (c *Codec) DecodeStep(r *bitio.Reader, recon []int, st *ScanState, x, y int) (int, error) {
	a, b, cc, d := c.neighbours(recon, x, y)
	q1, q2, q3 := computeContext(c.traits, a, b, cc, d)
	if q1 == 0 && q2 == 0 && q3 == 0 {
		return c.decodeRun(r, recon, st.run, st.table, x, y)
	}

	ctx, sign := st.table.Get(q1, q2, q3)
	pred := c.traits.CorrectPrediction(predictMED(a, b, cc) + applySign(ctx.GetPredictionCorrection(), sign))

	k := ctx.ComputeGolombParameter()
	mapped, err := decodeMapped(r, k, c.traits.Limit, c.traits.Qbpp)
	if err != nil {
		return 0, err
	}
	coded := UnmapErrorValue(mapped)
	errorValue := coded
	if k == 0 && ctx.NegatesOnZeroK() {
		errorValue = FlipForZeroK(coded)
	}

	st.table.Set(q1, q2, q3, ctx.Update(errorValue, c.traits.Reset))
	recon[c.index(x, y)] = c.traits.ComputeReconstructedSample(pred, applySign(errorValue, sign))
	return x + 1, nil
}

// EncodeRow codes one full row y by repeated EncodeStep calls, carrying
// st across them.
func (c *Codec) EncodeRow(w *bitio.Writer, samples, recon []int, st *ScanState, y int) error {
	width := c.params.Width
	x := 0
	for x < width {
		next, err := c.EncodeStep(w, samples, recon, st, x, y)
		if err != nil {
			return err
		}
		x = next
	}
	return nil
}

// DecodeRow mirrors EncodeRow.
func (c *Codec) DecodeRow(r *bitio.Reader, recon []int, st *ScanState, y int) error {
	width := c.params.Width
	x := 0
	for x < width {
		next, err := c.DecodeStep(r, recon, st, x, y)
		if err != nil {
			return err
		}
		x = next
	}
	return nil
}

// EncodeComponent codes one width*height plane of samples, writing to w.
// recon is scratch space of the same size as samples; it is filled with
// the reconstructed values the decoder will see, so a near-lossless scan
// stays causally consistent with the decoder even though samples holds
// the true input. Used directly for None interleave, where each
// component is a fully independent scan with its own restart cadence;
// LineProcessor's Line/Sample interleave instead drives EncodeRow/
// EncodeStep across several components' ScanStates in lockstep.
func (c *Codec) EncodeComponent(w *bitio.Writer, samples []int, recon []int) error {
	st := c.NewScanState()
	height := c.params.Height
	rstIndex := 0

	for y := 0; y < height; y++ {
		if err := c.EncodeRow(w, samples, recon, st, y); err != nil {
			return err
		}

		if c.params.RestartInterval > 0 && y+1 < height && (y+1)%c.params.RestartInterval == 0 {
			if err := w.WriteRestartMarker(rstIndex); err != nil {
				return err
			}
			rstIndex++
			st = c.NewScanState()
		}
	}
	return nil
}

// DecodeComponent mirrors EncodeComponent, reconstructing samples from r
// directly into recon (which the caller then treats as the decoded
// plane).
func (c *Codec) DecodeComponent(r *bitio.Reader, recon []int) error {
	st := c.NewScanState()
	height := c.params.Height
	rstIndex := 0

	for y := 0; y < height; y++ {
		if err := c.DecodeRow(r, recon, st, y); err != nil {
			return err
		}

		if c.params.RestartInterval > 0 && y+1 < height && (y+1)%c.params.RestartInterval == 0 {
			idx, err := r.ReadRestartMarker()
			if err != nil {
				return fmt.Errorf("scan: reading restart marker: %w", err)
			}
			if idx != rstIndex%8 {
				return fmt.Errorf("scan: restart marker out of sequence: got %d, want %d", idx, rstIndex%8)
			}
			rstIndex++
			st = c.NewScanState()
		}
	}
	return nil
}
