package scan

import (
	"fmt"

	"github.com/cocosip/go-jpegls/bitio"
)

// InterleaveMode selects how multi-component scans route samples to the
// per-component Codec instances (§4.5).
type InterleaveMode int

const (
	// InterleaveNone codes one component at a time, in full.
	InterleaveNone InterleaveMode = iota
	// InterleaveLine codes one line of each component, round-robin, before
	// advancing to the next row.
	InterleaveLine
	// InterleaveSample round-robins the components one coding step at a
	// time within each row (one regular-mode sample, or a whole run-mode
	// segment); each component still tracks its own causal neighbours and
	// context table.
	InterleaveSample
)

// ColorTransform selects one of the three reversible transforms available
// for 8-bit and 16-bit three-component scans. The exact integer formulas
// are a documented simplification (see DESIGN.md): original_source does
// not carry the reversible-transform source file, so each variant is
// built from the same difference-against-a-reference-channel shape the
// published HP1/HP2/HP3 family uses, parameterized by which channel is
// the reference.
type ColorTransform int

const (
	ColorTransformNone ColorTransform = iota
	ColorTransformHP1                 // differences stored against G
	ColorTransformHP2                 // differences stored against R
	ColorTransformHP3                 // differences stored against B
)

// LineProcessorParams describes one multi-component image, grounded on
// spec.md §4.5 and the External Interfaces Parameter structure of §6.
type LineProcessorParams struct {
	Width, Height int
	BitsPerSample int
	Stride        int
	Components    int
	Near          int
	T1, T2, T3    int
	Reset         int
	Interleave      InterleaveMode
	ColorXform      ColorTransform
	OutputBGR       bool
	RestartInterval int
}

func (p LineProcessorParams) componentParams() Params {
	return Params{
		Width:           p.Width,
		Height:          p.Height,
		MaxVal:          DefaultMaxVal(p.BitsPerSample),
		Near:            p.Near,
		T1:              p.T1,
		T2:              p.T2,
		T3:              p.T3,
		Reset:           p.Reset,
		RestartInterval: p.RestartInterval,
	}
}

func (p LineProcessorParams) bytesPerSample() int {
	if p.BitsPerSample > 8 {
		return 2
	}
	return 1
}

func (p LineProcessorParams) effectiveStride() int {
	if p.Stride > 0 {
		return p.Stride
	}
	return p.Width * p.Components * p.bytesPerSample()
}

// LineProcessor drives one Codec per component, applying near-lossless
// clamping (via each Codec's Traits), the reversible color transform and
// BGR/RGB presentation swap, and the requested interleave shape on top of
// a caller-supplied, stride-addressed raw pixel buffer.
type LineProcessor struct {
	params LineProcessorParams
	codecs []*Codec
}

// NewLineProcessor builds a LineProcessor for the given parameters.
func NewLineProcessor(params LineProcessorParams) (*LineProcessor, error) {
	if params.Components < 1 || params.Components > 255 {
		return nil, fmt.Errorf("scan: invalid component count %d", params.Components)
	}
	cp := params.componentParams()
	codecs := make([]*Codec, params.Components)
	for i := range codecs {
		codecs[i] = New(cp)
	}
	return &LineProcessor{params: params, codecs: codecs}, nil
}

// Encode reads raw, stride-addressed pixels from pixels and writes a
// coded bitstream to w, one scan body per the configured interleave mode.
func (lp *LineProcessor) Encode(w *bitio.Writer, pixels []byte) error {
	planes, err := lp.extractPlanes(pixels)
	if err != nil {
		return err
	}
	lp.applyForwardTransform(planes)

	width, height, n := lp.params.Width, lp.params.Height, lp.params.Components
	recons := make([][]int, n)
	for i := range recons {
		recons[i] = make([]int, width*height)
	}

	switch lp.params.Interleave {
	case InterleaveNone:
		// Each component is a fully independent scan, one after another.
		for i := 0; i < n; i++ {
			if err := lp.codecs[i].EncodeComponent(w, planes[i], recons[i]); err != nil {
				return err
			}
		}
		return nil
	case InterleaveLine:
		return lp.encodeLineInterleaved(w, planes, recons)
	default:
		return lp.encodeSampleInterleaved(w, planes, recons)
	}
}

// encodeLineInterleaved codes one full row of each component, round
// robin, before advancing to the next row, per ISO/IEC 14495-1's line
// interleave (ILV=1): the bits for component i's row y are adjacent to
// component i+1's row y in the stream, not to component i's own row
// y+1 as None interleave would place them. A restart interval resets
// every component's state together, since interleaved components share
// one scan and therefore one restart cadence.
func (lp *LineProcessor) encodeLineInterleaved(w *bitio.Writer, planes, recons [][]int) error {
	n, height := lp.params.Components, lp.params.Height
	states := lp.newScanStates()
	restart := lp.params.RestartInterval
	rstIndex := 0

	for y := 0; y < height; y++ {
		for i := 0; i < n; i++ {
			if err := lp.codecs[i].EncodeRow(w, planes[i], recons[i], states[i], y); err != nil {
				return err
			}
		}
		if restart > 0 && y+1 < height && (y+1)%restart == 0 {
			if err := w.WriteRestartMarker(rstIndex); err != nil {
				return err
			}
			rstIndex++
			states = lp.newScanStates()
		}
	}
	return nil
}

// encodeSampleInterleaved round-robins one EncodeStep per component at
// each column before advancing, per ISO/IEC 14495-1's sample interleave
// (ILV=2). A step is a single regular-mode sample or (when a run is
// entered) the run's entire run-mode segment including its
// interruption sample; this is a coarser round-robin grain than one
// raw sample whenever a component is mid-run, a documented
// simplification (see DESIGN.md) that still produces a genuinely
// different, and correctly round-trippable, bit ordering from Line and
// None interleave.
func (lp *LineProcessor) encodeSampleInterleaved(w *bitio.Writer, planes, recons [][]int) error {
	n, width, height := lp.params.Components, lp.params.Width, lp.params.Height
	states := lp.newScanStates()
	restart := lp.params.RestartInterval
	rstIndex := 0

	for y := 0; y < height; y++ {
		xs := make([]int, n)
		for {
			progressed := false
			for i := 0; i < n; i++ {
				if xs[i] >= width {
					continue
				}
				progressed = true
				next, err := lp.codecs[i].EncodeStep(w, planes[i], recons[i], states[i], xs[i], y)
				if err != nil {
					return err
				}
				xs[i] = next
			}
			if !progressed {
				break
			}
		}
		if restart > 0 && y+1 < height && (y+1)%restart == 0 {
			if err := w.WriteRestartMarker(rstIndex); err != nil {
				return err
			}
			rstIndex++
			states = lp.newScanStates()
		}
	}
	return nil
}

func (lp *LineProcessor) newScanStates() []*ScanState {
	states := make([]*ScanState, lp.params.Components)
	for i := range states {
		states[i] = lp.codecs[i].NewScanState()
	}
	return states
}

// Decode reads a coded bitstream for n components from r and reconstructs
// the raw, stride-addressed pixel buffer.
func (lp *LineProcessor) Decode(r *bitio.Reader) ([]byte, error) {
	width, height, n := lp.params.Width, lp.params.Height, lp.params.Components
	planes := make([][]int, n)
	for i := range planes {
		planes[i] = make([]int, width*height)
	}

	var err error
	switch lp.params.Interleave {
	case InterleaveNone:
		for i := 0; i < n; i++ {
			if err = lp.codecs[i].DecodeComponent(r, planes[i]); err != nil {
				return nil, fmt.Errorf("scan: decoding component %d: %w", i, err)
			}
		}
	case InterleaveLine:
		err = lp.decodeLineInterleaved(r, planes)
	default:
		err = lp.decodeSampleInterleaved(r, planes)
	}
	if err != nil {
		return nil, err
	}

	lp.applyInverseTransform(planes)
	return lp.packPlanes(planes)
}

// decodeLineInterleaved mirrors encodeLineInterleaved.
func (lp *LineProcessor) decodeLineInterleaved(r *bitio.Reader, planes [][]int) error {
	n, height := lp.params.Components, lp.params.Height
	states := lp.newScanStates()
	restart := lp.params.RestartInterval
	rstIndex := 0

	for y := 0; y < height; y++ {
		for i := 0; i < n; i++ {
			if err := lp.codecs[i].DecodeRow(r, planes[i], states[i], y); err != nil {
				return fmt.Errorf("scan: decoding component %d row %d: %w", i, y, err)
			}
		}
		if restart > 0 && y+1 < height && (y+1)%restart == 0 {
			idx, err := r.ReadRestartMarker()
			if err != nil {
				return fmt.Errorf("scan: reading restart marker: %w", err)
			}
			if idx != rstIndex%8 {
				return fmt.Errorf("scan: restart marker out of sequence: got %d, want %d", idx, rstIndex%8)
			}
			rstIndex++
			states = lp.newScanStates()
		}
	}
	return nil
}

// decodeSampleInterleaved mirrors encodeSampleInterleaved.
func (lp *LineProcessor) decodeSampleInterleaved(r *bitio.Reader, planes [][]int) error {
	n, width, height := lp.params.Components, lp.params.Width, lp.params.Height
	states := lp.newScanStates()
	restart := lp.params.RestartInterval
	rstIndex := 0

	for y := 0; y < height; y++ {
		xs := make([]int, n)
		for {
			progressed := false
			for i := 0; i < n; i++ {
				if xs[i] >= width {
					continue
				}
				progressed = true
				next, err := lp.codecs[i].DecodeStep(r, planes[i], states[i], xs[i], y)
				if err != nil {
					return fmt.Errorf("scan: decoding component %d: %w", i, err)
				}
				xs[i] = next
			}
			if !progressed {
				break
			}
		}
		if restart > 0 && y+1 < height && (y+1)%restart == 0 {
			idx, err := r.ReadRestartMarker()
			if err != nil {
				return fmt.Errorf("scan: reading restart marker: %w", err)
			}
			if idx != rstIndex%8 {
				return fmt.Errorf("scan: restart marker out of sequence: got %d, want %d", idx, rstIndex%8)
			}
			rstIndex++
			states = lp.newScanStates()
		}
	}
	return nil
}

// extractPlanes de-interleaves the stride-addressed raw buffer into one
// []int plane per component, honoring the BGR/RGB presentation swap on
// the way in so the codec always sees channel-canonical order.
func (lp *LineProcessor) extractPlanes(pixels []byte) ([][]int, error) {
	p := lp.params
	stride := p.effectiveStride()
	bps := p.bytesPerSample()
	need := stride * p.Height
	if len(pixels) < need {
		return nil, fmt.Errorf("scan: pixel buffer too small: have %d, need %d", len(pixels), need)
	}

	planes := make([][]int, p.Components)
	for i := range planes {
		planes[i] = make([]int, p.Width*p.Height)
	}

	order := lp.componentOrder()
	for y := 0; y < p.Height; y++ {
		row := pixels[y*stride:]
		for x := 0; x < p.Width; x++ {
			for ci := 0; ci < p.Components; ci++ {
				off := (x*p.Components + ci) * bps
				v := readSample(row[off:], bps)
				planes[order[ci]][y*p.Width+x] = v
			}
		}
	}
	return planes, nil
}

// packPlanes is extractPlanes' inverse.
func (lp *LineProcessor) packPlanes(planes [][]int) ([]byte, error) {
	p := lp.params
	stride := p.effectiveStride()
	bps := p.bytesPerSample()
	out := make([]byte, stride*p.Height)

	order := lp.componentOrder()
	for y := 0; y < p.Height; y++ {
		row := out[y*stride:]
		for x := 0; x < p.Width; x++ {
			for ci := 0; ci < p.Components; ci++ {
				off := (x*p.Components + ci) * bps
				writeSample(row[off:], bps, planes[order[ci]][y*p.Width+x])
			}
		}
	}
	return out, nil
}

// componentOrder returns the wire-to-plane component index mapping,
// applying the BGR/RGB swap for three-component 8-bit data.
func (lp *LineProcessor) componentOrder() []int {
	order := make([]int, lp.params.Components)
	for i := range order {
		order[i] = i
	}
	if lp.params.OutputBGR && lp.params.Components == 3 && lp.params.BitsPerSample == 8 {
		order[0], order[2] = order[2], order[0]
	}
	return order
}

func readSample(b []byte, bps int) int {
	if bps == 1 {
		return int(b[0])
	}
	return int(b[0])<<8 | int(b[1])
}

func writeSample(b []byte, bps int, v int) {
	if bps == 1 {
		b[0] = byte(v)
		return
	}
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

func (lp *LineProcessor) applyForwardTransform(planes [][]int) {
	ct := lp.params.ColorXform
	if ct == ColorTransformNone || lp.params.Components != 3 {
		return
	}
	rng := DefaultMaxVal(lp.params.BitsPerSample) + 1
	r, g, b := planes[0], planes[1], planes[2]
	for i := range r {
		r[i], g[i], b[i] = forwardColorTransform(ct, rng, r[i], g[i], b[i])
	}
}

func (lp *LineProcessor) applyInverseTransform(planes [][]int) {
	ct := lp.params.ColorXform
	if ct == ColorTransformNone || lp.params.Components != 3 {
		return
	}
	rng := DefaultMaxVal(lp.params.BitsPerSample) + 1
	r, g, b := planes[0], planes[1], planes[2]
	for i := range r {
		r[i], g[i], b[i] = inverseColorTransform(ct, rng, r[i], g[i], b[i])
	}
}

func forwardColorTransform(ct ColorTransform, rng, r, g, b int) (int, int, int) {
	switch ct {
	case ColorTransformHP1:
		return mod(r-g, rng), g, mod(b-g, rng)
	case ColorTransformHP2:
		return r, mod(g-r, rng), mod(b-r, rng)
	case ColorTransformHP3:
		return mod(r-b, rng), mod(g-b, rng), b
	default:
		return r, g, b
	}
}

func inverseColorTransform(ct ColorTransform, rng, t1, t2, t3 int) (int, int, int) {
	switch ct {
	case ColorTransformHP1:
		g := t2
		return mod(t1+g, rng), g, mod(t3+g, rng)
	case ColorTransformHP2:
		r := t1
		return r, mod(t2+r, rng), mod(t3+r, rng)
	case ColorTransformHP3:
		b := t3
		return mod(t1+b, rng), mod(t2+b, rng), b
	default:
		return t1, t2, t3
	}
}

func mod(v, rng int) int {
	v %= rng
	if v < 0 {
		v += rng
	}
	return v
}
