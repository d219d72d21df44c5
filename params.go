package jpegls

import "github.com/cocosip/go-jpegls/scan"

// ColorTransform selects one of the reversible transforms available for
// 8-bit and 16-bit three-component scans.
type ColorTransform int

const (
	ColorTransformNone ColorTransform = iota
	ColorTransformHP1
	ColorTransformHP2
	ColorTransformHP3
)

// InterleaveMode selects how component samples are laid out across the
// scan (ISO/IEC 14495-1 Annex C.1.2's ILV field).
type InterleaveMode int

const (
	InterleaveNone InterleaveMode = iota
	InterleaveLine
	InterleaveSample
)

// PresetParams carries the optional, explicitly-supplied coding
// parameters of Annex C.2.4.1.1: when T1, T2 and T3 are all zero the
// codec derives the Annex C default thresholds from BitsPerSample and
// NearLossless, and a zero Reset means 64.
type PresetParams struct {
	T1, T2, T3 int
	Reset      int
}

// Params is the public parameter structure of the external interface
// (spec.md §6): geometry, sample depth, stride, component layout, the
// near-lossless bound, interleave/color-transform/BGR presentation
// choices, and the optional preset parameters and JFIF wrapper.
type Params struct {
	Width, Height int
	BitsPerSample int // 2..16
	Stride        int // 0 means width*components*bytesPerSample
	Components    int // 1..255
	NearLossless  int // 0 = lossless

	Interleave InterleaveMode
	ColorXform ColorTransform
	OutputBGR  bool

	Preset PresetParams

	// RestartInterval, when non-zero, causes an RSTn marker to be
	// emitted (and expected on decode) every RestartInterval MCUs/lines,
	// per the REDESIGN FLAGS decision recorded in DESIGN.md.
	RestartInterval int

	// JFIF, when non-nil, wraps the frame in an APP0 JFIF block.
	JFIF *JFIFParams
}

// JFIFParams mirrors frame.JFIF at the public API boundary so callers
// don't need to import the frame package directly.
type JFIFParams struct {
	VersionMajor, VersionMinor int
	DensityUnits               int
	DensityX, DensityY         int
}

// Validate checks the semantic constraints of §6: invalid combinations
// are rejected before any codec entry, never surfacing as a partial
// encode/decode.
func (p Params) Validate() *Error {
	if p.Width <= 0 || p.Height <= 0 {
		return newError(InvalidJlsParameters, nil)
	}
	if p.BitsPerSample < 2 || p.BitsPerSample > 16 {
		return newError(InvalidJlsParameters, nil)
	}
	if p.Components < 1 || p.Components > 255 {
		return newError(InvalidJlsParameters, nil)
	}
	if p.NearLossless < 0 {
		return newError(InvalidJlsParameters, nil)
	}
	if p.RestartInterval < 0 {
		return newError(InvalidJlsParameters, nil)
	}
	if (p.ColorXform != ColorTransformNone) && (p.Components != 3 || (p.BitsPerSample != 8 && p.BitsPerSample != 16)) {
		return newError(UnsupportedColorTransform, nil)
	}
	if p.Stride != 0 && p.Stride < p.Width*p.Components*p.bytesPerSample() {
		return newError(InvalidJlsParameters, nil)
	}
	return nil
}

func (p Params) bytesPerSample() int {
	if p.BitsPerSample > 8 {
		return 2
	}
	return 1
}

func (p Params) maxVal() int {
	return (1 << uint(p.BitsPerSample)) - 1
}

func (p Params) lineProcessorParams() scan.LineProcessorParams {
	return scan.LineProcessorParams{
		Width:         p.Width,
		Height:        p.Height,
		BitsPerSample: p.BitsPerSample,
		Stride:        p.Stride,
		Components:    p.Components,
		Near:          p.NearLossless,
		T1:            p.Preset.T1,
		T2:            p.Preset.T2,
		T3:            p.Preset.T3,
		Reset:         p.Preset.Reset,
		Interleave:      scan.InterleaveMode(p.Interleave),
		ColorXform:      scan.ColorTransform(p.ColorXform),
		OutputBGR:       p.OutputBGR,
		RestartInterval: p.RestartInterval,
	}
}
