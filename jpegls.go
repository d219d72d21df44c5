package jpegls

import (
	"fmt"
	"io"

	"github.com/cocosip/go-jpegls/bitio"
	"github.com/cocosip/go-jpegls/frame"
	"github.com/cocosip/go-jpegls/scan"
)

// Encode writes params.Width*params.Height*params.Components raw
// samples (addressed per Params.Stride) as a JPEG-LS bitstream to w,
// returning the number of bytes written.
func Encode(params Params, rawPixels []byte, w io.Writer) (int, *Error) {
	if verr := params.Validate(); verr != nil {
		return 0, verr
	}

	counting := &countingWriter{w: w}
	fw := frame.NewWriter(counting)

	if err := fw.WriteMarker(frame.MarkerSOI); err != nil {
		return 0, newError(UnexpectedFailure, err)
	}
	if params.JFIF != nil {
		if err := frame.WriteJFIF(fw, frame.JFIF{
			VersionMajor: params.JFIF.VersionMajor,
			VersionMinor: params.JFIF.VersionMinor,
			DensityUnits: params.JFIF.DensityUnits,
			DensityX:     params.JFIF.DensityX,
			DensityY:     params.JFIF.DensityY,
		}); err != nil {
			return 0, newError(UnexpectedFailure, err)
		}
	}
	if err := writeFrameHeader(fw, params); err != nil {
		return 0, newError(UnexpectedFailure, err)
	}
	if hasExplicitPreset(params) {
		if err := frame.WriteLSE(fw, frame.PresetParams{
			MaxVal: params.maxVal(),
			T1:     params.Preset.T1,
			T2:     params.Preset.T2,
			T3:     params.Preset.T3,
			Reset:  params.Preset.Reset,
		}); err != nil {
			return 0, newError(UnexpectedFailure, err)
		}
	}

	if params.RestartInterval > 0 {
		if err := frame.WriteDRI(fw, params.RestartInterval); err != nil {
			return 0, newError(UnexpectedFailure, err)
		}
	}

	componentIDs := make([]int, params.Components)
	for i := range componentIDs {
		componentIDs[i] = i + 1
	}
	if err := frame.WriteSOS(fw, frame.ScanHeader{
		ComponentIDs: componentIDs,
		Near:         params.NearLossless,
		Interleave:   frame.Interleave(params.Interleave),
	}); err != nil {
		return 0, newError(UnexpectedFailure, err)
	}
	if err := fw.Flush(); err != nil {
		return 0, newError(UnexpectedFailure, err)
	}

	lp, err := scan.NewLineProcessor(params.lineProcessorParams())
	if err != nil {
		return 0, newError(InvalidJlsParameters, err)
	}
	bw := bitio.NewWriter(counting)
	if err := lp.Encode(bw, rawPixels); err != nil {
		return 0, newError(UncompressedBufferTooSmall, err)
	}
	if err := bw.EndScan(); err != nil {
		return 0, newError(CompressedBufferTooSmall, err)
	}

	fw2 := frame.NewWriter(counting)
	if err := fw2.WriteMarker(frame.MarkerEOI); err != nil {
		return 0, newError(UnexpectedFailure, err)
	}
	if err := fw2.Flush(); err != nil {
		return 0, newError(UnexpectedFailure, err)
	}

	return counting.n, nil
}

// Decode reads a JPEG-LS bitstream from r and returns the raw,
// stride-addressed pixel buffer. If params is non-nil, it is populated
// with the parameters read from the stream.
func Decode(r io.Reader, params *Params) ([]byte, *Error) {
	fr := frame.NewReader(r)

	marker, err := fr.ReadMarker()
	if err != nil || marker != frame.MarkerSOI {
		return nil, newError(MissingJpegMarkerStart, err)
	}

	var header FrameHeaderInfo
	var scanHeader frame.ScanHeader
	var preset frame.PresetParams
	havePreset := false
	var jfifBlock *JFIFParams
	restartInterval := 0

	for {
		marker, err := fr.ReadMarker()
		if err != nil {
			return nil, newError(InvalidCompressedData, err)
		}
		if !frame.HasLength(marker) {
			return nil, newError(UnknownJpegMarker, fmt.Errorf("unexpected marker %#04x", marker))
		}
		body, err := fr.ReadSegment()
		if err != nil {
			return nil, newError(InvalidCompressedData, err)
		}

		switch {
		case marker == frame.MarkerSOF55:
			fh, err := frame.ReadSOF55(body)
			if err != nil {
				return nil, newError(InvalidCompressedData, err)
			}
			header = FrameHeaderInfo{fh}
		case marker == frame.MarkerLSE:
			preset, err = frame.ReadLSE(body)
			if err != nil {
				return nil, newError(InvalidCompressedData, err)
			}
			havePreset = true
		case marker == frame.MarkerSOS:
			scanHeader, err = frame.ReadSOS(body)
			if err != nil {
				return nil, newError(InvalidCompressedData, err)
			}
			goto scanBody
		case marker == frame.MarkerAPP0:
			if j, ok, err := frame.ReadJFIF(body); err == nil && ok {
				jfifBlock = &JFIFParams{
					VersionMajor: j.VersionMajor,
					VersionMinor: j.VersionMinor,
					DensityUnits: j.DensityUnits,
					DensityX:     j.DensityX,
					DensityY:     j.DensityY,
				}
			}
		case marker == frame.MarkerDRI:
			restartInterval, err = frame.ReadDRI(body)
			if err != nil {
				return nil, newError(InvalidCompressedData, err)
			}
		case frame.IsAPPn(marker) || marker == frame.MarkerCOM:
			// Passthrough segments this core doesn't need the contents of.
		default:
			return nil, newError(UnknownJpegMarker, fmt.Errorf("unexpected marker %#04x", marker))
		}
	}

scanBody:
	p := Params{
		Width:           header.fh.Width,
		Height:          header.fh.Height,
		BitsPerSample:   header.fh.Precision,
		Components:      len(header.fh.Components),
		NearLossless:    scanHeader.Near,
		Interleave:      InterleaveMode(scanHeader.Interleave),
		JFIF:            jfifBlock,
		RestartInterval: restartInterval,
	}
	if params != nil {
		p.OutputBGR = params.OutputBGR
	}
	if havePreset {
		p.Preset = PresetParams{T1: preset.T1, T2: preset.T2, T3: preset.T3, Reset: preset.Reset}
	}
	if verr := p.Validate(); verr != nil {
		return nil, verr
	}

	lp, lpErr := scan.NewLineProcessor(p.lineProcessorParams())
	if lpErr != nil {
		return nil, newError(InvalidJlsParameters, lpErr)
	}
	br := bitio.NewReader(fr.Underlying())
	pixels, decErr := lp.Decode(br)
	if decErr != nil {
		return nil, newError(InvalidCompressedData, decErr)
	}

	if params != nil {
		*params = p
	}
	return pixels, nil
}

// ReadHeader reads only the frame and scan headers (SOF55, optional LSE,
// SOS) from r and returns the parameters, without decoding the scan
// body.
func ReadHeader(r io.Reader) (Params, *Error) {
	fr := frame.NewReader(r)
	marker, err := fr.ReadMarker()
	if err != nil || marker != frame.MarkerSOI {
		return Params{}, newError(MissingJpegMarkerStart, err)
	}

	var fh frame.FrameHeader
	var scanHeader frame.ScanHeader
	var preset frame.PresetParams
	havePreset, haveFrame := false, false
	restartInterval := 0

	for {
		marker, err := fr.ReadMarker()
		if err != nil {
			return Params{}, newError(InvalidCompressedData, err)
		}
		if !frame.HasLength(marker) {
			return Params{}, newError(UnknownJpegMarker, fmt.Errorf("unexpected marker %#04x", marker))
		}
		body, err := fr.ReadSegment()
		if err != nil {
			return Params{}, newError(InvalidCompressedData, err)
		}
		switch marker {
		case frame.MarkerSOF55:
			fh, err = frame.ReadSOF55(body)
			if err != nil {
				return Params{}, newError(InvalidCompressedData, err)
			}
			haveFrame = true
		case frame.MarkerLSE:
			preset, err = frame.ReadLSE(body)
			if err != nil {
				return Params{}, newError(InvalidCompressedData, err)
			}
			havePreset = true
		case frame.MarkerDRI:
			restartInterval, err = frame.ReadDRI(body)
			if err != nil {
				return Params{}, newError(InvalidCompressedData, err)
			}
		case frame.MarkerSOS:
			scanHeader, err = frame.ReadSOS(body)
			if err != nil {
				return Params{}, newError(InvalidCompressedData, err)
			}
			if !haveFrame {
				return Params{}, newError(InvalidCompressedData, fmt.Errorf("SOS before SOF55"))
			}
			p := Params{
				Width:           fh.Width,
				Height:          fh.Height,
				BitsPerSample:   fh.Precision,
				Components:      len(fh.Components),
				NearLossless:    scanHeader.Near,
				Interleave:      InterleaveMode(scanHeader.Interleave),
				RestartInterval: restartInterval,
			}
			if havePreset {
				p.Preset = PresetParams{T1: preset.T1, T2: preset.T2, T3: preset.T3, Reset: preset.Reset}
			}
			return p, nil
		}
	}
}

// FrameHeaderInfo wraps frame.FrameHeader to keep the frame package
// import private to this file's decode loop.
type FrameHeaderInfo struct {
	fh frame.FrameHeader
}

func writeFrameHeader(fw *frame.Writer, params Params) error {
	components := make([]frame.FrameComponent, params.Components)
	for i := range components {
		components[i] = frame.FrameComponent{ID: i + 1, HSampling: 1, VSampling: 1}
	}
	return frame.WriteSOF55(fw, frame.FrameHeader{
		Precision:  params.BitsPerSample,
		Height:     params.Height,
		Width:      params.Width,
		Components: components,
	})
}

func hasExplicitPreset(params Params) bool {
	return params.Preset.T1 != 0 || params.Preset.T2 != 0 || params.Preset.T3 != 0 || params.Preset.Reset != 0
}

// countingWriter tallies bytes written to the underlying sink so Encode
// can report bytesWritten, the core's first External Interfaces return
// value.
type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
