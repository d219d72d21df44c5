package codec

import (
	"bytes"

	jpegls "github.com/cocosip/go-jpegls"
)

// JPEGLSCodec adapts the root jpegls package's Encode/Decode/ReadHeader
// functions to the Codec interface, grounded on
// jpegls/nearlossless/codec.go's registration pattern (that file, unlike
// jpegls/lossless/codec.go, is not coupled to an external DICOM package,
// so its Encode/Decode/Options/RegisterCodec shape is the one this
// module generalizes).
type JPEGLSCodec struct{}

// UID is the JPEG-LS lossless/near-lossless transfer syntax identifier.
func (JPEGLSCodec) UID() string { return "1.2.840.10008.1.2.4.80" }

// Name returns a human-readable codec name.
func (JPEGLSCodec) Name() string { return "JPEG-LS" }

// Encode encodes raw pixels per params into a JPEG-LS bitstream.
func (JPEGLSCodec) Encode(params EncodeParams) ([]byte, error) {
	opts, _ := params.Options.(*BaseOptions)
	if opts == nil {
		opts = &BaseOptions{}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	jp := jpegls.Params{
		Width:           params.Width,
		Height:          params.Height,
		BitsPerSample:   params.BitDepth,
		Stride:          params.Stride,
		Components:      params.Components,
		NearLossless:    opts.NearLossless,
		Interleave:      jpegls.InterleaveMode(opts.Interleave),
		ColorXform:      jpegls.ColorTransform(opts.ColorTransform),
		OutputBGR:       opts.OutputBGR,
		RestartInterval: opts.RestartInterval,
	}

	var buf bytes.Buffer
	if _, err := jpegls.Encode(jp, params.PixelData, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode decodes a JPEG-LS bitstream.
func (JPEGLSCodec) Decode(data []byte) (*DecodeResult, error) {
	var jp jpegls.Params
	pixels, err := jpegls.Decode(bytes.NewReader(data), &jp)
	if err != nil {
		return nil, err
	}
	return &DecodeResult{
		PixelData:  pixels,
		Width:      jp.Width,
		Height:     jp.Height,
		Components: jp.Components,
		BitDepth:   jp.BitsPerSample,
	}, nil
}

func init() {
	Register(JPEGLSCodec{})
}
