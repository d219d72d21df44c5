package jpegls

import (
	"bytes"
	"testing"
)

func TestEncodeDecodeSinglePixel(t *testing.T) {
	params := Params{Width: 1, Height: 1, BitsPerSample: 8, Components: 1}
	pixels := []byte{0x80}

	var buf bytes.Buffer
	if _, err := Encode(params, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got Params
	decoded, err := Decode(&buf, &got)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, pixels) {
		t.Fatalf("decoded = %v, want %v", decoded, pixels)
	}
	if got.Width != 1 || got.Height != 1 {
		t.Fatalf("decoded params = %+v", got)
	}
}

func TestEncodeDecodeFlatImageUsesRunMode(t *testing.T) {
	params := Params{Width: 4, Height: 4, BitsPerSample: 8, Components: 1}
	pixels := make([]byte, 16)

	var buf bytes.Buffer
	if _, err := Encode(params, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, pixels) {
		t.Fatalf("decoded = %v, want all zeros", decoded)
	}
}

func TestEncodeDecodeGrayscaleGradientLossless(t *testing.T) {
	params := Params{Width: 16, Height: 12, BitsPerSample: 8, Components: 1}
	pixels := make([]byte, params.Width*params.Height)
	for i := range pixels {
		pixels[i] = byte((i * 13) % 256)
	}

	var buf bytes.Buffer
	if _, err := Encode(params, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, pixels) {
		t.Fatalf("lossless round trip mismatch")
	}
}

func TestEncodeDecodeNearLosslessBound(t *testing.T) {
	params := Params{Width: 16, Height: 16, BitsPerSample: 8, Components: 1, NearLossless: 4}
	pixels := make([]byte, params.Width*params.Height)
	for i := range pixels {
		pixels[i] = byte((i*37 + 11) % 256)
	}

	var buf bytes.Buffer
	if _, err := Encode(params, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range pixels {
		diff := int(pixels[i]) - int(decoded[i])
		if diff < 0 {
			diff = -diff
		}
		if diff > params.NearLossless {
			t.Fatalf("sample %d: |%d-%d|=%d exceeds NEAR=%d", i, pixels[i], decoded[i], diff, params.NearLossless)
		}
	}
}

func TestEncodeDecodeRGBWithHP1AndJFIF(t *testing.T) {
	params := Params{
		Width: 8, Height: 8, BitsPerSample: 8, Components: 3,
		Interleave: InterleaveLine, ColorXform: ColorTransformHP1,
		JFIF: &JFIFParams{VersionMajor: 1, VersionMinor: 2, DensityX: 1, DensityY: 1},
	}
	pixels := make([]byte, params.Width*params.Height*3)
	for i := range pixels {
		pixels[i] = byte((i * 7) % 256)
	}

	var buf bytes.Buffer
	if _, err := Encode(params, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, pixels) {
		t.Fatalf("RGB HP1 round trip mismatch")
	}
}

func TestEncodeDecodeBGROutputSwapsComponents(t *testing.T) {
	encodeParams := Params{
		Width: 4, Height: 4, BitsPerSample: 8, Components: 3,
		Interleave: InterleaveLine, ColorXform: ColorTransformHP1,
	}
	pixels := make([]byte, encodeParams.Width*encodeParams.Height*3)
	for i := range pixels {
		pixels[i] = byte((i * 5) % 256)
	}

	var buf bytes.Buffer
	if _, err := Encode(encodeParams, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decodeParams := Params{OutputBGR: true}
	decoded, err := Decode(&buf, &decodeParams)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := 0; i < len(pixels); i += 3 {
		if decoded[i] != pixels[i+2] || decoded[i+2] != pixels[i] {
			t.Fatalf("pixel %d not BGR-swapped: got %v want swap of %v", i/3, decoded[i:i+3], pixels[i:i+3])
		}
	}
}

func TestEncodeDecodeRestartIntervalSampleInterleaveHP2(t *testing.T) {
	params := Params{
		Width: 6, Height: 6, BitsPerSample: 8, Components: 3,
		Interleave: InterleaveSample, ColorXform: ColorTransformHP2,
		RestartInterval: 2,
	}
	pixels := make([]byte, params.Width*params.Height*3)
	for i := range pixels {
		pixels[i] = byte((i*3 + 1) % 256)
	}

	var buf bytes.Buffer
	if _, err := Encode(params, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got Params
	decoded, err := Decode(&buf, &got)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, pixels) {
		t.Fatalf("restart-interval round trip mismatch")
	}
	if got.RestartInterval != params.RestartInterval {
		t.Fatalf("decoded RestartInterval = %d, want %d", got.RestartInterval, params.RestartInterval)
	}
}

func TestValidateRejectsBadBitsPerSample(t *testing.T) {
	params := Params{Width: 1, Height: 1, BitsPerSample: 1, Components: 1}
	if verr := params.Validate(); verr == nil || verr.Code != InvalidJlsParameters {
		t.Fatalf("Validate() = %v, want InvalidJlsParameters", verr)
	}
}

func TestValidateRejectsColorTransformOnGrayscale(t *testing.T) {
	params := Params{Width: 1, Height: 1, BitsPerSample: 8, Components: 1, ColorXform: ColorTransformHP1}
	if verr := params.Validate(); verr == nil || verr.Code != UnsupportedColorTransform {
		t.Fatalf("Validate() = %v, want UnsupportedColorTransform", verr)
	}
}

func TestReadHeaderWithoutDecodingBody(t *testing.T) {
	params := Params{Width: 10, Height: 5, BitsPerSample: 8, Components: 1}
	pixels := make([]byte, 50)

	var buf bytes.Buffer
	if _, err := Encode(params, pixels, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := ReadHeader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if got.Width != 10 || got.Height != 5 || got.Components != 1 {
		t.Fatalf("ReadHeader = %+v", got)
	}
}
