package codec_test

import (
	"testing"

	"github.com/cocosip/go-jpegls/codec"
)

func TestJPEGLSCodecIsRegistered(t *testing.T) {
	byName, err := codec.Get("JPEG-LS")
	if err != nil {
		t.Fatalf("Get(\"JPEG-LS\"): %v", err)
	}
	byUID, err := codec.Get("1.2.840.10008.1.2.4.80")
	if err != nil {
		t.Fatalf("Get(UID): %v", err)
	}
	if byName.Name() != byUID.Name() {
		t.Fatalf("name/UID lookup returned different codecs: %q vs %q", byName.Name(), byUID.Name())
	}
}

func TestGetUnknownCodec(t *testing.T) {
	if _, err := codec.Get("does-not-exist"); err != codec.ErrCodecNotFound {
		t.Fatalf("Get(unknown) = %v, want ErrCodecNotFound", err)
	}
}

func TestJPEGLSCodecEncodeDecodeRoundTrip(t *testing.T) {
	c, err := codec.Get("JPEG-LS")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	pixels := make([]byte, 8*8)
	for i := range pixels {
		pixels[i] = byte(i * 3)
	}

	params := codec.EncodeParams{
		PixelData:  pixels,
		Width:      8,
		Height:     8,
		Components: 1,
		BitDepth:   8,
		Options:    &codec.BaseOptions{},
	}
	encoded, err := c.Encode(params)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	result, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if result.Width != 8 || result.Height != 8 {
		t.Fatalf("Decode result geometry = %dx%d", result.Width, result.Height)
	}
	for i := range pixels {
		if result.PixelData[i] != pixels[i] {
			t.Fatalf("pixel %d: got %d want %d", i, result.PixelData[i], pixels[i])
		}
	}
}

func TestBaseOptionsValidateRejectsNegativeNear(t *testing.T) {
	opts := &codec.BaseOptions{NearLossless: -1}
	if err := opts.Validate(); err != codec.ErrInvalidParameter {
		t.Fatalf("Validate() = %v, want ErrInvalidParameter", err)
	}
}

func TestListIncludesJPEGLS(t *testing.T) {
	found := false
	for _, c := range codec.List() {
		if c.Name() == "JPEG-LS" {
			found = true
		}
	}
	if !found {
		t.Fatalf("List() did not include the JPEG-LS codec")
	}
}
