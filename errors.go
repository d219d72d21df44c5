// Package jpegls is the public entry point for encoding and decoding
// JPEG-LS (ISO/IEC 14495-1) images: it wires the frame package's marker
// I/O together with the scan package's predictor/context/Golomb-Rice
// scan codec.
package jpegls

import "fmt"

// ErrorCode is the stable, discriminated failure value the core
// surfaces to callers. The core never retries and never logs; a failure
// aborts the current scan and any partial output must be discarded.
type ErrorCode int

// The fifteen stable error codes of the external interface.
const (
	OK ErrorCode = iota
	InvalidJlsParameters
	ParameterValueNotSupported
	UncompressedBufferTooSmall
	CompressedBufferTooSmall
	InvalidCompressedData
	TooMuchCompressedData
	ImageTypeNotSupported
	UnsupportedBitDepthForTransform
	UnsupportedColorTransform
	UnsupportedEncoding
	UnknownJpegMarker
	MissingJpegMarkerStart
	UnspecifiedFailure
	UnexpectedFailure
)

var errorCodeNames = [...]string{
	"OK",
	"invalid JPEG-LS parameters",
	"parameter value not supported",
	"uncompressed buffer too small",
	"compressed buffer too small",
	"invalid compressed data",
	"too much compressed data",
	"image type not supported",
	"unsupported bit depth for color transform",
	"unsupported color transform",
	"unsupported encoding",
	"unknown JPEG marker",
	"missing JPEG marker start",
	"unspecified failure",
	"unexpected failure",
}

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	if int(c) < 0 || int(c) >= len(errorCodeNames) {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return errorCodeNames[c]
}

// Error is the single error type this package's Encode, Decode,
// ReadHeader and Validate return: a stable code plus the contextual
// detail that produced it.
type Error struct {
	Code ErrorCode
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jpegls: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("jpegls: %s", e.Code)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, cause error) *Error {
	return &Error{Code: code, Err: cause}
}
