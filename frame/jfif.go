package frame

import (
	"bytes"
	"fmt"
)

var jfifIdentifier = []byte("JFIF\x00")

// JFIF is the optional APP0 JFIF block (JPEG File Interchange Format
// v1.02), written immediately after SOI when a caller asks for a
// self-describing file rather than a bare frame/scan pair.
type JFIF struct {
	VersionMajor, VersionMinor int
	DensityUnits               int // 0 = aspect ratio only, 1 = pixels/inch, 2 = pixels/cm
	DensityX, DensityY         int
}

// DefaultJFIF returns the conventional JFIF 1.02, no-density-stated
// block most encoders emit.
func DefaultJFIF() JFIF {
	return JFIF{VersionMajor: 1, VersionMinor: 2, DensityUnits: 0, DensityX: 1, DensityY: 1}
}

// WriteJFIF writes the APP0 JFIF segment.
func WriteJFIF(w *Writer, j JFIF) error {
	body := make([]byte, 0, 14)
	body = append(body, jfifIdentifier...)
	body = append(body, byte(j.VersionMajor), byte(j.VersionMinor))
	body = append(body, byte(j.DensityUnits))
	body = append(body, byte(j.DensityX>>8), byte(j.DensityX))
	body = append(body, byte(j.DensityY>>8), byte(j.DensityY))
	body = append(body, 0, 0) // no embedded thumbnail
	return w.WriteSegment(MarkerAPP0, body)
}

// ReadJFIF decodes an APP0 segment body, returning ok=false if it is an
// APP0 segment that doesn't carry the JFIF identifier (some other
// application marker reusing APP0).
func ReadJFIF(body []byte) (j JFIF, ok bool, err error) {
	if len(body) < 9 || !bytes.Equal(body[:5], jfifIdentifier) {
		return JFIF{}, false, nil
	}
	if len(body) < 14 {
		return JFIF{}, true, fmt.Errorf("frame: truncated JFIF segment")
	}
	return JFIF{
		VersionMajor: int(body[5]),
		VersionMinor: int(body[6]),
		DensityUnits: int(body[7]),
		DensityX:     int(body[8])<<8 | int(body[9]),
		DensityY:     int(body[10])<<8 | int(body[11]),
	}, true, nil
}

// WriteComment writes a COM segment carrying text verbatim.
func WriteComment(w *Writer, text string) error {
	return w.WriteSegment(MarkerCOM, []byte(text))
}
