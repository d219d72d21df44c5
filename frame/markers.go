// Package frame implements JPEG marker-level framing for JPEG-LS
// bitstreams: SOI/EOI, SOF55 (the JPEG-LS frame header), LSE (preset
// coding parameters), SOS, DRI, RSTn, an optional APP0 JFIF block, and
// COM passthrough. Grounded on the teacher's jpeg/standard package
// (reader.go/writer.go's big-endian marker/length I/O) and
// jpeg/common/markers.go's constant layout, repurposed away from
// baseline JPEG's DHT/DQT tables toward the two markers JPEG-LS actually
// defines.
package frame

// Marker constants used by a JPEG-LS bitstream.
const (
	MarkerSOI = 0xFFD8
	MarkerEOI = 0xFFD9

	// MarkerSOF55 is the JPEG-LS frame header, ISO/IEC 14495-1 Annex C.1.
	MarkerSOF55 = 0xFFF7
	// MarkerLSE carries the optional preset coding parameters or mapping
	// tables of Annex C.2.4.
	MarkerLSE = 0xFFF8

	MarkerSOS = 0xFFDA
	MarkerDRI = 0xFFDD

	MarkerCOM = 0xFFFE

	MarkerAPP0  = 0xFFE0
	MarkerAPP1  = 0xFFE1
	MarkerAPP15 = 0xFFEF

	MarkerRST0 = 0xFFD0
	MarkerRST7 = 0xFFD7
)

// IsRST reports whether marker is one of the eight restart markers.
func IsRST(marker uint16) bool {
	return marker >= MarkerRST0 && marker <= MarkerRST7
}

// IsAPPn reports whether marker is one of the sixteen application
// segments (APP0 carries the optional JFIF block).
func IsAPPn(marker uint16) bool {
	return marker >= MarkerAPP0 && marker <= MarkerAPP15
}

// HasLength reports whether marker is followed by a 2-byte length field
// and a segment body. SOI, EOI and the restart markers are not.
func HasLength(marker uint16) bool {
	if marker == MarkerSOI || marker == MarkerEOI {
		return false
	}
	return !IsRST(marker)
}
