package frame

import "fmt"

// FrameHeader is the JPEG-LS frame header carried in SOF55
// (ISO/IEC 14495-1 Annex C.1.1).
type FrameHeader struct {
	Precision  int // bits per sample, 2..16
	Height     int
	Width      int
	Components []FrameComponent
}

// FrameComponent is one component's entry in the frame header.
type FrameComponent struct {
	ID         int
	HSampling  int
	VSampling  int
	TableID    int
}

// WriteSOF55 encodes and writes a frame header segment.
func WriteSOF55(w *Writer, h FrameHeader) error {
	body := make([]byte, 0, 6+3*len(h.Components))
	body = append(body, byte(h.Precision))
	body = append(body, byte(h.Height>>8), byte(h.Height))
	body = append(body, byte(h.Width>>8), byte(h.Width))
	body = append(body, byte(len(h.Components)))
	for _, c := range h.Components {
		body = append(body, byte(c.ID), byte(c.HSampling<<4|c.VSampling), byte(c.TableID))
	}
	return w.WriteSegment(MarkerSOF55, body)
}

// ReadSOF55 decodes a frame header segment body.
func ReadSOF55(body []byte) (FrameHeader, error) {
	if len(body) < 6 {
		return FrameHeader{}, fmt.Errorf("frame: SOF55 segment too short")
	}
	h := FrameHeader{
		Precision: int(body[0]),
		Height:    int(body[1])<<8 | int(body[2]),
		Width:     int(body[3])<<8 | int(body[4]),
	}
	n := int(body[5])
	if len(body) < 6+3*n {
		return FrameHeader{}, fmt.Errorf("frame: SOF55 component list truncated")
	}
	h.Components = make([]FrameComponent, n)
	for i := 0; i < n; i++ {
		off := 6 + 3*i
		h.Components[i] = FrameComponent{
			ID:        int(body[off]),
			HSampling: int(body[off+1] >> 4),
			VSampling: int(body[off+1] & 0x0F),
			TableID:   int(body[off+2]),
		}
	}
	return h, nil
}

// PresetParams is the LSE preset-coding-parameters segment body
// (Annex C.2.4.1.1); ID 1 is the only variant this module implements
// (mapping tables, ID 2/3/4, are out of scope per spec.md's Non-goals).
type PresetParams struct {
	MaxVal, T1, T2, T3, Reset int
}

const presetParamsID = 1

// WriteLSE encodes and writes a preset coding parameters segment.
func WriteLSE(w *Writer, p PresetParams) error {
	body := []byte{
		presetParamsID,
		byte(p.MaxVal >> 8), byte(p.MaxVal),
		byte(p.T1 >> 8), byte(p.T1),
		byte(p.T2 >> 8), byte(p.T2),
		byte(p.T3 >> 8), byte(p.T3),
		byte(p.Reset >> 8), byte(p.Reset),
	}
	return w.WriteSegment(MarkerLSE, body)
}

// ReadLSE decodes a preset coding parameters segment body.
func ReadLSE(body []byte) (PresetParams, error) {
	if len(body) < 11 || body[0] != presetParamsID {
		return PresetParams{}, fmt.Errorf("frame: unsupported or malformed LSE segment")
	}
	u16 := func(off int) int { return int(body[off])<<8 | int(body[off+1]) }
	return PresetParams{
		MaxVal: u16(1),
		T1:     u16(3),
		T2:     u16(5),
		T3:     u16(7),
		Reset:  u16(9),
	}, nil
}

// WriteDRI encodes and writes a restart-interval-definition segment
// (ISO/IEC 10918-1 B.2.4.4), carrying the number of rows between RSTn
// markers; interval==0 is never written by the caller (Encode skips the
// segment entirely when RestartInterval is 0).
func WriteDRI(w *Writer, interval int) error {
	body := []byte{byte(interval >> 8), byte(interval)}
	return w.WriteSegment(MarkerDRI, body)
}

// ReadDRI decodes a restart-interval-definition segment body.
func ReadDRI(body []byte) (int, error) {
	if len(body) < 2 {
		return 0, fmt.Errorf("frame: DRI segment too short")
	}
	return int(body[0])<<8 | int(body[1]), nil
}

// Interleave mirrors scan.InterleaveMode at the wire level (ISO/IEC
// 14495-1 Annex C.1.2's ILV field: 0 none, 1 line, 2 sample).
type Interleave int

const (
	InterleaveNone Interleave = iota
	InterleaveLine
	InterleaveSample
)

// ScanHeader is the JPEG-LS scan header carried in SOS
// (Annex C.1.2), generalized to carry one scan's component selection,
// NEAR and ILV.
type ScanHeader struct {
	ComponentIDs   []int
	Near           int
	Interleave     Interleave
	PointTransform int
}

// WriteSOS encodes and writes a scan header segment.
func WriteSOS(w *Writer, h ScanHeader) error {
	body := make([]byte, 0, 4+2*len(h.ComponentIDs))
	body = append(body, byte(len(h.ComponentIDs)))
	for _, id := range h.ComponentIDs {
		body = append(body, byte(id), 0) // mapping table selector unused
	}
	body = append(body, byte(h.Near), byte(h.Interleave), byte(h.PointTransform))
	return w.WriteSegment(MarkerSOS, body)
}

// ReadSOS decodes a scan header segment body.
func ReadSOS(body []byte) (ScanHeader, error) {
	if len(body) < 1 {
		return ScanHeader{}, fmt.Errorf("frame: SOS segment too short")
	}
	n := int(body[0])
	if len(body) < 1+2*n+3 {
		return ScanHeader{}, fmt.Errorf("frame: SOS segment truncated")
	}
	h := ScanHeader{ComponentIDs: make([]int, n)}
	for i := 0; i < n; i++ {
		h.ComponentIDs[i] = int(body[1+2*i])
	}
	off := 1 + 2*n
	h.Near = int(body[off])
	h.Interleave = Interleave(body[off+1])
	h.PointTransform = int(body[off+2])
	return h, nil
}
