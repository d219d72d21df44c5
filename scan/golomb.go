package scan

import "github.com/cocosip/go-jpegls/bitio"

// encodeMapped writes a Golomb-Rice code for a mapped (non-negative)
// error value using parameter k, falling back to the escape code of
// Annex A.5.1 when the unary quotient would exceed Limit - qbpp - 1.
// Grounded on jpegls/lossless/golomb.go's EncodeMappedValue, adapted to
// bitio's bit-level stuffing instead of golomb.go's byte-level stuffing.
func encodeMapped(w *bitio.Writer, mapped, k, limit, qbpp int) error {
	highBits := mapped >> uint(k)
	if highBits < limit-qbpp-1 {
		if highBits > 0 {
			if err := w.AppendOnes(highBits); err != nil {
				return err
			}
		}
		if err := w.AppendBits(0, 1); err != nil {
			return err
		}
		if k > 0 {
			return w.AppendBits(uint32(mapped)&((1<<uint(k))-1), k)
		}
		return nil
	}

	if err := w.AppendOnes(limit - qbpp - 1); err != nil {
		return err
	}
	if err := w.AppendBits(0, 1); err != nil {
		return err
	}
	return w.AppendBits(uint32(mapped-1), qbpp)
}

// decodeMapped mirrors encodeMapped.
func decodeMapped(r *bitio.Reader, k, limit, qbpp int) (int, error) {
	unary := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit == 0 {
			break
		}
		unary++
		if unary >= limit-qbpp-1 {
			// encodeMapped's escape branch writes exactly this many one
			// bits followed by its own terminating zero bit before the
			// qbpp payload; consume that terminator here before reading
			// the payload, mirroring the regular branch's break above.
			if _, err := r.ReadBit(); err != nil {
				return 0, err
			}
			v, err := r.ReadBits(qbpp)
			if err != nil {
				return 0, err
			}
			return int(v) + 1, nil
		}
	}
	if k == 0 {
		return unary, nil
	}
	low, err := r.ReadBits(k)
	if err != nil {
		return 0, err
	}
	return (unary << uint(k)) | int(low), nil
}
