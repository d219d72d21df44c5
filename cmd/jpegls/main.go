// Command jpegls is a CLI front end over the jpegls package: it encodes
// a raw planar pixel file to a JPEG-LS bitstream, or decodes a JPEG-LS
// bitstream back to raw planar pixels. Grounded on the teacher's
// tools/compare_jpegls.go os.Args-driven shape, upgraded to the
// standard flag package since this CLI takes named options rather than
// two positional file paths.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	jpegls "github.com/cocosip/go-jpegls"
)

// rawHeader is the one-line text header this tool puts in front of raw
// planar pixel files so a round trip is self-describing without
// requiring a JFIF wrapper on the input side: "width height bitdepth
// components\n" followed immediately by the raw sample bytes.
type rawHeader struct {
	Width, Height, BitDepth, Components int
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "encode":
		err = runEncode(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "jpegls: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: jpegls encode [flags] <in.raw> <out.jls>")
	fmt.Fprintln(os.Stderr, "       jpegls decode [flags] <in.jls> <out.raw>")
}

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ExitOnError)
	near := fs.Int("near", 0, "near-lossless bound, 0 = lossless")
	interleave := fs.Int("interleave", 0, "interleave mode: 0=none 1=line 2=sample")
	transform := fs.Int("transform", 0, "color transform: 0=none 1=hp1 2=hp2 3=hp3")
	bgr := fs.Bool("bgr", false, "swap component order 0 and 2 on the wire")
	restart := fs.Int("restart", 0, "restart interval in rows, 0 disables restart markers")
	jfif := fs.Bool("jfif", false, "wrap the bitstream in a JFIF APP0 block")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	br := bufio.NewReader(in)
	hdr, err := readRawHeader(br)
	if err != nil {
		return fmt.Errorf("reading raw header: %w", err)
	}
	pixels, err := io.ReadAll(br)
	if err != nil {
		return fmt.Errorf("reading pixel data: %w", err)
	}

	params := jpegls.Params{
		Width:           hdr.Width,
		Height:          hdr.Height,
		BitsPerSample:   hdr.BitDepth,
		Components:      hdr.Components,
		NearLossless:    *near,
		Interleave:      jpegls.InterleaveMode(*interleave),
		ColorXform:      jpegls.ColorTransform(*transform),
		OutputBGR:       *bgr,
		RestartInterval: *restart,
	}
	if *jfif {
		params.JFIF = &jpegls.JFIFParams{VersionMajor: 1, VersionMinor: 2, DensityUnits: 0, DensityX: 1, DensityY: 1}
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	n, encErr := jpegls.Encode(params, pixels, out)
	if encErr != nil {
		return encErr
	}
	fmt.Fprintf(os.Stderr, "jpegls: wrote %d bytes\n", n)
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	bgr := fs.Bool("bgr", false, "swap component order 0 and 2 on decode")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	params := jpegls.Params{OutputBGR: *bgr}
	pixels, decErr := jpegls.Decode(in, &params)
	if decErr != nil {
		return decErr
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	bw := bufio.NewWriter(out)
	if err := writeRawHeader(bw, rawHeader{
		Width: params.Width, Height: params.Height,
		BitDepth: params.BitsPerSample, Components: params.Components,
	}); err != nil {
		return fmt.Errorf("writing raw header: %w", err)
	}
	if _, err := bw.Write(pixels); err != nil {
		return fmt.Errorf("writing pixel data: %w", err)
	}
	return bw.Flush()
}

func readRawHeader(r *bufio.Reader) (rawHeader, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return rawHeader{}, err
	}
	var h rawHeader
	if _, err := fmt.Sscanf(line, "%d %d %d %d", &h.Width, &h.Height, &h.BitDepth, &h.Components); err != nil {
		return rawHeader{}, fmt.Errorf("malformed raw header %q: %w", line, err)
	}
	return h, nil
}

func writeRawHeader(w *bufio.Writer, h rawHeader) error {
	_, err := fmt.Fprintf(w, "%d %d %d %d\n", h.Width, h.Height, h.BitDepth, h.Components)
	return err
}
