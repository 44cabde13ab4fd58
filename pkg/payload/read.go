// Package payload reads and writes the binary image data that follows a
// JNRRD header: raw bytes, compressed streams, and the ascii and hex
// text encodings, with endianness correction into host byte order.
package payload

import (
	"io"

	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/payload/encoding"
)

// Read extracts the payload described by h into a native-order buffer
// of exactly numBytes bytes. src, when non-nil, is the seekable stream
// the header was parsed from; it is consulted only for attached
// payloads, detached data files are opened from disk.
func Read(h *header.Header, src io.ReadSeeker, t image.SampleType, numBytes int) ([]byte, error) {
	loc, err := Locate(h)
	if err != nil {
		return nil, err
	}
	r, closer, err := loc.open(src)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		defer func() { _ = closer.Close() }()
	}

	enc := h.Encoding()
	var data []byte
	switch enc {
	case "raw":
		data, err = readRaw(r, loc.Path, numBytes)
	case "ascii", "text", "txt":
		// Text values are parsed straight into host order.
		return readASCII(r, t, numBytes)
	case "hex":
		data, err = readHex(r, numBytes)
	default:
		data, err = readCompressed(r, enc, numBytes)
	}
	if err != nil {
		return nil, err
	}

	if endian, ok := h.Endian(); ok && needsSwap(endian) {
		swapBytes(data, t.SwapWidth())
	}
	return data, nil
}

func readRaw(r io.Reader, path string, numBytes int) ([]byte, error) {
	data := make([]byte, numBytes)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, &Error{Op: "read payload", Path: path, Detail: err.Error(), Err: ErrTruncated}
	}
	return data, nil
}

// readCompressed decompresses the remainder of r, which must yield
// exactly numBytes bytes.
func readCompressed(r io.Reader, enc string, numBytes int) ([]byte, error) {
	codec, err := encoding.Lookup(enc)
	if err != nil {
		return nil, err
	}
	dr, err := codec.Decompress(r)
	if err != nil {
		return nil, &Error{Op: "decompress", Detail: enc + ": " + err.Error(), Err: ErrDecompression}
	}
	defer func() { _ = dr.Close() }()

	data := make([]byte, numBytes)
	if _, err := io.ReadFull(dr, data); err != nil {
		return nil, &Error{Op: "decompress", Detail: enc + " stream ended early: " + err.Error(), Err: ErrDecompression}
	}
	var extra [1]byte
	if n, _ := dr.Read(extra[:]); n != 0 {
		return nil, &Error{Op: "decompress", Detail: enc + " stream larger than expected", Err: ErrDecompression}
	}
	return data, nil
}
