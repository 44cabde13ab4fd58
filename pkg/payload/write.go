package payload

import (
	"fmt"
	"io"

	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/payload/encoding"
)

// Write serializes a native-order sample buffer to w using the given
// encoding. When endian names a byte order other than the host's, a
// copy of the buffer is swapped before the binary encodings run; the
// text encodings are value based and ignore byte order.
func Write(w io.Writer, data []byte, t image.SampleType, enc string, level int, endian string) error {
	switch enc {
	case "ascii", "text", "txt":
		return writeASCII(w, data, t)
	}

	if needsSwap(endian) && t.SwapWidth() > 1 {
		swapped := make([]byte, len(data))
		copy(swapped, data)
		swapBytes(swapped, t.SwapWidth())
		data = swapped
	}

	switch enc {
	case "raw":
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("writing payload: %w", err)
		}
		return nil
	case "hex":
		return writeHex(w, data)
	}

	codec, err := encoding.Lookup(enc)
	if err != nil {
		return err
	}
	cw, err := codec.Compress(w, level)
	if err != nil {
		return &Error{Op: "compress", Detail: enc + ": " + err.Error(), Err: ErrCompression}
	}
	if _, err := cw.Write(data); err != nil {
		_ = cw.Close()
		return &Error{Op: "compress", Detail: enc + ": " + err.Error(), Err: ErrCompression}
	}
	if err := cw.Close(); err != nil {
		return &Error{Op: "compress", Detail: enc + ": " + err.Error(), Err: ErrCompression}
	}
	return nil
}
