package payload

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/payload/encoding"
)

// Values per line when rendering ascii payloads, bytes per line for hex.
const (
	asciiValuesPerLine = 8
	hexBytesPerLine    = 32
)

// textRepresentable reports whether t has an exact decimal text form.
// Half-precision floats, complex and block elements do not.
func textRepresentable(t image.SampleType) bool {
	switch t {
	case image.Float16, image.BFloat16, image.Complex64, image.Complex128, image.Block:
		return false
	default:
		return true
	}
}

func textUnsupported(op string, t image.SampleType) error {
	return &Error{
		Op:     op,
		Detail: fmt.Sprintf("type %s has no text representation", t),
		Err:    encoding.ErrUnsupported,
	}
}

// readASCII decodes whitespace-separated decimal values into a native-
// order sample buffer of exactly numBytes bytes.
func readASCII(r io.Reader, t image.SampleType, numBytes int) ([]byte, error) {
	if !textRepresentable(t) {
		return nil, textUnsupported("decode ascii", t)
	}

	size := t.Size()
	data := make([]byte, numBytes)

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for off := 0; off < numBytes; off += size {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, &Error{Op: "decode ascii", Detail: err.Error(), Err: ErrTruncated}
			}
			return nil, &Error{
				Op:     "decode ascii",
				Detail: fmt.Sprintf("expected %d values, got %d", numBytes/size, off/size),
				Err:    ErrTruncated,
			}
		}
		if err := parseTextValue(sc.Text(), t, data[off:off+size]); err != nil {
			return nil, &Error{Op: "decode ascii", Detail: err.Error(), Err: ErrDecompression}
		}
	}
	return data, nil
}

// writeASCII renders the native-order sample buffer as decimal values,
// eight per line.
func writeASCII(w io.Writer, data []byte, t image.SampleType) error {
	if !textRepresentable(t) {
		return textUnsupported("encode ascii", t)
	}

	size := t.Size()
	line := make([]byte, 0, 128)
	count := 0
	for off := 0; off+size <= len(data); off += size {
		if count > 0 {
			line = append(line, ' ')
		}
		var err error
		line, err = appendTextValue(line, t, data[off:off+size])
		if err != nil {
			return err
		}
		count++
		if count == asciiValuesPerLine {
			line = append(line, '\n')
			if _, err := w.Write(line); err != nil {
				return &Error{Op: "encode ascii", Detail: err.Error(), Err: ErrCompression}
			}
			line, count = line[:0], 0
		}
	}
	if count > 0 {
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return &Error{Op: "encode ascii", Detail: err.Error(), Err: ErrCompression}
		}
	}
	return nil
}

// readHex decodes hexadecimal digit pairs into numBytes bytes. ASCII
// whitespace between digits is ignored; anything else is corrupt.
func readHex(r io.Reader, numBytes int) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{Op: "decode hex", Detail: err.Error(), Err: ErrTruncated}
	}

	data := make([]byte, numBytes)
	have := 0
	hi := byte(0)
	pending := false
	for _, c := range raw {
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			continue
		case isHexDigit(c):
			if have == numBytes {
				// Extra digits past the expected payload are ignored,
				// matching raw payloads with trailing data.
				continue
			}
			if !pending {
				hi, pending = c, true
				continue
			}
			b, _ := hex.DecodeString(string([]byte{hi, c}))
			data[have] = b[0]
			have++
			pending = false
		default:
			return nil, &Error{
				Op:     "decode hex",
				Detail: fmt.Sprintf("invalid character %q", c),
				Err:    ErrDecompression,
			}
		}
	}
	if have < numBytes {
		return nil, &Error{
			Op:     "decode hex",
			Detail: fmt.Sprintf("expected %d bytes, got %d", numBytes, have),
			Err:    ErrTruncated,
		}
	}
	return data, nil
}

// writeHex renders data as lowercase hexadecimal, 32 bytes per line.
func writeHex(w io.Writer, data []byte) error {
	bw := bufio.NewWriter(w)
	for off := 0; off < len(data); off += hexBytesPerLine {
		end := off + hexBytesPerLine
		if end > len(data) {
			end = len(data)
		}
		if _, err := bw.WriteString(hex.EncodeToString(data[off:end])); err != nil {
			return &Error{Op: "encode hex", Detail: err.Error(), Err: ErrCompression}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return &Error{Op: "encode hex", Detail: err.Error(), Err: ErrCompression}
		}
	}
	if err := bw.Flush(); err != nil {
		return &Error{Op: "encode hex", Detail: err.Error(), Err: ErrCompression}
	}
	return nil
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// parseTextValue parses one decimal token into the native-order word dst.
func parseTextValue(tok string, t image.SampleType, dst []byte) error {
	switch {
	case t.IsSigned():
		n, err := strconv.ParseInt(tok, 10, 8*t.Size())
		if err != nil {
			return fmt.Errorf("value %q: %w", tok, err)
		}
		putWord(dst, uint64(n))
	case t.IsUnsigned():
		n, err := strconv.ParseUint(tok, 10, 8*t.Size())
		if err != nil {
			return fmt.Errorf("value %q: %w", tok, err)
		}
		putWord(dst, n)
	case t == image.Float32:
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return fmt.Errorf("value %q: %w", tok, err)
		}
		putWord(dst, uint64(math.Float32bits(float32(f))))
	case t == image.Float64:
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("value %q: %w", tok, err)
		}
		putWord(dst, math.Float64bits(f))
	default:
		return fmt.Errorf("type %s has no text representation", t)
	}
	return nil
}

// appendTextValue formats one native-order word as decimal text.
func appendTextValue(dst []byte, t image.SampleType, word []byte) ([]byte, error) {
	switch {
	case t.IsSigned():
		return strconv.AppendInt(dst, signedWord(word), 10), nil
	case t.IsUnsigned():
		return strconv.AppendUint(dst, getWord(word), 10), nil
	case t == image.Float32:
		f := math.Float32frombits(uint32(getWord(word)))
		return strconv.AppendFloat(dst, float64(f), 'g', -1, 32), nil
	case t == image.Float64:
		return strconv.AppendFloat(dst, math.Float64frombits(getWord(word)), 'g', -1, 64), nil
	default:
		return nil, fmt.Errorf("type %s has no text representation", t)
	}
}

func putWord(dst []byte, v uint64) {
	switch len(dst) {
	case 1:
		dst[0] = byte(v)
	case 2:
		binary.NativeEndian.PutUint16(dst, uint16(v))
	case 4:
		binary.NativeEndian.PutUint32(dst, uint32(v))
	case 8:
		binary.NativeEndian.PutUint64(dst, v)
	}
}

func getWord(src []byte) uint64 {
	switch len(src) {
	case 1:
		return uint64(src[0])
	case 2:
		return uint64(binary.NativeEndian.Uint16(src))
	case 4:
		return uint64(binary.NativeEndian.Uint32(src))
	case 8:
		return binary.NativeEndian.Uint64(src)
	}
	return 0
}

func signedWord(src []byte) int64 {
	switch len(src) {
	case 1:
		return int64(int8(src[0]))
	case 2:
		return int64(int16(binary.NativeEndian.Uint16(src)))
	case 4:
		return int64(int32(binary.NativeEndian.Uint32(src)))
	case 8:
		return int64(binary.NativeEndian.Uint64(src))
	}
	return 0
}
