package header

import (
	"bufio"
	"fmt"
	"io"

	"github.com/marmos91/jnrrd/pkg/jsonval"
)

// WriteTo serializes the header: the magic field first, the remaining core
// fields in store order, the flattened extension fields grouped by namespace,
// and finally the single blank line separating header from payload. It
// implements io.WriterTo.
func (h *Header) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	writeLine := func(key string, value *jsonval.Value) error {
		line := jsonval.Object()
		line.SetField(key, value)
		n, err := bw.Write(line.JSON())
		written += int64(n)
		if err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		written++
		return nil
	}

	if magic, ok := h.Get(FieldMagic); ok {
		if err := writeLine(FieldMagic, magic); err != nil {
			return written, fmt.Errorf("writing header: %w", err)
		}
	}

	var werr error
	h.Range(func(name string, v *jsonval.Value) bool {
		if name == FieldMagic {
			return true
		}
		werr = writeLine(name, v)
		return werr == nil
	})
	if werr != nil {
		return written, fmt.Errorf("writing header: %w", werr)
	}

	for pair := h.ext.Oldest(); pair != nil; pair = pair.Next() {
		for _, field := range Flatten(pair.Value) {
			if err := writeLine(pair.Key+":"+field.Path, field.Value); err != nil {
				return written, fmt.Errorf("writing extension %q: %w", pair.Key, err)
			}
		}
	}

	if err := bw.WriteByte('\n'); err != nil {
		return written, fmt.Errorf("writing header: %w", err)
	}
	written++

	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("writing header: %w", err)
	}
	return written, nil
}
