package encoding

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

func init() {
	Register(gzipCodec{})
}

type gzipCodec struct{}

func (gzipCodec) Name() string {
	return "gzip"
}

func (gzipCodec) Compress(w io.Writer, level int) (io.WriteCloser, error) {
	if level <= 0 {
		level = gzip.DefaultCompression
	}
	return gzip.NewWriterLevel(w, level)
}

func (gzipCodec) Decompress(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
