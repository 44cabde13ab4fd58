package encoding

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

func init() {
	Register(zstdCodec{})
}

type zstdCodec struct{}

func (zstdCodec) Name() string {
	return "zstd"
}

func (zstdCodec) Compress(w io.Writer, level int) (io.WriteCloser, error) {
	opts := []zstd.EOption{}
	if level > 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	}
	return zstd.NewWriter(w, opts...)
}

func (zstdCodec) Decompress(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
