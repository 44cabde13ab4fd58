package encoding

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

func init() {
	Register(bzip2Codec{})
}

type bzip2Codec struct{}

func (bzip2Codec) Name() string {
	return "bzip2"
}

func (bzip2Codec) Compress(w io.Writer, level int) (io.WriteCloser, error) {
	cfg := &bzip2.WriterConfig{Level: bzip2.DefaultCompression}
	if level > 0 {
		cfg.Level = level
	}
	return bzip2.NewWriter(w, cfg)
}

func (bzip2Codec) Decompress(r io.Reader) (io.ReadCloser, error) {
	return bzip2.NewReader(r, nil)
}
