package encoding

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

func init() {
	Register(lz4Codec{})
}

var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

type lz4Codec struct{}

func (lz4Codec) Name() string {
	return "lz4"
}

func (lz4Codec) Compress(w io.Writer, level int) (io.WriteCloser, error) {
	lw := lz4.NewWriter(w)
	if level > 0 {
		if level >= len(lz4Levels) {
			level = len(lz4Levels) - 1
		}
		if err := lw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
			return nil, err
		}
	}
	return lw, nil
}

func (lz4Codec) Decompress(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
