// Package encoding registers the compression codecs used for image
// payloads. Codecs are looked up by the name carried in the header's
// encoding field; short aliases such as "gz" and "bz2" resolve to
// their canonical codec.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
)

// ErrUnsupported is returned when no codec is registered under the
// requested encoding name.
var ErrUnsupported = errors.New("unsupported encoding")

// DefaultLevel selects each codec's own default compression level.
const DefaultLevel = -1

// Codec compresses and decompresses payload streams.
type Codec interface {
	// Name returns the canonical encoding name.
	Name() string

	// Compress wraps w so that everything written to the returned
	// writer is compressed into w. Close must be called to flush.
	Compress(w io.Writer, level int) (io.WriteCloser, error)

	// Decompress wraps r with a decompressing reader.
	Decompress(r io.Reader) (io.ReadCloser, error)
}

var (
	mu      sync.RWMutex
	codecs  = make(map[string]Codec)
	aliases = map[string]string{
		"gz":  "gzip",
		"bz2": "bzip2",
	}
)

// Register adds a codec to the registry under its canonical name.
// Registering the same name twice panics.
func Register(c Codec) {
	mu.Lock()
	defer mu.Unlock()

	name := c.Name()
	if _, dup := codecs[name]; dup {
		panic(fmt.Sprintf("encoding: codec %q registered twice", name))
	}
	codecs[name] = c
}

// Lookup resolves an encoding name (or alias) to its codec.
func Lookup(name string) (Codec, error) {
	mu.RLock()
	defer mu.RUnlock()

	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnsupported)
	}
	return c, nil
}

// Names returns the canonical names of all registered codecs, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
