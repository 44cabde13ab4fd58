// Package format is a registry of on-disk image container formats.
// Containers register themselves from their package init, and callers
// resolve a codec by name, file extension, or content sniffing without
// importing every container package directly.
package format

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/marmos91/jnrrd/pkg/image"
)

// ErrUnknownFormat indicates no registered codec matches the requested
// name, extension or content.
var ErrUnknownFormat = errors.New("unknown image format")

// SniffLen is the number of leading bytes a codec may inspect in CanRead.
const SniffLen = 512

// Codec describes one container format.
type Codec struct {
	// Name is the canonical format name, e.g. "jnrrd".
	Name string

	// Extensions lists the file extensions (with leading dot) the
	// format claims.
	Extensions []string

	// CanRead reports whether the leading bytes of a file look like
	// this format. prefix holds at most SniffLen bytes.
	CanRead func(prefix []byte) bool

	// Read decodes the file at path into an image.
	Read func(path string) (*image.Image, error)

	// Write encodes img into the file at path.
	Write func(path string, img *image.Image) error
}

var (
	mu     sync.RWMutex
	codecs []*Codec
)

// Register adds a codec. Registering a duplicate name panics.
func Register(c *Codec) {
	mu.Lock()
	defer mu.Unlock()

	for _, existing := range codecs {
		if existing.Name == c.Name {
			panic(fmt.Sprintf("format: codec %q registered twice", c.Name))
		}
	}
	codecs = append(codecs, c)
}

// ByName resolves a codec by its canonical name.
func ByName(name string) (*Codec, error) {
	mu.RLock()
	defer mu.RUnlock()

	for _, c := range codecs {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
}

// ByPath resolves a codec from a file path's extension.
func ByPath(path string) (*Codec, error) {
	ext := strings.ToLower(filepath.Ext(path))

	mu.RLock()
	defer mu.RUnlock()

	for _, c := range codecs {
		for _, e := range c.Extensions {
			if e == ext {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("extension %q: %w", ext, ErrUnknownFormat)
}

// Detect resolves a codec by sniffing the leading bytes of a file.
func Detect(prefix []byte) (*Codec, error) {
	mu.RLock()
	defer mu.RUnlock()

	for _, c := range codecs {
		if c.CanRead != nil && c.CanRead(prefix) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unrecognized content: %w", ErrUnknownFormat)
}

// Names returns the canonical names of all registered codecs, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(codecs))
	for _, c := range codecs {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}
