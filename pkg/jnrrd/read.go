package jnrrd

import (
	"bytes"
	"io"

	"github.com/marmos91/jnrrd/pkg/geometry"
	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/payload"
)

// ReadHeader parses just the header from r, leaving the payload alone.
func ReadHeader(r io.Reader) (*header.Header, error) {
	return header.Parse(r)
}

// Read decodes a complete JNRRD stream into an image. The stream is
// buffered in memory; headers that reference a detached data file
// cannot be resolved from a plain stream and fail with
// payload.ErrFileAccess.
func Read(r io.Reader) (*image.Image, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src := bytes.NewReader(raw)
	h, err := header.Parse(src)
	if err != nil {
		return nil, err
	}
	return decode(h, src)
}

// ReadFile decodes a JNRRD file, resolving detached data files relative
// to the header's directory.
func ReadFile(path string) (*image.Image, error) {
	h, err := header.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return decode(h, nil)
}

func decode(h *header.Header, src io.ReadSeeker) (*image.Image, error) {
	typeName, err := h.Type()
	if err != nil {
		return nil, err
	}
	t, err := image.ParseSampleType(typeName)
	if err != nil {
		return nil, err
	}
	sizes, err := h.Sizes()
	if err != nil {
		return nil, err
	}

	img, err := image.New(t, sizes...)
	if err != nil {
		return nil, err
	}

	geo, err := geometry.Resolve(h)
	if err != nil {
		return nil, err
	}
	img.Spacing = geo.Spacing
	img.Origin = geo.Origin
	img.Direction = geo.Direction

	data, err := payload.Read(h, src, t, len(img.Data))
	if err != nil {
		return nil, err
	}
	img.Data = data

	attachMetadata(h, img)
	return img, nil
}
