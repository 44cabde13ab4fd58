package jnrrd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marmos91/jnrrd/pkg/geometry"
	"github.com/marmos91/jnrrd/pkg/header"
	"github.com/marmos91/jnrrd/pkg/image"
	"github.com/marmos91/jnrrd/pkg/jsonval"
	"github.com/marmos91/jnrrd/pkg/payload"
)

// Write serializes img to w with the payload attached after the header.
func Write(w io.Writer, img *image.Image, opts *Options) error {
	o := opts.withDefaults()
	h, err := buildHeader(img, o, "")
	if err != nil {
		return err
	}
	if _, err := h.WriteTo(w); err != nil {
		return err
	}
	return payload.Write(w, img.Data, img.Type, o.Encoding, o.Level, o.Endian)
}

// WriteFile serializes img into a single file at path.
func WriteFile(path string, img *image.Image, opts *Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := Write(f, img, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteDetached serializes img as a header file at headerPath and a
// separate payload file at dataPath. The header's data_file field holds
// dataPath relative to the header's directory when possible.
func WriteDetached(headerPath, dataPath string, img *image.Image, opts *Options) error {
	o := opts.withDefaults()

	ref := dataPath
	if rel, err := filepath.Rel(filepath.Dir(headerPath), dataPath); err == nil {
		ref = rel
	}

	h, err := buildHeader(img, o, ref)
	if err != nil {
		return err
	}

	hf, err := os.Create(headerPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", headerPath, err)
	}
	if _, err := h.WriteTo(hf); err != nil {
		_ = hf.Close()
		return err
	}
	if err := hf.Close(); err != nil {
		return err
	}

	df, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dataPath, err)
	}
	if err := payload.Write(df, img.Data, img.Type, o.Encoding, o.Level, o.Endian); err != nil {
		_ = df.Close()
		return err
	}
	return df.Close()
}

// spaceName returns the default anatomical space written for an image
// of the given dimension.
func spaceName(dim int) string {
	switch {
	case dim >= 3:
		return "right_anterior_superior"
	case dim == 2:
		return "right_anterior"
	default:
		return ""
	}
}

// buildHeader assembles the header fields for img in writer order.
func buildHeader(img *image.Image, o Options, dataFile string) (*header.Header, error) {
	if _, err := image.NumBytes(img.Type, img.Sizes...); err != nil {
		return nil, err
	}

	h := header.New()
	h.SetString(header.FieldMagic, header.Version)
	h.SetString(header.FieldType, img.Type.String())
	h.SetInt(header.FieldDimension, int64(img.Dimension()))
	h.Set(header.FieldSizes, jsonval.IntsToArray(img.Sizes))
	if img.Type.Size() > 1 {
		h.SetString(header.FieldEndian, o.Endian)
	}
	h.SetString(header.FieldEncoding, o.Encoding)
	if space := spaceName(img.Dimension()); space != "" {
		h.SetString(header.FieldSpace, space)
	}

	geometry.Apply(&geometry.Descriptor{
		Dimension: img.Dimension(),
		Spacing:   img.Spacing,
		Origin:    img.Origin,
		Direction: img.Direction,
	}, h)

	if dataFile != "" {
		h.SetString(header.FieldDataFile, filepath.ToSlash(dataFile))
	}

	applyMetadata(img, h)
	return h, nil
}
