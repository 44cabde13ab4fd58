package payload

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marmos91/jnrrd/pkg/header"
)

// Location describes where a header's payload bytes live.
type Location struct {
	// Path is the file holding the payload. Empty for attached payloads
	// parsed from a plain stream.
	Path string

	// Offset is the byte offset of the payload within Path. Only
	// meaningful for attached payloads.
	Offset int64

	// LineSkip and ByteSkip are discarded from the start of a detached
	// data file before the payload proper.
	LineSkip int
	ByteSkip int64

	// Detached reports whether the payload lives in a separate data file.
	Detached bool
}

// Locate resolves the payload source for h. Relative data file paths
// resolve against the directory of the header's source path; a detached
// payload on a header parsed from a plain stream cannot be resolved and
// fails with ErrFileAccess.
func Locate(h *header.Header) (*Location, error) {
	df, ok := h.DataFile()
	if !ok {
		return &Location{
			Path:   h.SourcePath(),
			Offset: h.PayloadStart(),
		}, nil
	}

	loc := &Location{Detached: true}

	lineSkip, err := h.LineSkip()
	if err != nil {
		return nil, err
	}
	byteSkip, err := h.ByteSkip()
	if err != nil {
		return nil, err
	}
	loc.LineSkip = lineSkip
	loc.ByteSkip = byteSkip

	if filepath.IsAbs(df) {
		loc.Path = df
		return loc, nil
	}
	src := h.SourcePath()
	if src == "" {
		return nil, &Error{
			Op:     "resolve data file",
			Path:   df,
			Detail: "header has no source path",
			Err:    ErrFileAccess,
		}
	}
	loc.Path = filepath.Join(filepath.Dir(src), df)
	return loc, nil
}

// open positions a reader at the first payload byte. src, when non-nil,
// is the stream the header was parsed from and is used for attached
// payloads in place of reopening the source file.
func (l *Location) open(src io.ReadSeeker) (io.Reader, io.Closer, error) {
	if !l.Detached {
		if src != nil {
			if _, err := src.Seek(l.Offset, io.SeekStart); err != nil {
				return nil, nil, &Error{Op: "seek payload", Path: l.Path, Detail: err.Error(), Err: ErrFileAccess}
			}
			return src, nil, nil
		}
		if l.Path == "" {
			return nil, nil, &Error{Op: "open payload", Detail: "no payload source available", Err: ErrFileAccess}
		}
	}

	f, err := os.Open(l.Path)
	if err != nil {
		return nil, nil, &Error{Op: "open payload", Path: l.Path, Detail: err.Error(), Err: ErrFileAccess}
	}

	if !l.Detached {
		if _, err := f.Seek(l.Offset, io.SeekStart); err != nil {
			_ = f.Close()
			return nil, nil, &Error{Op: "seek payload", Path: l.Path, Detail: err.Error(), Err: ErrFileAccess}
		}
		return f, f, nil
	}

	r := bufio.NewReader(f)
	if err := skipPreamble(r, l.LineSkip, l.ByteSkip); err != nil {
		_ = f.Close()
		return nil, nil, &Error{Op: "skip preamble", Path: l.Path, Detail: err.Error(), Err: ErrFileAccess}
	}
	return r, f, nil
}

// skipPreamble discards lineSkip whole lines, then byteSkip bytes.
func skipPreamble(r *bufio.Reader, lineSkip int, byteSkip int64) error {
	for i := 0; i < lineSkip; i++ {
		if _, err := r.ReadBytes('\n'); err != nil {
			return fmt.Errorf("skipping line %d: %w", i+1, err)
		}
	}
	if byteSkip > 0 {
		if _, err := io.CopyN(io.Discard, r, byteSkip); err != nil {
			return fmt.Errorf("skipping %d bytes: %w", byteSkip, err)
		}
	}
	return nil
}
