package payload

import (
	"errors"
	"fmt"
)

var (
	// ErrFileAccess indicates the payload source could not be opened or
	// resolved, including detached files referenced by a stream-parsed
	// header.
	ErrFileAccess = errors.New("cannot access payload")

	// ErrTruncated indicates a raw payload ended before the expected
	// number of bytes.
	ErrTruncated = errors.New("payload truncated")

	// ErrDecompression indicates a compressed payload is corrupt or does
	// not decompress to the expected size.
	ErrDecompression = errors.New("payload decompression failed")

	// ErrCompression indicates the payload could not be compressed.
	ErrCompression = errors.New("payload compression failed")
)

// Error carries the operation and source path alongside a sentinel cause.
type Error struct {
	Op     string
	Path   string
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %s", msg, e.Path)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
