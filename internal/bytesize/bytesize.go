// Package bytesize renders byte counts as human-readable sizes for CLI
// output.
package bytesize

import "fmt"

// ByteSize is a size in bytes with a human-readable String form.
type ByteSize uint64

const (
	B   ByteSize = 1
	KiB ByteSize = 1024
	MiB ByteSize = 1024 * KiB
	GiB ByteSize = 1024 * MiB
	TiB ByteSize = 1024 * GiB
)

// String renders the size with its largest binary unit, e.g. "2.00MiB".
func (b ByteSize) String() string {
	switch {
	case b >= TiB:
		return fmt.Sprintf("%.2fTiB", float64(b)/float64(TiB))
	case b >= GiB:
		return fmt.Sprintf("%.2fGiB", float64(b)/float64(GiB))
	case b >= MiB:
		return fmt.Sprintf("%.2fMiB", float64(b)/float64(MiB))
	case b >= KiB:
		return fmt.Sprintf("%.2fKiB", float64(b)/float64(KiB))
	default:
		return fmt.Sprintf("%dB", uint64(b))
	}
}

// Format renders n bytes human-readably.
func Format(n int) string {
	if n < 0 {
		n = 0
	}
	return ByteSize(n).String()
}
