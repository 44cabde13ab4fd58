package payload

import "encoding/binary"

// nativeLittle reports whether the host stores multi-byte words
// little-endian first.
func nativeLittle() bool {
	return binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0201
}

// NativeEndian returns the host byte order as a header endian value.
func NativeEndian() string {
	if nativeLittle() {
		return "little"
	}
	return "big"
}

// needsSwap reports whether data declared with the given endian value
// must be byte-swapped to match the host order. An absent or unknown
// declaration is taken as already native.
func needsSwap(declared string) bool {
	switch declared {
	case "little":
		return !nativeLittle()
	case "big":
		return nativeLittle()
	default:
		return false
	}
}

// swapBytes reverses each width-sized word of data in place. A trailing
// partial word is left untouched.
func swapBytes(data []byte, width int) {
	if width < 2 {
		return
	}
	for i := 0; i+width <= len(data); i += width {
		for j, k := i, i+width-1; j < k; j, k = j+1, k-1 {
			data[j], data[k] = data[k], data[j]
		}
	}
}
