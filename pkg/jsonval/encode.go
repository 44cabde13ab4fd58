package jsonval

import (
	"strconv"

	"github.com/goccy/go-json"
)

// JSON serializes the value on a single line with no trailing newline.
func (v *Value) JSON() []byte {
	return v.AppendJSON(nil)
}

// AppendJSON appends the serialized value to dst and returns the extended
// slice.
func (v *Value) AppendJSON(dst []byte) []byte {
	switch v.Kind() {
	case KindNull:
		return append(dst, "null"...)
	case KindBool:
		return strconv.AppendBool(dst, v.b)
	case KindNumber:
		return append(dst, v.num.String()...)
	case KindString:
		return appendQuoted(dst, v.str)
	case KindArray:
		dst = append(dst, '[')
		for i, e := range v.arr {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = e.AppendJSON(dst)
		}
		return append(dst, ']')
	case KindObject:
		dst = append(dst, '{')
		first := true
		v.Range(func(key string, val *Value) bool {
			if !first {
				dst = append(dst, ',')
			}
			first = false
			dst = appendQuoted(dst, key)
			dst = append(dst, ':')
			dst = val.AppendJSON(dst)
			return true
		})
		return append(dst, '}')
	default:
		return append(dst, "null"...)
	}
}

// appendQuoted appends a JSON string literal, delegating escaping to the
// JSON encoder.
func appendQuoted(dst []byte, s string) []byte {
	quoted, err := json.Marshal(s)
	if err != nil {
		// Marshaling a string cannot fail; keep the output well-formed anyway.
		return append(dst, '"', '"')
	}
	return append(dst, quoted...)
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
