package jsonval

import (
	"github.com/goccy/go-json"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a dynamic JSON value. The zero value is JSON null.
//
// Values form trees: arrays and objects own their children. A Value is never
// shared between two parents; use Clone when the same content must appear in
// two places.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []*Value
	obj  *orderedmap.OrderedMap[string, *Value]
}

// Null returns a JSON null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a JSON boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, b: b}
}

// Number returns a JSON number value carrying the given literal.
func Number(n json.Number) *Value {
	return &Value{kind: KindNumber, num: n}
}

// Int returns a JSON number value for an integer.
func Int(i int64) *Value {
	return &Value{kind: KindNumber, num: json.Number(formatInt(i))}
}

// Float returns a JSON number value for a float, formatted with the shortest
// representation that round-trips.
func Float(f float64) *Value {
	return &Value{kind: KindNumber, num: json.Number(formatFloat(f))}
}

// String returns a JSON string value.
func String(s string) *Value {
	return &Value{kind: KindString, str: s}
}

// Array returns a JSON array value holding the given elements.
func Array(elems ...*Value) *Value {
	return &Value{kind: KindArray, arr: elems}
}

// Object returns an empty JSON object value.
func Object() *Value {
	return &Value{kind: KindObject, obj: orderedmap.New[string, *Value]()}
}

// Kind reports which variant the value holds.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// IsScalar reports whether the value is neither an array nor an object.
func (v *Value) IsScalar() bool {
	k := v.Kind()
	return k != KindArray && k != KindObject
}

// AsBool returns the boolean payload.
func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsString returns the string payload.
func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsNumber returns the number literal.
func (v *Value) AsNumber() (json.Number, bool) {
	if v == nil || v.kind != KindNumber {
		return "", false
	}
	return v.num, true
}

// AsInt returns the number payload as an int64. Numbers with a fractional
// part do not convert.
func (v *Value) AsInt() (int64, bool) {
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	i, err := v.num.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// AsFloat returns the number payload as a float64.
func (v *Value) AsFloat() (float64, bool) {
	if v == nil || v.kind != KindNumber {
		return 0, false
	}
	f, err := v.num.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

// Len returns the element count for arrays and the key count for objects,
// and 0 for scalars.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// Index returns the i-th array element, or nil when the value is not an
// array or the index is out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Field returns the value stored under key in an object.
func (v *Value) Field(key string) (*Value, bool) {
	if v.Kind() != KindObject {
		return nil, false
	}
	return v.obj.Get(key)
}

// SetField sets key to val in an object, preserving the key's original
// position when it already exists. Panics if the value is not an object.
func (v *Value) SetField(key string, val *Value) {
	if v.Kind() != KindObject {
		panic("jsonval: SetField on non-object value")
	}
	v.obj.Set(key, val)
}

// Append appends an element to an array. Panics if the value is not an array.
func (v *Value) Append(val *Value) {
	if v.Kind() != KindArray {
		panic("jsonval: Append on non-array value")
	}
	v.arr = append(v.arr, val)
}

// SetIndex sets the i-th array element, growing the array with nulls so that
// index i exists. Panics if the value is not an array or i is negative.
func (v *Value) SetIndex(i int, val *Value) {
	if v.Kind() != KindArray {
		panic("jsonval: SetIndex on non-array value")
	}
	if i < 0 {
		panic("jsonval: negative array index")
	}
	for len(v.arr) <= i {
		v.arr = append(v.arr, Null())
	}
	v.arr[i] = val
}

// Range calls fn for every object entry in insertion order, stopping early
// when fn returns false. It is a no-op for non-objects.
func (v *Value) Range(fn func(key string, val *Value) bool) {
	if v.Kind() != KindObject {
		return
	}
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Keys returns the object keys in insertion order.
func (v *Value) Keys() []string {
	if v.Kind() != KindObject {
		return nil
	}
	keys := make([]string, 0, v.obj.Len())
	for pair := v.obj.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Elements returns the array elements. The returned slice is the value's own
// backing storage; callers must not modify it.
func (v *Value) Elements() []*Value {
	if v.Kind() != KindArray {
		return nil
	}
	return v.arr
}

// Clone returns a deep copy of the value.
func (v *Value) Clone() *Value {
	switch v.Kind() {
	case KindArray:
		elems := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			elems[i] = e.Clone()
		}
		return Array(elems...)
	case KindObject:
		out := Object()
		v.Range(func(key string, val *Value) bool {
			out.SetField(key, val.Clone())
			return true
		})
		return out
	case KindNull:
		return Null()
	case KindBool:
		return Bool(v.b)
	case KindNumber:
		return Number(v.num)
	default:
		return String(v.str)
	}
}

// Equal reports deep semantic equality. Numbers compare by literal first and
// numerically as a fallback, so "1.0" equals "1".
func (v *Value) Equal(o *Value) bool {
	if v.IsNull() || o.IsNull() {
		return v.IsNull() && o.IsNull()
	}
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindString:
		return v.str == o.str
	case KindNumber:
		if v.num == o.num {
			return true
		}
		vf, verr := v.num.Float64()
		of, oerr := o.num.Float64()
		return verr == nil && oerr == nil && vf == of
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if v.obj.Len() != o.obj.Len() {
			return false
		}
		vp, op := v.obj.Oldest(), o.obj.Oldest()
		for vp != nil && op != nil {
			if vp.Key != op.Key || !vp.Value.Equal(op.Value) {
				return false
			}
			vp, op = vp.Next(), op.Next()
		}
		return vp == nil && op == nil
	default:
		return false
	}
}

// FloatArray converts an array of numbers to a float64 slice. Null elements
// are not accepted.
func (v *Value) FloatArray() ([]float64, bool) {
	if v.Kind() != KindArray {
		return nil, false
	}
	out := make([]float64, len(v.arr))
	for i, e := range v.arr {
		f, ok := e.AsFloat()
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// IntArray converts an array of numbers to an int slice.
func (v *Value) IntArray() ([]int, bool) {
	if v.Kind() != KindArray {
		return nil, false
	}
	out := make([]int, len(v.arr))
	for i, e := range v.arr {
		n, ok := e.AsInt()
		if !ok {
			return nil, false
		}
		out[i] = int(n)
	}
	return out, true
}

// FloatsToArray builds a JSON array of numbers from a float slice.
func FloatsToArray(fs []float64) *Value {
	elems := make([]*Value, len(fs))
	for i, f := range fs {
		elems[i] = Float(f)
	}
	return Array(elems...)
}

// IntsToArray builds a JSON array of numbers from an int slice.
func IntsToArray(ns []int) *Value {
	elems := make([]*Value, len(ns))
	for i, n := range ns {
		elems[i] = Int(int64(n))
	}
	return Array(elems...)
}
