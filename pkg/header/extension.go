package header

import (
	"strconv"

	"github.com/marmos91/jnrrd/pkg/jsonval"
)

// SetPath merges one flattened extension field into the tree for namespace
// ns, creating intermediate objects and arrays as the path requires. Arrays
// are null-padded so that the addressed index exists even when higher indices
// arrive before lower ones. Repeated calls with the same path overwrite.
//
// An empty path replaces the namespace root wholesale.
func (h *Header) SetPath(ns string, path Path, value *jsonval.Value) {
	if len(path) == 0 {
		h.ext.Set(ns, value)
		return
	}

	root, ok := h.ext.Get(ns)
	if !ok || !containerMatches(root, path[0]) {
		root = containerFor(path[0])
		h.ext.Set(ns, root)
	}

	cur := root
	for i, step := range path {
		if i == len(path)-1 {
			assign(cur, step, value)
			return
		}
		cur = descend(cur, step, path[i+1])
	}
}

// containerFor returns the container kind a step addresses into: an object
// for key steps, an array for index steps.
func containerFor(s Step) *jsonval.Value {
	if s.IsIndex() {
		return jsonval.Array()
	}
	return jsonval.Object()
}

func containerMatches(v *jsonval.Value, s Step) bool {
	if s.IsIndex() {
		return v.Kind() == jsonval.KindArray
	}
	return v.Kind() == jsonval.KindObject
}

// assign writes value at the terminal step of a path.
func assign(parent *jsonval.Value, s Step, value *jsonval.Value) {
	if s.IsIndex() {
		parent.SetIndex(s.Pos(), value)
	} else {
		parent.SetField(s.Name(), value)
	}
}

// descend returns the child container addressed by step, creating or
// replacing it when it is absent or of the wrong kind for the step that
// follows.
func descend(parent *jsonval.Value, step, next Step) *jsonval.Value {
	var child *jsonval.Value
	if step.IsIndex() {
		child = parent.Index(step.Pos())
	} else {
		child, _ = parent.Field(step.Name())
	}

	if child == nil || !containerMatches(child, next) {
		child = containerFor(next)
		assign(parent, step, child)
	}
	return child
}

// FlatField is one emitted header line for an extension tree: the path part
// of the key (without the namespace prefix) and the leaf value.
type FlatField struct {
	Path  string
	Value *jsonval.Value
}

// Flatten converts a namespace tree into the flattened fields the writer
// emits, in depth-first order.
//
// Arrays whose elements are all scalars are emitted whole under a single key.
// An array containing any nested object or array is instead expanded
// element-by-element as parent[i], its scalar elements included.
func Flatten(tree *jsonval.Value) []FlatField {
	var out []FlatField
	flattenInto(tree, "", &out)
	return out
}

func flattenInto(v *jsonval.Value, path string, out *[]FlatField) {
	switch v.Kind() {
	case jsonval.KindObject:
		v.Range(func(key string, child *jsonval.Value) bool {
			childPath := key
			if path != "" {
				childPath = path + "." + key
			}
			flattenInto(child, childPath, out)
			return true
		})

	case jsonval.KindArray:
		if allScalars(v) {
			*out = append(*out, FlatField{Path: path, Value: v})
			return
		}
		for i, elem := range v.Elements() {
			flattenInto(elem, path+"["+strconv.Itoa(i)+"]", out)
		}

	default:
		*out = append(*out, FlatField{Path: path, Value: v})
	}
}

func allScalars(arr *jsonval.Value) bool {
	for _, elem := range arr.Elements() {
		if !elem.IsScalar() {
			return false
		}
	}
	return true
}
