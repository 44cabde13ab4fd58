package header

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one component of an extension path: either an object key or an
// array index. Building paths from explicit steps instead of concatenated
// pointer strings keeps keys containing dots or brackets unambiguous in the
// tree (they simply cannot be produced by ParsePath, so they never collide).
type Step struct {
	key     string
	index   int
	isIndex bool
}

// Key returns an object-key step.
func Key(k string) Step {
	return Step{key: k}
}

// Index returns an array-index step.
func Index(i int) Step {
	return Step{index: i, isIndex: true}
}

// IsIndex reports whether the step addresses an array element.
func (s Step) IsIndex() bool { return s.isIndex }

// Name returns the object key for key steps.
func (s Step) Name() string { return s.key }

// Pos returns the array index for index steps.
func (s Step) Pos() int { return s.index }

func (s Step) String() string {
	if s.isIndex {
		return "[" + strconv.Itoa(s.index) + "]"
	}
	return s.key
}

// Path addresses a location inside an extension tree. An empty path
// addresses the tree root.
type Path []Step

// String formats the path in JNRRD header notation: identifier steps joined
// with dots, index steps appended in brackets.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if !s.isIndex && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// AppendKey returns a new path with an object-key step appended.
func (p Path) AppendKey(k string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Key(k))
}

// AppendIndex returns a new path with an array-index step appended.
func (p Path) AppendIndex(i int) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Index(i))
}

// ParsePath parses JNRRD extension path notation: bare identifiers separated
// by dots as object keys, bracketed non-negative integers as array indices
// concatenated directly ("a.b[2].c"). The empty string parses to the empty
// path (the tree root).
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}

	var path Path
	rest := s
	expectKey := true

	for len(rest) > 0 {
		switch {
		case rest[0] == '[':
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated index in path %q", ErrParse, s)
			}
			idx, err := strconv.Atoi(rest[1:end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("%w: invalid array index %q in path %q", ErrParse, rest[1:end], s)
			}
			path = append(path, Index(idx))
			rest = rest[end+1:]
			// After a bracket, a dot introduces the next key; another
			// bracket or end of path follow directly.
			if len(rest) > 0 && rest[0] == '.' {
				rest = rest[1:]
				expectKey = true
			} else {
				expectKey = false
			}

		case rest[0] == '.':
			return nil, fmt.Errorf("%w: empty component in path %q", ErrParse, s)

		default:
			if !expectKey {
				return nil, fmt.Errorf("%w: missing separator in path %q", ErrParse, s)
			}
			end := strings.IndexAny(rest, ".[")
			if end < 0 {
				path = append(path, Key(rest))
				rest = ""
				expectKey = false
				break
			}
			if end == 0 {
				return nil, fmt.Errorf("%w: empty component in path %q", ErrParse, s)
			}
			path = append(path, Key(rest[:end]))
			if rest[end] == '.' {
				rest = rest[end+1:]
				expectKey = true
			} else {
				rest = rest[end:]
				expectKey = false
			}
		}
	}

	if expectKey && len(path) > 0 {
		// Trailing dot.
		return nil, fmt.Errorf("%w: trailing separator in path %q", ErrParse, s)
	}
	return path, nil
}
