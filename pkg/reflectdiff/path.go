package reflectdiff

import (
	"strconv"
	"strings"
)

// TopLevel is the rendering of an empty path.
const TopLevel = "<top-level>"

// SegmentKind distinguishes the three kinds of path segment.
type SegmentKind uint8

const (
	SegmentField SegmentKind = iota
	SegmentIndex
	SegmentKey
)

// Segment is one step from a composite value into one of its parts.
type Segment struct {
	Kind  SegmentKind
	Name  string // field name or rendered map key
	Index int    // sequence index
}

// FieldSegment returns a segment naming a struct field.
func FieldSegment(name string) Segment {
	return Segment{Kind: SegmentField, Name: name}
}

// IndexSegment returns a segment naming a sequence index.
func IndexSegment(i int) Segment {
	return Segment{Kind: SegmentIndex, Index: i}
}

// KeySegment returns a segment naming a map key.
func KeySegment(key string) Segment {
	return Segment{Kind: SegmentKey, Name: key}
}

func (s Segment) String() string {
	switch s.Kind {
	case SegmentIndex:
		return "[" + strconv.Itoa(s.Index) + "]"
	case SegmentKey:
		if !isSimpleKey(s.Name) {
			return "[" + strconv.Quote(s.Name) + "]"
		}
		return s.Name
	default:
		return s.Name
	}
}

// Path is the route from the comparison root to a value.
type Path []Segment

// String renders fields and keys joined with "." and indices as "[i]",
// e.g. "orders[2].items.sku". An empty path renders as TopLevel.
func (p Path) String() string {
	if len(p) == 0 {
		return TopLevel
	}
	var b strings.Builder
	for i, s := range p {
		dotted := s.Kind == SegmentField || (s.Kind == SegmentKey && isSimpleKey(s.Name))
		if dotted && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// RenderPath renders the location of d. A nil difference renders as TopLevel.
func RenderPath(d Difference) string {
	if d == nil {
		return TopLevel
	}
	return d.Path().String()
}

// isSimpleKey reports whether a map key can be rendered after a dot without
// quoting.
func isSimpleKey(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}

// tracker is the path stack of one top-level comparison.
type tracker struct {
	segments []Segment
}

func (t *tracker) push(s Segment) {
	t.segments = append(t.segments, s)
}

func (t *tracker) pop() {
	t.segments = t.segments[:len(t.segments)-1]
}

// snapshot copies the current stack so later pushes cannot alias it.
func (t *tracker) snapshot() Path {
	if len(t.segments) == 0 {
		return nil
	}
	p := make(Path, len(t.segments))
	copy(p, t.segments)
	return p
}
