package reflectdiff

// Messages classifying the kind of a divergence.
const (
	MsgLeftNull          = "left value null"
	MsgRightNull         = "right value null"
	MsgDifferentTypes    = "different class types"
	MsgDifferentValues   = "different values"
	MsgDifferentSizes    = "different collection sizes"
	MsgDifferentMapSizes = "different map sizes"
	MsgNotFoundInRight   = "left value not found in right collection"
	MsgKeyNotFound       = "left key not found in right map"
	MsgDifferentDates    = "different dates"
	MsgLenientDates      = "lenient dates, but not both instantiated or both null"
	MsgDifferentElements = "different elements"
	MsgDifferentEntries  = "different entries"
	MsgDifferentFields   = "different field values"
	MsgDepthExceeded     = "maximum comparison depth exceeded"
)

// Kind identifies the concrete variant of a Difference.
type Kind int

const (
	KindValue Kind = iota
	KindSequence
	KindMap
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	case KindRecord:
		return "record"
	default:
		return "unknown"
	}
}

// Difference describes where and why two values diverge.
//
// A nil Difference means the values are equal under the active modes.
// The only implementations are *ValueDifference, *SequenceDifference,
// *MapDifference and *RecordDifference.
type Difference interface {
	Kind() Kind
	// Message classifies the divergence, e.g. MsgLeftNull.
	Message() string
	// Detail carries optional human-readable specifics such as the two
	// sizes of a size mismatch or the two types of a type mismatch.
	Detail() string
	Left() any
	Right() any
	// Path locates the divergence relative to the comparison root.
	Path() Path

	sealed()
}

type located struct {
	message string
	detail  string
	left    any
	right   any
	path    Path
}

func (l *located) Message() string { return l.message }
func (l *located) Detail() string  { return l.detail }
func (l *located) Left() any       { return l.left }
func (l *located) Right() any      { return l.right }
func (l *located) Path() Path      { return l.path }
func (l *located) sealed()         {}

// ValueDifference is a leaf mismatch: null against non-null, differing
// types, or unequal scalars.
type ValueDifference struct {
	located
}

func (*ValueDifference) Kind() Kind { return KindValue }

// IndexedDifference is the difference found at one sequence index.
type IndexedDifference struct {
	Index int
	Diff  Difference
}

// SequenceDifference groups element differences of two slices or arrays.
// A size mismatch is reported with LeftSize != RightSize and no elements.
type SequenceDifference struct {
	located
	LeftSize  int
	RightSize int
	Elements  []IndexedDifference
}

func (*SequenceDifference) Kind() Kind { return KindSequence }

// KeyedDifference is the difference found under one map key.
type KeyedDifference struct {
	Key  any
	Diff Difference
}

// MapDifference groups entry differences of two maps.
// A size mismatch is reported with LeftSize != RightSize and no entries.
type MapDifference struct {
	located
	LeftSize  int
	RightSize int
	Entries   []KeyedDifference
}

func (*MapDifference) Kind() Kind { return KindMap }

// FieldDifference is the difference found in one struct field.
type FieldDifference struct {
	Name string
	Diff Difference
}

// RecordDifference groups field differences of two structs of the same type.
type RecordDifference struct {
	located
	Fields []FieldDifference
}

func (*RecordDifference) Kind() Kind { return KindRecord }

// IsNone reports whether d represents no difference.
func IsNone(d Difference) bool {
	return d == nil
}

// Children returns the nested differences of a composite difference in
// traversal order. Leaves have no children.
func Children(d Difference) []Difference {
	switch v := d.(type) {
	case *SequenceDifference:
		out := make([]Difference, 0, len(v.Elements))
		for _, e := range v.Elements {
			out = append(out, e.Diff)
		}
		return out
	case *MapDifference:
		out := make([]Difference, 0, len(v.Entries))
		for _, e := range v.Entries {
			out = append(out, e.Diff)
		}
		return out
	case *RecordDifference:
		out := make([]Difference, 0, len(v.Fields))
		for _, f := range v.Fields {
			out = append(out, f.Diff)
		}
		return out
	default:
		return nil
	}
}

// Innermost follows the first child of d down to the deepest located
// difference. For a result produced in ReportFirst mode this is the exact
// point of divergence.
func Innermost(d Difference) Difference {
	for d != nil {
		children := Children(d)
		if len(children) == 0 {
			return d
		}
		d = children[0]
	}
	return nil
}

// Walk visits d and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func Walk(d Difference, fn func(Difference) bool) {
	if d == nil {
		return
	}
	if !fn(d) {
		return
	}
	for _, c := range Children(d) {
		Walk(c, fn)
	}
}

// Leaves returns every difference in the tree that has no children.
func Leaves(d Difference) []Difference {
	var out []Difference
	Walk(d, func(n Difference) bool {
		if len(Children(n)) == 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}
