// Package reflectdiff compares arbitrary Go values structurally and reports
// where they diverge.
//
// A Comparator walks both operands with reflection: pointers and interfaces
// are followed, structs are compared field by field (including promoted
// fields of embedded structs), slices and arrays element by element, and maps
// key by key. Scalars compare by value, with integers and floats compared
// numerically across types and NaN equal to NaN.
//
// Three leniency modes relax the default strict semantics:
//
//   - IgnoreDefaults: a zero value on the left (nil, false, 0, "") matches
//     anything on the right.
//   - LenientDates: two non-nil time.Time values always match; only presence
//     is compared.
//   - LenientOrder: sequences match when every left element can be paired
//     with a distinct right element, regardless of position.
//
// The result is a Difference, or nil when the operands are equal under the
// active modes. A Difference records the path from the comparison root to
// the divergence, the two operand values responsible, and a message naming
// the kind of mismatch. Composite differences (records, sequences, maps)
// nest their child differences:
//
//	cmp := reflectdiff.MustNew(reflectdiff.Options{})
//	d := cmp.Compare(expected, actual)
//	if d != nil {
//	    leaf := reflectdiff.Innermost(d)
//	    fmt.Printf("%s: %s\n", reflectdiff.RenderPath(leaf), leaf.Message())
//	}
//
// A Comparator is immutable after construction and safe for concurrent use.
// Each Compare call owns its own path stack and cycle guard.
package reflectdiff
