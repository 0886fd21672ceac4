package reflectdiff

import (
	"fmt"
	"reflect"
)

// compareSequences compares two slices or arrays, possibly of different
// element types.
func (s *state) compareSequences(l, r reflect.Value) (diff Difference) {
	if l.Len() != r.Len() {
		return &SequenceDifference{
			located:   s.located(MsgDifferentSizes, fmt.Sprintf("left %d, right %d", l.Len(), r.Len()), l, r),
			LeftSize:  l.Len(),
			RightSize: r.Len(),
		}
	}

	if l.Kind() == reflect.Slice && r.Kind() == reflect.Slice && l.Len() > 0 {
		f, st := s.guard.enter(l, r)
		if st != guardEntered {
			s.skipped(st, l, r)
			return nil
		}
		defer func() { s.guard.leave(f, diff == nil) }()
	}

	var elements []IndexedDifference
	if s.has(LenientOrder) {
		elements = s.matchUnordered(l, r)
	} else {
		elements = s.matchOrdered(l, r)
	}
	if len(elements) == 0 {
		return nil
	}
	return &SequenceDifference{
		located:   s.located(MsgDifferentElements, "", l, r),
		LeftSize:  l.Len(),
		RightSize: r.Len(),
		Elements:  elements,
	}
}

func (s *state) matchOrdered(l, r reflect.Value) []IndexedDifference {
	var out []IndexedDifference
	for i := 0; i < l.Len(); i++ {
		s.path.push(IndexSegment(i))
		d := s.compare(settle(l.Index(i)), settle(r.Index(i)))
		s.path.pop()
		if d == nil {
			continue
		}
		out = append(out, IndexedDifference{Index: i, Diff: d})
		if !s.all {
			break
		}
	}
	return out
}

// matchUnordered pairs each left element, in order, with the first still
// unclaimed right element it equals. Claimed right elements are removed from
// the working set, so each can match at most once.
//
// The pairing is greedy: with non-transitive matching (IgnoreDefaults) a
// left element can claim a right element that a later left element needed,
// even though some other complete pairing exists.
func (s *state) matchUnordered(l, r reflect.Value) []IndexedDifference {
	var out []IndexedDifference
	remaining := make([]int, r.Len())
	for j := range remaining {
		remaining[j] = j
	}

	for i := 0; i < l.Len(); i++ {
		le := settle(l.Index(i))
		found := -1
		for k, j := range remaining {
			if s.trial(le, settle(r.Index(j))) {
				found = k
				break
			}
		}
		if found >= 0 {
			remaining = append(remaining[:found], remaining[found+1:]...)
			continue
		}

		s.path.push(IndexSegment(i))
		d := s.valueDiff(MsgNotFoundInRight, "", le, r)
		s.path.pop()
		out = append(out, IndexedDifference{Index: i, Diff: d})
		if !s.all {
			break
		}
	}
	return out
}
