package reflectdiff

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
)

// compareMaps compares two maps key by key. Keys are matched with strict Go
// equality whatever the active modes; values are compared recursively.
func (s *state) compareMaps(l, r reflect.Value) (diff Difference) {
	if l.Len() != r.Len() {
		return &MapDifference{
			located:   s.located(MsgDifferentMapSizes, fmt.Sprintf("left %d, right %d", l.Len(), r.Len()), l, r),
			LeftSize:  l.Len(),
			RightSize: r.Len(),
		}
	}

	f, st := s.guard.enter(l, r)
	if st != guardEntered {
		s.skipped(st, l, r)
		return nil
	}
	defer func() { s.guard.leave(f, diff == nil) }()

	var entries []KeyedDifference
	lookup := s.keyLookup(l, r)
	for _, k := range sortedKeys(l) {
		key := settle(k)
		s.path.push(KeySegment(fmt.Sprint(interfaceOf(key))))
		var d Difference
		lv := settle(l.MapIndex(k))
		if rv, found := lookup(k); found {
			d = s.compare(lv, settle(rv))
		} else {
			d = s.valueDiff(MsgKeyNotFound, fmt.Sprintf("key %v", interfaceOf(key)), lv, reflect.Value{})
		}
		s.path.pop()
		if d == nil {
			continue
		}
		entries = append(entries, KeyedDifference{Key: interfaceOf(key), Diff: d})
		if !s.all {
			break
		}
	}
	if len(entries) == 0 {
		return nil
	}
	return &MapDifference{
		located:   s.located(MsgDifferentEntries, "", l, r),
		LeftSize:  l.Len(),
		RightSize: r.Len(),
		Entries:   entries,
	}
}

// keyLookup returns a function finding the right-hand value for a left key.
// Maps with identical key types use direct indexing; otherwise right keys are
// scanned and each one can be claimed only once.
func (s *state) keyLookup(l, r reflect.Value) func(k reflect.Value) (reflect.Value, bool) {
	if l.Type().Key() == r.Type().Key() {
		return func(k reflect.Value) (reflect.Value, bool) {
			v := r.MapIndex(k)
			return v, v.IsValid()
		}
	}
	rkeys := sortedKeys(r)
	claimed := make([]bool, len(rkeys))
	return func(k reflect.Value) (reflect.Value, bool) {
		want := keyValue(k)
		for i, rk := range rkeys {
			if claimed[i] || !strictKeyEqual(want, keyValue(rk)) {
				continue
			}
			claimed[i] = true
			return r.MapIndex(rk), true
		}
		return reflect.Value{}, false
	}
}

func keyValue(k reflect.Value) any {
	return interfaceOf(unwrapInterface(settle(k)))
}

// strictKeyEqual is Go == on the dynamic key values: same dynamic type and
// same value. Map keys are always comparable, so == cannot panic.
func strictKeyEqual(a, b any) bool {
	return a == b
}

// sortedKeys returns the keys of m in a deterministic order: grouped by
// dynamic type name, then ordered by value for numbers, strings and bools,
// and by their fmt rendering otherwise.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortStableFunc(keys, func(a, b reflect.Value) int {
		return compareKeys(unwrapInterface(settle(a)), unwrapInterface(settle(b)))
	})
	return keys
}

func compareKeys(a, b reflect.Value) int {
	switch {
	case !a.IsValid() && !b.IsValid():
		return 0
	case !a.IsValid():
		return -1
	case !b.IsValid():
		return 1
	}
	if a.Type() != b.Type() {
		return cmp.Compare(a.Type().String(), b.Type().String())
	}
	switch {
	case isSigned(a):
		return cmp.Compare(a.Int(), b.Int())
	case isUnsigned(a):
		return cmp.Compare(a.Uint(), b.Uint())
	}
	switch a.Kind() {
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	default:
		return cmp.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
