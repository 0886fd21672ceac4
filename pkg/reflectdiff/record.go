package reflectdiff

import (
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag read by the record comparator. `diff:"-"` skips
// a field; `diff:"name"` reports it under another name.
const TagName = "diff"

// field is one comparable field of a struct type.
type field struct {
	name  string
	index []int
}

var fieldPlans sync.Map // reflect.Type -> []field

// recordFields returns the comparable fields of struct type t: its own
// fields in declaration order, followed by the fields promoted from embedded
// structs, recursively. Blank fields and fields tagged `diff:"-"` are left
// out.
func recordFields(t reflect.Type) []field {
	if cached, ok := fieldPlans.Load(t); ok {
		return cached.([]field)
	}
	plan := buildFields(t, nil)
	fieldPlans.Store(t, plan)
	return plan
}

func buildFields(t reflect.Type, prefix []int) []field {
	var own, promoted []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		index := append(append([]int(nil), prefix...), i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct && tag == "" {
			promoted = append(promoted, buildFields(sf.Type, index)...)
			continue
		}
		name := sf.Name
		if n, _, _ := strings.Cut(tag, ","); n != "" {
			name = n
		}
		own = append(own, field{name: name, index: index})
	}
	return append(own, promoted...)
}

// compareRecords compares two structs of the same type field by field.
func (s *state) compareRecords(l, r reflect.Value) Difference {
	var fields []FieldDifference
	for _, f := range recordFields(l.Type()) {
		s.path.push(FieldSegment(f.name))
		d := s.compare(fieldOf(l, f.index), fieldOf(r, f.index))
		s.path.pop()
		if d == nil {
			continue
		}
		fields = append(fields, FieldDifference{Name: f.name, Diff: d})
		if !s.all {
			break
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &RecordDifference{
		located: s.located(MsgDifferentFields, l.Type().String(), l, r),
		Fields:  fields,
	}
}

// fieldOf walks an index path through embedded struct values, settling each
// step so unexported fields stay readable.
func fieldOf(v reflect.Value, index []int) reflect.Value {
	for _, i := range index {
		v = settle(v.Field(i))
	}
	return v
}
