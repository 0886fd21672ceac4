package reflectdiff

import (
	"reflect"
	"time"
	"unsafe"
)

var timeType = reflect.TypeFor[time.Time]()

// settle returns a readable, addressable equivalent of v.
//
// Values reached through unexported struct fields are read-only in reflect:
// Interface and method calls panic on them. Since every value the comparator
// walks is kept addressable, such fields can be re-exported through their
// address. Values that are readable but not addressable (interface contents,
// map entries) are copied.
func settle(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}
	if v.CanInterface() {
		if v.CanAddr() {
			return v
		}
		c := reflect.New(v.Type()).Elem()
		c.Set(v)
		return c
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
	}
	panic(&InternalError{Type: v.Type(), Op: "read", Err: errUnreadable})
}

// root prepares a top-level operand.
func root(x any) reflect.Value {
	return settle(reflect.ValueOf(x))
}

// unwrapInterface replaces interface values by their dynamic contents.
// A nil interface becomes the invalid Value.
func unwrapInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = settle(v.Elem())
	}
	return v
}

// interfaceOf returns the Go value held by v, or nil for the invalid Value.
func interfaceOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

// isNull reports whether v is absent: a nil interface, pointer, map, slice,
// function or channel.
func isNull(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	case reflect.UnsafePointer:
		return v.Pointer() == 0
	default:
		return false
	}
}

// sameReference reports whether both operands are the same reference, or
// both absent.
func sameReference(l, r reflect.Value) bool {
	ln, rn := isNull(l), isNull(r)
	if ln || rn {
		return ln && rn
	}
	if l.Type() != r.Type() {
		return false
	}
	switch l.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return identityOf(l) == identityOf(r)
	default:
		return false
	}
}

// dateOf reports whether v is a time.Time, following pointers.
func dateOf(v reflect.Value) (time.Time, bool) {
	for v.IsValid() && v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return time.Time{}, false
		}
		v = v.Elem()
	}
	if !v.IsValid() || v.Type() != timeType {
		return time.Time{}, false
	}
	return settle(v).Interface().(time.Time), true
}

// isDefault reports whether v is the zero value of its kind for the purpose
// of IgnoreDefaults. Structs and arrays are never defaults themselves; their
// zero fields and elements are forgiven one by one.
func isDefault(v reflect.Value) bool {
	if isNull(v) {
		return true
	}
	switch v.Kind() {
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Complex64, reflect.Complex128:
		return v.Complex() == 0
	case reflect.String:
		return v.Len() == 0
	default:
		return false
	}
}
