package reflectdiff

import (
	"reflect"
	"sync"
)

// class is the comparison category of a non-null, dereferenced value.
type class uint8

const (
	classBool class = iota
	classNumber
	classComplex
	classString
	classDate
	classEqualer
	classSequence
	classMap
	classRecord
	classOpaque
)

func (c class) String() string {
	switch c {
	case classBool:
		return "bool"
	case classNumber:
		return "number"
	case classComplex:
		return "complex"
	case classString:
		return "string"
	case classDate:
		return "date"
	case classEqualer:
		return "value type"
	case classSequence:
		return "sequence"
	case classMap:
		return "map"
	case classRecord:
		return "record"
	default:
		return "opaque"
	}
}

// classify assigns v to exactly one class. v must be valid and must not be
// a pointer or an interface.
func classify(v reflect.Value) class {
	t := v.Type()
	if t == timeType {
		return classDate
	}
	if equalerFor(t) != nil {
		return classEqualer
	}
	switch v.Kind() {
	case reflect.Bool:
		return classBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return classNumber
	case reflect.Complex64, reflect.Complex128:
		return classComplex
	case reflect.String:
		return classString
	case reflect.Slice, reflect.Array:
		return classSequence
	case reflect.Map:
		return classMap
	case reflect.Struct:
		return classRecord
	default:
		// Func, Chan, UnsafePointer.
		return classOpaque
	}
}

// isNamed reports whether t is a defined type such as an enum, as opposed
// to a predeclared type like int or string.
func isNamed(t reflect.Type) bool {
	return t.PkgPath() != ""
}

// equaler calls a type's own Equal method. Types that define
// Equal(T) bool, such as net.IP, are compared as values through it.
type equaler struct {
	fn       reflect.Value
	addrRecv bool
	addrArg  bool
}

func (e *equaler) equal(l, r reflect.Value) bool {
	recv, arg := l, r
	if e.addrRecv {
		recv = l.Addr()
	}
	if e.addrArg {
		arg = r.Addr()
	}
	return e.fn.Call([]reflect.Value{recv, arg})[0].Bool()
}

var equalers sync.Map // reflect.Type -> *equaler, nil when the type has none

func equalerFor(t reflect.Type) *equaler {
	if cached, ok := equalers.Load(t); ok {
		return cached.(*equaler)
	}
	e := lookupEqualer(t)
	equalers.Store(t, e)
	return e
}

func lookupEqualer(t reflect.Type) *equaler {
	if t.Kind() == reflect.Interface {
		return nil
	}
	if m, ok := t.MethodByName("Equal"); ok && isEqualSignature(m.Type, t, t) {
		return &equaler{fn: m.Func}
	}
	pt := reflect.PointerTo(t)
	if m, ok := pt.MethodByName("Equal"); ok {
		switch {
		case isEqualSignature(m.Type, pt, pt):
			return &equaler{fn: m.Func, addrRecv: true, addrArg: true}
		case isEqualSignature(m.Type, pt, t):
			return &equaler{fn: m.Func, addrRecv: true}
		}
	}
	return nil
}

func isEqualSignature(mt, recv, arg reflect.Type) bool {
	return mt.NumIn() == 2 && mt.In(0) == recv && mt.In(1) == arg &&
		mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool
}
