package reflectdiff

import (
	"math"
	"reflect"
)

func isSigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isSigned(v):
		return float64(v.Int())
	case isUnsigned(v):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

// numbersEqual compares two numeric values of any integer or float kinds.
// Integers are compared exactly; any comparison involving a float goes
// through float64.
func numbersEqual(l, r reflect.Value) bool {
	switch {
	case isSigned(l) && isSigned(r):
		return l.Int() == r.Int()
	case isUnsigned(l) && isUnsigned(r):
		return l.Uint() == r.Uint()
	case isSigned(l) && isUnsigned(r):
		return l.Int() >= 0 && uint64(l.Int()) == r.Uint()
	case isUnsigned(l) && isSigned(r):
		return r.Int() >= 0 && l.Uint() == uint64(r.Int())
	}
	return floatsEqual(toFloat(l), toFloat(r))
}

// floatsEqual is float64 equality with NaN equal to NaN. Infinities of the
// same sign are equal under plain ==.
func floatsEqual(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}

func complexEqual(a, b complex128) bool {
	return floatsEqual(real(a), real(b)) && floatsEqual(imag(a), imag(b))
}

// scalarTypesCompatible reports whether two scalars of the same class may be
// compared by value. Distinct types are only compatible when neither is a
// defined type, so an enum never equals a plain number or another enum.
func scalarTypesCompatible(l, r reflect.Type) bool {
	if l == r {
		return true
	}
	return !isNamed(l) && !isNamed(r)
}

// scalarsEqual compares two values of the same scalar class.
func scalarsEqual(c class, l, r reflect.Value) bool {
	switch c {
	case classBool:
		return l.Bool() == r.Bool()
	case classNumber:
		return numbersEqual(l, r)
	case classComplex:
		return complexEqual(l.Complex(), r.Complex())
	case classString:
		return l.String() == r.String()
	case classOpaque:
		return l.Pointer() == r.Pointer()
	default:
		return false
	}
}
