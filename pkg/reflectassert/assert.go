// Package reflectassert reports reflectdiff differences as test failures.
//
// Expected values are passed as the left operand, so IgnoreDefaults forgives
// zero values in the expectation:
//
//	reflectassert.LenientEqual(t, Order{ID: 7}, got)
package reflectassert

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectdiff"
)

// TestingT is the subset of testing.TB used to report failures.
type TestingT interface {
	Helper()
	Errorf(format string, args ...any)
}

// Options configures an assertion.
type Options struct {
	// Comparator performs the comparison. Nil selects a strict comparator
	// that reports every difference.
	Comparator *reflectdiff.Comparator

	// Brief omits the structural diff printed under composite operands.
	Brief bool
}

// Equal asserts that expected and actual have no difference under modes.
func Equal(t TestingT, expected, actual any, modes ...reflectdiff.Mode) bool {
	t.Helper()
	var m reflectdiff.Mode
	for _, f := range modes {
		m |= f
	}
	c := reflectdiff.MustNew(reflectdiff.Options{Modes: m, Report: reflectdiff.ReportAll})
	return Options{Comparator: c}.Equal(t, expected, actual)
}

// LenientEqual asserts equality ignoring zero values in expected and element
// order in slices and arrays.
func LenientEqual(t TestingT, expected, actual any) bool {
	t.Helper()
	return Equal(t, expected, actual, reflectdiff.IgnoreDefaults, reflectdiff.LenientOrder)
}

// Equal asserts that expected and actual have no difference under o.
func (o Options) Equal(t TestingT, expected, actual any) bool {
	t.Helper()
	c := o.Comparator
	if c == nil {
		c = reflectdiff.MustNew(reflectdiff.Options{Report: reflectdiff.ReportAll})
	}
	d := c.Compare(expected, actual)
	if d == nil {
		return true
	}
	t.Errorf("values differ (modes: %s)\n%s", c.Modes(), o.Format(d))
	return false
}

// Format renders d as a failure message with a structural diff under
// composite operands.
func Format(d reflectdiff.Difference) string {
	return Options{}.Format(d)
}

// Format renders d as a failure message: one block per leaf difference with
// its path, message, and the two located values.
func (o Options) Format(d reflectdiff.Difference) string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	for i, leaf := range reflectdiff.Leaves(d) {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "at %s: %s", reflectdiff.RenderPath(leaf), leaf.Message())
		if detail := leaf.Detail(); detail != "" {
			fmt.Fprintf(&b, " (%s)", detail)
		}
		fmt.Fprintf(&b, "\n  left:  %s\n  right: %s\n", render(leaf.Left()), render(leaf.Right()))
		if !o.Brief && (isComposite(leaf.Left()) || isComposite(leaf.Right())) {
			if diff := cmpDiff(leaf.Left(), leaf.Right()); diff != "" {
				b.WriteString("  diff (-left +right):\n")
				for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
					b.WriteString("    ")
					b.WriteString(line)
					b.WriteByte('\n')
				}
			}
		}
	}
	return b.String()
}

func render(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return fmt.Sprintf("%v", x)
	}
}

var timeType = reflect.TypeFor[time.Time]()

func isComposite(v any) bool {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t == timeType {
		return false
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return true
	default:
		return false
	}
}

// cmpDiff runs cmp.Diff with unexported fields visible. Values cmp refuses
// to handle produce no diff.
func cmpDiff(left, right any) (diff string) {
	defer func() {
		if recover() != nil {
			diff = ""
		}
	}()
	return cmp.Diff(left, right, cmp.Exporter(func(reflect.Type) bool { return true }))
}
