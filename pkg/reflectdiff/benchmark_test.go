package reflectdiff

import (
	"strconv"
	"testing"
)

// Run: go test -bench=BenchmarkCompare -benchmem ./pkg/reflectdiff

func BenchmarkCompare_Scalar(b *testing.B) {
	c := MustNew(Options{})

	b.ResetTimer()
	for b.Loop() {
		c.Compare(3.14159265358979, 3.14159265358979)
	}
}

func BenchmarkCompare_Record(b *testing.B) {
	c := MustNew(Options{})
	left := item{ID: 1, Tags: []string{"a", "b", "c"}}
	right := item{ID: 1, Tags: []string{"a", "b", "c"}}

	b.ResetTimer()
	for b.Loop() {
		c.Compare(left, right)
	}
}

func BenchmarkCompare_LargeSliceStrict(b *testing.B) {
	c := MustNew(Options{})
	left := make([]int, 1000)
	right := make([]int, 1000)
	for i := range left {
		left[i], right[i] = i, i
	}

	b.ResetTimer()
	for b.Loop() {
		c.Compare(left, right)
	}
}

func BenchmarkCompare_LargeSliceLenientOrder(b *testing.B) {
	c := MustNew(Options{Modes: LenientOrder})
	left := make([]int, 200)
	right := make([]int, 200)
	for i := range left {
		left[i], right[len(right)-1-i] = i, i
	}

	b.ResetTimer()
	for b.Loop() {
		c.Compare(left, right)
	}
}

func BenchmarkCompare_SharedDAG(b *testing.B) {
	c := MustNew(Options{})
	left, right := sharedDAG(40, 0), sharedDAG(40, 0)

	b.ResetTimer()
	for b.Loop() {
		c.Compare(left, right)
	}
}

func BenchmarkCompare_Map(b *testing.B) {
	c := MustNew(Options{})
	left := make(map[string]int, 100)
	right := make(map[string]int, 100)
	for i := 0; i < 100; i++ {
		k := "key" + strconv.Itoa(i)
		left[k], right[k] = i, i
	}

	b.ResetTimer()
	for b.Loop() {
		c.Compare(left, right)
	}
}

func BenchmarkCompareAll_Differences(b *testing.B) {
	c := MustNew(Options{})
	left := make([]item, 50)
	right := make([]item, 50)
	for i := range left {
		left[i] = item{ID: i, Tags: []string{"x"}}
		right[i] = item{ID: i + 1, Tags: []string{"y"}}
	}

	b.ResetTimer()
	for b.Loop() {
		c.CompareAll(left, right)
	}
}
