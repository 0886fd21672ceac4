package reflectdiff

import (
	"math"
	"reflect"
)

// identity is the reference identity of a pointer, map or slice.
// Slices also carry their length: two slices sharing a backing array but
// differing in length are different values.
type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func identityOf(v reflect.Value) identity {
	id := identity{typ: v.Type(), ptr: v.Pointer()}
	if v.Kind() == reflect.Slice {
		id.len = v.Len()
	}
	return id
}

type visit struct {
	left, right identity
}

// guardState is the outcome of entering a reference pair.
type guardState int

const (
	// guardEntered means the pair must be compared.
	guardEntered guardState = iota
	// guardProven means the pair was already found equal in this comparison.
	guardProven
	// guardCycle means the pair is still on the recursion stack.
	guardCycle
)

// noCut is the low mark of a subtree in which no branch was cut.
const noCut = math.MaxInt

// frame is the guard's record of one entered pair.
type frame struct {
	visit visit
	pos   int
	low   int // low mark of the enclosing subtree on entry
}

// guard is the cycle guard of one top-level comparison.
//
// It holds the (left, right) reference pairs currently being compared on the
// recursion stack. Meeting a pair that is already on the stack means both
// graphs loop back to a point still under comparison; that branch is cut and
// treated as equal, and any real divergence is reported by the branch that
// is still open.
//
// Pairs found equal are remembered for the rest of the comparison, so shared
// sub-graphs are compared once. A pair is only remembered when its equality
// does not rest on a cut to a pair that is still open above it: that open
// pair may yet turn out different.
type guard struct {
	active map[visit]int // stack position of each open pair
	done   map[visit]struct{}
	depth  int
	low    int // lowest stack position cut to within the current subtree
}

func newGuard() *guard {
	return &guard{
		active: make(map[visit]int),
		done:   make(map[visit]struct{}),
		low:    noCut,
	}
}

// enter registers the pair l, r. Only when the result is guardEntered must
// the caller compare the pair and then call leave with the returned frame.
func (g *guard) enter(l, r reflect.Value) (frame, guardState) {
	v := visit{left: identityOf(l), right: identityOf(r)}
	if _, ok := g.done[v]; ok {
		return frame{}, guardProven
	}
	if pos, ok := g.active[v]; ok {
		g.low = min(g.low, pos)
		return frame{}, guardCycle
	}
	g.depth++
	f := frame{visit: v, pos: g.depth, low: g.low}
	g.active[v] = g.depth
	g.low = noCut
	return f, guardEntered
}

// leave pops the pair of f once its comparison has finished. equal reports
// whether the comparison found no difference.
func (g *guard) leave(f frame, equal bool) {
	delete(g.active, f.visit)
	g.depth--
	if g.low >= f.pos {
		// Every cut inside the subtree led back to f itself, which is now
		// resolved.
		if equal {
			g.done[f.visit] = struct{}{}
		}
		g.low = f.low
		return
	}
	g.low = min(f.low, g.low)
}
