package reflectdiff

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Comparator compares values under a fixed set of leniency modes.
// It holds no per-comparison state and may be shared between goroutines.
type Comparator struct {
	modes    Mode
	maxDepth int
	report   Report
	log      *zap.Logger
}

// New returns a Comparator for opts, or an error wrapping ErrInvalidOptions.
func New(opts Options) (*Comparator, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}
	c := &Comparator{
		modes:    opts.Modes,
		maxDepth: opts.MaxDepth,
		report:   opts.Report,
		log:      opts.Logger,
	}
	if c.maxDepth == 0 {
		c.maxDepth = DefaultMaxDepth
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c, nil
}

// MustNew is like New but panics on invalid options.
func MustNew(opts Options) *Comparator {
	c, err := New(opts)
	if err != nil {
		panic(err)
	}
	return c
}

// NewWithModes returns a first-difference Comparator for the given mode
// tokens (see ParseMode). Unknown tokens are rejected here, never during
// comparison.
func NewWithModes(tokens ...string) (*Comparator, error) {
	m, err := ParseModes(tokens...)
	if err != nil {
		return nil, err
	}
	return New(Options{Modes: m})
}

// Modes returns the leniency flags of c.
func (c *Comparator) Modes() Mode {
	return c.modes
}

// Compare returns the difference between left and right, or nil when they
// are equal under c's modes.
//
// Compare panics with *InternalError if a value cannot be inspected.
func (c *Comparator) Compare(left, right any) Difference {
	return c.run(left, right, c.report)
}

// CompareAll is Compare with ReportAll, regardless of c's configured report.
func (c *Comparator) CompareAll(left, right any) Difference {
	return c.run(left, right, ReportAll)
}

// IsEqual reports whether left and right have no difference.
func (c *Comparator) IsEqual(left, right any) bool {
	return c.run(left, right, ReportFirst) == nil
}

func (c *Comparator) run(left, right any, report Report) Difference {
	s := &state{
		cmp:   c,
		all:   report == ReportAll,
		guard: newGuard(),
	}
	return s.compare(root(left), root(right))
}

// Compare compares left and right with a default Comparator configured with
// the union of modes.
func Compare(left, right any, modes ...Mode) Difference {
	return MustNew(Options{Modes: union(modes)}).Compare(left, right)
}

// IsEqual reports whether left and right are equal under the union of modes.
func IsEqual(left, right any, modes ...Mode) bool {
	return MustNew(Options{Modes: union(modes)}).IsEqual(left, right)
}

func union(modes []Mode) Mode {
	var m Mode
	for _, f := range modes {
		m |= f
	}
	return m
}

// state is the mutable context of one top-level comparison.
type state struct {
	cmp      *Comparator
	all      bool
	path     tracker
	guard    *guard
	depth    int
	depthHit bool
	trials   int // nesting of trial comparisons, which log nothing
}

func (s *state) has(m Mode) bool {
	return s.cmp.modes.Has(m)
}

func (s *state) located(message, detail string, l, r reflect.Value) located {
	return located{
		message: message,
		detail:  detail,
		left:    interfaceOf(l),
		right:   interfaceOf(r),
		path:    s.path.snapshot(),
	}
}

func (s *state) valueDiff(message, detail string, l, r reflect.Value) Difference {
	return &ValueDifference{located: s.located(message, detail, l, r)}
}

func (s *state) typeDiff(l, r reflect.Value) Difference {
	return s.valueDiff(MsgDifferentTypes, fmt.Sprintf("left %s, right %s", l.Type(), r.Type()), l, r)
}

// compare is the recursive step shared by every comparator.
func (s *state) compare(l, r reflect.Value) Difference {
	if s.depth >= s.cmp.maxDepth {
		if !s.depthHit && s.trials == 0 {
			s.depthHit = true
			s.cmp.log.Warn("comparison depth limit reached",
				zap.Int("max_depth", s.cmp.maxDepth),
				zap.String("path", s.path.snapshot().String()))
		}
		return s.valueDiff(MsgDepthExceeded, fmt.Sprintf("limit %d", s.cmp.maxDepth), l, r)
	}
	s.depth++
	defer func() { s.depth-- }()

	l, r = unwrapInterface(l), unwrapInterface(r)

	if sameReference(l, r) {
		return nil
	}

	_, lDate := dateOf(l)
	_, rDate := dateOf(r)
	if (lDate || rDate) && (lDate || isNull(l)) && (rDate || isNull(r)) {
		return s.compareDates(l, r)
	}

	if s.has(IgnoreDefaults) && isDefault(l) {
		return nil
	}

	if isNull(l) {
		return s.valueDiff(MsgLeftNull, "", l, r)
	}
	if isNull(r) {
		return s.valueDiff(MsgRightNull, "", l, r)
	}

	if l.Kind() == reflect.Pointer || r.Kind() == reflect.Pointer {
		return s.comparePointers(l, r)
	}

	lc, rc := classify(l), classify(r)
	if lc != rc {
		return s.typeDiff(l, r)
	}

	switch lc {
	case classSequence:
		return s.compareSequences(l, r)
	case classMap:
		return s.compareMaps(l, r)
	case classRecord:
		if l.Type() != r.Type() {
			return s.typeDiff(l, r)
		}
		return s.compareRecords(l, r)
	case classDate:
		// Dates are resolved before classification.
		return s.compareDates(l, r)
	case classEqualer:
		if l.Type() != r.Type() {
			return s.typeDiff(l, r)
		}
		if equalerFor(l.Type()).equal(l, r) {
			return nil
		}
		return s.valueDiff(MsgDifferentValues, "", l, r)
	case classOpaque:
		if l.Type() != r.Type() {
			return s.typeDiff(l, r)
		}
		fallthrough
	case classBool, classNumber, classComplex, classString:
		if !scalarTypesCompatible(l.Type(), r.Type()) {
			return s.typeDiff(l, r)
		}
		if scalarsEqual(lc, l, r) {
			return nil
		}
		return s.valueDiff(MsgDifferentValues, "", l, r)
	default:
		panic(fmt.Sprintf("reflectdiff: unhandled class %v", lc))
	}
}

// comparePointers follows non-nil pointers. When both sides are pointers the
// pair is registered with the cycle guard; a pointer on one side only is
// dereferenced so that *T and T compare by content.
func (s *state) comparePointers(l, r reflect.Value) Difference {
	if l.Kind() != reflect.Pointer {
		return s.compare(l, settle(r.Elem()))
	}
	if r.Kind() != reflect.Pointer {
		return s.compare(settle(l.Elem()), r)
	}
	f, st := s.guard.enter(l, r)
	if st != guardEntered {
		s.skipped(st, l, r)
		return nil
	}
	d := s.compare(settle(l.Elem()), settle(r.Elem()))
	s.guard.leave(f, d == nil)
	return d
}

// skipped logs a branch pruned by the cycle guard. Pairs already proven
// equal are not logged.
func (s *state) skipped(st guardState, l, r reflect.Value) {
	if st != guardCycle || s.trials > 0 {
		return
	}
	if ce := s.cmp.log.Check(zap.DebugLevel, "cycle guard cut"); ce != nil {
		ce.Write(
			zap.String("path", s.path.snapshot().String()),
			zap.Stringer("left_type", l.Type()),
			zap.Stringer("right_type", r.Type()),
		)
	}
}

// compareDates handles time values and their pairing with nil.
func (s *state) compareDates(l, r reflect.Value) Difference {
	lt, lok := dateOf(l)
	rt, rok := dateOf(r)
	if s.has(LenientDates) {
		if lok == rok {
			return nil
		}
		return s.valueDiff(MsgLenientDates, "", l, r)
	}
	switch {
	case !lok && !rok:
		return nil
	case !lok:
		return s.valueDiff(MsgLeftNull, "", l, r)
	case !rok:
		return s.valueDiff(MsgRightNull, "", l, r)
	case lt.Equal(rt):
		return nil
	default:
		return s.valueDiff(MsgDifferentDates, "", l, r)
	}
}

// trial reports whether l and r are equal without recording anything in the
// caller's report or the log. It is used to try candidate pairings.
func (s *state) trial(l, r reflect.Value) bool {
	all := s.all
	s.all = false
	s.trials++
	d := s.compare(l, r)
	s.trials--
	s.all = all
	return d == nil
}
