package reflectdiff

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Mode is a set of leniency flags.
type Mode uint8

const (
	// IgnoreDefaults treats a zero value on the left as "don't care".
	IgnoreDefaults Mode = 1 << iota
	// LenientDates compares only the presence of time.Time values.
	LenientDates
	// LenientOrder ignores element order in slices and arrays.
	LenientOrder
)

// Strict is the empty mode set.
const Strict Mode = 0

const allModes = IgnoreDefaults | LenientDates | LenientOrder

// ModeInfo describes one leniency mode.
type ModeInfo struct {
	Mode        Mode
	Token       string
	Description string
}

var modeTable = []ModeInfo{
	{IgnoreDefaults, "ignore_defaults", "zero values on the left (nil, false, 0, \"\") match anything"},
	{LenientDates, "lenient_dates", "time values only need to be both set or both nil"},
	{LenientOrder, "lenient_order", "slices and arrays match regardless of element order"},
}

// AllModes lists the available leniency modes in declaration order.
func AllModes() []ModeInfo {
	out := make([]ModeInfo, len(modeTable))
	copy(out, modeTable)
	return out
}

// Has reports whether every flag of f is set in m.
func (m Mode) Has(f Mode) bool {
	return m&f == f
}

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	var parts []string
	for _, info := range modeTable {
		if m.Has(info.Mode) {
			parts = append(parts, info.Token)
		}
	}
	if rest := m &^ allModes; rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseMode parses a single mode token. Tokens are case-insensitive and
// accept "-" in place of "_", so "LENIENT_ORDER" and "lenient-order" both
// name LenientOrder.
func ParseMode(token string) (Mode, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(token)), "-", "_")
	for _, info := range modeTable {
		if info.Token == norm {
			return info.Mode, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownMode, token, strings.Join(modeTokens(), ", "))
}

// ParseModes parses and combines several mode tokens.
func ParseModes(tokens ...string) (Mode, error) {
	var m Mode
	for _, t := range tokens {
		f, err := ParseMode(t)
		if err != nil {
			return 0, err
		}
		m |= f
	}
	return m, nil
}

func modeTokens() []string {
	out := make([]string, 0, len(modeTable))
	for _, info := range modeTable {
		out = append(out, info.Token)
	}
	return out
}

// Report selects how much of the difference tree a comparison builds.
type Report uint8

const (
	// ReportFirst stops at the first divergence found.
	ReportFirst Report = iota
	// ReportAll visits the whole graph and collects every divergence.
	ReportAll
)

func (r Report) String() string {
	switch r {
	case ReportFirst:
		return "first"
	case ReportAll:
		return "all"
	default:
		return fmt.Sprintf("Report(%d)", uint8(r))
	}
}

// ParseReport parses "first" or "all". The empty string means "first".
func ParseReport(s string) (Report, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return ReportFirst, nil
	case "all":
		return ReportAll, nil
	default:
		return 0, fmt.Errorf("%w: invalid report %q (must be \"first\" or \"all\")", ErrInvalidOptions, s)
	}
}

// DefaultMaxDepth bounds recursion when Options.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Options configures a Comparator.
type Options struct {
	// Modes is the set of leniency flags.
	Modes Mode

	// MaxDepth bounds how deep the comparison may recurse. Zero selects
	// DefaultMaxDepth. Exceeding the bound reports a MsgDepthExceeded
	// difference at the point where it was hit.
	MaxDepth int

	// Report selects first-difference or all-differences reporting.
	Report Report

	// Logger receives debug records for cycle cuts and a warning when the
	// depth bound is hit. Nil disables logging.
	Logger *zap.Logger
}

// ValidateOptions reports whether opts can configure a Comparator.
func ValidateOptions(opts Options) error {
	if rest := opts.Modes &^ allModes; rest != 0 {
		return fmt.Errorf("%w: unknown mode bits 0x%x", ErrInvalidOptions, uint8(rest))
	}
	if opts.MaxDepth < 0 {
		return fmt.Errorf("%w: MaxDepth must not be negative, got %d", ErrInvalidOptions, opts.MaxDepth)
	}
	switch opts.Report {
	case ReportFirst, ReportAll:
	default:
		return fmt.Errorf("%w: unknown report %d", ErrInvalidOptions, uint8(opts.Report))
	}
	return nil
}
