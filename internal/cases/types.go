// Package cases loads and runs comparison case files.
//
// A case file is a JSON or YAML document holding two values and the
// expected outcome of comparing them:
//
//	{
//	  "description": "reordered tags compare equal under lenient_order",
//	  "left":  {"tags": ["a", "b"]},
//	  "right": {"tags": ["b", "a"]},
//	  "modes": ["lenient_order"],
//	  "equal": true
//	}
//
// Cases live in suite directories below the project's cases directory.
package cases

import "time"

// Case is a single comparison loaded from a case file.
type Case struct {
	Name        string   // Case name (from filename)
	Suite       string   // Suite name (parent directory)
	Path        string   // Full path to the case file
	Description string   // Free-form description
	Left        any      // Left operand
	Right       any      // Right operand
	Modes       []string // Mode tokens added to the suite's modes
	Equal       bool     // Expected outcome
	WantPath    string   // Expected rendered path of the innermost difference
	WantMessage string   // Expected message of the innermost difference
	Skip        bool
}

// Result is the outcome of running one case.
type Result struct {
	Case     *Case
	Passed   bool
	Skipped  bool
	Diff     string // rendered difference, empty when the operands are equal
	Reason   string // why the case failed
	Error    error  // configuration or engine failure
	Duration time.Duration
}

// SuiteResult aggregates the results of one suite.
type SuiteResult struct {
	Suite   string
	Results []Result
	Passed  int
	Failed  int
	Skipped int
}

// OK reports whether no case of the suite failed.
func (s *SuiteResult) OK() bool {
	return s.Failed == 0
}
