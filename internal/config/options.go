package config

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectdiff"
)

// EngineOptions returns the comparator options for suite. An empty suite
// selects the project-wide comparison settings; a configured suite adds its
// own modes to them. Extra mode tokens, such as those given on the command
// line, are added last.
func (c *Config) EngineOptions(suite string, log *zap.Logger, extra ...string) (reflectdiff.Options, error) {
	var opts reflectdiff.Options
	var tokens []string
	report := ""
	if c.Comparison != nil {
		tokens = append(tokens, c.Comparison.Modes...)
		opts.MaxDepth = c.Comparison.MaxDepth
		report = c.Comparison.Report
	}
	if s, ok := c.Suites[suite]; ok && suite != "" {
		tokens = append(tokens, s.Modes...)
	}
	tokens = append(tokens, extra...)

	modes, err := reflectdiff.ParseModes(tokens...)
	if err != nil {
		return reflectdiff.Options{}, fmt.Errorf("comparison modes: %w", err)
	}
	opts.Modes = modes

	opts.Report, err = reflectdiff.ParseReport(report)
	if err != nil {
		return reflectdiff.Options{}, fmt.Errorf("comparison report: %w", err)
	}

	opts.Logger = log
	return opts, reflectdiff.ValidateOptions(opts)
}

// DateFormats returns the configured strftime layouts.
func (c *Config) DateFormats() []string {
	if c.Comparison == nil {
		return nil
	}
	return c.Comparison.DateFormats
}

// SuiteSkipped reports whether suite is marked as skipped.
func (c *Config) SuiteSkipped(suite string) bool {
	return c.Suites[suite].Skip
}

func sortedSuiteNames(suites map[string]SuiteConfig) []string {
	names := make([]string, 0, len(suites))
	for name := range suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
