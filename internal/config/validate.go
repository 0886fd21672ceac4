package config

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/AndreyAkinshin/reflectdiff/internal/document"
	"github.com/AndreyAkinshin/reflectdiff/internal/logging"
	"github.com/AndreyAkinshin/reflectdiff/pkg/reflectdiff"
)

var (
	// Project name: must start with lowercase letter, may contain lowercase, digits, hyphens.
	// Hyphens must not be consecutive or trailing.
	projectNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

	// Suite name: lowercase letters, digits, hyphens and underscores.
	suiteNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateProject(cfg); err != nil {
		return nil, err
	}

	w, err := validateComparison(cfg)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, w...)

	if err := validateCases(cfg); err != nil {
		return nil, err
	}

	w, err = validateSuites(cfg)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, w...)

	if err := validateLogging(cfg); err != nil {
		return nil, err
	}

	return warnings, nil
}

func validateProject(cfg *Config) error {
	return ValidateProjectName(cfg.Project.Name)
}

func validateComparison(cfg *Config) ([]string, error) {
	c := cfg.Comparison
	if c == nil {
		return nil, nil
	}

	warnings, err := validateModes("comparison.modes", c.Modes)
	if err != nil {
		return nil, err
	}

	if c.MaxDepth < 0 {
		return nil, &ValidationError{Field: "comparison.max_depth", Message: "must not be negative"}
	}

	switch c.Report {
	case "", ReportFirst, ReportAll:
	default:
		return nil, &ValidationError{
			Field:   "comparison.report",
			Message: fmt.Sprintf(`must be %q or %q, got %q`, ReportFirst, ReportAll, c.Report),
		}
	}

	for i, f := range c.DateFormats {
		if err := document.ValidateDateFormat(f); err != nil {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("comparison.date_formats[%d]", i),
				Message: err.Error(),
			}
		}
	}

	return warnings, nil
}

func validateModes(field string, tokens []string) ([]string, error) {
	var warnings []string
	var seen reflectdiff.Mode
	for i, token := range tokens {
		m, err := reflectdiff.ParseMode(token)
		if err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("%s[%d]", field, i), Message: err.Error()}
		}
		if seen.Has(m) {
			warnings = append(warnings, fmt.Sprintf("%s: mode %q listed more than once", field, token))
		}
		seen |= m
	}
	return warnings, nil
}

func validateCases(cfg *Config) error {
	if cfg.Cases == nil || cfg.Cases.Pattern == "" {
		return nil
	}
	if _, err := filepath.Match(cfg.Cases.Pattern, ""); err != nil {
		return &ValidationError{
			Field:   "cases.pattern",
			Message: fmt.Sprintf("invalid glob pattern %q: %v", cfg.Cases.Pattern, err),
		}
	}
	return nil
}

func validateSuites(cfg *Config) ([]string, error) {
	var warnings []string
	for _, name := range sortedSuiteNames(cfg.Suites) {
		if !suiteNamePattern.MatchString(name) {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("suites.%s", name),
				Message: "suite name must match pattern ^[a-z][a-z0-9_-]*$ (lowercase letters, digits, hyphens, underscores)",
			}
		}
		suite := cfg.Suites[name]
		w, err := validateModes(fmt.Sprintf("suites.%s.modes", name), suite.Modes)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
		if suite.Skip && len(suite.Modes) > 0 {
			warnings = append(warnings, fmt.Sprintf("suites.%s: modes have no effect on a skipped suite", name))
		}
	}
	return warnings, nil
}

func validateLogging(cfg *Config) error {
	if cfg.Logging == nil {
		return nil
	}
	lc := logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}
	if err := lc.Validate(); err != nil {
		return &ValidationError{Field: "logging", Message: err.Error()}
	}
	return nil
}

// ValidateProjectName checks if a project name is valid.
// Returns a ValidationError if the name is empty, too long (>128 chars),
// or doesn't match the required pattern.
func ValidateProjectName(name string) error {
	if name == "" {
		return &ValidationError{Field: "project.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "project.name", Message: "must be 128 characters or less"}
	}
	if !projectNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "project.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}

// ValidateSuiteName checks if a suite name is valid.
func ValidateSuiteName(name string) error {
	if name == "" {
		return &ValidationError{Field: "suite name", Message: "is required"}
	}
	if !suiteNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "suite name",
			Message: "must match pattern ^[a-z][a-z0-9_-]*$",
		}
	}
	return nil
}
