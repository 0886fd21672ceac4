// Package config provides configuration loading and validation for
// .reflectdiff/config.json.
package config

// Config represents the complete config.json configuration.
type Config struct {
	Project    ProjectConfig          `json:"project"`
	Comparison *ComparisonConfig      `json:"comparison,omitempty"`
	Cases      *CasesConfig           `json:"cases,omitempty"`
	Suites     map[string]SuiteConfig `json:"suites,omitempty"`
	Logging    *LoggingConfig         `json:"logging,omitempty"`
}

// ProjectConfig contains project metadata.
type ProjectConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ComparisonConfig sets the comparator used by compare and check.
type ComparisonConfig struct {
	Modes       []string `json:"modes,omitempty"`        // leniency mode tokens, e.g. "lenient_order"
	MaxDepth    int      `json:"max_depth,omitempty"`    // recursion bound, 0 selects the engine default
	Report      string   `json:"report,omitempty"`       // "first" or "all"
	DateFormats []string `json:"date_formats,omitempty"` // strftime layouts converted to dates
}

// CasesConfig locates the comparison case files.
type CasesConfig struct {
	Directory string `json:"directory,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
}

// SuiteConfig overrides settings for one suite, a subdirectory of the cases
// directory.
type SuiteConfig struct {
	Description string   `json:"description,omitempty"`
	Modes       []string `json:"modes,omitempty"` // added to the comparison modes
	Skip        bool     `json:"skip,omitempty"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	Level  string `json:"level,omitempty"`  // debug, info, warn, error
	Format string `json:"format,omitempty"` // json or console
}

// Report values.
const (
	ReportFirst = "first"
	ReportAll   = "all"
)
