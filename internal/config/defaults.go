package config

// Default configuration values.
const (
	DefaultCasesDirectory = "cases"
	DefaultCasesPattern   = "*"
	DefaultReport         = ReportFirst
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	applyComparisonDefaults(cfg)
	applyCasesDefaults(cfg)
	applyLoggingDefaults(cfg)
}

func applyComparisonDefaults(cfg *Config) {
	if cfg.Comparison == nil {
		cfg.Comparison = &ComparisonConfig{}
	}
	if cfg.Comparison.Report == "" {
		cfg.Comparison.Report = DefaultReport
	}
}

func applyCasesDefaults(cfg *Config) {
	if cfg.Cases == nil {
		cfg.Cases = &CasesConfig{}
	}
	if cfg.Cases.Directory == "" {
		cfg.Cases.Directory = DefaultCasesDirectory
	}
	if cfg.Cases.Pattern == "" {
		cfg.Cases.Pattern = DefaultCasesPattern
	}
}

func applyLoggingDefaults(cfg *Config) {
	if cfg.Logging == nil {
		cfg.Logging = &LoggingConfig{}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLogFormat
	}
}
