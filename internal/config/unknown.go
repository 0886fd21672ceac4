package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// LoadWithWarnings parses config data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	warnings := detectUnknownFields(data)

	return &cfg, warnings, nil
}

// detectUnknownFields compares raw JSON with known struct fields.
// Note: Since this is called after successful Config parsing, a parse failure
// here would indicate an unexpected internal inconsistency.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}

	knownTopLevel := getJSONFields(reflect.TypeOf(Config{}))
	for _, key := range sortedKeys(raw) {
		if key == "$schema" {
			continue // $schema is explicitly allowed and ignored
		}
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	sections := []struct {
		key string
		typ reflect.Type
	}{
		{"project", reflect.TypeOf(ProjectConfig{})},
		{"comparison", reflect.TypeOf(ComparisonConfig{})},
		{"cases", reflect.TypeOf(CasesConfig{})},
		{"logging", reflect.TypeOf(LoggingConfig{})},
	}
	for _, s := range sections {
		if sectionRaw, ok := raw[s.key]; ok {
			warnings = append(warnings, checkSectionUnknownFields(s.key, sectionRaw, s.typ)...)
		}
	}

	if suitesRaw, ok := raw["suites"]; ok {
		warnings = append(warnings, checkSuitesUnknownFields(suitesRaw)...)
	}

	return warnings
}

func checkSectionUnknownFields(section string, data json.RawMessage, t reflect.Type) []string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	var warnings []string
	known := getJSONFields(t)
	for _, key := range sortedKeys(fields) {
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q in %s (ignored)", key, section))
		}
	}
	return warnings
}

func checkSuitesUnknownFields(data json.RawMessage) []string {
	var suites map[string]json.RawMessage
	if err := json.Unmarshal(data, &suites); err != nil {
		// Should not happen since Config.Suites parsed successfully.
		return []string{"internal: failed to re-parse suites for unknown field detection"}
	}

	var warnings []string
	knownSuiteFields := getJSONFields(reflect.TypeOf(SuiteConfig{}))
	for _, name := range sortedKeys(suites) {
		var suiteFields map[string]json.RawMessage
		if err := json.Unmarshal(suites[name], &suiteFields); err != nil {
			continue
		}
		for _, key := range sortedKeys(suiteFields) {
			if !knownSuiteFields[key] {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in suite %q (ignored)", key, name))
			}
		}
	}

	return warnings
}

// getJSONFields returns a map of known JSON field names for a struct type.
func getJSONFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		// Extract field name from tag (before comma)
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
