package config

import (
	"encoding/json"
	"reflect"
	"testing"
)

// FuzzLoadWithWarnings tests LoadWithWarnings with arbitrary JSON input.
// Run: go test -fuzz=FuzzLoadWithWarnings -fuzztime=30s ./internal/config
func FuzzLoadWithWarnings(f *testing.F) {
	seeds := []string{
		`{"project": {"name": "test"}}`,
		`{"project": {"name": "test"}, "unknown_field": "value"}`,
		`{"$schema": "config.schema.json", "project": {"name": "test"}}`,
		`{"project": {"name": "test"}, "suites": {"v1": {"modes": ["lenient_order"], "bogus": true}}}`,
		`{"project": {"name": "test"}, "comparison": {"modes": ["x"], "max_depth": -3, "extra": 1}}`,
		`{"project": {"name": "test"}, "suites": null}`,
		`{}`,
		``,
		`null`,
		`[]`,
		`{"project": {"name": "test",}}`,
		`{"project": {"name": "项目"}}`,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, warnings, err1 := LoadWithWarnings("fuzz.json", data)
		cfg2, warnings2, err2 := LoadWithWarnings("fuzz.json", data)

		if (err1 == nil) != (err2 == nil) {
			t.Errorf("non-deterministic error: first=%v, second=%v", err1, err2)
		}

		if err1 == nil && err2 == nil {
			if !reflect.DeepEqual(cfg, cfg2) {
				t.Errorf("non-deterministic config: first=%+v, second=%+v", cfg, cfg2)
			}
			if !reflect.DeepEqual(warnings, warnings2) {
				t.Errorf("non-deterministic warnings: first=%v, second=%v", warnings, warnings2)
			}
			if _, err := json.Marshal(cfg); err != nil {
				t.Errorf("failed to re-marshal successfully unmarshaled config: %v", err)
			}
		}
	})
}

// FuzzValidate tests the Validate function with arbitrary Config values.
// Run: go test -fuzz=FuzzValidate -fuzztime=30s ./internal/config
func FuzzValidate(f *testing.F) {
	seeds := []string{
		`{"project": {"name": "test"}}`,
		`{"project": {}}`,
		`{"project": {"name": "TEST"}}`,
		`{"project": {"name": "test"}, "comparison": {"modes": ["lenient_order", "lenient_order"]}}`,
		`{"project": {"name": "test"}, "comparison": {"date_formats": ["%Y-%m-%d", "plain"]}}`,
		`{"project": {"name": "test"}, "cases": {"pattern": "[bad"}}`,
		`{"project": {"name": "test"}, "suites": {"Bad": {}}}`,
		`{"project": {"name": "test"}, "logging": {"level": "trace"}}`,
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		var cfg Config
		if err := json.Unmarshal(data, &cfg); err != nil {
			return
		}

		warnings1, err1 := Validate(&cfg)
		warnings2, err2 := Validate(&cfg)

		if (err1 == nil) != (err2 == nil) {
			t.Errorf("non-deterministic error: first=%v, second=%v", err1, err2)
		}
		if !reflect.DeepEqual(warnings1, warnings2) {
			t.Errorf("non-deterministic warnings: first=%v, second=%v", warnings1, warnings2)
		}
	})
}
