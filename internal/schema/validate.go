// Package schema provides JSON schema validation for reflectdiff
// configuration and case files.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/reflectdiff/schema"
)

var (
	configSchema *jsonschema.Schema
	caseSchema   *jsonschema.Schema
	compileOnce  sync.Once
	compileErr   error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		for _, name := range []string{"config.schema.json", "case.schema.json"} {
			data, err := schemafs.FS.ReadFile(name)
			if err != nil {
				compileErr = fmt.Errorf("read %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s: %w", name, err)
				return
			}
			if err := compiler.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("add %s resource: %w", name, err)
				return
			}
		}

		var err error
		configSchema, err = compiler.Compile("config.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile config schema: %w", err)
			return
		}

		caseSchema, err = compiler.Compile("case.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile case schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateConfig validates JSON data against the config schema.
func ValidateConfig(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := configSchema.Validate(v); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// ValidateCase validates a decoded case document against the case schema.
// The document may come from JSON or YAML; it must already be normalised to
// map[string]any with float64 or int numbers.
func ValidateCase(doc any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	if err := caseSchema.Validate(jsonShape(doc)); err != nil {
		return fmt.Errorf("case validation failed: %w", err)
	}

	return nil
}

// jsonShape round-trips v through encoding/json so that values decoded from
// YAML (ints, time.Time) take the shapes the validator expects.
func jsonShape(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	out, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return v
	}
	return out
}
